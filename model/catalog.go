package model

// Artist is the canonical in-app artist record.
type Artist struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Genre        string `json:"genre"`
}

// Album is the canonical in-app album record.
type Album struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ArtistName   string `json:"artistName"`
	ThumbnailURL string `json:"thumbnailUrl"`
	YearReleased string `json:"yearReleased"`
	TrackCount   int    `json:"trackCount"`
}

// Track is the canonical in-app track record. PreviewURL is nil when the
// source offers no preview; players must treat that as unplayable, not as
// an error.
type Track struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	ArtistName    string  `json:"artistName"`
	AlbumTitle    string  `json:"albumTitle"`
	DurationMs    int     `json:"durationMs"`
	ThumbnailURL  string  `json:"thumbnailUrl"`
	PreviewURL    *string `json:"previewUrl"`
	SourceTrackID string  `json:"sourceTrackId"`
}
