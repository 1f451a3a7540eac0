package deezer

// Raw metadata API shapes. Only the fields the app consumes are decoded;
// the canonical mapping lives in core/normalize.

// Artist is a raw artist object.
type Artist struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	PictureMedium string `json:"picture_medium"`
	Genre         string `json:"genre"`
}

// Album is a raw album object. The artist is nested and may be absent on
// some listings.
type Album struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	CoverMedium string `json:"cover_medium"`
	ReleaseDate string `json:"release_date"`
	TrackTotal  int    `json:"nb_tracks"`
	Artist      *struct {
		Name string `json:"name"`
	} `json:"artist"`
}

// Track is a raw track object from artist top and album track listings.
// Album track listings omit the nested album object, and a preview from
// this service is not guaranteed playable; the playback service stays the
// authority for streams.
type Track struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Duration int     `json:"duration"`
	Preview  *string `json:"preview"`
	Artist   *struct {
		Name string `json:"name"`
	} `json:"artist"`
	Album *struct {
		Title       string `json:"title"`
		CoverMedium string `json:"cover_medium"`
	} `json:"album"`
}
