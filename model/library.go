package model

import "time"

// Library item types.
const (
	ItemTypeArtist = "artist"
	ItemTypeAlbum  = "album"
	ItemTypeTrack  = "track"
)

// LibraryItem is a favorite entry. ID is the identity key within the
// favorites collection; Type tells which of the optional fields are set.
type LibraryItem struct {
	ID               string `json:"id"`
	Type             string `json:"type"`
	DisplayTitle     string `json:"displayTitle"`
	DisplayThumbnail string `json:"displayThumbnail,omitempty"`

	// Type-specific fields.
	ArtistName   string  `json:"artistName,omitempty"`
	AlbumTitle   string  `json:"albumTitle,omitempty"`
	Genre        string  `json:"genre,omitempty"`
	YearReleased string  `json:"yearReleased,omitempty"`
	DurationMs   int     `json:"durationMs,omitempty"`
	PreviewURL   *string `json:"previewUrl,omitempty"`
}

// Playlist is a named ordered collection of tracks. ID is generated at
// creation time and never changes; track order is insertion order.
type Playlist struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Tracks    []Track   `json:"tracks"`
	CreatedAt time.Time `json:"createdAt"`
}

// FavoriteFromArtist builds a favorite entry for an artist.
func FavoriteFromArtist(a Artist) LibraryItem {
	return LibraryItem{
		ID:               a.ID,
		Type:             ItemTypeArtist,
		DisplayTitle:     a.Name,
		DisplayThumbnail: a.ThumbnailURL,
		Genre:            a.Genre,
	}
}

// FavoriteFromAlbum builds a favorite entry for an album.
func FavoriteFromAlbum(a Album) LibraryItem {
	return LibraryItem{
		ID:               a.ID,
		Type:             ItemTypeAlbum,
		DisplayTitle:     a.Title,
		DisplayThumbnail: a.ThumbnailURL,
		ArtistName:       a.ArtistName,
		YearReleased:     a.YearReleased,
	}
}

// FavoriteFromTrack builds a favorite entry for a track.
func FavoriteFromTrack(t Track) LibraryItem {
	return LibraryItem{
		ID:               t.ID,
		Type:             ItemTypeTrack,
		DisplayTitle:     t.Title,
		DisplayThumbnail: t.ThumbnailURL,
		ArtistName:       t.ArtistName,
		AlbumTitle:       t.AlbumTitle,
		DurationMs:       t.DurationMs,
		PreviewURL:       t.PreviewURL,
	}
}
