// Package normalize maps the two external wire schemas onto the canonical
// in-app records. Everything here is a pure function: same input, same
// output, no network or storage access.
//
// The defaulting rules matter. Consumers index thumbnail fields directly,
// so those are empty strings, never absent. DurationMs is never zero; an
// unknown duration gets a stand-in of three minutes so time formatting
// downstream keeps working.
package normalize

import (
	"strconv"

	"groovefm/core/deezer"
	"groovefm/core/playback"
	"groovefm/model"
)

// DefaultDurationMs stands in when the source omits or zeroes a duration.
const DefaultDurationMs = 180000

// ID coerces a numeric source id to the canonical string form. All lookups
// and storage keys use this form; cross-collection equality is string
// equality.
func ID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// Artist maps a raw metadata artist to the canonical record.
func Artist(a deezer.Artist) model.Artist {
	return model.Artist{
		ID:           ID(a.ID),
		Name:         a.Name,
		ThumbnailURL: a.PictureMedium,
		Genre:        a.Genre,
	}
}

// Album maps a raw metadata album to the canonical record. YearReleased is
// the leading 4 characters of the ISO release date, or "" when unknown.
func Album(a deezer.Album) model.Album {
	artistName := ""
	if a.Artist != nil {
		artistName = a.Artist.Name
	}
	year := ""
	if len(a.ReleaseDate) >= 4 {
		year = a.ReleaseDate[:4]
	}
	return model.Album{
		ID:           ID(a.ID),
		Title:        a.Title,
		ArtistName:   artistName,
		ThumbnailURL: a.CoverMedium,
		YearReleased: year,
		TrackCount:   a.TrackTotal,
	}
}

// Track maps a raw playback track to the canonical record. The source
// duration is in seconds; a nil preview passes through as nil.
func Track(t playback.Track) model.Track {
	durationMs := t.Duration * 1000
	if durationMs <= 0 {
		durationMs = DefaultDurationMs
	}
	id := ID(t.ID)
	return model.Track{
		ID:            id,
		Title:         t.Title,
		ArtistName:    t.Artist.Name,
		AlbumTitle:    t.Album.Title,
		DurationMs:    durationMs,
		ThumbnailURL:  t.Album.CoverMedium,
		PreviewURL:    t.Preview,
		SourceTrackID: id,
	}
}

// CatalogTrack maps a raw metadata-service track to the canonical record.
// Album track listings omit the nested album object, so albumTitle and the
// thumbnail may come out empty; the caller can backfill them from the
// album itself.
func CatalogTrack(t deezer.Track) model.Track {
	durationMs := t.Duration * 1000
	if durationMs <= 0 {
		durationMs = DefaultDurationMs
	}
	artistName := ""
	if t.Artist != nil {
		artistName = t.Artist.Name
	}
	albumTitle := ""
	thumbnail := ""
	if t.Album != nil {
		albumTitle = t.Album.Title
		thumbnail = t.Album.CoverMedium
	}
	id := ID(t.ID)
	return model.Track{
		ID:            id,
		Title:         t.Title,
		ArtistName:    artistName,
		AlbumTitle:    albumTitle,
		DurationMs:    durationMs,
		ThumbnailURL:  thumbnail,
		PreviewURL:    t.Preview,
		SourceTrackID: id,
	}
}

// CatalogTracks maps a slice of raw metadata-service tracks. Never
// returns nil.
func CatalogTracks(in []deezer.Track) []model.Track {
	out := make([]model.Track, 0, len(in))
	for _, t := range in {
		out = append(out, CatalogTrack(t))
	}
	return out
}

// Artists maps a slice of raw artists. Never returns nil.
func Artists(in []deezer.Artist) []model.Artist {
	out := make([]model.Artist, 0, len(in))
	for _, a := range in {
		out = append(out, Artist(a))
	}
	return out
}

// Albums maps a slice of raw albums. Never returns nil.
func Albums(in []deezer.Album) []model.Album {
	out := make([]model.Album, 0, len(in))
	for _, a := range in {
		out = append(out, Album(a))
	}
	return out
}

// Tracks maps a slice of raw tracks. Never returns nil.
func Tracks(in []playback.Track) []model.Track {
	out := make([]model.Track, 0, len(in))
	for _, t := range in {
		out = append(out, Track(t))
	}
	return out
}
