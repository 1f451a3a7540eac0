// Package resolve bridges the two external services. The metadata service
// knows artists and albums but has no playable URLs; the playback service
// has previews but no album browsing. The bridge is a text re-search by
// constructed "artist title" queries, which is best effort: nothing
// guarantees the re-matched track is the one asked for, so joins are
// logged to keep mismatches observable.
package resolve

import (
	"context"
	"fmt"

	"groovefm/core/normalize"
	"groovefm/core/playback"
	"groovefm/logger"
	"groovefm/model"
)

// Resolver finds playable tracks for entities that came from the metadata
// service.
type Resolver struct {
	playback *playback.Client
}

// New creates a resolver over the playback client.
func New(pc *playback.Client) *Resolver {
	return &Resolver{playback: pc}
}

// ArtistTracks returns playable tracks attributed to the named artist by a
// free-text search on the artist name.
func (r *Resolver) ArtistTracks(ctx context.Context, artistName string, limit int) ([]model.Track, error) {
	raw, err := r.playback.SearchTracks(ctx, artistName, limit)
	if err != nil {
		return nil, fmt.Errorf("resolve artist tracks: %w", err)
	}
	return normalize.Tracks(raw), nil
}

// AlbumTracks returns playable tracks for an album by searching for
// "<artist> <album>".
func (r *Resolver) AlbumTracks(ctx context.Context, artistName, albumTitle string, limit int) ([]model.Track, error) {
	query := artistName + " " + albumTitle
	raw, err := r.playback.SearchTracks(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("resolve album tracks: %w", err)
	}
	return normalize.Tracks(raw), nil
}

// StreamURL returns a playable URL for the track, or "" when nothing is
// playable. Order of preference: the track's own preview, a by-id lookup
// via its source id, and finally a "<title> <artist>" re-search taking the
// first hit.
func (r *Resolver) StreamURL(ctx context.Context, track model.Track) (string, error) {
	if track.PreviewURL != nil && *track.PreviewURL != "" {
		return *track.PreviewURL, nil
	}

	if track.SourceTrackID != "" {
		u, err := r.playback.StreamURL(ctx, track.SourceTrackID)
		if err != nil {
			return "", fmt.Errorf("resolve stream by id: %w", err)
		}
		return u, nil
	}

	query := track.Title + " " + track.ArtistName
	hits, err := r.playback.SearchTracks(ctx, query, 1)
	if err != nil {
		return "", fmt.Errorf("resolve stream by search: %w", err)
	}
	if len(hits) == 0 {
		return "", nil
	}
	matched := normalize.Track(hits[0])
	logger.Info("track joined by text search",
		logger.String("wanted", track.Title),
		logger.String("matchedId", matched.ID),
		logger.String("matchedTitle", matched.Title))
	if matched.PreviewURL == nil {
		return "", nil
	}
	return *matched.PreviewURL, nil
}
