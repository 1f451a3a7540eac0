package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"groovefm/logger"
	"groovefm/model"
)

// Store is the local library: a favorites collection and a playlists
// collection, each persisted as one JSON array under its own key. The
// store is the single writer of both keys.
//
// Mutations are idempotent where the collection has uniqueness rules:
// adding an already-present favorite or playlist track reports false and
// changes nothing, removing an absent entry is a successful no-op. Errors
// are returned only for failures of the storage medium itself, so callers
// can tell "absent" apart from "storage broken".
type Store struct {
	kv KV
}

// New creates a library store over the given KV backend.
func New(kv KV) *Store {
	return &Store{kv: kv}
}

// Playlist IDs are derived from wall-clock milliseconds and forced to be
// strictly increasing within the process, so back-to-back creates in the
// same millisecond still get distinct IDs.
var (
	idMu   sync.Mutex
	lastID int64
)

func newPlaylistID() string {
	idMu.Lock()
	defer idMu.Unlock()
	now := time.Now().UnixMilli()
	if now <= lastID {
		now = lastID + 1
	}
	lastID = now
	return strconv.FormatInt(now, 10)
}

// Favorites returns the favorites collection in insertion order. A missing
// key yields an empty slice; a corrupt payload is logged and treated as
// empty rather than failing the caller.
func (s *Store) Favorites(ctx context.Context) ([]model.LibraryItem, error) {
	raw, err := s.kv.Get(ctx, favoritesKey)
	if err != nil {
		return nil, fmt.Errorf("load favorites: %w", err)
	}
	if len(raw) == 0 {
		return []model.LibraryItem{}, nil
	}
	var items []model.LibraryItem
	if err := json.Unmarshal(raw, &items); err != nil {
		logger.Warn("favorites payload is corrupt, treating as empty", logger.ErrorField(err))
		return []model.LibraryItem{}, nil
	}
	if items == nil {
		items = []model.LibraryItem{}
	}
	return items, nil
}

func (s *Store) saveFavorites(ctx context.Context, items []model.LibraryItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode favorites: %w", err)
	}
	if err := s.kv.Set(ctx, favoritesKey, raw); err != nil {
		return fmt.Errorf("save favorites: %w", err)
	}
	return nil
}

// AddFavorite appends item to the favorites collection. Returns false and
// leaves the collection untouched when an entry with the same ID already
// exists.
func (s *Store) AddFavorite(ctx context.Context, item model.LibraryItem) (bool, error) {
	items, err := s.Favorites(ctx)
	if err != nil {
		return false, err
	}
	for _, it := range items {
		if it.ID == item.ID {
			return false, nil
		}
	}
	items = append(items, item)
	if err := s.saveFavorites(ctx, items); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveFavorite drops any entry with the given ID. Removing a non-member
// is a successful no-op.
func (s *Store) RemoveFavorite(ctx context.Context, id string) error {
	items, err := s.Favorites(ctx)
	if err != nil {
		return err
	}
	filtered := items[:0]
	for _, it := range items {
		if it.ID != id {
			filtered = append(filtered, it)
		}
	}
	return s.saveFavorites(ctx, filtered)
}

// IsFavorite reports whether an entry with the given ID is present.
func (s *Store) IsFavorite(ctx context.Context, id string) (bool, error) {
	items, err := s.Favorites(ctx)
	if err != nil {
		return false, err
	}
	for _, it := range items {
		if it.ID == id {
			return true, nil
		}
	}
	return false, nil
}

// Playlists returns the playlists collection in creation order, with the
// same missing/corrupt handling as Favorites.
func (s *Store) Playlists(ctx context.Context) ([]model.Playlist, error) {
	raw, err := s.kv.Get(ctx, playlistsKey)
	if err != nil {
		return nil, fmt.Errorf("load playlists: %w", err)
	}
	if len(raw) == 0 {
		return []model.Playlist{}, nil
	}
	var playlists []model.Playlist
	if err := json.Unmarshal(raw, &playlists); err != nil {
		logger.Warn("playlists payload is corrupt, treating as empty", logger.ErrorField(err))
		return []model.Playlist{}, nil
	}
	if playlists == nil {
		playlists = []model.Playlist{}
	}
	// A playlist persisted with "tracks": null would otherwise round-trip
	// as nil and marshal back as null on the next save.
	for i := range playlists {
		if playlists[i].Tracks == nil {
			playlists[i].Tracks = []model.Track{}
		}
	}
	return playlists, nil
}

func (s *Store) savePlaylists(ctx context.Context, playlists []model.Playlist) error {
	raw, err := json.Marshal(playlists)
	if err != nil {
		return fmt.Errorf("encode playlists: %w", err)
	}
	if err := s.kv.Set(ctx, playlistsKey, raw); err != nil {
		return fmt.Errorf("save playlists: %w", err)
	}
	return nil
}

// CreatePlaylist creates an empty playlist with a fresh ID. The name is
// stored as given; validating it is the caller's job.
func (s *Store) CreatePlaylist(ctx context.Context, name string) (*model.Playlist, error) {
	playlists, err := s.Playlists(ctx)
	if err != nil {
		return nil, err
	}
	playlist := model.Playlist{
		ID:        newPlaylistID(),
		Name:      name,
		Tracks:    []model.Track{},
		CreatedAt: time.Now().UTC(),
	}
	playlists = append(playlists, playlist)
	if err := s.savePlaylists(ctx, playlists); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// AddToPlaylist appends track to the named playlist. Returns false when
// the playlist does not exist or already holds a track with the same ID.
func (s *Store) AddToPlaylist(ctx context.Context, playlistID string, track model.Track) (bool, error) {
	playlists, err := s.Playlists(ctx)
	if err != nil {
		return false, err
	}
	for i := range playlists {
		if playlists[i].ID != playlistID {
			continue
		}
		for _, t := range playlists[i].Tracks {
			if t.ID == track.ID {
				return false, nil
			}
		}
		playlists[i].Tracks = append(playlists[i].Tracks, track)
		if err := s.savePlaylists(ctx, playlists); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// RemoveFromPlaylist drops the track with the given ID from the named
// playlist. Returns false when the playlist does not exist; a track that
// is not present is a successful no-op.
func (s *Store) RemoveFromPlaylist(ctx context.Context, playlistID, trackID string) (bool, error) {
	playlists, err := s.Playlists(ctx)
	if err != nil {
		return false, err
	}
	for i := range playlists {
		if playlists[i].ID != playlistID {
			continue
		}
		tracks := playlists[i].Tracks[:0]
		for _, t := range playlists[i].Tracks {
			if t.ID != trackID {
				tracks = append(tracks, t)
			}
		}
		playlists[i].Tracks = tracks
		if err := s.savePlaylists(ctx, playlists); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// DeletePlaylist removes the playlist entirely. Deleting an unknown ID is
// a successful no-op.
func (s *Store) DeletePlaylist(ctx context.Context, playlistID string) error {
	playlists, err := s.Playlists(ctx)
	if err != nil {
		return err
	}
	filtered := playlists[:0]
	for _, p := range playlists {
		if p.ID != playlistID {
			filtered = append(filtered, p)
		}
	}
	return s.savePlaylists(ctx, filtered)
}

// RenamePlaylist renames the playlist in place, keeping its tracks and
// creation time. Returns false when the playlist does not exist.
func (s *Store) RenamePlaylist(ctx context.Context, playlistID, newName string) (bool, error) {
	playlists, err := s.Playlists(ctx)
	if err != nil {
		return false, err
	}
	for i := range playlists {
		if playlists[i].ID != playlistID {
			continue
		}
		playlists[i].Name = newName
		if err := s.savePlaylists(ctx, playlists); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}
