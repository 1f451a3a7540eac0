// Package store implements the local music library: favorites and playlists
// persisted as JSON arrays under two independent keys of a small key-value
// area. Every mutation is a full read-modify-write of one collection, which
// is safe under the app's single-writer assumption.
package store

import (
	"context"
	"fmt"

	"groovefm/config"
)

// Storage keys. Values are UTF-8 JSON arrays; an absent key is equivalent
// to an empty array.
const (
	favoritesKey = "favorites"
	playlistsKey = "playlists"
)

// KV is the storage medium underneath the library store. Get returns
// (nil, nil) when the key has never been written.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// OpenKV opens the KV backend selected by the configuration and returns it
// together with a close function.
func OpenKV(cfg *config.Config) (KV, func(), error) {
	switch cfg.LibraryBackend {
	case "redis":
		kv, err := NewRedisKV(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("open redis library backend: %w", err)
		}
		return kv, func() { kv.Close() }, nil
	case "file", "":
		kv, err := NewFileKV(cfg.LibraryDir)
		if err != nil {
			return nil, nil, fmt.Errorf("open file library backend: %w", err)
		}
		return kv, func() { kv.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown library backend %q", cfg.LibraryBackend)
	}
}
