package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"groovefm/model"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	kv, err := NewFileKV(dir)
	if err != nil {
		t.Fatalf("new file kv: %v", err)
	}
	t.Cleanup(func() { kv.Close() })
	return New(kv), dir
}

func trackFixture(id string) model.Track {
	preview := "https://cdn.example.com/" + id + ".mp3"
	return model.Track{
		ID:            id,
		Title:         "Track " + id,
		ArtistName:    "Artist",
		AlbumTitle:    "Album",
		DurationMs:    200000,
		ThumbnailURL:  "https://img.example.com/" + id + ".jpg",
		PreviewURL:    &preview,
		SourceTrackID: id,
	}
}

func TestFavoritesEmptyOnFreshStore(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	favorites, err := s.Favorites(ctx)
	if err != nil {
		t.Fatalf("favorites: %v", err)
	}
	if len(favorites) != 0 {
		t.Fatalf("expected empty favorites, got %d entries", len(favorites))
	}
	if favorites == nil {
		t.Fatal("expected empty slice, got nil")
	}
}

func TestAddFavoriteIsIdempotent(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	item := model.FavoriteFromTrack(trackFixture("12345"))

	added, err := s.AddFavorite(ctx, item)
	if err != nil {
		t.Fatalf("first add: %v", err)
	}
	if !added {
		t.Fatal("first add should report true")
	}

	added, err = s.AddFavorite(ctx, item)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if added {
		t.Fatal("second add should report false")
	}

	favorites, err := s.Favorites(ctx)
	if err != nil {
		t.Fatalf("favorites: %v", err)
	}
	count := 0
	for _, f := range favorites {
		if f.ID == "12345" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one entry with id 12345, got %d", count)
	}
}

func TestRemoveFavoriteThenCheck(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	item := model.FavoriteFromAlbum(model.Album{ID: "99", Title: "Nine Lives"})

	if _, err := s.AddFavorite(ctx, item); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.RemoveFavorite(ctx, "99"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	isFav, err := s.IsFavorite(ctx, "99")
	if err != nil {
		t.Fatalf("is favorite: %v", err)
	}
	if isFav {
		t.Fatal("removed entry still reported as favorite")
	}
}

func TestRemoveFavoriteNonMemberIsNoOp(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if err := s.RemoveFavorite(ctx, "nope"); err != nil {
		t.Fatalf("removing a non-member should succeed, got %v", err)
	}
}

func TestFavoritesPreserveInsertionOrder(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"3", "1", "2"} {
		if _, err := s.AddFavorite(ctx, model.LibraryItem{ID: id, Type: model.ItemTypeTrack}); err != nil {
			t.Fatalf("add %s: %v", id, err)
		}
	}

	favorites, err := s.Favorites(ctx)
	if err != nil {
		t.Fatalf("favorites: %v", err)
	}
	want := []string{"3", "1", "2"}
	if len(favorites) != len(want) {
		t.Fatalf("expected %d favorites, got %d", len(want), len(favorites))
	}
	for i, id := range want {
		if favorites[i].ID != id {
			t.Fatalf("position %d: got %s, want %s", i, favorites[i].ID, id)
		}
	}
}

func TestCreatePlaylist(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	playlist, err := s.CreatePlaylist(ctx, "Road Trip")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if playlist.ID == "" {
		t.Fatal("playlist id not generated")
	}
	if playlist.Name != "Road Trip" {
		t.Fatalf("name: got %q", playlist.Name)
	}
	if playlist.Tracks == nil || len(playlist.Tracks) != 0 {
		t.Fatalf("new playlist should have an empty track list, got %v", playlist.Tracks)
	}
	if playlist.CreatedAt.IsZero() {
		t.Fatal("createdAt not set")
	}

	playlists, err := s.Playlists(ctx)
	if err != nil {
		t.Fatalf("playlists: %v", err)
	}
	if len(playlists) != 1 || playlists[0].ID != playlist.ID {
		t.Fatalf("playlist not persisted: %+v", playlists)
	}
}

func TestCreatePlaylistIDsAreUnique(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		p, err := s.CreatePlaylist(ctx, "P")
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		if seen[p.ID] {
			t.Fatalf("duplicate playlist id %s", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestAddToPlaylistRejectsDuplicateTracks(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	playlist, err := s.CreatePlaylist(ctx, "P")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	track := trackFixture("7")

	added, err := s.AddToPlaylist(ctx, playlist.ID, track)
	if err != nil {
		t.Fatalf("first add: %v", err)
	}
	if !added {
		t.Fatal("first add should report true")
	}

	added, err = s.AddToPlaylist(ctx, playlist.ID, track)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if added {
		t.Fatal("second add should report false")
	}

	playlists, err := s.Playlists(ctx)
	if err != nil {
		t.Fatalf("playlists: %v", err)
	}
	if len(playlists[0].Tracks) != 1 {
		t.Fatalf("expected exactly one track, got %d", len(playlists[0].Tracks))
	}
}

func TestAddToPlaylistUnknownPlaylist(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	added, err := s.AddToPlaylist(ctx, "missing", trackFixture("7"))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if added {
		t.Fatal("adding to an unknown playlist should report false")
	}
}

func TestRemoveFromPlaylist(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	playlist, err := s.CreatePlaylist(ctx, "P")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.AddToPlaylist(ctx, playlist.ID, trackFixture("a")); err != nil {
		t.Fatalf("add a: %v", err)
	}
	if _, err := s.AddToPlaylist(ctx, playlist.ID, trackFixture("b")); err != nil {
		t.Fatalf("add b: %v", err)
	}

	removed, err := s.RemoveFromPlaylist(ctx, playlist.ID, "a")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !removed {
		t.Fatal("remove should report true for an existing playlist")
	}

	playlists, _ := s.Playlists(ctx)
	if len(playlists[0].Tracks) != 1 || playlists[0].Tracks[0].ID != "b" {
		t.Fatalf("unexpected tracks after remove: %+v", playlists[0].Tracks)
	}

	// Track not present: still a success for an existing playlist.
	removed, err = s.RemoveFromPlaylist(ctx, playlist.ID, "zz")
	if err != nil || !removed {
		t.Fatalf("no-op remove: removed=%v err=%v", removed, err)
	}

	// Unknown playlist: reported as false.
	removed, err = s.RemoveFromPlaylist(ctx, "missing", "a")
	if err != nil {
		t.Fatalf("remove from missing playlist: %v", err)
	}
	if removed {
		t.Fatal("remove from unknown playlist should report false")
	}
}

func TestRenamePlaylistKeepsTracks(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	playlist, err := s.CreatePlaylist(ctx, "P")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.AddToPlaylist(ctx, playlist.ID, trackFixture("x")); err != nil {
		t.Fatalf("add: %v", err)
	}

	renamed, err := s.RenamePlaylist(ctx, playlist.ID, "Q")
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if !renamed {
		t.Fatal("rename should report true")
	}

	playlists, _ := s.Playlists(ctx)
	if playlists[0].Name != "Q" {
		t.Fatalf("name: got %q, want Q", playlists[0].Name)
	}
	if len(playlists[0].Tracks) != 1 || playlists[0].Tracks[0].ID != "x" {
		t.Fatalf("tracks changed by rename: %+v", playlists[0].Tracks)
	}
	if playlists[0].ID != playlist.ID {
		t.Fatal("rename must not change the playlist id")
	}

	renamed, err = s.RenamePlaylist(ctx, "missing", "Q")
	if err != nil {
		t.Fatalf("rename missing: %v", err)
	}
	if renamed {
		t.Fatal("renaming an unknown playlist should report false")
	}
}

func TestDeletePlaylist(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	keep, err := s.CreatePlaylist(ctx, "Keep")
	if err != nil {
		t.Fatalf("create keep: %v", err)
	}
	drop, err := s.CreatePlaylist(ctx, "Drop")
	if err != nil {
		t.Fatalf("create drop: %v", err)
	}

	if err := s.DeletePlaylist(ctx, drop.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	playlists, err := s.Playlists(ctx)
	if err != nil {
		t.Fatalf("playlists: %v", err)
	}
	if len(playlists) != 1 || playlists[0].ID != keep.ID {
		t.Fatalf("unexpected playlists after delete: %+v", playlists)
	}

	// Deleting an unknown id succeeds.
	if err := s.DeletePlaylist(ctx, "missing"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
}

func TestCorruptPayloadTreatedAsEmpty(t *testing.T) {
	s, dir := newTestStore(t)
	ctx := context.Background()

	if err := os.WriteFile(filepath.Join(dir, "favorites.json"), []byte("{not json"), 0644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	favorites, err := s.Favorites(ctx)
	if err != nil {
		t.Fatalf("favorites on corrupt payload: %v", err)
	}
	if len(favorites) != 0 {
		t.Fatalf("expected empty favorites, got %+v", favorites)
	}

	// A write after the corrupt read starts over from empty.
	if _, err := s.AddFavorite(ctx, model.LibraryItem{ID: "1", Type: model.ItemTypeArtist}); err != nil {
		t.Fatalf("add after corruption: %v", err)
	}
	favorites, _ = s.Favorites(ctx)
	if len(favorites) != 1 {
		t.Fatalf("expected one favorite, got %d", len(favorites))
	}
}

func TestPersistedLayoutIsPlainJSONArrays(t *testing.T) {
	s, dir := newTestStore(t)
	ctx := context.Background()

	if _, err := s.AddFavorite(ctx, model.FavoriteFromTrack(trackFixture("12345"))); err != nil {
		t.Fatalf("add favorite: %v", err)
	}
	playlist, err := s.CreatePlaylist(ctx, "Mix")
	if err != nil {
		t.Fatalf("create playlist: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "favorites.json"))
	if err != nil {
		t.Fatalf("read favorites file: %v", err)
	}
	var favorites []map[string]interface{}
	if err := json.Unmarshal(raw, &favorites); err != nil {
		t.Fatalf("favorites is not a JSON array: %v", err)
	}
	if len(favorites) != 1 || favorites[0]["id"] != "12345" || favorites[0]["type"] != "track" {
		t.Fatalf("unexpected favorites layout: %s", raw)
	}

	raw, err = os.ReadFile(filepath.Join(dir, "playlists.json"))
	if err != nil {
		t.Fatalf("read playlists file: %v", err)
	}
	var playlists []map[string]interface{}
	if err := json.Unmarshal(raw, &playlists); err != nil {
		t.Fatalf("playlists is not a JSON array: %v", err)
	}
	if len(playlists) != 1 || playlists[0]["id"] != playlist.ID || playlists[0]["name"] != "Mix" {
		t.Fatalf("unexpected playlists layout: %s", raw)
	}
	if _, ok := playlists[0]["tracks"].([]interface{}); !ok {
		t.Fatalf("tracks must serialize as an array: %s", raw)
	}
}

func TestLegacyNullTracksStayAnArray(t *testing.T) {
	dir := t.TempDir()
	raw := `[{"id":"1700000000000","name":"Old Mix","tracks":null,"createdAt":"2023-11-14T22:13:20Z"}]`
	if err := os.WriteFile(filepath.Join(dir, "playlists.json"), []byte(raw), 0644); err != nil {
		t.Fatalf("seed playlists: %v", err)
	}

	kv, err := NewFileKV(dir)
	if err != nil {
		t.Fatalf("new file kv: %v", err)
	}
	defer kv.Close()
	s := New(kv)
	ctx := context.Background()

	playlists, err := s.Playlists(ctx)
	if err != nil {
		t.Fatalf("playlists: %v", err)
	}
	if playlists[0].Tracks == nil {
		t.Fatal("null tracks should load as an empty slice")
	}

	// An append-free save must not write tracks back as null.
	renamed, err := s.RenamePlaylist(ctx, "1700000000000", "New Mix")
	if err != nil || !renamed {
		t.Fatalf("rename: renamed=%v err=%v", renamed, err)
	}

	persisted, err := os.ReadFile(filepath.Join(dir, "playlists.json"))
	if err != nil {
		t.Fatalf("read playlists file: %v", err)
	}
	var decoded []map[string]interface{}
	if err := json.Unmarshal(persisted, &decoded); err != nil {
		t.Fatalf("decode persisted playlists: %v", err)
	}
	if _, ok := decoded[0]["tracks"].([]interface{}); !ok {
		t.Fatalf("tracks must serialize as an array, got: %s", persisted)
	}
}

func TestReadsExternallyWrittenCollections(t *testing.T) {
	// Payload in the shape the original client persisted.
	dir := t.TempDir()
	raw := `[{"id":"42","type":"artist","displayTitle":"Some Artist","displayThumbnail":"https://img/42.jpg","genre":"Rock"}]`
	if err := os.WriteFile(filepath.Join(dir, "favorites.json"), []byte(raw), 0644); err != nil {
		t.Fatalf("seed favorites: %v", err)
	}

	kv, err := NewFileKV(dir)
	if err != nil {
		t.Fatalf("new file kv: %v", err)
	}
	defer kv.Close()
	s := New(kv)

	favorites, err := s.Favorites(context.Background())
	if err != nil {
		t.Fatalf("favorites: %v", err)
	}
	if len(favorites) != 1 {
		t.Fatalf("expected one favorite, got %d", len(favorites))
	}
	got := favorites[0]
	if got.ID != "42" || got.Type != model.ItemTypeArtist || got.DisplayTitle != "Some Artist" || got.Genre != "Rock" {
		t.Fatalf("unexpected favorite: %+v", got)
	}
}

// failingKV simulates a broken storage medium.
type failingKV struct{}

var errBroken = errors.New("storage broken")

func (failingKV) Get(ctx context.Context, key string) ([]byte, error) { return nil, errBroken }
func (failingKV) Set(ctx context.Context, key string, value []byte) error {
	return errBroken
}

func TestStorageFailuresSurfaceAsErrors(t *testing.T) {
	s := New(failingKV{})
	ctx := context.Background()

	if _, err := s.Favorites(ctx); !errors.Is(err, errBroken) {
		t.Fatalf("favorites: expected storage error, got %v", err)
	}
	if _, err := s.AddFavorite(ctx, model.LibraryItem{ID: "1"}); !errors.Is(err, errBroken) {
		t.Fatalf("add favorite: expected storage error, got %v", err)
	}
	if _, err := s.CreatePlaylist(ctx, "P"); !errors.Is(err, errBroken) {
		t.Fatalf("create playlist: expected storage error, got %v", err)
	}
	if _, err := s.IsFavorite(ctx, "1"); !errors.Is(err, errBroken) {
		t.Fatalf("is favorite: expected storage error, got %v", err)
	}
}
