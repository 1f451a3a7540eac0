package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"groovefm/core/normalize"
	"groovefm/logger"
	"groovefm/model"

	"github.com/gorilla/mux"
)

// limitParam reads the limit query parameter with a default.
func limitParam(r *http.Request, fallback int) int {
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

// ChartsHandler returns popular artists, albums and tracks for the home
// screen. The three upstream fetches run in parallel and a failed one just
// yields an empty list: remote unavailability is "no data", not an error.
func (h *APIHandler) ChartsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit := limitParam(r, 10)

	artists := []model.Artist{}
	albums := []model.Album{}
	tracks := []model.Track{}

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		raw, err := h.catalog.ChartArtists(ctx, limit)
		if err != nil {
			logger.Warn("chart artists unavailable", logger.ErrorField(err))
			return
		}
		artists = normalize.Artists(raw)
	}()
	go func() {
		defer wg.Done()
		raw, err := h.catalog.ChartAlbums(ctx, limit)
		if err != nil {
			logger.Warn("chart albums unavailable", logger.ErrorField(err))
			return
		}
		albums = normalize.Albums(raw)
	}()
	go func() {
		defer wg.Done()
		// The playback service has no chart endpoint; a broad search stands
		// in for "popular tracks".
		raw, err := h.playback.SearchTracks(ctx, "pop", limit)
		if err != nil {
			logger.Warn("popular tracks unavailable", logger.ErrorField(err))
			return
		}
		tracks = normalize.Tracks(raw)
	}()
	wg.Wait()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"artists": artists,
		"albums":  albums,
		"tracks":  tracks,
	})
}

// SearchHandler searches artists, albums and tracks in parallel.
func (h *APIHandler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}
	limit := limitParam(r, 20)

	artists := []model.Artist{}
	albums := []model.Album{}
	tracks := []model.Track{}

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		raw, err := h.catalog.SearchArtists(ctx, query, limit)
		if err != nil {
			logger.Warn("artist search unavailable", logger.ErrorField(err))
			return
		}
		artists = normalize.Artists(raw)
	}()
	go func() {
		defer wg.Done()
		raw, err := h.catalog.SearchAlbums(ctx, query, limit)
		if err != nil {
			logger.Warn("album search unavailable", logger.ErrorField(err))
			return
		}
		albums = normalize.Albums(raw)
	}()
	go func() {
		defer wg.Done()
		raw, err := h.playback.SearchTracks(ctx, query, limit)
		if err != nil {
			logger.Warn("track search unavailable", logger.ErrorField(err))
			return
		}
		tracks = normalize.Tracks(raw)
	}()
	wg.Wait()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"artists": artists,
		"albums":  albums,
		"tracks":  tracks,
	})
}

// GetArtistHandler returns one artist.
func (h *APIHandler) GetArtistHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	raw, err := h.catalog.Artist(r.Context(), id)
	if err != nil {
		logger.Warn("artist lookup failed", logger.String("id", id), logger.ErrorField(err))
		writeError(w, http.StatusNotFound, "artist not found")
		return
	}
	writeJSON(w, http.StatusOK, normalize.Artist(*raw))
}

// GetArtistAlbumsHandler returns an artist's albums.
func (h *APIHandler) GetArtistAlbumsHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	raw, err := h.catalog.ArtistAlbums(r.Context(), id, limitParam(r, 20))
	if err != nil {
		logger.Warn("artist albums unavailable", logger.String("id", id), logger.ErrorField(err))
		writeJSON(w, http.StatusOK, []model.Album{})
		return
	}
	writeJSON(w, http.StatusOK, normalize.Albums(raw))
}

// GetArtistTopTracksHandler returns tracks for an artist. The metadata
// service's own top listing is tried first; when it is unavailable or
// empty, the playback service is searched by artist name so the response
// still carries playable previews.
func (h *APIHandler) GetArtistTopTracksHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]
	limit := limitParam(r, 20)

	artist, err := h.catalog.Artist(ctx, id)
	if err != nil {
		logger.Warn("artist lookup failed", logger.String("id", id), logger.ErrorField(err))
		writeError(w, http.StatusNotFound, "artist not found")
		return
	}

	raw, err := h.catalog.ArtistTopTracks(ctx, id, limit)
	if err == nil && len(raw) > 0 {
		writeJSON(w, http.StatusOK, normalize.CatalogTracks(raw))
		return
	}
	if err != nil {
		logger.Warn("artist top listing unavailable", logger.String("id", id), logger.ErrorField(err))
	}

	tracks, err := h.resolver.ArtistTracks(ctx, artist.Name, limit)
	if err != nil {
		logger.Warn("artist tracks unavailable", logger.String("id", id), logger.ErrorField(err))
		tracks = []model.Track{}
	}
	writeJSON(w, http.StatusOK, tracks)
}

// GetAlbumHandler returns one album together with playable tracks resolved
// through the playback service.
func (h *APIHandler) GetAlbumHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	raw, err := h.catalog.Album(ctx, id)
	if err != nil {
		logger.Warn("album lookup failed", logger.String("id", id), logger.ErrorField(err))
		writeError(w, http.StatusNotFound, "album not found")
		return
	}
	album := normalize.Album(*raw)

	tracks, err := h.resolver.AlbumTracks(ctx, album.ArtistName, album.Title, limitParam(r, 20))
	if err != nil {
		logger.Warn("album tracks unavailable", logger.String("id", id), logger.ErrorField(err))
		tracks = []model.Track{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"album":  album,
		"tracks": tracks,
	})
}

// GetAlbumTracksHandler returns the album's own track listing from the
// metadata service, backfilling the album title and cover the listing
// omits. Falls back to a playback search when the listing is unavailable.
func (h *APIHandler) GetAlbumTracksHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]
	limit := limitParam(r, 50)

	raw, err := h.catalog.Album(ctx, id)
	if err != nil {
		logger.Warn("album lookup failed", logger.String("id", id), logger.ErrorField(err))
		writeError(w, http.StatusNotFound, "album not found")
		return
	}
	album := normalize.Album(*raw)

	listing, err := h.catalog.AlbumTracks(ctx, id, limit)
	if err == nil && len(listing) > 0 {
		tracks := normalize.CatalogTracks(listing)
		for i := range tracks {
			if tracks[i].AlbumTitle == "" {
				tracks[i].AlbumTitle = album.Title
			}
			if tracks[i].ThumbnailURL == "" {
				tracks[i].ThumbnailURL = album.ThumbnailURL
			}
			if tracks[i].ArtistName == "" {
				tracks[i].ArtistName = album.ArtistName
			}
		}
		writeJSON(w, http.StatusOK, tracks)
		return
	}
	if err != nil {
		logger.Warn("album track listing unavailable", logger.String("id", id), logger.ErrorField(err))
	}

	tracks, err := h.resolver.AlbumTracks(ctx, album.ArtistName, album.Title, limit)
	if err != nil {
		logger.Warn("album tracks unavailable", logger.String("id", id), logger.ErrorField(err))
		tracks = []model.Track{}
	}
	writeJSON(w, http.StatusOK, tracks)
}

// GetTrackHandler returns one track.
func (h *APIHandler) GetTrackHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	raw, err := h.playback.Track(r.Context(), id)
	if err != nil {
		logger.Warn("track lookup failed", logger.String("id", id), logger.ErrorField(err))
		writeError(w, http.StatusNotFound, "track not found")
		return
	}
	writeJSON(w, http.StatusOK, normalize.Track(*raw))
}

// GetStreamURLHandler returns the playable preview URL for a track known
// by id. An empty URL means the track is unplayable, which is a valid
// answer.
func (h *APIHandler) GetStreamURLHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	streamURL, err := h.resolver.StreamURL(r.Context(), model.Track{ID: id, SourceTrackID: id})
	if err != nil {
		logger.Warn("stream resolution failed", logger.String("id", id), logger.ErrorField(err))
		streamURL = ""
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"streamUrl": streamURL,
		"playable":  streamURL != "",
	})
}

// ResolveStreamHandler resolves a playable URL for a full track record,
// the shape the player holds: the track's own preview wins, then a by-id
// lookup, then a title+artist text search. Tracks that came from stored
// playlists or favorites may carry no source id, which is what the text
// fallback is for.
func (h *APIHandler) ResolveStreamHandler(w http.ResponseWriter, r *http.Request) {
	var track model.Track
	if err := json.NewDecoder(r.Body).Decode(&track); err != nil {
		writeError(w, http.StatusBadRequest, "invalid track payload")
		return
	}

	streamURL, err := h.resolver.StreamURL(r.Context(), track)
	if err != nil {
		logger.Warn("stream resolution failed",
			logger.String("trackId", track.ID),
			logger.String("title", track.Title),
			logger.ErrorField(err))
		streamURL = ""
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"streamUrl": streamURL,
		"playable":  streamURL != "",
	})
}
