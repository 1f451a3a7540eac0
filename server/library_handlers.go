package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"groovefm/logger"
	"groovefm/model"

	"github.com/gorilla/mux"
)

// GetFavoritesHandler returns the favorites collection.
func (h *APIHandler) GetFavoritesHandler(w http.ResponseWriter, r *http.Request) {
	favorites, err := h.store.Favorites(r.Context())
	if err != nil {
		logger.Error("failed to load favorites", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "failed to load favorites")
		return
	}
	writeJSON(w, http.StatusOK, favorites)
}

// AddFavoriteHandler adds a library item to favorites. Responds with
// added=false when the item is already a favorite.
func (h *APIHandler) AddFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	var item model.LibraryItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid favorite payload")
		return
	}
	if item.ID == "" {
		writeError(w, http.StatusBadRequest, "favorite id is required")
		return
	}

	added, err := h.store.AddFavorite(r.Context(), item)
	if err != nil {
		logger.Error("failed to add favorite", logger.String("id", item.ID), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "failed to add favorite")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"added": added})
}

// RemoveFavoriteHandler removes a favorite. Removing something that is not
// a favorite succeeds.
func (h *APIHandler) RemoveFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.store.RemoveFavorite(r.Context(), id); err != nil {
		logger.Error("failed to remove favorite", logger.String("id", id), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "failed to remove favorite")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"removed": true})
}

// FavoriteStatusHandler reports whether an ID is a favorite. Drives the
// toggle state on detail screens.
func (h *APIHandler) FavoriteStatusHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	isFavorite, err := h.store.IsFavorite(r.Context(), id)
	if err != nil {
		logger.Error("failed to check favorite", logger.String("id", id), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "failed to check favorite")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"favorite": isFavorite})
}

// GetPlaylistsHandler returns all playlists.
func (h *APIHandler) GetPlaylistsHandler(w http.ResponseWriter, r *http.Request) {
	playlists, err := h.store.Playlists(r.Context())
	if err != nil {
		logger.Error("failed to load playlists", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "failed to load playlists")
		return
	}
	writeJSON(w, http.StatusOK, playlists)
}

// CreatePlaylistHandler creates a playlist. The name must be non-empty;
// that check belongs here, not in the store.
func (h *APIHandler) CreatePlaylistHandler(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid playlist payload")
		return
	}
	if strings.TrimSpace(payload.Name) == "" {
		writeError(w, http.StatusBadRequest, "playlist name is required")
		return
	}

	playlist, err := h.store.CreatePlaylist(r.Context(), payload.Name)
	if err != nil {
		logger.Error("failed to create playlist", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "failed to create playlist")
		return
	}
	writeJSON(w, http.StatusCreated, playlist)
}

// DeletePlaylistHandler deletes a playlist.
func (h *APIHandler) DeletePlaylistHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.store.DeletePlaylist(r.Context(), id); err != nil {
		logger.Error("failed to delete playlist", logger.String("id", id), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "failed to delete playlist")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// RenamePlaylistHandler renames a playlist in place.
func (h *APIHandler) RenamePlaylistHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var payload struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid rename payload")
		return
	}
	if strings.TrimSpace(payload.Name) == "" {
		writeError(w, http.StatusBadRequest, "playlist name is required")
		return
	}

	renamed, err := h.store.RenamePlaylist(r.Context(), id, payload.Name)
	if err != nil {
		logger.Error("failed to rename playlist", logger.String("id", id), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "failed to rename playlist")
		return
	}
	if !renamed {
		writeError(w, http.StatusNotFound, "playlist not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"renamed": true})
}

// AddToPlaylistHandler appends a track to a playlist. Responds with
// added=false when the playlist is missing or the track is already in it.
func (h *APIHandler) AddToPlaylistHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var track model.Track
	if err := json.NewDecoder(r.Body).Decode(&track); err != nil {
		writeError(w, http.StatusBadRequest, "invalid track payload")
		return
	}
	if track.ID == "" {
		writeError(w, http.StatusBadRequest, "track id is required")
		return
	}

	added, err := h.store.AddToPlaylist(r.Context(), id, track)
	if err != nil {
		logger.Error("failed to add track to playlist",
			logger.String("playlistId", id),
			logger.String("trackId", track.ID),
			logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "failed to add track")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"added": added})
}

// RemoveFromPlaylistHandler removes a track from a playlist.
func (h *APIHandler) RemoveFromPlaylistHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	playlistID := vars["id"]
	trackID := vars["trackId"]

	removed, err := h.store.RemoveFromPlaylist(r.Context(), playlistID, trackID)
	if err != nil {
		logger.Error("failed to remove track from playlist",
			logger.String("playlistId", playlistID),
			logger.String("trackId", trackID),
			logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "failed to remove track")
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "playlist not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"removed": true})
}
