package server

import (
	"encoding/json"
	"net/http"

	"groovefm/core/deezer"
	"groovefm/core/playback"
	"groovefm/core/resolve"
	"groovefm/logger"
	"groovefm/store"

	"github.com/google/uuid"
)

// APIHandler bundles the store, the two external clients and the resolver
// for the HTTP handlers.
type APIHandler struct {
	store    *store.Store
	catalog  *deezer.Client
	playback *playback.Client
	resolver *resolve.Resolver
}

// NewAPIHandler creates the API handler.
func NewAPIHandler(s *store.Store, catalog *deezer.Client, pb *playback.Client, r *resolve.Resolver) *APIHandler {
	return &APIHandler{
		store:    s,
		catalog:  catalog,
		playback: pb,
		resolver: r,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", logger.ErrorField(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// corsMiddleware allows the mobile/web clients to call the API cross-origin.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// requestIDMiddleware tags every request with an ID so log lines for one
// request can be correlated.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()
		w.Header().Set("X-Request-ID", requestID)
		logger.Debug("request",
			logger.String("requestId", requestID),
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path))
		next.ServeHTTP(w, r)
	})
}
