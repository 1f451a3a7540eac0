package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"groovefm/config"
	"groovefm/core/deezer"
	"groovefm/core/playback"
	"groovefm/core/resolve"
	"groovefm/logger"
	"groovefm/store"

	"github.com/gorilla/mux"
)

// Start initializes and starts the HTTP server.
func Start() {
	cfg := config.Load()

	logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogFile,
		MaxSize:    50,
		MaxBackups: 5,
		MaxAge:     14,
		Compress:   true,
	})

	kv, closeKV, err := store.OpenKV(cfg)
	if err != nil {
		logger.Fatal("failed to open library storage", logger.ErrorField(err))
	}
	defer closeKV()
	logger.Info("library storage ready", logger.String("backend", cfg.LibraryBackend))

	libraryStore := store.New(kv)
	catalogClient := deezer.NewClient(cfg.DeezerAPIURL)
	playbackClient := playback.NewClient(cfg.RapidAPIHost, cfg.RapidAPIKey)
	resolver := resolve.New(playbackClient)

	apiHandler := NewAPIHandler(libraryStore, catalogClient, playbackClient, resolver)

	router := mux.NewRouter()
	router.Use(corsMiddleware)
	router.Use(requestIDMiddleware)

	// Catalog endpoints
	router.HandleFunc("/api/charts", apiHandler.ChartsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/search", apiHandler.SearchHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/artists/{id}", apiHandler.GetArtistHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/artists/{id}/albums", apiHandler.GetArtistAlbumsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/artists/{id}/top", apiHandler.GetArtistTopTracksHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/albums/{id}", apiHandler.GetAlbumHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/albums/{id}/tracks", apiHandler.GetAlbumTracksHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/tracks/{id}", apiHandler.GetTrackHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/tracks/{id}/stream", apiHandler.GetStreamURLHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/stream", apiHandler.ResolveStreamHandler).Methods(http.MethodPost)

	// Favorites endpoints
	router.HandleFunc("/api/favorites", apiHandler.GetFavoritesHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/favorites", apiHandler.AddFavoriteHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/favorites/{id}", apiHandler.RemoveFavoriteHandler).Methods(http.MethodDelete)
	router.HandleFunc("/api/favorites/{id}/status", apiHandler.FavoriteStatusHandler).Methods(http.MethodGet)

	// Playlist endpoints
	router.HandleFunc("/api/playlists", apiHandler.GetPlaylistsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/playlists", apiHandler.CreatePlaylistHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/playlists/{id}", apiHandler.DeletePlaylistHandler).Methods(http.MethodDelete)
	router.HandleFunc("/api/playlists/{id}/name", apiHandler.RenamePlaylistHandler).Methods(http.MethodPut)
	router.HandleFunc("/api/playlists/{id}/tracks", apiHandler.AddToPlaylistHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/playlists/{id}/tracks/{trackId}", apiHandler.RemoveFromPlaylistHandler).Methods(http.MethodDelete)

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", logger.String("addr", cfg.ServerAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", logger.ErrorField(err))
		}
	}()

	<-stop
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", logger.ErrorField(err))
	}

	logger.Info("server stopped")
}
