package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/afero"
	"gopkg.in/natefinch/lumberjack.v2"

	"shadowflix/api"
	"shadowflix/config"
	"shadowflix/handlers"
	"shadowflix/internal/storage"
	"shadowflix/services/accounts"
	"shadowflix/services/metadata"
)

func main() {
	portOverride := flag.Int("port", 0, "override server port from config")
	flag.Parse()

	configPath := os.Getenv("SHADOWFLIX_CONFIG")
	if configPath == "" {
		configPath = filepath.Join("data", "settings.json")
	}

	cfgManager := config.NewManager(configPath)
	settings, err := cfgManager.Load()
	if err != nil {
		log.Fatalf("failed to load settings: %v", err)
	}

	// Rotating file log alongside stdout when configured.
	if settings.Log.File != "" {
		logDir := filepath.Dir(settings.Log.File)
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			log.Printf("warning: could not create log directory %s: %v", logDir, err)
		} else {
			fileWriter := &lumberjack.Logger{
				Filename:   settings.Log.File,
				MaxSize:    settings.Log.MaxSize,
				MaxBackups: settings.Log.MaxBackups,
				MaxAge:     settings.Log.MaxAge,
				Compress:   settings.Log.Compress,
			}
			log.SetOutput(io.MultiWriter(os.Stdout, fileWriter))
			log.SetFlags(log.LstdFlags | log.Lshortfile)
			log.Printf("logging to file: %s", settings.Log.File)
		}
	}

	if *portOverride > 0 {
		settings.Server.Port = *portOverride
	}

	osFs := afero.NewOsFs()

	store, err := storage.New(osFs, settings.Storage.Directory)
	if err != nil {
		log.Fatalf("failed to open storage: %v", err)
	}

	accountsService, err := accounts.NewService(store)
	if err != nil {
		log.Fatalf("failed to create accounts service: %v", err)
	}

	metadataService := metadata.NewService(
		settings.Metadata.TMDBAPIKey,
		settings.Metadata.Language,
		settings.Cache.Directory,
		settings.Cache.MetadataTTLHours,
		osFs,
	)
	if settings.Metadata.TMDBAPIKey == "" {
		log.Printf("warning: no TMDB API key configured; browse rows will be empty")
	}

	r := mux.NewRouter()
	api.Register(
		r,
		handlers.NewAuthHandler(accountsService),
		handlers.NewPasswordsHandler(),
		handlers.NewWatchlistHandler(accountsService),
		handlers.NewMetadataHandler(metadataService),
	)

	addr := fmt.Sprintf("%s:%d", settings.Server.Host, settings.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Printf("shadowflix backend listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
