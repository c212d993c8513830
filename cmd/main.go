package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"wordvault/internal/config"
	"wordvault/internal/handlers"
	"wordvault/internal/lookup"
	"wordvault/internal/middleware"
	"wordvault/internal/model"
	"wordvault/internal/repository"
	"wordvault/internal/service"
)

func main() {
	// Temporary logger until the config decides level and format.
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)

	if err := config.Load("./configs"); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}
	cfg := &config.Cfg

	logLevel := new(slog.LevelVar)
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		slog.Warn("Unknown log level in config, defaulting to INFO", slog.String("level", cfg.Log.Level))
	}

	var handler slog.Handler
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	slog.Info("Application starting", slog.String("version", config.AppVersion))

	db, err := repository.NewDB(cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		}
	}()

	// Dependency injection.
	collectionRepo := repository.NewGormCollectionRepository()
	wordRepo := repository.NewGormWordRepository()
	settingsRepo := repository.NewGormSettingsRepository()

	collectionService := service.NewCollectionService(db, collectionRepo, wordRepo)
	wordService := service.NewWordService(db, wordRepo, collectionRepo)
	settingsService := service.NewSettingsService(db, settingsRepo, model.StudyMode(cfg.App.DefaultMode))
	backupService := service.NewBackupService(db, collectionRepo, wordRepo, settingsRepo)

	dictionary := lookup.NewClient(cfg.Lookup.BaseURL, cfg.Lookup.TTSEndpoint, logger)
	importService := service.NewImportService(wordService, dictionary, func() service.DelayPolicy {
		return service.NewRandomDelayPolicy(cfg)
	})

	sessionTTL := time.Duration(cfg.App.SessionTTLMinutes) * time.Minute
	studyService := service.NewStudyService(db, wordRepo, wordService, settingsService, sessionTTL)

	collectionHandler := handlers.NewCollectionHandler(collectionService, logger)
	wordHandler := handlers.NewWordHandler(wordService, logger)
	importHandler := handlers.NewImportHandler(importService, logger)
	studyHandler := handlers.NewStudyHandler(studyService, logger)
	settingsHandler := handlers.NewSettingsHandler(settingsService, logger)
	backupHandler := handlers.NewBackupHandler(backupService, logger)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewStructuredLogger(logger))
	r.Use(middleware.Metrics)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	// Import batches pace themselves between lookups; give them room.
	r.Use(chimiddleware.Timeout(10 * time.Minute))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/collections", func(r chi.Router) {
			r.Post("/", collectionHandler.CreateCollection)
			r.Get("/", collectionHandler.ListCollections)
			r.Put("/{collection_id}", collectionHandler.RenameCollection)
			r.Delete("/{collection_id}", collectionHandler.DeleteCollection)
		})

		r.Route("/words", func(r chi.Router) {
			r.Post("/", wordHandler.PostWord)
			r.Get("/", wordHandler.GetWords)
			r.Get("/{word_id}", wordHandler.GetWord)
			r.Patch("/{word_id}", wordHandler.PatchWord)
			r.Delete("/{word_id}", wordHandler.DeleteWord)
		})

		r.Post("/imports", importHandler.PostImport)

		r.Route("/study/sessions", func(r chi.Router) {
			r.Post("/", studyHandler.StartSession)
			r.Get("/{session_id}", studyHandler.GetSession)
			r.Post("/{session_id}/answers", studyHandler.PostAnswer)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", settingsHandler.GetSettings)
			r.Patch("/", settingsHandler.PatchSettings)
			r.Delete("/progress", settingsHandler.ResetProgress)
		})

		r.Get("/backup", backupHandler.Export)
		r.Post("/backup", backupHandler.Import)
		r.Delete("/data", backupHandler.ClearAll)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := sqlDB.PingContext(r.Context()); err != nil {
			slog.ErrorContext(r.Context(), "Health check failed: could not ping DB", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}
