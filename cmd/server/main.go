package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/mattn/go-sqlite3" // SQLite3 driver
	"github.com/user/vida-loka-life/config"
	"github.com/user/vida-loka-life/internal/api"
	"github.com/user/vida-loka-life/internal/game"
	"github.com/user/vida-loka-life/internal/persistence"
	"github.com/user/vida-loka-life/internal/whatsapp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "./config/config.json", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Set up logger
	logger, err := setupLogger(cfg.Server.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Load game data
	catalog, err := game.NewDataLoader(cfg.Game.DataDir, logger).LoadCatalog()
	if err != nil {
		logger.Fatal("Failed to load game data", zap.Error(err))
	}
	logger.Info("Catalog ready",
		zap.Int("actions", len(catalog.Actions)),
		zap.Int("events", len(catalog.Events)),
		zap.Int("disasters", len(catalog.Disasters)))

	// Open save storage
	storage, lives, closeStorage, err := openStorage(cfg)
	if err != nil {
		logger.Fatal("Failed to open storage", zap.Error(err))
	}
	defer closeStorage()

	// Initialize game manager
	gameManager := game.NewGameManager(cfg, catalog, storage)
	gameManager.SetLogger(logger)

	router := chi.NewRouter()
	router.Mount("/", api.NewServer(gameManager, lives, logger).Router())

	var clientManager *whatsapp.ClientManager
	if cfg.WhatsApp.Enabled {
		// Initialize WhatsApp client manager
		clientManager = whatsapp.NewClientManager(gameManager, cfg, logger)

		// Connect GameManager with ClientManager using the MessageSender interface
		gameManager.SetMessageSender(clientManager)

		registry := whatsapp.NewPairingRegistry(cfg.WhatsApp.StoreDir, logger)
		qrManager := whatsapp.NewQRCodeManager(clientManager, registry, logger)
		mountWhatsApp(router, clientManager, qrManager, registry, logger)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start HTTP server
	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server stopped", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	waitForShutdown(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	if clientManager != nil {
		clientManager.DisconnectAll()
	}
}

func setupLogger(level string) (*zap.Logger, error) {
	atomic, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	config := zap.NewProductionConfig()
	config.Level = atomic
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return config.Build()
}

// openStorage picks the snapshot store named by the config. lives is nil
// for stores that cannot list saved games.
func openStorage(cfg config.Config) (game.SnapshotStore, api.LifeLister, func(), error) {
	switch cfg.Database.Driver {
	case config.DriverSQLite3:
		db, err := persistence.Open(cfg.Database.DSN)
		if err != nil {
			return nil, nil, nil, err
		}
		return db, db, func() { db.Close() }, nil
	default:
		files, err := game.NewGameStateStorage(cfg.Game.SaveDir, cfg.Game.CompressSaves)
		if err != nil {
			return nil, nil, nil, err
		}
		return files, nil, func() {}, nil
	}
}

// mountWhatsApp adds the pairing and session endpoints
func mountWhatsApp(router chi.Router, clientManager *whatsapp.ClientManager, qrManager *whatsapp.QRCodeManager, registry *whatsapp.PairingRegistry, logger *zap.Logger) {
	// Serve QR code images written during pairing
	router.Get("/qrcodes/*", func(w http.ResponseWriter, r *http.Request) {
		http.StripPrefix("/qrcodes/", http.FileServer(http.Dir(registry.QRDir()))).ServeHTTP(w, r)
	})

	// Link a bot number by QR code
	router.Post("/qr", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			PhoneNumber string `json:"phone_number"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PhoneNumber == "" {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		pairing, code, err := qrManager.Pair(r.Context(), req.PhoneNumber)
		if errors.Is(err, whatsapp.ErrAlreadyPaired) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		if err != nil {
			logger.Error("Failed to generate QR code",
				zap.String("phone_number", req.PhoneNumber),
				zap.Error(err))
			http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"qr_code":    code,
			"session_id": pairing.ID,
			"image":      pairing.Image,
		})
	})

	// Render an arbitrary pairing code without touching disk
	router.Get("/qr.png", func(w http.ResponseWriter, r *http.Request) {
		png, err := qrManager.PNG(r.URL.Query().Get("code"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(png)
	})

	router.Get("/sessions", func(w http.ResponseWriter, r *http.Request) {
		pairings, err := registry.List()
		if err != nil {
			logger.Error("Failed to list sessions", zap.Error(err))
			http.Error(w, "Failed to list sessions", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(pairings)
	})

	router.Delete("/sessions/{phone_number}/{session_id}", func(w http.ResponseWriter, r *http.Request) {
		phoneNumber := chi.URLParam(r, "phone_number")
		sessionID := chi.URLParam(r, "session_id")

		// Disconnect client if connected
		if err := clientManager.Disconnect(phoneNumber); err != nil {
			logger.Debug("No client to disconnect", zap.String("phone_number", phoneNumber))
		}

		err := registry.Remove(phoneNumber, sessionID)
		if errors.Is(err, whatsapp.ErrPairingNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if err != nil {
			logger.Error("Failed to delete session",
				zap.String("phone_number", phoneNumber),
				zap.String("session_id", sessionID),
				zap.Error(err))
			http.Error(w, "Failed to delete session", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
	})
}

func waitForShutdown(logger *zap.Logger) {
	// Set up channel for shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Wait for shutdown signal
	sig := <-sigChan
	logger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	logger.Info("Shutting down")
}
