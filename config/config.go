package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Storage drivers accepted in DatabaseConfig.Driver.
const (
	DriverFile    = "file"
	DriverSQLite3 = "sqlite3"
)

// Config holds all configuration for the application
type Config struct {
	// WhatsApp configuration
	WhatsApp WhatsAppConfig `json:"whatsapp"`

	// Database configuration
	Database DatabaseConfig `json:"database"`

	// Game configuration
	Game GameConfig `json:"game"`

	// Server configuration
	Server ServerConfig `json:"server"`
}

// WhatsAppConfig holds WhatsApp specific configuration
type WhatsAppConfig struct {
	// Enables the WhatsApp front-end
	Enabled bool `json:"enabled" env:"WHATSAPP_ENABLED"`

	// Path to store WhatsApp session data
	StoreDir string `json:"store_dir" env:"WHATSAPP_STORE_DIR"`

	// Client device name
	ClientName string `json:"client_name" env:"WHATSAPP_CLIENT_NAME"`
}

// DatabaseConfig holds save-game storage configuration
type DatabaseConfig struct {
	// Storage driver (file or sqlite3)
	Driver string `json:"driver" env:"DB_DRIVER"`

	// Database connection string, used by the sqlite3 driver
	DSN string `json:"dsn" env:"DB_DSN"`
}

// GameConfig holds game specific configuration
type GameConfig struct {
	// Random seed; 0 seeds from the clock
	Seed int64 `json:"seed" env:"GAME_SEED"`

	// Directory with optional events.yaml, disasters.yaml and names.yaml overrides
	DataDir string `json:"data_dir" env:"GAME_DATA_DIR"`

	// Directory for snapshot files, used by the file driver
	SaveDir string `json:"save_dir" env:"GAME_SAVE_DIR"`

	// Write snapshot files zstd-compressed
	CompressSaves bool `json:"compress_saves" env:"GAME_COMPRESS_SAVES"`
}

// ServerConfig holds server specific configuration
type ServerConfig struct {
	// Server port
	Port string `json:"port" env:"PORT"`

	// Log level (debug, info, warn, error)
	LogLevel string `json:"log_level" env:"LOG_LEVEL"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		WhatsApp: WhatsAppConfig{
			Enabled:    false,
			StoreDir:   "./whatsapp-store",
			ClientName: "VIDA LOKA LIFE",
		},
		Database: DatabaseConfig{
			Driver: DriverFile,
			DSN:    "./vida-loka.db",
		},
		Game: GameConfig{
			Seed:          0,
			DataDir:       "./assets/data",
			SaveDir:       "./data/saves",
			CompressSaves: false,
		},
		Server: ServerConfig{
			Port:     "8080",
			LogLevel: "info",
		},
	}
}

// Validate reports settings the server cannot start with
func (c Config) Validate() error {
	switch c.Database.Driver {
	case DriverFile:
		if c.Game.SaveDir == "" {
			return errors.New("game.save_dir is required for the file driver")
		}
	case DriverSQLite3:
		if c.Database.DSN == "" {
			return errors.New("database.dsn is required for the sqlite3 driver")
		}
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	if c.Server.Port == "" {
		return errors.New("server.port is required")
	}
	return nil
}

// LoadConfig loads configuration from a file, then applies environment overrides
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return config, err
	}

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		// Create default config file
		if err := SaveConfig(config, path); err != nil {
			return config, err
		}
	} else {
		// Read config file
		file, err := os.Open(path)
		if err != nil {
			return config, err
		}
		defer file.Close()

		decoder := json.NewDecoder(file)
		if err := decoder.Decode(&config); err != nil {
			return config, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := ApplyEnv(&config); err != nil {
		return config, err
	}
	return config, config.Validate()
}

// ApplyEnv loads a .env file when present and overlays environment variables
func ApplyEnv(config *Config) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	if err := env.Parse(config); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// SaveConfig saves configuration to a file
func SaveConfig(config Config, path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	// Create or truncate file
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	// Write config to file
	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(config); err != nil {
		return err
	}

	return nil
}
