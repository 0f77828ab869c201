package service

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds everything the commands need to reach the store and serve.
type Config struct {
	Addr            string        `validate:"required"`
	Driver          string        `validate:"oneof=badger postgres"`
	BadgerPath      string        `validate:"required_if=Driver badger"`
	DatabaseURL     string        `validate:"required_if=Driver postgres"`
	BackupDir       string        `validate:"required"`
	LogLevel        string        `validate:"oneof=trace debug info warn error disabled"`
	LogFormat       string        `validate:"oneof=console json"`
	ShutdownTimeout time.Duration `validate:"gt=0"`
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		Driver:          "badger",
		BadgerPath:      "data/badger",
		BackupDir:       "data/backups",
		LogLevel:        "info",
		LogFormat:       "console",
		ShutdownTimeout: 10 * time.Second,
	}
}

// LoadConfig starts from the defaults, loads envFile into the environment
// when it exists and applies the BLOGLY_* variables. Variables already set in
// the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	cfg := DefaultConfig()

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	vars := map[string]*string{
		"BLOGLY_ADDR":         &cfg.Addr,
		"BLOGLY_DRIVER":       &cfg.Driver,
		"BLOGLY_BADGER_PATH":  &cfg.BadgerPath,
		"BLOGLY_DATABASE_URL": &cfg.DatabaseURL,
		"BLOGLY_BACKUP_DIR":   &cfg.BackupDir,
		"BLOGLY_LOG_LEVEL":    &cfg.LogLevel,
		"BLOGLY_LOG_FORMAT":   &cfg.LogFormat,
	}
	for key, field := range vars {
		if v, ok := os.LookupEnv(key); ok {
			*field = v
		}
	}

	if v, ok := os.LookupEnv("BLOGLY_SHUTDOWN_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("BLOGLY_SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.ShutdownTimeout = d
	}

	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
