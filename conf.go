package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/mkorkmaz/planr/internal/store"
)

type Config struct {
	DatabasePath string
	LogLevel     string
	LogPath      string
}

const defaultLogLevel = "warn"

// LoadConfig resolves configuration from the environment, then an
// optional conf file, then built-in defaults. Environment wins.
func LoadConfig() (Config, error) {
	fromEnv := Config{
		DatabasePath: os.Getenv("PLANR_DB"),
		LogLevel:     os.Getenv("PLANR_LOG_LEVEL"),
		LogPath:      os.Getenv("PLANR_LOG_PATH"),
	}

	var fromFile Config
	cfgDir, err := os.UserConfigDir()
	if err == nil {
		confFile := filepath.Join(cfgDir, "planr", "planr.conf")
		if _, statErr := os.Stat(confFile); statErr == nil {
			if loadErr := godotenv.Load(confFile); loadErr != nil {
				return Config{}, fmt.Errorf("load %s: %w", confFile, loadErr)
			}
			fromFile = Config{
				DatabasePath: os.Getenv("PLANR_DB"),
				LogLevel:     os.Getenv("PLANR_LOG_LEVEL"),
				LogPath:      os.Getenv("PLANR_LOG_PATH"),
			}
		}
	}

	defaultDB, err := store.DefaultDBPath()
	if err != nil {
		return Config{}, err
	}
	defaultLog := filepath.Join(filepath.Dir(defaultDB), "planr.log")

	return Config{
		DatabasePath: coalesce(fromEnv.DatabasePath, fromFile.DatabasePath, defaultDB),
		LogLevel:     coalesce(fromEnv.LogLevel, fromFile.LogLevel, defaultLogLevel),
		LogPath:      coalesce(fromEnv.LogPath, fromFile.LogPath, defaultLog),
	}, nil
}

func coalesce(args ...string) string {
	for _, s := range args {
		if s != "" {
			return s
		}
	}
	return ""
}
