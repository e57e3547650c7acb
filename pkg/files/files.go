package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	RecipesDir   = ".recipes"
	SettingsFile = "settings.yaml"
	LogFile      = "recipes.log"
	JournalFile  = "journal.db"
	EnvFile      = ".env"
)

// SettingsPath returns the project settings file location
func SettingsPath() string {
	return filepath.Join(RecipesDir, SettingsFile)
}

// LogPath returns the default log file location
func LogPath() string {
	return filepath.Join(RecipesDir, LogFile)
}

// InitProjectStructure creates the project directory
func InitProjectStructure() error {
	if err := os.MkdirAll(RecipesDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", RecipesDir, err)
	}
	return nil
}

// ProjectExists reports whether the project directory is present
func ProjectExists() bool {
	info, err := os.Stat(RecipesDir)
	return err == nil && info.IsDir()
}

// LoadEnv loads variables from .env in the working directory. Variables
// already present in the environment win. A missing file is not an error.
func LoadEnv() error {
	if err := godotenv.Load(EnvFile); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", EnvFile, err)
	}
	return nil
}

// OpenLog opens the log file for appending, creating its directory
func OpenLog(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return f, nil
}

// WriteFile writes content to a file
func WriteFile(path string, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}
