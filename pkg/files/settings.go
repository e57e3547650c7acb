package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/finalwork/recipe-terminal/pkg/models"
)

// EnvPrefix prefixes environment overrides, e.g. RECIPES_ENDPOINT or
// RECIPES_JOURNAL_ENABLED
const EnvPrefix = "RECIPES"

// ReadSettings loads the project settings file
func ReadSettings() (*models.Settings, error) {
	return ReadSettingsFile(SettingsPath())
}

// ReadSettingsFile loads settings from path on top of the defaults and
// applies environment overrides. A missing file yields the defaults.
func ReadSettingsFile(path string) (*models.Settings, error) {
	v := newSettingsViper()

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to stat settings %s: %w", path, err)
	}

	var settings models.Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}

	normalizeSettings(&settings)
	return &settings, nil
}

func newSettingsViper() *viper.Viper {
	v := viper.New()
	d := models.DefaultSettings()

	v.SetDefault("endpoint", d.Endpoint)
	v.SetDefault("request_timeout", d.RequestTimeout)
	v.SetDefault("image.allowed_extensions", d.Image.AllowedExtensions)
	v.SetDefault("image.start_dir", d.Image.StartDir)
	v.SetDefault("journal.enabled", d.Journal.Enabled)
	v.SetDefault("journal.path", d.Journal.Path)
	v.SetDefault("ui.show_help", d.UI.ShowHelp)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func normalizeSettings(s *models.Settings) {
	if s.Endpoint == "" {
		s.Endpoint = models.DefaultEndpoint
	}
	if s.Image.StartDir == "" {
		s.Image.StartDir = "."
	}
	exts := make([]string, 0, len(s.Image.AllowedExtensions))
	for _, ext := range s.Image.AllowedExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	s.Image.AllowedExtensions = exts
}

// WriteSettings saves settings to the project settings file
func WriteSettings(settings *models.Settings) error {
	return WriteSettingsFile(SettingsPath(), settings)
}

// WriteSettingsFile saves settings as YAML to path
func WriteSettingsFile(path string, settings *models.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for settings: %w", err)
	}

	content, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings to YAML: %w", err)
	}

	return WriteFile(path, string(content))
}
