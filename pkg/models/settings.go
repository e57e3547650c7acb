package models

import "time"

// DefaultEndpoint is the recipe creation endpoint used when no settings file exists
const DefaultEndpoint = "https://finalwork-1093442293034.europe-central2.run.app/create-recipe/"

// Settings represents the application configuration
type Settings struct {
	Endpoint       string          `yaml:"endpoint" json:"endpoint" mapstructure:"endpoint"`
	RequestTimeout time.Duration   `yaml:"request_timeout" json:"request_timeout" mapstructure:"request_timeout"`
	Image          ImageSettings   `yaml:"image" json:"image" mapstructure:"image"`
	Journal        JournalSettings `yaml:"journal" json:"journal" mapstructure:"journal"`
	UI             UISettings      `yaml:"ui" json:"ui" mapstructure:"ui"`
}

// ImageSettings controls image selection
type ImageSettings struct {
	AllowedExtensions []string `yaml:"allowed_extensions" json:"allowed_extensions" mapstructure:"allowed_extensions"`
	StartDir          string   `yaml:"start_dir" json:"start_dir" mapstructure:"start_dir"`
}

// JournalSettings controls the local record of submissions
type JournalSettings struct {
	Enabled bool   `yaml:"enabled" json:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" json:"path" mapstructure:"path"`
}

// UISettings controls UI preferences
type UISettings struct {
	ShowHelp bool `yaml:"show_help" json:"show_help" mapstructure:"show_help"`
}

// DefaultSettings returns the default configuration.
// A zero RequestTimeout leaves the transport default in place.
func DefaultSettings() *Settings {
	return &Settings{
		Endpoint:       DefaultEndpoint,
		RequestTimeout: 0,
		Image: ImageSettings{
			AllowedExtensions: []string{".png", ".jpg", ".jpeg", ".gif", ".webp"},
			StartDir:          ".",
		},
		Journal: JournalSettings{
			Enabled: true,
			Path:    ".recipes/journal.db",
		},
		UI: UISettings{
			ShowHelp: true,
		},
	}
}
