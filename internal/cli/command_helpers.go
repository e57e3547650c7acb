package cli

import (
	"fmt"
	"log/slog"

	"github.com/finalwork/recipe-terminal/pkg/files"
	"github.com/finalwork/recipe-terminal/pkg/journal"
	"github.com/finalwork/recipe-terminal/pkg/models"
	"github.com/finalwork/recipe-terminal/pkg/submit"
)

// CommandContext manages settings and shared resources for a command
type CommandContext struct {
	ProjectPath string
	Settings    *models.Settings
	Log         *slog.Logger
}

// NewCommandContext creates a new command context
func NewCommandContext(log *slog.Logger) *CommandContext {
	if log == nil {
		log = slog.Default()
	}
	return &CommandContext{
		ProjectPath: files.RecipesDir,
		Log:         log,
	}
}

// ValidateProject ensures the project is initialized
func (c *CommandContext) ValidateProject() error {
	if !files.ProjectExists() {
		return fmt.Errorf("no %s directory found. Run 'recipes init' first", c.ProjectPath)
	}
	return nil
}

// LoadSettings reads settings once and caches them
func (c *CommandContext) LoadSettings() (*models.Settings, error) {
	if c.Settings != nil {
		return c.Settings, nil
	}
	settings, err := files.ReadSettings()
	if err != nil {
		return nil, err
	}
	c.Settings = settings
	return settings, nil
}

// LoadSettingsWithDefault loads settings or returns default if error
func (c *CommandContext) LoadSettingsWithDefault() *models.Settings {
	settings, err := c.LoadSettings()
	if err != nil {
		c.Log.Warn("using default settings", "error", err)
		settings = models.DefaultSettings()
		c.Settings = settings
	}
	return settings
}

// OpenJournal opens the submission journal when enabled. It returns nil
// without error when journaling is switched off.
func (c *CommandContext) OpenJournal() (*journal.Store, error) {
	settings := c.LoadSettingsWithDefault()
	if !settings.Journal.Enabled {
		return nil, nil
	}
	return journal.Open(settings.Journal.Path)
}

// NewPipeline builds a submission pipeline from settings. The returned
// close func releases the journal, if any.
func (c *CommandContext) NewPipeline() (*submit.Pipeline, func()) {
	settings := c.LoadSettingsWithDefault()
	client := submit.NewClient(settings.Endpoint, settings.RequestTimeout, c.Log)

	var opts []submit.Option
	closeFn := func() {}

	store, err := c.OpenJournal()
	if err != nil {
		c.Log.Warn("journal unavailable", "error", err)
	} else if store != nil {
		opts = append(opts, submit.WithRecorder(store))
		closeFn = func() {
			if err := store.Close(); err != nil {
				c.Log.Warn("failed to close journal", "error", err)
			}
		}
	}

	return submit.NewPipeline(client, c.Log, opts...), closeFn
}
