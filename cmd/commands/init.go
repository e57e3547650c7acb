package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/finalwork/recipe-terminal/internal/cli"
	"github.com/finalwork/recipe-terminal/pkg/files"
	"github.com/finalwork/recipe-terminal/pkg/models"
)

// NewInitCommand creates the init command
func NewInitCommand() *cobra.Command {
	var (
		endpoint string
		yes      bool
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize recipe settings in the current directory",
		Long: `Creates the .recipes folder with a settings file.

Without --yes the endpoint is asked for interactively.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(files.SettingsPath()); err == nil && !force {
				if yes {
					cli.PrintInfo("%s already exists (use --force to overwrite)", files.SettingsPath())
					return nil
				}
				overwrite, err := cli.Confirm(fmt.Sprintf("%s already exists. Overwrite?", files.SettingsPath()), false)
				if err != nil {
					return fmt.Errorf("failed to read confirmation: %w", err)
				}
				if !overwrite {
					cli.PrintInfo("Kept existing %s", files.SettingsPath())
					return nil
				}
			}

			settings := models.DefaultSettings()
			if endpoint != "" {
				settings.Endpoint = endpoint
			}

			if !yes && endpoint == "" {
				if err := promptSettings(settings); err != nil {
					return err
				}
			}

			if err := cli.ValidateEndpoint(settings.Endpoint); err != nil {
				return err
			}

			if err := files.InitProjectStructure(); err != nil {
				return fmt.Errorf("failed to initialize project structure: %w", err)
			}
			if err := files.WriteSettings(settings); err != nil {
				return err
			}

			logger.Info("project initialized", "endpoint", settings.Endpoint)
			cli.PrintSuccess("Created %s", files.SettingsPath())
			cli.PrintInfo("Run 'recipes' to open the recipe form.")
			return nil
		},
	}

	cmd.Flags().StringVar(&endpoint, "endpoint", "", "Recipe creation endpoint")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Accept defaults without prompting")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing settings")

	return cmd
}

func promptSettings(settings *models.Settings) error {
	journal := settings.Journal.Enabled

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Endpoint").
				Description("Where new recipes are sent").
				Value(&settings.Endpoint).
				Validate(cli.ValidateEndpoint),

			huh.NewConfirm().
				Title("Keep a local history of submissions?").
				Value(&journal),
		),
	).WithTheme(huh.ThemeDracula())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return fmt.Errorf("init cancelled")
		}
		return fmt.Errorf("prompt failed: %w", err)
	}

	settings.Journal.Enabled = journal
	return nil
}
