package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finalwork/recipe-terminal/internal/cli"
	"github.com/finalwork/recipe-terminal/pkg/files"
)

// NewConfigCommand creates the config command
func NewConfigCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective settings",
		Long: `Prints settings after applying defaults, the settings file and
RECIPES_* environment overrides.`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if output != string(cli.FormatYAML) && output != string(cli.FormatJSON) {
				return fmt.Errorf("invalid output format: %s (must be: yaml or json)", output)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := files.ReadSettings()
			if err != nil {
				return err
			}
			return cli.OutputResults(cmd.OutOrStdout(), output, settings)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "Output format (yaml, json)")

	return cmd
}
