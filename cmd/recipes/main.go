package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/finalwork/recipe-terminal/cmd/commands"
	"github.com/finalwork/recipe-terminal/internal/cli"
	"github.com/finalwork/recipe-terminal/pkg/asset"
	"github.com/finalwork/recipe-terminal/pkg/draft"
	"github.com/finalwork/recipe-terminal/pkg/files"
	"github.com/finalwork/recipe-terminal/pkg/telemetry"
	"github.com/finalwork/recipe-terminal/pkg/tui"
)

// Version is set during build with -ldflags
var version = "dev"

var (
	verbose bool
	logFile string
	quiet   bool
	noColor bool

	closeLog = func() {}
)

var rootCmd = &cobra.Command{
	Use:   "recipes",
	Short: "Terminal form for creating recipes",
	Long: `Recipes is a terminal form for writing a recipe (name, ingredients,
description, directions and an optional image) and sending it to a recipe
service in one request.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := files.LoadEnv(); err != nil {
			return err
		}
		cli.SetGlobalFlags(quiet, noColor, false)

		log, logOut, closeFn, err := cli.OpenLogger(logFile, verbose)
		if err != nil {
			return err
		}
		closeLog = closeFn
		commands.SetLogger(log)

		if err := telemetry.Init(cmd.Context(), "recipes", version, logOut); err != nil {
			log.Warn("telemetry disabled", "error", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		shutdown()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runForm()
	},
}

func shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	telemetry.Shutdown(ctx)
	closeLog()
	closeLog = func() {}
}

func runForm() error {
	log := commands.Logger()

	ctx := cli.NewCommandContext(log)
	settings, err := ctx.LoadSettings()
	if err != nil {
		return err
	}

	pipeline, closeJournal := ctx.NewPipeline()
	defer closeJournal()

	form := tui.NewFormModel(tui.FormDeps{
		Store:    draft.NewStore(),
		Previews: asset.NewTempFileProvider(os.TempDir()),
		Pipeline: pipeline,
		Settings: settings,
		Log:      log,
	})
	defer form.Close()

	app := tui.NewApp(form)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to start the terminal user interface: %w", err)
	}
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "recipes version %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", files.LogPath(), "Log file path, or 'stderr'")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress informational output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(commands.NewCreateCommand())
	rootCmd.AddCommand(commands.NewInitCommand())
	rootCmd.AddCommand(commands.NewHistoryCommand())
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		shutdown()
		cli.PrintError("%v", err)
		os.Exit(1)
	}
}
