package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/finalwork/recipe-terminal/internal/cli"
	"github.com/finalwork/recipe-terminal/pkg/asset"
	"github.com/finalwork/recipe-terminal/pkg/draft"
	"github.com/finalwork/recipe-terminal/pkg/files"
	"github.com/finalwork/recipe-terminal/pkg/models"
	"github.com/finalwork/recipe-terminal/pkg/submit"
)

type createOptions struct {
	title       string
	ingredients []string
	description string
	directions  string
	image       string
	dryRun      bool
	curl        bool
	copy        bool
	output      string
}

// createResult is the machine-readable result of the create command
type createResult struct {
	Title      string `json:"title" yaml:"title"`
	Status     string `json:"status" yaml:"status"`
	Message    string `json:"message" yaml:"message"`
	StatusCode int    `json:"status_code,omitempty" yaml:"status_code,omitempty"`
	DryRun     bool   `json:"dry_run,omitempty" yaml:"dry_run,omitempty"`
}

// NewCreateCommand creates the create command
func NewCreateCommand() *cobra.Command {
	opts := &createOptions{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a recipe without the form",
		Long: `Create a recipe from flags and send it to the configured endpoint.

The recipe goes through the same checks as the interactive form: it needs a
name, at least one ingredient (none of them empty), a description and
directions. An image is optional.

Examples:
  # Create a simple recipe
  recipes create --title Soup --ingredient water --ingredient salt \
    --description "Hot and simple" --directions "Boil everything"

  # Attach an image
  recipes create --title Toast --ingredient bread --description Crunchy \
    --directions Heat --image toast.jpg

  # Check the recipe without sending it
  recipes create --title Soup --ingredient water --description Hot \
    --directions Boil --dry-run

  # Print the equivalent curl command
  recipes create --title Soup --ingredient water --description Hot \
    --directions Boil --curl

  # Copy the curl command to the clipboard
  recipes create --title Soup --ingredient water --description Hot \
    --directions Boil --curl --copy`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.copy && !opts.curl {
				return fmt.Errorf("--copy requires --curl")
			}
			return cli.ValidateOutputFormat(opts.output)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.title, "title", "t", "", "Recipe name")
	cmd.Flags().StringArrayVarP(&opts.ingredients, "ingredient", "i", nil, "Ingredient (repeatable, order is kept)")
	cmd.Flags().StringVarP(&opts.description, "description", "d", "", "Recipe description")
	cmd.Flags().StringVar(&opts.directions, "directions", "", "Step by step directions")
	cmd.Flags().StringVar(&opts.image, "image", "", "Path to an image to attach")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Validate and encode without sending")
	cmd.Flags().BoolVar(&opts.curl, "curl", false, "Print the equivalent curl command instead of sending")
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "With --curl, copy the command to the clipboard instead of printing it")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "text", "Output format (text, json, yaml)")

	return cmd
}

// buildDraft applies the flag values to a fresh draft, one intent at a time
func buildDraft(store *draft.Store, opts *createOptions) error {
	if err := store.SetField(draft.FieldTitle, opts.title); err != nil {
		return err
	}
	for i, ingredient := range opts.ingredients {
		if i > 0 {
			store.AddIngredient()
		}
		store.SetIngredient(i, ingredient)
	}
	if err := store.SetField(draft.FieldDescription, opts.description); err != nil {
		return err
	}
	return store.SetField(draft.FieldDirections, opts.directions)
}

func runCreate(cmd *cobra.Command, opts *createOptions) error {
	ctx := cli.NewCommandContext(logger)
	settings, err := ctx.LoadSettings()
	if err != nil {
		return err
	}

	store := draft.NewStore()
	if err := buildDraft(store, opts); err != nil {
		return err
	}

	if opts.image != "" {
		if err := cli.ValidateImagePath(opts.image, settings.Image.AllowedExtensions); err != nil {
			return err
		}
		a, err := files.LoadAsset(opts.image, settings.Image.AllowedExtensions)
		if err != nil {
			return err
		}
		assets := asset.NewManager(store, asset.NewTempFileProvider(os.TempDir()), logger)
		defer assets.Close()
		if err := assets.Set(a); err != nil {
			return err
		}
	}

	d := store.Draft()

	if opts.curl {
		curl := submit.CurlCommand(settings.Endpoint, d)
		if opts.copy {
			if err := clipboard.WriteAll(curl); err != nil {
				return fmt.Errorf("failed to copy to clipboard: %w", err)
			}
			cli.PrintSuccess("curl command for '%s' copied to clipboard", d.Title)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), curl)
		return nil
	}

	if opts.dryRun {
		return dryRun(cmd, opts, d)
	}

	pipeline, closeJournal := ctx.NewPipeline()
	defer closeJournal()

	out, err := pipeline.Submit(cmd.Context(), d)
	if err != nil {
		return err
	}
	return reportOutcome(cmd, opts.output, out, false)
}

func dryRun(cmd *cobra.Command, opts *createOptions, d models.Draft) error {
	if err := draft.Validate(d); err != nil {
		return reportOutcome(cmd, opts.output, submit.OutcomeForError(d.Title, err), true)
	}
	p, err := submit.Encode(d)
	if err != nil {
		return err
	}

	if opts.output != string(cli.FormatText) {
		return reportOutcome(cmd, opts.output, submit.Outcome{
			Status:  submit.Succeeded,
			Title:   d.Title,
			Message: "Recipe is ready to send",
		}, true)
	}

	w := cmd.OutOrStdout()
	tf := cli.NewTableFormatter(w)
	tf.Header("FIELD", "VALUE")
	for _, f := range p.Fields {
		tf.Row(f.Name, cli.TruncateString(f.Value, 60))
	}
	if p.Image != nil {
		tf.Row(submit.FieldImage, fmt.Sprintf("%s (%s, %s)", p.Image.Name, p.Image.ContentType, cli.FormatBytes(p.Image.Size())))
	}
	tf.Flush()
	fmt.Fprintf(w, "\n%s, %s\n", p.ContentType, cli.FormatBytes(int64(len(p.Body))))
	return nil
}

func reportOutcome(cmd *cobra.Command, format string, out submit.Outcome, dry bool) error {
	if format != string(cli.FormatText) {
		res := createResult{
			Title:      out.Title,
			Status:     out.Status.String(),
			Message:    out.Message,
			StatusCode: out.StatusCode,
			DryRun:     dry,
		}
		if err := cli.OutputResults(cmd.OutOrStdout(), format, res); err != nil {
			return err
		}
		if !out.OK() {
			return errors.New(out.Message)
		}
		return nil
	}

	if !out.OK() {
		return errors.New(out.Message)
	}
	cli.PrintSuccess("%s", out.Message)
	return nil
}
