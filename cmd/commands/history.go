package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/finalwork/recipe-terminal/internal/cli"
)

// NewHistoryCommand creates the history command
func NewHistoryCommand() *cobra.Command {
	var (
		limit  int
		output string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent recipe submissions",
		Long: `Lists submissions that reached the server, newest first.

Drafts that failed the local checks are not recorded.`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateLimit(limit); err != nil {
				return err
			}
			return cli.ValidateOutputFormat(output)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cli.NewCommandContext(logger)
			if err := ctx.ValidateProject(); err != nil {
				return err
			}
			if _, err := ctx.LoadSettings(); err != nil {
				return err
			}

			store, err := ctx.OpenJournal()
			if err != nil {
				return err
			}
			if store == nil {
				cli.PrintWarning("submission history is disabled (journal.enabled: false)")
				return nil
			}
			defer store.Close()

			entries, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if output != string(cli.FormatText) {
				return cli.OutputResults(w, output, entries)
			}

			if len(entries) == 0 {
				fmt.Fprintln(w, "No submissions yet.")
				return nil
			}

			tf := cli.NewTableFormatter(w)
			tf.Header("WHEN", "TITLE", "STATUS", "CODE", "IMAGE", "MESSAGE")
			for _, e := range entries {
				code := "-"
				if e.StatusCode != 0 {
					code = strconv.Itoa(e.StatusCode)
				}
				image := "no"
				if e.HasImage {
					image = "yes"
				}
				tf.Row(cli.FormatAge(e.CreatedAt), cli.TruncateString(e.Title, 30), e.Status, code, image, cli.TruncateString(e.Message, 50))
			}
			tf.Flush()
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of entries (0 for all)")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format (text, json, yaml)")

	return cmd
}
