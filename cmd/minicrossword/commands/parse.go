package commands

import (
	"log/slog"
	"minicrossword/lib/clues"
	"os"

	"github.com/spf13/cobra"
)

func newParseCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "parse <page.html> [-o <clues.json>]",
		Short: "Parses a saved puzzle page and writes its clues as JSON.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contents, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			model, err := clues.Parse(cmd.Context(), string(contents))
			if err != nil {
				slog.ErrorContext(cmd.Context(), "page does not match the expected structure", "file", args[0], "err", err)
				return err
			}
			return a.writeModel(model, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "The file to write clues to, defaults to stdout.")
	return cmd
}
