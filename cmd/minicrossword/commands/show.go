package commands

import (
	"errors"
	"minicrossword/lib/clues"
	"minicrossword/lib/timezone"
	"os"

	"github.com/spf13/cobra"
)

func newShowCmd(a *app) *cobra.Command {
	var date string
	var archive string

	cmd := &cobra.Command{
		Use:   "show [<clues.json> | --date <YYYY-MM-DD>]",
		Short: "Prints clues from a JSON file or the archive as a table.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				model, err := clues.ReadJSON(f)
				if err != nil {
					return err
				}
				return a.renderModel(model)
			}

			if archive == "" {
				archive = a.cfg.Archive.File
			}
			if archive == "" {
				return errors.New("no archive configured, pass a JSON file or --archive")
			}
			if date == "" {
				date = timezone.PuzzleDate(timezone.Now())
			}
			_, err := timezone.ParseDate(date)
			if err != nil {
				return err
			}

			store, closeStore, err := a.openStore(archive)
			if err != nil {
				return err
			}
			defer closeStore()

			model, err := store.Pull(cmd.Context(), date)
			if err != nil {
				return err
			}
			return a.renderModel(model)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "The archived puzzle date to show, defaults to today in New York.")
	cmd.Flags().StringVar(&archive, "archive", "", "The sqlite archive to read from.")
	return cmd
}
