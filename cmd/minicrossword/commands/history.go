package commands

import (
	"errors"
	"minicrossword/lib/timezone"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newHistoryCmd(a *app) *cobra.Command {
	var archive string

	cmd := &cobra.Command{
		Use:   "history [--archive <archive.db>]",
		Short: "Lists the puzzles recorded in the archive.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if archive == "" {
				archive = a.cfg.Archive.File
			}
			if archive == "" {
				return errors.New("no archive configured")
			}

			store, closeStore, err := a.openStore(archive)
			if err != nil {
				return err
			}
			defer closeStore()

			summaries, err := store.List(cmd.Context())
			if err != nil {
				return err
			}

			t := newTable(a.stdout)
			t.AppendHeader(table.Row{"Date", "Fetched", "Clues"})
			for _, s := range summaries {
				t.AppendRow(table.Row{s.Date, s.FetchedAt.In(timezone.Location).Format("2006-01-02 15:04:05"), s.Clues})
			}
			t.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&archive, "archive", "", "The sqlite archive to read from.")
	return cmd
}
