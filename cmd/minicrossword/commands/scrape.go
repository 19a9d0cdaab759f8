package commands

import (
	"context"
	"log/slog"
	"minicrossword/lib/clues"
	"minicrossword/lib/restyutil"
	"minicrossword/lib/scrapers/mini"
	"minicrossword/lib/timezone"
	"time"

	"github.com/spf13/cobra"
)

type scrapeFlags struct {
	output  string
	archive string
	date    string
}

func (f scrapeFlags) resolve(cfg Config) scrapeFlags {
	if f.output == "" {
		f.output = cfg.Output
	}
	if f.archive == "" {
		f.archive = cfg.Archive.File
	}
	if f.date == "" {
		f.date = timezone.PuzzleDate(timezone.Now())
	}
	return f
}

func (a *app) newScraper() (*mini.Client, error) {
	opts := mini.ClientOptions{Url: a.cfg.Url}
	if a.cfg.HttpDumpDir != "" {
		out, err := restyutil.NewFilesystemOutput(a.cfg.HttpDumpDir)
		if err != nil {
			return nil, err
		}
		opts.Output = out
	}
	return mini.NewClient(opts)
}

// scrape fetches and parses today's puzzle, then writes and archives it.
func (a *app) scrape(ctx context.Context, flags scrapeFlags) (*clues.Model, error) {
	flags = flags.resolve(a.cfg)

	client, err := a.newScraper()
	if err != nil {
		return nil, err
	}

	t1 := time.Now()
	model, err := client.Scrape(ctx)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(
		ctx, "scraped clues",
		"url", client.Url,
		"count", model.Len(),
		"seconds", time.Since(t1).Seconds(),
	)

	err = a.writeModel(model, flags.output)
	if err != nil {
		return nil, err
	}
	if flags.archive != "" {
		err = a.archive(ctx, flags.archive, flags.date, model)
		if err != nil {
			return nil, err
		}
	}
	return model, nil
}

func newScrapeCmd(a *app) *cobra.Command {
	var flags scrapeFlags

	cmd := &cobra.Command{
		Use:   "scrape [-o <clues.json>] [--archive <archive.db>]",
		Short: "Fetches the puzzle page and writes its clues as JSON.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.scrape(cmd.Context(), flags)
			return err
		},
	}
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "The file to write clues to, defaults to the configured output or stdout.")
	cmd.Flags().StringVar(&flags.archive, "archive", "", "The sqlite archive to record the puzzle in.")
	cmd.Flags().StringVar(&flags.date, "date", "", "The puzzle date to archive under (YYYY-MM-DD), defaults to today in New York.")
	return cmd
}
