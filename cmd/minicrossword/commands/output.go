package commands

import (
	"context"
	"io"
	"log/slog"
	"minicrossword/lib/clues"
	"minicrossword/lib/cluestore"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
)

// writeModel writes the model as JSON to path, or to the app's stdout when path is empty.
func (a *app) writeModel(model *clues.Model, path string) error {
	var out io.Writer = a.stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	err := clues.WriteJSON(out, model)
	if err != nil {
		return err
	}
	if path == "" {
		_, err = io.WriteString(out, "\n")
		return err
	}
	slog.Info("clues written", "path", path, "count", model.Len())
	return nil
}

func (a *app) openStore(path string) (cluestore.Store, func() error, error) {
	db, err := cluestore.OpenDB(path)
	if err != nil {
		return cluestore.Store{}, nil, err
	}
	return cluestore.NewStore(db), db.Close, nil
}

func (a *app) archive(ctx context.Context, path, date string, model *clues.Model) error {
	store, closeStore, err := a.openStore(path)
	if err != nil {
		return err
	}
	defer closeStore()

	err = store.Push(ctx, cluestore.PushRequest{
		Date:      date,
		FetchedAt: time.Now(),
		Model:     model,
	})
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "puzzle archived", "date", date, "archive", path)
	return nil
}

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(out)
	return t
}

func (a *app) renderModel(model *clues.Model) error {
	records, err := clues.Flatten(model)
	if err != nil {
		return err
	}

	t := newTable(a.stdout)
	t.AppendHeader(table.Row{"Group", "#", "Clue"})
	for _, r := range records {
		t.AppendRow(table.Row{r.Group, r.Number, r.String})
	}
	t.Render()
	return nil
}
