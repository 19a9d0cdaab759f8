package cluestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"minicrossword/lib/clues"
	"os"
	"strconv"
	"time"

	_ "embed"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

var ErrPuzzleNotFound = errors.New("puzzle not archived")

// OpenDB opens (creating it if needed) the sqlite archive at path, ":memory:"
// opens a throwaway database.
func OpenDB(path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("a path was not specified")
	}
	inMemory := path == ":memory:"

	if !inMemory {
		_, statErr := os.Stat(path)
		if os.IsNotExist(statErr) {
			f, err := os.Create(path)
			if err != nil {
				return nil, err
			}
			f.Close()
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// sqlite does not handle concurrent writers well, and every connection
	// to :memory: would otherwise be a separate database.
	db.SetMaxOpenConns(1)

	if !inMemory {
		_, err = db.Exec("PRAGMA journal_mode=WAL")
		if err != nil {
			db.Close()
			return nil, err
		}
	}
	_, err = db.Exec("PRAGMA foreign_keys=ON")
	if err != nil {
		db.Close()
		return nil, err
	}
	_, err = db.Exec(Schema)
	if err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) Store {
	return Store{db: database}
}

type PushRequest struct {
	// Date is the puzzle date in YYYY-MM-DD form.
	Date      string
	FetchedAt time.Time
	Model     *clues.Model
}

// Push archives a puzzle, an existing puzzle with the same date is replaced.
func (s Store) Push(ctx context.Context, req PushRequest) error {
	records, err := clues.Flatten(req.Model)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, "delete from clue where date = ?", req.Date)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(
		ctx,
		`insert into puzzle(date, fetched_at) values (?, ?)
		on conflict(date) do update set fetched_at = excluded.fetched_at`,
		req.Date, req.FetchedAt.Unix(),
	)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(
		ctx,
		"insert into clue(date, clue_group, idx, number, text) values (?, ?, ?, ?, ?)",
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	idx := map[clues.Group]int{}
	for _, r := range records {
		_, err = stmt.ExecContext(ctx, req.Date, string(r.Group), idx[r.Group], r.Number, r.String)
		if err != nil {
			return err
		}
		idx[r.Group]++
	}

	return tx.Commit()
}

// Pull rebuilds the archived puzzle of a given date.
func (s Store) Pull(ctx context.Context, date string) (*clues.Model, error) {
	var fetchedAt int64
	err := s.db.QueryRowContext(ctx, "select fetched_at from puzzle where date = ?", date).Scan(&fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrPuzzleNotFound, date)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(
		ctx,
		"select clue_group, number, text from clue where date = ? order by clue_group, idx",
		date,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	model := clues.NewModel()
	for rows.Next() {
		var group string
		var number int
		var text string
		err = rows.Scan(&group, &number, &text)
		if err != nil {
			return nil, err
		}
		clue, err := clues.NewClue(strconv.Itoa(number), text)
		if err != nil {
			return nil, err
		}
		err = model.Add(clues.Group(group), clue)
		if err != nil {
			return nil, err
		}
	}
	return model, rows.Err()
}

type PuzzleSummary struct {
	Date      string
	FetchedAt time.Time
	Clues     int
}

// List returns a summary of every archived puzzle, most recent first.
func (s Store) List(ctx context.Context) ([]PuzzleSummary, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`select p.date, p.fetched_at, count(c.idx)
		from puzzle p left join clue c on c.date = p.date
		group by p.date
		order by p.date desc`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PuzzleSummary
	for rows.Next() {
		var summary PuzzleSummary
		var fetchedAt int64
		err = rows.Scan(&summary.Date, &fetchedAt, &summary.Clues)
		if err != nil {
			return nil, err
		}
		summary.FetchedAt = time.Unix(fetchedAt, 0)
		out = append(out, summary)
	}
	return out, rows.Err()
}
