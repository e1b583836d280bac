// Package gradestore keeps a history of grade calculations.
package gradestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	_ "embed"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) Store {
	return Store{db: database}
}

// Open opens (and migrates) the history database at dsn. Remote libsql
// urls (libsql://, http://, https://) go through the libsql driver,
// anything else is treated as a local sqlite file.
func Open(ctx context.Context, dsn string) (Store, error) {
	driver := "sqlite"
	for _, scheme := range []string{"libsql://", "http://", "https://"} {
		if strings.HasPrefix(dsn, scheme) {
			driver = "libsql"
			break
		}
	}

	database, err := sql.Open(driver, dsn)
	if err != nil {
		return Store{}, err
	}
	_, err = database.ExecContext(ctx, Schema)
	if err != nil {
		database.Close()
		return Store{}, err
	}
	return NewStore(database), nil
}

func (s Store) Close() error {
	return s.db.Close()
}

type Run struct {
	Id         string
	Identifier string
	Grades     []int
	Mean       float64
	Outcome    string
	Time       time.Time
}

// Push records run, assigning it an id when it has none.
func (s Store) Push(ctx context.Context, run Run) (Run, error) {
	if run.Id == "" {
		run.Id = uuid.NewString()
	}
	if run.Grades == nil {
		run.Grades = []int{}
	}
	grades, err := json.Marshal(run.Grades)
	if err != nil {
		return run, err
	}

	_, err = s.db.ExecContext(
		ctx,
		`insert into grade_run(id, identifier, grades, mean, outcome, time)
		values (?, ?, ?, ?, ?, ?)`,
		run.Id, run.Identifier, string(grades), run.Mean, run.Outcome, run.Time.Unix(),
	)
	return run, err
}

// List returns the recorded runs for identifier, newest first. An empty
// identifier lists every run.
func (s Store) List(ctx context.Context, identifier string) ([]Run, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`select id, identifier, grades, mean, outcome, time from grade_run
		where ? = '' or identifier = ?
		order by time desc, rowid desc`,
		identifier, identifier,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var grades string
		var unix int64
		err := rows.Scan(&run.Id, &run.Identifier, &grades, &run.Mean, &run.Outcome, &unix)
		if err != nil {
			return nil, err
		}
		err = json.Unmarshal([]byte(grades), &run.Grades)
		if err != nil {
			slog.WarnContext(ctx, "failed to unmarshal db grades", "id", run.Id, "err", err)
			continue
		}
		run.Time = time.Unix(unix, 0)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
