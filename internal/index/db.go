// Package index maintains a sqlite summary of the vault: one row per daily
// note with its content hash, rating and task counters.
package index

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

type DB struct {
	*sql.DB
}

func Open(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open index db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping index db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &DB{db}, nil
}

// Stats is the vault summary served by /stats.
type Stats struct {
	Notes      int
	TasksTotal int
	TasksDone  int
	Rated      int
	AvgRating  float64
}

func (d *DB) Stats() (Stats, error) {
	var s Stats
	var avg sql.NullFloat64
	err := d.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(tasks_total), 0),
		       COALESCE(SUM(tasks_done), 0),
		       COUNT(rating),
		       AVG(rating)
		FROM notes`).Scan(&s.Notes, &s.TasksTotal, &s.TasksDone, &s.Rated, &avg)
	if err != nil {
		return Stats{}, fmt.Errorf("query stats: %w", err)
	}
	if avg.Valid {
		s.AvgRating = avg.Float64
	}
	return s, nil
}
