package index

import (
	"crypto/sha256"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"dailynotesbot/internal/clock"
	"dailynotesbot/internal/notes"
)

type Indexer struct {
	db  *DB
	log *zap.Logger
}

func NewIndexer(db *DB, log *zap.Logger) *Indexer {
	return &Indexer{db: db, log: log}
}

type scanJob struct {
	FullPath string
	Date     string
}

type scanResult struct {
	Date     string
	FullPath string
	Hash     string
	Content  string // empty when unchanged
	Err      error
}

// Sync reconciles the index with the daily notes directory. Files are
// hashed and parsed by a small worker pool; all writes go through a single
// transaction on the consumer side, sqlite being a single-writer store.
func (idx *Indexer) Sync(dailyDir string) error {
	jobs := make(chan scanJob, 100)
	results := make(chan scanResult, 100)

	var wg sync.WaitGroup
	const numWorkers = 4
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			idx.worker(jobs, results)
		}()
	}

	go func() {
		defer close(jobs)
		entries, err := os.ReadDir(dailyDir)
		if err != nil {
			idx.log.Warn("reading daily dir failed", zap.String("dir", dailyDir), zap.Error(err))
			return
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".md") {
				continue
			}
			stem := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
			if _, err := clock.ParseDay(stem); err != nil {
				idx.log.Debug("skipping non-daily file", zap.String("name", e.Name()))
				continue
			}
			jobs <- scanJob{FullPath: filepath.Join(dailyDir, e.Name()), Date: stem}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	tx, err := idx.db.Begin()
	if err != nil {
		return fmt.Errorf("begin sync tx: %w", err)
	}
	defer tx.Rollback()

	seen := make(map[string]bool)
	for res := range results {
		if res.Err != nil {
			idx.log.Warn("indexing note failed", zap.String("date", res.Date), zap.Error(res.Err))
			continue
		}
		seen[res.Date] = true
		if res.Content == "" {
			continue // unchanged
		}
		if err := idx.upsert(tx, res); err != nil {
			idx.log.Error("index upsert failed", zap.String("date", res.Date), zap.Error(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit sync tx: %w", err)
	}
	return idx.prune(seen)
}

func (idx *Indexer) worker(jobs <-chan scanJob, results chan<- scanResult) {
	for job := range jobs {
		res := scanResult{Date: job.Date, FullPath: job.FullPath}

		h, err := hashFile(job.FullPath)
		if err != nil {
			res.Err = err
			results <- res
			continue
		}
		res.Hash = h

		// Reads on the shared handle are safe; skip parsing when the
		// stored hash already matches.
		var current string
		err = idx.db.QueryRow("SELECT hash FROM notes WHERE date = ?", job.Date).Scan(&current)
		if err == nil && current == h {
			results <- res
			continue
		}

		data, err := os.ReadFile(job.FullPath)
		if err != nil {
			res.Err = err
			results <- res
			continue
		}
		res.Content = string(data)
		results <- res
	}
}

func (idx *Indexer) upsert(tx *sql.Tx, res scanResult) error {
	tasks := notes.ParseTasks(res.Content)
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}

	var rating any
	if n, ok := notes.ParseRating(res.Content); ok {
		rating = n
	}

	_, err := tx.Exec(`
		INSERT INTO notes (date, path, hash, rating, tasks_total, tasks_done, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			path = excluded.path,
			hash = excluded.hash,
			rating = excluded.rating,
			tasks_total = excluded.tasks_total,
			tasks_done = excluded.tasks_done,
			updated_at = excluded.updated_at`,
		res.Date, res.FullPath, res.Hash, rating, len(tasks), done, time.Now().Unix())
	return err
}

func (idx *Indexer) prune(seen map[string]bool) error {
	rows, err := idx.db.Query("SELECT date FROM notes")
	if err != nil {
		return err
	}
	defer rows.Close()

	var stale []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return err
		}
		if !seen[d] {
			stale = append(stale, d)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if len(stale) == 0 {
		return nil
	}
	idx.log.Info("pruning removed notes", zap.Int("count", len(stale)))

	tx, err := idx.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	for _, d := range stale {
		if _, err := tx.Exec("DELETE FROM notes WHERE date = ?", d); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
