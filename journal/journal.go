// Copyright © 2026 Marquee contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: journal/journal.go
// Summary: SQLite-backed journal of scheduler stats samples.
//
// Samples are batched on a background goroutine so recording never blocks
// the presentation path. The journal is diagnostics only: every failure is
// contained here and a full channel drops samples instead of stalling.

package journal

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"marquee/display"
)

// Sample is one timestamped snapshot of the scheduler counters.
type Sample struct {
	At    time.Time
	Stats display.ScrollingStats
}

// Config holds journal tuning knobs.
type Config struct {
	DBPath string

	// BatchSize is the number of samples to accumulate before flushing.
	// Default: 32
	BatchSize int

	// BatchTimeout is how long to wait before flushing a partial batch.
	// Default: 5s
	BatchTimeout time.Duration

	// ChannelBuffer is the size of the async recording channel.
	// Default: 256
	ChannelBuffer int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(dbPath string) Config {
	return Config{
		DBPath:        dbPath,
		BatchSize:     32,
		BatchTimeout:  5 * time.Second,
		ChannelBuffer: 256,
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS samples (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    at INTEGER NOT NULL,              -- UnixNano
    updates_deferred INTEGER NOT NULL,
    updates_processed INTEGER NOT NULL,
    frames_presented INTEGER NOT NULL,
    present_failures INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_samples_at ON samples(at);
`

// Journal persists scheduler stats samples to SQLite.
type Journal struct {
	config Config
	db     *sql.DB

	batchChan chan Sample
	stopCh    chan struct{}
	doneCh    chan struct{}
	flushCh   chan chan struct{}
}

// Open creates or opens a journal database at the given path.
func Open(dbPath string) (*Journal, error) {
	return OpenWithConfig(DefaultConfig(dbPath))
}

// OpenWithConfig opens a journal with custom tuning.
func OpenWithConfig(config Config) (*Journal, error) {
	if config.BatchSize <= 0 {
		config.BatchSize = 32
	}
	if config.BatchTimeout <= 0 {
		config.BatchTimeout = 5 * time.Second
	}
	if config.ChannelBuffer <= 0 {
		config.ChannelBuffer = 256
	}

	if err := os.MkdirAll(filepath.Dir(config.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	dsn := config.DBPath +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=temp_store(MEMORY)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	j := &Journal{
		config:    config,
		db:        db,
		batchChan: make(chan Sample, config.ChannelBuffer),
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
		flushCh:   make(chan chan struct{}),
	}

	go j.batchWriter()

	return j, nil
}

// Record enqueues a sample. It never blocks: when the channel is full the
// sample is dropped.
func (j *Journal) Record(s Sample) {
	if s.At.IsZero() {
		s.At = time.Now()
	}
	select {
	case j.batchChan <- s:
	default:
	}
}

// batchWriter runs in a background goroutine, batching samples and flushing
// periodically.
func (j *Journal) batchWriter() {
	defer close(j.doneCh)

	batch := make([]Sample, 0, j.config.BatchSize)
	timer := time.NewTimer(j.config.BatchTimeout)
	defer timer.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		j.flushBatch(batch)
		batch = batch[:0]
	}

	for {
		select {
		case s := <-j.batchChan:
			batch = append(batch, s)
			if len(batch) >= j.config.BatchSize {
				flush()
				timer.Reset(j.config.BatchTimeout)
			}

		case <-timer.C:
			flush()
			timer.Reset(j.config.BatchTimeout)

		case done := <-j.flushCh:
			draining := true
			for draining {
				select {
				case s := <-j.batchChan:
					batch = append(batch, s)
				default:
					draining = false
				}
			}
			flush()
			close(done)

		case <-j.stopCh:
			for {
				select {
				case s := <-j.batchChan:
					batch = append(batch, s)
				default:
					flush()
					return
				}
			}
		}
	}
}

// flushBatch writes a batch of samples in a single transaction.
func (j *Journal) flushBatch(batch []Sample) {
	tx, err := j.db.Begin()
	if err != nil {
		log.Printf("Journal: failed to begin transaction: %v", err)
		return
	}

	stmt, err := tx.Prepare(`INSERT INTO samples
		(at, updates_deferred, updates_processed, frames_presented, present_failures)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		log.Printf("Journal: failed to prepare statement: %v", err)
		tx.Rollback()
		return
	}
	defer stmt.Close()

	for _, s := range batch {
		if _, err := stmt.Exec(s.At.UnixNano(), s.Stats.UpdatesDeferred, s.Stats.UpdatesProcessed,
			s.Stats.FramesPresented, s.Stats.PresentFailures); err != nil {
			log.Printf("Journal: failed to insert sample: %v", err)
			tx.Rollback()
			return
		}
	}

	if err := tx.Commit(); err != nil {
		log.Printf("Journal: failed to commit batch: %v", err)
	}
}

// Recent returns up to limit samples, newest first.
func (j *Journal) Recent(limit int) ([]Sample, error) {
	rows, err := j.db.Query(`SELECT at, updates_deferred, updates_processed,
		frames_presented, present_failures
		FROM samples ORDER BY at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var out []Sample
	for rows.Next() {
		var s Sample
		var atNano int64
		if err := rows.Scan(&atNano, &s.Stats.UpdatesDeferred, &s.Stats.UpdatesProcessed,
			&s.Stats.FramesPresented, &s.Stats.PresentFailures); err != nil {
			continue
		}
		s.At = time.Unix(0, atNano)
		out = append(out, s)
	}
	return out, rows.Err()
}

// Flush blocks until all pending samples are written.
func (j *Journal) Flush() {
	done := make(chan struct{})
	select {
	case j.flushCh <- done:
		<-done
	case <-j.stopCh:
	}
}

// Close flushes pending samples and closes the database.
func (j *Journal) Close() error {
	close(j.stopCh)
	<-j.doneCh
	return j.db.Close()
}
