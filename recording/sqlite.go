package recording

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// ErrDatabaseExists is returned when the recorder would overwrite an existing
// database file.
var ErrDatabaseExists = errors.New("database file already exists")

const createStepTableSQL = `CREATE TABLE IF NOT EXISTS steps (
	run_id      TEXT,
	case_id     TEXT,
	step_index  INTEGER,
	from_state  TEXT,
	to_state    TEXT,
	type        TEXT,
	variant     TEXT,
	tier        TEXT,
	expected    INTEGER,
	observed    INTEGER,
	state_found INTEGER,
	passed      INTEGER,
	time        INTEGER
);`

const insertStepSQL = `INSERT INTO steps VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const selectStepsSQL = `SELECT run_id, case_id, step_index, from_state, to_state,
	type, variant, tier, expected, observed, state_found, passed, time
	FROM steps ORDER BY rowid`

// SQLiteRecorder writes steps into a SQLite database in batches.
type SQLiteRecorder struct {
	*sql.DB

	mu        sync.Mutex
	logger    *slog.Logger
	path      string
	batchSize int
	pending   []Step
}

// NewSQLiteRecorder creates a database at path and a recorder writing to it.
// An empty path creates a uniquely named database in the working directory.
// Buffered steps are flushed when the program exits through atexit.
func NewSQLiteRecorder(path string, logger *slog.Logger) (*SQLiteRecorder, error) {
	if path == "" {
		path = "momos_steps_" + xid.New().String() + ".sqlite3"
	}

	if logger == nil {
		logger = slog.Default()
	}

	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrDatabaseExists, path)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	if _, err := db.Exec(createStepTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create step table: %w", err)
	}

	logger.Info("recording steps", slog.String("path", path))

	r := &SQLiteRecorder{
		DB:        db,
		logger:    logger,
		path:      path,
		batchSize: 1000,
	}

	atexit.Register(func() {
		if err := r.Flush(); err != nil {
			r.logger.Error("flush on exit", slog.Any("error", err))
		}
	})

	return r, nil
}

// Path returns the database file.
func (r *SQLiteRecorder) Path() string {
	return r.path
}

// WithBatchSize sets how many steps are buffered before they are written.
func (r *SQLiteRecorder) WithBatchSize(n int) *SQLiteRecorder {
	if n < 1 {
		n = 1
	}

	r.batchSize = n

	return r
}

// Record buffers a step and flushes when the batch is full.
func (r *SQLiteRecorder) Record(step Step) {
	r.mu.Lock()
	r.pending = append(r.pending, step)
	full := len(r.pending) >= r.batchSize
	r.mu.Unlock()

	if full {
		if err := r.Flush(); err != nil {
			r.logger.Error("flush steps", slog.Any("error", err))
		}
	}
}

// Flush writes all buffered steps in one transaction.
func (r *SQLiteRecorder) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.pending) == 0 {
		return nil
	}

	tx, err := r.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}

	stmt, err := tx.Prepare(insertStepSQL)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, s := range r.pending {
		_, err := stmt.Exec(
			s.RunID, s.Case, s.Index, s.From, s.To, s.Type, s.Variant,
			s.Tier, s.Expected, s.Observed, s.StateFound, s.Passed,
			int64(s.Time),
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("insert step: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	r.pending = nil

	return nil
}

// Steps flushes and reads back every recorded step.
func (r *SQLiteRecorder) Steps() ([]Step, error) {
	if err := r.Flush(); err != nil {
		return nil, err
	}

	rows, err := r.Query(selectStepsSQL)
	if err != nil {
		return nil, fmt.Errorf("query steps: %w", err)
	}
	defer rows.Close()

	var steps []Step
	for rows.Next() {
		var (
			s    Step
			time int64
		)

		err := rows.Scan(
			&s.RunID, &s.Case, &s.Index, &s.From, &s.To, &s.Type, &s.Variant,
			&s.Tier, &s.Expected, &s.Observed, &s.StateFound, &s.Passed,
			&time,
		)
		if err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}

		s.Time = uint64(time)
		steps = append(steps, s)
	}

	return steps, rows.Err()
}

// Close flushes and closes the database.
func (r *SQLiteRecorder) Close() error {
	if err := r.Flush(); err != nil {
		return err
	}

	return r.DB.Close()
}
