// Package archive provides SQLite-based storage for simulation runs:
// one row of metadata per run plus a per-frame observable sample
// stream, queryable for listing and export.
package archive

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Run is one archived simulation run.
type Run struct {
	ID          string    `db:"id"`
	CreatedAt   time.Time `db:"created_at"`
	Preset      string    `db:"preset"`
	Temperature float64   `db:"temperature"`
	Population  int       `db:"population"`
	SizeScale   float64   `db:"size_scale"`
	Dt          float64   `db:"dt"`
	Duration    float64   `db:"duration"`
	Seed        int64     `db:"seed"`
	Frames      int       `db:"frames"`
}

// Sample is one frame's recorded observables.
type Sample struct {
	RunID         string  `db:"run_id"`
	Frame         int     `db:"frame"`
	Time          float64 `db:"time"`
	Pressure      float64 `db:"pressure"`
	WallImpulse   float64 `db:"wall_impulse"`
	MeanSpeed     float64 `db:"mean_speed"`
	TheorySpeed   float64 `db:"theory_speed"`
	KineticEnergy float64 `db:"kinetic_energy"`
}

// DB wraps a SQLite connection for the run archive.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates the archive database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate archive: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at TIMESTAMP NOT NULL,
		preset TEXT NOT NULL,
		temperature REAL NOT NULL,
		population INTEGER NOT NULL,
		size_scale REAL NOT NULL,
		dt REAL NOT NULL,
		duration REAL NOT NULL,
		seed INTEGER NOT NULL,
		frames INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS samples (
		run_id TEXT NOT NULL,
		frame INTEGER NOT NULL,
		time REAL NOT NULL,
		pressure REAL NOT NULL,
		wall_impulse REAL NOT NULL,
		mean_speed REAL NOT NULL,
		theory_speed REAL NOT NULL,
		kinetic_energy REAL NOT NULL,
		PRIMARY KEY (run_id, frame)
	);

	CREATE INDEX IF NOT EXISTS idx_samples_run ON samples(run_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// SaveRun writes a run and its sample stream in one transaction.
func (db *DB) SaveRun(run Run, samples []Sample) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO runs
		(id, created_at, preset, temperature, population, size_scale, dt, duration, seed, frames)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt, run.Preset, run.Temperature, run.Population,
		run.SizeScale, run.Dt, run.Duration, run.Seed, run.Frames,
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}

	stmt, err := tx.Preparex(`INSERT INTO samples
		(run_id, frame, time, pressure, wall_impulse, mean_speed, theory_speed, kinetic_energy)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, s := range samples {
		_, err := stmt.Exec(run.ID, s.Frame, s.Time, s.Pressure, s.WallImpulse,
			s.MeanSpeed, s.TheorySpeed, s.KineticEnergy)
		if err != nil {
			return fmt.Errorf("insert sample %d: %w", s.Frame, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("run archived", "id", run.ID, "frames", len(samples))
	return nil
}

// ListRuns returns all archived runs, newest first.
func (db *DB) ListRuns() ([]Run, error) {
	var runs []Run
	err := db.conn.Select(&runs,
		"SELECT * FROM runs ORDER BY created_at DESC")
	return runs, err
}

// LoadRun returns one run's metadata.
func (db *DB) LoadRun(id string) (*Run, error) {
	var run Run
	if err := db.conn.Get(&run, "SELECT * FROM runs WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("load run %s: %w", id, err)
	}
	return &run, nil
}

// LoadSamples returns one run's sample stream in frame order.
func (db *DB) LoadSamples(runID string) ([]Sample, error) {
	var samples []Sample
	err := db.conn.Select(&samples,
		"SELECT * FROM samples WHERE run_id = ? ORDER BY frame", runID)
	return samples, err
}
