package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

type SQLiteDatabase struct {
	db               *sql.DB
	connectionString string
}

func NewSQLiteDatabase(connectionString string) (DatabaseService, error) {
	db, err := sql.Open("sqlite", connectionString)
	if err != nil {
		return nil, err
	}
	// every connection to :memory: would otherwise see its own empty database
	db.SetMaxOpenConns(1)

	return &SQLiteDatabase{
		db:               db,
		connectionString: connectionString,
	}, nil
}

func (s *SQLiteDatabase) CreateDatabase() (*sql.DB, error) {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at INTEGER NOT NULL,
		finished_at INTEGER,
		status TEXT NOT NULL,
		error TEXT
	)`)
	if err != nil {
		return nil, err
	}

	_, err = s.db.Exec(`CREATE TABLE IF NOT EXISTS stages (
		run_id TEXT NOT NULL REFERENCES runs(id),
		job_index INTEGER NOT NULL,
		input TEXT,
		output TEXT,
		stage TEXT NOT NULL,
		duration_ms INTEGER NOT NULL,
		error TEXT
	)`)
	if err != nil {
		return nil, err
	}

	return s.db, nil
}

func (s *SQLiteDatabase) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteDatabase) DoesDatabaseExist() bool {
	// the sqlite file is created on connect, so a successful ping is enough
	err := s.db.Ping()
	return err == nil
}

func (s *SQLiteDatabase) CreateRun() (string, error) {
	id := uuid.NewString()

	_, err := s.db.Exec("INSERT INTO runs (id, started_at, status) VALUES (?, ?, ?)",
		id, time.Now().UnixMilli(), StatusRunning)
	if err != nil {
		return "", err
	}

	return id, nil
}

func (s *SQLiteDatabase) RecordStage(runID string, stage StageRecord) error {
	_, err := s.db.Exec(`INSERT INTO stages (run_id, job_index, input, output, stage, duration_ms, error)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, stage.JobIndex, stage.Input, stage.Output, stage.Stage, stage.Duration.Milliseconds(), stage.Error)
	return err
}

func (s *SQLiteDatabase) FinishRun(runID string, runErr error) error {
	status, msg := StatusSucceeded, ""
	if runErr != nil {
		status, msg = StatusFailed, runErr.Error()
	}

	res, err := s.db.Exec("UPDATE runs SET finished_at = ?, status = ?, error = ? WHERE id = ?",
		time.Now().UnixMilli(), status, msg, runID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("run %s not found", runID)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var (
		run        Run
		startedAt  int64
		finishedAt sql.NullInt64
		runErr     sql.NullString
	)
	if err := row.Scan(&run.ID, &startedAt, &finishedAt, &run.Status, &runErr); err != nil {
		return nil, err
	}
	run.StartedAt = time.UnixMilli(startedAt)
	if finishedAt.Valid {
		run.FinishedAt = time.UnixMilli(finishedAt.Int64)
	}
	run.Error = runErr.String
	return &run, nil
}

func (s *SQLiteDatabase) GetRun(id string) (*Run, error) {
	row := s.db.QueryRow("SELECT id, started_at, finished_at, status, error FROM runs WHERE id = ?", id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s not found: %w", id, err)
	}
	return run, err
}

func (s *SQLiteDatabase) GetRuns() ([]*Run, error) {
	rows, err := s.db.Query("SELECT id, started_at, finished_at, status, error FROM runs ORDER BY started_at, rowid")
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (s *SQLiteDatabase) GetStages(runID string) ([]*StageRecord, error) {
	rows, err := s.db.Query(`SELECT run_id, job_index, input, output, stage, duration_ms, error
		FROM stages WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var stages []*StageRecord
	for rows.Next() {
		var (
			st         StageRecord
			durationMs int64
			stageErr   sql.NullString
		)
		if err := rows.Scan(&st.RunID, &st.JobIndex, &st.Input, &st.Output, &st.Stage, &durationMs, &stageErr); err != nil {
			return nil, err
		}
		st.Duration = time.Duration(durationMs) * time.Millisecond
		st.Error = stageErr.String
		stages = append(stages, &st)
	}
	return stages, rows.Err()
}
