package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Status is the outcome of a run.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Run is one row of the ledger.
type Run struct {
	ID           string    `json:"id"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
	Status       Status    `json:"status"`
	Corpora      []string  `json:"corpora"`
	AllRecords   int       `json:"all_records"`
	TrainRecords int       `json:"train_records"`
	ValRecords   int       `json:"val_records"`
	Characters   int       `json:"characters"`
	Selected     int       `json:"selected"`
	Materialized int       `json:"materialized"`
	Superseded   int       `json:"superseded"`
	Error        string    `json:"error,omitempty"`
}

// Duration returns the wall time of the run.
func (r Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

const runColumns = "id, started_at, finished_at, status, corpora_json, all_records, train_records, val_records, characters, selected, materialized, superseded, error_message"

// Record inserts run, replacing any row with the same id.
func (s *Store) Record(ctx context.Context, run Run) error {
	if run.ID == "" {
		return fmt.Errorf("record run: id is required")
	}
	corpora := run.Corpora
	if corpora == nil {
		corpora = []string{}
	}
	corporaJSON, err := json.Marshal(corpora)
	if err != nil {
		return fmt.Errorf("encode corpora: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO runs (`+runColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		formatTime(run.StartedAt),
		nullableTime(run.FinishedAt),
		string(run.Status),
		string(corporaJSON),
		run.AllRecords,
		run.TrainRecords,
		run.ValRecords,
		run.Characters,
		run.Selected,
		run.Materialized,
		run.Superseded,
		nullableString(run.Error),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first. A limit below 1 returns
// every run.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, rowid DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Clear deletes every recorded run and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs`)
	if err != nil {
		return 0, fmt.Errorf("clear runs: %w", err)
	}
	return res.RowsAffected()
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (Run, error) {
	var (
		run         Run
		startedRaw  string
		finishedRaw sql.NullString
		status      string
		corporaRaw  string
		errorMsg    sql.NullString
	)
	if err := scanner.Scan(
		&run.ID,
		&startedRaw,
		&finishedRaw,
		&status,
		&corporaRaw,
		&run.AllRecords,
		&run.TrainRecords,
		&run.ValRecords,
		&run.Characters,
		&run.Selected,
		&run.Materialized,
		&run.Superseded,
		&errorMsg,
	); err != nil {
		return Run{}, err
	}
	run.Status = Status(status)
	run.Error = errorMsg.String
	if err := json.Unmarshal([]byte(corporaRaw), &run.Corpora); err != nil {
		return Run{}, fmt.Errorf("decode corpora: %w", err)
	}
	if started, err := parseTimeString(startedRaw); err == nil {
		run.StartedAt = started
	}
	if finishedRaw.Valid {
		if finished, err := parseTimeString(finishedRaw.String); err == nil {
			run.FinishedAt = finished
		}
	}
	return run, nil
}
