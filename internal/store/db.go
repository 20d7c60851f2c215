package store

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"go-sft-pipeline/internal/model"
)

var db *sql.DB

// InitDB opens the run-tracking database and creates the schema if needed.
func InitDB(dbPath string) error {
	var err error
	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}

	runTable := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		dataset TEXT,
		status TEXT,
		rows_in INTEGER DEFAULT 0,
		rows_out INTEGER DEFAULT 0,
		output_path TEXT DEFAULT '',
		created_at DATETIME,
		updated_at DATETIME
	);
	`
	errorTable := `
	CREATE TABLE IF NOT EXISTS run_errors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT,
		error_message TEXT,
		created_at DATETIME
	);
	`

	if _, err := db.Exec(runTable); err != nil {
		return err
	}
	if _, err := db.Exec(errorTable); err != nil {
		return err
	}

	return nil
}

// CreateRun records a new pending run for a dataset.
func CreateRun(runID, dataset string) error {
	now := time.Now().UTC()
	_, err := db.Exec(`INSERT INTO runs (id, dataset, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		runID, dataset, "pending", now, now)
	return err
}

// UpdateRunStatus moves a run to a new status.
func UpdateRunStatus(runID, status string) error {
	now := time.Now().UTC()
	_, err := db.Exec(`UPDATE runs SET status = ?, updated_at = ? WHERE id = ?`, status, now, runID)
	return err
}

// FinishRun marks a run completed and records its row counts.
func FinishRun(runID string, rowsIn, rowsOut int, outputPath string) error {
	now := time.Now().UTC()
	_, err := db.Exec(`UPDATE runs SET status = ?, rows_in = ?, rows_out = ?, output_path = ?, updated_at = ? WHERE id = ?`,
		"completed", rowsIn, rowsOut, outputPath, now, runID)
	return err
}

// SaveRunError records an error for a run.
func SaveRunError(runID string, err error) error {
	if err == nil {
		return nil
	}
	now := time.Now().UTC()
	_, e := db.Exec(`INSERT INTO run_errors (run_id, error_message, created_at) VALUES (?, ?, ?)`,
		runID, err.Error(), now)
	return e
}

// ListRuns returns all runs, newest first.
func ListRuns() ([]model.RunReport, error) {
	rows, err := db.Query(`SELECT id, dataset, status, rows_in, rows_out, output_path, created_at, updated_at
		FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []model.RunReport
	for rows.Next() {
		var run model.RunReport
		if err := rows.Scan(&run.RunID, &run.Dataset, &run.Status, &run.RowsIn, &run.RowsOut,
			&run.OutputPath, &run.CreatedAt, &run.UpdatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun fetches one run by ID.
func GetRun(runID string) (*model.RunReport, error) {
	var run model.RunReport
	err := db.QueryRow(`SELECT id, dataset, status, rows_in, rows_out, output_path, created_at, updated_at
		FROM runs WHERE id = ?`, runID).
		Scan(&run.RunID, &run.Dataset, &run.Status, &run.RowsIn, &run.RowsOut,
			&run.OutputPath, &run.CreatedAt, &run.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// GetRunErrors returns all recorded errors for a run, oldest first.
func GetRunErrors(runID string) ([]string, error) {
	rows, err := db.Query(`SELECT error_message FROM run_errors WHERE run_id = ? ORDER BY created_at ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []string
	for rows.Next() {
		var msg string
		if err := rows.Scan(&msg); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
