package state

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mchavarria/wayfinder/pkg/models"
)

// ErrRunNotFound is returned when no run matches the given ID or token.
var ErrRunNotFound = errors.New("run not found")

// CreateRun inserts a new run record.
func (db *DB) CreateRun(run *models.RunState) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	request, outcomes, plan, err := encodeRun(run)
	if err != nil {
		return err
	}

	_, err = db.conn.Exec(`
		INSERT INTO runs (id, phase, request, outcomes, plan, revisions, suspend_token, result, started_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, string(run.Phase), request, outcomes, plan,
		run.Revisions, run.SuspendToken, run.Result, run.StartedAt, run.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// UpdateRun replaces the stored state for an existing run.
func (db *DB) UpdateRun(run *models.RunState) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	request, outcomes, plan, err := encodeRun(run)
	if err != nil {
		return err
	}

	res, err := db.conn.Exec(`
		UPDATE runs SET phase = ?, request = ?, outcomes = ?, plan = ?,
			revisions = ?, suspend_token = ?, result = ?, updated_at = ?
		WHERE id = ?`,
		string(run.Phase), request, outcomes, plan,
		run.Revisions, run.SuspendToken, run.Result, run.UpdatedAt, run.ID,
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update run %s: %w", run.ID, ErrRunNotFound)
	}
	return nil
}

// GetRun fetches a run by ID.
func (db *DB) GetRun(id string) (*models.RunState, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	row := db.conn.QueryRow(`
		SELECT id, phase, request, outcomes, plan, revisions, suspend_token, result, started_at, updated_at
		FROM runs WHERE id = ?`, id)
	return scanRun(row)
}

// GetRunByToken fetches the run whose current suspend token matches.
func (db *DB) GetRunByToken(token string) (*models.RunState, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if token == "" {
		return nil, ErrRunNotFound
	}
	row := db.conn.QueryRow(`
		SELECT id, phase, request, outcomes, plan, revisions, suspend_token, result, started_at, updated_at
		FROM runs WHERE suspend_token = ?`, token)
	return scanRun(row)
}

// ListRuns returns all runs, most recently started first.
func (db *DB) ListRuns() ([]*models.RunState, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	rows, err := db.conn.Query(`
		SELECT id, phase, request, outcomes, plan, revisions, suspend_token, result, started_at, updated_at
		FROM runs ORDER BY started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.RunState
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func encodeRun(run *models.RunState) (request, outcomes, plan string, err error) {
	reqBytes, err := json.Marshal(run.Request)
	if err != nil {
		return "", "", "", fmt.Errorf("marshal request: %w", err)
	}
	request = string(reqBytes)

	if run.Outcomes != nil {
		b, err := json.Marshal(run.Outcomes)
		if err != nil {
			return "", "", "", fmt.Errorf("marshal outcomes: %w", err)
		}
		outcomes = string(b)
	}
	if run.Plan != nil {
		b, err := json.Marshal(run.Plan)
		if err != nil {
			return "", "", "", fmt.Errorf("marshal plan: %w", err)
		}
		plan = string(b)
	}
	return request, outcomes, plan, nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*models.RunState, error) {
	var run models.RunState
	var phase, request string
	var outcomes, plan sql.NullString

	err := row.Scan(&run.ID, &phase, &request, &outcomes, &plan,
		&run.Revisions, &run.SuspendToken, &run.Result, &run.StartedAt, &run.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan run: %w", err)
	}

	run.Phase = models.Phase(phase)
	if err := json.Unmarshal([]byte(request), &run.Request); err != nil {
		return nil, fmt.Errorf("unmarshal request: %w", err)
	}
	if outcomes.Valid && outcomes.String != "" {
		if err := json.Unmarshal([]byte(outcomes.String), &run.Outcomes); err != nil {
			return nil, fmt.Errorf("unmarshal outcomes: %w", err)
		}
	}
	if plan.Valid && plan.String != "" {
		run.Plan = &models.TravelPlan{}
		if err := json.Unmarshal([]byte(plan.String), run.Plan); err != nil {
			return nil, fmt.Errorf("unmarshal plan: %w", err)
		}
	}
	return &run, nil
}
