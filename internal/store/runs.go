package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/xunit/internal/canon"
	"github.com/roach88/xunit/internal/runner"
)

// DigestDomain separates run digests from other canonical hashes.
const DigestDomain = "xunit/run/v1"

// RunKind records which run API produced a Run.
type RunKind string

const (
	KindAll RunKind = "all"
	KindOne RunKind = "one"
)

// Run is one recorded execution.
type Run struct {
	ID      string               `json:"id"`
	Seq     int64                `json:"seq"`
	Kind    RunKind              `json:"kind"`
	Digest  string               `json:"digest"`
	Version string               `json:"version"`
	Reports []runner.ClassReport `json:"reports"`
}

// RunSummary is a Run without its results, plus outcome totals.
type RunSummary struct {
	ID      string  `json:"id"`
	Seq     int64   `json:"seq"`
	Kind    RunKind `json:"kind"`
	Digest  string  `json:"digest"`
	Classes int     `json:"classes"`
	Count   int     `json:"count"`
	Pass    int     `json:"pass"`
	Fail    int     `json:"fail"`
	Error   int     `json:"error"`
	Ignored int     `json:"ignored"`
}

// ErrRunNotFound is returned when no run matches.
var ErrRunNotFound = errors.New("run not found")

// WriteRun records run and returns it with Seq, Digest and Version filled
// in. Seq is one past the highest stored seq. Writing an ID that already
// exists returns the stored run unchanged.
func (s *Store) WriteRun(ctx context.Context, run Run) (Run, error) {
	if run.ID == "" {
		return Run{}, fmt.Errorf("write run: empty id")
	}
	if run.Kind != KindAll && run.Kind != KindOne {
		return Run{}, fmt.Errorf("write run: invalid kind %q", run.Kind)
	}
	if run.Reports == nil {
		run.Reports = []runner.ClassReport{}
	}
	if run.Version == "" {
		run.Version = runner.Version
	}

	digest, err := canon.Digest(DigestDomain, run.Reports)
	if err != nil {
		return Run{}, fmt.Errorf("write run: %w", err)
	}
	run.Digest = digest

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("write run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs WHERE id = ?`, run.ID).Scan(&exists)
	if err != nil {
		return Run{}, fmt.Errorf("write run: %w", err)
	}
	if exists > 0 {
		tx.Rollback()
		return s.ReadRun(ctx, run.ID)
	}

	err = tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&run.Seq)
	if err != nil {
		return Run{}, fmt.Errorf("write run: next seq: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, seq, kind, digest, version)
		VALUES (?, ?, ?, ?, ?)
	`, run.ID, run.Seq, string(run.Kind), run.Digest, run.Version)
	if err != nil {
		return Run{}, fmt.Errorf("write run: %w", err)
	}

	for ci, report := range run.Reports {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO run_classes (run_id, position, class_name)
			VALUES (?, ?, ?)
		`, run.ID, ci, report.Class)
		if err != nil {
			return Run{}, fmt.Errorf("write run: class %s: %w", report.Class, err)
		}

		for ri, res := range report.Results {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO results
				(run_id, class_position, position, method_name, outcome, message, stack_trace)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, run.ID, ci, ri, res.Method, string(res.Outcome), res.Message, res.StackTrace)
			if err != nil {
				return Run{}, fmt.Errorf("write run: result %s.%s: %w", report.Class, res.Method, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("write run: commit: %w", err)
	}
	return run, nil
}

// ReadRun returns the run with the given ID, or ErrRunNotFound.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seq, kind, digest, version
		FROM runs
		WHERE id = ?
	`, id)
	return s.loadRun(ctx, row)
}

// LatestRun returns the run with the highest seq, or ErrRunNotFound.
func (s *Store) LatestRun(ctx context.Context) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seq, kind, digest, version
		FROM runs
		ORDER BY seq DESC
		LIMIT 1
	`)
	return s.loadRun(ctx, row)
}

// ListRuns returns up to limit run summaries, newest first. A limit of zero
// or less returns every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.seq, r.kind, r.digest,
			(SELECT COUNT(*) FROM run_classes c WHERE c.run_id = r.id),
			COALESCE(SUM(CASE WHEN x.outcome = 'pass' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN x.outcome = 'fail' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN x.outcome = 'error' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN x.outcome = 'ignored' THEN 1 ELSE 0 END), 0)
		FROM runs r
		LEFT JOIN results x ON x.run_id = r.id
		GROUP BY r.id
		ORDER BY r.seq DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	summaries := []RunSummary{}
	for rows.Next() {
		var sum RunSummary
		var kind string
		if err := rows.Scan(&sum.ID, &sum.Seq, &kind, &sum.Digest,
			&sum.Classes, &sum.Pass, &sum.Fail, &sum.Error, &sum.Ignored); err != nil {
			return nil, fmt.Errorf("scan run summary: %w", err)
		}
		sum.Kind = RunKind(kind)
		sum.Count = sum.Pass + sum.Fail + sum.Error
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return summaries, nil
}

func (s *Store) loadRun(ctx context.Context, row *sql.Row) (Run, error) {
	var run Run
	var kind string
	if err := row.Scan(&run.ID, &run.Seq, &kind, &run.Digest, &run.Version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, ErrRunNotFound
		}
		return Run{}, fmt.Errorf("read run: %w", err)
	}
	run.Kind = RunKind(kind)

	reports, err := s.readReports(ctx, run.ID)
	if err != nil {
		return Run{}, err
	}
	run.Reports = reports
	return run, nil
}

// readReports rebuilds the class reports of a run in stored order.
func (s *Store) readReports(ctx context.Context, runID string) ([]runner.ClassReport, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT position, class_name
		FROM run_classes
		WHERE run_id = ?
		ORDER BY position ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query classes: %w", err)
	}

	reports := []runner.ClassReport{}
	for rows.Next() {
		var pos int
		report := runner.ClassReport{Results: []runner.Result{}}
		if err := rows.Scan(&pos, &report.Class); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan class: %w", err)
		}
		reports = append(reports, report)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, fmt.Errorf("iterate classes: %w", err)
	}

	rows, err = s.db.QueryContext(ctx, `
		SELECT class_position, method_name, outcome, message, stack_trace
		FROM results
		WHERE run_id = ?
		ORDER BY class_position ASC, position ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ci int
		var outcome string
		var res runner.Result
		if err := rows.Scan(&ci, &res.Method, &outcome, &res.Message, &res.StackTrace); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		if ci < 0 || ci >= len(reports) {
			return nil, fmt.Errorf("result %s references missing class %d", res.Method, ci)
		}
		res.Class = reports[ci].Class
		res.Outcome = runner.Outcome(outcome)
		reports[ci].Add(res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return reports, nil
}
