package store

import (
	"database/sql"
	"time"
)

// Run is one persisted run report.
type Run struct {
	ID            int64     `json:"id"`
	StartedAt     time.Time `json:"started_at"`
	Command       string    `json:"command"`
	Version       string    `json:"version"`
	DryRun        bool      `json:"dry_run"`
	FilesScanned  int       `json:"files_scanned"`
	FilesModified int       `json:"files_modified"`
	FilesSkipped  int       `json:"files_skipped"`
	FilesFailed   int       `json:"files_failed"`
	ErrorsBefore  *int      `json:"errors_before"`
	ErrorsAfter   *int      `json:"errors_after"`
}

// RuleHit is one rule's hit count within a run.
type RuleHit struct {
	Rule string
	Hits int
}

// InsertRun persists a run and its per-rule hit counts, returning the
// new run ID.
func (db *DB) InsertRun(run *Run, hits map[string]int) (int64, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`INSERT INTO runs
		(started_at, command, version, dry_run, files_scanned, files_modified,
		 files_skipped, files_failed, errors_before, errors_after)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt.UTC().Format(time.RFC3339), run.Command, run.Version,
		run.DryRun, run.FilesScanned, run.FilesModified, run.FilesSkipped,
		run.FilesFailed, nullableInt(run.ErrorsBefore), nullableInt(run.ErrorsAfter),
	)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	for rule, count := range hits {
		if _, err := tx.Exec(
			"INSERT INTO rule_hits (run_id, rule, hits) VALUES (?, ?, ?)",
			id, rule, count,
		); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// RecentRuns returns the most recent runs, newest first.
func (db *DB) RecentRuns(limit int) ([]Run, error) {
	rows, err := db.conn.Query(
		`SELECT id, started_at, command, version, dry_run, files_scanned,
		 files_modified, files_skipped, files_failed, errors_before, errors_after
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var startedAt string
		var before, after sql.NullInt64
		if err := rows.Scan(&r.ID, &startedAt, &r.Command, &r.Version, &r.DryRun,
			&r.FilesScanned, &r.FilesModified, &r.FilesSkipped, &r.FilesFailed,
			&before, &after); err != nil {
			return nil, err
		}
		r.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
		r.ErrorsBefore = fromNullable(before)
		r.ErrorsAfter = fromNullable(after)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunHits returns a run's per-rule hit counts, highest first.
func (db *DB) RunHits(runID int64) ([]RuleHit, error) {
	rows, err := db.conn.Query(
		"SELECT rule, hits FROM rule_hits WHERE run_id = ? ORDER BY hits DESC, rule",
		runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hits []RuleHit
	for rows.Next() {
		var h RuleHit
		if err := rows.Scan(&h.Rule, &h.Hits); err != nil {
			return nil, err
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

func nullableInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func fromNullable(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
