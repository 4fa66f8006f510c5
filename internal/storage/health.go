package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/manav03panchal/alarmbook/internal/errors"
)

// HealthReport is the result of a database health check.
type HealthReport struct {
	Healthy    bool      `json:"healthy"`
	Path       string    `json:"path"`
	AlarmCount int       `json:"alarm_count"`
	CheckedAt  time.Time `json:"checked_at"`
	Problems   []string  `json:"problems,omitempty"`
	// TablePresent is false for a database that has never been written.
	TablePresent bool `json:"table_present"`
}

// CheckIntegrity runs SQLite's integrity check and counts the alarm rows.
// A damaged file yields a report with Healthy false and the error wraps
// ErrDatabaseCorrupted.
func CheckIntegrity(ctx context.Context, db *DB) (*HealthReport, error) {
	report := &HealthReport{
		Path:      db.Path(),
		CheckedAt: time.Now(),
	}

	err := db.Query(ctx, "PRAGMA integrity_check", nil, func(rows *sql.Rows) error {
		var line string
		if err := rows.Scan(&line); err != nil {
			return err
		}
		if line != "ok" {
			report.Problems = append(report.Problems, line)
		}
		return nil
	})
	if err != nil {
		report.Problems = append(report.Problems, err.Error())
		return report, errors.NewSystemErrorWithOp("doctor", "integrity check failed",
			fmt.Errorf("%w: %v", errors.ErrDatabaseCorrupted, err))
	}

	if len(report.Problems) > 0 {
		return report, errors.NewSystemErrorWithOp("doctor", "integrity check failed", errors.ErrDatabaseCorrupted)
	}

	// A readable file without the table is a fresh database, not a fault.
	// The table is left for the first write to create.
	var tables int
	err = db.Query(ctx, "SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'alarms'", nil,
		func(rows *sql.Rows) error { return rows.Scan(&tables) })
	if err != nil {
		report.Problems = append(report.Problems, err.Error())
		return report, errors.NewSystemErrorWithOp("doctor", "schema lookup failed", err)
	}
	if tables == 0 {
		report.Healthy = true
		return report, nil
	}
	report.TablePresent = true

	n, err := NewAlarmRepo(db).Count(ctx)
	if err != nil {
		report.Problems = append(report.Problems, err.Error())
		return report, err
	}

	report.AlarmCount = n
	report.Healthy = true
	return report, nil
}
