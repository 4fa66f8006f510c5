package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/manav03panchal/alarmbook/internal/errors"
	"github.com/manav03panchal/alarmbook/internal/logging"
	"github.com/manav03panchal/alarmbook/internal/model"
)

// AlarmRepo provides operations for Alarm records.
type AlarmRepo struct {
	db *DB
}

// NewAlarmRepo creates a new alarm repository.
func NewAlarmRepo(db *DB) *AlarmRepo {
	return &AlarmRepo{db: db}
}

// FetchAll returns every alarm in storage order.
func (r *AlarmRepo) FetchAll(ctx context.Context) ([]*model.Alarm, error) {
	return r.list(ctx, "fetch_all", AlarmQuery{})
}

// Search returns alarms whose time, days or description contains text.
// An empty text matches every alarm.
func (r *AlarmRepo) Search(ctx context.Context, text string) ([]*model.Alarm, error) {
	return r.list(ctx, "search", AlarmQuery{Text: text})
}

// FilterByStatus returns alarms whose active flag equals active.
func (r *AlarmRepo) FilterByStatus(ctx context.Context, active bool) ([]*model.Alarm, error) {
	return r.list(ctx, "filter_by_status", AlarmQuery{Active: &active})
}

// List returns alarms matching both predicates of q.
func (r *AlarmRepo) List(ctx context.Context, q AlarmQuery) ([]*model.Alarm, error) {
	return r.list(ctx, "list", q)
}

// Get returns the alarm with the given id, or ErrAlarmNotFound.
func (r *AlarmRepo) Get(ctx context.Context, id int64) (*model.Alarm, error) {
	var found *model.Alarm
	err := r.db.Query(ctx, selectAlarms+" WHERE id = ?", []any{id}, func(rows *sql.Rows) error {
		a, err := scanAlarm(rows)
		if err != nil {
			return err
		}
		found = a
		return nil
	})
	if err != nil {
		return nil, errors.NewSystemErrorWithOp("get", "query failed", err)
	}
	if found == nil {
		return nil, fmt.Errorf("alarm %d: %w", id, errors.ErrAlarmNotFound)
	}
	return found, nil
}

// Count returns the number of stored alarms.
func (r *AlarmRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.Query(ctx, "SELECT COUNT(*) FROM alarms", nil, func(rows *sql.Rows) error {
		return rows.Scan(&n)
	})
	if err != nil {
		return 0, errors.NewSystemErrorWithOp("count", "query failed", err)
	}
	return n, nil
}

// Save inserts a new alarm and assigns its generated id, or overwrites all
// mutable fields of an existing one. There is no concurrency check: the last
// write wins.
func (r *AlarmRepo) Save(ctx context.Context, a *model.Alarm) error {
	log := logging.LoggerFromContext(ctx)

	if a.IsNew() {
		res, err := r.db.Exec(ctx,
			"INSERT INTO alarms (time, days, description, is_active) VALUES (?, ?, ?, ?)",
			a.Time, a.Days, a.Description, a.IsActive)
		if err != nil {
			return errors.NewSystemErrorWithOp("save", "insert failed", err)
		}
		a.ID = res.LastInsertID
		log.Info("alarm created", logging.KeyAlarmID, a.ID)
		return nil
	}

	_, err := r.db.Exec(ctx,
		"UPDATE alarms SET time = ?, days = ?, description = ?, is_active = ? WHERE id = ?",
		a.Time, a.Days, a.Description, a.IsActive, a.ID)
	if err != nil {
		return errors.NewSystemErrorWithOp("save", "update failed", err)
	}
	log.Info("alarm updated", logging.KeyAlarmID, a.ID)
	return nil
}

// Delete removes the alarm's row. It is a no-op for an unsaved alarm.
func (r *AlarmRepo) Delete(ctx context.Context, a *model.Alarm) error {
	if a == nil || a.IsNew() {
		return nil
	}

	if _, err := r.db.Exec(ctx, "DELETE FROM alarms WHERE id = ?", a.ID); err != nil {
		return errors.NewSystemErrorWithOp("delete", "delete failed", err)
	}
	logging.LoggerFromContext(ctx).Info("alarm deleted", logging.KeyAlarmID, a.ID)
	return nil
}

func (r *AlarmRepo) list(ctx context.Context, op string, q AlarmQuery) ([]*model.Alarm, error) {
	stmt, args := q.Build()

	alarms := []*model.Alarm{}
	err := r.db.Query(ctx, stmt, args, func(rows *sql.Rows) error {
		a, err := scanAlarm(rows)
		if err != nil {
			return err
		}
		alarms = append(alarms, a)
		return nil
	})
	if err != nil {
		return nil, errors.NewSystemErrorWithOp(op, "query failed", err)
	}
	return alarms, nil
}

// scanAlarm reads one row. days and description may be NULL when the row
// was written outside alarmbook.
func scanAlarm(rows *sql.Rows) (*model.Alarm, error) {
	var (
		a           model.Alarm
		days, descr sql.NullString
	)
	if err := rows.Scan(&a.ID, &a.Time, &days, &descr, &a.IsActive); err != nil {
		return nil, err
	}
	a.Days = days.String
	a.Description = descr.String
	return &a, nil
}
