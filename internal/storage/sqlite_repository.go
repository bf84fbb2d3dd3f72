package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sandeepkv93/plannerd/internal/model"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) DB() *sql.DB {
	return r.db
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) CreateTask(ctx context.Context, in model.Task) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, estimated_minutes, due_at, priority, time_of_day, category, notes, completed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Title, in.EstimatedMinutes, nullTime(in.Due), string(in.Priority), string(in.TimeOfDay),
		in.Category, in.Notes, boolInt(in.Completed), mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) GetTask(ctx context.Context, id string) (model.Task, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, estimated_minutes, due_at, priority, time_of_day, category, notes, completed, created_at
		FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, err
	}
	return task, nil
}

func (r *SQLiteRepository) UpdateTask(ctx context.Context, in model.Task) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, estimated_minutes = ?, due_at = ?, priority = ?, time_of_day = ?, category = ?, notes = ?, completed = ?
		WHERE id = ?`,
		in.Title, in.EstimatedMinutes, nullTime(in.Due), string(in.Priority), string(in.TimeOfDay),
		in.Category, in.Notes, boolInt(in.Completed), in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteTask(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListTasks(ctx context.Context, filter TaskListFilter) ([]model.Task, error) {
	query := `SELECT id, title, estimated_minutes, due_at, priority, time_of_day, category, notes, completed, created_at FROM tasks`
	clauses := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if filter.Completed != nil {
		clauses = append(clauses, "completed = ?")
		args = append(args, boolInt(*filter.Completed))
	}
	if filter.Category != "" {
		clauses = append(clauses, "category = ?")
		args = append(args, filter.Category)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY created_at ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateEvent(ctx context.Context, in model.Event) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO events (id, title, location, start_at, end_at, all_day, repeat_weekly, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Title, in.Location, nullTime(in.Start), nullTime(in.End),
		boolInt(in.AllDay), boolInt(in.RepeatWeekly), mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) GetEvent(ctx context.Context, id string) (model.Event, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, location, start_at, end_at, all_day, repeat_weekly, created_at
		FROM events WHERE id = ?`, id)
	ev, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Event{}, ErrNotFound
		}
		return model.Event{}, err
	}
	return ev, nil
}

func (r *SQLiteRepository) UpdateEvent(ctx context.Context, in model.Event) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE events
		SET title = ?, location = ?, start_at = ?, end_at = ?, all_day = ?, repeat_weekly = ?
		WHERE id = ?`,
		in.Title, in.Location, nullTime(in.Start), nullTime(in.End),
		boolInt(in.AllDay), boolInt(in.RepeatWeekly), in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteEvent(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListEvents(ctx context.Context, filter EventListFilter) ([]model.Event, error) {
	query := `SELECT id, title, location, start_at, end_at, all_day, repeat_weekly, created_at FROM events`
	args := make([]any, 0, 3)
	if filter.RepeatWeekly != nil {
		query += ` WHERE repeat_weekly = ?`
		args = append(args, boolInt(*filter.RepeatWeekly))
	}
	query += ` ORDER BY start_at ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Event, 0)
	for rows.Next() {
		ev, scanErr := scanEvent(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateAssignment(ctx context.Context, in model.Assignment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO assignments (id, title, due_at, source, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		in.ID, in.Title, nullTime(in.Due), in.Source, mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) DeleteAssignment(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM assignments WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListAssignments(ctx context.Context, filter AssignmentListFilter) ([]model.Assignment, error) {
	args := make([]any, 0, 2)
	query := `SELECT id, title, due_at, source, created_at FROM assignments ORDER BY due_at ASC` +
		applyPagination(&args, filter.Limit, filter.Offset)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Assignment, 0)
	for rows.Next() {
		item, scanErr := scanAssignment(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) GetSettings(ctx context.Context) (Settings, error) {
	row := r.db.QueryRowContext(ctx, `SELECT start_hour, end_hour FROM settings WHERE id = 1`)
	var out Settings
	if err := row.Scan(&out.StartHour, &out.EndHour); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return DefaultSettings, nil
		}
		return Settings{}, err
	}
	return out, nil
}

func (r *SQLiteRepository) SaveSettings(ctx context.Context, in Settings) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings (id, start_hour, end_hour) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET start_hour = excluded.start_hour, end_hour = excluded.end_hour`,
		in.StartHour, in.EndHour,
	)
	return err
}

func nullTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.UTC().Format(sqliteTimeLayout)
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

// Times come back in local time: the planner core reads wall-clock
// fields (Hour, Date) off every instant it touches.
func parseNullableTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	tm, err := time.Parse(sqliteTimeLayout, v.String)
	if err != nil {
		return nil, err
	}
	local := tm.Local()
	return &local, nil
}

func parseRequiredTime(v string) (time.Time, error) {
	tm, err := time.Parse(sqliteTimeLayout, v)
	if err != nil {
		return time.Time{}, err
	}
	return tm.Local(), nil
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	}
	if offset > 0 {
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (model.Task, error) {
	var out model.Task
	var due sql.NullString
	var priority, tod string
	var completed int
	var created string
	if err := s.Scan(&out.ID, &out.Title, &out.EstimatedMinutes, &due, &priority, &tod, &out.Category, &out.Notes, &completed, &created); err != nil {
		return model.Task{}, err
	}
	dueAt, err := parseNullableTime(due)
	if err != nil {
		return model.Task{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return model.Task{}, err
	}
	out.Due = dueAt
	out.Priority = model.Priority(priority)
	out.TimeOfDay = model.TimeOfDay(tod)
	out.Completed = completed == 1
	out.CreatedAt = createdAt
	return out, nil
}

func scanEvent(s scanner) (model.Event, error) {
	var out model.Event
	var start, end sql.NullString
	var allDay, repeat int
	var created string
	if err := s.Scan(&out.ID, &out.Title, &out.Location, &start, &end, &allDay, &repeat, &created); err != nil {
		return model.Event{}, err
	}
	startAt, err := parseNullableTime(start)
	if err != nil {
		return model.Event{}, err
	}
	endAt, err := parseNullableTime(end)
	if err != nil {
		return model.Event{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return model.Event{}, err
	}
	out.Start = startAt
	out.End = endAt
	out.AllDay = allDay == 1
	out.RepeatWeekly = repeat == 1
	out.CreatedAt = createdAt
	return out, nil
}

func scanAssignment(s scanner) (model.Assignment, error) {
	var out model.Assignment
	var due sql.NullString
	var created string
	if err := s.Scan(&out.ID, &out.Title, &due, &out.Source, &created); err != nil {
		return model.Assignment{}, err
	}
	dueAt, err := parseNullableTime(due)
	if err != nil {
		return model.Assignment{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return model.Assignment{}, err
	}
	out.Due = dueAt
	out.CreatedAt = createdAt
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
