package attendance

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tutordesk/internal/store"
)

// Repository persists attendance records in Postgres.
type Repository struct {
	exec *store.Executor
}

// NewRepository creates a repo on the shared executor.
func NewRepository(exec *store.Executor) *Repository {
	return &Repository{exec: exec}
}

// Insert writes a new record.
func (r *Repository) Insert(ctx context.Context, rec Record) (Record, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.NotedOn.IsZero() {
		rec.NotedOn = time.Now().UTC()
	}
	err := r.exec.QueryRowScan(ctx, `
		INSERT INTO attendance_records (id, student_id, status, lesson_number, noted_on)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING noted_at
	`, []any{rec.ID, rec.StudentID, string(rec.Status), rec.LessonNumber, rec.NotedOn}, &rec.NotedAt)
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

// LessonNumbers returns every lesson number on file for a student, the input
// the billing counter works from.
func (r *Repository) LessonNumbers(ctx context.Context, studentID string) ([]int, error) {
	rows, err := r.exec.Query(ctx, `SELECT lesson_number FROM attendance_records WHERE student_id = $1`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// History returns a student's records, most recent first.
func (r *Repository) History(ctx context.Context, studentID string) ([]Record, error) {
	rows, err := r.exec.Query(ctx, `
		SELECT id, student_id, status, lesson_number, noted_on, noted_at
		FROM attendance_records
		WHERE student_id = $1
		ORDER BY lesson_number DESC
	`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.StudentID, &rec.Status, &rec.LessonNumber, &rec.NotedOn, &rec.NotedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Delete removes a record. The next scan recomputes its lesson number from
// whatever remains.
func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.exec.Exec(ctx, `DELETE FROM attendance_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// StudentIDsWithRecordOn returns the ids of students who already have a
// record on the given date, used to exclude them from bulk absences.
func (r *Repository) StudentIDsWithRecordOn(ctx context.Context, day time.Time) (map[string]bool, error) {
	rows, err := r.exec.Query(ctx, `SELECT DISTINCT student_id FROM attendance_records WHERE noted_on = $1`, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = true
	}
	return out, rows.Err()
}

// ListOn returns all records noted on a given date, optionally filtered by
// the students' group; used by the daily export.
func (r *Repository) ListOn(ctx context.Context, day time.Time, group string) ([]Record, error) {
	query := `
		SELECT a.id, a.student_id, a.status, a.lesson_number, a.noted_on, a.noted_at
		FROM attendance_records a
		JOIN students s ON s.id = a.student_id
		WHERE a.noted_on = $1`
	args := []any{day}
	if group != "" {
		query += ` AND s."group" = $2`
		args = append(args, group)
	}
	query += ` ORDER BY a.noted_at`

	rows, err := r.exec.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.StudentID, &rec.Status, &rec.LessonNumber, &rec.NotedOn, &rec.NotedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
