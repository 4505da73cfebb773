// Package grades stores exam results.
package grades

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"tutordesk/internal/store"
)

// ErrNotFound means the grade does not exist.
var ErrNotFound = errors.New("grades: grade not found")

// Grade is one exam result for one student.
type Grade struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	ExamName  string    `json:"exam_name"`
	Score     float64   `json:"score"`
	MaxScore  float64   `json:"max_score"`
	GradedAt  time.Time `json:"graded_at"`
}

// Repository persists grades in Postgres.
type Repository struct {
	exec *store.Executor
}

// NewRepository creates a repo on the shared executor.
func NewRepository(exec *store.Executor) *Repository {
	return &Repository{exec: exec}
}

// Insert records an exam result.
func (r *Repository) Insert(ctx context.Context, g Grade) (Grade, error) {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.GradedAt.IsZero() {
		g.GradedAt = time.Now().UTC()
	}
	_, err := r.exec.Exec(ctx, `
		INSERT INTO grades (id, student_id, exam_name, score, max_score, graded_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, g.ID, g.StudentID, g.ExamName, g.Score, g.MaxScore, g.GradedAt)
	if err != nil {
		return Grade{}, err
	}
	return g, nil
}

// ListByStudent returns a student's results, newest first.
func (r *Repository) ListByStudent(ctx context.Context, studentID string) ([]Grade, error) {
	rows, err := r.exec.Query(ctx, `
		SELECT id, student_id, exam_name, score, max_score, graded_at
		FROM grades
		WHERE student_id = $1
		ORDER BY graded_at DESC
	`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Grade
	for rows.Next() {
		var g Grade
		if err := rows.Scan(&g.ID, &g.StudentID, &g.ExamName, &g.Score, &g.MaxScore, &g.GradedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// Delete removes a result.
func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.exec.Exec(ctx, `DELETE FROM grades WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
