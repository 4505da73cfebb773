package roster

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"tutordesk/internal/store"
)

// Repository persists students in Postgres.
type Repository struct {
	exec *store.Executor
}

// NewRepository creates a repo on the shared executor.
func NewRepository(exec *store.Executor) *Repository {
	return &Repository{exec: exec}
}

const studentColumns = `id, code, name, "group", grade, phone, parent_phone, password_hash, created_at`

// Insert writes a new student. A unique-index violation on code surfaces as
// ErrDuplicateCode so the service can regenerate.
func (r *Repository) Insert(ctx context.Context, s Student) (Student, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	err := r.exec.QueryRowScan(ctx, `
		INSERT INTO students (id, code, name, "group", grade, phone, parent_phone, password_hash)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at
	`, []any{s.ID, s.Code, s.Name, s.Group, s.Grade, s.Phone, s.ParentPhone, s.PasswordHash}, &s.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "students_code_key") || strings.Contains(err.Error(), "duplicate key") {
			return Student{}, ErrDuplicateCode
		}
		return Student{}, err
	}
	return s, nil
}

// Update rewrites the mutable student fields. Password hash is only touched
// when non-empty.
func (r *Repository) Update(ctx context.Context, s Student) error {
	res, err := r.exec.Exec(ctx, `
		UPDATE students
		SET name = $2, "group" = $3, grade = $4, phone = $5, parent_phone = $6,
		    password_hash = CASE WHEN $7 = '' THEN password_hash ELSE $7 END
		WHERE id = $1
	`, s.ID, s.Name, s.Group, s.Grade, s.Phone, s.ParentPhone, s.PasswordHash)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a student and, via cascade, their records.
func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.exec.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID returns one student.
func (r *Repository) GetByID(ctx context.Context, id string) (Student, error) {
	return r.scanOne(ctx, `SELECT `+studentColumns+` FROM students WHERE id = $1`, id)
}

// GetByCode returns one student by check-in code.
func (r *Repository) GetByCode(ctx context.Context, code string) (Student, error) {
	return r.scanOne(ctx, `SELECT `+studentColumns+` FROM students WHERE code = $1`, code)
}

func (r *Repository) scanOne(ctx context.Context, query string, arg any) (Student, error) {
	var s Student
	err := r.exec.QueryRowScan(ctx, query, []any{arg},
		&s.ID, &s.Code, &s.Name, &s.Group, &s.Grade, &s.Phone, &s.ParentPhone, &s.PasswordHash, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Student{}, ErrNotFound
	}
	if err != nil {
		return Student{}, err
	}
	return s, nil
}

// List returns students, optionally filtered by group and/or grade.
func (r *Repository) List(ctx context.Context, group, grade string) ([]Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students`
	args := []any{}
	clauses := []string{}
	if group != "" {
		args = append(args, group)
		clauses = append(clauses, `"group" = $`+itoa(len(args)))
	}
	if grade != "" {
		args = append(args, grade)
		clauses = append(clauses, `grade = $`+itoa(len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY name"

	rows, err := r.exec.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Student
	for rows.Next() {
		var s Student
		if err := rows.Scan(&s.ID, &s.Code, &s.Name, &s.Group, &s.Grade, &s.Phone, &s.ParentPhone, &s.PasswordHash, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListByParentPhone returns every child registered under a parent's phone.
func (r *Repository) ListByParentPhone(ctx context.Context, phone string) ([]Student, error) {
	rows, err := r.exec.Query(ctx, `SELECT `+studentColumns+` FROM students WHERE parent_phone = $1 ORDER BY name`, phone)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Student
	for rows.Next() {
		var s Student
		if err := rows.Scan(&s.ID, &s.Code, &s.Name, &s.Group, &s.Grade, &s.Phone, &s.ParentPhone, &s.PasswordHash, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func itoa(i int) string { return strconv.Itoa(i) }
