package catalog

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"tutordesk/internal/store"
)

// Repository persists catalog content in Postgres.
type Repository struct {
	exec *store.Executor
}

// NewRepository creates a repo on the shared executor.
func NewRepository(exec *store.Executor) *Repository {
	return &Repository{exec: exec}
}

// InsertVideo adds a recording.
func (r *Repository) InsertVideo(ctx context.Context, v Video) (Video, error) {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	err := r.exec.QueryRowScan(ctx, `
		INSERT INTO videos (id, title, url, "group", grade, position, thumb_url)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at
	`, []any{v.ID, v.Title, v.URL, v.Group, v.Grade, v.Position, v.ThumbURL}, &v.CreatedAt)
	if err != nil {
		return Video{}, err
	}
	return v, nil
}

// ListVideos returns videos, optionally filtered by group/grade, in display
// order.
func (r *Repository) ListVideos(ctx context.Context, group, grade string) ([]Video, error) {
	query := `SELECT id, title, url, "group", grade, position, thumb_url, created_at FROM videos`
	query, args := filterBy(query, group, grade)
	query += ` ORDER BY position, created_at`

	rows, err := r.exec.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Video
	for rows.Next() {
		var v Video
		if err := rows.Scan(&v.ID, &v.Title, &v.URL, &v.Group, &v.Grade, &v.Position, &v.ThumbURL, &v.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// DeleteVideo removes a recording.
func (r *Repository) DeleteVideo(ctx context.Context, id string) error {
	return r.deleteFrom(ctx, "videos", id)
}

// InsertBook adds a document.
func (r *Repository) InsertBook(ctx context.Context, b Book) (Book, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	err := r.exec.QueryRowScan(ctx, `
		INSERT INTO books (id, title, url, "group", grade, cover_url)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at
	`, []any{b.ID, b.Title, b.URL, b.Group, b.Grade, b.CoverURL}, &b.CreatedAt)
	if err != nil {
		return Book{}, err
	}
	return b, nil
}

// ListBooks returns books, optionally filtered by group/grade.
func (r *Repository) ListBooks(ctx context.Context, group, grade string) ([]Book, error) {
	query := `SELECT id, title, url, "group", grade, cover_url, created_at FROM books`
	query, args := filterBy(query, group, grade)
	query += ` ORDER BY created_at DESC`

	rows, err := r.exec.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.URL, &b.Group, &b.Grade, &b.CoverURL, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// DeleteBook removes a document.
func (r *Repository) DeleteBook(ctx context.Context, id string) error {
	return r.deleteFrom(ctx, "books", id)
}

func (r *Repository) deleteFrom(ctx context.Context, table, id string) error {
	res, err := r.exec.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func filterBy(query, group, grade string) (string, []any) {
	args := []any{}
	clauses := []string{}
	if group != "" {
		args = append(args, group)
		clauses = append(clauses, `"group" = $`+strconv.Itoa(len(args)))
	}
	if grade != "" {
		args = append(args, grade)
		clauses = append(clauses, `grade = $`+strconv.Itoa(len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	return query, args
}
