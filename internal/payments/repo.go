package payments

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"tutordesk/internal/store"
)

// Repository persists payments and their paid months in Postgres.
type Repository struct {
	exec *store.Executor
}

// NewRepository creates a repo on the shared executor.
func NewRepository(exec *store.Executor) *Repository {
	return &Repository{exec: exec}
}

// Insert writes a payment and its paid-month rows.
func (r *Repository) Insert(ctx context.Context, p Payment) (Payment, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.PaidAt.IsZero() {
		p.PaidAt = time.Now().UTC()
	}
	err := r.exec.QueryRowScan(ctx, `
		INSERT INTO payments (id, student_id, student_name, student_code, "group", month, amount, paid_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at
	`, []any{p.ID, p.StudentID, p.StudentName, p.StudentCode, p.Group, p.Month, p.Amount, p.PaidAt}, &p.CreatedAt)
	if err != nil {
		return Payment{}, err
	}
	for i := range p.PaidMonths {
		if p.PaidMonths[i].ID == "" {
			p.PaidMonths[i].ID = uuid.NewString()
		}
		if p.PaidMonths[i].PaidAt.IsZero() {
			p.PaidMonths[i].PaidAt = p.PaidAt
		}
		_, err := r.exec.Exec(ctx, `
			INSERT INTO paid_months (id, payment_id, month, paid_at)
			VALUES ($1,$2,$3,$4)
		`, p.PaidMonths[i].ID, p.ID, p.PaidMonths[i].Month, p.PaidMonths[i].PaidAt)
		if err != nil {
			return Payment{}, err
		}
	}
	return p, nil
}

// ListByStudent returns a student's payments with their paid months, newest
// first.
func (r *Repository) ListByStudent(ctx context.Context, studentID string) ([]Payment, error) {
	rows, err := r.exec.Query(ctx, `
		SELECT id, student_id, student_name, student_code, "group", month, amount, paid_at, created_at
		FROM payments
		WHERE student_id = $1
		ORDER BY paid_at DESC
	`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Payment
	index := make(map[string]int)
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.StudentID, &p.StudentName, &p.StudentCode, &p.Group, &p.Month, &p.Amount, &p.PaidAt, &p.CreatedAt); err != nil {
			return nil, err
		}
		index[p.ID] = len(out)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}

	mrows, err := r.exec.Query(ctx, `
		SELECT pm.id, pm.payment_id, pm.month, pm.paid_at
		FROM paid_months pm
		JOIN payments p ON p.id = pm.payment_id
		WHERE p.student_id = $1
		ORDER BY pm.paid_at
	`, studentID)
	if err != nil {
		return nil, err
	}
	defer mrows.Close()
	for mrows.Next() {
		var pm PaidMonth
		var paymentID string
		if err := mrows.Scan(&pm.ID, &paymentID, &pm.Month, &pm.PaidAt); err != nil {
			return nil, err
		}
		if i, ok := index[paymentID]; ok {
			out[i].PaidMonths = append(out[i].PaidMonths, pm)
		}
	}
	return out, mrows.Err()
}

// ListByGroupAndMonth returns the ledger rows the export needs.
func (r *Repository) ListByGroupAndMonth(ctx context.Context, group, month string) ([]Payment, error) {
	query := `
		SELECT id, student_id, student_name, student_code, "group", month, amount, paid_at, created_at
		FROM payments`
	args := []any{}
	where := ""
	if group != "" {
		args = append(args, group)
		where = ` WHERE "group" = $1`
	}
	if month != "" {
		args = append(args, month)
		if where == "" {
			where = ` WHERE month = $1`
		} else {
			where += ` AND month = $2`
		}
	}
	query += where + ` ORDER BY paid_at DESC`

	rows, err := r.exec.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.StudentID, &p.StudentName, &p.StudentCode, &p.Group, &p.Month, &p.Amount, &p.PaidAt, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Delete removes a payment; paid months cascade.
func (r *Repository) Delete(ctx context.Context, id string) (string, error) {
	var studentID string
	err := r.exec.QueryRowScan(ctx, `DELETE FROM payments WHERE id = $1 RETURNING student_id`, []any{id}, &studentID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return studentID, err
}
