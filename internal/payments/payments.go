// Package payments registers month payments and answers eligibility
// questions for the scan flow.
package payments

import (
	"errors"
	"time"
)

// ErrNotFound means the payment does not exist.
var ErrNotFound = errors.New("payments: payment not found")

// PaidMonth is one billing period marked as paid, stored as the free-text
// label the admin entered (numeric, Arabic phrase, or free text — the
// billing resolver copes with all three).
type PaidMonth struct {
	ID     string    `json:"id"`
	Month  string    `json:"month"`
	PaidAt time.Time `json:"paid_at"`
}

// Payment is one month-payment event. Student name, code and group are
// denormalized at registration time so the ledger survives roster edits.
type Payment struct {
	ID          string      `json:"id"`
	StudentID   string      `json:"student_id"`
	StudentName string      `json:"student_name"`
	StudentCode string      `json:"student_code"`
	Group       string      `json:"group"`
	Month       string      `json:"month"`
	Amount      float64     `json:"amount"`
	PaidAt      time.Time   `json:"paid_at"`
	CreatedAt   time.Time   `json:"created_at"`
	PaidMonths  []PaidMonth `json:"paid_months"`
}
