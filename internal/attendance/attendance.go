// Package attendance records lessons at check-in and bulk absence
// registration. Lesson numbers come from the billing core; this package only
// fetches history and persists records.
package attendance

import (
	"errors"
	"time"
)

// ErrNotFound means the attendance record does not exist.
var ErrNotFound = errors.New("attendance: record not found")

// Status of one attendance record.
type Status string

const (
	Present Status = "present"
	Absent  Status = "absent"
)

// Record is one immutable attendance row. LessonNumber is assigned once at
// creation and never changes; rows are deleted, never updated.
type Record struct {
	ID           string    `json:"id"`
	StudentID    string    `json:"student_id"`
	Status       Status    `json:"status"`
	LessonNumber int       `json:"lesson_number"`
	NotedOn      time.Time `json:"noted_on"`
	NotedAt      time.Time `json:"noted_at"`
}
