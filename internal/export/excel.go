// Package export builds the Excel workbooks the admin console downloads.
package export

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"tutordesk/internal/attendance"
	"tutordesk/internal/payments"
	"tutordesk/internal/roster"
)

// sheet writes a bold, auto-filtered header row and string rows below it.
func sheet(f *excelize.File, name string, header []string, rows [][]string) error {
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	for col, h := range header {
		cell := colName(col+1) + "1"
		if err := f.SetCellStr(name, cell, h); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	end := colName(len(header)) + "1"
	_ = f.SetCellStyle(name, "A1", end, bold)
	_ = f.AutoFilter(name, "A1:"+end, nil)

	for r, row := range rows {
		for c, val := range row {
			cell := colName(c+1) + strconv.Itoa(r+2)
			if err := f.SetCellStr(name, cell, val); err != nil {
				return fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}
	return nil
}

// PaymentsWorkbook builds the ledger download: one row per payment with its
// paid-month label as entered.
func PaymentsWorkbook(list []payments.Payment) (*excelize.File, error) {
	f := excelize.NewFile()
	header := []string{"Student", "Code", "Group", "Month", "Amount", "Paid at"}
	rows := make([][]string, 0, len(list))
	for _, p := range list {
		rows = append(rows, []string{
			p.StudentName,
			p.StudentCode,
			p.Group,
			p.Month,
			strconv.FormatFloat(p.Amount, 'f', 2, 64),
			p.PaidAt.Format("2006-01-02"),
		})
	}
	if err := sheet(f, "Payments", header, rows); err != nil {
		return nil, err
	}
	return f, nil
}

// AttendanceWorkbook builds the daily attendance download. Records arrive
// joined with their students by the caller.
func AttendanceWorkbook(records []attendance.Record, students map[string]roster.Student) (*excelize.File, error) {
	f := excelize.NewFile()
	header := []string{"Student", "Code", "Group", "Status", "Lesson", "Date"}
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		st := students[rec.StudentID]
		rows = append(rows, []string{
			st.Name,
			st.Code,
			st.Group,
			string(rec.Status),
			strconv.Itoa(rec.LessonNumber),
			rec.NotedOn.Format("2006-01-02"),
		})
	}
	if err := sheet(f, "Attendance", header, rows); err != nil {
		return nil, err
	}
	return f, nil
}

// colName converts 1-based column index to the A..Z, AA.. letter form.
func colName(n int) string {
	name := ""
	for n > 0 {
		n--
		name = string(rune('A'+n%26)) + name
		n /= 26
	}
	return name
}
