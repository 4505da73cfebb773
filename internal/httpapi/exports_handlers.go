package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"tutordesk/internal/export"
	"tutordesk/internal/roster"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) exportPayments(c *gin.Context) {
	list, err := s.Payments.ListByGroupAndMonth(c.Request.Context(), c.Query("group"), c.Query("month"))
	if err != nil {
		s.fail(c, err)
		return
	}
	f, err := export.PaymentsWorkbook(list)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.sendWorkbook(c, f, "payments.xlsx")
}

func (s *Server) exportAttendance(c *gin.Context) {
	day := time.Now().UTC()
	if v := c.Query("day"); v != "" {
		parsed, err := time.Parse(dayLayout, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "day must be YYYY-MM-DD"})
			return
		}
		day = parsed
	}
	group := c.Query("group")

	records, err := s.Attendance.ListOn(c.Request.Context(), day, group)
	if err != nil {
		s.fail(c, err)
		return
	}
	students, err := s.Students.List(c.Request.Context(), group, "")
	if err != nil {
		s.fail(c, err)
		return
	}
	byID := make(map[string]roster.Student, len(students))
	for _, st := range students {
		byID[st.ID] = st
	}

	f, err := export.AttendanceWorkbook(records, byID)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.sendWorkbook(c, f, "attendance-"+day.Format(dayLayout)+".xlsx")
}

func (s *Server) sendWorkbook(c *gin.Context, f *excelize.File, filename string) {
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := f.Write(c.Writer); err != nil {
		s.Log.Error("workbook write", zapError(err))
	}
}
