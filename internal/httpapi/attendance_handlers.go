package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tutordesk/internal/queue"
)

const dayLayout = "2006-01-02"

// scan records a check-in for the scanned (or typed) student code and
// answers with the lesson position plus payment standing, so the front
// desk sees immediately whether to ask for money.
func (s *Server) scan(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := s.Attendance.Scan(c.Request.Context(), req.Code)
	if err != nil {
		s.fail(c, err)
		return
	}

	if res.Student.ParentPhone != "" {
		err := s.Queue.Publish(c.Request.Context(), queue.Message{
			Type:        queue.TypeScan,
			StudentID:   res.Student.ID,
			StudentName: res.Student.Name,
			ParentPhone: res.Student.ParentPhone,
			Lesson:      res.DisplayNumber,
			Paid:        res.Paid,
		})
		if err != nil {
			s.Log.Warn("scan notify publish", zap.Error(err))
		}
	}

	c.JSON(http.StatusCreated, res)
}

// registerAbsences marks every student of a group absent for the day,
// skipping those already scanned in.
func (s *Server) registerAbsences(c *gin.Context) {
	var req struct {
		Group string `json:"group" binding:"required"`
		Day   string `json:"day"` // defaults to today
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	day := time.Now().UTC()
	if req.Day != "" {
		parsed, err := time.Parse(dayLayout, req.Day)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "day must be YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	n, err := s.Attendance.RegisterAbsences(c.Request.Context(), req.Group, day)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"registered": n})
}

func (s *Server) listAttendance(c *gin.Context) {
	day := time.Now().UTC()
	if v := c.Query("day"); v != "" {
		parsed, err := time.Parse(dayLayout, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "day must be YYYY-MM-DD"})
			return
		}
		day = parsed
	}
	records, err := s.Attendance.ListOn(c.Request.Context(), day, c.Query("group"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records, "count": len(records)})
}

func (s *Server) studentAttendance(c *gin.Context) {
	history, err := s.Attendance.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": history, "count": len(history)})
}

func (s *Server) deleteAttendance(c *gin.Context) {
	if err := s.Attendance.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
