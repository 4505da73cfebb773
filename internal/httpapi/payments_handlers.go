package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tutordesk/internal/queue"
)

func (s *Server) registerPayment(c *gin.Context) {
	var req struct {
		StudentID string  `json:"student_id" binding:"required"`
		Month     string  `json:"month" binding:"required"`
		Amount    float64 `json:"amount" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := s.Payments.Register(c.Request.Context(), req.StudentID, req.Month, req.Amount)
	if err != nil {
		s.fail(c, err)
		return
	}

	if st, err := s.Students.GetByID(c.Request.Context(), req.StudentID); err == nil && st.ParentPhone != "" {
		err := s.Queue.Publish(c.Request.Context(), queue.Message{
			Type:        queue.TypePayment,
			StudentID:   st.ID,
			StudentName: st.Name,
			ParentPhone: st.ParentPhone,
			MonthLabel:  req.Month,
			Amount:      req.Amount,
		})
		if err != nil {
			s.Log.Warn("payment notify publish", zap.Error(err))
		}
	}

	c.JSON(http.StatusCreated, p)
}

func (s *Server) studentPayments(c *gin.Context) {
	list, err := s.Payments.ListByStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": list, "count": len(list)})
}

func (s *Server) deletePayment(c *gin.Context) {
	if err := s.Payments.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// paidPeriods reports which billing periods a student has covered, plus
// the payment labels no period could be derived from.
func (s *Server) paidPeriods(c *gin.Context) {
	periods, unresolved, err := s.Payments.PaidPeriodsReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	out := make([]gin.H, 0, len(periods))
	for _, p := range periods {
		out = append(out, gin.H{"period": p.Period, "labels": p.Labels})
	}
	c.JSON(http.StatusOK, gin.H{"periods": out, "unresolved": unresolved})
}
