package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tutordesk/internal/attendance"
	"tutordesk/internal/catalog"
	"tutordesk/internal/grades"
	"tutordesk/internal/payments"
	"tutordesk/internal/roster"
	"tutordesk/internal/store"
)

func zapError(err error) zap.Field { return zap.Error(err) }

// fail maps service errors onto HTTP statuses. Anything unexpected is
// logged and hidden behind a 500.
func (s *Server) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, roster.ErrNotFound),
		errors.Is(err, attendance.ErrNotFound),
		errors.Is(err, payments.ErrNotFound),
		errors.Is(err, grades.ErrNotFound),
		errors.Is(err, catalog.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, roster.ErrDuplicateCode):
		c.JSON(http.StatusConflict, gin.H{"error": "student code already in use"})
	case errors.Is(err, store.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable, retry shortly"})
	default:
		s.Log.Error("handler", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
