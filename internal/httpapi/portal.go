package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tutordesk/internal/auth"
	"tutordesk/internal/roster"
)

// Student portal. The token subject is the student id.

func (s *Server) me(c *gin.Context) (roster.Student, bool) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return roster.Student{}, false
	}
	st, err := s.Students.GetByID(c.Request.Context(), claims.Subject)
	if err != nil {
		s.fail(c, err)
		return roster.Student{}, false
	}
	return st, true
}

func (s *Server) myProfile(c *gin.Context) {
	st, ok := s.me(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, st)
}

func (s *Server) myAttendance(c *gin.Context) {
	st, ok := s.me(c)
	if !ok {
		return
	}
	history, err := s.Attendance.History(c.Request.Context(), st.ID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": history, "count": len(history)})
}

func (s *Server) myGrades(c *gin.Context) {
	st, ok := s.me(c)
	if !ok {
		return
	}
	list, err := s.Grades.ListByStudent(c.Request.Context(), st.ID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"grades": list, "count": len(list)})
}

func (s *Server) myPayments(c *gin.Context) {
	st, ok := s.me(c)
	if !ok {
		return
	}
	list, err := s.Payments.ListByStudent(c.Request.Context(), st.ID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": list, "count": len(list)})
}

// myVideos gates the library behind the absence rule: too many absences
// this month and the recordings stay closed.
func (s *Server) myVideos(c *gin.Context) {
	st, ok := s.me(c)
	if !ok {
		return
	}
	blocked, reason, err := s.Attendance.VideoBlocked(c.Request.Context(), st.ID)
	if err != nil {
		s.fail(c, err)
		return
	}
	if blocked {
		c.JSON(http.StatusForbidden, gin.H{"error": "video access blocked", "reason": reason})
		return
	}
	list, err := s.Catalog.ListVideos(c.Request.Context(), st.Group, st.Grade)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"videos": list, "count": len(list)})
}

func (s *Server) myBooks(c *gin.Context) {
	st, ok := s.me(c)
	if !ok {
		return
	}
	list, err := s.Catalog.ListBooks(c.Request.Context(), st.Group, st.Grade)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": list, "count": len(list)})
}

// Parent portal. The token subject is the parent phone; every child
// lookup re-checks ownership so one parent cannot browse another's kids.

func (s *Server) child(c *gin.Context) (roster.Student, bool) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return roster.Student{}, false
	}
	st, err := s.Students.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return roster.Student{}, false
	}
	if st.ParentPhone == "" || st.ParentPhone != claims.Subject {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your student"})
		return roster.Student{}, false
	}
	return st, true
}

func (s *Server) children(c *gin.Context) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}
	list, err := s.Students.Children(c.Request.Context(), claims.Subject)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"children": list, "count": len(list)})
}

func (s *Server) childAttendance(c *gin.Context) {
	st, ok := s.child(c)
	if !ok {
		return
	}
	history, err := s.Attendance.History(c.Request.Context(), st.ID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": history, "count": len(history)})
}

func (s *Server) childPayments(c *gin.Context) {
	st, ok := s.child(c)
	if !ok {
		return
	}
	list, err := s.Payments.ListByStudent(c.Request.Context(), st.ID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": list, "count": len(list)})
}

func (s *Server) childGrades(c *gin.Context) {
	st, ok := s.child(c)
	if !ok {
		return
	}
	list, err := s.Grades.ListByStudent(c.Request.Context(), st.ID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"grades": list, "count": len(list)})
}
