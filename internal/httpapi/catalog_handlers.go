package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tutordesk/internal/catalog"
	"tutordesk/internal/grades"
)

func (s *Server) createVideo(c *gin.Context) {
	var req struct {
		Title    string `json:"title" binding:"required"`
		URL      string `json:"url" binding:"required"`
		Group    string `json:"group" binding:"required"`
		Grade    string `json:"grade"`
		Position int    `json:"position"`
		ThumbURL string `json:"thumb_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	v, err := s.Catalog.InsertVideo(c.Request.Context(), catalog.Video{
		Title:    req.Title,
		URL:      req.URL,
		Group:    req.Group,
		Grade:    req.Grade,
		Position: req.Position,
		ThumbURL: req.ThumbURL,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

func (s *Server) listVideos(c *gin.Context) {
	list, err := s.Catalog.ListVideos(c.Request.Context(), c.Query("group"), c.Query("grade"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"videos": list, "count": len(list)})
}

func (s *Server) deleteVideo(c *gin.Context) {
	if err := s.Catalog.DeleteVideo(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) createBook(c *gin.Context) {
	var req struct {
		Title    string `json:"title" binding:"required"`
		URL      string `json:"url" binding:"required"`
		Group    string `json:"group" binding:"required"`
		Grade    string `json:"grade"`
		CoverURL string `json:"cover_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b, err := s.Catalog.InsertBook(c.Request.Context(), catalog.Book{
		Title:    req.Title,
		URL:      req.URL,
		Group:    req.Group,
		Grade:    req.Grade,
		CoverURL: req.CoverURL,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (s *Server) listBooks(c *gin.Context) {
	list, err := s.Catalog.ListBooks(c.Request.Context(), c.Query("group"), c.Query("grade"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": list, "count": len(list)})
}

func (s *Server) deleteBook(c *gin.Context) {
	if err := s.Catalog.DeleteBook(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) createGrade(c *gin.Context) {
	var req struct {
		StudentID string  `json:"student_id" binding:"required"`
		ExamName  string  `json:"exam_name" binding:"required"`
		Score     float64 `json:"score"`
		MaxScore  float64 `json:"max_score" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := s.Students.GetByID(c.Request.Context(), req.StudentID); err != nil {
		s.fail(c, err)
		return
	}
	g, err := s.Grades.Insert(c.Request.Context(), grades.Grade{
		StudentID: req.StudentID,
		ExamName:  req.ExamName,
		Score:     req.Score,
		MaxScore:  req.MaxScore,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, g)
}

func (s *Server) studentGrades(c *gin.Context) {
	list, err := s.Grades.ListByStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"grades": list, "count": len(list)})
}

func (s *Server) deleteGrade(c *gin.Context) {
	if err := s.Grades.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
