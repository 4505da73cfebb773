package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tutordesk/internal/qr"
	"tutordesk/internal/roster"
)

func (s *Server) createStudent(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Group       string `json:"group" binding:"required"`
		Grade       string `json:"grade"`
		Phone       string `json:"phone"`
		ParentPhone string `json:"parent_phone"`
		Password    string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	st, err := s.Students.Create(c.Request.Context(), roster.Student{
		Name:        req.Name,
		Group:       req.Group,
		Grade:       req.Grade,
		Phone:       req.Phone,
		ParentPhone: req.ParentPhone,
	}, req.Password)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, st)
}

func (s *Server) listStudents(c *gin.Context) {
	list, err := s.Students.List(c.Request.Context(), c.Query("group"), c.Query("grade"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"students": list, "count": len(list)})
}

func (s *Server) getStudent(c *gin.Context) {
	st, err := s.Students.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (s *Server) updateStudent(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Group       string `json:"group" binding:"required"`
		Grade       string `json:"grade"`
		Phone       string `json:"phone"`
		ParentPhone string `json:"parent_phone"`
		Password    string `json:"password"` // empty keeps the old one
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existing, err := s.Students.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	existing.Name = req.Name
	existing.Group = req.Group
	existing.Grade = req.Grade
	existing.Phone = req.Phone
	existing.ParentPhone = req.ParentPhone

	if err := s.Students.Update(c.Request.Context(), existing, req.Password); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, existing)
}

func (s *Server) deleteStudent(c *gin.Context) {
	if err := s.Students.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// studentQR renders the printable check-in card as a PNG.
func (s *Server) studentQR(c *gin.Context) {
	st, err := s.Students.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	size := 256
	if v := c.Query("size"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= 2048 {
			size = parsed
		}
	}
	png, err := qr.CardPNG(st.Code, size)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+st.Code+`.png"`)
	c.Data(http.StatusOK, "image/png", png)
}
