package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tutordesk/internal/auth"
)

// login dispatches on role. Admins send user+password, students send
// code+password, parents send their phone plus a child's code.
func (s *Server) login(c *gin.Context) {
	var req struct {
		Role     string `json:"role" binding:"required"`
		User     string `json:"user"`
		Code     string `json:"code"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var (
		pair auth.TokenPair
		err  error
	)
	switch req.Role {
	case auth.RoleAdmin:
		pair, err = s.Auth.LoginAdmin(c.Request.Context(), req.User, req.Password)
	case auth.RoleStudent:
		pair, err = s.Auth.LoginStudent(c.Request.Context(), req.Code, req.Password)
	case auth.RoleParent:
		pair, err = s.Auth.LoginParent(c.Request.Context(), req.Phone, req.Code)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role"})
		return
	}
	if err != nil {
		if errors.Is(err, auth.ErrBadCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		s.Log.Error("login", zapError(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"expires_at":    pair.AccessExp.Unix(),
	})
}

func (s *Server) logout(c *gin.Context) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}
	if err := s.Auth.Logout(c.Request.Context(), claims.SessionID); err != nil {
		s.Log.Error("logout", zapError(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}
