// Package httpapi assembles the gin router for the console: public auth
// and health endpoints, then role-scoped groups for admins, students and
// parents.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tutordesk/internal/attendance"
	"tutordesk/internal/auth"
	"tutordesk/internal/catalog"
	"tutordesk/internal/grades"
	"tutordesk/internal/httpmiddleware"
	"tutordesk/internal/mediastore"
	"tutordesk/internal/metrics"
	"tutordesk/internal/payments"
	"tutordesk/internal/queue"
	"tutordesk/internal/roster"
	"tutordesk/internal/store"
)

// Server bundles the services behind the HTTP surface.
type Server struct {
	Log        *zap.Logger
	Auth       *auth.Service
	Students   *roster.Service
	Attendance *attendance.Service
	Payments   *payments.Service
	Catalog    *catalog.Repository
	Grades     *grades.Repository
	Queue      queue.Queue
	Media      *mediastore.Client // nil when not configured
	DB         *store.DB
	Redis      *store.Redis

	RateLimitPerMin int
}

// Router builds the full route tree with middleware attached.
func (s *Server) Router() *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(httpmiddleware.RequestLog(s.Log))
	r.Use(httpmiddleware.CORS())
	r.Use(httpmiddleware.SecurityHeaders())
	r.Use(httpmiddleware.NewIPLimiter(s.RateLimitPerMin).Middleware())

	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/healthz", s.health)

	r.POST("/v1/auth/login", s.login)
	r.POST("/v1/auth/logout", auth.Require(s.Auth), s.logout)

	admin := r.Group("/v1", auth.Require(s.Auth, auth.RoleAdmin))
	{
		admin.POST("/students", s.createStudent)
		admin.GET("/students", s.listStudents)
		admin.GET("/students/:id", s.getStudent)
		admin.PUT("/students/:id", s.updateStudent)
		admin.DELETE("/students/:id", s.deleteStudent)
		admin.GET("/students/:id/qr", s.studentQR)
		admin.GET("/students/:id/paid-periods", s.paidPeriods)

		admin.POST("/attendance/scan", s.scan)
		admin.POST("/attendance/absences", s.registerAbsences)
		admin.GET("/attendance", s.listAttendance)
		admin.GET("/students/:id/attendance", s.studentAttendance)
		admin.DELETE("/attendance/:id", s.deleteAttendance)

		admin.POST("/payments", s.registerPayment)
		admin.GET("/students/:id/payments", s.studentPayments)
		admin.DELETE("/payments/:id", s.deletePayment)

		admin.POST("/videos", s.createVideo)
		admin.GET("/videos", s.listVideos)
		admin.DELETE("/videos/:id", s.deleteVideo)
		admin.POST("/books", s.createBook)
		admin.GET("/books", s.listBooks)
		admin.DELETE("/books/:id", s.deleteBook)

		admin.POST("/grades", s.createGrade)
		admin.GET("/students/:id/grades", s.studentGrades)
		admin.DELETE("/grades/:id", s.deleteGrade)

		admin.GET("/exports/payments", s.exportPayments)
		admin.GET("/exports/attendance", s.exportAttendance)

		admin.POST("/uploads", s.upload)
	}

	student := r.Group("/v1/me", auth.Require(s.Auth, auth.RoleStudent))
	{
		student.GET("/profile", s.myProfile)
		student.GET("/attendance", s.myAttendance)
		student.GET("/grades", s.myGrades)
		student.GET("/payments", s.myPayments)
		student.GET("/videos", s.myVideos)
		student.GET("/books", s.myBooks)
	}

	parent := r.Group("/v1/children", auth.Require(s.Auth, auth.RoleParent))
	{
		parent.GET("", s.children)
		parent.GET("/:id/attendance", s.childAttendance)
		parent.GET("/:id/payments", s.childPayments)
		parent.GET("/:id/grades", s.childGrades)
	}

	return r
}

func (s *Server) health(c *gin.Context) {
	start := time.Now()
	dbHealthy := s.DB.Client.PingContext(c.Request.Context()) == nil
	metrics.ObserveDBPing(time.Since(start))
	redisHealthy := s.Redis.Healthy(c.Request.Context())

	status := http.StatusOK
	if !dbHealthy || !redisHealthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"status": "ok", "db": dbHealthy, "redis": redisHealthy})
}
