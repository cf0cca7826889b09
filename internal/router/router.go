package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/college-erp-api/internal/handler"
	"github.com/noah-isme/college-erp-api/internal/middleware"
	"github.com/noah-isme/college-erp-api/internal/models"
	"github.com/noah-isme/college-erp-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/college-erp-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/college-erp-api/pkg/middleware/requestid"
)

// Options controls which route groups are mounted.
type Options struct {
	APIPrefix        string
	AllowedOrigins   []string
	EnableDashboard  bool
	EnableMutations  bool
	EnableSwaggerDoc bool
}

// Handlers bundles the HTTP handlers served by the API.
type Handlers struct {
	Data         *handler.DataHandler
	Dashboard    *handler.DashboardHandler
	Students     *handler.StudentHandler
	Faculty      *handler.FacultyHandler
	Courses      *handler.CourseHandler
	Attendance   *handler.AttendanceHandler
	LeaveRequest *handler.LeaveRequestHandler
	Timetables   *handler.TimetableHandler
	Analytics    *handler.AnalyticsHandler
	Health       *handler.HealthHandler
}

// Setup builds the gin engine with global middleware and every route group.
func Setup(opts Options, h Handlers, tokens middleware.TokenValidator, metrics middleware.HTTPObserver, logr *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(opts.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", h.Health.Health)
	r.GET("/ready", h.Health.Ready)
	r.GET("/metrics", h.Health.Prometheus)
	if opts.EnableSwaggerDoc {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	prefix := opts.APIPrefix
	if prefix == "" {
		prefix = "/api"
	}
	api := r.Group(prefix)
	api.Use(middleware.WithResponseMeta())
	{
		api.GET("/collections", h.Data.Collections)
		api.GET("/data/:collection", h.Data.List)
		api.GET("/data/:collection/export", h.Data.Export)

		if opts.EnableDashboard {
			api.GET("/dashboard", h.Dashboard.Summary)
		}

		api.GET("/students/search", h.Students.Search)
		api.GET("/attendance", h.Attendance.List)
		api.GET("/attendance/stats", h.Attendance.Stats)
		api.GET("/leaverequests", h.LeaveRequest.List)
		api.GET("/timetables/day", h.Timetables.Day)
		api.GET("/timetables/weekly", h.Timetables.Weekly)

		analytics := api.Group("/analytics")
		{
			analytics.GET("", h.Analytics.Overview)
			analytics.GET("/low-attendance", h.Analytics.LowAttendance)
			analytics.GET("/faculty-workload", h.Analytics.FacultyWorkload)
			analytics.GET("/course-enrollment", h.Analytics.CourseEnrollment)
			analytics.GET("/leave-trends", h.Analytics.LeaveTrends)
			analytics.GET("/timetable-conflicts", h.Analytics.TimetableConflicts)
		}
	}

	writes := api.Group("")
	writes.Use(
		middleware.FeatureGate(opts.EnableMutations, "mutations"),
		middleware.JWT(tokens),
		middleware.RequireRoles(models.RoleAdmin, models.RoleFaculty),
	)
	{
		students := writes.Group("/students")
		{
			students.POST("", h.Students.Create)
			students.PUT("/:id", h.Students.Update)
			students.PATCH("/:id/status", h.Students.SetActive)
			students.DELETE("/:id", h.Students.Delete)
		}

		faculties := writes.Group("/faculties")
		{
			faculties.POST("", h.Faculty.Create)
			faculties.PUT("/:id", h.Faculty.Update)
			faculties.PATCH("/:id/status", h.Faculty.SetActive)
			faculties.DELETE("/:id", h.Faculty.Delete)
		}

		courses := writes.Group("/courses")
		{
			courses.POST("", h.Courses.Create)
			courses.PUT("/:id", h.Courses.Update)
			courses.PATCH("/:id/status", h.Courses.SetActive)
			courses.DELETE("/:id", h.Courses.Delete)
		}

		writes.POST("/attendance", h.Attendance.Record)
		writes.POST("/leaverequests", h.LeaveRequest.Create)
		writes.PATCH("/leaverequests/:id/decision", h.LeaveRequest.Decide)
		writes.POST("/timetables", h.Timetables.Create)
	}

	return r
}
