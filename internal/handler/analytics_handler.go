package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/college-erp-api/internal/dto"
	"github.com/noah-isme/college-erp-api/pkg/response"
)

type analyticsService interface {
	Overview(ctx context.Context) (*dto.ERPAnalytics, error)
	LowAttendance(ctx context.Context, query dto.LowAttendanceQuery) ([]dto.LowAttendanceRecord, error)
	FacultyWorkload(ctx context.Context) ([]dto.FacultyWorkload, error)
	CourseEnrollment(ctx context.Context) ([]dto.CourseEnrollment, error)
	LeaveTrends(ctx context.Context) (map[string]*dto.LeaveTrend, error)
	TimetableConflicts(ctx context.Context) ([]dto.TimetableConflict, error)
}

// AnalyticsHandler exposes the cross-collection reports.
type AnalyticsHandler struct {
	analytics analyticsService
}

// NewAnalyticsHandler constructs AnalyticsHandler.
func NewAnalyticsHandler(analytics analyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// Overview godoc
// @Summary Institution overview
// @Tags Analytics
// @Produce json
// @Success 200 {object} response.Envelope{data=dto.ERPAnalytics}
// @Router /analytics [get]
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	overview, err := h.analytics.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, overview)
}

// LowAttendance godoc
// @Summary Attendance sheets under a threshold
// @Tags Analytics
// @Produce json
// @Param threshold query number false "Percentage, defaults to the configured threshold"
// @Success 200 {object} response.Envelope{data=[]dto.LowAttendanceRecord}
// @Failure 400 {object} response.Envelope
// @Router /analytics/low-attendance [get]
func (h *AnalyticsHandler) LowAttendance(c *gin.Context) {
	var query dto.LowAttendanceQuery
	if !bindQuery(c, &query) {
		return
	}
	records, err := h.analytics.LowAttendance(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	if records == nil {
		records = []dto.LowAttendanceRecord{}
	}
	response.JSON(c, http.StatusOK, records)
}

// FacultyWorkload godoc
// @Summary Active courses per faculty member
// @Tags Analytics
// @Produce json
// @Success 200 {object} response.Envelope{data=[]dto.FacultyWorkload}
// @Router /analytics/faculty-workload [get]
func (h *AnalyticsHandler) FacultyWorkload(c *gin.Context) {
	workload, err := h.analytics.FacultyWorkload(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if workload == nil {
		workload = []dto.FacultyWorkload{}
	}
	response.JSON(c, http.StatusOK, workload)
}

// CourseEnrollment godoc
// @Summary Active course catalogue
// @Tags Analytics
// @Produce json
// @Success 200 {object} response.Envelope{data=[]dto.CourseEnrollment}
// @Router /analytics/course-enrollment [get]
func (h *AnalyticsHandler) CourseEnrollment(c *gin.Context) {
	courses, err := h.analytics.CourseEnrollment(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if courses == nil {
		courses = []dto.CourseEnrollment{}
	}
	response.JSON(c, http.StatusOK, courses)
}

// LeaveTrends godoc
// @Summary Leave requests per start month
// @Tags Analytics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /analytics/leave-trends [get]
func (h *AnalyticsHandler) LeaveTrends(c *gin.Context) {
	trends, err := h.analytics.LeaveTrends(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if trends == nil {
		trends = map[string]*dto.LeaveTrend{}
	}
	response.JSON(c, http.StatusOK, trends)
}

// TimetableConflicts godoc
// @Summary Double-booked rooms and faculty
// @Tags Analytics
// @Produce json
// @Success 200 {object} response.Envelope{data=[]dto.TimetableConflict}
// @Router /analytics/timetable-conflicts [get]
func (h *AnalyticsHandler) TimetableConflicts(c *gin.Context) {
	conflicts, err := h.analytics.TimetableConflicts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if conflicts == nil {
		conflicts = []dto.TimetableConflict{}
	}
	response.JSON(c, http.StatusOK, conflicts)
}
