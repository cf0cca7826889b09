package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/college-erp-api/internal/dto"
	"github.com/noah-isme/college-erp-api/internal/models"
	"github.com/noah-isme/college-erp-api/pkg/response"
)

type attendanceService interface {
	List(ctx context.Context, query dto.AttendanceQuery) ([]models.Document, error)
	Record(ctx context.Context, req dto.RecordAttendanceRequest) (models.Document, error)
	Stats(ctx context.Context, query dto.AttendanceStatsQuery) (*models.AttendanceStats, error)
}

// AttendanceHandler exposes monthly attendance sheets and statistics.
type AttendanceHandler struct {
	attendance attendanceService
}

// NewAttendanceHandler constructs AttendanceHandler.
func NewAttendanceHandler(attendance attendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

// List godoc
// @Summary Attendance sheets of a student
// @Tags Attendance
// @Produce json
// @Param studentRoll query int true "Student roll"
// @Param month query string false "Month, e.g. June 2025"
// @Param year query int false "Year"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /attendance [get]
func (h *AttendanceHandler) List(c *gin.Context) {
	var query dto.AttendanceQuery
	if !bindQuery(c, &query) {
		return
	}
	docs, err := h.attendance.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	if docs == nil {
		docs = []models.Document{}
	}
	response.JSON(c, http.StatusOK, docs)
}

// Record godoc
// @Summary Record a monthly attendance sheet
// @Description Creates or replaces the sheet of (studentRoll, month, year) and derives its totals.
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.RecordAttendanceRequest true "Attendance sheet"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /attendance [post]
func (h *AttendanceHandler) Record(c *gin.Context) {
	var req dto.RecordAttendanceRequest
	if !bindJSON(c, &req) {
		return
	}
	doc, err := h.attendance.Record(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, doc)
}

// Stats godoc
// @Summary Attendance statistics
// @Tags Attendance
// @Produce json
// @Param studentRoll query int false "Student roll"
// @Param month query string false "Month, e.g. July"
// @Param year query int false "Year"
// @Success 200 {object} response.Envelope{data=models.AttendanceStats}
// @Router /attendance/stats [get]
func (h *AttendanceHandler) Stats(c *gin.Context) {
	var query dto.AttendanceStatsQuery
	if !bindQuery(c, &query) {
		return
	}
	stats, err := h.attendance.Stats(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	if stats.LowAttendance == nil {
		stats.LowAttendance = []models.LowAttendanceStudent{}
	}
	response.JSON(c, http.StatusOK, stats)
}
