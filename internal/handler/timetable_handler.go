package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/college-erp-api/internal/dto"
	"github.com/noah-isme/college-erp-api/internal/models"
	appErrors "github.com/noah-isme/college-erp-api/pkg/errors"
	"github.com/noah-isme/college-erp-api/pkg/response"
)

type timetableService interface {
	Create(ctx context.Context, req dto.CreateTimetableRequest) (models.Document, error)
	Day(ctx context.Context, query dto.TimetableQuery) (models.Document, error)
	Weekly(ctx context.Context, semester int) (map[string]models.Document, error)
}

// TimetableHandler exposes weekday schedules.
type TimetableHandler struct {
	timetables timetableService
}

// NewTimetableHandler constructs TimetableHandler.
func NewTimetableHandler(timetables timetableService) *TimetableHandler {
	return &TimetableHandler{timetables: timetables}
}

// Create godoc
// @Summary Create a weekday timetable
// @Tags Timetables
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateTimetableRequest true "Timetable"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /timetables [post]
func (h *TimetableHandler) Create(c *gin.Context) {
	var req dto.CreateTimetableRequest
	if !bindJSON(c, &req) {
		return
	}
	doc, err := h.timetables.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, doc)
}

// Day godoc
// @Summary Active timetable of one weekday
// @Tags Timetables
// @Produce json
// @Param dayOfWeek query string true "Monday..Sunday"
// @Param semester query int true "Semester"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /timetables/day [get]
func (h *TimetableHandler) Day(c *gin.Context) {
	var query dto.TimetableQuery
	if !bindQuery(c, &query) {
		return
	}
	doc, err := h.timetables.Day(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, doc)
}

// Weekly godoc
// @Summary Active timetables of a semester keyed by weekday
// @Tags Timetables
// @Produce json
// @Param semester query int true "Semester"
// @Success 200 {object} response.Envelope
// @Router /timetables/weekly [get]
func (h *TimetableHandler) Weekly(c *gin.Context) {
	semester, err := strconv.Atoi(c.Query("semester"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "semester must be a number"))
		return
	}
	weekly, err := h.timetables.Weekly(c.Request.Context(), semester)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, weekly)
}
