package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/college-erp-api/internal/dto"
	"github.com/noah-isme/college-erp-api/internal/models"
	"github.com/noah-isme/college-erp-api/pkg/response"
)

type leaveRequestService interface {
	Create(ctx context.Context, req dto.CreateLeaveRequest) (models.Document, error)
	Decide(ctx context.Context, id string, req dto.DecideLeaveRequest) (models.Document, error)
	List(ctx context.Context, query dto.LeaveRequestQuery) ([]models.Document, error)
}

// LeaveRequestHandler exposes leave applications.
type LeaveRequestHandler struct {
	leaves leaveRequestService
}

// NewLeaveRequestHandler constructs LeaveRequestHandler.
func NewLeaveRequestHandler(leaves leaveRequestService) *LeaveRequestHandler {
	return &LeaveRequestHandler{leaves: leaves}
}

// List godoc
// @Summary List leave requests
// @Tags Leave Requests
// @Produce json
// @Param studentRoll query int false "Student roll"
// @Param status query string false "pending, approved or rejected"
// @Success 200 {object} response.Envelope
// @Router /leaverequests [get]
func (h *LeaveRequestHandler) List(c *gin.Context) {
	var query dto.LeaveRequestQuery
	if !bindQuery(c, &query) {
		return
	}
	docs, err := h.leaves.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	if docs == nil {
		docs = []models.Document{}
	}
	response.JSON(c, http.StatusOK, docs)
}

// Create godoc
// @Summary File a leave request
// @Tags Leave Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateLeaveRequest true "Leave request"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /leaverequests [post]
func (h *LeaveRequestHandler) Create(c *gin.Context) {
	var req dto.CreateLeaveRequest
	if !bindJSON(c, &req) {
		return
	}
	doc, err := h.leaves.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, doc)
}

// Decide godoc
// @Summary Approve or reject a pending leave request
// @Tags Leave Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Leave request ID"
// @Param payload body dto.DecideLeaveRequest true "Decision"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /leaverequests/{id}/decision [patch]
func (h *LeaveRequestHandler) Decide(c *gin.Context) {
	var req dto.DecideLeaveRequest
	if !bindJSON(c, &req) {
		return
	}
	doc, err := h.leaves.Decide(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, doc)
}
