package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/college-erp-api/internal/dto"
	"github.com/noah-isme/college-erp-api/internal/models"
	"github.com/noah-isme/college-erp-api/pkg/response"
)

type facultyWriter interface {
	Create(ctx context.Context, req dto.CreateFacultyRequest) (models.Document, error)
	Update(ctx context.Context, id string, req dto.UpdateFacultyRequest) (models.Document, error)
	SetActive(ctx context.Context, id string, req dto.SetActiveRequest) (models.Document, error)
	Delete(ctx context.Context, id string) error
}

// FacultyHandler exposes faculty member write endpoints.
type FacultyHandler struct {
	faculty facultyWriter
}

// NewFacultyHandler constructs FacultyHandler.
func NewFacultyHandler(faculty facultyWriter) *FacultyHandler {
	return &FacultyHandler{faculty: faculty}
}

// Create godoc
// @Summary Create faculty member
// @Tags Faculty
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateFacultyRequest true "Faculty payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /faculties [post]
func (h *FacultyHandler) Create(c *gin.Context) {
	var req dto.CreateFacultyRequest
	if !bindJSON(c, &req) {
		return
	}
	doc, err := h.faculty.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, doc)
}

// Update godoc
// @Summary Update faculty member
// @Tags Faculty
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Faculty ID"
// @Param payload body dto.UpdateFacultyRequest true "Faculty payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /faculties/{id} [put]
func (h *FacultyHandler) Update(c *gin.Context) {
	var req dto.UpdateFacultyRequest
	if !bindJSON(c, &req) {
		return
	}
	doc, err := h.faculty.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, doc)
}

// SetActive godoc
// @Summary Activate or deactivate faculty member
// @Tags Faculty
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Faculty ID"
// @Param payload body dto.SetActiveRequest true "Active flag"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /faculties/{id}/status [patch]
func (h *FacultyHandler) SetActive(c *gin.Context) {
	var req dto.SetActiveRequest
	if !bindJSON(c, &req) {
		return
	}
	doc, err := h.faculty.SetActive(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, doc)
}

// Delete godoc
// @Summary Deactivate faculty member
// @Tags Faculty
// @Security BearerAuth
// @Param id path string true "Faculty ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /faculties/{id} [delete]
func (h *FacultyHandler) Delete(c *gin.Context) {
	if err := h.faculty.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
