package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/college-erp-api/internal/dto"
	"github.com/noah-isme/college-erp-api/internal/models"
	"github.com/noah-isme/college-erp-api/pkg/response"
)

type studentService interface {
	Search(ctx context.Context, query dto.StudentSearchQuery) ([]models.Document, error)
	Create(ctx context.Context, req dto.CreateStudentRequest) (models.Document, error)
	Update(ctx context.Context, id string, req dto.UpdateStudentRequest) (models.Document, error)
	SetActive(ctx context.Context, id string, req dto.SetActiveRequest) (models.Document, error)
	Delete(ctx context.Context, id string) error
}

// StudentHandler exposes student search and write endpoints.
type StudentHandler struct {
	students studentService
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students studentService) *StudentHandler {
	return &StudentHandler{students: students}
}

// Search godoc
// @Summary Search students
// @Tags Students
// @Produce json
// @Param name query string false "Part of the full name, case-insensitive"
// @Param email query string false "Exact email"
// @Param minRoll query int false "Lowest roll"
// @Param maxRoll query int false "Highest roll"
// @Param isActive query bool false "Active flag"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /students/search [get]
func (h *StudentHandler) Search(c *gin.Context) {
	var query dto.StudentSearchQuery
	if !bindQuery(c, &query) {
		return
	}
	docs, err := h.students.Search(c.Request.Context(), query)
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
// @Summary Create student
// @Tags Students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateStudentRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var req dto.CreateStudentRequest
	if !bindJSON(c, &req) {
		return
	}
	doc, err := h.students.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, doc)
}

// Update godoc
// @Summary Update student
// @Tags Students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Param payload body dto.UpdateStudentRequest true "Student payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id} [put]
func (h *StudentHandler) Update(c *gin.Context) {
	var req dto.UpdateStudentRequest
	if !bindJSON(c, &req) {
		return
	}
	doc, err := h.students.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, doc)
}

// SetActive godoc
// @Summary Activate or deactivate student
// @Tags Students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Param payload body dto.SetActiveRequest true "Active flag"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id}/status [patch]
func (h *StudentHandler) SetActive(c *gin.Context) {
	var req dto.SetActiveRequest
	if !bindJSON(c, &req) {
		return
	}
	doc, err := h.students.SetActive(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, doc)
}

// Delete godoc
// @Summary Deactivate student
// @Tags Students
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /students/{id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	if err := h.students.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
