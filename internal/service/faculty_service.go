package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/college-erp-api/internal/dto"
	"github.com/noah-isme/college-erp-api/internal/models"
)

// FacultyService handles faculty writes.
type FacultyService struct {
	writer entityWriter
}

// NewFacultyService constructs the faculty service.
func NewFacultyService(store documentStore, validate *validator.Validate, listener changeListener, logger *zap.Logger) *FacultyService {
	return &FacultyService{writer: newEntityWriter(store, models.CollectionFaculties, "faculty", validate, listener, logger)}
}

// Create registers a faculty member. Employee ids and emails are unique.
func (s *FacultyService) Create(ctx context.Context, req dto.CreateFacultyRequest) (models.Document, error) {
	if err := s.writer.validate(req); err != nil {
		return nil, err
	}
	faculty := models.Faculty{
		EmployeeID:      req.EmployeeID,
		FullName:        req.FullName,
		Email:           req.Email,
		Designation:     req.Designation,
		SubjectsHandled: req.SubjectsHandled,
		IsActive:        boolOrDefault(req.IsActive, true),
	}
	return s.writer.insert(ctx, faculty.Document())
}

// Update changes the supplied fields of a faculty member.
func (s *FacultyService) Update(ctx context.Context, id string, req dto.UpdateFacultyRequest) (models.Document, error) {
	if err := s.writer.validate(req); err != nil {
		return nil, err
	}
	fields := fieldSet{}
	fields.str("employeeId", req.EmployeeID)
	fields.str("fullName", req.FullName)
	fields.str("email", req.Email)
	fields.str("designation", req.Designation)
	if req.SubjectsHandled != nil {
		fields["subjectsHandled"] = *req.SubjectsHandled
	}
	fields.flag("isActive", req.IsActive)
	return s.writer.patch(ctx, id, models.Document(fields))
}

// SetActive activates or deactivates a faculty member.
func (s *FacultyService) SetActive(ctx context.Context, id string, req dto.SetActiveRequest) (models.Document, error) {
	return s.writer.setActive(ctx, id, req.IsActive)
}

// Delete deactivates a faculty member.
func (s *FacultyService) Delete(ctx context.Context, id string) error {
	return s.writer.deactivate(ctx, id)
}
