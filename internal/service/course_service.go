package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/college-erp-api/internal/dto"
	"github.com/noah-isme/college-erp-api/internal/models"
	appErrors "github.com/noah-isme/college-erp-api/pkg/errors"
)

// CourseService handles course catalogue writes.
type CourseService struct {
	writer entityWriter
}

// NewCourseService constructs the course service.
func NewCourseService(store documentStore, validate *validator.Validate, listener changeListener, logger *zap.Logger) *CourseService {
	return &CourseService{writer: newEntityWriter(store, models.CollectionCourses, "course", validate, listener, logger)}
}

// Create adds a course. A faculty in charge, when given, must exist.
func (s *CourseService) Create(ctx context.Context, req dto.CreateCourseRequest) (models.Document, error) {
	if err := s.writer.validate(req); err != nil {
		return nil, err
	}
	if err := s.ensureFaculty(ctx, req.FacultyInCharge); err != nil {
		return nil, err
	}
	course := models.Course{
		Code:            req.Code,
		Title:           req.Title,
		Credits:         req.Credits,
		Semester:        req.Semester,
		Description:     req.Description,
		FacultyInCharge: req.FacultyInCharge,
		IsActive:        boolOrDefault(req.IsActive, true),
	}
	return s.writer.insert(ctx, course.Document())
}

// Update changes the supplied fields of a course.
func (s *CourseService) Update(ctx context.Context, id string, req dto.UpdateCourseRequest) (models.Document, error) {
	if err := s.writer.validate(req); err != nil {
		return nil, err
	}
	fields := fieldSet{}
	fields.str("code", req.Code)
	fields.str("title", req.Title)
	fields.num("credits", req.Credits)
	fields.num("semester", req.Semester)
	fields.str("description", req.Description)
	fields.flag("isActive", req.IsActive)
	if req.FacultyInCharge != nil {
		if err := s.ensureFaculty(ctx, *req.FacultyInCharge); err != nil {
			return nil, err
		}
		fields["facultyInCharge"] = models.RefOrNil(*req.FacultyInCharge)
	}
	return s.writer.patch(ctx, id, models.Document(fields))
}

// SetActive activates or deactivates a course.
func (s *CourseService) SetActive(ctx context.Context, id string, req dto.SetActiveRequest) (models.Document, error) {
	return s.writer.setActive(ctx, id, req.IsActive)
}

// Delete deactivates a course.
func (s *CourseService) Delete(ctx context.Context, id string) error {
	return s.writer.deactivate(ctx, id)
}

func (s *CourseService) ensureFaculty(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	_, err := s.writer.store.FindByID(ctx, models.CollectionFaculties, id)
	if err == nil {
		return nil
	}
	if errors.Is(err, models.ErrDocumentNotFound) {
		return appErrors.Clone(appErrors.ErrValidation, "facultyInCharge references an unknown faculty")
	}
	return appErrors.Internal(err, "failed to load faculty")
}
