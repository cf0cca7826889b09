package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/college-erp-api/internal/dto"
	"github.com/noah-isme/college-erp-api/internal/models"
	appErrors "github.com/noah-isme/college-erp-api/pkg/errors"
)

// StudentService handles student writes.
type StudentService struct {
	writer entityWriter
}

// NewStudentService constructs the student service.
func NewStudentService(store documentStore, validate *validator.Validate, listener changeListener, logger *zap.Logger) *StudentService {
	return &StudentService{writer: newEntityWriter(store, models.CollectionStudents, "student", validate, listener, logger)}
}

// Create registers a new student. Rolls are unique.
func (s *StudentService) Create(ctx context.Context, req dto.CreateStudentRequest) (models.Document, error) {
	if err := s.writer.validate(req); err != nil {
		return nil, err
	}
	student := models.Student{
		Roll:     req.Roll,
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		IsActive: boolOrDefault(req.IsActive, true),
	}
	return s.writer.insert(ctx, student.Document())
}

// Update changes the supplied fields of a student.
func (s *StudentService) Update(ctx context.Context, id string, req dto.UpdateStudentRequest) (models.Document, error) {
	if err := s.writer.validate(req); err != nil {
		return nil, err
	}
	fields := fieldSet{}
	fields.num("roll", req.Roll)
	fields.str("fullName", req.FullName)
	fields.str("email", req.Email)
	fields.str("phone", req.Phone)
	fields.flag("isActive", req.IsActive)
	return s.writer.patch(ctx, id, models.Document(fields))
}

// SetActive activates or deactivates a student.
func (s *StudentService) SetActive(ctx context.Context, id string, req dto.SetActiveRequest) (models.Document, error) {
	return s.writer.setActive(ctx, id, req.IsActive)
}

// Delete deactivates a student.
func (s *StudentService) Delete(ctx context.Context, id string) error {
	return s.writer.deactivate(ctx, id)
}

const studentSearchLimit = 1000

// Search lists the students matching every supplied criterion, newest first.
func (s *StudentService) Search(ctx context.Context, query dto.StudentSearchQuery) ([]models.Document, error) {
	if err := s.writer.validate(query); err != nil {
		return nil, err
	}
	if query.MinRoll != nil && query.MaxRoll != nil && *query.MinRoll > *query.MaxRoll {
		return nil, appErrors.Clone(appErrors.ErrValidation, "minRoll must not exceed maxRoll")
	}

	filter := models.Filter{}
	if name := strings.TrimSpace(query.Name); name != "" {
		filter["fullName"] = models.Contains(name)
	}
	if query.Email != "" {
		filter["email"] = query.Email
	}
	if query.MinRoll != nil || query.MaxRoll != nil {
		filter["roll"] = models.Range{Min: intBound(query.MinRoll), Max: intBound(query.MaxRoll)}
	}
	if query.IsActive != nil {
		filter["isActive"] = *query.IsActive
	}

	docs, err := s.writer.store.Find(ctx, models.CollectionStudents, models.FindOptions{Filter: filter, Limit: studentSearchLimit})
	if err != nil {
		return nil, appErrors.Internal(err, "failed to search students")
	}
	return docs, nil
}

func intBound(v *int) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}
