package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/college-erp-api/internal/dto"
	"github.com/noah-isme/college-erp-api/internal/models"
	appErrors "github.com/noah-isme/college-erp-api/pkg/errors"
)

// TimetableService manages weekday schedules.
type TimetableService struct {
	writer    entityWriter
	presenter documentPresenter
}

// NewTimetableService constructs the timetable service.
func NewTimetableService(store documentStore, presenter documentPresenter, validate *validator.Validate, listener changeListener, logger *zap.Logger) *TimetableService {
	return &TimetableService{
		writer:    newEntityWriter(store, models.CollectionTimetables, "timetable", validate, listener, logger),
		presenter: presenter,
	}
}

// Create stores an active timetable for one weekday of a semester. Slot references must exist.
func (s *TimetableService) Create(ctx context.Context, req dto.CreateTimetableRequest) (models.Document, error) {
	if err := s.writer.validate(req); err != nil {
		return nil, err
	}
	timetable := models.Timetable{DayOfWeek: req.DayOfWeek, Semester: req.Semester, IsActive: true}
	for _, slot := range req.Slots {
		if slot.Type != string(models.SlotBreak) && slot.CourseCode == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("period %d requires a courseCode", slot.Period))
		}
		if err := s.ensureExists(ctx, models.CollectionCourses, "course", slot.Course); err != nil {
			return nil, err
		}
		if err := s.ensureExists(ctx, models.CollectionFaculties, "faculty", slot.Faculty); err != nil {
			return nil, err
		}
		timetable.Slots = append(timetable.Slots, models.TimeSlot{
			Period:     slot.Period,
			Type:       models.SlotType(slot.Type),
			CourseCode: slot.CourseCode,
			Course:     slot.Course,
			Faculty:    slot.Faculty,
			Room:       slot.Room,
		})
	}
	return s.writer.insert(ctx, timetable.Document())
}

// Day returns the active timetable of a weekday with slot references expanded.
func (s *TimetableService) Day(ctx context.Context, query dto.TimetableQuery) (models.Document, error) {
	if err := s.writer.validate(query); err != nil {
		return nil, err
	}
	doc, err := s.writer.store.FindOne(ctx, models.CollectionTimetables, models.Filter{
		"dayOfWeek": query.DayOfWeek,
		"semester":  query.Semester,
		"isActive":  true,
	})
	if err != nil {
		return nil, storeError(err, "timetable", "load")
	}
	docs := []models.Document{doc}
	if err := s.present(ctx, docs); err != nil {
		return nil, err
	}
	return docs[0], nil
}

// Weekly returns the active timetables of a semester keyed by weekday.
func (s *TimetableService) Weekly(ctx context.Context, semester int) (map[string]models.Document, error) {
	if semester <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "semester must be positive")
	}
	docs, err := s.writer.store.Find(ctx, models.CollectionTimetables, models.FindOptions{
		Filter: models.Filter{"semester": semester, "isActive": true},
	})
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load timetables")
	}
	if err := s.present(ctx, docs); err != nil {
		return nil, err
	}

	weekly := make(map[string]models.Document, len(models.Weekdays))
	// Newest first, so the first timetable seen for a day wins.
	for _, doc := range docs {
		day := doc.String("dayOfWeek")
		if _, exists := weekly[day]; !exists {
			weekly[day] = doc
		}
	}
	return weekly, nil
}

func (s *TimetableService) present(ctx context.Context, docs []models.Document) error {
	cfg, _ := s.presenter.Registry().Lookup(models.CollectionTimetables)
	if err := s.presenter.Present(ctx, cfg, docs); err != nil {
		return appErrors.Internal(err, "failed to expand timetable")
	}
	return nil
}

func (s *TimetableService) ensureExists(ctx context.Context, collection, entity, id string) error {
	if id == "" {
		return nil
	}
	_, err := s.writer.store.FindByID(ctx, collection, id)
	if err == nil {
		return nil
	}
	if errors.Is(err, models.ErrDocumentNotFound) {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("slot references an unknown %s", entity))
	}
	return appErrors.Internal(err, "failed to load "+entity)
}
