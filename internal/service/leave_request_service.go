package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/college-erp-api/internal/dto"
	"github.com/noah-isme/college-erp-api/internal/models"
	appErrors "github.com/noah-isme/college-erp-api/pkg/errors"
)

const leaveListLimit = 1000

// documentPresenter expands references and formats documents of a collection.
type documentPresenter interface {
	Present(ctx context.Context, cfg EntityConfig, docs []models.Document) error
	Registry() *CollectionRegistry
}

// LeaveRequestService manages leave applications and their decisions.
type LeaveRequestService struct {
	writer    entityWriter
	presenter documentPresenter
	now       func() time.Time
}

// NewLeaveRequestService constructs the leave request service.
func NewLeaveRequestService(store documentStore, presenter documentPresenter, validate *validator.Validate, listener changeListener, logger *zap.Logger) *LeaveRequestService {
	return &LeaveRequestService{
		writer:    newEntityWriter(store, models.CollectionLeaveRequests, "leave request", validate, listener, logger),
		presenter: presenter,
		now:       time.Now,
	}
}

// Create files a pending leave request for the student with the given roll.
func (s *LeaveRequestService) Create(ctx context.Context, req dto.CreateLeaveRequest) (models.Document, error) {
	if err := s.writer.validate(req); err != nil {
		return nil, err
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "endDate must not be before startDate")
	}
	student, err := s.writer.store.FindOne(ctx, models.CollectionStudents, models.Filter{"roll": req.StudentRoll})
	if err != nil {
		return nil, storeError(err, "student", "load")
	}

	leave := models.LeaveRequest{
		Student:     student.ID(),
		StudentRoll: req.StudentRoll,
		StartDate:   req.StartDate.UTC(),
		EndDate:     req.EndDate.UTC(),
		Reason:      req.Reason,
		Status:      models.LeavePending,
		TotalDays:   models.InclusiveDays(req.StartDate.UTC(), req.EndDate.UTC()),
		Comments:    req.Comments,
	}
	return s.writer.insert(ctx, leave.Document())
}

// Decide approves or rejects a pending request. The status guard is part of the store update,
// so concurrent decisions on the same request cannot both succeed.
func (s *LeaveRequestService) Decide(ctx context.Context, id string, req dto.DecideLeaveRequest) (models.Document, error) {
	if err := s.writer.validate(req); err != nil {
		return nil, err
	}
	next := models.LeaveStatus(req.Status)
	if !models.LeavePending.CanTransitionTo(next) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "status must be approved or rejected")
	}
	if _, err := s.writer.store.FindByID(ctx, models.CollectionFaculties, req.HandledBy); err != nil {
		if errors.Is(err, models.ErrDocumentNotFound) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "handledBy references an unknown faculty")
		}
		return nil, appErrors.Internal(err, "failed to load faculty")
	}

	fields := models.Document{
		"status":    string(next),
		"handledBy": models.Ref(req.HandledBy),
		"handledAt": s.now().UTC(),
	}
	if req.Comments != nil {
		fields["comments"] = *req.Comments
	}

	guard := models.Filter{models.FieldID: id, "status": string(models.LeavePending)}
	updated, err := s.writer.store.Update(ctx, models.CollectionLeaveRequests, guard, fields)
	if err == nil {
		s.writer.changed(ctx)
		s.writer.logger.Info("leave request decided", zap.String("id", id), zap.String("status", string(next)))
		return updated, nil
	}
	if !errors.Is(err, models.ErrDocumentNotFound) {
		s.writer.logFailure("decide", id, err)
		return nil, storeError(err, "leave request", "update")
	}

	current, lookupErr := s.writer.store.FindByID(ctx, models.CollectionLeaveRequests, id)
	if lookupErr != nil {
		return nil, storeError(lookupErr, "leave request", "load")
	}
	return nil, appErrors.Clone(appErrors.ErrInvalidTransition,
		fmt.Sprintf("leave request is already %s", current.String("status")))
}

// List returns formatted leave requests filtered by student roll and status, newest first.
func (s *LeaveRequestService) List(ctx context.Context, query dto.LeaveRequestQuery) ([]models.Document, error) {
	if err := s.writer.validate(query); err != nil {
		return nil, err
	}
	filter := models.Filter{}
	if query.StudentRoll > 0 {
		filter["studentRoll"] = query.StudentRoll
	}
	if query.Status != "" {
		filter["status"] = query.Status
	}
	docs, err := s.writer.store.Find(ctx, models.CollectionLeaveRequests, models.FindOptions{Filter: filter, Limit: leaveListLimit})
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list leave requests")
	}
	cfg, _ := s.presenter.Registry().Lookup(models.CollectionLeaveRequests)
	if err := s.presenter.Present(ctx, cfg, docs); err != nil {
		return nil, appErrors.Internal(err, "failed to expand leave requests")
	}
	return docs, nil
}
