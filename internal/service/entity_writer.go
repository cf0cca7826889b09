package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/college-erp-api/internal/models"
	appErrors "github.com/noah-isme/college-erp-api/pkg/errors"
)

// changeListener is told about every successful write, e.g. to drop cached aggregates.
type changeListener interface {
	Invalidate(ctx context.Context)
}

// entityWriter performs validated writes against one collection.
type entityWriter struct {
	store      documentStore
	collection string
	entity     string
	validator  *validator.Validate
	listener   changeListener
	logger     *zap.Logger
}

func newEntityWriter(store documentStore, collection, entity string, validate *validator.Validate, listener changeListener, logger *zap.Logger) entityWriter {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return entityWriter{store: store, collection: collection, entity: entity, validator: validate, listener: listener, logger: logger}
}

func (w entityWriter) validate(req interface{}) error {
	if err := w.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid "+w.entity+" payload")
	}
	return nil
}

func (w entityWriter) get(ctx context.Context, id string) (models.Document, error) {
	doc, err := w.store.FindByID(ctx, w.collection, id)
	if err != nil {
		return nil, storeError(err, w.entity, "load")
	}
	return doc, nil
}

func (w entityWriter) insert(ctx context.Context, doc models.Document) (models.Document, error) {
	created, err := w.store.Insert(ctx, w.collection, doc)
	if err != nil {
		w.logFailure("insert", "", err)
		return nil, storeError(err, w.entity, "create")
	}
	w.changed(ctx)
	w.logger.Info(w.entity+" created", zap.String("id", created.ID()))
	return created, nil
}

func (w entityWriter) update(ctx context.Context, id string, fields models.Document) (models.Document, error) {
	updated, err := w.store.Update(ctx, w.collection, models.Filter{models.FieldID: id}, fields)
	if err != nil {
		w.logFailure("update", id, err)
		return nil, storeError(err, w.entity, "update")
	}
	w.changed(ctx)
	return updated, nil
}

// deactivate is the delete of students, faculty and courses: the document stays and isActive becomes false.
func (w entityWriter) deactivate(ctx context.Context, id string) error {
	if _, err := w.update(ctx, id, models.Document{"isActive": false}); err != nil {
		return err
	}
	w.logger.Info(w.entity+" deactivated", zap.String("id", id))
	return nil
}

// patch applies the supplied fields only. An empty patch is rejected.
func (w entityWriter) patch(ctx context.Context, id string, fields models.Document) (models.Document, error) {
	if len(fields) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no fields to update")
	}
	return w.update(ctx, id, fields)
}

func (w entityWriter) changed(ctx context.Context) {
	if w.listener != nil {
		w.listener.Invalidate(ctx)
	}
}

func (w entityWriter) logFailure(action, id string, err error) {
	if errors.Is(err, models.ErrDocumentNotFound) || errors.Is(err, models.ErrDuplicateKey) {
		return
	}
	w.logger.Error(w.entity+" "+action+" failed", zap.String("id", id), zap.Error(err))
}

// setActive toggles the isActive flag shared by students, faculty and courses.
func (w entityWriter) setActive(ctx context.Context, id string, active *bool) (models.Document, error) {
	if active == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "isActive is required")
	}
	return w.update(ctx, id, models.Document{"isActive": *active})
}

// fieldSet collects the fields of a partial update.
type fieldSet models.Document

func (f fieldSet) str(key string, v *string) {
	if v != nil {
		f[key] = *v
	}
}

func (f fieldSet) num(key string, v *int) {
	if v != nil {
		f[key] = *v
	}
}

func (f fieldSet) flag(key string, v *bool) {
	if v != nil {
		f[key] = *v
	}
}

func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
