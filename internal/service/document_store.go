package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/noah-isme/college-erp-api/internal/models"
	appErrors "github.com/noah-isme/college-erp-api/pkg/errors"
)

// documentLookup is the read side of a document store.
type documentLookup interface {
	Find(ctx context.Context, collection string, opts models.FindOptions) ([]models.Document, error)
	Count(ctx context.Context, collection string, filter models.Filter) (int64, error)
	FindByID(ctx context.Context, collection, id string) (models.Document, error)
	FindOne(ctx context.Context, collection string, filter models.Filter) (models.Document, error)
	FindByIDs(ctx context.Context, collection string, ids []string) ([]models.Document, error)
}

// documentStore is implemented by the Mongo and Postgres document repositories.
type documentStore interface {
	documentLookup
	Ping(ctx context.Context) error
	Insert(ctx context.Context, collection string, doc models.Document) (models.Document, error)
	Update(ctx context.Context, collection string, filter models.Filter, fields models.Document) (models.Document, error)
	Upsert(ctx context.Context, collection string, filter models.Filter, doc models.Document) (models.Document, error)
}

// storeError translates store failures into API errors for the named entity.
func storeError(err error, entity, action string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, models.ErrDocumentNotFound):
		return appErrors.Clone(appErrors.ErrNotFound, entity+" not found")
	case errors.Is(err, models.ErrDuplicateKey):
		return appErrors.Clone(appErrors.ErrConflict, entity+" already exists")
	}
	return appErrors.Internal(err, fmt.Sprintf("failed to %s %s", action, entity))
}
