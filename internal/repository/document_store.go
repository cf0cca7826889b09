package repository

import (
	"context"
	"fmt"

	"github.com/noah-isme/college-erp-api/internal/models"
	"github.com/noah-isme/college-erp-api/pkg/config"
	"github.com/noah-isme/college-erp-api/pkg/database"
)

// DocumentStore is implemented by every document backend.
type DocumentStore interface {
	Ping(ctx context.Context) error
	Find(ctx context.Context, collection string, opts models.FindOptions) ([]models.Document, error)
	Count(ctx context.Context, collection string, filter models.Filter) (int64, error)
	FindByID(ctx context.Context, collection, id string) (models.Document, error)
	FindOne(ctx context.Context, collection string, filter models.Filter) (models.Document, error)
	FindByIDs(ctx context.Context, collection string, ids []string) ([]models.Document, error)
	Insert(ctx context.Context, collection string, doc models.Document) (models.Document, error)
	Update(ctx context.Context, collection string, filter models.Filter, fields models.Document) (models.Document, error)
	Upsert(ctx context.Context, collection string, filter models.Filter, doc models.Document) (models.Document, error)
	DeleteAll(ctx context.Context, collection string) error
}

// OpenDocumentStore connects the backend selected by STORE_DRIVER and prepares its indexes.
// The returned close function releases the underlying connection.
func OpenDocumentStore(ctx context.Context, cfg *config.Config, observer QueryObserver) (DocumentStore, func(context.Context) error, error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		store := NewPostgresDocumentRepository(db, observer)
		if err := store.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return store, func(context.Context) error { return db.Close() }, nil
	default:
		client, db, err := database.NewMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		store := NewMongoDocumentRepository(db, observer)
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, err
		}
		return store, client.Disconnect, nil
	}
}

var (
	_ DocumentStore = (*MongoDocumentRepository)(nil)
	_ DocumentStore = (*PostgresDocumentRepository)(nil)
)
