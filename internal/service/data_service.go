package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/noah-isme/college-erp-api/internal/models"
	appErrors "github.com/noah-isme/college-erp-api/pkg/errors"
)

const (
	defaultPageLimit = 100
	defaultMaxLimit  = 1000
)

// DataService serves the collection catalogue and paginated collection reads.
type DataService struct {
	store        documentStore
	registry     *CollectionRegistry
	expander     *ReferenceExpander
	defaultLimit int
	maxLimit     int
	logger       *zap.Logger
}

// NewDataService constructs the data accessor.
func NewDataService(store documentStore, registry *CollectionRegistry, defaultLimit, maxLimit int, logger *zap.Logger) *DataService {
	if registry == nil {
		registry = NewCollectionRegistry()
	}
	if defaultLimit <= 0 {
		defaultLimit = defaultPageLimit
	}
	if maxLimit <= 0 {
		maxLimit = defaultMaxLimit
	}
	if defaultLimit > maxLimit {
		defaultLimit = maxLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DataService{
		store:        store,
		registry:     registry,
		expander:     NewReferenceExpander(store),
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
		logger:       logger,
	}
}

// Registry exposes the collection registry.
func (s *DataService) Registry() *CollectionRegistry {
	return s.registry
}

// Collections returns the collection descriptors once the store is reachable.
func (s *DataService) Collections(ctx context.Context) ([]models.CollectionDescriptor, error) {
	if err := s.store.Ping(ctx); err != nil {
		s.logger.Error("store unreachable", zap.Error(err))
		return nil, appErrors.Internal(err, "failed to reach document store")
	}
	return s.registry.Descriptors(), nil
}

// Window parses raw limit and skip query values. Invalid, zero or negative limits fall back
// to the default, limits above the maximum are capped, and invalid or negative skips become zero.
func (s *DataService) Window(rawLimit, rawSkip string) (int, int) {
	limit, err := strconv.Atoi(rawLimit)
	if err != nil || limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}
	skip, err := strconv.Atoi(rawSkip)
	if err != nil || skip < 0 {
		skip = 0
	}
	return limit, skip
}

// Page returns one window of formatted records of collection with the collection's total count.
func (s *DataService) Page(ctx context.Context, collection string, limit, skip int) (*models.CollectionPage, error) {
	cfg, ok := s.registry.Lookup(collection)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrCollectionNotFound, fmt.Sprintf("Collection %s not found", collection))
	}
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}
	if skip < 0 {
		skip = 0
	}

	docs, err := s.store.Find(ctx, cfg.Collection, models.FindOptions{Limit: limit, Skip: skip})
	if err != nil {
		s.logger.Error("collection query failed", zap.String("collection", collection), zap.Error(err))
		return nil, appErrors.Internal(err, "failed to query "+collection)
	}
	if err := s.Present(ctx, cfg, docs); err != nil {
		s.logger.Error("collection expansion failed", zap.String("collection", collection), zap.Error(err))
		return nil, appErrors.Internal(err, "failed to expand "+collection)
	}

	total, err := s.store.Count(ctx, cfg.Collection, nil)
	if err != nil {
		s.logger.Error("collection count failed", zap.String("collection", collection), zap.Error(err))
		return nil, appErrors.Internal(err, "failed to count "+collection)
	}

	return &models.CollectionPage{Records: docs, TotalCount: total, Limit: limit, Skip: skip}, nil
}

// Present expands references and applies the formatter of cfg to docs in place.
func (s *DataService) Present(ctx context.Context, cfg EntityConfig, docs []models.Document) error {
	if len(cfg.References) > 0 {
		if err := s.expander.Expand(ctx, docs, cfg.References); err != nil {
			return err
		}
	}
	if cfg.Format != nil {
		for i := range docs {
			docs[i] = cfg.Format(docs[i])
		}
	}
	return nil
}
