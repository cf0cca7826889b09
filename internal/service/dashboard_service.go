package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/college-erp-api/internal/dto"
	"github.com/noah-isme/college-erp-api/internal/models"
)

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	CacheTTL     time.Duration
	RecentLeaves int
}

// DashboardService aggregates collection statistics for the dashboard panel.
type DashboardService struct {
	store   documentLookup
	cache   *CacheService
	metrics *MetricsService
	cfg     DashboardServiceConfig
	logger  *zap.Logger
	now     func() time.Time
}

// NewDashboardService constructs the dashboard aggregator.
func NewDashboardService(store documentLookup, cache *CacheService, metrics *MetricsService, cfg DashboardServiceConfig, logger *zap.Logger) *DashboardService {
	if cfg.RecentLeaves <= 0 {
		cfg.RecentLeaves = 5
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{store: store, cache: cache, metrics: metrics, cfg: cfg, logger: logger, now: time.Now}
}

// Summary returns the dashboard statistics and whether they were served from cache.
// Each statistic is fetched concurrently; a failing statistic is logged and reported as zero.
// A summary with a degraded statistic is not cached.
func (s *DashboardService) Summary(ctx context.Context) (*dto.DashboardSummary, bool, error) {
	var cached dto.DashboardSummary
	if hit, _ := s.cache.Get(ctx, dashboardCacheKey, &cached); hit {
		return &cached, true, nil
	}

	summary := &dto.DashboardSummary{RecentLeaves: []dto.RecentLeave{}}
	statistics := []struct {
		name  string
		fetch func(context.Context) error
	}{
		{"students", s.countInto(models.CollectionStudents, nil, &summary.Students)},
		{"faculty", s.countInto(models.CollectionFaculties, nil, &summary.Faculty)},
		{"courses", s.countInto(models.CollectionCourses, nil, &summary.Courses)},
		{"attendance", s.countInto(models.CollectionAttendances, nil, &summary.Attendance)},
		{"total_leaves", s.countInto(models.CollectionLeaveRequests, nil, &summary.TotalLeaves)},
		{"pending_leaves", s.countInto(models.CollectionLeaveRequests, models.Filter{"status": string(models.LeavePending)}, &summary.PendingLeaves)},
		{"recent_leaves", func(ctx context.Context) error {
			recent, err := s.recentLeaves(ctx)
			if err != nil {
				return err
			}
			summary.RecentLeaves = recent
			return nil
		}},
	}

	var (
		wg       sync.WaitGroup
		degraded atomic.Bool
	)
	for _, statistic := range statistics {
		statistic := statistic
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := statistic.fetch(ctx); err != nil {
				degraded.Store(true)
				s.degrade(statistic.name, err)
			}
		}()
	}
	wg.Wait()
	summary.GeneratedAt = s.now().UTC()

	if !degraded.Load() {
		_ = s.cache.Set(ctx, dashboardCacheKey, summary, s.cfg.CacheTTL)
	}
	return summary, false, nil
}

func (s *DashboardService) countInto(collection string, filter models.Filter, dest *int64) func(context.Context) error {
	return func(ctx context.Context) error {
		total, err := s.store.Count(ctx, collection, filter)
		if err != nil {
			return err
		}
		*dest = total
		return nil
	}
}

func (s *DashboardService) recentLeaves(ctx context.Context) ([]dto.RecentLeave, error) {
	docs, err := s.store.Find(ctx, models.CollectionLeaveRequests, models.FindOptions{Limit: s.cfg.RecentLeaves})
	if err != nil {
		return nil, err
	}

	recent := make([]dto.RecentLeave, 0, len(docs))
	for _, doc := range docs {
		roll, _ := doc.Number("studentRoll")
		createdAt, _ := models.ToTime(doc[models.FieldCreatedAt])
		recent = append(recent, dto.RecentLeave{
			ID:          doc.ID(),
			StudentRoll: int(roll),
			Status:      doc.String("status"),
			Message:     fmt.Sprintf("Leave request from Student %d", int(roll)),
			CreatedAt:   createdAt,
		})
	}
	return recent, nil
}

func (s *DashboardService) degrade(statistic string, err error) {
	s.logger.Warn("dashboard statistic unavailable", zap.String("statistic", statistic), zap.Error(err))
	s.metrics.RecordDashboardFailure(statistic)
}

// Invalidate drops the cached summary after a write.
func (s *DashboardService) Invalidate(ctx context.Context) {
	_ = s.cache.Invalidate(ctx, dashboardCachePattern)
}
