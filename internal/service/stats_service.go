package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/studyhive-api/internal/models"
)

type estimatedCounter interface {
	EstimatedCount(ctx context.Context) (int64, error)
}

// StatsService serves the landing page counters.
type StatsService struct {
	users       estimatedCounter
	enrollments estimatedCounter
	classes     estimatedCounter
	cache       *CacheService
	ttl         time.Duration
	logger      *zap.Logger
}

// NewStatsService constructs the service.
func NewStatsService(users, enrollments, classes estimatedCounter, cache *CacheService, ttl time.Duration, logger *zap.Logger) *StatsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{users: users, enrollments: enrollments, classes: classes, cache: cache, ttl: ttl, logger: logger}
}

// PublicStats returns approximate collection sizes.
func (s *StatsService) PublicStats(ctx context.Context) (*models.PublicStats, error) {
	var cached models.PublicStats
	if hit, _ := s.cache.Get(ctx, CacheKeyPublicStats, &cached); hit {
		return &cached, nil
	}

	users, err := s.users.EstimatedCount(ctx)
	if err != nil {
		return nil, internalError(err, "failed to count users")
	}
	enrollments, err := s.enrollments.EstimatedCount(ctx)
	if err != nil {
		return nil, internalError(err, "failed to count enrollments")
	}
	classes, err := s.classes.EstimatedCount(ctx)
	if err != nil {
		return nil, internalError(err, "failed to count classes")
	}

	stats := &models.PublicStats{Users: users, Enrollments: enrollments, Classes: classes}
	_ = s.cache.Set(ctx, CacheKeyPublicStats, stats, s.ttl)
	return stats, nil
}
