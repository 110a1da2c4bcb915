// AngelaMos | 2026
// service.go

package statistics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/carterperez-dev/traffic-registry/internal/violation"
)

const recentLimit = 5

type Counter interface {
	Count(ctx context.Context) (int, error)
}

type ViolationSource interface {
	ApprovedSummary(ctx context.Context) (count int, totalFines float64, err error)
	RecentApproved(ctx context.Context, limit int) ([]violation.ListedViolation, error)
}

type CountResponse struct {
	Count int `json:"count"`
}

type ViolationSummary struct {
	Count      int     `json:"count"`
	TotalFines float64 `json:"total_fines"`
}

// Dashboard only ever reflects approved violations; pending filings are
// not part of the official record yet.
type Dashboard struct {
	Drivers          CountResponse               `json:"drivers"`
	Vehicles         CountResponse               `json:"vehicles"`
	Violations       ViolationSummary            `json:"violations"`
	RecentViolations []violation.ListedViolation `json:"recentViolations"`
}

type Service struct {
	drivers    Counter
	vehicles   Counter
	violations ViolationSource

	cache    Cache
	cacheKey string
	cacheTTL time.Duration
}

func NewService(drivers, vehicles Counter, violations ViolationSource) *Service {
	return &Service{
		drivers:    drivers,
		vehicles:   vehicles,
		violations: violations,
	}
}

// WithCache keeps the computed dashboard under key for ttl. Writes to the
// registry must call Invalidate.
func (s *Service) WithCache(cache Cache, key string, ttl time.Duration) *Service {
	s.cache = cache
	s.cacheKey = key
	s.cacheTTL = ttl
	return s
}

// Dashboard serves the cached read model when there is one. Cache failures
// degrade to a direct read.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	if s.cache == nil {
		return s.compute(ctx)
	}

	var cached Dashboard
	hit, err := s.cache.GetJSON(ctx, s.cacheKey, &cached)
	if err != nil {
		slog.WarnContext(ctx, "statistics cache read failed", "error", err)
	}
	if hit {
		return &cached, nil
	}

	d, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetJSON(ctx, s.cacheKey, d, s.cacheTTL); err != nil {
		slog.WarnContext(ctx, "statistics cache write failed", "error", err)
	}
	return d, nil
}

// Invalidate drops the cached dashboard.
func (s *Service) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, s.cacheKey); err != nil {
		slog.WarnContext(ctx, "statistics cache invalidation failed", "error", err)
	}
}

func (s *Service) compute(ctx context.Context) (*Dashboard, error) {
	drivers, err := s.drivers.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	vehicles, err := s.vehicles.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	count, total, err := s.violations.ApprovedSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	recent, err := s.violations.RecentApproved(ctx, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	return &Dashboard{
		Drivers:          CountResponse{Count: drivers},
		Vehicles:         CountResponse{Count: vehicles},
		Violations:       ViolationSummary{Count: count, TotalFines: total},
		RecentViolations: recent,
	}, nil
}
