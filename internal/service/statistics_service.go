package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/Alkhemd/SistemaH2-sub000/internal/model"
	"github.com/Alkhemd/SistemaH2-sub000/internal/repository"
)

// DashboardStatistics aggregates work-order counts for the dashboard.
type DashboardStatistics struct {
	ByStatus   map[model.Status]int64   `json:"por_estado"`
	ByPriority map[model.Priority]int64 `json:"por_prioridad"`
	Overdue    int64                    `json:"vencidas"`
	Active     int64                    `json:"activas"`
	ComputedAt time.Time                `json:"calculado_en"`
}

// StatisticsService serves dashboard aggregates behind an explicit TTL
// cache. The cache holds derived counts only, never ground truth, and is
// invalidated on every guarded mutation.
type StatisticsService interface {
	GetDashboard() (*DashboardStatistics, error)
	Invalidate()
}

// statsCache is a single-value cache with an injected TTL.
type statsCache struct {
	mu        sync.RWMutex
	ttl       time.Duration
	expiresAt time.Time
	value     *DashboardStatistics
}

func (c *statsCache) get(now time.Time) *DashboardStatistics {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.value == nil || now.After(c.expiresAt) {
		return nil
	}
	return c.value
}

func (c *statsCache) set(value *DashboardStatistics, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = value
	c.expiresAt = now.Add(c.ttl)
}

func (c *statsCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = nil
	c.expiresAt = time.Time{}
}

type statisticsService struct {
	orders repository.WorkOrderRepository
	cache  *statsCache
	now    func() time.Time
}

// StatisticsServiceOption customizes a statistics service.
type StatisticsServiceOption func(*statisticsService)

// WithStatsClock overrides the cache clock, for tests.
func WithStatsClock(now func() time.Time) StatisticsServiceOption {
	return func(s *statisticsService) { s.now = now }
}

// NewStatisticsService creates a statistics service caching aggregates
// for the given TTL.
func NewStatisticsService(orders repository.WorkOrderRepository, ttl time.Duration, opts ...StatisticsServiceOption) StatisticsService {
	s := &statisticsService{
		orders: orders,
		cache:  &statsCache{ttl: ttl},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetDashboard returns the cached aggregates, recomputing them when the
// cache is empty or expired.
func (s *statisticsService) GetDashboard() (*DashboardStatistics, error) {
	now := s.now()
	if cached := s.cache.get(now); cached != nil {
		return cached, nil
	}

	byStatus, err := s.orders.CountByStatus()
	if err != nil {
		return nil, fmt.Errorf("failed to count orders by status: %w", err)
	}
	byPriority, err := s.orders.CountByPriority()
	if err != nil {
		return nil, fmt.Errorf("failed to count orders by priority: %w", err)
	}
	overdue, err := s.orders.CountOverdue()
	if err != nil {
		return nil, fmt.Errorf("failed to count overdue orders: %w", err)
	}

	var active int64
	for status, count := range byStatus {
		if !status.IsTerminal() {
			active += count
		}
	}

	stats := &DashboardStatistics{
		ByStatus:   byStatus,
		ByPriority: byPriority,
		Overdue:    overdue,
		Active:     active,
		ComputedAt: now,
	}
	s.cache.set(stats, now)
	return stats, nil
}

// Invalidate drops the cached aggregates.
func (s *statisticsService) Invalidate() {
	s.cache.clear()
}
