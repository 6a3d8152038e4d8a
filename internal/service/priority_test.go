package service_test

import (
	"testing"
	"time"

	"github.com/Alkhemd/SistemaH2-sub000/internal/model"
	"github.com/Alkhemd/SistemaH2-sub000/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scoreToday = time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)

func orderWithDueIn(days int) *model.WorkOrder {
	due := scoreToday.AddDate(0, 0, days)
	return &model.WorkOrder{
		Status:         model.StatusOpen,
		ManualPriority: model.PriorityHigh,
		DueDate:        &due,
	}
}

// TestPriorityScore_DueDateBoundaries pins every tier boundary with the
// fixed contribution base 50 + High 75 + Open 20 = 145.
func TestPriorityScore_DueDateBoundaries(t *testing.T) {
	cases := []struct {
		days     int
		expected int
	}{
		{-1, 305}, // overdue: 145 + 150 + 10
		{0, 265},  // due today: 145 + 120
		{1, 245},  // due tomorrow: 145 + 100
		{2, 215},  // 145 + 70
		{3, 205},  // 145 + 60
		{7, 180},  // 145 + 35
		{8, 163},  // 145 + 18
		{14, 151}, // 145 + 6
		{15, 145}, // beyond the horizon: no contribution
	}

	for _, tc := range cases {
		got := service.PriorityScore(orderWithDueIn(tc.days), nil, scoreToday)
		assert.Equal(t, tc.expected, got, "daysRemaining=%d", tc.days)
	}
}

// TestPriorityScore_OverdueGrowsUnbounded checks the overdue penalty
// keeps climbing with every slipped day.
func TestPriorityScore_OverdueGrowsUnbounded(t *testing.T) {
	assert.Equal(t, 145+150+10, service.PriorityScore(orderWithDueIn(-1), nil, scoreToday))
	assert.Equal(t, 145+150+100, service.PriorityScore(orderWithDueIn(-10), nil, scoreToday))
	assert.Equal(t, 145+150+300, service.PriorityScore(orderWithDueIn(-30), nil, scoreToday))
}

// TestPriorityScore_ManualPriorityWeights covers the four manual tiers
// without a due date.
func TestPriorityScore_ManualPriorityWeights(t *testing.T) {
	cases := []struct {
		priority model.Priority
		expected int
	}{
		{model.PriorityCritical, 50 + 100 + 20},
		{model.PriorityHigh, 50 + 75 + 20},
		{model.PriorityMedium, 50 + 50 + 20},
		{model.PriorityLow, 50 + 25 + 20},
	}

	for _, tc := range cases {
		order := &model.WorkOrder{Status: model.StatusOpen, ManualPriority: tc.priority}
		assert.Equal(t, tc.expected, service.PriorityScore(order, nil, scoreToday),
			"priority=%s", tc.priority)
	}
}

// TestPriorityScore_ModalityFlag adds 50 when the modality is flagged.
func TestPriorityScore_ModalityFlag(t *testing.T) {
	order := &model.WorkOrder{Status: model.StatusOpen, ManualPriority: model.PriorityHigh}

	base := service.PriorityScore(order, &model.Modality{HighPriority: false}, scoreToday)
	flagged := service.PriorityScore(order, &model.Modality{HighPriority: true}, scoreToday)

	assert.Equal(t, base+50, flagged)
}

// TestPriorityScore_StatusBonus covers the status contribution.
func TestPriorityScore_StatusBonus(t *testing.T) {
	cases := []struct {
		status model.Status
		bonus  int
	}{
		{model.StatusOpen, 20},
		{model.StatusInProgress, 10},
		{model.StatusAssigned, 0},
		{model.StatusOnHold, 0},
	}

	for _, tc := range cases {
		order := &model.WorkOrder{Status: tc.status, ManualPriority: model.PriorityMedium}
		assert.Equal(t, 50+50+tc.bonus, service.PriorityScore(order, nil, scoreToday),
			"status=%s", tc.status)
	}
}

// TestPriorityScore_Deterministic verifies repeated calls with identical
// inputs always agree.
func TestPriorityScore_Deterministic(t *testing.T) {
	order := orderWithDueIn(3)
	modality := &model.Modality{HighPriority: true}

	first := service.PriorityScore(order, modality, scoreToday)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, service.PriorityScore(order, modality, scoreToday))
	}
}

// TestPriorityScore_DayCountCrossesDSTChange verifies the day count is
// calendar-based: two calendar days spanning a spring-forward (47 clock
// hours between local midnights) still land in the two-day tier.
func TestPriorityScore_DayCountCrossesDSTChange(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// DST starts 2026-03-08 in this zone.
	today := time.Date(2026, 3, 7, 9, 0, 0, 0, loc)
	due := time.Date(2026, 3, 9, 9, 0, 0, 0, loc)

	order := &model.WorkOrder{
		Status:         model.StatusOpen,
		ManualPriority: model.PriorityHigh,
		DueDate:        &due,
	}
	// 145 + 70 for two days out.
	assert.Equal(t, 215, service.PriorityScore(order, nil, today))

	// Fall-back (2026-11-01): 49 clock hours, still two days.
	autumnToday := time.Date(2026, 10, 31, 9, 0, 0, 0, loc)
	autumnDue := time.Date(2026, 11, 2, 9, 0, 0, 0, loc)
	order.DueDate = &autumnDue
	assert.Equal(t, 215, service.PriorityScore(order, nil, autumnToday))
}

// TestPriorityScore_MidnightNormalization verifies partial days never
// shift the tier: a due date late tomorrow evening still counts as one
// day out when "today" is early morning.
func TestPriorityScore_MidnightNormalization(t *testing.T) {
	earlyToday := time.Date(2026, 3, 10, 0, 30, 0, 0, time.UTC)
	lateTomorrow := time.Date(2026, 3, 11, 23, 45, 0, 0, time.UTC)

	order := &model.WorkOrder{
		Status:         model.StatusOpen,
		ManualPriority: model.PriorityHigh,
		DueDate:        &lateTomorrow,
	}
	assert.Equal(t, 245, service.PriorityScore(order, nil, earlyToday))
}
