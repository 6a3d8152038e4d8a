package service

import (
	"time"

	"github.com/Alkhemd/SistemaH2-sub000/internal/model"
)

// Urgency scoring weights. The score orders the active listing and is
// never persisted: it depends on "today", so the same order scores
// differently on different days.
const (
	scoreBase = 50

	weightPriorityCritical = 100
	weightPriorityHigh     = 75
	weightPriorityMedium   = 50
	weightPriorityLow      = 25

	weightModalityHighPriority = 50

	weightStatusOpen       = 20
	weightStatusInProgress = 10
)

// PriorityScore computes the urgency score of a work order as of today.
// Pure and total: no storage access, no failure modes, deterministic for
// fixed inputs and a fixed date.
func PriorityScore(order *model.WorkOrder, modality *model.Modality, today time.Time) int {
	score := scoreBase
	score += manualPriorityWeight(order.ManualPriority)

	if order.DueDate != nil {
		score += dueDateWeight(daysRemaining(*order.DueDate, today))
	}

	if modality != nil && modality.HighPriority {
		score += weightModalityHighPriority
	}

	switch order.Status {
	case model.StatusOpen:
		score += weightStatusOpen
	case model.StatusInProgress:
		score += weightStatusInProgress
	}

	return score
}

func manualPriorityWeight(p model.Priority) int {
	switch p {
	case model.PriorityCritical:
		return weightPriorityCritical
	case model.PriorityHigh:
		return weightPriorityHigh
	case model.PriorityLow:
		return weightPriorityLow
	default:
		return weightPriorityMedium
	}
}

// dueDateWeight maps the days left until the due date to an urgency
// contribution. Overdue orders grow without bound the longer they slip.
func dueDateWeight(days int) int {
	switch {
	case days < 0:
		return 150 + 10*(-days)
	case days == 0:
		return 120
	case days == 1:
		return 100
	case days <= 3:
		return 80 - 10*(days-1)
	case days <= 7:
		return 50 - 5*(days-4)
	case days <= 14:
		return 20 - 2*(days-7)
	default:
		return 0
	}
}

// daysRemaining counts calendar days between today and the due date.
// Both dates are re-anchored to UTC midnight before subtracting: local
// midnights straddling a DST change are 23 or 25 hours apart, which
// would truncate to the wrong day count.
func daysRemaining(dueDate, today time.Time) int {
	due := atUTCDate(dueDate)
	now := atUTCDate(today)
	return int(due.Sub(now).Hours() / 24)
}

func atUTCDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func atMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
