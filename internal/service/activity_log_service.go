package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Alkhemd/SistemaH2-sub000/internal/model"
	"github.com/Alkhemd/SistemaH2-sub000/internal/repository"
)

type contextKey string

// Context keys the HTTP layer fills in for audit enrichment.
const (
	ContextKeyActor     contextKey = "actor"
	ContextKeyRequestID contextKey = "request_id"
	ContextKeySourceIP  contextKey = "source_ip"
)

// AuditEvent describes one mutation for the activity log. Before and
// After are serialized as JSON snapshots.
type AuditEvent struct {
	Operation   model.Operation
	EntityName  string
	EntityID    uint
	Title       string
	Description string
	Before      interface{}
	After       interface{}
	Actor       string
	SourceIP    string
}

// ActivityLogService records generic audit rows. Observability is not in
// the critical path: callers treat Record as best-effort and never let a
// returned error roll back or fail the mutation being described.
type ActivityLogService interface {
	Record(ctx context.Context, event *AuditEvent) error
	ListByEntity(entityName string, entityID uint, limit int) ([]*model.ActivityLogEntry, error)
	ListRecent(limit int) ([]*model.ActivityLogEntry, error)
}

type activityLogService struct {
	repo repository.ActivityLogRepository
	now  func() time.Time
}

// NewActivityLogService creates an activity-log service.
func NewActivityLogService(repo repository.ActivityLogRepository) ActivityLogService {
	return &activityLogService{repo: repo, now: time.Now}
}

// Record appends one audit row, enriching it from the request context.
func (s *activityLogService) Record(ctx context.Context, event *AuditEvent) error {
	if s.repo == nil {
		return nil
	}

	var before, after []byte
	var err error
	if event.Before != nil {
		if before, err = json.Marshal(event.Before); err != nil {
			return fmt.Errorf("failed to marshal before snapshot: %w", err)
		}
	}
	if event.After != nil {
		if after, err = json.Marshal(event.After); err != nil {
			return fmt.Errorf("failed to marshal after snapshot: %w", err)
		}
	}

	actor := event.Actor
	if actor == "" {
		if v, ok := ctx.Value(ContextKeyActor).(string); ok {
			actor = v
		}
	}
	if actor == "" {
		actor = "sistema"
	}

	sourceIP := event.SourceIP
	if sourceIP == "" {
		if v, ok := ctx.Value(ContextKeySourceIP).(string); ok {
			sourceIP = v
		}
	}

	requestID := ""
	if v, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		requestID = v
	}

	entry := &model.ActivityLogEntry{
		RequestID:   requestID,
		Operation:   event.Operation,
		EntityName:  event.EntityName,
		EntityID:    event.EntityID,
		Title:       event.Title,
		Description: event.Description,
		Before:      before,
		After:       after,
		Actor:       actor,
		SourceIP:    sourceIP,
		CreatedAt:   s.now(),
	}
	return s.repo.Append(entry)
}

// ListByEntity returns the audit rows for one entity, most recent first.
func (s *activityLogService) ListByEntity(entityName string, entityID uint, limit int) ([]*model.ActivityLogEntry, error) {
	return s.repo.FindByEntity(entityName, entityID, limit)
}

// ListRecent returns the newest audit rows across all entities.
func (s *activityLogService) ListRecent(limit int) ([]*model.ActivityLogEntry, error) {
	return s.repo.FindRecent(limit)
}
