package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Alkhemd/SistemaH2-sub000/internal/metrics"
	"github.com/Alkhemd/SistemaH2-sub000/internal/model"
	"github.com/Alkhemd/SistemaH2-sub000/internal/repository"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// WorkOrderService owns the guarded lifecycle of work orders: creation
// with defaults, justified status transitions and justified due-date
// postponements. Every accepted mutation appends exactly one history row
// inside the same transaction as the order update; the activity-log write
// happens after commit and is best-effort.
type WorkOrderService interface {
	Create(ctx context.Context, req *CreateWorkOrderRequest) (*model.WorkOrder, error)
	Get(id uint) (*model.WorkOrder, error)
	ChangeStatus(ctx context.Context, id uint, newStatus model.Status, justification, actor string) (*model.WorkOrder, error)
	PostponeDueDate(ctx context.Context, id uint, newDueDate time.Time, justification, actor string) (*model.WorkOrder, error)
	GetHistory(id uint) ([]*model.StatusHistoryEntry, error)
}

// CreateWorkOrderRequest carries the fields a caller may set at creation.
// Status, priority (when omitted) and the opened-at timestamp are defaulted
// by the service.
type CreateWorkOrderRequest struct {
	EquipmentID    uint           `json:"equipo_id" binding:"required"`
	ClientID       uint           `json:"cliente_id" binding:"required"`
	ContractID     *uint          `json:"contrato_id"`
	TechnicianID   *uint          `json:"tecnico_id"`
	ManualPriority model.Priority `json:"prioridad"`
	DueDate        *time.Time     `json:"fecha_compromiso"`
	ReportedFault  string         `json:"falla_reportada"`
	Origin         string         `json:"origen"`
}

type workOrderService struct {
	db         *gorm.DB
	orders     repository.WorkOrderRepository
	history    repository.StatusHistoryRepository
	audit      ActivityLogService
	log        *logrus.Logger
	now        func() time.Time
	onMutation func()
}

// WorkOrderServiceOption customizes a work-order service.
type WorkOrderServiceOption func(*workOrderService)

// WithClock overrides the service clock, for tests.
func WithClock(now func() time.Time) WorkOrderServiceOption {
	return func(s *workOrderService) { s.now = now }
}

// WithMutationHook registers a callback invoked after every accepted
// mutation, used to invalidate derived caches.
func WithMutationHook(hook func()) WorkOrderServiceOption {
	return func(s *workOrderService) { s.onMutation = hook }
}

// NewWorkOrderService creates a work-order service.
func NewWorkOrderService(db *gorm.DB, audit ActivityLogService, log *logrus.Logger, opts ...WorkOrderServiceOption) WorkOrderService {
	s := &workOrderService{
		db:      db,
		orders:  repository.NewWorkOrderRepository(db),
		history: repository.NewStatusHistoryRepository(db),
		audit:   audit,
		log:     log,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create opens a new work order with lifecycle defaults: status Open,
// priority Medium unless given, openedAt now.
func (s *workOrderService) Create(ctx context.Context, req *CreateWorkOrderRequest) (*model.WorkOrder, error) {
	if req.EquipmentID == 0 {
		return nil, NewValidationError("equipment ID is required")
	}
	if req.ClientID == 0 {
		return nil, NewValidationError("client ID is required")
	}

	priority := req.ManualPriority
	if priority == "" {
		priority = model.PriorityMedium
	}

	order := &model.WorkOrder{
		EquipmentID:    req.EquipmentID,
		ClientID:       req.ClientID,
		ContractID:     req.ContractID,
		TechnicianID:   req.TechnicianID,
		Status:         model.StatusOpen,
		ManualPriority: priority,
		OpenedAt:       s.now(),
		DueDate:        req.DueDate,
		ReportedFault:  req.ReportedFault,
		Origin:         req.Origin,
	}
	if err := order.Validate(); err != nil {
		return nil, NewValidationError(err.Error())
	}
	if err := s.orders.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create work order: %w", err)
	}

	metrics.RecordWorkOrderCreated()
	s.recordAudit(ctx, model.OperationCreate, order.ID, "Orden de trabajo creada",
		fmt.Sprintf("work order opened for equipment %d", order.EquipmentID), nil, order, actorFromContext(ctx))
	s.notifyMutation()

	return order, nil
}

// Get loads one work order with its associations.
func (s *workOrderService) Get(id uint) (*model.WorkOrder, error) {
	return s.orders.FindByID(id)
}

// ChangeStatus applies a justified status transition. Any status may move
// to any other; the only gate is a non-empty justification. Entering the
// terminal set stamps closedAt, leaving it clears the stamp so closedAt
// stays set exactly when the status is terminal.
func (s *workOrderService) ChangeStatus(ctx context.Context, id uint, newStatus model.Status, justification, actor string) (*model.WorkOrder, error) {
	if strings.TrimSpace(justification) == "" {
		return nil, NewValidationError("justification is required to change the status")
	}
	if newStatus == "" {
		return nil, NewValidationError("new status is required")
	}

	order, err := s.orders.FindByID(id)
	if err != nil {
		return nil, err
	}
	before := *order
	priorStatus := order.Status
	now := s.now()

	order.Status = newStatus
	if newStatus.IsTerminal() {
		if order.ClosedAt == nil {
			order.ClosedAt = &now
		}
	} else {
		order.ClosedAt = nil
	}

	entry := &model.StatusHistoryEntry{
		WorkOrderID:   order.ID,
		Kind:          model.HistoryKindStatusChange,
		FromValue:     string(priorStatus),
		ToValue:       string(newStatus),
		Justification: justification,
		Actor:         actor,
		CreatedAt:     now,
	}

	// The order update and its history row commit or fail together; a
	// crash can no longer leave one without the other.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(order).Error; err != nil {
			return fmt.Errorf("failed to update work order: %w", err)
		}
		if err := repository.NewStatusHistoryRepository(tx).Append(entry); err != nil {
			return fmt.Errorf("failed to append status history: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordStatusTransition(string(newStatus))
	s.recordAudit(ctx, model.OperationUpdate, order.ID, "Cambio de estado",
		fmt.Sprintf("status changed from %s to %s: %s", priorStatus, newStatus, justification),
		&before, order, actor)
	s.notifyMutation()

	return order, nil
}

// PostponeDueDate applies a justified due-date change. The new date must
// not be in the past, but it may fall before the prior due date; only
// terminal orders are off limits.
func (s *workOrderService) PostponeDueDate(ctx context.Context, id uint, newDueDate time.Time, justification, actor string) (*model.WorkOrder, error) {
	if newDueDate.IsZero() {
		return nil, NewValidationError("new due date is required")
	}
	if strings.TrimSpace(justification) == "" {
		return nil, NewValidationError("justification is required to postpone the due date")
	}

	order, err := s.orders.FindByID(id)
	if err != nil {
		return nil, err
	}
	if order.Status.IsTerminal() {
		return nil, NewValidationError("cannot postpone a closed work order")
	}

	now := s.now()
	if atMidnight(newDueDate).Before(atMidnight(now)) {
		return nil, NewValidationError("new due date cannot be in the past")
	}

	before := *order
	priorDue := ""
	if order.DueDate != nil {
		priorDue = order.DueDate.Format("2006-01-02")
	}
	due := newDueDate
	order.DueDate = &due

	entry := &model.StatusHistoryEntry{
		WorkOrderID:   order.ID,
		Kind:          model.HistoryKindPostponement,
		FromValue:     priorDue,
		ToValue:       due.Format("2006-01-02"),
		Justification: justification,
		Actor:         actor,
		CreatedAt:     now,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(order).Error; err != nil {
			return fmt.Errorf("failed to update work order: %w", err)
		}
		if err := repository.NewStatusHistoryRepository(tx).Append(entry); err != nil {
			return fmt.Errorf("failed to append postponement history: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordPostponement()
	s.recordAudit(ctx, model.OperationUpdate, order.ID, "Posposicion de fecha compromiso",
		fmt.Sprintf("due date moved from %q to %q: %s", priorDue, entry.ToValue, justification),
		&before, order, actor)
	s.notifyMutation()

	return order, nil
}

// GetHistory returns the order's history, most recent first. The order
// must exist.
func (s *workOrderService) GetHistory(id uint) ([]*model.StatusHistoryEntry, error) {
	if _, err := s.orders.FindByID(id); err != nil {
		return nil, err
	}
	return s.history.FindByWorkOrderID(id)
}

// recordAudit asks the activity log for a best-effort write. Failures are
// logged and swallowed; the primary mutation already committed.
func (s *workOrderService) recordAudit(ctx context.Context, op model.Operation, orderID uint, title, description string, before, after interface{}, actor string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, &AuditEvent{
		Operation:   op,
		EntityName:  "orden_trabajo",
		EntityID:    orderID,
		Title:       title,
		Description: description,
		Before:      before,
		After:       after,
		Actor:       actor,
	}); err != nil && s.log != nil {
		s.log.WithError(err).WithField("orden_id", orderID).
			Warn("activity log write failed")
	}
}

func (s *workOrderService) notifyMutation() {
	if s.onMutation != nil {
		s.onMutation()
	}
}

// actorFromContext pulls the acting user out of the request context, if
// the HTTP layer put one there.
func actorFromContext(ctx context.Context) string {
	if actor, ok := ctx.Value(ContextKeyActor).(string); ok && actor != "" {
		return actor
	}
	return "sistema"
}
