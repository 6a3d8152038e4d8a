package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/Alkhemd/SistemaH2-sub000/internal/model"
	"github.com/Alkhemd/SistemaH2-sub000/internal/repository"
)

// OrderView is one row of the active-order listing: the order's fields
// flattened for display, plus the urgency score computed for this request.
type OrderView struct {
	ID             uint           `json:"id"`
	Status         model.Status   `json:"estado"`
	ManualPriority model.Priority `json:"prioridad"`
	Score          int            `json:"puntaje"`
	DueDate        *time.Time     `json:"fecha_compromiso,omitempty"`
	OpenedAt       time.Time      `json:"fecha_apertura"`
	ReportedFault  string         `json:"falla_reportada"`
	EquipmentLabel string         `json:"equipo"`
	ClientName     string         `json:"cliente"`
	ModalityName   string         `json:"modalidad"`
	ModalityUrgent bool           `json:"modalidad_urgente"`
}

// Pagination describes the page returned by a listing.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// OrderQueryService serves the prioritized active-order listing. Terminal
// orders never appear; each returned page is sorted descending by the
// urgency score, evaluated against a single "today" for the whole request.
type OrderQueryService interface {
	ListActive(filter *repository.ActiveOrderFilter) ([]*OrderView, *Pagination, error)
}

type orderQueryService struct {
	orders repository.WorkOrderRepository
	now    func() time.Time
}

// OrderQueryServiceOption customizes a query service.
type OrderQueryServiceOption func(*orderQueryService)

// WithQueryClock overrides the query clock, for tests.
func WithQueryClock(now func() time.Time) OrderQueryServiceOption {
	return func(s *orderQueryService) { s.now = now }
}

// NewOrderQueryService creates an order query service.
func NewOrderQueryService(orders repository.WorkOrderRepository, opts ...OrderQueryServiceOption) OrderQueryService {
	s := &orderQueryService{orders: orders, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListActive lists non-terminal orders, scored and sorted. The store
// filters and paginates first, so the ordering is local to the page.
func (s *orderQueryService) ListActive(filter *repository.ActiveOrderFilter) ([]*OrderView, *Pagination, error) {
	if filter == nil {
		filter = &repository.ActiveOrderFilter{}
	}
	orders, total, err := s.orders.ListActive(filter)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list active orders: %w", err)
	}

	// One evaluation of "today" for the whole page keeps concurrent rows
	// consistent within a single response.
	today := s.now()

	views := make([]*OrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, buildView(order, today))
	}

	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Score > views[j].Score
	})

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return views, &Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

func buildView(order *model.WorkOrder, today time.Time) *OrderView {
	view := &OrderView{
		ID:             order.ID,
		Status:         order.Status,
		ManualPriority: order.ManualPriority,
		DueDate:        order.DueDate,
		OpenedAt:       order.OpenedAt,
		ReportedFault:  order.ReportedFault,
	}

	var modality *model.Modality
	if order.Equipment != nil {
		modality = order.Equipment.Modality
		view.EquipmentLabel = order.Equipment.Brand + " " + order.Equipment.Model +
			" (" + order.Equipment.SerialNumber + ")"
	}
	if modality != nil {
		view.ModalityName = modality.Name
		view.ModalityUrgent = modality.HighPriority
	}
	if order.Client != nil {
		view.ClientName = order.Client.Name
	}

	view.Score = PriorityScore(order, modality, today)
	return view
}
