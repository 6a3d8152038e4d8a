package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/Alkhemd/SistemaH2-sub000/internal/model"
	"github.com/Alkhemd/SistemaH2-sub000/internal/repository"
	"github.com/Alkhemd/SistemaH2-sub000/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newQueryService(db *gorm.DB) service.OrderQueryService {
	return service.NewOrderQueryService(repository.NewWorkOrderRepository(db),
		service.WithQueryClock(func() time.Time { return testClock }))
}

// TestOrderQueryService_ExcludesTerminalOrders verifies closed orders
// never appear, whatever the filters say.
func TestOrderQueryService_ExcludesTerminalOrders(t *testing.T) {
	db := setupTestDB(t)
	orderSvc := newOrderService(t, db, nil)
	querySvc := newQueryService(db)

	open := createOrder(t, orderSvc)
	closed := createOrder(t, orderSvc)
	_, err := orderSvc.ChangeStatus(context.Background(), closed.ID,
		model.StatusClosed, "done", "tecnico-1")
	require.NoError(t, err)

	views, pagination, err := querySvc.ListActive(nil)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, open.ID, views[0].ID)
	assert.Equal(t, int64(1), pagination.Total)

	// Filtering for the terminal status directly still yields nothing.
	status := model.StatusClosed
	views, _, err = querySvc.ListActive(&repository.ActiveOrderFilter{Status: &status})
	require.NoError(t, err)
	assert.Empty(t, views)
}

// TestOrderQueryService_TerminalExclusionIsCaseInsensitive covers rows
// carrying legacy free-text casing.
func TestOrderQueryService_TerminalExclusionIsCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	orderSvc := newOrderService(t, db, nil)
	querySvc := newQueryService(db)

	order := createOrder(t, orderSvc)
	require.NoError(t, db.Model(&model.WorkOrder{}).Where("id = ?", order.ID).
		Update("status", "CANCELLED").Error)

	views, _, err := querySvc.ListActive(nil)
	require.NoError(t, err)
	assert.Empty(t, views)
}

// TestOrderQueryService_SortsByScoreDescending seeds orders with
// distinct urgency and checks the page order.
func TestOrderQueryService_SortsByScoreDescending(t *testing.T) {
	db := setupTestDB(t)
	orderSvc := newOrderService(t, db, nil)
	querySvc := newQueryService(db)

	low := createOrder(t, orderSvc)      // no due date: 170
	overdue := createOrder(t, orderSvc)  // overdue by 2: 170 + 170
	dueToday := createOrder(t, orderSvc) // due today: 170 + 120

	past := testClock.AddDate(0, 0, -2)
	require.NoError(t, db.Model(&model.WorkOrder{}).Where("id = ?", overdue.ID).
		Update("due_date", past).Error)
	today := testClock
	require.NoError(t, db.Model(&model.WorkOrder{}).Where("id = ?", dueToday.ID).
		Update("due_date", today).Error)

	views, _, err := querySvc.ListActive(nil)
	require.NoError(t, err)
	require.Len(t, views, 3)

	assert.Equal(t, overdue.ID, views[0].ID)
	assert.Equal(t, dueToday.ID, views[1].ID)
	assert.Equal(t, low.ID, views[2].ID)
	assert.GreaterOrEqual(t, views[0].Score, views[1].Score)
	assert.GreaterOrEqual(t, views[1].Score, views[2].Score)
}

// TestOrderQueryService_Filters covers the status, priority and
// numeric-id filters.
func TestOrderQueryService_Filters(t *testing.T) {
	db := setupTestDB(t)
	orderSvc := newOrderService(t, db, nil)
	querySvc := newQueryService(db)

	first := createOrder(t, orderSvc)
	second := createOrder(t, orderSvc)
	_, err := orderSvc.ChangeStatus(context.Background(), second.ID,
		model.StatusInProgress, "started", "tecnico-1")
	require.NoError(t, err)

	status := model.StatusInProgress
	views, _, err := querySvc.ListActive(&repository.ActiveOrderFilter{Status: &status})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, second.ID, views[0].ID)

	priority := model.PriorityMedium
	views, _, err = querySvc.ListActive(&repository.ActiveOrderFilter{Priority: &priority})
	require.NoError(t, err)
	assert.Len(t, views, 2)

	searchID := first.ID
	views, _, err = querySvc.ListActive(&repository.ActiveOrderFilter{SearchID: &searchID})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, first.ID, views[0].ID)
}

// TestOrderQueryService_Pagination checks totals and page boundaries.
func TestOrderQueryService_Pagination(t *testing.T) {
	db := setupTestDB(t)
	orderSvc := newOrderService(t, db, nil)
	querySvc := newQueryService(db)

	for i := 0; i < 5; i++ {
		createOrder(t, orderSvc)
	}

	views, pagination, err := querySvc.ListActive(&repository.ActiveOrderFilter{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, views, 2)
	assert.Equal(t, int64(5), pagination.Total)
	assert.Equal(t, 3, pagination.TotalPages)

	views, _, err = querySvc.ListActive(&repository.ActiveOrderFilter{Page: 3, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, views, 1)
}

// TestOrderQueryService_ViewFields verifies display strings and the
// modality urgency flag reach the view.
func TestOrderQueryService_ViewFields(t *testing.T) {
	db := setupTestDB(t)
	orderSvc := newOrderService(t, db, nil)
	querySvc := newQueryService(db)

	createOrder(t, orderSvc)

	views, _, err := querySvc.ListActive(nil)
	require.NoError(t, err)
	require.Len(t, views, 1)

	view := views[0]
	assert.Equal(t, "Siemens Somatom (CT-0001)", view.EquipmentLabel)
	assert.Equal(t, "Hospital General", view.ClientName)
	assert.Equal(t, "CT", view.ModalityName)
	assert.True(t, view.ModalityUrgent)
	// Base 50 + Medium 50 + Open 20 + flagged modality 50.
	assert.Equal(t, 170, view.Score)
}
