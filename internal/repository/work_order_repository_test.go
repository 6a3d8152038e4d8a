package repository_test

import (
	"testing"
	"time"

	"github.com/Alkhemd/SistemaH2-sub000/internal/model"
	"github.com/Alkhemd/SistemaH2-sub000/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&model.Modality{},
		&model.Client{},
		&model.Technician{},
		&model.Equipment{},
		&model.WorkOrder{},
		&model.StatusHistoryEntry{},
		&model.ActivityLogEntry{},
	)
	require.NoError(t, err)

	require.NoError(t, db.Create(&model.Modality{Name: "RX", HighPriority: false}).Error)
	require.NoError(t, db.Create(&model.Client{Name: "Clinica Norte"}).Error)
	require.NoError(t, db.Create(&model.Equipment{
		ModalityID:   1,
		ClientID:     1,
		SerialNumber: "RX-0042",
		Brand:        "GE",
		Model:        "Optima",
	}).Error)

	return db
}

func seedOrder(t *testing.T, db *gorm.DB, status model.Status, priority model.Priority) *model.WorkOrder {
	t.Helper()
	order := &model.WorkOrder{
		EquipmentID:    1,
		ClientID:       1,
		Status:         status,
		ManualPriority: priority,
		OpenedAt:       time.Now(),
	}
	if status.IsTerminal() {
		now := time.Now()
		order.ClosedAt = &now
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

// TestWorkOrderRepository_FindByIDPreloads verifies associations come
// back loaded for display and scoring.
func TestWorkOrderRepository_FindByIDPreloads(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewWorkOrderRepository(db)

	seeded := seedOrder(t, db, model.StatusOpen, model.PriorityHigh)

	order, err := repo.FindByID(seeded.ID)
	require.NoError(t, err)
	require.NotNil(t, order.Equipment)
	require.NotNil(t, order.Equipment.Modality)
	require.NotNil(t, order.Client)
	assert.Equal(t, "RX", order.Equipment.Modality.Name)
	assert.Equal(t, "Clinica Norte", order.Client.Name)
}

// TestWorkOrderRepository_FindByIDNotFound surfaces the gorm sentinel.
func TestWorkOrderRepository_FindByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewWorkOrderRepository(db)

	_, err := repo.FindByID(404)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

// TestWorkOrderRepository_ListActiveExcludesTerminal checks the three
// terminal statuses never come back, regardless of stored casing.
func TestWorkOrderRepository_ListActiveExcludesTerminal(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewWorkOrderRepository(db)

	active := seedOrder(t, db, model.StatusOpen, model.PriorityMedium)
	seedOrder(t, db, model.StatusClosed, model.PriorityMedium)
	seedOrder(t, db, model.StatusCompleted, model.PriorityMedium)
	seedOrder(t, db, model.StatusCancelled, model.PriorityMedium)
	legacy := seedOrder(t, db, model.StatusOpen, model.PriorityMedium)
	require.NoError(t, db.Model(&model.WorkOrder{}).Where("id = ?", legacy.ID).
		Updates(map[string]interface{}{"status": "closed", "closed_at": time.Now()}).Error)

	orders, total, err := repo.ListActive(&repository.ActiveOrderFilter{})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, active.ID, orders[0].ID)
	assert.Equal(t, int64(1), total)
}

// TestWorkOrderRepository_ListActiveFilters exercises the status and
// priority filters together.
func TestWorkOrderRepository_ListActiveFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewWorkOrderRepository(db)

	seedOrder(t, db, model.StatusOpen, model.PriorityLow)
	target := seedOrder(t, db, model.StatusAssigned, model.PriorityCritical)
	seedOrder(t, db, model.StatusAssigned, model.PriorityLow)

	status := model.StatusAssigned
	priority := model.PriorityCritical
	orders, total, err := repo.ListActive(&repository.ActiveOrderFilter{
		Status:   &status,
		Priority: &priority,
	})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, target.ID, orders[0].ID)
	assert.Equal(t, int64(1), total)
}

// TestWorkOrderRepository_ListActivePagination checks the total counts
// all matching rows, not just the page.
func TestWorkOrderRepository_ListActivePagination(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewWorkOrderRepository(db)

	for i := 0; i < 7; i++ {
		seedOrder(t, db, model.StatusOpen, model.PriorityMedium)
	}

	orders, total, err := repo.ListActive(&repository.ActiveOrderFilter{Page: 2, Limit: 3})
	require.NoError(t, err)
	assert.Len(t, orders, 3)
	assert.Equal(t, int64(7), total)

	orders, total, err = repo.ListActive(&repository.ActiveOrderFilter{Page: 3, Limit: 3})
	require.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, int64(7), total)
}

// TestWorkOrderRepository_Counts covers the dashboard aggregations.
func TestWorkOrderRepository_Counts(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewWorkOrderRepository(db)

	seedOrder(t, db, model.StatusOpen, model.PriorityHigh)
	seedOrder(t, db, model.StatusOpen, model.PriorityMedium)
	seedOrder(t, db, model.StatusClosed, model.PriorityHigh)

	overdue := seedOrder(t, db, model.StatusInProgress, model.PriorityCritical)
	past := time.Now().AddDate(0, 0, -1)
	require.NoError(t, db.Model(&model.WorkOrder{}).Where("id = ?", overdue.ID).
		Update("due_date", past).Error)

	byStatus, err := repo.CountByStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(2), byStatus[model.StatusOpen])
	assert.Equal(t, int64(1), byStatus[model.StatusClosed])
	assert.Equal(t, int64(1), byStatus[model.StatusInProgress])

	byPriority, err := repo.CountByPriority()
	require.NoError(t, err)
	assert.Equal(t, int64(1), byPriority[model.PriorityHigh])
	assert.Equal(t, int64(1), byPriority[model.PriorityCritical])

	count, err := repo.CountOverdue()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
