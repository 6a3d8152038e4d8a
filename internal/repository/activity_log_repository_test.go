package repository_test

import (
	"testing"
	"time"

	"github.com/Alkhemd/SistemaH2-sub000/internal/model"
	"github.com/Alkhemd/SistemaH2-sub000/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func auditEntry(entityName string, entityID uint, createdAt time.Time) *model.ActivityLogEntry {
	return &model.ActivityLogEntry{
		Operation:  model.OperationUpdate,
		EntityName: entityName,
		EntityID:   entityID,
		Actor:      "tecnico-1",
		CreatedAt:  createdAt,
	}
}

// TestActivityLogRepository_AppendValidates rejects rows missing
// required fields.
func TestActivityLogRepository_AppendValidates(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewActivityLogRepository(db)

	cases := []*model.ActivityLogEntry{
		{EntityName: "orden_trabajo", EntityID: 1, Actor: "tecnico-1"},
		{Operation: model.OperationUpdate, EntityID: 1, Actor: "tecnico-1"},
		{Operation: model.OperationUpdate, EntityName: "orden_trabajo", Actor: "tecnico-1"},
		{Operation: model.OperationUpdate, EntityName: "orden_trabajo", EntityID: 1},
	}
	for _, entry := range cases {
		assert.Error(t, repo.Append(entry))
	}
}

// TestActivityLogRepository_FindByEntity scopes rows to one entity and
// returns them most recent first.
func TestActivityLogRepository_FindByEntity(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewActivityLogRepository(db)

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Append(auditEntry("orden_trabajo", 1, base)))
	require.NoError(t, repo.Append(auditEntry("orden_trabajo", 1, base.Add(time.Minute))))
	require.NoError(t, repo.Append(auditEntry("orden_trabajo", 2, base)))
	require.NoError(t, repo.Append(auditEntry("equipo", 1, base)))

	entries, err := repo.FindByEntity("orden_trabajo", 1, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].CreatedAt.After(entries[1].CreatedAt))
}

// TestActivityLogRepository_FindRecentLimit honors the limit and
// normalizes nonsense values.
func TestActivityLogRepository_FindRecentLimit(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewActivityLogRepository(db)

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Append(auditEntry("orden_trabajo", uint(i+1), base.Add(time.Duration(i)*time.Minute))))
	}

	entries, err := repo.FindRecent(3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, uint(5), entries[0].EntityID)

	// Zero and negative limits fall back to the default window.
	entries, err = repo.FindRecent(0)
	require.NoError(t, err)
	assert.Len(t, entries, 5)
}
