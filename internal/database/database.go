package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Alkhemd/SistemaH2-sub000/internal/config"
	"github.com/Alkhemd/SistemaH2-sub000/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// BuildDSN builds a PostgreSQL DSN from the config.
func BuildDSN(cfg config.DatabaseConfig) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)
}

// Connect opens the configured database and applies the pool settings.
// The sqlite driver backs local development; postgres is the production
// target.
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		path := cfg.Path
		if path == "" {
			path = "sistemah2.db"
		}
		dialector = sqlite.Open(path)
	default:
		dialector = postgres.Open(BuildDSN(cfg))
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	maxIdle := cfg.MaxIdleConns
	if maxIdle == 0 {
		maxIdle = 10
	}
	maxOpen := cfg.MaxOpenConns
	if maxOpen == 0 {
		maxOpen = 100
	}
	maxLifetime := cfg.ConnMaxLifetime
	if maxLifetime == 0 {
		maxLifetime = 3600
	}
	maxIdleTime := cfg.ConnMaxIdleTime
	if maxIdleTime == 0 {
		maxIdleTime = 600
	}

	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetConnMaxLifetime(time.Duration(maxLifetime) * time.Second)
	sqlDB.SetConnMaxIdleTime(time.Duration(maxIdleTime) * time.Second)

	return db, nil
}

// ConnectWithRetry retries Connect with exponential backoff.
func ConnectWithRetry(cfg config.DatabaseConfig, maxRetries int, retryInterval time.Duration) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	for i := 0; i < maxRetries; i++ {
		db, err = Connect(cfg)
		if err == nil {
			return db, nil
		}
		if i < maxRetries-1 {
			time.Sleep(retryInterval)
			retryInterval *= 2
		}
	}
	return nil, fmt.Errorf("failed to connect database after %d retries: %w", maxRetries, err)
}

// Migrate creates or updates the schema and its indexes.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Modality{},
		&model.Client{},
		&model.Technician{},
		&model.Equipment{},
		&model.WorkOrder{},
		&model.StatusHistoryEntry{},
		&model.ActivityLogEntry{},
	); err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}

	if err := CreateIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// CreateIndexes creates the composite indexes AutoMigrate does not cover.
func CreateIndexes(db *gorm.DB) error {
	indexes := []struct {
		name string
		stmt string
	}{
		{"idx_ordenes_estado_prioridad", "CREATE INDEX IF NOT EXISTS idx_ordenes_estado_prioridad ON ordenes_trabajo(status, manual_priority)"},
		{"idx_ordenes_due_date_status", "CREATE INDEX IF NOT EXISTS idx_ordenes_due_date_status ON ordenes_trabajo(due_date, status)"},
		{"idx_historial_orden_fecha", "CREATE INDEX IF NOT EXISTS idx_historial_orden_fecha ON historial_estados(work_order_id, created_at)"},
		{"idx_actividad_entidad", "CREATE INDEX IF NOT EXISTS idx_actividad_entidad ON registro_actividad(entity_name, entity_id)"},
	}
	for _, idx := range indexes {
		if err := db.Exec(idx.stmt).Error; err != nil {
			return fmt.Errorf("failed to create %s: %w", idx.name, err)
		}
	}
	return nil
}

// CheckHealth pings the database with a short timeout.
func CheckHealth(db *gorm.DB) bool {
	if db == nil {
		return false
	}
	sqlDB, err := db.DB()
	if err != nil {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return sqlDB.PingContext(ctx) == nil
}
