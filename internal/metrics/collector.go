package metrics

import (
	"time"

	"gorm.io/gorm"
)

// StartPoolCollector samples the database pool stats on the given
// interval until stop is closed.
func StartPoolCollector(db *gorm.DB, interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					continue
				}
				stats := sqlDB.Stats()
				SetDatabaseConnections(stats.InUse, stats.Idle)
			}
		}
	}()
}
