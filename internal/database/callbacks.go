package database

import (
	"time"

	"gorm.io/gorm"
)

// MetricsRecorder receives query timings and pool statistics
type MetricsRecorder interface {
	RecordDBQuery(operation, table string, duration time.Duration, err error)
	UpdateDBStats(stats interface{})
}

// RegisterMetricsCallbacks hooks query timing collection into GORM's
// callback chain for every statement kind.
func RegisterMetricsCallbacks(db *gorm.DB, recorder MetricsRecorder) {
	before := func(db *gorm.DB) {
		db.InstanceSet("query_start_time", time.Now())
	}
	after := func(operation string) func(*gorm.DB) {
		return func(db *gorm.DB) {
			start, ok := db.InstanceGet("query_start_time")
			if !ok {
				return
			}
			table := db.Statement.Table
			if table == "" {
				table = "unknown"
			}
			recorder.RecordDBQuery(operation, table, time.Since(start.(time.Time)), db.Error)
		}
	}

	cb := db.Callback()
	cb.Query().Before("gorm:query").Register("metrics:select_before", before)
	cb.Query().After("gorm:query").Register("metrics:select_after", after("select"))
	cb.Create().Before("gorm:create").Register("metrics:insert_before", before)
	cb.Create().After("gorm:create").Register("metrics:insert_after", after("insert"))
	cb.Update().Before("gorm:update").Register("metrics:update_before", before)
	cb.Update().After("gorm:update").Register("metrics:update_after", after("update"))
	cb.Delete().Before("gorm:delete").Register("metrics:delete_before", before)
	cb.Delete().After("gorm:delete").Register("metrics:delete_after", after("delete"))
}

// StartDBStatsCollector polls connection pool stats every 15 seconds until
// the returned channel is closed.
func StartDBStatsCollector(db *gorm.DB, recorder MetricsRecorder) chan struct{} {
	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					continue
				}
				recorder.UpdateDBStats(sqlDB.Stats())
			case <-done:
				return
			}
		}
	}()

	return done
}
