package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"assembly-line-api/internal/domain"
)

// models lists every domain model in migration order
func models() []interface{} {
	return []interface{}{
		&domain.Assembler{},
		&domain.AssemblyCard{},
		&domain.AndonIssue{},
		&domain.IdeaThread{},
		&domain.IdeaMessage{},
	}
}

// AutoMigrate runs GORM auto-migration for all domain models. Tables,
// indexes, and constraints come from the struct tags in the domain package.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models()...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}
	return nil
}

// AutoMigrateWithRetry runs AutoMigrate up to maxRetries times with a linear
// backoff. Startup ordering against the database is not guaranteed in the
// cluster, so the first attempts may race the postgres pod.
func AutoMigrateWithRetry(db *gorm.DB, logger *zap.Logger, maxRetries int) error {
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err = AutoMigrate(db)
		if err == nil {
			logger.Info("Database migration completed",
				zap.Int("attempt", attempt),
			)
			return nil
		}
		if attempt < maxRetries {
			backoff := time.Duration(attempt) * time.Second
			logger.Warn("Migration attempt failed, retrying",
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff),
				zap.Error(err),
			)
			time.Sleep(backoff)
		}
	}
	return fmt.Errorf("migration failed after %d attempts: %w", maxRetries, err)
}
