package metrics

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BusinessMetricsCollector refreshes the card and andon gauges periodically
type BusinessMetricsCollector struct {
	db      *gorm.DB
	metrics *Metrics
	logger  *zap.Logger
	ticker  *time.Ticker
	done    chan bool
}

// NewBusinessMetricsCollector creates a new collector
func NewBusinessMetricsCollector(db *gorm.DB, metrics *Metrics, logger *zap.Logger) *BusinessMetricsCollector {
	return &BusinessMetricsCollector{
		db:      db,
		metrics: metrics,
		logger:  logger,
		ticker:  time.NewTicker(60 * time.Second),
		done:    make(chan bool),
	}
}

// Start begins collecting metrics
func (c *BusinessMetricsCollector) Start() {
	go func() {
		c.collect()

		for {
			select {
			case <-c.ticker.C:
				c.collect()
			case <-c.done:
				return
			}
		}
	}()
}

// Stop stops the collector
func (c *BusinessMetricsCollector) Stop() {
	c.ticker.Stop()
	c.done <- true
}

func (c *BusinessMetricsCollector) collect() {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Panic in business metrics collection",
				zap.Any("panic", r),
			)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var cardCount int64
	if err := c.db.WithContext(ctx).Table("assembly_cards").Where("deleted_at IS NULL").Count(&cardCount).Error; err != nil {
		c.logger.Error("Failed to count assembly cards", zap.Error(err))
	} else {
		c.metrics.SetCardsTotal(cardCount)
	}

	type statusRow struct {
		Status string
		Count  int64
	}
	var rows []statusRow
	if err := c.db.WithContext(ctx).Table("assembly_cards").
		Select("status, count(*) as count").
		Where("deleted_at IS NULL").
		Group("status").
		Scan(&rows).Error; err != nil {
		c.logger.Error("Failed to count cards by status", zap.Error(err))
	} else {
		for _, row := range rows {
			c.metrics.SetCardsByStatus(row.Status, row.Count)
		}
	}

	var unresolved int64
	if err := c.db.WithContext(ctx).Table("andon_issues").
		Where("status <> ? AND deleted_at IS NULL", "resolved").
		Count(&unresolved).Error; err != nil {
		c.logger.Error("Failed to count unresolved andon issues", zap.Error(err))
	} else {
		c.metrics.SetAndonUnresolved(unresolved)
	}
}
