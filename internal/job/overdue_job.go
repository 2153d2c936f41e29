package job

import (
	"context"
	"time"

	"go.uber.org/zap"

	"assembly-line-api/internal/metrics"
	"assembly-line-api/internal/repository"
)

// OverduePickJob sweeps for cards past their pick due date that have not
// started picking, exporting the count for dashboard alerting
type OverduePickJob struct {
	cardRepo repository.CardRepository
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewOverduePickJob creates the sweep job
func NewOverduePickJob(cardRepo repository.CardRepository, m *metrics.Metrics, logger *zap.Logger) *OverduePickJob {
	return &OverduePickJob{
		cardRepo: cardRepo,
		metrics:  m,
		logger:   logger,
	}
}

// Run executes one sweep. Wired as a cron callback.
func (j *OverduePickJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := j.cardRepo.CountOverduePick(ctx)
	if err != nil {
		j.logger.Error("Overdue pick sweep failed", zap.Error(err))
		return
	}

	if j.metrics != nil {
		j.metrics.SetOverduePickCards(count)
	}
	if count > 0 {
		j.logger.Warn("Cards overdue for picking", zap.Int64("count", count))
	} else {
		j.logger.Debug("No cards overdue for picking")
	}
}
