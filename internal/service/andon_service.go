package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"assembly-line-api/internal/client"
	"assembly-line-api/internal/config"
	"assembly-line-api/internal/domain"
	"assembly-line-api/internal/dto"
	"assembly-line-api/internal/metrics"
	"assembly-line-api/internal/repository"
	"assembly-line-api/internal/response"
	"assembly-line-api/internal/ws"
)

// AndonService defines the interface for andon alert business logic
type AndonService interface {
	RaiseAndon(ctx context.Context, raisedBy uuid.UUID, req *dto.RaiseAndonRequest) (*dto.AndonResponse, error)
	GetAndon(ctx context.Context, issueID uuid.UUID) (*dto.AndonResponse, error)
	ListAndons(ctx context.Context, status *string) ([]*dto.AndonResponse, error)
	UpdateAndonStatus(ctx context.Context, issueID uuid.UUID, req *dto.UpdateAndonStatusRequest) (*dto.AndonResponse, error)
}

// andonServiceImpl is the implementation of AndonService
type andonServiceImpl struct {
	andonRepo repository.AndonRepository
	cardRepo  repository.CardRepository
	sms       client.SMSClient
	redis     *redis.Client
	notify    config.NotifyConfig
	hub       *ws.Hub
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewAndonService creates a new instance of AndonService
func NewAndonService(
	andonRepo repository.AndonRepository,
	cardRepo repository.CardRepository,
	sms client.SMSClient,
	redisClient *redis.Client,
	notify config.NotifyConfig,
	hub *ws.Hub,
	m *metrics.Metrics,
	logger *zap.Logger,
) AndonService {
	return &andonServiceImpl{
		andonRepo: andonRepo,
		cardRepo:  cardRepo,
		sms:       sms,
		redis:     redisClient,
		notify:    notify,
		hub:       hub,
		metrics:   m,
		logger:    logger,
	}
}

// RaiseAndon records a help request, pushes it to every terminal and texts
// the escalation list. The SMS leg degrades gracefully: a dead gateway never
// loses the alert.
func (s *andonServiceImpl) RaiseAndon(ctx context.Context, raisedBy uuid.UUID, req *dto.RaiseAndonRequest) (*dto.AndonResponse, error) {
	// The card link is advisory; the card may have been deleted since the
	// terminal rendered it, so a miss is logged and the alert still lands.
	if _, err := s.cardRepo.FindByCardNumber(ctx, req.AssemblyCardNumber); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to look up card", err.Error())
		}
		s.logger.Warn("Andon raised against unknown card",
			zap.String("card_number", req.AssemblyCardNumber),
		)
	}

	issue := &domain.AndonIssue{
		AssemblyCardNumber: req.AssemblyCardNumber,
		RaisedBy:           raisedBy,
		Station:            req.Station,
		Reason:             req.Reason,
		Status:             domain.AndonUnresolved,
	}
	if err := s.andonRepo.Create(ctx, issue); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to raise andon", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementAndonRaised()
	}
	s.logger.Warn("Andon raised",
		zap.String("card_number", issue.AssemblyCardNumber),
		zap.String("station", issue.Station),
		zap.String("raised_by", raisedBy.String()),
	)

	resp := toAndonResponse(issue)
	if s.hub != nil {
		s.hub.Broadcast(ws.EventAndonRaised, resp)
	}
	s.notifyEscalationList(ctx, issue)

	return resp, nil
}

// GetAndon retrieves a single andon issue
func (s *andonServiceImpl) GetAndon(ctx context.Context, issueID uuid.UUID) (*dto.AndonResponse, error) {
	issue, err := s.findAndon(ctx, issueID)
	if err != nil {
		return nil, err
	}
	return toAndonResponse(issue), nil
}

// ListAndons returns issues newest first, optionally filtered by status
func (s *andonServiceImpl) ListAndons(ctx context.Context, status *string) ([]*dto.AndonResponse, error) {
	var statusFilter *domain.AndonStatus
	if status != nil && *status != "" {
		st := domain.AndonStatus(*status)
		statusFilter = &st
	}

	issues, err := s.andonRepo.FindAll(ctx, statusFilter)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch andon issues", err.Error())
	}
	responses := make([]*dto.AndonResponse, len(issues))
	for i, issue := range issues {
		responses[i] = toAndonResponse(issue)
	}
	return responses, nil
}

// UpdateAndonStatus moves an issue through its forward-only lifecycle
func (s *andonServiceImpl) UpdateAndonStatus(ctx context.Context, issueID uuid.UUID, req *dto.UpdateAndonStatusRequest) (*dto.AndonResponse, error) {
	issue, err := s.findAndon(ctx, issueID)
	if err != nil {
		return nil, err
	}

	next := domain.AndonStatus(req.Status)
	if next == issue.Status {
		return toAndonResponse(issue), nil
	}
	if !issue.Status.CanTransitionTo(next) {
		return nil, response.NewAppError(response.ErrCodeInvalidTransition,
			fmt.Sprintf("Andon issue cannot move from %s to %s", issue.Status, next), "")
	}

	issue.Status = next
	if next == domain.AndonResolved {
		now := time.Now().UTC()
		issue.ResolvedAt = &now
		if s.metrics != nil {
			s.metrics.IncrementAndonResolved()
		}
	}

	if err := s.andonRepo.Update(ctx, issue); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update andon issue", err.Error())
	}

	s.logger.Info("Andon status updated",
		zap.String("card_number", issue.AssemblyCardNumber),
		zap.String("status", string(issue.Status)),
	)

	resp := toAndonResponse(issue)
	if s.hub != nil {
		s.hub.Broadcast(ws.EventAndonStatus, resp)
	}
	return resp, nil
}

// notifyEscalationList texts the supervisors, deduplicated per card so a
// storm of repeat pulls on the same card sends one message per window
func (s *andonServiceImpl) notifyEscalationList(ctx context.Context, issue *domain.AndonIssue) {
	if s.sms == nil || len(s.notify.Recipients) == 0 {
		return
	}

	if s.redis != nil && s.notify.DedupWindow > 0 {
		key := fmt.Sprintf("assembly:andon:sms:%s", issue.AssemblyCardNumber)
		ok, err := s.redis.SetNX(ctx, key, "1", s.notify.DedupWindow).Result()
		if err != nil {
			s.logger.Warn("Andon SMS dedup check failed, sending anyway", zap.Error(err))
		} else if !ok {
			s.logger.Debug("Andon SMS suppressed by dedup window",
				zap.String("card_number", issue.AssemblyCardNumber),
			)
			return
		}
	}

	body := fmt.Sprintf("ANDON: card %s at %s: %s",
		issue.AssemblyCardNumber, issue.Station, issue.Reason)
	if issue.Station == "" {
		body = fmt.Sprintf("ANDON: card %s: %s", issue.AssemblyCardNumber, issue.Reason)
	}

	if err := s.sms.Send(ctx, client.SMSMessage{
		Recipients: s.notify.Recipients,
		Body:       body,
		Reference:  issue.AssemblyCardNumber,
	}); err != nil {
		s.logger.Error("Failed to send andon SMS", zap.Error(err))
	}
}

func (s *andonServiceImpl) findAndon(ctx context.Context, issueID uuid.UUID) (*domain.AndonIssue, error) {
	issue, err := s.andonRepo.FindByID(ctx, issueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Andon issue not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch andon issue", err.Error())
	}
	return issue, nil
}

func toAndonResponse(issue *domain.AndonIssue) *dto.AndonResponse {
	return &dto.AndonResponse{
		ID:                 issue.ID,
		AssemblyCardNumber: issue.AssemblyCardNumber,
		RaisedBy:           issue.RaisedBy,
		Station:            issue.Station,
		Reason:             issue.Reason,
		Status:             string(issue.Status),
		ResolvedAt:         issue.ResolvedAt,
		CreatedAt:          issue.CreatedAt,
		UpdatedAt:          issue.UpdatedAt,
	}
}
