package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"assembly-line-api/internal/domain"
	"assembly-line-api/internal/dto"
	"assembly-line-api/internal/metrics"
	"assembly-line-api/internal/repository"
	"assembly-line-api/internal/response"
	"assembly-line-api/internal/scheduling"
	"assembly-line-api/internal/ws"
)

// CardService defines the interface for assembly card business logic
type CardService interface {
	CreateCard(ctx context.Context, req *dto.CreateCardRequest) (*dto.CardResponse, error)
	GetCard(ctx context.Context, cardID uuid.UUID) (*dto.CardResponse, error)
	GetCardByNumber(ctx context.Context, cardNumber string) (*dto.CardResponse, error)
	ListCards(ctx context.Context, filters *dto.CardFilters) ([]*dto.CardResponse, error)
	UpdateCard(ctx context.Context, cardID uuid.UUID, req *dto.UpdateCardRequest) (*dto.CardResponse, error)
	TransitionCard(ctx context.Context, cardID uuid.UUID, req *dto.TransitionRequest) (*dto.CardResponse, error)
	ValidateDependencies(ctx context.Context, req *dto.ValidateDependenciesRequest) (*dto.ValidationResponse, error)
	MoveCard(ctx context.Context, cardID uuid.UUID, req *dto.MoveCardRequest) (*dto.CardResponse, error)
	ResetAllStatuses(ctx context.Context) (*dto.BulkResetResponse, error)
	DeleteCard(ctx context.Context, cardID uuid.UUID) error
	DeleteAllCards(ctx context.Context) (*dto.BulkDeleteResponse, error)
}

// cardServiceImpl is the implementation of CardService
type cardServiceImpl struct {
	cardRepo repository.CardRepository
	policy   scheduling.Policy
	hub      *ws.Hub
	metrics  *metrics.Metrics
	logger   *zap.Logger
	now      func() time.Time
}

// NewCardService creates a new instance of CardService
func NewCardService(cardRepo repository.CardRepository, policy scheduling.Policy, hub *ws.Hub, m *metrics.Metrics, logger *zap.Logger) CardService {
	return &cardServiceImpl{
		cardRepo: cardRepo,
		policy:   policy,
		hub:      hub,
		metrics:  m,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateCard creates a new assembly card in the scheduled status
func (s *cardServiceImpl) CreateCard(ctx context.Context, req *dto.CreateCardRequest) (*dto.CardResponse, error) {
	cardType := domain.CardType(req.Type)

	if req.SubAssyArea != nil && !cardType.RequiresSubAssyArea() {
		return nil, response.NewValidationError(
			fmt.Sprintf("Card type %s does not carry a sub-assembly area", req.Type), "")
	}
	if cardType.RequiresSubAssyArea() && (req.SubAssyArea == nil || *req.SubAssyArea == "") {
		return nil, response.NewValidationError(
			fmt.Sprintf("Card type %s requires a sub-assembly area", req.Type), "")
	}

	exists, err := s.cardRepo.ExistsByCardNumber(ctx, req.CardNumber)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check card number", err.Error())
	}
	if exists {
		return nil, response.NewAlreadyExistsError(
			fmt.Sprintf("Card number %s already exists", req.CardNumber), "")
	}

	priority := domain.PriorityB
	if req.Priority != "" {
		priority = domain.CardPriority(req.Priority)
	}

	card := &domain.AssemblyCard{
		CardNumber:              req.CardNumber,
		Type:                    cardType,
		Phase:                   req.Phase,
		Priority:                priority,
		Duration:                req.Duration,
		Position:                req.Position,
		Status:                  domain.StatusScheduled,
		AssignedTo:              req.AssignedTo,
		AssignedMaterialHandler: req.AssignedMaterialHandler,
		SubAssyArea:             req.SubAssyArea,
		PaintRouted:             req.PaintRouted,
		PickDueDate:             req.PickDueDate,
		AssemblySeq:             req.AssemblySeq,
		MaterialSeq:             req.MaterialSeq,
		OperationSeq:            req.OperationSeq,
	}
	if err := card.SetDependencyNumbers(req.Dependencies); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to encode dependencies", err.Error())
	}

	if len(req.Dependencies) > 0 {
		allCards, err := s.cardRepo.FindAll(ctx, nil)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load cards for validation", err.Error())
		}
		result := scheduling.ValidateDependencies(req.CardNumber, req.Dependencies, append(allCards, card))
		if s.metrics != nil {
			s.metrics.RecordDependencyValidation(result.Valid)
		}
		if !result.Valid {
			return nil, response.NewDependencyConflictError(
				fmt.Sprintf("Dependencies of card %s conflict with the schedule", req.CardNumber),
				result.Findings)
		}
	}

	if err := s.cardRepo.Create(ctx, card); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create card", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementCardCreated()
	}
	s.logger.Info("Card created",
		zap.String("card_number", card.CardNumber),
		zap.String("type", string(card.Type)),
		zap.Int("phase", card.Phase),
	)
	s.broadcastCard(card)

	return toCardResponse(card), nil
}

// GetCard retrieves a single card by ID
func (s *cardServiceImpl) GetCard(ctx context.Context, cardID uuid.UUID) (*dto.CardResponse, error) {
	card, err := s.findCard(ctx, cardID)
	if err != nil {
		return nil, err
	}
	return toCardResponse(card), nil
}

// GetCardByNumber retrieves a single card by its human-facing card number
func (s *cardServiceImpl) GetCardByNumber(ctx context.Context, cardNumber string) (*dto.CardResponse, error) {
	card, err := s.cardRepo.FindByCardNumber(ctx, cardNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Card not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch card", err.Error())
	}
	return toCardResponse(card), nil
}

// ListCards returns the card snapshot ordered by phase and position
func (s *cardServiceImpl) ListCards(ctx context.Context, filters *dto.CardFilters) ([]*dto.CardResponse, error) {
	cards, err := s.cardRepo.FindAll(ctx, filters)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch cards", err.Error())
	}
	responses := make([]*dto.CardResponse, len(cards))
	for i, card := range cards {
		responses[i] = toCardResponse(card)
	}
	return responses, nil
}

// UpdateCard applies a partial update. A non-nil dependency list runs the
// validator before anything is written; a non-nil status runs the state
// machine. Scalar edits and the status change land in one save.
func (s *cardServiceImpl) UpdateCard(ctx context.Context, cardID uuid.UUID, req *dto.UpdateCardRequest) (*dto.CardResponse, error) {
	card, err := s.findCard(ctx, cardID)
	if err != nil {
		return nil, err
	}

	if req.Phase != nil {
		card.Phase = *req.Phase
	}
	if req.Priority != nil {
		card.Priority = domain.CardPriority(*req.Priority)
	}
	if req.Duration != nil {
		card.Duration = *req.Duration
	}
	if req.Position != nil {
		card.Position = *req.Position
	}
	if req.AssignedTo != nil {
		card.AssignedTo = req.AssignedTo
	}
	if req.AssignedMaterialHandler != nil {
		card.AssignedMaterialHandler = req.AssignedMaterialHandler
	}
	if req.SubAssyArea != nil {
		if !card.Type.RequiresSubAssyArea() {
			return nil, response.NewValidationError(
				fmt.Sprintf("Card type %s does not carry a sub-assembly area", card.Type), "")
		}
		card.SubAssyArea = req.SubAssyArea
	}
	if req.PaintRouted != nil {
		card.PaintRouted = *req.PaintRouted
	}
	if req.PickDueDate != nil {
		card.PickDueDate = req.PickDueDate
	}
	if req.AssemblySeq != nil {
		card.AssemblySeq = *req.AssemblySeq
	}
	if req.MaterialSeq != nil {
		card.MaterialSeq = *req.MaterialSeq
	}
	if req.OperationSeq != nil {
		card.OperationSeq = *req.OperationSeq
	}

	// Validate after the placement edits so the verdict reflects where the
	// card is going, not where it was.
	if req.Dependencies != nil {
		allCards, err := s.cardRepo.FindAll(ctx, nil)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load cards for validation", err.Error())
		}
		for i, other := range allCards {
			if other.ID == card.ID {
				allCards[i] = card
			}
		}
		result := scheduling.ValidateDependencies(card.CardNumber, *req.Dependencies, allCards)
		if s.metrics != nil {
			s.metrics.RecordDependencyValidation(result.Valid)
		}
		if !result.Valid {
			return nil, response.NewDependencyConflictError(
				fmt.Sprintf("Dependencies of card %s conflict with the schedule", card.CardNumber),
				result.Findings)
		}
		if err := card.SetDependencyNumbers(*req.Dependencies); err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to encode dependencies", err.Error())
		}
	}

	if req.Status != nil {
		if err := s.applyTransition(card, domain.CardStatus(*req.Status)); err != nil {
			return nil, err
		}
	}

	if err := s.cardRepo.Update(ctx, card); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update card", err.Error())
	}

	s.logger.Info("Card updated", zap.String("card_number", card.CardNumber))
	s.broadcastCard(card)

	return toCardResponse(card), nil
}

// TransitionCard moves a card through the lifecycle state machine
func (s *cardServiceImpl) TransitionCard(ctx context.Context, cardID uuid.UUID, req *dto.TransitionRequest) (*dto.CardResponse, error) {
	card, err := s.findCard(ctx, cardID)
	if err != nil {
		return nil, err
	}

	from := card.Status
	if err := s.applyTransition(card, domain.CardStatus(req.Status)); err != nil {
		return nil, err
	}

	if err := s.cardRepo.Update(ctx, card); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to save card", err.Error())
	}

	s.logger.Info("Card transitioned",
		zap.String("card_number", card.CardNumber),
		zap.String("from", string(from)),
		zap.String("to", string(card.Status)),
	)
	s.broadcastCard(card)

	return toCardResponse(card), nil
}

// ValidateDependencies is the dry-run validator endpoint. It never writes.
func (s *cardServiceImpl) ValidateDependencies(ctx context.Context, req *dto.ValidateDependenciesRequest) (*dto.ValidationResponse, error) {
	allCards, err := s.cardRepo.FindAll(ctx, nil)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load cards for validation", err.Error())
	}

	result := scheduling.ValidateDependencies(req.CardNumber, req.Dependencies, allCards)
	if s.metrics != nil {
		s.metrics.RecordDependencyValidation(result.Valid)
	}

	findings := result.Findings
	if findings == nil {
		findings = []scheduling.Finding{}
	}
	return &dto.ValidationResponse{
		CardNumber: req.CardNumber,
		Valid:      result.Valid,
		Findings:   findings,
	}, nil
}

// MoveCard handles a drag-and-drop reschedule and revalidates the stored
// dependency list against the would-be placement
func (s *cardServiceImpl) MoveCard(ctx context.Context, cardID uuid.UUID, req *dto.MoveCardRequest) (*dto.CardResponse, error) {
	card, err := s.findCard(ctx, cardID)
	if err != nil {
		return nil, err
	}

	card.Position = req.Position
	if req.Phase != nil {
		card.Phase = *req.Phase
	}
	if req.AssignedTo != nil {
		card.AssignedTo = req.AssignedTo
	}

	deps := card.DependencyNumbers()
	if len(deps) > 0 {
		allCards, err := s.cardRepo.FindAll(ctx, nil)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load cards for validation", err.Error())
		}
		// Validate against the moved placement, not the stored row.
		for i, other := range allCards {
			if other.ID == card.ID {
				allCards[i] = card
			}
		}
		result := scheduling.ValidateDependencies(card.CardNumber, deps, allCards)
		if s.metrics != nil {
			s.metrics.RecordDependencyValidation(result.Valid)
		}
		if !result.Valid {
			return nil, response.NewDependencyConflictError(
				fmt.Sprintf("Moving card %s would conflict with its dependencies", card.CardNumber),
				result.Findings)
		}
	}

	if err := s.cardRepo.Update(ctx, card); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to move card", err.Error())
	}

	s.logger.Info("Card moved",
		zap.String("card_number", card.CardNumber),
		zap.Int("position", card.Position),
		zap.Int("phase", card.Phase),
	)
	s.broadcastCard(card)

	return toCardResponse(card), nil
}

// ResetAllStatuses wipes every card back to scheduled. Failures on individual
// cards do not stop the sweep; the response reports partial success.
func (s *cardServiceImpl) ResetAllStatuses(ctx context.Context) (*dto.BulkResetResponse, error) {
	cards, err := s.cardRepo.FindAll(ctx, nil)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch cards", err.Error())
	}

	successCount := 0
	for _, card := range cards {
		scheduling.ResetToScheduled(card)
		if err := s.cardRepo.Update(ctx, card); err != nil {
			s.logger.Error("Failed to reset card",
				zap.String("card_number", card.CardNumber),
				zap.Error(err),
			)
			continue
		}
		successCount++
	}

	s.logger.Info("Statuses reset",
		zap.Int("success_count", successCount),
		zap.Int("total_count", len(cards)),
	)

	return &dto.BulkResetResponse{
		SuccessCount: successCount,
		TotalCount:   len(cards),
	}, nil
}

// DeleteCard permanently removes a single card
func (s *cardServiceImpl) DeleteCard(ctx context.Context, cardID uuid.UUID) error {
	if err := s.cardRepo.Delete(ctx, cardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Card not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete card", err.Error())
	}
	s.logger.Info("Card deleted", zap.String("card_id", cardID.String()))
	return nil
}

// DeleteAllCards clears the whole schedule
func (s *cardServiceImpl) DeleteAllCards(ctx context.Context) (*dto.BulkDeleteResponse, error) {
	deleted, err := s.cardRepo.DeleteAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to delete cards", err.Error())
	}
	s.logger.Warn("All cards deleted", zap.Int64("deleted_count", deleted))
	return &dto.BulkDeleteResponse{DeletedCount: int(deleted)}, nil
}

func (s *cardServiceImpl) findCard(ctx context.Context, cardID uuid.UUID) (*domain.AssemblyCard, error) {
	card, err := s.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Card not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch card", err.Error())
	}
	return card, nil
}

func (s *cardServiceImpl) applyTransition(card *domain.AssemblyCard, requested domain.CardStatus) error {
	err := scheduling.ApplyTransition(card, requested, s.now(), s.policy)
	if err == nil {
		if s.metrics != nil {
			s.metrics.RecordTransitionApplied(string(card.Status))
		}
		return nil
	}

	if s.metrics != nil {
		s.metrics.RecordTransitionRejected()
	}

	var unknownErr *scheduling.UnknownStatusError
	if errors.As(err, &unknownErr) {
		return response.NewAppError(response.ErrCodeUnknownStatus, unknownErr.Error(), "")
	}
	var transitionErr *scheduling.InvalidTransitionError
	if errors.As(err, &transitionErr) {
		return response.NewAppError(response.ErrCodeInvalidTransition, transitionErr.Error(), "")
	}
	return response.NewAppError(response.ErrCodeInternal, "Failed to apply transition", err.Error())
}

func (s *cardServiceImpl) broadcastCard(card *domain.AssemblyCard) {
	if s.hub == nil {
		return
	}
	s.hub.Broadcast(ws.EventCardUpdated, toCardResponse(card))
}

// toCardResponse converts a domain card to its wire shape
func toCardResponse(card *domain.AssemblyCard) *dto.CardResponse {
	deps := card.DependencyNumbers()
	if deps == nil {
		deps = []string{}
	}
	return &dto.CardResponse{
		ID:                      card.ID,
		CardNumber:              card.CardNumber,
		Type:                    string(card.Type),
		Phase:                   card.Phase,
		Priority:                string(card.Priority),
		Duration:                card.Duration,
		Position:                card.Position,
		Status:                  string(card.Status),
		AssignedTo:              card.AssignedTo,
		AssignedMaterialHandler: card.AssignedMaterialHandler,
		SubAssyArea:             card.SubAssyArea,
		PaintRouted:             card.PaintRouted,
		StartTime:               card.StartTime,
		EndTime:                 card.EndTime,
		PickingStartTime:        card.PickingStartTime,
		PickDueDate:             card.PickDueDate,
		PhaseClearedToBuildDate: card.PhaseClearedToBuildDate,
		ElapsedTime:             card.ElapsedTime,
		ActualDuration:          card.ActualDuration,
		Dependencies:            deps,
		AssemblySeq:             card.AssemblySeq,
		MaterialSeq:             card.MaterialSeq,
		OperationSeq:            card.OperationSeq,
		CreatedAt:               card.CreatedAt,
		UpdatedAt:               card.UpdatedAt,
	}
}
