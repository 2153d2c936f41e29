package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"assembly-line-api/internal/domain"
	"assembly-line-api/internal/dto"
	"assembly-line-api/internal/response"
	"assembly-line-api/internal/scheduling"
)

func newTestCardService(repo *mockCardRepository) CardService {
	return NewCardService(repo, scheduling.DefaultPolicy(), nil, nil, zap.NewNop())
}

func strPtr(s string) *string { return &s }

func TestCreateCard_Success(t *testing.T) {
	var created *domain.AssemblyCard
	repo := &mockCardRepository{
		ExistsByCardNumberFunc: func(ctx context.Context, cardNumber string) (bool, error) {
			return false, nil
		},
		CreateFunc: func(ctx context.Context, card *domain.AssemblyCard) error {
			created = card
			return nil
		},
	}
	svc := newTestCardService(repo)

	resp, err := svc.CreateCard(context.Background(), &dto.CreateCardRequest{
		CardNumber: "M-101",
		Type:       "M",
		Phase:      2,
		Duration:   4.5,
	})

	require.NoError(t, err)
	assert.Equal(t, "M-101", resp.CardNumber)
	assert.Equal(t, string(domain.StatusScheduled), resp.Status)
	assert.Equal(t, "B", resp.Priority)
	require.NotNil(t, created)
	assert.Equal(t, domain.CardTypeM, created.Type)
}

func TestCreateCard_DuplicateCardNumber(t *testing.T) {
	repo := &mockCardRepository{
		ExistsByCardNumberFunc: func(ctx context.Context, cardNumber string) (bool, error) {
			return true, nil
		},
	}
	svc := newTestCardService(repo)

	_, err := svc.CreateCard(context.Background(), &dto.CreateCardRequest{
		CardNumber: "M-101",
		Type:       "M",
		Phase:      1,
	})

	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeAlreadyExists, appErr.Code)
}

func TestCreateCard_SubAssyAreaOnlyForSubAssemblyTypes(t *testing.T) {
	repo := &mockCardRepository{}
	svc := newTestCardService(repo)

	_, err := svc.CreateCard(context.Background(), &dto.CreateCardRequest{
		CardNumber:  "M-101",
		Type:        "M",
		Phase:       1,
		SubAssyArea: strPtr("weld bay"),
	})

	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeValidation, appErr.Code)
}

func TestCreateCard_SubAssemblyTypeRequiresArea(t *testing.T) {
	repo := &mockCardRepository{}
	svc := newTestCardService(repo)

	_, err := svc.CreateCard(context.Background(), &dto.CreateCardRequest{
		CardNumber: "S-10",
		Type:       "S",
		Phase:      1,
	})

	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeValidation, appErr.Code)
}

func TestCreateCard_DependencyConflictCarriesFindings(t *testing.T) {
	lane := uuid.New()
	dep := &domain.AssemblyCard{CardNumber: "M-200", Phase: 1, Position: 5, AssignedTo: &lane}
	dep.ID = uuid.New()
	repo := &mockCardRepository{
		ExistsByCardNumberFunc: func(ctx context.Context, cardNumber string) (bool, error) {
			return false, nil
		},
		FindAllFunc: func(ctx context.Context, filters *dto.CardFilters) ([]*domain.AssemblyCard, error) {
			return []*domain.AssemblyCard{dep}, nil
		},
	}
	svc := newTestCardService(repo)

	_, err := svc.CreateCard(context.Background(), &dto.CreateCardRequest{
		CardNumber:   "M-101",
		Type:         "M",
		Phase:        1,
		Position:     2,
		AssignedTo:   &lane,
		Dependencies: []string{"M-200"},
	})

	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeDependencyConflict, appErr.Code)
	findings, ok := appErr.Findings.([]scheduling.Finding)
	require.True(t, ok)
	require.Len(t, findings, 1)
	assert.Equal(t, scheduling.FindingPositionConflict, findings[0].Kind)
}

func TestGetCard_NotFound(t *testing.T) {
	repo := &mockCardRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.AssemblyCard, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := newTestCardService(repo)

	_, err := svc.GetCard(context.Background(), uuid.New())

	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeNotFound, appErr.Code)
}

func TestUpdateCard_StatusRunsStateMachine(t *testing.T) {
	card := &domain.AssemblyCard{CardNumber: "M-101", Type: domain.CardTypeM, Status: domain.StatusScheduled}
	card.ID = uuid.New()
	var saved *domain.AssemblyCard
	repo := &mockCardRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.AssemblyCard, error) {
			return card, nil
		},
		UpdateFunc: func(ctx context.Context, c *domain.AssemblyCard) error {
			saved = c
			return nil
		},
	}
	svc := newTestCardService(repo)

	resp, err := svc.UpdateCard(context.Background(), card.ID, &dto.UpdateCardRequest{
		Status: strPtr("cleared_for_picking"),
	})

	require.NoError(t, err)
	assert.Equal(t, "cleared_for_picking", resp.Status)
	require.NotNil(t, saved)
	assert.Equal(t, domain.StatusClearedForPicking, saved.Status)
}

func TestUpdateCard_InvalidTransitionRejected(t *testing.T) {
	card := &domain.AssemblyCard{CardNumber: "M-101", Type: domain.CardTypeM, Status: domain.StatusScheduled}
	card.ID = uuid.New()
	repo := &mockCardRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.AssemblyCard, error) {
			return card, nil
		},
	}
	svc := newTestCardService(repo)

	_, err := svc.UpdateCard(context.Background(), card.ID, &dto.UpdateCardRequest{
		Status: strPtr("assembling"),
	})

	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeInvalidTransition, appErr.Code)
}

func TestUpdateCard_UnknownStatusRejected(t *testing.T) {
	card := &domain.AssemblyCard{CardNumber: "M-101", Type: domain.CardTypeM, Status: domain.StatusScheduled}
	card.ID = uuid.New()
	repo := &mockCardRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.AssemblyCard, error) {
			return card, nil
		},
	}
	svc := newTestCardService(repo)

	_, err := svc.UpdateCard(context.Background(), card.ID, &dto.UpdateCardRequest{
		Status: strPtr("launched"),
	})

	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeUnknownStatus, appErr.Code)
}

func TestUpdateCard_DependenciesValidatedBeforeWrite(t *testing.T) {
	card := &domain.AssemblyCard{CardNumber: "M-101", Type: domain.CardTypeM, Status: domain.StatusScheduled}
	card.ID = uuid.New()
	updateCalled := false
	repo := &mockCardRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.AssemblyCard, error) {
			return card, nil
		},
		FindAllFunc: func(ctx context.Context, filters *dto.CardFilters) ([]*domain.AssemblyCard, error) {
			return []*domain.AssemblyCard{card}, nil
		},
		UpdateFunc: func(ctx context.Context, c *domain.AssemblyCard) error {
			updateCalled = true
			return nil
		},
	}
	svc := newTestCardService(repo)

	deps := []string{"M-101"}
	_, err := svc.UpdateCard(context.Background(), card.ID, &dto.UpdateCardRequest{
		Dependencies: &deps,
	})

	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeDependencyConflict, appErr.Code)
	assert.False(t, updateCalled)
}

func TestUpdateCard_ValidatesAgainstRequestedPosition(t *testing.T) {
	lane := uuid.New()
	dep := &domain.AssemblyCard{CardNumber: "M-2", Type: domain.CardTypeM, Position: 5, AssignedTo: &lane}
	dep.ID = uuid.New()
	card := &domain.AssemblyCard{CardNumber: "M-1", Type: domain.CardTypeM, Position: 10, AssignedTo: &lane, Status: domain.StatusScheduled}
	card.ID = uuid.New()
	updateCalled := false
	repo := &mockCardRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.AssemblyCard, error) {
			return card, nil
		},
		FindAllFunc: func(ctx context.Context, filters *dto.CardFilters) ([]*domain.AssemblyCard, error) {
			return []*domain.AssemblyCard{card, dep}, nil
		},
		UpdateFunc: func(ctx context.Context, c *domain.AssemblyCard) error {
			updateCalled = true
			return nil
		},
	}
	svc := newTestCardService(repo)

	// At position 10 the dependency on M-2 would be fine; the same request
	// also moves the card to position 1, ahead of M-2, and that is the
	// placement the verdict must be judged against.
	position := 1
	deps := []string{"M-2"}
	_, err := svc.UpdateCard(context.Background(), card.ID, &dto.UpdateCardRequest{
		Position:     &position,
		Dependencies: &deps,
	})

	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeDependencyConflict, appErr.Code)
	findings, ok := appErr.Findings.([]scheduling.Finding)
	require.True(t, ok)
	require.Len(t, findings, 1)
	assert.Equal(t, scheduling.FindingPositionConflict, findings[0].Kind)
	assert.False(t, updateCalled)
}

func TestValidateDependencies_DryRunNeverWrites(t *testing.T) {
	card := &domain.AssemblyCard{CardNumber: "M-101", Type: domain.CardTypeM}
	card.ID = uuid.New()
	repo := &mockCardRepository{
		FindAllFunc: func(ctx context.Context, filters *dto.CardFilters) ([]*domain.AssemblyCard, error) {
			return []*domain.AssemblyCard{card}, nil
		},
	}
	svc := newTestCardService(repo)

	resp, err := svc.ValidateDependencies(context.Background(), &dto.ValidateDependenciesRequest{
		CardNumber:   "M-101",
		Dependencies: []string{"GHOST-1"},
	})

	require.NoError(t, err)
	assert.False(t, resp.Valid)
	require.Len(t, resp.Findings, 1)
	assert.Equal(t, scheduling.FindingUnknownDependency, resp.Findings[0].Kind)
}

func TestResetAllStatuses_PartialSuccess(t *testing.T) {
	good := &domain.AssemblyCard{CardNumber: "M-1", Status: domain.StatusAssembling}
	good.ID = uuid.New()
	bad := &domain.AssemblyCard{CardNumber: "M-2", Status: domain.StatusCompleted}
	bad.ID = uuid.New()
	repo := &mockCardRepository{
		FindAllFunc: func(ctx context.Context, filters *dto.CardFilters) ([]*domain.AssemblyCard, error) {
			return []*domain.AssemblyCard{good, bad}, nil
		},
		UpdateFunc: func(ctx context.Context, c *domain.AssemblyCard) error {
			if c.CardNumber == "M-2" {
				return assert.AnError
			}
			return nil
		},
	}
	svc := newTestCardService(repo)

	resp, err := svc.ResetAllStatuses(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, resp.SuccessCount)
	assert.Equal(t, 2, resp.TotalCount)
	assert.Equal(t, domain.StatusScheduled, good.Status)
}

func TestDeleteAllCards_ReportsCount(t *testing.T) {
	repo := &mockCardRepository{
		DeleteAllFunc: func(ctx context.Context) (int64, error) {
			return 7, nil
		},
	}
	svc := newTestCardService(repo)

	resp, err := svc.DeleteAllCards(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 7, resp.DeletedCount)
}

func TestMoveCard_RevalidatesAgainstNewPlacement(t *testing.T) {
	lane := uuid.New()
	dep := &domain.AssemblyCard{CardNumber: "M-200", Phase: 1, Position: 5, AssignedTo: &lane}
	dep.ID = uuid.New()
	card := &domain.AssemblyCard{CardNumber: "M-101", Phase: 1, Position: 9, AssignedTo: &lane}
	card.ID = uuid.New()
	require.NoError(t, card.SetDependencyNumbers([]string{"M-200"}))

	repo := &mockCardRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.AssemblyCard, error) {
			return card, nil
		},
		FindAllFunc: func(ctx context.Context, filters *dto.CardFilters) ([]*domain.AssemblyCard, error) {
			return []*domain.AssemblyCard{dep, card}, nil
		},
	}
	svc := newTestCardService(repo)

	// Moving ahead of its dependency must be refused.
	_, err := svc.MoveCard(context.Background(), card.ID, &dto.MoveCardRequest{Position: 2})

	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeDependencyConflict, appErr.Code)
}
