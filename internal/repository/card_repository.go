package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"assembly-line-api/internal/domain"
	"assembly-line-api/internal/dto"
)

// CardRepository defines the interface for assembly card data access
type CardRepository interface {
	Create(ctx context.Context, card *domain.AssemblyCard) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.AssemblyCard, error)
	FindByCardNumber(ctx context.Context, cardNumber string) (*domain.AssemblyCard, error)
	FindAll(ctx context.Context, filters *dto.CardFilters) ([]*domain.AssemblyCard, error)
	ExistsByCardNumber(ctx context.Context, cardNumber string) (bool, error)
	Update(ctx context.Context, card *domain.AssemblyCard) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) (int64, error)
	CountOverduePick(ctx context.Context) (int64, error)
}

// cardRepositoryImpl is the GORM implementation of CardRepository
type cardRepositoryImpl struct {
	db *gorm.DB
}

// NewCardRepository creates a new instance of CardRepository
func NewCardRepository(db *gorm.DB) CardRepository {
	return &cardRepositoryImpl{db: db}
}

// Create creates a new assembly card
func (r *cardRepositoryImpl) Create(ctx context.Context, card *domain.AssemblyCard) error {
	if err := r.db.WithContext(ctx).Create(card).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds a card by ID
func (r *cardRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.AssemblyCard, error) {
	var card domain.AssemblyCard
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&card).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

// FindByCardNumber finds a card by its human-facing card number
func (r *cardRepositoryImpl) FindByCardNumber(ctx context.Context, cardNumber string) (*domain.AssemblyCard, error) {
	var card domain.AssemblyCard
	if err := r.db.WithContext(ctx).
		Where("card_number = ?", cardNumber).
		First(&card).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

// FindAll returns the full card snapshot, optionally filtered, ordered by
// phase then position so lanes come back in schedule order
func (r *cardRepositoryImpl) FindAll(ctx context.Context, filters *dto.CardFilters) ([]*domain.AssemblyCard, error) {
	query := r.db.WithContext(ctx).Model(&domain.AssemblyCard{})

	if filters != nil {
		if filters.Phase != nil {
			query = query.Where("phase = ?", *filters.Phase)
		}
		if filters.Status != nil {
			query = query.Where("status = ?", *filters.Status)
		}
		if filters.Type != nil {
			query = query.Where("type = ?", *filters.Type)
		}
		if filters.AssignedTo != nil {
			query = query.Where("assigned_to = ?", *filters.AssignedTo)
		}
	}

	var cards []*domain.AssemblyCard
	if err := query.Order("phase ASC, position ASC").Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

// ExistsByCardNumber reports whether a card number is already taken
func (r *cardRepositoryImpl) ExistsByCardNumber(ctx context.Context, cardNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.AssemblyCard{}).
		Where("card_number = ?", cardNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update saves the full card row
func (r *cardRepositoryImpl) Update(ctx context.Context, card *domain.AssemblyCard) error {
	if err := r.db.WithContext(ctx).Save(card).Error; err != nil {
		return err
	}
	return nil
}

// Delete removes a card; removal is permanent
func (r *cardRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.AssemblyCard{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteAll removes every card and returns how many rows were affected
func (r *cardRepositoryImpl) DeleteAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&domain.AssemblyCard{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// CountOverduePick counts cards past their pick due date that have not
// started picking yet
func (r *cardRepositoryImpl) CountOverduePick(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.AssemblyCard{}).
		Where("pick_due_date IS NOT NULL AND pick_due_date < now()").
		Where("status IN ?", []domain.CardStatus{domain.StatusScheduled, domain.StatusClearedForPicking}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
