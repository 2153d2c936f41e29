package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"assembly-line-api/internal/domain"
)

// AndonRepository defines the interface for andon issue data access
type AndonRepository interface {
	Create(ctx context.Context, issue *domain.AndonIssue) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.AndonIssue, error)
	FindAll(ctx context.Context, status *domain.AndonStatus) ([]*domain.AndonIssue, error)
	FindByCardNumber(ctx context.Context, cardNumber string) ([]*domain.AndonIssue, error)
	Update(ctx context.Context, issue *domain.AndonIssue) error
}

// andonRepositoryImpl is the GORM implementation of AndonRepository
type andonRepositoryImpl struct {
	db *gorm.DB
}

// NewAndonRepository creates a new instance of AndonRepository
func NewAndonRepository(db *gorm.DB) AndonRepository {
	return &andonRepositoryImpl{db: db}
}

// Create creates a new andon issue
func (r *andonRepositoryImpl) Create(ctx context.Context, issue *domain.AndonIssue) error {
	if err := r.db.WithContext(ctx).Create(issue).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds an andon issue by ID
func (r *andonRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.AndonIssue, error) {
	var issue domain.AndonIssue
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&issue).Error; err != nil {
		return nil, err
	}
	return &issue, nil
}

// FindAll returns andon issues newest first, optionally filtered by status
func (r *andonRepositoryImpl) FindAll(ctx context.Context, status *domain.AndonStatus) ([]*domain.AndonIssue, error) {
	query := r.db.WithContext(ctx).Model(&domain.AndonIssue{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var issues []*domain.AndonIssue
	if err := query.Order("created_at DESC").Find(&issues).Error; err != nil {
		return nil, err
	}
	return issues, nil
}

// FindByCardNumber returns all issues raised against a card
func (r *andonRepositoryImpl) FindByCardNumber(ctx context.Context, cardNumber string) ([]*domain.AndonIssue, error) {
	var issues []*domain.AndonIssue
	if err := r.db.WithContext(ctx).
		Where("assembly_card_number = ?", cardNumber).
		Order("created_at DESC").
		Find(&issues).Error; err != nil {
		return nil, err
	}
	return issues, nil
}

// Update saves the issue row
func (r *andonRepositoryImpl) Update(ctx context.Context, issue *domain.AndonIssue) error {
	if err := r.db.WithContext(ctx).Save(issue).Error; err != nil {
		return err
	}
	return nil
}
