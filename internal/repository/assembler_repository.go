package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"assembly-line-api/internal/domain"
)

// AssemblerRepository defines the interface for assembler data access
type AssemblerRepository interface {
	Create(ctx context.Context, assembler *domain.Assembler) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Assembler, error)
	FindAll(ctx context.Context) ([]*domain.Assembler, error)
	ExistsByMachineNumber(ctx context.Context, machineNumber string) (bool, error)
	Update(ctx context.Context, assembler *domain.Assembler) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// assemblerRepositoryImpl is the GORM implementation of AssemblerRepository
type assemblerRepositoryImpl struct {
	db *gorm.DB
}

// NewAssemblerRepository creates a new instance of AssemblerRepository
func NewAssemblerRepository(db *gorm.DB) AssemblerRepository {
	return &assemblerRepositoryImpl{db: db}
}

// Create creates a new assembler
func (r *assemblerRepositoryImpl) Create(ctx context.Context, assembler *domain.Assembler) error {
	if err := r.db.WithContext(ctx).Create(assembler).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds an assembler by ID
func (r *assemblerRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Assembler, error) {
	var assembler domain.Assembler
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&assembler).Error; err != nil {
		return nil, err
	}
	return &assembler, nil
}

// FindAll returns all assemblers ordered by machine number
func (r *assemblerRepositoryImpl) FindAll(ctx context.Context) ([]*domain.Assembler, error) {
	var assemblers []*domain.Assembler
	if err := r.db.WithContext(ctx).
		Order("machine_number ASC").
		Find(&assemblers).Error; err != nil {
		return nil, err
	}
	return assemblers, nil
}

// ExistsByMachineNumber reports whether a machine number is already taken
func (r *assemblerRepositoryImpl) ExistsByMachineNumber(ctx context.Context, machineNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Assembler{}).
		Where("machine_number = ?", machineNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update saves the assembler row
func (r *assemblerRepositoryImpl) Update(ctx context.Context, assembler *domain.Assembler) error {
	if err := r.db.WithContext(ctx).Save(assembler).Error; err != nil {
		return err
	}
	return nil
}

// Delete removes an assembler
func (r *assemblerRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Assembler{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
