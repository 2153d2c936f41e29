package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"assembly-line-api/internal/domain"
	"assembly-line-api/internal/dto"
	"assembly-line-api/internal/repository"
	"assembly-line-api/internal/response"
)

// AssemblerService defines the interface for assembler business logic
type AssemblerService interface {
	CreateAssembler(ctx context.Context, req *dto.CreateAssemblerRequest) (*dto.AssemblerResponse, error)
	GetAssembler(ctx context.Context, assemblerID uuid.UUID) (*dto.AssemblerResponse, error)
	ListAssemblers(ctx context.Context) ([]*dto.AssemblerResponse, error)
	UpdateAssembler(ctx context.Context, assemblerID uuid.UUID, req *dto.UpdateAssemblerRequest) (*dto.AssemblerResponse, error)
	DeleteAssembler(ctx context.Context, assemblerID uuid.UUID) error
}

// assemblerServiceImpl is the implementation of AssemblerService
type assemblerServiceImpl struct {
	assemblerRepo repository.AssemblerRepository
	logger        *zap.Logger
}

// NewAssemblerService creates a new instance of AssemblerService
func NewAssemblerService(assemblerRepo repository.AssemblerRepository, logger *zap.Logger) AssemblerService {
	return &assemblerServiceImpl{
		assemblerRepo: assemblerRepo,
		logger:        logger,
	}
}

// CreateAssembler registers a machine with a unique machine number
func (s *assemblerServiceImpl) CreateAssembler(ctx context.Context, req *dto.CreateAssemblerRequest) (*dto.AssemblerResponse, error) {
	exists, err := s.assemblerRepo.ExistsByMachineNumber(ctx, req.MachineNumber)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check machine number", err.Error())
	}
	if exists {
		return nil, response.NewAlreadyExistsError(
			fmt.Sprintf("Machine number %s already exists", req.MachineNumber), "")
	}

	assembler := &domain.Assembler{
		Name:          req.Name,
		MachineType:   req.MachineType,
		MachineNumber: req.MachineNumber,
		Status:        domain.AssemblerAvailable,
	}
	if err := s.assemblerRepo.Create(ctx, assembler); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create assembler", err.Error())
	}

	s.logger.Info("Assembler created",
		zap.String("name", assembler.Name),
		zap.String("machine_number", assembler.MachineNumber),
	)
	return toAssemblerResponse(assembler), nil
}

// GetAssembler retrieves a single assembler
func (s *assemblerServiceImpl) GetAssembler(ctx context.Context, assemblerID uuid.UUID) (*dto.AssemblerResponse, error) {
	assembler, err := s.findAssembler(ctx, assemblerID)
	if err != nil {
		return nil, err
	}
	return toAssemblerResponse(assembler), nil
}

// ListAssemblers returns every registered assembler
func (s *assemblerServiceImpl) ListAssemblers(ctx context.Context) ([]*dto.AssemblerResponse, error) {
	assemblers, err := s.assemblerRepo.FindAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch assemblers", err.Error())
	}
	responses := make([]*dto.AssemblerResponse, len(assemblers))
	for i, assembler := range assemblers {
		responses[i] = toAssemblerResponse(assembler)
	}
	return responses, nil
}

// UpdateAssembler applies a partial assembler update
func (s *assemblerServiceImpl) UpdateAssembler(ctx context.Context, assemblerID uuid.UUID, req *dto.UpdateAssemblerRequest) (*dto.AssemblerResponse, error) {
	assembler, err := s.findAssembler(ctx, assemblerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		assembler.Name = *req.Name
	}
	if req.MachineType != nil {
		assembler.MachineType = *req.MachineType
	}
	if req.Status != nil {
		assembler.Status = domain.AssemblerStatus(*req.Status)
	}

	if err := s.assemblerRepo.Update(ctx, assembler); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update assembler", err.Error())
	}
	return toAssemblerResponse(assembler), nil
}

// DeleteAssembler removes a machine from the roster. Cards assigned to it
// keep their lane id; the snapshot renders them unassigned.
func (s *assemblerServiceImpl) DeleteAssembler(ctx context.Context, assemblerID uuid.UUID) error {
	if err := s.assemblerRepo.Delete(ctx, assemblerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Assembler not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete assembler", err.Error())
	}
	s.logger.Info("Assembler deleted", zap.String("assembler_id", assemblerID.String()))
	return nil
}

func (s *assemblerServiceImpl) findAssembler(ctx context.Context, assemblerID uuid.UUID) (*domain.Assembler, error) {
	assembler, err := s.assemblerRepo.FindByID(ctx, assemblerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Assembler not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch assembler", err.Error())
	}
	return assembler, nil
}

func toAssemblerResponse(assembler *domain.Assembler) *dto.AssemblerResponse {
	return &dto.AssemblerResponse{
		ID:            assembler.ID,
		Name:          assembler.Name,
		MachineType:   assembler.MachineType,
		MachineNumber: assembler.MachineNumber,
		Status:        string(assembler.Status),
		CreatedAt:     assembler.CreatedAt,
		UpdatedAt:     assembler.UpdatedAt,
	}
}
