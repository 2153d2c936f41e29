package service

import (
	"context"

	"github.com/google/uuid"

	"assembly-line-api/internal/client"
	"assembly-line-api/internal/domain"
	"assembly-line-api/internal/dto"
)

// mockCardRepository is a function-field mock of repository.CardRepository
type mockCardRepository struct {
	CreateFunc             func(ctx context.Context, card *domain.AssemblyCard) error
	FindByIDFunc           func(ctx context.Context, id uuid.UUID) (*domain.AssemblyCard, error)
	FindByCardNumberFunc   func(ctx context.Context, cardNumber string) (*domain.AssemblyCard, error)
	FindAllFunc            func(ctx context.Context, filters *dto.CardFilters) ([]*domain.AssemblyCard, error)
	ExistsByCardNumberFunc func(ctx context.Context, cardNumber string) (bool, error)
	UpdateFunc             func(ctx context.Context, card *domain.AssemblyCard) error
	DeleteFunc             func(ctx context.Context, id uuid.UUID) error
	DeleteAllFunc          func(ctx context.Context) (int64, error)
	CountOverduePickFunc   func(ctx context.Context) (int64, error)
}

func (m *mockCardRepository) Create(ctx context.Context, card *domain.AssemblyCard) error {
	return m.CreateFunc(ctx, card)
}

func (m *mockCardRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.AssemblyCard, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockCardRepository) FindByCardNumber(ctx context.Context, cardNumber string) (*domain.AssemblyCard, error) {
	return m.FindByCardNumberFunc(ctx, cardNumber)
}

func (m *mockCardRepository) FindAll(ctx context.Context, filters *dto.CardFilters) ([]*domain.AssemblyCard, error) {
	return m.FindAllFunc(ctx, filters)
}

func (m *mockCardRepository) ExistsByCardNumber(ctx context.Context, cardNumber string) (bool, error) {
	return m.ExistsByCardNumberFunc(ctx, cardNumber)
}

func (m *mockCardRepository) Update(ctx context.Context, card *domain.AssemblyCard) error {
	return m.UpdateFunc(ctx, card)
}

func (m *mockCardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

func (m *mockCardRepository) DeleteAll(ctx context.Context) (int64, error) {
	return m.DeleteAllFunc(ctx)
}

func (m *mockCardRepository) CountOverduePick(ctx context.Context) (int64, error) {
	return m.CountOverduePickFunc(ctx)
}

// mockAndonRepository is a function-field mock of repository.AndonRepository
type mockAndonRepository struct {
	CreateFunc           func(ctx context.Context, issue *domain.AndonIssue) error
	FindByIDFunc         func(ctx context.Context, id uuid.UUID) (*domain.AndonIssue, error)
	FindAllFunc          func(ctx context.Context, status *domain.AndonStatus) ([]*domain.AndonIssue, error)
	FindByCardNumberFunc func(ctx context.Context, cardNumber string) ([]*domain.AndonIssue, error)
	UpdateFunc           func(ctx context.Context, issue *domain.AndonIssue) error
}

func (m *mockAndonRepository) Create(ctx context.Context, issue *domain.AndonIssue) error {
	return m.CreateFunc(ctx, issue)
}

func (m *mockAndonRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.AndonIssue, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockAndonRepository) FindAll(ctx context.Context, status *domain.AndonStatus) ([]*domain.AndonIssue, error) {
	return m.FindAllFunc(ctx, status)
}

func (m *mockAndonRepository) FindByCardNumber(ctx context.Context, cardNumber string) ([]*domain.AndonIssue, error) {
	return m.FindByCardNumberFunc(ctx, cardNumber)
}

func (m *mockAndonRepository) Update(ctx context.Context, issue *domain.AndonIssue) error {
	return m.UpdateFunc(ctx, issue)
}

// mockSMSClient records sent messages
type mockSMSClient struct {
	SendFunc func(ctx context.Context, msg client.SMSMessage) error
}

func (m *mockSMSClient) Send(ctx context.Context, msg client.SMSMessage) error {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, msg)
	}
	return nil
}
