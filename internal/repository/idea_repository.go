package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"assembly-line-api/internal/domain"
)

// IdeaRepository defines the interface for idea thread data access
type IdeaRepository interface {
	CreateThread(ctx context.Context, thread *domain.IdeaThread) error
	FindThreadByID(ctx context.Context, id uuid.UUID) (*domain.IdeaThread, error)
	FindThreads(ctx context.Context) ([]*domain.IdeaThread, error)
	CountMessages(ctx context.Context, threadID uuid.UUID) (int64, error)
	CreateMessage(ctx context.Context, message *domain.IdeaMessage) error
	FindMessagesByThreadID(ctx context.Context, threadID uuid.UUID) ([]*domain.IdeaMessage, error)
}

// ideaRepositoryImpl is the GORM implementation of IdeaRepository
type ideaRepositoryImpl struct {
	db *gorm.DB
}

// NewIdeaRepository creates a new instance of IdeaRepository
func NewIdeaRepository(db *gorm.DB) IdeaRepository {
	return &ideaRepositoryImpl{db: db}
}

// CreateThread creates a new idea thread
func (r *ideaRepositoryImpl) CreateThread(ctx context.Context, thread *domain.IdeaThread) error {
	if err := r.db.WithContext(ctx).Create(thread).Error; err != nil {
		return err
	}
	return nil
}

// FindThreadByID finds a thread by ID
func (r *ideaRepositoryImpl) FindThreadByID(ctx context.Context, id uuid.UUID) (*domain.IdeaThread, error) {
	var thread domain.IdeaThread
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&thread).Error; err != nil {
		return nil, err
	}
	return &thread, nil
}

// FindThreads returns all threads newest first
func (r *ideaRepositoryImpl) FindThreads(ctx context.Context) ([]*domain.IdeaThread, error) {
	var threads []*domain.IdeaThread
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&threads).Error; err != nil {
		return nil, err
	}
	return threads, nil
}

// CountMessages counts the messages in a thread
func (r *ideaRepositoryImpl) CountMessages(ctx context.Context, threadID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.IdeaMessage{}).
		Where("thread_id = ?", threadID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CreateMessage appends a message to a thread
func (r *ideaRepositoryImpl) CreateMessage(ctx context.Context, message *domain.IdeaMessage) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return err
	}
	return nil
}

// FindMessagesByThreadID returns a thread's messages oldest first
func (r *ideaRepositoryImpl) FindMessagesByThreadID(ctx context.Context, threadID uuid.UUID) ([]*domain.IdeaMessage, error) {
	var messages []*domain.IdeaMessage
	if err := r.db.WithContext(ctx).
		Where("thread_id = ?", threadID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
