package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"assembly-line-api/internal/domain"
	"assembly-line-api/internal/dto"
	"assembly-line-api/internal/repository"
	"assembly-line-api/internal/response"
	"assembly-line-api/internal/ws"
)

// IdeaService defines the interface for improvement-idea discussions
type IdeaService interface {
	CreateThread(ctx context.Context, authorID uuid.UUID, req *dto.CreateIdeaThreadRequest) (*dto.IdeaThreadResponse, error)
	ListThreads(ctx context.Context) ([]*dto.IdeaThreadResponse, error)
	GetThread(ctx context.Context, threadID uuid.UUID) (*dto.IdeaThreadResponse, error)
	PostMessage(ctx context.Context, threadID uuid.UUID, userID uuid.UUID, req *dto.PostIdeaMessageRequest) (*dto.IdeaMessageResponse, error)
	ListMessages(ctx context.Context, threadID uuid.UUID) ([]*dto.IdeaMessageResponse, error)
}

// ideaServiceImpl is the implementation of IdeaService
type ideaServiceImpl struct {
	ideaRepo repository.IdeaRepository
	hub      *ws.Hub
	logger   *zap.Logger
}

// NewIdeaService creates a new instance of IdeaService
func NewIdeaService(ideaRepo repository.IdeaRepository, hub *ws.Hub, logger *zap.Logger) IdeaService {
	return &ideaServiceImpl{
		ideaRepo: ideaRepo,
		hub:      hub,
		logger:   logger,
	}
}

// CreateThread opens a new discussion topic
func (s *ideaServiceImpl) CreateThread(ctx context.Context, authorID uuid.UUID, req *dto.CreateIdeaThreadRequest) (*dto.IdeaThreadResponse, error) {
	thread := &domain.IdeaThread{
		Title:    req.Title,
		AuthorID: authorID,
	}
	if err := s.ideaRepo.CreateThread(ctx, thread); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create thread", err.Error())
	}

	s.logger.Info("Idea thread created",
		zap.String("title", thread.Title),
		zap.String("author_id", authorID.String()),
	)
	return s.toThreadResponse(ctx, thread), nil
}

// ListThreads returns every thread newest first
func (s *ideaServiceImpl) ListThreads(ctx context.Context) ([]*dto.IdeaThreadResponse, error) {
	threads, err := s.ideaRepo.FindThreads(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch threads", err.Error())
	}
	responses := make([]*dto.IdeaThreadResponse, len(threads))
	for i, thread := range threads {
		responses[i] = s.toThreadResponse(ctx, thread)
	}
	return responses, nil
}

// GetThread retrieves a single thread
func (s *ideaServiceImpl) GetThread(ctx context.Context, threadID uuid.UUID) (*dto.IdeaThreadResponse, error) {
	thread, err := s.findThread(ctx, threadID)
	if err != nil {
		return nil, err
	}
	return s.toThreadResponse(ctx, thread), nil
}

// PostMessage adds a message to a thread and pushes it to connected terminals
func (s *ideaServiceImpl) PostMessage(ctx context.Context, threadID uuid.UUID, userID uuid.UUID, req *dto.PostIdeaMessageRequest) (*dto.IdeaMessageResponse, error) {
	if _, err := s.findThread(ctx, threadID); err != nil {
		return nil, err
	}

	message := &domain.IdeaMessage{
		ThreadID: threadID,
		UserID:   userID,
		Content:  req.Content,
	}
	if err := s.ideaRepo.CreateMessage(ctx, message); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to post message", err.Error())
	}

	resp := toMessageResponse(message)
	if s.hub != nil {
		s.hub.Broadcast(ws.EventIdeaMessage, resp)
	}
	return resp, nil
}

// ListMessages returns a thread's messages oldest first
func (s *ideaServiceImpl) ListMessages(ctx context.Context, threadID uuid.UUID) ([]*dto.IdeaMessageResponse, error) {
	if _, err := s.findThread(ctx, threadID); err != nil {
		return nil, err
	}

	messages, err := s.ideaRepo.FindMessagesByThreadID(ctx, threadID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch messages", err.Error())
	}
	responses := make([]*dto.IdeaMessageResponse, len(messages))
	for i, message := range messages {
		responses[i] = toMessageResponse(message)
	}
	return responses, nil
}

func (s *ideaServiceImpl) findThread(ctx context.Context, threadID uuid.UUID) (*domain.IdeaThread, error) {
	thread, err := s.ideaRepo.FindThreadByID(ctx, threadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Thread not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch thread", err.Error())
	}
	return thread, nil
}

func (s *ideaServiceImpl) toThreadResponse(ctx context.Context, thread *domain.IdeaThread) *dto.IdeaThreadResponse {
	count, err := s.ideaRepo.CountMessages(ctx, thread.ID)
	if err != nil {
		s.logger.Warn("Failed to count thread messages", zap.Error(err))
	}
	return &dto.IdeaThreadResponse{
		ID:           thread.ID,
		Title:        thread.Title,
		AuthorID:     thread.AuthorID,
		Archived:     thread.Archived,
		MessageCount: int(count),
		CreatedAt:    thread.CreatedAt,
		UpdatedAt:    thread.UpdatedAt,
	}
}

func toMessageResponse(message *domain.IdeaMessage) *dto.IdeaMessageResponse {
	return &dto.IdeaMessageResponse{
		ID:        message.ID,
		ThreadID:  message.ThreadID,
		UserID:    message.UserID,
		Content:   message.Content,
		CreatedAt: message.CreatedAt,
	}
}
