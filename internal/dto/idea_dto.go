package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateIdeaThreadRequest opens a continuous-improvement discussion
type CreateIdeaThreadRequest struct {
	Title string `json:"title" binding:"required,min=2,max=255"`
}

// PostIdeaMessageRequest adds a message to a thread
type PostIdeaMessageRequest struct {
	Content string `json:"content" binding:"required,min=1"`
}

// IdeaThreadResponse is the wire shape of an idea thread
type IdeaThreadResponse struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	AuthorID     uuid.UUID `json:"authorId"`
	Archived     bool      `json:"archived"`
	MessageCount int       `json:"messageCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// IdeaMessageResponse is the wire shape of a thread message
type IdeaMessageResponse struct {
	ID        uuid.UUID `json:"id"`
	ThreadID  uuid.UUID `json:"threadId"`
	UserID    uuid.UUID `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
