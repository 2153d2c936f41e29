package domain

import "github.com/google/uuid"

// IdeaThread is a continuous-improvement discussion topic
type IdeaThread struct {
	BaseModel
	Title     string        `gorm:"type:varchar(255);not null" json:"title"`
	AuthorID  uuid.UUID     `gorm:"type:uuid;not null;index:idx_idea_threads_author_id" json:"authorId"`
	Archived  bool          `gorm:"not null;default:false" json:"archived"`
	Messages  []IdeaMessage `gorm:"foreignKey:ThreadID;constraint:OnDelete:CASCADE" json:"messages,omitempty"`
}

// IdeaMessage is a single message inside an idea thread
type IdeaMessage struct {
	BaseModel
	ThreadID uuid.UUID `gorm:"type:uuid;not null;index:idx_idea_messages_thread_id" json:"threadId"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index:idx_idea_messages_user_id" json:"userId"`
	Content  string    `gorm:"type:text;not null" json:"content"`
}

// TableName specifies the table name for IdeaThread
func (IdeaThread) TableName() string {
	return "idea_threads"
}

// TableName specifies the table name for IdeaMessage
func (IdeaMessage) TableName() string {
	return "idea_messages"
}
