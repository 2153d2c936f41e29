package domain

import (
	"time"

	"github.com/google/uuid"
)

// AndonStatus is the independent lifecycle of a help-request alert
type AndonStatus string

const (
	AndonUnresolved    AndonStatus = "unresolved"
	AndonBeingWorkedOn AndonStatus = "being_worked_on"
	AndonResolved      AndonStatus = "resolved"
)

// AndonIssue is an out-of-band help request raised against a card. The card
// link is the human-facing card number, not a foreign key.
type AndonIssue struct {
	BaseModel
	AssemblyCardNumber string      `gorm:"type:varchar(50);not null;index:idx_andon_issues_card_number" json:"assemblyCardNumber"`
	RaisedBy           uuid.UUID   `gorm:"type:uuid;not null;index:idx_andon_issues_raised_by" json:"raisedBy"`
	Station            string      `gorm:"type:varchar(100)" json:"station"`
	Reason             string      `gorm:"type:text;not null" json:"reason"`
	Status             AndonStatus `gorm:"type:varchar(30);not null;default:'unresolved';index:idx_andon_issues_status" json:"status"`
	ResolvedAt         *time.Time  `gorm:"type:timestamp" json:"resolvedAt,omitempty"`
}

// TableName specifies the table name for AndonIssue
func (AndonIssue) TableName() string {
	return "andon_issues"
}

// CanTransitionTo enforces the forward-only andon lifecycle
func (s AndonStatus) CanTransitionTo(next AndonStatus) bool {
	switch s {
	case AndonUnresolved:
		return next == AndonBeingWorkedOn || next == AndonResolved
	case AndonBeingWorkedOn:
		return next == AndonResolved
	default:
		return false
	}
}
