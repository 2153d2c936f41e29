package dto

import (
	"time"

	"github.com/google/uuid"
)

// RaiseAndonRequest raises a help request against a card
type RaiseAndonRequest struct {
	AssemblyCardNumber string `json:"assemblyCardNumber" binding:"required,min=1,max=50"`
	Station            string `json:"station" binding:"omitempty,max=100"`
	Reason             string `json:"reason" binding:"required,min=1"`
}

// UpdateAndonStatusRequest moves an andon issue through its lifecycle
type UpdateAndonStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=unresolved being_worked_on resolved"`
}

// AndonResponse is the wire shape of an andon issue
type AndonResponse struct {
	ID                 uuid.UUID  `json:"id"`
	AssemblyCardNumber string     `json:"assemblyCardNumber"`
	RaisedBy           uuid.UUID  `json:"raisedBy"`
	Station            string     `json:"station"`
	Reason             string     `json:"reason"`
	Status             string     `json:"status"`
	ResolvedAt         *time.Time `json:"resolvedAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}
