package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateAssemblerRequest registers a machine or work center
type CreateAssemblerRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=100"`
	MachineType   string `json:"machineType" binding:"omitempty,max=100"`
	MachineNumber string `json:"machineNumber" binding:"required,min=1,max=50"`
}

// UpdateAssemblerRequest is a partial assembler update
type UpdateAssemblerRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	MachineType *string `json:"machineType,omitempty" binding:"omitempty,max=100"`
	Status      *string `json:"status,omitempty" binding:"omitempty,oneof=available busy offline"`
}

// AssemblerResponse is the wire shape of an assembler
type AssemblerResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	MachineType   string    `json:"machineType"`
	MachineNumber string    `json:"machineNumber"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
