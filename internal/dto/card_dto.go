package dto

import (
	"time"

	"github.com/google/uuid"

	"assembly-line-api/internal/scheduling"
)

// CreateCardRequest is the request body for creating an assembly card.
// Cards always start in the scheduled status.
type CreateCardRequest struct {
	CardNumber              string     `json:"cardNumber" binding:"required,min=1,max=50"`
	Type                    string     `json:"type" binding:"required,oneof=M E S P KB DEAD_TIME D"`
	Phase                   int        `json:"phase" binding:"required,min=1,max=5"`
	Priority                string     `json:"priority" binding:"omitempty,oneof=A B C"`
	Duration                float64    `json:"duration" binding:"omitempty,min=0"`
	Position                int        `json:"position" binding:"omitempty,min=0"`
	AssignedTo              *uuid.UUID `json:"assignedTo,omitempty"`
	AssignedMaterialHandler *uuid.UUID `json:"assignedMaterialHandler,omitempty"`
	SubAssyArea             *string    `json:"subAssyArea,omitempty" binding:"omitempty,max=100"`
	PaintRouted             bool       `json:"paintRouted"`
	PickDueDate             *time.Time `json:"pickDueDate,omitempty"`
	Dependencies            []string   `json:"dependencies,omitempty"`
	AssemblySeq             string     `json:"assemblySeq,omitempty" binding:"omitempty,max=100"`
	MaterialSeq             string     `json:"materialSeq,omitempty" binding:"omitempty,max=100"`
	OperationSeq            string     `json:"operationSeq,omitempty" binding:"omitempty,max=100"`
}

// UpdateCardRequest is a partial update; every field is optional and a nil
// pointer leaves the stored value untouched. A non-nil Dependencies slice
// replaces the whole list after validation; a non-nil Status runs the state
// machine.
type UpdateCardRequest struct {
	Phase                   *int       `json:"phase,omitempty" binding:"omitempty,min=1,max=5"`
	Priority                *string    `json:"priority,omitempty" binding:"omitempty,oneof=A B C"`
	Duration                *float64   `json:"duration,omitempty" binding:"omitempty,min=0"`
	Position                *int       `json:"position,omitempty" binding:"omitempty,min=0"`
	Status                  *string    `json:"status,omitempty"`
	AssignedTo              *uuid.UUID `json:"assignedTo,omitempty"`
	AssignedMaterialHandler *uuid.UUID `json:"assignedMaterialHandler,omitempty"`
	SubAssyArea             *string    `json:"subAssyArea,omitempty" binding:"omitempty,max=100"`
	PaintRouted             *bool      `json:"paintRouted,omitempty"`
	PickDueDate             *time.Time `json:"pickDueDate,omitempty"`
	Dependencies            *[]string  `json:"dependencies,omitempty"`
	AssemblySeq             *string    `json:"assemblySeq,omitempty" binding:"omitempty,max=100"`
	MaterialSeq             *string    `json:"materialSeq,omitempty" binding:"omitempty,max=100"`
	OperationSeq            *string    `json:"operationSeq,omitempty" binding:"omitempty,max=100"`
}

// TransitionRequest asks for an explicit status transition
type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
}

// MoveCardRequest is the drag-and-drop reschedule payload
type MoveCardRequest struct {
	Position   int        `json:"position" binding:"min=0"`
	Phase      *int       `json:"phase,omitempty" binding:"omitempty,min=1,max=5"`
	AssignedTo *uuid.UUID `json:"assignedTo,omitempty"`
}

// ValidateDependenciesRequest is the dry-run validation payload
type ValidateDependenciesRequest struct {
	CardNumber   string   `json:"cardNumber" binding:"required"`
	Dependencies []string `json:"dependencies" binding:"required"`
}

// CardFilters narrows the card listing
type CardFilters struct {
	Phase      *int       `form:"phase" binding:"omitempty,min=1,max=5"`
	Status     *string    `form:"status"`
	Type       *string    `form:"type"`
	AssignedTo *uuid.UUID `form:"assignedTo"`
}

// CardResponse is the wire shape of an assembly card
type CardResponse struct {
	ID                      uuid.UUID  `json:"id"`
	CardNumber              string     `json:"cardNumber"`
	Type                    string     `json:"type"`
	Phase                   int        `json:"phase"`
	Priority                string     `json:"priority"`
	Duration                float64    `json:"duration"`
	Position                int        `json:"position"`
	Status                  string     `json:"status"`
	AssignedTo              *uuid.UUID `json:"assignedTo,omitempty"`
	AssignedMaterialHandler *uuid.UUID `json:"assignedMaterialHandler,omitempty"`
	SubAssyArea             *string    `json:"subAssyArea,omitempty"`
	PaintRouted             bool       `json:"paintRouted"`
	StartTime               *time.Time `json:"startTime,omitempty"`
	EndTime                 *time.Time `json:"endTime,omitempty"`
	PickingStartTime        *time.Time `json:"pickingStartTime,omitempty"`
	PickDueDate             *time.Time `json:"pickDueDate,omitempty"`
	PhaseClearedToBuildDate *time.Time `json:"phaseClearedToBuildDate,omitempty"`
	ElapsedTime             int64      `json:"elapsedTime"`
	ActualDuration          float64    `json:"actualDuration"`
	Dependencies            []string   `json:"dependencies"`
	AssemblySeq             string     `json:"assemblySeq,omitempty"`
	MaterialSeq             string     `json:"materialSeq,omitempty"`
	OperationSeq            string     `json:"operationSeq,omitempty"`
	CreatedAt               time.Time  `json:"createdAt"`
	UpdatedAt               time.Time  `json:"updatedAt"`
}

// ValidationResponse wraps the validator verdict for the API
type ValidationResponse struct {
	CardNumber string               `json:"cardNumber"`
	Valid      bool                 `json:"valid"`
	Findings   []scheduling.Finding `json:"findings"`
}

// BulkResetResponse reports the partial-success outcome of a bulk reset
type BulkResetResponse struct {
	SuccessCount int `json:"successCount"`
	TotalCount   int `json:"totalCount"`
}

// BulkDeleteResponse reports how many cards a bulk delete removed
type BulkDeleteResponse struct {
	DeletedCount int `json:"deletedCount"`
}
