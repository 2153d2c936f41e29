package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CardType classifies an assembly card
type CardType string

const (
	CardTypeM        CardType = "M"
	CardTypeE        CardType = "E"
	CardTypeS        CardType = "S"
	CardTypeP        CardType = "P"
	CardTypeKB       CardType = "KB"
	CardTypeDeadTime CardType = "DEAD_TIME"
	CardTypeD        CardType = "D"
)

// CardStatus represents the lifecycle state of an assembly card
type CardStatus string

const (
	StatusScheduled        CardStatus = "scheduled"
	StatusClearedForPicking CardStatus = "cleared_for_picking"
	StatusPicking          CardStatus = "picking"
	StatusDeliveredToPaint CardStatus = "delivered_to_paint"
	StatusReadyForBuild    CardStatus = "ready_for_build"
	StatusAssembling       CardStatus = "assembling"
	StatusCompleted        CardStatus = "completed"
	StatusBlocked          CardStatus = "blocked"
	StatusPaused           CardStatus = "paused"
)

// CardPriority is the scheduling priority bucket
type CardPriority string

const (
	PriorityA CardPriority = "A"
	PriorityB CardPriority = "B"
	PriorityC CardPriority = "C"
)

// ValidCardTypes lists every accepted card type
var ValidCardTypes = []CardType{
	CardTypeM, CardTypeE, CardTypeS, CardTypeP, CardTypeKB, CardTypeDeadTime, CardTypeD,
}

// ValidStatuses lists every accepted card status
var ValidStatuses = []CardStatus{
	StatusScheduled, StatusClearedForPicking, StatusPicking, StatusDeliveredToPaint,
	StatusReadyForBuild, StatusAssembling, StatusCompleted, StatusBlocked, StatusPaused,
}

// IsValidStatus reports whether s is a member of the status enumeration
func IsValidStatus(s CardStatus) bool {
	for _, v := range ValidStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// IsValidCardType reports whether t is a member of the type enumeration
func IsValidCardType(t CardType) bool {
	for _, v := range ValidCardTypes {
		if v == t {
			return true
		}
	}
	return false
}

// RequiresSubAssyArea reports whether the card type carries a sub-assembly area
func (t CardType) RequiresSubAssyArea() bool {
	return t == CardTypeS || t == CardTypeP
}

// AssemblyCard is a unit of work tracked through the production pipeline
type AssemblyCard struct {
	BaseModel
	CardNumber string       `gorm:"type:varchar(50);not null;uniqueIndex:uq_assembly_cards_card_number" json:"cardNumber"`
	Type       CardType     `gorm:"type:varchar(20);not null" json:"type"`
	Phase      int          `gorm:"type:int;not null;default:1;index:idx_assembly_cards_phase" json:"phase"`
	Priority   CardPriority `gorm:"type:varchar(5);not null;default:'B'" json:"priority"`
	Duration   float64      `gorm:"type:numeric(10,2);not null;default:0" json:"duration"`
	Position   int          `gorm:"type:int;not null;default:0;index:idx_assembly_cards_position" json:"position"`
	Status     CardStatus   `gorm:"type:varchar(30);not null;default:'scheduled';index:idx_assembly_cards_status" json:"status"`

	AssignedTo              *uuid.UUID `gorm:"type:uuid;index:idx_assembly_cards_assigned_to" json:"assignedTo"`
	AssignedMaterialHandler *uuid.UUID `gorm:"type:uuid;index:idx_assembly_cards_material_handler" json:"assignedMaterialHandler"`

	SubAssyArea *string `gorm:"type:varchar(100)" json:"subAssyArea,omitempty"`

	StartTime               *time.Time `gorm:"type:timestamp" json:"startTime,omitempty"`
	EndTime                 *time.Time `gorm:"type:timestamp" json:"endTime,omitempty"`
	PickingStartTime        *time.Time `gorm:"type:timestamp" json:"pickingStartTime,omitempty"`
	PickDueDate             *time.Time `gorm:"type:timestamp;index:idx_assembly_cards_pick_due" json:"pickDueDate,omitempty"`
	PhaseClearedToBuildDate *time.Time `gorm:"type:timestamp" json:"phaseClearedToBuildDate,omitempty"`

	// ElapsedTime accumulates build seconds across pause/resume cycles.
	// LastResumeTime anchors the segment currently running, so resuming
	// never resets StartTime.
	ElapsedTime    int64      `gorm:"type:bigint;not null;default:0" json:"elapsedTime"`
	LastResumeTime *time.Time `gorm:"type:timestamp" json:"lastResumeTime,omitempty"`
	ActualDuration float64    `gorm:"type:numeric(10,2);not null;default:0" json:"actualDuration"`

	// StatusBeforeHold remembers where a blocked/paused card returns to.
	StatusBeforeHold *CardStatus `gorm:"type:varchar(30)" json:"statusBeforeHold,omitempty"`

	// PaintRouted cards pass through delivered_to_paint before ready_for_build.
	PaintRouted bool `gorm:"not null;default:false" json:"paintRouted"`

	// Dependencies is a JSON array of card numbers that must advance first.
	Dependencies datatypes.JSON `gorm:"type:jsonb" json:"dependencies"`

	// Opaque ERP deep-link fragments. Free text, never parsed.
	AssemblySeq  string `gorm:"type:varchar(100)" json:"assemblySeq,omitempty"`
	MaterialSeq  string `gorm:"type:varchar(100)" json:"materialSeq,omitempty"`
	OperationSeq string `gorm:"type:varchar(100)" json:"operationSeq,omitempty"`

	Assembler *Assembler `gorm:"foreignKey:AssignedTo" json:"assembler,omitempty"`
}

// TableName specifies the table name for AssemblyCard
func (AssemblyCard) TableName() string {
	return "assembly_cards"
}

// DependencyNumbers decodes the stored dependency list. A missing or empty
// column yields an empty slice.
func (c *AssemblyCard) DependencyNumbers() []string {
	if len(c.Dependencies) == 0 {
		return nil
	}
	var deps []string
	if err := json.Unmarshal(c.Dependencies, &deps); err != nil {
		return nil
	}
	return deps
}

// SetDependencyNumbers encodes deps into the JSON column
func (c *AssemblyCard) SetDependencyNumbers(deps []string) error {
	if deps == nil {
		deps = []string{}
	}
	raw, err := json.Marshal(deps)
	if err != nil {
		return err
	}
	c.Dependencies = raw
	return nil
}
