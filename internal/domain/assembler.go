package domain

// AssemblerStatus is informational only and never enforced against card
// assignment.
type AssemblerStatus string

const (
	AssemblerAvailable AssemblerStatus = "available"
	AssemblerBusy      AssemblerStatus = "busy"
	AssemblerOffline   AssemblerStatus = "offline"
)

// Assembler represents a machine or work-center a card can be assigned to
type Assembler struct {
	BaseModel
	Name          string          `gorm:"type:varchar(100);not null" json:"name"`
	MachineType   string          `gorm:"type:varchar(100)" json:"machineType"`
	MachineNumber string          `gorm:"type:varchar(50);uniqueIndex:uq_assemblers_machine_number" json:"machineNumber"`
	Status        AssemblerStatus `gorm:"type:varchar(20);not null;default:'available'" json:"status"`
}

// TableName specifies the table name for Assembler
func (Assembler) TableName() string {
	return "assemblers"
}
