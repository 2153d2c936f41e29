package scheduling

import (
	"assembly-line-api/internal/domain"
)

// FindingKind classifies a dependency validation finding
type FindingKind string

const (
	FindingSelfReference     FindingKind = "SELF_REFERENCE"
	FindingUnknownDependency FindingKind = "UNKNOWN_DEPENDENCY"
	FindingPositionConflict  FindingKind = "POSITION_CONFLICT"
	FindingTimingConflict    FindingKind = "TIMING_CONFLICT"
	FindingBlockedDependency FindingKind = "BLOCKED_DEPENDENCY"
)

// Finding is a single validation issue against one dependency entry
type Finding struct {
	Kind       FindingKind `json:"kind"`
	CardNumber string      `json:"cardNumber"`
	Message    string      `json:"message"`
}

// Fatal reports whether the finding invalidates the update. Blocked
// dependencies are an advisory signal only, since no timing data may yet
// exist for them.
func (f Finding) Fatal() bool {
	return f.Kind != FindingBlockedDependency
}

// ValidationResult is the full verdict for a candidate dependency list
type ValidationResult struct {
	Valid    bool      `json:"valid"`
	Findings []Finding `json:"findings"`
}

// ValidateDependencies checks a candidate dependency list for cardNumber
// against the full card snapshot. It is a pure function of its inputs and
// accumulates every finding rather than stopping at the first, so the caller
// can surface all issues in one pass.
func ValidateDependencies(cardNumber string, candidates []string, allCards []*domain.AssemblyCard) ValidationResult {
	byNumber := make(map[string]*domain.AssemblyCard, len(allCards))
	for _, c := range allCards {
		byNumber[c.CardNumber] = c
	}
	subject := byNumber[cardNumber]

	result := ValidationResult{Valid: true, Findings: []Finding{}}

	for _, depNumber := range candidates {
		if depNumber == cardNumber {
			result.Findings = append(result.Findings, Finding{
				Kind:       FindingSelfReference,
				CardNumber: depNumber,
				Message:    "a card cannot depend on itself",
			})
			continue
		}

		dep, ok := byNumber[depNumber]
		if !ok {
			result.Findings = append(result.Findings, Finding{
				Kind:       FindingUnknownDependency,
				CardNumber: depNumber,
				Message:    "no card with this number exists",
			})
			continue
		}

		// Ordering and timing checks need the subject card. When the caller
		// passes an unknown subject, only reference checks apply.
		if subject != nil {
			if sameAssembler(subject, dep) {
				if dep.Position >= subject.Position {
					result.Findings = append(result.Findings, Finding{
						Kind:       FindingPositionConflict,
						CardNumber: depNumber,
						Message:    "dependency is scheduled later in the same lane",
					})
				}
			} else if dep.EndTime != nil && subject.StartTime != nil && dep.EndTime.After(*subject.StartTime) {
				result.Findings = append(result.Findings, Finding{
					Kind:       FindingTimingConflict,
					CardNumber: depNumber,
					Message:    "dependency finishes after this card starts",
				})
			}
		}

		if dep.Status == domain.StatusBlocked {
			result.Findings = append(result.Findings, Finding{
				Kind:       FindingBlockedDependency,
				CardNumber: depNumber,
				Message:    "dependency is currently blocked",
			})
		}
	}

	for _, f := range result.Findings {
		if f.Fatal() {
			result.Valid = false
			break
		}
	}
	return result
}

// sameAssembler reports whether both cards are assigned to the same lane
func sameAssembler(a, b *domain.AssemblyCard) bool {
	return a.AssignedTo != nil && b.AssignedTo != nil && *a.AssignedTo == *b.AssignedTo
}
