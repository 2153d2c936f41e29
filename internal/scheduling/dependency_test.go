package scheduling

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assembly-line-api/internal/domain"
)

func cardAt(number string, assembler *uuid.UUID, position int) *domain.AssemblyCard {
	return &domain.AssemblyCard{
		CardNumber: number,
		Type:       domain.CardTypeM,
		Status:     domain.StatusScheduled,
		AssignedTo: assembler,
		Position:   position,
	}
}

func findingKinds(r ValidationResult) []FindingKind {
	kinds := make([]FindingKind, 0, len(r.Findings))
	for _, f := range r.Findings {
		kinds = append(kinds, f.Kind)
	}
	return kinds
}

func TestValidateDependencies_SelfReference(t *testing.T) {
	a1 := cardAt("A1", nil, 1)

	result := ValidateDependencies("A1", []string{"A1"}, []*domain.AssemblyCard{a1})

	assert.False(t, result.Valid)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, FindingSelfReference, result.Findings[0].Kind)
	assert.Equal(t, "A1", result.Findings[0].CardNumber)
}

func TestValidateDependencies_UnknownDependency(t *testing.T) {
	a1 := cardAt("A1", nil, 1)

	result := ValidateDependencies("A1", []string{"ZZZ"}, []*domain.AssemblyCard{a1})

	assert.False(t, result.Valid)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, FindingUnknownDependency, result.Findings[0].Kind)
	assert.Equal(t, "ZZZ", result.Findings[0].CardNumber)
}

func TestValidateDependencies_SameLanePositionConflict(t *testing.T) {
	assemblerX := uuid.New()
	a1 := cardAt("A1", &assemblerX, 5)
	a2 := cardAt("A2", &assemblerX, 7)

	result := ValidateDependencies("A1", []string{"A2"}, []*domain.AssemblyCard{a1, a2})
	assert.False(t, result.Valid)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, FindingPositionConflict, result.Findings[0].Kind)

	// Moving the dependency earlier in the lane resolves the conflict.
	a2.Position = 3
	result = ValidateDependencies("A1", []string{"A2"}, []*domain.AssemblyCard{a1, a2})
	assert.True(t, result.Valid)
	assert.Empty(t, result.Findings)
}

func TestValidateDependencies_CrossLaneTimingConflict(t *testing.T) {
	assemblerX := uuid.New()
	assemblerY := uuid.New()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	a1 := cardAt("A1", &assemblerX, 1)
	start := day.Add(10 * time.Hour)
	a1.StartTime = &start

	a2 := cardAt("A2", &assemblerY, 1)
	end := day.Add(11 * time.Hour)
	a2.EndTime = &end

	result := ValidateDependencies("A1", []string{"A2"}, []*domain.AssemblyCard{a1, a2})
	assert.False(t, result.Valid)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, FindingTimingConflict, result.Findings[0].Kind)

	// A dependency finishing before the subject starts is fine.
	earlier := day.Add(9 * time.Hour)
	a2.EndTime = &earlier
	result = ValidateDependencies("A1", []string{"A2"}, []*domain.AssemblyCard{a1, a2})
	assert.True(t, result.Valid)
}

func TestValidateDependencies_CrossLaneWithoutTimestampsPasses(t *testing.T) {
	assemblerX := uuid.New()
	assemblerY := uuid.New()
	a1 := cardAt("A1", &assemblerX, 1)
	a2 := cardAt("A2", &assemblerY, 1)

	result := ValidateDependencies("A1", []string{"A2"}, []*domain.AssemblyCard{a1, a2})

	assert.True(t, result.Valid)
	assert.Empty(t, result.Findings)
}

func TestValidateDependencies_BlockedDependencyIsAdvisory(t *testing.T) {
	assemblerX := uuid.New()
	assemblerY := uuid.New()
	a1 := cardAt("A1", &assemblerX, 5)
	a2 := cardAt("A2", &assemblerY, 1)
	a2.Status = domain.StatusBlocked

	result := ValidateDependencies("A1", []string{"A2"}, []*domain.AssemblyCard{a1, a2})

	assert.True(t, result.Valid, "blocked alone must not invalidate")
	require.Len(t, result.Findings, 1)
	assert.Equal(t, FindingBlockedDependency, result.Findings[0].Kind)
}

func TestValidateDependencies_AccumulatesAllFindings(t *testing.T) {
	assemblerX := uuid.New()
	a1 := cardAt("A1", &assemblerX, 2)
	a2 := cardAt("A2", &assemblerX, 9)
	a3 := cardAt("A3", &assemblerX, 1)
	a3.Status = domain.StatusBlocked

	result := ValidateDependencies("A1", []string{"A1", "ZZZ", "A2", "A3"}, []*domain.AssemblyCard{a1, a2, a3})

	assert.False(t, result.Valid)
	assert.Equal(t, []FindingKind{
		FindingSelfReference,
		FindingUnknownDependency,
		FindingPositionConflict,
		FindingBlockedDependency,
	}, findingKinds(result))
}

func TestValidateDependencies_EmptyCandidatesIsValid(t *testing.T) {
	a1 := cardAt("A1", nil, 1)

	result := ValidateDependencies("A1", nil, []*domain.AssemblyCard{a1})

	assert.True(t, result.Valid)
	assert.Empty(t, result.Findings)
}

func TestValidateDependencies_EqualPositionSameLaneConflicts(t *testing.T) {
	assemblerX := uuid.New()
	a1 := cardAt("A1", &assemblerX, 5)
	a2 := cardAt("A2", &assemblerX, 5)

	result := ValidateDependencies("A1", []string{"A2"}, []*domain.AssemblyCard{a1, a2})

	assert.False(t, result.Valid)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, FindingPositionConflict, result.Findings[0].Kind)
}

func TestValidateDependencies_UnassignedLanesSkipPositionCheck(t *testing.T) {
	// Cards without an assembler are not in any lane, so ordering does not
	// apply even if positions look inverted.
	a1 := cardAt("A1", nil, 2)
	a2 := cardAt("A2", nil, 9)

	result := ValidateDependencies("A1", []string{"A2"}, []*domain.AssemblyCard{a1, a2})

	assert.True(t, result.Valid)
}
