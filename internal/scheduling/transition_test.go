package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assembly-line-api/internal/domain"
)

func newCard(number string, status domain.CardStatus) *domain.AssemblyCard {
	return &domain.AssemblyCard{
		CardNumber: number,
		Type:       domain.CardTypeM,
		Phase:      1,
		Priority:   domain.PriorityB,
		Status:     status,
	}
}

func TestApplyTransition_UnknownStatus(t *testing.T) {
	card := newCard("A1", domain.StatusScheduled)

	err := ApplyTransition(card, domain.CardStatus("shipped"), time.Now(), DefaultPolicy())

	var unknownErr *UnknownStatusError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, domain.CardStatus("shipped"), unknownErr.Status)
	assert.Equal(t, domain.StatusScheduled, card.Status)
}

func TestApplyTransition_HappyPath(t *testing.T) {
	card := newCard("A1", domain.StatusScheduled)
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	policy := DefaultPolicy()

	steps := []domain.CardStatus{
		domain.StatusClearedForPicking,
		domain.StatusPicking,
		domain.StatusReadyForBuild,
		domain.StatusAssembling,
		domain.StatusCompleted,
	}
	for _, next := range steps {
		now = now.Add(30 * time.Minute)
		require.NoError(t, ApplyTransition(card, next, now, policy), "transition to %s", next)
	}

	assert.Equal(t, domain.StatusCompleted, card.Status)
	require.NotNil(t, card.PickingStartTime)
	require.NotNil(t, card.PhaseClearedToBuildDate)
	require.NotNil(t, card.StartTime)
	require.NotNil(t, card.EndTime)
	assert.Equal(t, int64(1800), card.ElapsedTime)
	// 0.5h rounds to 0.5 but the booked minimum is 1 hour.
	assert.Equal(t, 1.0, card.ActualDuration)
}

func TestApplyTransition_PaintRoutedCardPassesThroughPaint(t *testing.T) {
	card := newCard("P7", domain.StatusPicking)
	card.PaintRouted = true
	now := time.Now()

	err := ApplyTransition(card, domain.StatusReadyForBuild, now, DefaultPolicy())
	var invalidErr *InvalidTransitionError
	require.ErrorAs(t, err, &invalidErr)

	require.NoError(t, ApplyTransition(card, domain.StatusDeliveredToPaint, now, DefaultPolicy()))
	require.NoError(t, ApplyTransition(card, domain.StatusReadyForBuild, now, DefaultPolicy()))
	assert.Equal(t, domain.StatusReadyForBuild, card.Status)
}

func TestApplyTransition_AssemblingRequiresReadyForBuild(t *testing.T) {
	statuses := []domain.CardStatus{
		domain.StatusScheduled,
		domain.StatusClearedForPicking,
		domain.StatusPicking,
		domain.StatusDeliveredToPaint,
		domain.StatusCompleted,
	}
	for _, from := range statuses {
		card := newCard("A1", from)
		err := ApplyTransition(card, domain.StatusAssembling, time.Now(), DefaultPolicy())
		var invalidErr *InvalidTransitionError
		require.ErrorAs(t, err, &invalidErr, "from %s", from)
		assert.Equal(t, from, card.Status, "card must remain in %s", from)
	}
}

func TestApplyTransition_StartTimeSetOnceOnAssembling(t *testing.T) {
	card := newCard("A1", domain.StatusReadyForBuild)
	firstStart := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	policy := DefaultPolicy()

	require.NoError(t, ApplyTransition(card, domain.StatusAssembling, firstStart, policy))
	require.NotNil(t, card.StartTime)
	assert.Equal(t, firstStart, *card.StartTime)

	// Pause and resume later; StartTime must survive.
	pauseAt := firstStart.Add(30 * time.Minute)
	require.NoError(t, ApplyTransition(card, domain.StatusPaused, pauseAt, policy))
	assert.Equal(t, int64(1800), card.ElapsedTime)

	resumeAt := pauseAt.Add(2 * time.Hour)
	require.NoError(t, ApplyTransition(card, domain.StatusAssembling, resumeAt, policy))
	assert.Equal(t, firstStart, *card.StartTime)
	assert.Equal(t, int64(1800), card.ElapsedTime)
}

func TestApplyTransition_PauseResumeAccumulatesElapsed(t *testing.T) {
	card := newCard("A1", domain.StatusReadyForBuild)
	policy := DefaultPolicy()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	require.NoError(t, ApplyTransition(card, domain.StatusAssembling, start, policy))
	require.NoError(t, ApplyTransition(card, domain.StatusPaused, start.Add(30*time.Minute), policy))
	require.NoError(t, ApplyTransition(card, domain.StatusAssembling, start.Add(90*time.Minute), policy))
	require.NoError(t, ApplyTransition(card, domain.StatusCompleted, start.Add(120*time.Minute), policy))

	// 1800s before the pause plus 1800s after equals exactly one hour.
	assert.Equal(t, int64(3600), card.ElapsedTime)
	assert.Equal(t, 1.0, card.ActualDuration)
}

func TestApplyTransition_CompletingTwiceIsIdempotent(t *testing.T) {
	card := newCard("A1", domain.StatusReadyForBuild)
	policy := DefaultPolicy()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	require.NoError(t, ApplyTransition(card, domain.StatusAssembling, start, policy))
	require.NoError(t, ApplyTransition(card, domain.StatusCompleted, start.Add(3*time.Hour), policy))

	startTime := *card.StartTime
	endTime := *card.EndTime
	duration := card.ActualDuration
	elapsed := card.ElapsedTime

	require.NoError(t, ApplyTransition(card, domain.StatusCompleted, start.Add(5*time.Hour), policy))

	assert.Equal(t, startTime, *card.StartTime)
	assert.Equal(t, endTime, *card.EndTime)
	assert.Equal(t, duration, card.ActualDuration)
	assert.Equal(t, elapsed, card.ElapsedTime)
}

func TestApplyTransition_BlockedReturnsToPriorState(t *testing.T) {
	card := newCard("A1", domain.StatusReadyForBuild)
	policy := DefaultPolicy()
	now := time.Now()

	require.NoError(t, ApplyTransition(card, domain.StatusBlocked, now, policy))
	require.NotNil(t, card.StatusBeforeHold)
	assert.Equal(t, domain.StatusReadyForBuild, *card.StatusBeforeHold)

	// Jumping past the stored prior state is not allowed.
	err := ApplyTransition(card, domain.StatusCompleted, now, policy)
	var invalidErr *InvalidTransitionError
	require.ErrorAs(t, err, &invalidErr)

	require.NoError(t, ApplyTransition(card, domain.StatusReadyForBuild, now, policy))
	assert.Equal(t, domain.StatusReadyForBuild, card.Status)
	assert.Nil(t, card.StatusBeforeHold)
}

func TestApplyTransition_DeadTimeSkipsBuildSemantics(t *testing.T) {
	card := newCard("DT1", domain.StatusScheduled)
	card.Type = domain.CardTypeDeadTime
	policy := DefaultPolicy()
	now := time.Now()

	err := ApplyTransition(card, domain.StatusClearedForPicking, now, policy)
	var invalidErr *InvalidTransitionError
	require.ErrorAs(t, err, &invalidErr)

	require.NoError(t, ApplyTransition(card, domain.StatusCompleted, now, policy))
	assert.Equal(t, domain.StatusCompleted, card.Status)
	require.NotNil(t, card.EndTime)
	assert.Nil(t, card.StartTime)
	assert.Zero(t, card.ActualDuration)

	// DEAD_TIME cards may flip back.
	require.NoError(t, ApplyTransition(card, domain.StatusScheduled, now, policy))
	assert.Equal(t, domain.StatusScheduled, card.Status)
	assert.Nil(t, card.EndTime)
}

func TestApplyTransition_MinimumDurationFloor(t *testing.T) {
	policy := Policy{MinRawHours: 0.01, MinActualDurationHours: 1.0}
	card := newCard("A1", domain.StatusReadyForBuild)
	start := time.Now()

	require.NoError(t, ApplyTransition(card, domain.StatusAssembling, start, policy))
	// Completing one second later still books the minimum hour.
	require.NoError(t, ApplyTransition(card, domain.StatusCompleted, start.Add(time.Second), policy))
	assert.Equal(t, 1.0, card.ActualDuration)

	// With the policy floor relaxed, the raw floor applies instead.
	relaxed := Policy{MinRawHours: 0.01, MinActualDurationHours: 0}
	card2 := newCard("A2", domain.StatusReadyForBuild)
	require.NoError(t, ApplyTransition(card2, domain.StatusAssembling, start, relaxed))
	require.NoError(t, ApplyTransition(card2, domain.StatusCompleted, start.Add(time.Second), relaxed))
	assert.Equal(t, 0.01, card2.ActualDuration)
}

func TestApplyTransition_LongBuildRoundsToTwoDecimals(t *testing.T) {
	card := newCard("A1", domain.StatusReadyForBuild)
	policy := DefaultPolicy()
	start := time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC)

	require.NoError(t, ApplyTransition(card, domain.StatusAssembling, start, policy))
	// 9000 seconds = 2.5h exactly; 9050s = 2.513...h rounds to 2.51.
	require.NoError(t, ApplyTransition(card, domain.StatusCompleted, start.Add(9050*time.Second), policy))
	assert.Equal(t, 2.51, card.ActualDuration)
}

func TestResetToScheduled(t *testing.T) {
	card := newCard("A1", domain.StatusReadyForBuild)
	policy := DefaultPolicy()
	start := time.Now()

	require.NoError(t, ApplyTransition(card, domain.StatusAssembling, start, policy))
	require.NoError(t, ApplyTransition(card, domain.StatusCompleted, start.Add(2*time.Hour), policy))

	ResetToScheduled(card)

	assert.Equal(t, domain.StatusScheduled, card.Status)
	assert.Nil(t, card.StartTime)
	assert.Nil(t, card.EndTime)
	assert.Nil(t, card.PickingStartTime)
	assert.Zero(t, card.ElapsedTime)
	assert.Zero(t, card.ActualDuration)
}
