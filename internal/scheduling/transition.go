package scheduling

import (
	"fmt"
	"math"
	"time"

	"assembly-line-api/internal/domain"
)

// ErrUnknownStatus is returned when the requested status is outside the
// enumeration.
type UnknownStatusError struct {
	Status domain.CardStatus
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("unknown card status %q", e.Status)
}

// InvalidTransitionError is returned when the requested status is not
// reachable from the card's current status.
type InvalidTransitionError struct {
	CardNumber string
	From       domain.CardStatus
	To         domain.CardStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("card %s: invalid transition %s -> %s", e.CardNumber, e.From, e.To)
}

// ApplyTransition moves card to the requested status, stamping timestamps as
// side effects. It mutates only the given card and performs no I/O; the
// caller is responsible for persisting the result. The UI gates transitions
// too, but this is the authoritative check.
func ApplyTransition(card *domain.AssemblyCard, requested domain.CardStatus, now time.Time, policy Policy) error {
	if !domain.IsValidStatus(requested) {
		return &UnknownStatusError{Status: requested}
	}

	// DEAD_TIME cards carry no build semantics: they flip between scheduled
	// and completed only.
	if card.Type == domain.CardTypeDeadTime {
		return applyDeadTimeTransition(card, requested, now)
	}

	if requested == card.Status {
		// Re-completing an already completed card is a no-op so timestamp
		// capture stays idempotent. Every other same-state request is
		// rejected.
		if card.Status == domain.StatusCompleted {
			return nil
		}
		return &InvalidTransitionError{CardNumber: card.CardNumber, From: card.Status, To: requested}
	}

	if !reachable(card, requested) {
		return &InvalidTransitionError{CardNumber: card.CardNumber, From: card.Status, To: requested}
	}

	prior := card.Status

	switch requested {
	case domain.StatusClearedForPicking:
		// Manual gate set by a scheduler or supervisor. Status only.

	case domain.StatusPicking:
		if card.PickingStartTime == nil {
			t := now
			card.PickingStartTime = &t
		}

	case domain.StatusReadyForBuild:
		if card.PhaseClearedToBuildDate == nil {
			t := now
			card.PhaseClearedToBuildDate = &t
		}

	case domain.StatusAssembling:
		if card.StartTime == nil {
			t := now
			card.StartTime = &t
		}
		// Resuming must not reset StartTime; the new segment is anchored
		// separately so elapsed time accumulates instead of resetting.
		t := now
		card.LastResumeTime = &t
		card.StatusBeforeHold = nil

	case domain.StatusBlocked, domain.StatusPaused:
		if prior == domain.StatusAssembling {
			card.ElapsedTime += segmentSeconds(card, now)
			card.LastResumeTime = nil
		}
		hold := prior
		card.StatusBeforeHold = &hold

	case domain.StatusCompleted:
		total := card.ElapsedTime + segmentSeconds(card, now)
		card.ElapsedTime = total
		card.LastResumeTime = nil
		t := now
		card.EndTime = &t
		card.ActualDuration = bookedDuration(total, policy)
	}

	// Returning from a hold state clears the marker.
	if (prior == domain.StatusBlocked || prior == domain.StatusPaused) && requested != domain.StatusAssembling {
		card.StatusBeforeHold = nil
	}

	card.Status = requested
	return nil
}

// reachable reports whether the requested status is a legal next state for a
// regular (non-DEAD_TIME) card.
func reachable(card *domain.AssemblyCard, requested domain.CardStatus) bool {
	switch card.Status {
	case domain.StatusScheduled:
		return requested == domain.StatusClearedForPicking
	case domain.StatusClearedForPicking:
		return requested == domain.StatusPicking
	case domain.StatusPicking:
		if card.PaintRouted {
			return requested == domain.StatusDeliveredToPaint
		}
		return requested == domain.StatusReadyForBuild
	case domain.StatusDeliveredToPaint:
		return requested == domain.StatusReadyForBuild
	case domain.StatusReadyForBuild:
		return requested == domain.StatusAssembling ||
			requested == domain.StatusBlocked ||
			requested == domain.StatusPaused
	case domain.StatusAssembling:
		return requested == domain.StatusCompleted ||
			requested == domain.StatusBlocked ||
			requested == domain.StatusPaused
	case domain.StatusBlocked, domain.StatusPaused:
		// Hold states return to where they came from.
		if card.StatusBeforeHold != nil {
			return requested == *card.StatusBeforeHold
		}
		return requested == domain.StatusReadyForBuild
	case domain.StatusCompleted:
		return false
	}
	return false
}

// applyDeadTimeTransition handles the scheduled <-> completed pair for
// DEAD_TIME cards.
func applyDeadTimeTransition(card *domain.AssemblyCard, requested domain.CardStatus, now time.Time) error {
	switch {
	case card.Status == domain.StatusScheduled && requested == domain.StatusCompleted:
		t := now
		card.EndTime = &t
		card.Status = domain.StatusCompleted
		return nil
	case card.Status == domain.StatusCompleted && requested == domain.StatusScheduled:
		card.EndTime = nil
		card.Status = domain.StatusScheduled
		return nil
	case card.Status == domain.StatusCompleted && requested == domain.StatusCompleted:
		return nil
	}
	return &InvalidTransitionError{CardNumber: card.CardNumber, From: card.Status, To: requested}
}

// segmentSeconds returns the length of the currently running build segment.
func segmentSeconds(card *domain.AssemblyCard, now time.Time) int64 {
	anchor := card.LastResumeTime
	if anchor == nil {
		anchor = card.StartTime
	}
	if anchor == nil {
		return 0
	}
	secs := int64(now.Sub(*anchor).Seconds())
	if secs < 0 {
		return 0
	}
	return secs
}

// bookedDuration converts accumulated seconds to the booked duration in
// hours: raw floor, round to two decimal places, then clamp to the policy
// minimum.
func bookedDuration(elapsedSeconds int64, policy Policy) float64 {
	hours := float64(elapsedSeconds) / 3600.0
	if hours < policy.MinRawHours {
		hours = policy.MinRawHours
	}
	hours = math.Round(hours*100) / 100
	if hours < policy.MinActualDurationHours {
		hours = policy.MinActualDurationHours
	}
	return hours
}

// ResetToScheduled performs the administrative bulk-reset on a single card,
// wiping lifecycle progress back to the initial state. This is the one
// sanctioned backward jump.
func ResetToScheduled(card *domain.AssemblyCard) {
	card.Status = domain.StatusScheduled
	card.StartTime = nil
	card.EndTime = nil
	card.PickingStartTime = nil
	card.PhaseClearedToBuildDate = nil
	card.LastResumeTime = nil
	card.StatusBeforeHold = nil
	card.ElapsedTime = 0
	card.ActualDuration = 0
}
