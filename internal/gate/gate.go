// Package gate computes slot and day visibility from the event window,
// the wall clock and the persisted unlock set.
package gate

import (
	"time"

	"github.com/surprise-calendar/backend/internal/event"
)

// Status is the visibility state of a single surprise slot.
type Status string

const (
	// StatusTimeLocked means the slot's scheduled hour or day has not
	// arrived yet. No interaction is offered.
	StatusTimeLocked Status = "time_locked"

	// StatusNeedsPassword means the time gate is open but the slot has
	// not been password-verified yet.
	StatusNeedsPassword Status = "needs_password"

	// StatusUnlocked means the slot is both time-unlocked and
	// password-verified.
	StatusUnlocked Status = "unlocked"
)

// DayKind classifies a day relative to the current day index.
type DayKind string

const (
	DayPast   DayKind = "past"
	DayToday  DayKind = "today"
	DayFuture DayKind = "future"
)

// Set is an in-memory snapshot of the unlock record set.
type Set map[string]struct{}

// NewSet builds a set from a list of identifiers.
func NewSet(ids []string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Contains reports whether the identifier is in the set.
func (s Set) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Evaluator computes slot statuses for a given timezone.
type Evaluator struct {
	location *time.Location
}

// NewEvaluator creates an evaluator using the local timezone.
func NewEvaluator() *Evaluator {
	return &Evaluator{location: time.Local}
}

// NewEvaluatorWithLocation creates an evaluator for a specific timezone.
func NewEvaluatorWithLocation(loc *time.Location) *Evaluator {
	if loc == nil {
		loc = time.Local
	}
	return &Evaluator{location: loc}
}

// TimeGateOpen reports whether the time gate for the given day and slot is
// satisfied at the given instant. Past days are always open, future days
// never, and the current day opens slot by slot as the wall-clock hour
// reaches each slot's required hour. Minutes and seconds are ignored.
func (e *Evaluator) TimeGateOpen(w event.Window, day int, slot event.Slot, at time.Time) bool {
	local := at.In(e.location)
	current := w.DayIndexAt(local)

	switch {
	case day < current:
		return true
	case day == current:
		return local.Hour() >= slot.RequiredHour
	default:
		return false
	}
}

// SlotState returns the status of a slot at the given instant. The status
// is derived fresh on every call; it is never cached across time.
func (e *Evaluator) SlotState(w event.Window, day int, slot event.Slot, at time.Time, unlocked Set) Status {
	if !e.TimeGateOpen(w, day, slot, at) {
		return StatusTimeLocked
	}
	if unlocked.Contains(event.SurpriseID(day, slot.Number)) {
		return StatusUnlocked
	}
	return StatusNeedsPassword
}

// DayKindAt classifies the given day relative to the current day index.
// Before the window starts every day is in the future.
func (e *Evaluator) DayKindAt(w event.Window, day int, at time.Time) DayKind {
	current := w.DayIndexAt(at.In(e.location))
	switch {
	case day < current:
		return DayPast
	case day == current:
		return DayToday
	default:
		return DayFuture
	}
}

// NextChange returns the next instant at which any slot's time gate flips,
// i.e. the next of the 00:00, 06:00, 12:00 and 18:00 boundaries after the
// given instant.
func (e *Evaluator) NextChange(at time.Time) time.Time {
	local := at.In(e.location)
	for _, slot := range event.Slots {
		if local.Hour() < slot.RequiredHour {
			return time.Date(local.Year(), local.Month(), local.Day(),
				slot.RequiredHour, 0, 0, 0, e.location)
		}
	}
	next := local.AddDate(0, 0, 1)
	return time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, e.location)
}

// Location returns the evaluator's timezone.
func (e *Evaluator) Location() *time.Location {
	return e.location
}
