// Package event defines the event window, the calendar clock and the
// surprise slot table.
package event

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Window describes the fixed multi-day period the calendar covers.
// Day indices run from 1 (the start date itself) to TotalDays.
type Window struct {
	StartDate time.Time
	TotalDays int
}

// NewWindow creates a window starting at the given date.
func NewWindow(startDate time.Time, totalDays int) Window {
	return Window{StartDate: startDate, TotalDays: totalDays}
}

// DayIndexAt returns the day index for the given instant. Both the start
// date and the instant are normalized to midnight in their own local time;
// the index is the ceiling of the whole-day difference plus one, so the
// start date itself is day 1. Instants before the start date yield indices
// of zero or below; callers must treat index < 1 as "before start".
func (w Window) DayIndexAt(at time.Time) int {
	start := midnight(w.StartDate)
	now := midnight(at)

	diff := now.Sub(start).Hours() / 24
	return int(math.Ceil(diff)) + 1
}

// ContainsDay reports whether the day index is within [1, TotalDays].
func (w Window) ContainsDay(day int) bool {
	return day >= 1 && day <= w.TotalDays
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ContentType identifies the kind of surprise behind a slot.
type ContentType string

const (
	ContentHaiku   ContentType = "haiku"
	ContentLetter  ContentType = "letter"
	ContentPicture ContentType = "picture"
	ContentReason  ContentType = "reason"
)

// Slot is one of the four daily surprise slots. Each slot opens at a fixed
// local hour and always carries the same content type.
type Slot struct {
	Number       int         `json:"number"`
	RequiredHour int         `json:"required_hour"`
	ContentType  ContentType `json:"content_type"`
}

// Slots is the fixed per-day slot table: midnight, 6 AM, noon and 6 PM.
var Slots = [4]Slot{
	{Number: 1, RequiredHour: 0, ContentType: ContentHaiku},
	{Number: 2, RequiredHour: 6, ContentType: ContentLetter},
	{Number: 3, RequiredHour: 12, ContentType: ContentPicture},
	{Number: 4, RequiredHour: 18, ContentType: ContentReason},
}

// SlotByNumber returns the slot with the given number (1-4).
func SlotByNumber(n int) (Slot, bool) {
	if n < 1 || n > len(Slots) {
		return Slot{}, false
	}
	return Slots[n-1], true
}

// SurpriseID builds the composite identifier for a (day, slot) pair,
// e.g. "day3surprise2". This is the key used for hint and answer assets
// and for the persisted unlock set.
func SurpriseID(day, slot int) string {
	return fmt.Sprintf("day%dsurprise%d", day, slot)
}

// ParseSurpriseID splits a composite identifier back into its day and slot
// numbers. It rejects identifiers that do not round-trip through SurpriseID.
func ParseSurpriseID(id string) (day, slot int, err error) {
	rest, ok := strings.CutPrefix(id, "day")
	if !ok {
		return 0, 0, fmt.Errorf("invalid surprise identifier: %q", id)
	}
	dayPart, slotPart, ok := strings.Cut(rest, "surprise")
	if !ok {
		return 0, 0, fmt.Errorf("invalid surprise identifier: %q", id)
	}
	if _, err := fmt.Sscanf(dayPart, "%d", &day); err != nil {
		return 0, 0, fmt.Errorf("invalid day in identifier %q: %w", id, err)
	}
	if _, err := fmt.Sscanf(slotPart, "%d", &slot); err != nil {
		return 0, 0, fmt.Errorf("invalid slot in identifier %q: %w", id, err)
	}
	if SurpriseID(day, slot) != id {
		return 0, 0, fmt.Errorf("invalid surprise identifier: %q", id)
	}
	return day, slot, nil
}
