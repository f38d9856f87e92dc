// Package challenge orchestrates unlock attempts: hint retrieval, password
// verification against the answer asset, and the unlock state transition
// on success.
package challenge

import (
	"time"

	"github.com/surprise-calendar/backend/internal/event"
)

// State is the lifecycle state of a challenge session.
type State string

const (
	// StateHintLoading means the hint fetch is still in flight.
	StateHintLoading State = "hint_loading"

	// StateHintReady means the hint text is available.
	StateHintReady State = "hint_ready"

	// StateHintUnavailable means the hint fetch failed and the fallback
	// text is shown instead. The session is still usable.
	StateHintUnavailable State = "hint_unavailable"

	// StateVerifying means an answer fetch and comparison is in flight.
	StateVerifying State = "verifying"

	// StateFailed means the last attempt did not match. The session stays
	// open for another attempt; there is no attempt limit.
	StateFailed State = "failed"

	// StateVerificationError means the answer resource could not be
	// fetched. The attempt is aborted but the session stays open.
	StateVerificationError State = "verification_error"
)

// HintFallback is shown when the hint resource is missing or unreachable.
const HintFallback = "No hint available (or file missing)."

// Outcome is the result of a single unlock attempt.
type Outcome string

const (
	OutcomeSuccess           Outcome = "success"
	OutcomeMismatch          Outcome = "mismatch"
	OutcomeVerificationError Outcome = "verification_error"
)

// Session is the transient state of one unlock dialog. Only one session is
// active at a time; starting a new one abandons the previous session.
type Session struct {
	Token      string     `json:"token"`
	SurpriseID string     `json:"surprise_id"`
	Day        int        `json:"day"`
	Slot       event.Slot `json:"slot"`
	State      State      `json:"state"`
	Hint       string     `json:"hint,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
}
