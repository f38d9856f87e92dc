package challenge

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/surprise-calendar/backend/internal/assets"
	"github.com/surprise-calendar/backend/internal/event"
	"github.com/surprise-calendar/backend/internal/gate"
	"github.com/surprise-calendar/backend/internal/storage"
	"github.com/surprise-calendar/backend/internal/websocket"
)

// ErrNoSession is returned when the referenced session is not the active
// one: it never existed, was abandoned, or was superseded by a newer
// session.
var ErrNoSession = errors.New("no active challenge session")

// Manager owns the single active challenge session. Hint fetches run in
// the background tagged with the session token issued at start time;
// completions whose token no longer matches the active session are
// discarded rather than acted on.
type Manager struct {
	source      assets.Source
	store       storage.UnlockStore
	broadcaster *websocket.EventBroadcaster

	mu     sync.Mutex
	active *Session

	// hintTimeout bounds the background hint fetch.
	hintTimeout time.Duration
}

// NewManager creates a challenge manager. The broadcaster may be nil, in
// which case no events are emitted.
func NewManager(source assets.Source, store storage.UnlockStore, broadcaster *websocket.EventBroadcaster) *Manager {
	return &Manager{
		source:      source,
		store:       store,
		broadcaster: broadcaster,
		hintTimeout: 30 * time.Second,
	}
}

// Begin starts a new challenge session for the given day and slot and
// kicks off the hint fetch. Any previously active session is abandoned;
// its in-flight fetches become stale and their results are dropped.
func (m *Manager) Begin(day int, slot event.Slot) Session {
	sess := &Session{
		Token:      uuid.NewString(),
		SurpriseID: event.SurpriseID(day, slot.Number),
		Day:        day,
		Slot:       slot,
		State:      StateHintLoading,
		StartedAt:  time.Now().UTC(),
	}

	m.mu.Lock()
	if m.active != nil {
		log.Printf("Challenge session %s superseded by %s", m.active.Token, sess.Token)
	}
	m.active = sess
	m.mu.Unlock()

	go m.fetchHint(sess.Token, sess.SurpriseID)

	return *sess
}

// Session returns a snapshot of the session with the given token.
func (m *Manager) Session(token string) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil || m.active.Token != token {
		return Session{}, false
	}
	return *m.active, true
}

// Abandon closes the session with the given token, e.g. when the unlock
// dialog is dismissed. Closing an already-gone session is a no-op.
func (m *Manager) Abandon(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active != nil && m.active.Token == token {
		m.active = nil
	}
}

// Attempt verifies the user's input against the freshly fetched answer for
// the session's surprise. On success the surprise is persisted as unlocked,
// the session ends and the resolved content reference is returned. On
// mismatch the session stays open for another attempt. If the answer
// resource cannot be fetched the attempt is aborted but the session
// survives.
func (m *Manager) Attempt(ctx context.Context, token, input string) (Outcome, *assets.ContentRef, error) {
	m.mu.Lock()
	if m.active == nil || m.active.Token != token {
		m.mu.Unlock()
		return "", nil, ErrNoSession
	}
	m.active.State = StateVerifying
	id := m.active.SurpriseID
	day := m.active.Day
	slot := m.active.Slot
	m.mu.Unlock()

	answer, fetchErr := m.source.Answer(ctx, id)

	m.mu.Lock()
	defer m.mu.Unlock()

	// The session may have been superseded or abandoned while the answer
	// fetch was in flight; a stale result must not be acted on.
	if m.active == nil || m.active.Token != token {
		return "", nil, ErrNoSession
	}

	if fetchErr != nil {
		log.Printf("Answer fetch failed for %s: %v", id, fetchErr)
		m.active.State = StateVerificationError
		m.broadcastResult(token, id, OutcomeVerificationError)
		return OutcomeVerificationError, nil, nil
	}

	if normalize(input) != normalize(answer) {
		m.active.State = StateFailed
		m.broadcastResult(token, id, OutcomeMismatch)
		return OutcomeMismatch, nil, nil
	}

	// Mutate-then-persist before reporting success
	if err := m.store.MarkUnlocked(ctx, id); err != nil {
		m.active.State = StateHintReady
		return "", nil, fmt.Errorf("recording unlock for %s: %w", id, err)
	}

	m.active = nil
	m.broadcastResult(token, id, OutcomeSuccess)
	if m.broadcaster != nil {
		m.broadcaster.BroadcastSlotStatusChanged(id, day, slot.Number,
			string(gate.StatusNeedsPassword), string(gate.StatusUnlocked))
	}

	ref := assets.Resolve(day, slot.ContentType)
	return OutcomeSuccess, &ref, nil
}

// fetchHint retrieves the hint text in the background. The result is
// applied only if the session that issued the fetch is still active.
func (m *Manager) fetchHint(token, id string) {
	ctx, cancel := context.WithTimeout(context.Background(), m.hintTimeout)
	defer cancel()

	text, err := m.source.Hint(ctx, id)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil || m.active.Token != token {
		// Stale response for an abandoned session
		return
	}

	fallback := err != nil
	if fallback {
		log.Printf("Hint fetch failed for %s: %v", id, err)
		m.active.State = StateHintUnavailable
		m.active.Hint = HintFallback
	} else {
		m.active.State = StateHintReady
		m.active.Hint = text
	}

	if m.broadcaster != nil {
		m.broadcaster.BroadcastHintReady(token, id, m.active.Hint, fallback)
	}
}

func (m *Manager) broadcastResult(token, id string, outcome Outcome) {
	if m.broadcaster != nil {
		m.broadcaster.BroadcastChallengeResult(token, id, string(outcome))
	}
}

// normalize applies the password comparison rules: surrounding whitespace
// is ignored and the match is case-insensitive.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
