package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/surprise-calendar/backend/internal/api/middleware"
	"github.com/surprise-calendar/backend/internal/assets"
	"github.com/surprise-calendar/backend/internal/challenge"
	"github.com/surprise-calendar/backend/internal/event"
	"github.com/surprise-calendar/backend/internal/gate"
	"github.com/surprise-calendar/backend/internal/storage"
)

// AttemptResponse is the result of a password submission.
type AttemptResponse struct {
	Outcome challenge.Outcome  `json:"outcome"`
	Content *assets.ContentRef `json:"content,omitempty"`
}

// BeginChallenge starts an unlock session for a slot whose time gate is
// open but which has not been password-verified yet. The response carries
// the session in hint_loading state; the hint arrives over the WebSocket
// stream or via a later GET of the session.
func BeginChallenge(
	window event.Window,
	evaluator *gate.Evaluator,
	store storage.UnlockStore,
	manager *challenge.Manager,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		day, ok := dayVar(w, r, window)
		if !ok {
			return
		}
		slot, ok := slotVar(w, r)
		if !ok {
			return
		}

		ids, err := store.Load(r.Context())
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to load unlock set")
			return
		}

		switch evaluator.SlotState(window, day, slot, time.Now(), gate.NewSet(ids)) {
		case gate.StatusTimeLocked:
			middleware.WriteError(w, http.StatusForbidden, middleware.ErrForbidden,
				fmt.Sprintf("Surprise not available until %d:00", slot.RequiredHour))
			return
		case gate.StatusUnlocked:
			middleware.WriteError(w, http.StatusConflict, middleware.ErrConflict, "Surprise is already unlocked")
			return
		}

		session := manager.Begin(day, slot)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(session)
	}
}

// GetChallenge returns the current snapshot of a session, including the
// hint once it has loaded.
func GetChallenge(manager *challenge.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := mux.Vars(r)["token"]

		session, ok := manager.Session(token)
		if !ok {
			middleware.WriteError(w, http.StatusGone, middleware.ErrGone, "Challenge session is no longer active")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(session)
	}
}

// AttemptChallenge submits a password for the session. A mismatch keeps
// the session open for more attempts; a failure to fetch the answer
// resource aborts the attempt without closing the session.
func AttemptChallenge(manager *challenge.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := mux.Vars(r)["token"]

		var req struct {
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}

		outcome, content, err := manager.Attempt(r.Context(), token, req.Password)
		if errors.Is(err, challenge.ErrNoSession) {
			middleware.WriteError(w, http.StatusGone, middleware.ErrGone, "Challenge session is no longer active")
			return
		}
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to record unlock")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if outcome == challenge.OutcomeVerificationError {
			// Fatal to the attempt but not to the session
			w.WriteHeader(http.StatusBadGateway)
		}
		json.NewEncoder(w).Encode(AttemptResponse{Outcome: outcome, Content: content})
	}
}

// CancelChallenge abandons a session, e.g. when the unlock dialog closes.
func CancelChallenge(manager *challenge.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		manager.Abandon(mux.Vars(r)["token"])
		w.WriteHeader(http.StatusNoContent)
	}
}
