package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/surprise-calendar/backend/internal/api/middleware"
	"github.com/surprise-calendar/backend/internal/assets"
	"github.com/surprise-calendar/backend/internal/event"
	"github.com/surprise-calendar/backend/internal/gate"
	"github.com/surprise-calendar/backend/internal/storage"
)

// SlotContent resolves the content reference for a slot, but only once the
// slot is fully unlocked.
func SlotContent(window event.Window, evaluator *gate.Evaluator, store storage.UnlockStore) http.HandlerFunc {
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

		status := evaluator.SlotState(window, day, slot, time.Now(), gate.NewSet(ids))
		if status != gate.StatusUnlocked {
			middleware.WriteError(w, http.StatusForbidden, middleware.ErrForbidden,
				"Surprise has not been unlocked")
			return
		}

		ref := assets.Resolve(day, slot.ContentType)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ref)
	}
}

// Unlocks lists the persisted unlock record set.
func Unlocks(store storage.UnlockStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids, err := store.Load(r.Context())
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to load unlock set")
			return
		}
		if ids == nil {
			ids = []string{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ids)
	}
}
