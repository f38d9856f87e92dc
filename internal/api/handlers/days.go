package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/surprise-calendar/backend/internal/api/middleware"
	"github.com/surprise-calendar/backend/internal/assets"
	"github.com/surprise-calendar/backend/internal/event"
	"github.com/surprise-calendar/backend/internal/gate"
	"github.com/surprise-calendar/backend/internal/storage"
)

// SlotView is the per-request rendering of one surprise slot.
type SlotView struct {
	Number       int                `json:"number"`
	RequiredHour int                `json:"required_hour"`
	ContentType  event.ContentType  `json:"content_type"`
	Status       gate.Status        `json:"status"`
	AvailableAt  string             `json:"available_at,omitempty"`
	Content      *assets.ContentRef `json:"content,omitempty"`
}

// DayResponse is the view-model for a single day.
type DayResponse struct {
	Day   int          `json:"day"`
	Kind  gate.DayKind `json:"kind"`
	Slots []SlotView   `json:"slots"`
}

// DaySlots returns a handler that renders the per-slot statuses for a day.
// Statuses are recomputed from the clock and the unlock set on every call.
func DaySlots(window event.Window, evaluator *gate.Evaluator, store storage.UnlockStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		day, ok := dayVar(w, r, window)
		if !ok {
			return
		}

		ids, err := store.Load(r.Context())
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to load unlock set")
			return
		}
		unlocked := gate.NewSet(ids)

		now := time.Now()
		response := DayResponse{
			Day:   day,
			Kind:  evaluator.DayKindAt(window, day, now),
			Slots: make([]SlotView, 0, len(event.Slots)),
		}

		for _, slot := range event.Slots {
			view := SlotView{
				Number:       slot.Number,
				RequiredHour: slot.RequiredHour,
				ContentType:  slot.ContentType,
				Status:       evaluator.SlotState(window, day, slot, now, unlocked),
			}

			switch view.Status {
			case gate.StatusTimeLocked:
				view.AvailableAt = fmt.Sprintf("%d:00", slot.RequiredHour)
			case gate.StatusUnlocked:
				ref := assets.Resolve(day, slot.ContentType)
				view.Content = &ref
			}

			response.Slots = append(response.Slots, view)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}

// dayVar parses and validates the {day} path variable. On failure it
// writes the error response and returns ok=false.
func dayVar(w http.ResponseWriter, r *http.Request, window event.Window) (int, bool) {
	raw := mux.Vars(r)["day"]
	day, err := strconv.Atoi(raw)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "Day must be a number")
		return 0, false
	}
	if !window.ContainsDay(day) {
		middleware.WriteError(w, http.StatusNotFound, middleware.ErrNotFound,
			fmt.Sprintf("Day %d is outside the event window", day))
		return 0, false
	}
	return day, true
}

// slotVar parses and validates the {slot} path variable.
func slotVar(w http.ResponseWriter, r *http.Request) (event.Slot, bool) {
	raw := mux.Vars(r)["slot"]
	n, err := strconv.Atoi(raw)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "Slot must be a number")
		return event.Slot{}, false
	}
	slot, ok := event.SlotByNumber(n)
	if !ok {
		middleware.WriteError(w, http.StatusNotFound, middleware.ErrNotFound,
			fmt.Sprintf("No surprise slot %d", n))
		return event.Slot{}, false
	}
	return slot, true
}
