package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/surprise-calendar/backend/internal/event"
	"github.com/surprise-calendar/backend/internal/gate"
)

// CalendarDay is one day card in the calendar view.
type CalendarDay struct {
	Day  int          `json:"day"`
	Kind gate.DayKind `json:"kind"`
}

// CalendarResponse is the full calendar view-model: everything the
// frontend needs to render the day grid, derived fresh from the window
// and the clock on every request.
type CalendarResponse struct {
	StartDate       string        `json:"start_date"`
	TotalDays       int           `json:"total_days"`
	CurrentDayIndex int           `json:"current_day_index"`
	Days            []CalendarDay `json:"days"`
}

// Calendar returns a handler that renders the calendar view-model.
func Calendar(window event.Window, evaluator *gate.Evaluator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now()

		response := CalendarResponse{
			StartDate:       window.StartDate.Format("2006-01-02"),
			TotalDays:       window.TotalDays,
			CurrentDayIndex: window.DayIndexAt(now.In(evaluator.Location())),
			Days:            make([]CalendarDay, 0, window.TotalDays),
		}

		for day := 1; day <= window.TotalDays; day++ {
			response.Days = append(response.Days, CalendarDay{
				Day:  day,
				Kind: evaluator.DayKindAt(window, day, now),
			})
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}
