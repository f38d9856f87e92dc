package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/surprise-calendar/backend/internal/event"
	"github.com/surprise-calendar/backend/internal/gate"
	"github.com/surprise-calendar/backend/internal/storage"
	"github.com/surprise-calendar/backend/internal/websocket"
)

// StatusResponse represents the system status response.
type StatusResponse struct {
	StartDate        string `json:"start_date"`
	TotalDays        int    `json:"total_days"`
	DayIndex         int    `json:"day_index"`
	Started          bool   `json:"started"`
	UnlockedCount    int    `json:"unlocked_count"`
	ConnectedClients int    `json:"connected_clients"`
	NextGateChange   string `json:"next_gate_change"`
}

// Status returns a handler that provides system status information.
func Status(window event.Window, evaluator *gate.Evaluator, store storage.UnlockStore, hub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now()
		day := window.DayIndexAt(now.In(evaluator.Location()))

		unlocked, err := store.Load(r.Context())
		if err != nil {
			unlocked = nil
		}

		response := StatusResponse{
			StartDate:        window.StartDate.Format("2006-01-02"),
			TotalDays:        window.TotalDays,
			DayIndex:         day,
			Started:          day >= 1,
			UnlockedCount:    len(unlocked),
			ConnectedClients: hub.ClientCount(),
			NextGateChange:   evaluator.NextChange(now).Format(time.RFC3339),
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}
