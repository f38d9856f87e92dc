// Package api provides HTTP routing and handlers for the REST API.
package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/surprise-calendar/backend/internal/api/handlers"
	"github.com/surprise-calendar/backend/internal/api/middleware"
	"github.com/surprise-calendar/backend/internal/challenge"
	"github.com/surprise-calendar/backend/internal/event"
	"github.com/surprise-calendar/backend/internal/gate"
	"github.com/surprise-calendar/backend/internal/storage"
	"github.com/surprise-calendar/backend/internal/websocket"
)

// NewRouter creates and configures the HTTP router with all API routes.
// The static frontend (and, in the co-located deployment, the surprise
// assets) is served from staticDir.
func NewRouter(
	window event.Window,
	evaluator *gate.Evaluator,
	store storage.UnlockStore,
	manager *challenge.Manager,
	hub *websocket.Hub,
	staticDir string,
) *mux.Router {
	r := mux.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logging)
	r.Use(middleware.ErrorRecovery)

	// API subrouter
	api := r.PathPrefix("/api").Subrouter()

	// Health and status endpoints
	api.HandleFunc("/health", handlers.HealthCheck(store)).Methods("GET")
	api.HandleFunc("/status", handlers.Status(window, evaluator, store, hub)).Methods("GET")

	// WebSocket endpoint
	api.HandleFunc("/ws", handlers.WebSocketUpgrade(hub)).Methods("GET")

	// Calendar and day endpoints
	api.HandleFunc("/calendar", handlers.Calendar(window, evaluator)).Methods("GET")
	api.HandleFunc("/days/{day}", handlers.DaySlots(window, evaluator, store)).Methods("GET")
	api.HandleFunc("/days/{day}/slots/{slot}/content", handlers.SlotContent(window, evaluator, store)).Methods("GET")

	// Challenge endpoints
	api.HandleFunc("/days/{day}/slots/{slot}/challenge", handlers.BeginChallenge(window, evaluator, store, manager)).Methods("POST")
	api.HandleFunc("/challenge/{token}", handlers.GetChallenge(manager)).Methods("GET")
	api.HandleFunc("/challenge/{token}/attempt", handlers.AttemptChallenge(manager)).Methods("POST")
	api.HandleFunc("/challenge/{token}", handlers.CancelChallenge(manager)).Methods("DELETE")

	// Unlock record set
	api.HandleFunc("/unlocks", handlers.Unlocks(store)).Methods("GET")

	// Serve static frontend files
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(staticDir)))

	return r
}
