// Package handlers provides HTTP request handlers for the API endpoints.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/surprise-calendar/backend/internal/storage"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status         string `json:"status"`
	StoreReachable bool   `json:"store_reachable"`
}

// HealthCheck returns a handler that performs a health check.
func HealthCheck(store storage.UnlockStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		_, err := store.Load(ctx)
		storeReachable := err == nil

		status := "healthy"
		if !storeReachable {
			status = "degraded"
		}

		response := HealthResponse{
			Status:         status,
			StoreReachable: storeReachable,
		}

		w.Header().Set("Content-Type", "application/json")
		if status != "healthy" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(response)
	}
}
