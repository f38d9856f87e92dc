package websocket

import "log"

// EventBroadcaster handles broadcasting WebSocket events.
type EventBroadcaster struct {
	hub *Hub
}

// NewEventBroadcaster creates a new event broadcaster.
func NewEventBroadcaster(hub *Hub) *EventBroadcaster {
	return &EventBroadcaster{hub: hub}
}

// BroadcastSlotStatusChanged sends a slot.status_changed event.
func (b *EventBroadcaster) BroadcastSlotStatusChanged(surpriseID string, day, slot int, previousStatus, newStatus string) {
	payload := SlotStatusPayload{
		SurpriseID:     surpriseID,
		Day:            day,
		Slot:           slot,
		PreviousStatus: previousStatus,
		NewStatus:      newStatus,
	}

	msg := NewMessage(TypeSlotStatusChanged, payload)
	b.broadcast(msg)
}

// BroadcastDayRolledOver sends a day.rolled_over event.
func (b *EventBroadcaster) BroadcastDayRolledOver(previousDayIndex, dayIndex int) {
	payload := DayRolloverPayload{
		PreviousDayIndex: previousDayIndex,
		DayIndex:         dayIndex,
	}

	msg := NewMessage(TypeDayRolledOver, payload)
	b.broadcast(msg)
}

// BroadcastHintReady sends a challenge.hint_ready event.
func (b *EventBroadcaster) BroadcastHintReady(sessionToken, surpriseID, hint string, fallback bool) {
	payload := HintReadyPayload{
		SessionToken: sessionToken,
		SurpriseID:   surpriseID,
		Hint:         hint,
		Fallback:     fallback,
	}

	msg := NewMessage(TypeChallengeHintReady, payload)
	b.broadcast(msg)
}

// BroadcastChallengeResult sends a challenge.result event.
func (b *EventBroadcaster) BroadcastChallengeResult(sessionToken, surpriseID, outcome string) {
	payload := ChallengeResultPayload{
		SessionToken: sessionToken,
		SurpriseID:   surpriseID,
		Outcome:      outcome,
	}

	msg := NewMessage(TypeChallengeResult, payload)
	b.broadcast(msg)
}

// BroadcastNotification sends a notification to all connected clients.
func (b *EventBroadcaster) BroadcastNotification(level, title, message string) {
	payload := NotificationPayload{
		Level:       level,
		Title:       title,
		Message:     message,
		Dismissible: true,
	}

	msg := NewMessage(TypeNotification, payload)
	b.broadcast(msg)
}

// broadcast sends a message to all connected clients.
func (b *EventBroadcaster) broadcast(msg Message) {
	data, err := msg.JSON()
	if err != nil {
		log.Printf("Error encoding WebSocket message: %v", err)
		return
	}
	b.hub.Broadcast(data)
}
