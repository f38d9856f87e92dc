package websocket

import (
	"encoding/json"
	"time"
)

// MessageType identifies the type of WebSocket message.
type MessageType string

const (
	// Server -> Client event types
	TypeSlotStatusChanged  MessageType = "slot.status_changed"
	TypeDayRolledOver      MessageType = "day.rolled_over"
	TypeChallengeHintReady MessageType = "challenge.hint_ready"
	TypeChallengeResult    MessageType = "challenge.result"
	TypeNotification       MessageType = "notification"

	// Client -> Server command types
	TypePing MessageType = "ping"

	// Server -> Client response types
	TypePong  MessageType = "pong"
	TypeError MessageType = "error"
)

// Message represents a WebSocket message envelope.
type Message struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   any         `json:"payload"`
}

// NewMessage creates a new message with the current timestamp.
func NewMessage(msgType MessageType, payload any) Message {
	return Message{
		Type:      msgType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// JSON serializes the message to JSON bytes.
func (m Message) JSON() ([]byte, error) {
	return json.Marshal(m)
}

// SlotStatusPayload is the payload for slot.status_changed events.
type SlotStatusPayload struct {
	SurpriseID     string `json:"surprise_id"`
	Day            int    `json:"day"`
	Slot           int    `json:"slot"`
	PreviousStatus string `json:"previous_status,omitempty"`
	NewStatus      string `json:"new_status"`
}

// DayRolloverPayload is the payload for day.rolled_over events.
type DayRolloverPayload struct {
	PreviousDayIndex int `json:"previous_day_index"`
	DayIndex         int `json:"day_index"`
}

// HintReadyPayload is the payload for challenge.hint_ready events.
type HintReadyPayload struct {
	SessionToken string `json:"session_token"`
	SurpriseID   string `json:"surprise_id"`
	Hint         string `json:"hint"`
	Fallback     bool   `json:"fallback"`
}

// ChallengeResultPayload is the payload for challenge.result events.
type ChallengeResultPayload struct {
	SessionToken string `json:"session_token"`
	SurpriseID   string `json:"surprise_id"`
	Outcome      string `json:"outcome"`
}

// NotificationPayload is the payload for notification events.
type NotificationPayload struct {
	Level       string `json:"level"` // info, warning, error
	Title       string `json:"title"`
	Message     string `json:"message"`
	Dismissible bool   `json:"dismissible"`
}
