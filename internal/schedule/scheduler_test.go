package schedule

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/surprise-calendar/backend/internal/event"
	"github.com/surprise-calendar/backend/internal/gate"
	"github.com/surprise-calendar/backend/internal/storage"
	ws "github.com/surprise-calendar/backend/internal/websocket"
)

func testScheduler(t *testing.T) (*RolloverScheduler, *ws.Client, event.Window) {
	t.Helper()

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local).AddDate(0, 0, -5)
	window := event.NewWindow(start, 30)

	store := storage.NewJSONUnlockStore(filepath.Join(t.TempDir(), "unlocks.json"), storage.DefaultRecordKey)

	hub := ws.NewHub()
	go hub.Run()
	client := ws.NewClient(hub)
	hub.Register(client)

	s := NewRolloverScheduler(window, gate.NewEvaluator(), store, hub)
	return s, client, window
}

func receive(t *testing.T, client *ws.Client) ws.Message {
	t.Helper()
	select {
	case data := <-client.Send():
		var msg ws.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("decoding broadcast: %v", err)
		}
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("no broadcast received")
		return ws.Message{}
	}
}

func localDay(window event.Window, day, hour int) time.Time {
	return window.StartDate.AddDate(0, 0, day-1).Add(time.Duration(hour) * time.Hour)
}

func TestGateOpeningBroadcast(t *testing.T) {
	s, client, window := testScheduler(t)

	// 06:00 on the current day opens slot 2.
	s.announceGateChange(localDay(window, 6, 6))

	msg := receive(t, client)
	if msg.Type != ws.TypeSlotStatusChanged {
		t.Fatalf("message type = %s, want %s", msg.Type, ws.TypeSlotStatusChanged)
	}

	payload, _ := json.Marshal(msg.Payload)
	var slot ws.SlotStatusPayload
	if err := json.Unmarshal(payload, &slot); err != nil {
		t.Fatalf("decoding payload: %v", err)
	}
	if slot.Day != 6 || slot.Slot != 2 {
		t.Errorf("payload = day %d slot %d, want day 6 slot 2", slot.Day, slot.Slot)
	}
	if slot.NewStatus != string(gate.StatusNeedsPassword) {
		t.Errorf("new status = %q, want needs_password", slot.NewStatus)
	}
}

func TestDayRolloverBroadcast(t *testing.T) {
	s, client, window := testScheduler(t)

	// Prime the scheduler on day 5 evening, then cross midnight.
	s.announceGateChange(localDay(window, 5, 18))
	if msg := receive(t, client); msg.Type != ws.TypeSlotStatusChanged {
		t.Fatalf("priming message type = %s", msg.Type)
	}

	s.announceGateChange(localDay(window, 6, 0))

	first := receive(t, client)
	if first.Type != ws.TypeDayRolledOver {
		t.Fatalf("first message type = %s, want %s", first.Type, ws.TypeDayRolledOver)
	}
	payload, _ := json.Marshal(first.Payload)
	var rollover ws.DayRolloverPayload
	if err := json.Unmarshal(payload, &rollover); err != nil {
		t.Fatalf("decoding payload: %v", err)
	}
	if rollover.PreviousDayIndex != 5 || rollover.DayIndex != 6 {
		t.Errorf("rollover = %d -> %d, want 5 -> 6", rollover.PreviousDayIndex, rollover.DayIndex)
	}

	// Midnight also opens slot 1 of the new day.
	second := receive(t, client)
	if second.Type != ws.TypeSlotStatusChanged {
		t.Errorf("second message type = %s, want %s", second.Type, ws.TypeSlotStatusChanged)
	}
}
