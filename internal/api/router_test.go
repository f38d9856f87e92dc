package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/surprise-calendar/backend/internal/assets"
	"github.com/surprise-calendar/backend/internal/challenge"
	"github.com/surprise-calendar/backend/internal/event"
	"github.com/surprise-calendar/backend/internal/gate"
	"github.com/surprise-calendar/backend/internal/storage"
	"github.com/surprise-calendar/backend/internal/websocket"
)

// newTestServer wires a router around a window that started five days ago,
// so "today" is day 6 and days 1-5 are in the past.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	staticDir := t.TempDir()
	for _, dir := range []string{"assets/hints", "assets/answers"} {
		if err := os.MkdirAll(filepath.Join(staticDir, dir), 0755); err != nil {
			t.Fatal(err)
		}
	}
	writeAsset := func(rel, content string) {
		if err := os.WriteFile(filepath.Join(staticDir, rel), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	writeAsset("assets/hints/day5surprise2.txt", "He melts in spring.")
	writeAsset("assets/answers/day5surprise2.txt", "frosty\n")

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local).AddDate(0, 0, -5)
	window := event.NewWindow(start, 30)
	evaluator := gate.NewEvaluator()

	store := storage.NewJSONUnlockStore(filepath.Join(t.TempDir(), "unlocks.json"), storage.DefaultRecordKey)
	source := assets.NewDirSource(staticDir)

	hub := websocket.NewHub()
	go hub.Run()

	manager := challenge.NewManager(source, store, websocket.NewEventBroadcaster(hub))
	router := NewRouter(window, evaluator, store, manager, hub, staticDir)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func getJSON(t *testing.T, url string, wantStatus int, out any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		t.Fatalf("GET %s status = %d, want %d", url, resp.StatusCode, wantStatus)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
	}
}

func postJSON(t *testing.T, url string, body any, wantStatus int, out any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	resp, err := http.Post(url, "application/json", &buf)
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		t.Fatalf("POST %s status = %d, want %d", url, resp.StatusCode, wantStatus)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
	}
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t)

	var health struct {
		Status string `json:"status"`
	}
	getJSON(t, server.URL+"/api/health", http.StatusOK, &health)
	if health.Status != "healthy" {
		t.Errorf("health status = %q", health.Status)
	}
}

func TestCalendarView(t *testing.T) {
	server := newTestServer(t)

	var cal struct {
		TotalDays       int `json:"total_days"`
		CurrentDayIndex int `json:"current_day_index"`
		Days            []struct {
			Day  int    `json:"day"`
			Kind string `json:"kind"`
		} `json:"days"`
	}
	getJSON(t, server.URL+"/api/calendar", http.StatusOK, &cal)

	if cal.TotalDays != 30 || len(cal.Days) != 30 {
		t.Fatalf("calendar has %d/%d days, want 30", cal.TotalDays, len(cal.Days))
	}
	if cal.CurrentDayIndex != 6 {
		t.Fatalf("current day index = %d, want 6", cal.CurrentDayIndex)
	}
	if cal.Days[0].Kind != "past" || cal.Days[4].Kind != "past" {
		t.Error("days 1-5 should be past")
	}
	if cal.Days[5].Kind != "today" {
		t.Errorf("day 6 kind = %q, want today", cal.Days[5].Kind)
	}
	if cal.Days[6].Kind != "future" {
		t.Errorf("day 7 kind = %q, want future", cal.Days[6].Kind)
	}
}

func TestDayValidation(t *testing.T) {
	server := newTestServer(t)

	getJSON(t, server.URL+"/api/days/abc", http.StatusBadRequest, nil)
	getJSON(t, server.URL+"/api/days/0", http.StatusNotFound, nil)
	getJSON(t, server.URL+"/api/days/31", http.StatusNotFound, nil)
}

func TestPastDaySlots(t *testing.T) {
	server := newTestServer(t)

	var day struct {
		Kind  string `json:"kind"`
		Slots []struct {
			Number int    `json:"number"`
			Status string `json:"status"`
		} `json:"slots"`
	}
	getJSON(t, server.URL+"/api/days/5", http.StatusOK, &day)

	if day.Kind != "past" {
		t.Errorf("day 5 kind = %q", day.Kind)
	}
	if len(day.Slots) != 4 {
		t.Fatalf("day 5 has %d slots, want 4", len(day.Slots))
	}
	for _, slot := range day.Slots {
		if slot.Status != "needs_password" {
			t.Errorf("slot %d status = %q, want needs_password", slot.Number, slot.Status)
		}
	}
}

func TestFutureDayChallengeForbidden(t *testing.T) {
	server := newTestServer(t)

	postJSON(t, server.URL+"/api/days/8/slots/1/challenge", nil, http.StatusForbidden, nil)
}

func TestChallengeFlow(t *testing.T) {
	server := newTestServer(t)

	// Begin a challenge on a past-day slot.
	var session struct {
		Token string `json:"token"`
		State string `json:"state"`
	}
	postJSON(t, server.URL+"/api/days/5/slots/2/challenge", nil, http.StatusCreated, &session)
	if session.Token == "" {
		t.Fatal("no session token returned")
	}

	// The hint loads in the background; poll the session until it lands.
	deadline := time.Now().Add(2 * time.Second)
	var got struct {
		State string `json:"state"`
		Hint  string `json:"hint"`
	}
	for time.Now().Before(deadline) {
		getJSON(t, server.URL+"/api/challenge/"+session.Token, http.StatusOK, &got)
		if got.State != "hint_loading" {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if got.State != "hint_ready" {
		t.Fatalf("session state = %q, want hint_ready", got.State)
	}
	if got.Hint != "He melts in spring." {
		t.Errorf("hint = %q", got.Hint)
	}

	// A wrong guess keeps the session open.
	var attempt struct {
		Outcome string `json:"outcome"`
		Content *struct {
			Path string `json:"path"`
			Mode string `json:"mode"`
		} `json:"content"`
	}
	postJSON(t, server.URL+"/api/challenge/"+session.Token+"/attempt",
		map[string]string{"password": "wrong"}, http.StatusOK, &attempt)
	if attempt.Outcome != "mismatch" {
		t.Fatalf("outcome = %q, want mismatch", attempt.Outcome)
	}

	// Whitespace and case are ignored on the retry.
	postJSON(t, server.URL+"/api/challenge/"+session.Token+"/attempt",
		map[string]string{"password": "  Frosty  "}, http.StatusOK, &attempt)
	if attempt.Outcome != "success" {
		t.Fatalf("outcome = %q, want success", attempt.Outcome)
	}
	if attempt.Content == nil || attempt.Content.Path != "assets/content/letter/005.pdf" {
		t.Fatalf("content = %+v, want letter/005.pdf", attempt.Content)
	}
	if attempt.Content.Mode != "document" {
		t.Errorf("content mode = %q, want document", attempt.Content.Mode)
	}

	// The unlock is persisted and visible in the day view.
	var ids []string
	getJSON(t, server.URL+"/api/unlocks", http.StatusOK, &ids)
	if len(ids) != 1 || ids[0] != "day5surprise2" {
		t.Errorf("unlocks = %v, want [day5surprise2]", ids)
	}

	var day struct {
		Slots []struct {
			Number  int    `json:"number"`
			Status  string `json:"status"`
			Content *struct {
				Path string `json:"path"`
			} `json:"content"`
		} `json:"slots"`
	}
	getJSON(t, server.URL+"/api/days/5", http.StatusOK, &day)
	if day.Slots[1].Status != "unlocked" {
		t.Errorf("slot 2 status = %q, want unlocked", day.Slots[1].Status)
	}
	if day.Slots[1].Content == nil {
		t.Error("unlocked slot has no content reference")
	}

	// Unlocked slots reject a new challenge.
	postJSON(t, server.URL+"/api/days/5/slots/2/challenge", nil, http.StatusConflict, nil)

	// The finished session is gone.
	getJSON(t, server.URL+"/api/challenge/"+session.Token, http.StatusGone, nil)
}

func TestChallengeVerificationError(t *testing.T) {
	server := newTestServer(t)

	// day4surprise4 has no answer file, so the fetch fails and the
	// attempt aborts without closing the session.
	var session struct {
		Token string `json:"token"`
	}
	postJSON(t, server.URL+"/api/days/4/slots/4/challenge", nil, http.StatusCreated, &session)

	var attempt struct {
		Outcome string `json:"outcome"`
	}
	postJSON(t, server.URL+"/api/challenge/"+session.Token+"/attempt",
		map[string]string{"password": "anything"}, http.StatusBadGateway, &attempt)
	if attempt.Outcome != "verification_error" {
		t.Fatalf("outcome = %q, want verification_error", attempt.Outcome)
	}

	// The session survives the aborted attempt.
	getJSON(t, server.URL+"/api/challenge/"+session.Token, http.StatusOK, nil)
}

func TestContentEndpointRequiresUnlock(t *testing.T) {
	server := newTestServer(t)

	getJSON(t, server.URL+"/api/days/5/slots/2/content", http.StatusForbidden, nil)
}

func TestStatusEndpoint(t *testing.T) {
	server := newTestServer(t)

	var status struct {
		DayIndex  int  `json:"day_index"`
		TotalDays int  `json:"total_days"`
		Started   bool `json:"started"`
	}
	getJSON(t, server.URL+"/api/status", http.StatusOK, &status)
	if status.DayIndex != 6 || status.TotalDays != 30 || !status.Started {
		t.Errorf("status = %+v", status)
	}
}
