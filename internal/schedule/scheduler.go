// Package schedule drives time-gate rollover notifications. Gates only
// flip at fixed local hours, so a cron job at those boundaries is enough
// to keep connected frontends current.
package schedule

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/surprise-calendar/backend/internal/event"
	"github.com/surprise-calendar/backend/internal/gate"
	"github.com/surprise-calendar/backend/internal/storage"
	"github.com/surprise-calendar/backend/internal/websocket"
)

// RolloverScheduler broadcasts slot gate openings and day rollovers.
type RolloverScheduler struct {
	cron        *cron.Cron
	window      event.Window
	evaluator   *gate.Evaluator
	store       storage.UnlockStore
	broadcaster *websocket.EventBroadcaster

	mu          sync.Mutex
	lastDayIdx  int
	lastDaySeen bool
}

// NewRolloverScheduler creates a new rollover scheduler.
func NewRolloverScheduler(
	window event.Window,
	evaluator *gate.Evaluator,
	store storage.UnlockStore,
	hub *websocket.Hub,
) *RolloverScheduler {
	var broadcaster *websocket.EventBroadcaster
	if hub != nil {
		broadcaster = websocket.NewEventBroadcaster(hub)
	}

	return &RolloverScheduler{
		cron:        cron.New(cron.WithLocation(evaluator.Location())),
		window:      window,
		evaluator:   evaluator,
		store:       store,
		broadcaster: broadcaster,
	}
}

// Start begins the rollover scheduler.
func (s *RolloverScheduler) Start() {
	log.Println("Starting gate rollover scheduler...")

	// Gates open at 00:00, 06:00, 12:00 and 18:00 local time
	s.cron.AddFunc("0 0,6,12,18 * * *", func() {
		s.announceGateChange(time.Now())
	})

	s.cron.Start()
	log.Println("Gate rollover scheduler started")
}

// Stop gracefully shuts down the scheduler.
func (s *RolloverScheduler) Stop() {
	log.Println("Stopping gate rollover scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Gate rollover scheduler stopped")
}

// announceGateChange broadcasts the gate transitions that happened at the
// given instant: a day rollover at midnight and the newly time-unlocked
// slot on the current day.
func (s *RolloverScheduler) announceGateChange(now time.Time) {
	if s.broadcaster == nil {
		return
	}

	local := now.In(s.evaluator.Location())
	day := s.window.DayIndexAt(local)

	s.mu.Lock()
	prevDay, seen := s.lastDayIdx, s.lastDaySeen
	s.lastDayIdx, s.lastDaySeen = day, true
	s.mu.Unlock()

	if seen && day != prevDay {
		log.Printf("Day rolled over: %d -> %d", prevDay, day)
		s.broadcaster.BroadcastDayRolledOver(prevDay, day)
	}

	if !s.window.ContainsDay(day) {
		return
	}

	unlocked, err := s.loadSet()
	if err != nil {
		log.Printf("Failed to load unlock set for rollover broadcast: %v", err)
		unlocked = gate.Set{}
	}

	for _, slot := range event.Slots {
		if slot.RequiredHour != local.Hour() {
			continue
		}

		id := event.SurpriseID(day, slot.Number)
		status := s.evaluator.SlotState(s.window, day, slot, local, unlocked)
		log.Printf("Gate opened for %s (status: %s)", id, status)
		s.broadcaster.BroadcastSlotStatusChanged(id, day, slot.Number,
			string(gate.StatusTimeLocked), string(status))
	}
}

func (s *RolloverScheduler) loadSet() (gate.Set, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ids, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return gate.NewSet(ids), nil
}
