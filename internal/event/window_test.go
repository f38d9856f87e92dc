package event

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d, hour, min int) time.Time {
	return time.Date(y, m, d, hour, min, 0, 0, time.UTC)
}

func TestDayIndexOnStartDate(t *testing.T) {
	w := NewWindow(date(2026, time.January, 15, 0, 0), 175)

	for _, hour := range []int{0, 5, 12, 23} {
		if got := w.DayIndexAt(date(2026, time.January, 15, hour, 30)); got != 1 {
			t.Errorf("DayIndexAt(start date %02d:30) = %d, want 1", hour, got)
		}
	}
}

func TestDayIndexLaterDays(t *testing.T) {
	w := NewWindow(date(2026, time.January, 15, 0, 0), 175)

	for n := 1; n <= 30; n++ {
		at := date(2026, time.January, 15, 9, 0).AddDate(0, 0, n)
		if got := w.DayIndexAt(at); got != n+1 {
			t.Errorf("DayIndexAt(%d days after start) = %d, want %d", n, got, n+1)
		}
	}
}

func TestDayIndexBeforeStart(t *testing.T) {
	w := NewWindow(date(2026, time.January, 15, 0, 0), 175)

	// Behavior before the window start is index <= 0; callers treat
	// anything below 1 as "before start".
	if got := w.DayIndexAt(date(2026, time.January, 14, 23, 59)); got != 0 {
		t.Errorf("DayIndexAt(day before start) = %d, want 0", got)
	}
	if got := w.DayIndexAt(date(2026, time.January, 10, 12, 0)); got != -4 {
		t.Errorf("DayIndexAt(5 days before start) = %d, want -4", got)
	}
}

func TestDayIndexScenario(t *testing.T) {
	// Start 2026-01-15, now 2026-01-20T05:00 -> day 6
	w := NewWindow(date(2026, time.January, 15, 0, 0), 175)
	if got := w.DayIndexAt(date(2026, time.January, 20, 5, 0)); got != 6 {
		t.Errorf("DayIndexAt(2026-01-20T05:00) = %d, want 6", got)
	}
}

func TestContainsDay(t *testing.T) {
	w := NewWindow(date(2026, time.January, 15, 0, 0), 175)

	for _, tc := range []struct {
		day  int
		want bool
	}{
		{0, false},
		{1, true},
		{175, true},
		{176, false},
		{-3, false},
	} {
		if got := w.ContainsDay(tc.day); got != tc.want {
			t.Errorf("ContainsDay(%d) = %v, want %v", tc.day, got, tc.want)
		}
	}
}

func TestSurpriseID(t *testing.T) {
	if got := SurpriseID(3, 2); got != "day3surprise2" {
		t.Errorf("SurpriseID(3, 2) = %q, want day3surprise2", got)
	}
	if got := SurpriseID(175, 4); got != "day175surprise4" {
		t.Errorf("SurpriseID(175, 4) = %q, want day175surprise4", got)
	}
}

func TestParseSurpriseID(t *testing.T) {
	day, slot, err := ParseSurpriseID("day3surprise2")
	if err != nil {
		t.Fatalf("ParseSurpriseID returned error: %v", err)
	}
	if day != 3 || slot != 2 {
		t.Errorf("ParseSurpriseID = (%d, %d), want (3, 2)", day, slot)
	}

	for _, bad := range []string{
		"",
		"day3",
		"surprise2",
		"dayXsurprise2",
		"day3surpriseY",
		"day03surprise2",
		"day3surprise2extra",
	} {
		if _, _, err := ParseSurpriseID(bad); err == nil {
			t.Errorf("ParseSurpriseID(%q) succeeded, want error", bad)
		}
	}
}

func TestSlotTable(t *testing.T) {
	wantHours := []int{0, 6, 12, 18}
	wantTypes := []ContentType{ContentHaiku, ContentLetter, ContentPicture, ContentReason}

	for i, slot := range Slots {
		if slot.Number != i+1 {
			t.Errorf("Slots[%d].Number = %d, want %d", i, slot.Number, i+1)
		}
		if slot.RequiredHour != wantHours[i] {
			t.Errorf("Slots[%d].RequiredHour = %d, want %d", i, slot.RequiredHour, wantHours[i])
		}
		if slot.ContentType != wantTypes[i] {
			t.Errorf("Slots[%d].ContentType = %s, want %s", i, slot.ContentType, wantTypes[i])
		}
	}

	if _, ok := SlotByNumber(0); ok {
		t.Error("SlotByNumber(0) should not resolve")
	}
	if _, ok := SlotByNumber(5); ok {
		t.Error("SlotByNumber(5) should not resolve")
	}
	slot, ok := SlotByNumber(4)
	if !ok || slot.RequiredHour != 18 {
		t.Errorf("SlotByNumber(4) = %+v, %v; want 6 PM slot", slot, ok)
	}
}

func TestConfigWindow(t *testing.T) {
	cfg := Config{StartDate: "2026-01-15", TotalDays: 175}
	w, err := cfg.Window()
	if err != nil {
		t.Fatalf("Window returned error: %v", err)
	}
	if w.TotalDays != 175 {
		t.Errorf("TotalDays = %d, want 175", w.TotalDays)
	}
	if w.StartDate.Year() != 2026 || w.StartDate.Month() != time.January || w.StartDate.Day() != 15 {
		t.Errorf("StartDate = %v, want 2026-01-15", w.StartDate)
	}

	if _, err := (Config{StartDate: "not-a-date", TotalDays: 10}).Window(); err == nil {
		t.Error("Window should reject an unparsable start date")
	}
	if _, err := (Config{StartDate: "2026-01-15", TotalDays: 0}).Window(); err == nil {
		t.Error("Window should reject zero total days")
	}
}
