package timeslot

import (
	"testing"
	"time"
)

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("load location %s: %v", name, err)
	}
	return loc
}

func at(hour, min int) time.Time {
	return time.Date(2026, 9, 14, hour, min, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                   string
		aStart, aEnd           time.Time
		bStart, bEnd           time.Time
		want                   bool
	}{
		{"identical", at(10, 0), at(10, 30), at(10, 0), at(10, 30), true},
		{"partial overlap", at(10, 0), at(11, 0), at(10, 30), at(11, 30), true},
		{"contained", at(10, 0), at(12, 0), at(10, 30), at(11, 0), true},
		{"back to back before", at(9, 0), at(10, 0), at(10, 0), at(11, 0), false},
		{"back to back after", at(10, 0), at(11, 0), at(9, 0), at(10, 0), false},
		{"disjoint", at(9, 0), at(9, 30), at(14, 0), at(14, 30), false},
		{"one minute overlap", at(10, 0), at(10, 31), at(10, 30), at(11, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd)
			if got != tt.want {
				t.Fatalf("Overlaps() = %v, want %v", got, tt.want)
			}
			// Overlap is symmetric
			if rev := Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd); rev != tt.want {
				t.Fatalf("Overlaps() reversed = %v, want %v", rev, tt.want)
			}
		})
	}
}

func TestSlotOverlapsAny(t *testing.T) {
	busy := []Slot{
		{Start: at(10, 0), End: at(10, 30)},
		{Start: at(14, 0), End: at(15, 0)},
	}

	free := Slot{Start: at(10, 30), End: at(11, 0)}
	if free.OverlapsAny(busy) {
		t.Fatal("back-to-back slot should not overlap busy intervals")
	}

	taken := Slot{Start: at(14, 30), End: at(15, 0)}
	if !taken.OverlapsAny(busy) {
		t.Fatal("slot inside a busy interval should overlap")
	}

	if (Slot{Start: at(9, 0), End: at(9, 30)}).OverlapsAny(nil) {
		t.Fatal("no busy intervals should mean no overlap")
	}
}

func TestBusinessHoursContains(t *testing.T) {
	hours := BusinessHours{OpenHour: 9, CloseHour: 21, Location: time.UTC}

	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"opening minute", at(9, 0), true},
		{"midday", at(13, 45), true},
		{"last slot of the day", at(20, 30), true},
		{"closing hour excluded", at(21, 0), false},
		{"before open", at(8, 59), false},
		{"midnight", at(0, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hours.Contains(tt.t); got != tt.want {
				t.Fatalf("Contains(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestBusinessHoursContainsTimezone(t *testing.T) {
	jakarta := mustLoad(t, "Asia/Jakarta") // UTC+7, no DST
	hours := BusinessHours{OpenHour: 9, CloseHour: 21, Location: jakarta}

	// 02:00 UTC is 09:00 in Jakarta
	if !hours.Contains(at(2, 0)) {
		t.Fatal("02:00 UTC should be inside Jakarta business hours")
	}
	// 15:00 UTC is 22:00 in Jakarta
	if hours.Contains(at(15, 0)) {
		t.Fatal("15:00 UTC should be outside Jakarta business hours")
	}
}

func TestBusinessHoursNilLocationDefaultsUTC(t *testing.T) {
	hours := BusinessHours{OpenHour: 9, CloseHour: 21}
	if !hours.Contains(at(12, 0)) {
		t.Fatal("nil location should evaluate in UTC")
	}
}

func TestIterator(t *testing.T) {
	from := at(9, 0)
	to := at(11, 0)
	it := NewIterator(from, to, 30*time.Minute, 30*time.Minute)

	var slots []Slot
	for slot, ok := it.Next(); ok; slot, ok = it.Next() {
		slots = append(slots, slot)
	}

	// 9:00, 9:30, 10:00, 10:30 - the last start strictly before `to`
	if len(slots) != 4 {
		t.Fatalf("got %d slots, want 4", len(slots))
	}

	for i, slot := range slots {
		wantStart := from.Add(time.Duration(i) * 30 * time.Minute)
		if !slot.Start.Equal(wantStart) {
			t.Fatalf("slot %d starts at %v, want %v", i, slot.Start, wantStart)
		}
		if slot.Duration() != 30*time.Minute {
			t.Fatalf("slot %d duration = %v, want 30m", i, slot.Duration())
		}
		if i > 0 && !slots[i-1].Start.Before(slot.Start) {
			t.Fatalf("slots out of order at index %d", i)
		}
	}

	// Exhausted iterator stays exhausted
	if _, ok := it.Next(); ok {
		t.Fatal("exhausted iterator returned a slot")
	}
}

func TestIteratorReset(t *testing.T) {
	it := NewIterator(at(9, 0), at(10, 0), 30*time.Minute, 30*time.Minute)

	first, ok := it.Next()
	if !ok {
		t.Fatal("expected at least one slot")
	}
	for _, ok := it.Next(); ok; _, ok = it.Next() {
	}

	it.Reset()
	again, ok := it.Next()
	if !ok {
		t.Fatal("reset iterator returned no slot")
	}
	if !again.Start.Equal(first.Start) || !again.End.Equal(first.End) {
		t.Fatalf("reset iterator returned %v, want %v", again, first)
	}
}

func TestIteratorEmptyAndInvalid(t *testing.T) {
	if _, ok := NewIterator(at(10, 0), at(10, 0), 30*time.Minute, 30*time.Minute).Next(); ok {
		t.Fatal("empty range should yield no slots")
	}
	if _, ok := NewIterator(at(10, 0), at(9, 0), 30*time.Minute, 30*time.Minute).Next(); ok {
		t.Fatal("inverted range should yield no slots")
	}
	if _, ok := NewIterator(at(9, 0), at(10, 0), 0, 30*time.Minute).Next(); ok {
		t.Fatal("zero step should yield no slots")
	}
}
