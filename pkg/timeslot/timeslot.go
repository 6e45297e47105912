// Package timeslot holds the pure time arithmetic behind slot generation:
// half-open interval overlap, business-hour checks and fixed-step slot
// enumeration. Nothing in here touches the database or the clock.
package timeslot

import "time"

// Slot is a half-open candidate window [Start, End).
type Slot struct {
	Start time.Time
	End   time.Time
}

func (s Slot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
// Back-to-back intervals (aEnd == bStart) do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// OverlapsAny reports whether the slot intersects at least one busy interval.
func (s Slot) OverlapsAny(busy []Slot) bool {
	for _, b := range busy {
		if Overlaps(s.Start, s.End, b.Start, b.End) {
			return true
		}
	}
	return false
}

// BusinessHours is a daily [OpenHour, CloseHour) window evaluated in Location.
type BusinessHours struct {
	OpenHour  int
	CloseHour int
	Location  *time.Location
}

// Contains reports whether t falls inside business hours. Only the start of a
// slot is tested, matching how slots are stepped on interval boundaries.
func (h BusinessHours) Contains(t time.Time) bool {
	loc := h.Location
	if loc == nil {
		loc = time.UTC
	}
	hour := t.In(loc).Hour()
	return h.OpenHour <= hour && hour < h.CloseHour
}

// Iterator walks candidate slots of a fixed duration, stepping by a fixed
// interval from `from` while the slot start stays before `to`. It is lazy and
// restartable; Reset rewinds it to the first candidate.
type Iterator struct {
	from     time.Time
	to       time.Time
	step     time.Duration
	duration time.Duration
	cursor   time.Time
}

func NewIterator(from, to time.Time, step, duration time.Duration) *Iterator {
	return &Iterator{
		from:     from,
		to:       to,
		step:     step,
		duration: duration,
		cursor:   from,
	}
}

// Next returns the next candidate slot in chronological order. The second
// return value is false once the range is exhausted.
func (it *Iterator) Next() (Slot, bool) {
	if it.step <= 0 || !it.cursor.Before(it.to) {
		return Slot{}, false
	}
	slot := Slot{Start: it.cursor, End: it.cursor.Add(it.duration)}
	it.cursor = it.cursor.Add(it.step)
	return slot, true
}

// Reset rewinds the iterator to the start of the range.
func (it *Iterator) Reset() {
	it.cursor = it.from
}
