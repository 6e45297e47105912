package entity

import (
	"testing"
	"time"
)

func newLesson(status LessonStatus) *Lesson {
	return &Lesson{
		Status:              status,
		StartTime:           time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC),
		EndTime:             time.Date(2026, 9, 14, 10, 30, 0, 0, time.UTC),
		DurationMinutes:     30,
		MaxParticipants:     3,
		CurrentParticipants: 1,
	}
}

func TestLessonConfirm(t *testing.T) {
	lesson := newLesson(LessonStatusPending)
	if !lesson.Confirm() {
		t.Fatal("pending lesson should confirm")
	}
	if lesson.Status != LessonStatusScheduled {
		t.Fatalf("status = %s, want scheduled", lesson.Status)
	}

	// Confirm is not idempotent; a second call is rejected
	if lesson.Confirm() {
		t.Fatal("scheduled lesson should not confirm again")
	}
}

func TestLessonCancel(t *testing.T) {
	for _, status := range []LessonStatus{LessonStatusPending, LessonStatusScheduled} {
		lesson := newLesson(status)
		if !lesson.Cancel() {
			t.Fatalf("%s lesson should cancel", status)
		}
		if lesson.Status != LessonStatusCancelled {
			t.Fatalf("status = %s, want cancelled", lesson.Status)
		}
	}
}

func TestLessonTerminalStatesAreImmutable(t *testing.T) {
	for _, status := range []LessonStatus{LessonStatusCompleted, LessonStatusCancelled} {
		lesson := newLesson(status)

		if lesson.Cancel() {
			t.Fatalf("%s lesson should not cancel", status)
		}
		if lesson.Confirm() {
			t.Fatalf("%s lesson should not confirm", status)
		}
		if lesson.Complete() {
			t.Fatalf("%s lesson should not complete", status)
		}
		if lesson.Status != status {
			t.Fatalf("status changed to %s after rejected transitions", lesson.Status)
		}
		if !lesson.IsTerminal() {
			t.Fatalf("%s should be terminal", status)
		}
	}
}

func TestLessonComplete(t *testing.T) {
	lesson := newLesson(LessonStatusScheduled)
	if !lesson.Complete() {
		t.Fatal("scheduled lesson should complete")
	}
	if lesson.Status != LessonStatusCompleted {
		t.Fatalf("status = %s, want completed", lesson.Status)
	}

	// Pending lessons cannot skip straight to completed
	pending := newLesson(LessonStatusPending)
	if pending.Complete() {
		t.Fatal("pending lesson should not complete")
	}
}

func TestLessonIsActive(t *testing.T) {
	for _, status := range []LessonStatus{LessonStatusPending, LessonStatusScheduled, LessonStatusCompleted} {
		if !newLesson(status).IsActive() {
			t.Fatalf("%s lesson should hold its time window", status)
		}
	}
	if newLesson(LessonStatusCancelled).IsActive() {
		t.Fatal("cancelled lesson should release its time window")
	}
}

func TestLessonParticipants(t *testing.T) {
	lesson := newLesson(LessonStatusScheduled)

	if !lesson.AddParticipant() || !lesson.AddParticipant() {
		t.Fatal("lesson with capacity should accept participants")
	}
	if lesson.CurrentParticipants != 3 {
		t.Fatalf("current = %d, want 3", lesson.CurrentParticipants)
	}

	// Full
	if lesson.AddParticipant() {
		t.Fatal("full lesson should reject participants")
	}

	for i := 0; i < 3; i++ {
		if !lesson.RemoveParticipant() {
			t.Fatalf("remove %d should succeed", i)
		}
	}
	if lesson.RemoveParticipant() {
		t.Fatal("empty lesson should clamp at zero")
	}
	if lesson.CurrentParticipants != 0 {
		t.Fatalf("current = %d, want 0", lesson.CurrentParticipants)
	}
}

func TestLessonAddParticipantRequiresScheduled(t *testing.T) {
	for _, status := range []LessonStatus{LessonStatusPending, LessonStatusCompleted, LessonStatusCancelled} {
		lesson := newLesson(status)
		if lesson.AddParticipant() {
			t.Fatalf("%s lesson should not accept participants", status)
		}
	}
}

func TestLessonReschedule(t *testing.T) {
	lesson := newLesson(LessonStatusScheduled)

	jakarta, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	start := time.Date(2026, 9, 15, 16, 0, 0, 0, jakarta)
	end := start.Add(time.Hour)
	lesson.Reschedule(start, end)

	if lesson.StartTime.Location() != time.UTC {
		t.Fatal("reschedule should normalize to UTC")
	}
	if !lesson.StartTime.Equal(start) || !lesson.EndTime.Equal(end) {
		t.Fatal("reschedule changed the instant, not just the location")
	}
	if lesson.DurationMinutes != 60 {
		t.Fatalf("duration = %d, want 60", lesson.DurationMinutes)
	}
}
