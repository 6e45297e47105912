package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"lesson-booking/internal/data/entity"
	"lesson-booking/internal/data/repository"
	"lesson-booking/pkg/timeslot"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type scheduleFixture struct {
	svc       ScheduleService
	lessons   *fakeLessonRepo
	teacherID uuid.UUID
}

func newScheduleFixture(t *testing.T) *scheduleFixture {
	t.Helper()

	lessons := newFakeLessonRepo()
	policy := BookingPolicy{
		MinNotice:      24 * time.Hour,
		MaxAdvance:     30 * 24 * time.Hour,
		Hours:          timeslot.BusinessHours{OpenHour: 9, CloseHour: 21, Location: time.UTC},
		SlotInterval:   30 * time.Minute,
		LessonDuration: 30 * time.Minute,
		Location:       time.UTC,
	}

	repo := &repository.Repository{User: newFakeUserRepo(), Lesson: lessons}
	return &scheduleFixture{
		svc:       NewScheduleService(repo, policy, zap.NewNop()),
		lessons:   lessons,
		teacherID: uuid.New(),
	}
}

func (f *scheduleFixture) seedLesson(t *testing.T, status entity.LessonStatus, start, end time.Time) {
	t.Helper()
	err := f.lessons.Create(context.Background(), &entity.Lesson{
		Base:      entity.Base{ID: uuid.New()},
		TeacherID: f.teacherID,
		StudentID: uuid.New(),
		StartTime: start,
		EndTime:   end,
		Status:    status,
	})
	if err != nil {
		t.Fatalf("seed lesson: %v", err)
	}
}

func day(hour, min int) time.Time {
	return time.Date(2026, 9, 16, hour, min, 0, 0, time.UTC)
}

func TestGetAvailableSlots(t *testing.T) {
	f := newScheduleFixture(t)
	f.seedLesson(t, entity.LessonStatusScheduled, day(10, 0), day(10, 30))

	slots, err := f.svc.GetAvailableSlots(context.Background(), f.teacherID.String(), day(0, 0), day(0, 0).Add(24*time.Hour))
	if err != nil {
		t.Fatalf("get available slots: %v", err)
	}

	// 24 half-hour starts between 09:00 and 21:00, minus the booked one
	if len(slots) != 23 {
		t.Fatalf("slots = %d, want 23", len(slots))
	}

	for i, slot := range slots {
		if slot.StartTime.Equal(day(10, 0)) {
			t.Fatal("booked slot 10:00 should be excluded")
		}
		hour := slot.StartTime.UTC().Hour()
		if hour < 9 || hour >= 21 {
			t.Fatalf("slot %v outside business hours", slot.StartTime)
		}
		if i > 0 && !slots[i-1].StartTime.Before(slot.StartTime) {
			t.Fatalf("slots out of order at index %d", i)
		}
	}

	// Back-to-back with the booked lesson stays available
	if !slots[2].StartTime.Equal(day(10, 30)) {
		t.Fatalf("slot after booked lesson = %v, want 10:30", slots[2].StartTime)
	}
}

func TestGetAvailableSlotsPendingBlocks(t *testing.T) {
	f := newScheduleFixture(t)

	// A pending lesson still holds its window
	f.seedLesson(t, entity.LessonStatusPending, day(9, 0), day(9, 30))

	slots, err := f.svc.GetAvailableSlots(context.Background(), f.teacherID.String(), day(0, 0), day(0, 0).Add(24*time.Hour))
	if err != nil {
		t.Fatalf("get available slots: %v", err)
	}
	for _, slot := range slots {
		if slot.StartTime.Equal(day(9, 0)) {
			t.Fatal("pending lesson window should be excluded")
		}
	}
}

func TestGetAvailableSlotsCancelledReleases(t *testing.T) {
	f := newScheduleFixture(t)
	f.seedLesson(t, entity.LessonStatusCancelled, day(10, 0), day(10, 30))

	slots, err := f.svc.GetAvailableSlots(context.Background(), f.teacherID.String(), day(0, 0), day(0, 0).Add(24*time.Hour))
	if err != nil {
		t.Fatalf("get available slots: %v", err)
	}
	if len(slots) != 24 {
		t.Fatalf("slots = %d, cancelled lesson should not block any", len(slots))
	}
}

func TestGetAvailableSlotsEmptyCalendar(t *testing.T) {
	f := newScheduleFixture(t)

	slots, err := f.svc.GetAvailableSlots(context.Background(), f.teacherID.String(), day(0, 0), day(0, 0).Add(24*time.Hour))
	if err != nil {
		t.Fatalf("get available slots: %v", err)
	}
	if len(slots) != 24 {
		t.Fatalf("slots = %d, want 24 for an empty day", len(slots))
	}
}

func TestGetAvailableSlotsInvalidInput(t *testing.T) {
	f := newScheduleFixture(t)

	if _, err := f.svc.GetAvailableSlots(context.Background(), "not-a-uuid", day(0, 0), day(1, 0)); err == nil {
		t.Fatal("malformed teacher ID should fail")
	}

	_, err := f.svc.GetAvailableSlots(context.Background(), f.teacherID.String(), day(12, 0), day(12, 0))
	if !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("err = %v, want ErrInvalidInterval", err)
	}
}

func TestGetTeacherLessons(t *testing.T) {
	f := newScheduleFixture(t)
	f.seedLesson(t, entity.LessonStatusScheduled, day(10, 0), day(10, 30))
	f.seedLesson(t, entity.LessonStatusPending, day(11, 0), day(11, 30))
	f.seedLesson(t, entity.LessonStatusCompleted, day(12, 0), day(12, 30))
	f.seedLesson(t, entity.LessonStatusCancelled, day(13, 0), day(13, 30))

	lessons, err := f.svc.GetTeacherLessons(context.Background(), f.teacherID.String(), day(0, 0), day(0, 0).Add(24*time.Hour))
	if err != nil {
		t.Fatalf("get teacher lessons: %v", err)
	}

	// Only upcoming work shows: scheduled and pending
	if len(lessons) != 2 {
		t.Fatalf("lessons = %d, want 2", len(lessons))
	}
	if lessons[0].Status != entity.LessonStatusScheduled || lessons[1].Status != entity.LessonStatusPending {
		t.Fatalf("unexpected statuses %s, %s", lessons[0].Status, lessons[1].Status)
	}
}
