package entity

import (
	"time"

	"github.com/google/uuid"
)

type LessonStatus string

const (
	LessonStatusPending   LessonStatus = "pending"
	LessonStatusScheduled LessonStatus = "scheduled"
	LessonStatusCompleted LessonStatus = "completed"
	LessonStatusCancelled LessonStatus = "cancelled"
)

type LessonType string

const (
	LessonTypeIndividual LessonType = "individual"
	LessonTypeGroup      LessonType = "group"
	LessonTypeWorkshop   LessonType = "workshop"
)

// Lesson is the booking unit. Times are stored UTC-normalized; the interval
// [StartTime, EndTime) is half-open and must satisfy StartTime < EndTime.
type Lesson struct {
	Base
	Title               string       `db:"title"`
	Description         *string      `db:"description"`
	TeacherID           uuid.UUID    `db:"teacher_id"`
	StudentID           uuid.UUID    `db:"student_id"`
	StartTime           time.Time    `db:"start_time"`
	EndTime             time.Time    `db:"end_time"`
	DurationMinutes     int          `db:"duration_minutes"`
	LessonType          LessonType   `db:"lesson_type"`
	Level               string       `db:"level"`
	Status              LessonStatus `db:"status"`
	MaxParticipants     int          `db:"max_participants"`
	CurrentParticipants int          `db:"current_participants"`
	Price               float64      `db:"price"`
	Currency            string       `db:"currency"`
	MeetingURL          *string      `db:"meeting_url"`
	MeetingID           *string      `db:"meeting_id"`
	MeetingPassword     *string      `db:"meeting_password"`
}

// IsTerminal reports whether the lesson reached a final state. Terminal
// lessons are immutable except for audit fields.
func (l *Lesson) IsTerminal() bool {
	return l.Status == LessonStatusCompleted || l.Status == LessonStatusCancelled
}

// IsActive reports whether the lesson participates in conflict checks.
// Only cancelled lessons release their time window.
func (l *Lesson) IsActive() bool {
	return l.Status != LessonStatusCancelled
}

// IsAvailable reports whether the lesson can take another participant.
func (l *Lesson) IsAvailable() bool {
	return l.Status == LessonStatusScheduled && l.CurrentParticipants < l.MaxParticipants
}

// Confirm moves a payment-gated lesson from pending to scheduled.
func (l *Lesson) Confirm() bool {
	if l.Status != LessonStatusPending {
		return false
	}
	l.Status = LessonStatusScheduled
	return true
}

// Cancel transitions pending or scheduled lessons to cancelled. Calls from a
// terminal state are rejected and leave the lesson unchanged.
func (l *Lesson) Cancel() bool {
	if l.Status != LessonStatusPending && l.Status != LessonStatusScheduled {
		return false
	}
	l.Status = LessonStatusCancelled
	return true
}

// Complete transitions a scheduled lesson to completed.
func (l *Lesson) Complete() bool {
	if l.Status != LessonStatusScheduled {
		return false
	}
	l.Status = LessonStatusCompleted
	return true
}

// AddParticipant increments the participant counter while capacity remains.
func (l *Lesson) AddParticipant() bool {
	if !l.IsAvailable() {
		return false
	}
	l.CurrentParticipants++
	return true
}

// RemoveParticipant decrements the participant counter, never below zero.
func (l *Lesson) RemoveParticipant() bool {
	if l.CurrentParticipants <= 0 {
		return false
	}
	l.CurrentParticipants--
	return true
}

// Reschedule moves the lesson window and rederives the duration. The caller
// is responsible for policy and conflict checks.
func (l *Lesson) Reschedule(start, end time.Time) {
	l.StartTime = start.UTC()
	l.EndTime = end.UTC()
	l.DurationMinutes = int(end.Sub(start) / time.Minute)
}
