package response

import (
	"time"

	"lesson-booking/internal/data/entity"
)

type LessonResponse struct {
	ID                  string              `json:"id"`
	Title               string              `json:"title"`
	Description         *string             `json:"description,omitempty"`
	TeacherID           string              `json:"teacher_id"`
	StudentID           string              `json:"student_id"`
	StartTime           time.Time           `json:"start_time"`
	EndTime             time.Time           `json:"end_time"`
	DurationMinutes     int                 `json:"duration_minutes"`
	LessonType          entity.LessonType   `json:"lesson_type"`
	Level               string              `json:"level,omitempty"`
	Status              entity.LessonStatus `json:"status"`
	MaxParticipants     int                 `json:"max_participants"`
	CurrentParticipants int                 `json:"current_participants"`
	Price               float64             `json:"price"`
	Currency            string              `json:"currency"`
	MeetingURL          *string             `json:"meeting_url,omitempty"`
	MeetingID           *string             `json:"meeting_id,omitempty"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

type SlotResponse struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// LessonToResponse renders times in the configured display timezone.
func LessonToResponse(lesson *entity.Lesson, loc *time.Location) LessonResponse {
	if loc == nil {
		loc = time.UTC
	}
	return LessonResponse{
		ID:                  lesson.ID.String(),
		Title:               lesson.Title,
		Description:         lesson.Description,
		TeacherID:           lesson.TeacherID.String(),
		StudentID:           lesson.StudentID.String(),
		StartTime:           lesson.StartTime.In(loc),
		EndTime:             lesson.EndTime.In(loc),
		DurationMinutes:     lesson.DurationMinutes,
		LessonType:          lesson.LessonType,
		Level:               lesson.Level,
		Status:              lesson.Status,
		MaxParticipants:     lesson.MaxParticipants,
		CurrentParticipants: lesson.CurrentParticipants,
		Price:               lesson.Price,
		Currency:            lesson.Currency,
		MeetingURL:          lesson.MeetingURL,
		MeetingID:           lesson.MeetingID,
		CreatedAt:           lesson.CreatedAt,
		UpdatedAt:           lesson.UpdatedAt,
	}
}
