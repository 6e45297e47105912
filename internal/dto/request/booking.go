package request

import "time"

type CreateLessonRequest struct {
	TeacherID       string    `json:"teacher_id" validate:"required,uuid4"`
	Title           string    `json:"title" validate:"required,max=255"`
	Description     *string   `json:"description,omitempty" validate:"omitempty,max=1000"`
	StartTime       time.Time `json:"start_time" validate:"required"`
	EndTime         time.Time `json:"end_time" validate:"required"`
	LessonType      string    `json:"lesson_type" validate:"required,oneof=individual group workshop"`
	Level           string    `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	MaxParticipants int       `json:"max_participants" validate:"omitempty,gte=1"`
	Price           float64   `json:"price" validate:"gte=0"`
	Currency        string    `json:"currency" validate:"omitempty,len=3"`
	MeetingURL      *string   `json:"meeting_url,omitempty" validate:"omitempty,max=255"`
	MeetingID       *string   `json:"meeting_id,omitempty" validate:"omitempty,max=100"`
	MeetingPassword *string   `json:"meeting_password,omitempty" validate:"omitempty,max=100"`
}

type UpdateLessonRequest struct {
	NewStartTime time.Time `json:"new_start_time" validate:"required"`
	NewEndTime   time.Time `json:"new_end_time" validate:"required"`
}
