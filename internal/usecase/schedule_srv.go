package usecase

import (
	"context"
	"fmt"
	"time"

	"lesson-booking/internal/data/entity"
	"lesson-booking/internal/data/repository"
	"lesson-booking/internal/dto/response"
	"lesson-booking/pkg/timeslot"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ScheduleService interface {
	GetAvailableSlots(ctx context.Context, teacherID string, from, to time.Time) ([]response.SlotResponse, error)
	GetTeacherLessons(ctx context.Context, teacherID string, from, to time.Time) ([]response.LessonResponse, error)
}

type scheduleService struct {
	repo   *repository.Repository
	policy BookingPolicy
	log    *zap.Logger
}

func NewScheduleService(repo *repository.Repository, policy BookingPolicy, log *zap.Logger) ScheduleService {
	return &scheduleService{
		repo:   repo,
		policy: policy,
		log:    log.With(zap.String("service", "schedule")),
	}
}

// GetAvailableSlots enumerates fixed-size candidate windows across the range,
// keeping those inside business hours that do not overlap any of the
// teacher's active lessons. Results are chronological, ascending.
func (s *scheduleService) GetAvailableSlots(ctx context.Context, teacherID string, from, to time.Time) ([]response.SlotResponse, error) {
	teacherUUID, err := uuid.Parse(teacherID)
	if err != nil {
		return nil, fmt.Errorf("invalid teacher ID format %s: %w", teacherID, err)
	}

	from = from.UTC()
	to = to.UTC()
	if !to.After(from) {
		return nil, ErrInvalidInterval
	}

	lessons, err := s.repo.Lesson.FindActiveByTeacherAndWindow(ctx, teacherUUID, from, to)
	if err != nil {
		s.log.Error("Failed to load lessons for availability",
			zap.Error(err),
			zap.String("teacher_id", teacherID),
		)
		return nil, fmt.Errorf("load lessons: %w", err)
	}

	busy := make([]timeslot.Slot, 0, len(lessons))
	for _, lesson := range lessons {
		busy = append(busy, timeslot.Slot{Start: lesson.StartTime, End: lesson.EndTime})
	}

	var slots []response.SlotResponse
	it := timeslot.NewIterator(from, to, s.policy.SlotInterval, s.policy.LessonDuration)
	for slot, ok := it.Next(); ok; slot, ok = it.Next() {
		if !s.policy.Hours.Contains(slot.Start) {
			continue
		}
		if slot.OverlapsAny(busy) {
			continue
		}
		slots = append(slots, response.SlotResponse{
			StartTime: slot.Start.In(s.policy.Location),
			EndTime:   slot.End.In(s.policy.Location),
		})
	}

	s.log.Debug("Availability computed",
		zap.String("teacher_id", teacherID),
		zap.Int("busy", len(busy)),
		zap.Int("available", len(slots)),
	)

	return slots, nil
}

func (s *scheduleService) GetTeacherLessons(ctx context.Context, teacherID string, from, to time.Time) ([]response.LessonResponse, error) {
	teacherUUID, err := uuid.Parse(teacherID)
	if err != nil {
		return nil, fmt.Errorf("invalid teacher ID format %s: %w", teacherID, err)
	}

	if !to.After(from) {
		return nil, ErrInvalidInterval
	}

	lessons, err := s.repo.Lesson.FindActiveByTeacherAndWindow(ctx, teacherUUID, from.UTC(), to.UTC())
	if err != nil {
		s.log.Error("Failed to load teacher lessons",
			zap.Error(err),
			zap.String("teacher_id", teacherID),
		)
		return nil, fmt.Errorf("load teacher lessons: %w", err)
	}

	items := make([]response.LessonResponse, 0, len(lessons))
	for _, lesson := range lessons {
		if lesson.Status == entity.LessonStatusCompleted {
			continue
		}
		items = append(items, response.LessonToResponse(lesson, s.policy.Location))
	}

	return items, nil
}
