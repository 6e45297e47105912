package usecase

import (
	"context"
	"fmt"
	"time"

	"lesson-booking/internal/data/entity"
	"lesson-booking/internal/data/repository"
	"lesson-booking/internal/dto/request"
	"lesson-booking/internal/dto/response"
	"lesson-booking/internal/notify"
	"lesson-booking/pkg/database"
	"lesson-booking/pkg/lock"
	"lesson-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// lockTTL bounds how long a crashed request can hold a teacher's calendar.
const lockTTL = 5 * time.Second

type BookingService interface {
	CreateBooking(ctx context.Context, studentID string, req *request.CreateLessonRequest) (*response.LessonResponse, error)
	GetLessonByID(ctx context.Context, lessonID string) (*response.LessonResponse, error)
	GetUserLessons(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.LessonResponse], error)
	ConfirmBooking(ctx context.Context, callerID, lessonID string) (*response.LessonResponse, error)
	UpdateSchedule(ctx context.Context, callerID, lessonID string, req *request.UpdateLessonRequest) (*response.LessonResponse, error)
	CancelBooking(ctx context.Context, callerID, lessonID string) (*response.LessonResponse, error)
	CompleteBooking(ctx context.Context, callerID, lessonID string) (*response.LessonResponse, error)
	AddParticipant(ctx context.Context, callerID, lessonID string) (*response.LessonResponse, error)
	RemoveParticipant(ctx context.Context, callerID, lessonID string) (*response.LessonResponse, error)
}

type bookingService struct {
	repo     *repository.Repository
	policy   BookingPolicy
	locker   lock.Locker
	gateway  PaymentGateway
	notifier notify.Notifier
	log      *zap.Logger
	now      func() time.Time
}

func NewBookingService(
	repo *repository.Repository,
	policy BookingPolicy,
	locker lock.Locker,
	gateway PaymentGateway,
	notifier notify.Notifier,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		repo:     repo,
		policy:   policy,
		locker:   locker,
		gateway:  gateway,
		notifier: notifier,
		log:      log.With(zap.String("service", "booking")),
		now:      time.Now,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, studentID string, req *request.CreateLessonRequest) (*response.LessonResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	studentUUID, err := uuid.Parse(studentID)
	if err != nil {
		return nil, fmt.Errorf("invalid student ID format %s: %w", studentID, err)
	}

	teacherUUID, err := uuid.Parse(req.TeacherID)
	if err != nil {
		return nil, fmt.Errorf("invalid teacher ID format %s: %w", req.TeacherID, err)
	}

	start := req.StartTime.UTC()
	end := req.EndTime.UTC()

	now := s.now().UTC()
	if err := s.policy.ValidateWindow(start, end, now); err != nil {
		return nil, err
	}

	teacher, err := s.repo.User.FindByID(ctx, teacherUUID)
	if err != nil {
		s.log.Error("Failed to load teacher", zap.Error(err), zap.String("teacher_id", req.TeacherID))
		return nil, fmt.Errorf("load teacher: %w", err)
	}
	if teacher == nil || teacher.Role != entity.RoleTeacher {
		return nil, fmt.Errorf("teacher %s: %w", req.TeacherID, ErrNotFound)
	}

	// The conflict check and the insert must not interleave with another
	// booking for the same teacher.
	lockToken, err := lock.Acquire(ctx, s.locker, teacherKey(teacherUUID), lockTTL)
	if err != nil {
		return nil, fmt.Errorf("acquire teacher lock: %w", err)
	}
	defer s.locker.Unlock(ctx, teacherKey(teacherUUID), lockToken)

	conflicts, err := s.repo.Lesson.CountConflicting(ctx, teacherUUID, start, end, uuid.Nil)
	if err != nil {
		return nil, fmt.Errorf("check conflicts: %w", err)
	}
	if conflicts > 0 {
		return nil, ErrSlotConflict
	}

	status := entity.LessonStatusScheduled
	if s.policy.PaymentRequired {
		status = entity.LessonStatusPending
	}

	maxParticipants := req.MaxParticipants
	if maxParticipants < 1 {
		maxParticipants = 1
	}
	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	lesson := &entity.Lesson{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:               req.Title,
		Description:         req.Description,
		TeacherID:           teacherUUID,
		StudentID:           studentUUID,
		StartTime:           start,
		EndTime:             end,
		DurationMinutes:     int(end.Sub(start) / time.Minute),
		LessonType:          entity.LessonType(req.LessonType),
		Level:               req.Level,
		Status:              status,
		MaxParticipants:     maxParticipants,
		CurrentParticipants: 1,
		Price:               req.Price,
		Currency:            currency,
		MeetingURL:          req.MeetingURL,
		MeetingID:           req.MeetingID,
		MeetingPassword:     req.MeetingPassword,
	}

	if err := s.repo.Lesson.Create(ctx, lesson); err != nil {
		if database.IsExclusionViolation(err) {
			// Treated exactly like a pre-check rejection; caller retries
			// with a different slot.
			return nil, ErrSlotConflict
		}
		return nil, fmt.Errorf("create lesson: %w", err)
	}

	s.log.Info("Lesson booked",
		zap.String("lesson_id", lesson.ID.String()),
		zap.String("teacher_id", req.TeacherID),
		zap.String("student_id", studentID),
		zap.Time("start_time", start),
		zap.String("status", string(status)),
	)

	s.notifyParticipants(notify.EventBooked, lesson)

	resp := response.LessonToResponse(lesson, s.policy.Location)
	return &resp, nil
}

func (s *bookingService) GetLessonByID(ctx context.Context, lessonID string) (*response.LessonResponse, error) {
	lesson, err := s.loadLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	resp := response.LessonToResponse(lesson, s.policy.Location)
	return &resp, nil
}

func (s *bookingService) GetUserLessons(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.LessonResponse], error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	lessons, err := s.repo.Lesson.FindByStudentID(ctx, userUUID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get user lessons", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("get user lessons: %w", err)
	}

	total, err := s.repo.Lesson.CountByStudentID(ctx, userUUID)
	if err != nil {
		s.log.Error("Failed to count user lessons", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("count user lessons: %w", err)
	}

	items := make([]response.LessonResponse, len(lessons))
	for i, lesson := range lessons {
		items[i] = response.LessonToResponse(lesson, s.policy.Location)
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (s *bookingService) ConfirmBooking(ctx context.Context, callerID, lessonID string) (*response.LessonResponse, error) {
	lesson, err := s.loadOwnedLesson(ctx, callerID, lessonID)
	if err != nil {
		return nil, err
	}

	if lesson.Status != entity.LessonStatusPending {
		return nil, fmt.Errorf("lesson %s is %s: %w", lessonID, lesson.Status, ErrInvalidTransition)
	}

	confirmed, err := s.gateway.IsConfirmed(ctx, lesson.ID)
	if err != nil {
		// Gateway trouble is not a scheduling error; the lesson stays pending.
		s.log.Error("Payment gateway check failed",
			zap.Error(err), zap.String("lesson_id", lessonID))
		return nil, fmt.Errorf("payment gateway: %w", err)
	}
	if !confirmed {
		return nil, ErrPaymentNotConfirmed
	}

	lesson.Confirm()
	lesson.UpdatedAt = s.now().UTC()

	if err := s.repo.Lesson.Update(ctx, lesson); err != nil {
		return nil, fmt.Errorf("confirm lesson: %w", err)
	}

	s.log.Info("Lesson confirmed", zap.String("lesson_id", lessonID))
	s.notifyParticipants(notify.EventConfirmed, lesson)

	resp := response.LessonToResponse(lesson, s.policy.Location)
	return &resp, nil
}

func (s *bookingService) UpdateSchedule(ctx context.Context, callerID, lessonID string, req *request.UpdateLessonRequest) (*response.LessonResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update schedule validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	lesson, err := s.loadOwnedLesson(ctx, callerID, lessonID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if lesson.IsTerminal() {
		return nil, fmt.Errorf("lesson %s is %s: %w", lessonID, lesson.Status, ErrInvalidTransition)
	}
	if lesson.StartTime.Before(now) {
		return nil, fmt.Errorf("lesson %s already started: %w", lessonID, ErrInvalidTransition)
	}

	start := req.NewStartTime.UTC()
	end := req.NewEndTime.UTC()
	if err := s.policy.ValidateWindow(start, end, now); err != nil {
		return nil, err
	}

	lockToken, err := lock.Acquire(ctx, s.locker, teacherKey(lesson.TeacherID), lockTTL)
	if err != nil {
		return nil, fmt.Errorf("acquire teacher lock: %w", err)
	}
	defer s.locker.Unlock(ctx, teacherKey(lesson.TeacherID), lockToken)

	// Exclude the lesson itself so it does not conflict with its old window.
	conflicts, err := s.repo.Lesson.CountConflicting(ctx, lesson.TeacherID, start, end, lesson.ID)
	if err != nil {
		return nil, fmt.Errorf("check conflicts: %w", err)
	}
	if conflicts > 0 {
		return nil, ErrSlotConflict
	}

	lesson.Reschedule(start, end)
	lesson.UpdatedAt = now

	if err := s.repo.Lesson.Update(ctx, lesson); err != nil {
		if database.IsExclusionViolation(err) {
			return nil, ErrSlotConflict
		}
		return nil, fmt.Errorf("update lesson: %w", err)
	}

	s.log.Info("Lesson rescheduled",
		zap.String("lesson_id", lessonID),
		zap.Time("new_start", start),
		zap.Time("new_end", end),
	)
	s.notifyParticipants(notify.EventRescheduled, lesson)

	resp := response.LessonToResponse(lesson, s.policy.Location)
	return &resp, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, callerID, lessonID string) (*response.LessonResponse, error) {
	lesson, err := s.loadOwnedLesson(ctx, callerID, lessonID)
	if err != nil {
		return nil, err
	}

	// Cancelling from a terminal state is an error, not a silent no-op:
	// the record, including updated_at, stays untouched.
	if !lesson.Cancel() {
		return nil, fmt.Errorf("lesson %s is %s: %w", lessonID, lesson.Status, ErrInvalidTransition)
	}
	lesson.UpdatedAt = s.now().UTC()

	if err := s.repo.Lesson.Update(ctx, lesson); err != nil {
		return nil, fmt.Errorf("cancel lesson: %w", err)
	}

	s.log.Info("Lesson cancelled", zap.String("lesson_id", lessonID))
	s.notifyParticipants(notify.EventCancelled, lesson)

	resp := response.LessonToResponse(lesson, s.policy.Location)
	return &resp, nil
}

func (s *bookingService) CompleteBooking(ctx context.Context, callerID, lessonID string) (*response.LessonResponse, error) {
	lesson, err := s.loadOwnedLesson(ctx, callerID, lessonID)
	if err != nil {
		return nil, err
	}

	if !lesson.Complete() {
		return nil, fmt.Errorf("lesson %s is %s: %w", lessonID, lesson.Status, ErrInvalidTransition)
	}
	lesson.UpdatedAt = s.now().UTC()

	if err := s.repo.Lesson.Update(ctx, lesson); err != nil {
		return nil, fmt.Errorf("complete lesson: %w", err)
	}

	s.log.Info("Lesson completed", zap.String("lesson_id", lessonID))
	s.notifyParticipants(notify.EventCompleted, lesson)

	resp := response.LessonToResponse(lesson, s.policy.Location)
	return &resp, nil
}

func (s *bookingService) AddParticipant(ctx context.Context, callerID, lessonID string) (*response.LessonResponse, error) {
	id, err := uuid.Parse(lessonID)
	if err != nil {
		return nil, fmt.Errorf("invalid lesson ID format %s: %w", lessonID, err)
	}

	// The counter is a read-modify-write; two concurrent joins for the last
	// seat must not both pass the capacity check.
	lockToken, err := lock.Acquire(ctx, s.locker, lessonKey(id), lockTTL)
	if err != nil {
		return nil, fmt.Errorf("acquire lesson lock: %w", err)
	}
	defer s.locker.Unlock(ctx, lessonKey(id), lockToken)

	lesson, err := s.loadLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	if !lesson.AddParticipant() {
		if lesson.Status != entity.LessonStatusScheduled {
			return nil, fmt.Errorf("lesson %s is %s: %w", lessonID, lesson.Status, ErrInvalidTransition)
		}
		return nil, fmt.Errorf("lesson %s is full: %w", lessonID, ErrCapacityExceeded)
	}
	lesson.UpdatedAt = s.now().UTC()

	if err := s.repo.Lesson.Update(ctx, lesson); err != nil {
		return nil, fmt.Errorf("add participant: %w", err)
	}

	s.log.Info("Participant added",
		zap.String("lesson_id", lessonID),
		zap.String("user_id", callerID),
		zap.Int("current_participants", lesson.CurrentParticipants),
	)

	resp := response.LessonToResponse(lesson, s.policy.Location)
	return &resp, nil
}

func (s *bookingService) RemoveParticipant(ctx context.Context, callerID, lessonID string) (*response.LessonResponse, error) {
	id, err := uuid.Parse(lessonID)
	if err != nil {
		return nil, fmt.Errorf("invalid lesson ID format %s: %w", lessonID, err)
	}

	lockToken, err := lock.Acquire(ctx, s.locker, lessonKey(id), lockTTL)
	if err != nil {
		return nil, fmt.Errorf("acquire lesson lock: %w", err)
	}
	defer s.locker.Unlock(ctx, lessonKey(id), lockToken)

	lesson, err := s.loadLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	// The counter clamps at zero; removing from an empty lesson is a no-op.
	if lesson.RemoveParticipant() {
		lesson.UpdatedAt = s.now().UTC()
		if err := s.repo.Lesson.Update(ctx, lesson); err != nil {
			return nil, fmt.Errorf("remove participant: %w", err)
		}

		s.log.Info("Participant removed",
			zap.String("lesson_id", lessonID),
			zap.String("user_id", callerID),
			zap.Int("current_participants", lesson.CurrentParticipants),
		)
	}

	resp := response.LessonToResponse(lesson, s.policy.Location)
	return &resp, nil
}

// ==================== HELPER METHODS ====================

func teacherKey(teacherID uuid.UUID) string {
	return "teacher:" + teacherID.String()
}

func lessonKey(lessonID uuid.UUID) string {
	return "lesson:" + lessonID.String()
}

func (s *bookingService) loadLesson(ctx context.Context, lessonID string) (*entity.Lesson, error) {
	id, err := uuid.Parse(lessonID)
	if err != nil {
		return nil, fmt.Errorf("invalid lesson ID format %s: %w", lessonID, err)
	}

	lesson, err := s.repo.Lesson.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load lesson: %w", err)
	}
	if lesson == nil {
		return nil, fmt.Errorf("lesson %s: %w", lessonID, ErrNotFound)
	}

	return lesson, nil
}

// loadOwnedLesson loads a lesson and verifies the caller is its student or
// its teacher.
func (s *bookingService) loadOwnedLesson(ctx context.Context, callerID, lessonID string) (*entity.Lesson, error) {
	callerUUID, err := uuid.Parse(callerID)
	if err != nil {
		return nil, fmt.Errorf("invalid caller ID format %s: %w", callerID, err)
	}

	lesson, err := s.loadLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	if lesson.StudentID != callerUUID && lesson.TeacherID != callerUUID {
		return nil, fmt.Errorf("lesson %s does not belong to caller: %w", lessonID, ErrUnauthorized)
	}

	return lesson, nil
}

// notifyParticipants fires a best-effort notification to the student.
// Delivery never blocks or reverts the transition that triggered it.
func (s *bookingService) notifyParticipants(kind notify.EventKind, lesson *entity.Lesson) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		student, err := s.repo.User.FindByID(ctx, lesson.StudentID)
		if err != nil || student == nil {
			s.log.Warn("Skipping notification, student lookup failed",
				zap.Error(err),
				zap.String("lesson_id", lesson.ID.String()),
			)
			return
		}

		s.notifier.Notify(ctx, kind, student.Email, lesson)
	}()
}
