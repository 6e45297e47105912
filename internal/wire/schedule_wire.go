package wire

import (
	"lesson-booking/internal/adaptor"
	"lesson-booking/internal/data/repository"
	"lesson-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireSchedule(
	r chi.Router,
	scheduleHandler *adaptor.ScheduleHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/teachers/{id}/slots - Available slots for a teacher
	r.Get("/api/teachers/{id}/slots", scheduleHandler.GetAvailableSlots)

	// GET /api/teachers/{id}/lessons - A teacher's upcoming lessons
	r.Get("/api/teachers/{id}/lessons", scheduleHandler.GetTeacherLessons)
}
