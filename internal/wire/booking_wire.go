package wire

import (
	"lesson-booking/internal/adaptor"
	"lesson-booking/internal/data/repository"
	"lesson-booking/pkg/middleware"
	"lesson-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// POST /api/lessons - Book a new lesson
		r.Post("/api/lessons", bookingHandler.CreateBooking)

		// GET /api/user/lessons - View the caller's booking history
		r.Get("/api/user/lessons", bookingHandler.GetUserLessons)

		r.Route("/api/lessons/{id}", func(r chi.Router) {
			// GET /api/lessons/{id} - View lesson details
			r.Get("/", bookingHandler.GetLessonByID)

			// PUT /api/lessons/{id} - Reschedule a lesson
			r.Put("/", bookingHandler.UpdateSchedule)

			// DELETE /api/lessons/{id} - Cancel a lesson
			r.Delete("/", bookingHandler.CancelBooking)

			// POST /api/lessons/{id}/confirm - Confirm payment, pending -> scheduled
			r.Post("/confirm", bookingHandler.ConfirmBooking)

			// PUT /api/lessons/{id}/complete - Mark a scheduled lesson as done
			r.Put("/complete", bookingHandler.CompleteBooking)

			// POST /api/lessons/{id}/participants - Join a group lesson
			r.Post("/participants", bookingHandler.AddParticipant)

			// DELETE /api/lessons/{id}/participants - Leave a group lesson
			r.Delete("/participants", bookingHandler.RemoveParticipant)
		})
	})
}
