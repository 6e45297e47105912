package adaptor

import (
	"lesson-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	Booking  *BookingHandler
	Schedule *ScheduleHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		Booking:  NewBookingHandler(service.Booking, log),
		Schedule: NewScheduleHandler(service.Schedule, log),
	}
}
