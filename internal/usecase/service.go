package usecase

import (
	"lesson-booking/internal/data/repository"
	"lesson-booking/internal/notify"
	"lesson-booking/pkg/lock"
	"lesson-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth     AuthService
	Booking  BookingService
	Schedule ScheduleService
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	policy BookingPolicy,
	locker lock.Locker,
	gateway PaymentGateway,
	notifier notify.Notifier,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:     NewAuthService(repo, config, log),
		Booking:  NewBookingService(repo, policy, locker, gateway, notifier, log),
		Schedule: NewScheduleService(repo, policy, log),
	}
}
