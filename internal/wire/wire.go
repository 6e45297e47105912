package wire

import (
	"net/http"

	"lesson-booking/internal/adaptor"
	"lesson-booking/internal/data/repository"
	"lesson-booking/internal/notify"
	"lesson-booking/internal/usecase"
	"lesson-booking/pkg/lock"
	"lesson-booking/pkg/middleware"
	"lesson-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired application.
type App struct {
	Router *chi.Mux
}

// Wiring initializes all dependencies.
func Wiring(repo *repository.Repository, config *utils.Config, locker lock.Locker, logger *zap.Logger) (*App, error) {
	policy, err := usecase.NewBookingPolicy(config.Booking)
	if err != nil {
		return nil, err
	}

	gateway := usecase.SimulatedGateway{}
	notifier := notify.New(config.Email, logger)

	// Initialize services and handlers
	service := usecase.NewService(repo, config, policy, locker, gateway, notifier, logger)
	handler := adaptor.NewHandler(service, logger)

	// Setup router
	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}, nil
}

// setupRouter configures the Chi router
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAuth(r, handler.Auth, repo, config, logger)
	wireBooking(r, handler.Booking, repo, config, logger)
	wireSchedule(r, handler.Schedule, repo, config, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
