package wire

import (
	"lesson-booking/internal/adaptor"
	"lesson-booking/internal/data/repository"
	"lesson-booking/pkg/middleware"
	"lesson-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/register - Create new account
	r.Post("/api/register", authHandler.Register)

	// POST /api/login - Exchange credentials for a session token
	r.Post("/api/login", authHandler.Login)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// POST /api/logout - Revoke current session
		r.Post("/api/logout", authHandler.Logout)
	})
}
