package response

import (
	"time"

	"lesson-booking/internal/data/entity"
)

type AuthResponse struct {
	User    UserResponse     `json:"user"`
	Session *SessionResponse `json:"session,omitempty"`
}

type UserResponse struct {
	ID       string          `json:"id"`
	Username string          `json:"username"`
	Email    string          `json:"email"`
	Role     entity.UserRole `json:"role"`
}

type SessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}
}
