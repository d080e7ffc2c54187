package dto

import (
	"time"

	"github.com/termbase/termbase/internal/model"
)

// SignUpRequest is the input for account creation.
type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInRequest is the input for credential sign-in.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse represents an account in API responses.
// The password hash never crosses this boundary.
type UserResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	EmailVerified bool      `json:"emailVerified"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// SessionResponse is a freshly issued session. The token appears here
// exactly once; server-side caches only ever see its hash.
type SessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// IdentityResponse is the resolved caller identity for auth/me.
type IdentityResponse struct {
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToUserResponse converts a model to its API representation.
func ToUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

// ToIdentityResponse converts a resolved identity.
func ToIdentityResponse(id *model.Identity) IdentityResponse {
	return IdentityResponse{
		UserID:    id.UserID,
		Name:      id.Name,
		Email:     id.Email,
		Verified:  id.Verified,
		CreatedAt: id.CreatedAt,
		UpdatedAt: id.UpdatedAt,
	}
}
