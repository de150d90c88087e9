package usecase

import (
	authdomain "curalink-backend/internal/auth/domain"
	authdto "curalink-backend/internal/auth/dto"
)

// AuthUsecase defines authentication and account recovery
type AuthUsecase interface {
	Register(req *authdto.RegisterRequest) (*authdto.TokenResponse, error)
	Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error)

	// ForgotPassword issues a reset token for a known email and mails the
	// link in the background. Unknown emails are not an error.
	ForgotPassword(email string) error
	ResetPassword(req *authdto.ResetPasswordRequest) error

	ValidateToken(token string) (*authdomain.User, error)
	GetUser(id string) (*authdomain.User, error)
}

// ProfileCreator creates the empty role profile of a new account.
type ProfileCreator interface {
	CreateEmptyProfile(userID string, role authdomain.Role) error
}
