package repository

import (
	"time"

	authdomain "curalink-backend/internal/auth/domain"
)

// UserRepository defines data access for users
type UserRepository interface {
	Create(user *authdomain.User) error
	FindByEmail(email string) (*authdomain.User, error)
	FindByID(id string) (*authdomain.User, error)
	Update(user *authdomain.User) error

	// FindByResetToken returns the user holding tokenHash with a deadline at or after now.
	FindByResetToken(tokenHash string, now time.Time) (*authdomain.User, error)
	// ClearExpiredResetTokens drops reset tokens whose deadline passed before now.
	ClearExpiredResetTokens(now time.Time) (int64, error)
}
