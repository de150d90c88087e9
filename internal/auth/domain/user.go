package domain

import (
	"errors"
	"time"
)

type Role string

const (
	RolePatient    Role = "PATIENT"
	RoleResearcher Role = "RESEARCHER"
)

// ParseRole maps anything other than RESEARCHER to PATIENT.
func ParseRole(s string) Role {
	if Role(s) == RoleResearcher {
		return RoleResearcher
	}
	return RolePatient
}

type User struct {
	ID                   string     `json:"id" gorm:"primaryKey;size:36"`
	Email                string     `json:"email" gorm:"uniqueIndex;size:191;not null"`
	Password             string     `json:"-"` // Never return password in JSON
	Role                 Role       `json:"role" gorm:"size:16;not null"`
	ResetPasswordToken   *string    `json:"-" gorm:"index;size:64"`
	ResetPasswordExpires *time.Time `json:"-"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

var (
	ErrEmailInUse         = errors.New("Email already in use")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrInvalidResetToken  = errors.New("Invalid or expired password reset token")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
)
