package domain

import (
	"errors"
	"time"
)

var ErrProfileNotFound = errors.New("profile not found")

type PatientProfile struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36"`
	UserID     string    `json:"userId" gorm:"uniqueIndex;size:36;not null"`
	Conditions []string  `json:"conditions" gorm:"type:text;serializer:json"`
	Location   string    `json:"location"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// PrimaryCondition is the condition used for trial search.
func (p *PatientProfile) PrimaryCondition() string {
	for _, c := range p.Conditions {
		if c != "" {
			return c
		}
	}
	return ""
}

type ResearcherProfile struct {
	ID                  string    `json:"id" gorm:"primaryKey;size:36"`
	UserID              string    `json:"userId" gorm:"uniqueIndex;size:36;not null"`
	Specialties         []string  `json:"specialties" gorm:"type:text;serializer:json"`
	ResearchInterests   []string  `json:"researchInterests" gorm:"type:text;serializer:json"`
	AvailableForMeeting bool      `json:"availableForMeeting"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// Researcher is a researcher account joined with its profile, which may be missing.
type Researcher struct {
	UserID  string
	Email   string
	Profile *ResearcherProfile
}
