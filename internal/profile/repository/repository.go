package repository

import (
	authdomain "curalink-backend/internal/auth/domain"
	"curalink-backend/internal/profile/domain"
)

// ProfileRepository defines data access for patient and researcher profiles
type ProfileRepository interface {
	// CreateEmptyProfile creates the profile matching role for a new user.
	CreateEmptyProfile(userID string, role authdomain.Role) error

	FindPatientByUserID(userID string) (*domain.PatientProfile, error)
	SavePatient(profile *domain.PatientProfile) error

	FindResearcherByUserID(userID string) (*domain.ResearcherProfile, error)
	SaveResearcher(profile *domain.ResearcherProfile) error

	// ListResearchers returns every RESEARCHER account with its profile.
	ListResearchers() ([]domain.Researcher, error)
}
