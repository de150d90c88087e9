package repository

import "curalink-backend/internal/trial/domain"

// TrialRepository defines the interface for trial data access
type TrialRepository interface {
	Create(trial *domain.ClinicalTrial) error

	// FindByID and FindByNCTID return nil when no trial matches
	FindByID(id string) (*domain.ClinicalTrial, error)
	FindByNCTID(nctID string) (*domain.ClinicalTrial, error)

	// FindByResearcher returns the researcher's trials, newest first
	FindByResearcher(researcherID string) ([]*domain.ClinicalTrial, error)

	Update(trial *domain.ClinicalTrial) error
	Delete(id string) error
}
