package usecase

import (
	"context"

	"curalink-backend/internal/trial/domain"
)

// TrialUsecase defines the business logic of researcher-managed trials
type TrialUsecase interface {
	CreateTrial(researcherID string, req CreateTrialRequest) (*domain.ClinicalTrial, error)

	// GetOwnedTrials returns the researcher's trials, newest first
	GetOwnedTrials(researcherID string) ([]*domain.ClinicalTrial, error)

	// UpdateTrial applies the non-nil fields of updates (with ownership check)
	UpdateTrial(researcherID, trialID string, updates TrialUpdateRequest) (*domain.ClinicalTrial, error)

	DeleteTrial(researcherID, trialID string) error
}

// TrialSearchUsecase finds recruiting registry trials for a patient
type TrialSearchUsecase interface {
	SearchForPatient(ctx context.Context, userID string) ([]domain.TrialResult, error)
}

// CreateTrialRequest represents the request body for registering a trial
type CreateTrialRequest struct {
	NCTID       string `json:"nctId" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Status      string `json:"status" binding:"required"`
	Phase       string `json:"phase" binding:"required"`
	Eligibility string `json:"eligibility" binding:"required"`
}

// TrialUpdateRequest represents the fields that can be updated
type TrialUpdateRequest struct {
	NCTID       *string `json:"nctId,omitempty"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Phase       *string `json:"phase,omitempty"`
	Eligibility *string `json:"eligibility,omitempty"`
}
