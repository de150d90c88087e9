package domain

import (
	"errors"
	"time"
)

var (
	ErrTrialNotFound     = errors.New("Trial not found")
	ErrForbidden         = errors.New("Forbidden: You do not own this trial")
	ErrDuplicateNCTID    = errors.New("A trial with this NCT ID already exists")
	ErrProfileIncomplete = errors.New("Profile setup incomplete. Please add conditions.")
)

// ClinicalTrial is a trial registered and managed by a researcher
type ClinicalTrial struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	NCTID        string    `json:"nctId" gorm:"column:nct_id;uniqueIndex;size:32;not null"`
	Title        string    `json:"title" gorm:"not null"`
	Description  string    `json:"description" gorm:"type:text"`
	Status       string    `json:"status" gorm:"size:64"`
	Phase        string    `json:"phase" gorm:"size:64"`
	Eligibility  string    `json:"eligibility" gorm:"type:text"`
	ResearcherID string    `json:"researcherId" gorm:"index;size:36;not null"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TrialResult is one recruiting study from the public registry with its AI summary
type TrialResult struct {
	NCTID     string `json:"nctId"`
	Title     string `json:"title"`
	Status    string `json:"status"`
	Location  string `json:"location"`
	URL       string `json:"url"`
	Summary   string `json:"summary"`
	AISummary string `json:"aiSummary"`
}
