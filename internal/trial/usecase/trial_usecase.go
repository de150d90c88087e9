package usecase

import (
	"curalink-backend/internal/trial/domain"
	"curalink-backend/internal/trial/repository"
)

type trialUsecase struct {
	repo repository.TrialRepository
}

func NewTrialUsecase(repo repository.TrialRepository) TrialUsecase {
	return &trialUsecase{repo: repo}
}

func (u *trialUsecase) CreateTrial(researcherID string, req CreateTrialRequest) (*domain.ClinicalTrial, error) {
	existing, err := u.repo.FindByNCTID(req.NCTID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateNCTID
	}

	trial := &domain.ClinicalTrial{
		NCTID:        req.NCTID,
		Title:        req.Title,
		Description:  req.Description,
		Status:       req.Status,
		Phase:        req.Phase,
		Eligibility:  req.Eligibility,
		ResearcherID: researcherID,
	}
	if err := u.repo.Create(trial); err != nil {
		return nil, err
	}
	return trial, nil
}

func (u *trialUsecase) GetOwnedTrials(researcherID string) ([]*domain.ClinicalTrial, error) {
	return u.repo.FindByResearcher(researcherID)
}

func (u *trialUsecase) UpdateTrial(researcherID, trialID string, updates TrialUpdateRequest) (*domain.ClinicalTrial, error) {
	trial, err := u.owned(researcherID, trialID)
	if err != nil {
		return nil, err
	}

	if updates.NCTID != nil && *updates.NCTID != trial.NCTID {
		other, err := u.repo.FindByNCTID(*updates.NCTID)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, domain.ErrDuplicateNCTID
		}
		trial.NCTID = *updates.NCTID
	}
	if updates.Title != nil {
		trial.Title = *updates.Title
	}
	if updates.Description != nil {
		trial.Description = *updates.Description
	}
	if updates.Status != nil {
		trial.Status = *updates.Status
	}
	if updates.Phase != nil {
		trial.Phase = *updates.Phase
	}
	if updates.Eligibility != nil {
		trial.Eligibility = *updates.Eligibility
	}

	if err := u.repo.Update(trial); err != nil {
		return nil, err
	}
	return trial, nil
}

func (u *trialUsecase) DeleteTrial(researcherID, trialID string) error {
	if _, err := u.owned(researcherID, trialID); err != nil {
		return err
	}
	return u.repo.Delete(trialID)
}

func (u *trialUsecase) owned(researcherID, trialID string) (*domain.ClinicalTrial, error) {
	trial, err := u.repo.FindByID(trialID)
	if err != nil {
		return nil, err
	}
	if trial == nil {
		return nil, domain.ErrTrialNotFound
	}
	if trial.ResearcherID != researcherID {
		return nil, domain.ErrForbidden
	}
	return trial, nil
}
