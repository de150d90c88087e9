package repository

import (
	"errors"
	"time"

	"curalink-backend/internal/trial/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormTrialRepository implements TrialRepository using GORM
type gormTrialRepository struct {
	db *gorm.DB
}

func NewGormTrialRepository(db *gorm.DB) TrialRepository {
	return &gormTrialRepository{db: db}
}

func (r *gormTrialRepository) Create(trial *domain.ClinicalTrial) error {
	if trial.ID == "" {
		trial.ID = uuid.New().String()
	}
	trial.CreatedAt = time.Now()
	trial.UpdatedAt = trial.CreatedAt
	return translate(r.db.Create(trial).Error)
}

func (r *gormTrialRepository) FindByID(id string) (*domain.ClinicalTrial, error) {
	return r.first("id = ?", id)
}

func (r *gormTrialRepository) FindByNCTID(nctID string) (*domain.ClinicalTrial, error) {
	return r.first("nct_id = ?", nctID)
}

func (r *gormTrialRepository) FindByResearcher(researcherID string) ([]*domain.ClinicalTrial, error) {
	trials := make([]*domain.ClinicalTrial, 0)
	err := r.db.Where("researcher_id = ?", researcherID).Order("created_at DESC").Find(&trials).Error
	return trials, err
}

func (r *gormTrialRepository) Update(trial *domain.ClinicalTrial) error {
	trial.UpdatedAt = time.Now()
	return translate(r.db.Save(trial).Error)
}

func (r *gormTrialRepository) Delete(id string) error {
	return r.db.Delete(&domain.ClinicalTrial{}, "id = ?", id).Error
}

func (r *gormTrialRepository) first(query string, args ...interface{}) (*domain.ClinicalTrial, error) {
	var trial domain.ClinicalTrial
	if err := r.db.Where(query, args...).First(&trial).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &trial, nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateNCTID
	}
	return err
}
