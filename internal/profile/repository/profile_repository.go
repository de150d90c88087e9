package repository

import (
	"errors"
	"time"

	authdomain "curalink-backend/internal/auth/domain"
	"curalink-backend/internal/profile/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) CreateEmptyProfile(userID string, role authdomain.Role) error {
	now := time.Now()
	if role == authdomain.RoleResearcher {
		return r.db.Create(&domain.ResearcherProfile{
			ID:                uuid.New().String(),
			UserID:            userID,
			Specialties:       []string{},
			ResearchInterests: []string{},
			CreatedAt:         now,
			UpdatedAt:         now,
		}).Error
	}
	return r.db.Create(&domain.PatientProfile{
		ID:         uuid.New().String(),
		UserID:     userID,
		Conditions: []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}).Error
}

func (r *profileRepository) FindPatientByUserID(userID string) (*domain.PatientProfile, error) {
	var p domain.PatientProfile
	if err := r.db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) SavePatient(profile *domain.PatientProfile) error {
	profile.UpdatedAt = time.Now()
	return r.db.Save(profile).Error
}

func (r *profileRepository) FindResearcherByUserID(userID string) (*domain.ResearcherProfile, error) {
	var p domain.ResearcherProfile
	if err := r.db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) SaveResearcher(profile *domain.ResearcherProfile) error {
	profile.UpdatedAt = time.Now()
	return r.db.Save(profile).Error
}

func (r *profileRepository) ListResearchers() ([]domain.Researcher, error) {
	var users []authdomain.User
	if err := r.db.Where("role = ?", authdomain.RoleResearcher).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return []domain.Researcher{}, nil
	}

	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	var profiles []domain.ResearcherProfile
	if err := r.db.Where("user_id IN ?", ids).Find(&profiles).Error; err != nil {
		return nil, err
	}
	byUser := make(map[string]*domain.ResearcherProfile, len(profiles))
	for i := range profiles {
		byUser[profiles[i].UserID] = &profiles[i]
	}

	out := make([]domain.Researcher, len(users))
	for i, u := range users {
		out[i] = domain.Researcher{UserID: u.ID, Email: u.Email, Profile: byUser[u.ID]}
	}
	return out, nil
}
