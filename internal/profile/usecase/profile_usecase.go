package usecase

import (
	"sort"
	"strings"

	authdomain "curalink-backend/internal/auth/domain"
	"curalink-backend/internal/profile/domain"
	"curalink-backend/internal/profile/dto"
	"curalink-backend/internal/profile/repository"
	"curalink-backend/pkg/fuzzy"
)

type ProfileUsecase interface {
	GetPatient(user *authdomain.User) (*dto.PatientResponse, error)
	UpdatePatient(userID string, req *dto.UpdatePatientProfileRequest) (*domain.PatientProfile, error)
	GetResearcher(user *authdomain.User) (*dto.ResearcherResponse, error)
	UpdateResearcher(userID string, req *dto.UpdateResearcherProfileRequest) (*domain.ResearcherProfile, error)

	// SearchResearchers lists researchers whose specialties or research
	// interests match q, best match first. An empty q lists everyone.
	SearchResearchers(q string) ([]dto.ResearcherSummary, error)

	// PatientCondition is the first condition of the patient's profile, or "".
	PatientCondition(userID string) (string, error)
}

type profileUsecase struct {
	repo repository.ProfileRepository
}

func NewProfileUsecase(repo repository.ProfileRepository) ProfileUsecase {
	return &profileUsecase{repo: repo}
}

func (u *profileUsecase) GetPatient(user *authdomain.User) (*dto.PatientResponse, error) {
	p, err := u.repo.FindPatientByUserID(user.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProfileNotFound
	}
	return &dto.PatientResponse{ID: user.ID, Email: user.Email, Role: user.Role, PatientProfile: p}, nil
}

func (u *profileUsecase) UpdatePatient(userID string, req *dto.UpdatePatientProfileRequest) (*domain.PatientProfile, error) {
	p, err := u.repo.FindPatientByUserID(userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProfileNotFound
	}
	p.Conditions = []string(req.Conditions)
	p.Location = req.Location
	if err := u.repo.SavePatient(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (u *profileUsecase) GetResearcher(user *authdomain.User) (*dto.ResearcherResponse, error) {
	p, err := u.repo.FindResearcherByUserID(user.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProfileNotFound
	}
	return &dto.ResearcherResponse{ID: user.ID, Email: user.Email, Role: user.Role, ResearcherProfile: p}, nil
}

func (u *profileUsecase) UpdateResearcher(userID string, req *dto.UpdateResearcherProfileRequest) (*domain.ResearcherProfile, error) {
	p, err := u.repo.FindResearcherByUserID(userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProfileNotFound
	}
	p.Specialties = []string(req.Specialties)
	p.ResearchInterests = []string(req.ResearchInterests)
	p.AvailableForMeeting = req.AvailableForMeeting
	if err := u.repo.SaveResearcher(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (u *profileUsecase) SearchResearchers(q string) ([]dto.ResearcherSummary, error) {
	researchers, err := u.repo.ListResearchers()
	if err != nil {
		return nil, err
	}

	q = strings.TrimSpace(q)
	if q == "" {
		out := make([]dto.ResearcherSummary, len(researchers))
		for i, r := range researchers {
			out[i] = dto.NewResearcherSummary(r)
		}
		return out, nil
	}

	type scored struct {
		r     domain.Researcher
		score float64
	}
	var hits []scored
	for _, r := range researchers {
		if r.Profile == nil {
			continue
		}
		tags := append(append([]string{}, r.Profile.Specialties...), r.Profile.ResearchInterests...)
		exact := hasExact(q, tags)
		if !exact && !fuzzy.MatchAny(q, tags...) {
			continue
		}
		score := fuzzy.RelevanceScore(q, "", tags)
		if exact {
			score += exactMatchBonus
		}
		hits = append(hits, scored{r: r, score: score})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })

	out := make([]dto.ResearcherSummary, len(hits))
	for i, h := range hits {
		out[i] = dto.NewResearcherSummary(h.r)
	}
	return out, nil
}

const exactMatchBonus = 100

func hasExact(q string, tags []string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, q) {
			return true
		}
	}
	return false
}

func (u *profileUsecase) PatientCondition(userID string) (string, error) {
	p, err := u.repo.FindPatientByUserID(userID)
	if err != nil || p == nil {
		return "", err
	}
	return p.PrimaryCondition(), nil
}
