package dto

import (
	"encoding/json"

	authdomain "curalink-backend/internal/auth/domain"
	"curalink-backend/internal/profile/domain"
)

// StringList accepts either a JSON array of strings or a single string.
type StringList []string

func (l *StringList) UnmarshalJSON(b []byte) error {
	var many []string
	if err := json.Unmarshal(b, &many); err == nil {
		*l = many
		return nil
	}
	var one string
	if err := json.Unmarshal(b, &one); err != nil {
		return err
	}
	if one == "" {
		*l = nil
		return nil
	}
	*l = StringList{one}
	return nil
}

type UpdatePatientProfileRequest struct {
	Conditions StringList `json:"conditions"`
	Location   string     `json:"location"`
}

type UpdateResearcherProfileRequest struct {
	Specialties         StringList `json:"specialties"`
	ResearchInterests   StringList `json:"researchInterests"`
	AvailableForMeeting bool       `json:"availableForMeeting"`
}

type PatientResponse struct {
	ID             string                 `json:"id"`
	Email          string                 `json:"email"`
	Role           authdomain.Role        `json:"role"`
	PatientProfile *domain.PatientProfile `json:"patientProfile"`
}

type ResearcherResponse struct {
	ID                string                    `json:"id"`
	Email             string                    `json:"email"`
	Role              authdomain.Role           `json:"role"`
	ResearcherProfile *domain.ResearcherProfile `json:"researcherProfile"`
}

type ResearcherProfileSummary struct {
	Specialties         []string `json:"specialties"`
	ResearchInterests   []string `json:"researchInterests"`
	AvailableForMeeting bool     `json:"availableForMeeting"`
}

// ResearcherSummary is one entry of the experts and collaborators listings.
type ResearcherSummary struct {
	ID                string                    `json:"id"`
	Email             string                    `json:"email"`
	ResearcherProfile *ResearcherProfileSummary `json:"researcherProfile"`
}

func NewResearcherSummary(r domain.Researcher) ResearcherSummary {
	out := ResearcherSummary{ID: r.UserID, Email: r.Email}
	if r.Profile != nil {
		out.ResearcherProfile = &ResearcherProfileSummary{
			Specialties:         r.Profile.Specialties,
			ResearchInterests:   r.Profile.ResearchInterests,
			AvailableForMeeting: r.Profile.AvailableForMeeting,
		}
	}
	return out
}
