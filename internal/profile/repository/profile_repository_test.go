package repository_test

import (
	"testing"

	authdomain "curalink-backend/internal/auth/domain"
	authrepo "curalink-backend/internal/auth/repository"
	"curalink-backend/internal/profile/domain"
	"curalink-backend/internal/profile/repository"
	"curalink-backend/internal/testutil"

	"github.com/stretchr/testify/require"
)

func TestProfileRepository_EmptyProfiles(t *testing.T) {
	db := testutil.NewTestDB(t, &domain.PatientProfile{}, &domain.ResearcherProfile{})
	repo := repository.NewProfileRepository(db)

	require.NoError(t, repo.CreateEmptyProfile("patient-1", authdomain.RolePatient))
	require.NoError(t, repo.CreateEmptyProfile("researcher-1", authdomain.RoleResearcher))
	require.Error(t, repo.CreateEmptyProfile("patient-1", authdomain.RolePatient))

	p, err := repo.FindPatientByUserID("patient-1")
	require.NoError(t, err)
	require.Empty(t, p.Conditions)

	p.Conditions = []string{"Lung Cancer", "Asthma"}
	p.Location = "Berlin"
	require.NoError(t, repo.SavePatient(p))

	p, err = repo.FindPatientByUserID("patient-1")
	require.NoError(t, err)
	require.Equal(t, []string{"Lung Cancer", "Asthma"}, p.Conditions)
	require.Equal(t, "Lung Cancer", p.PrimaryCondition())

	missing, err := repo.FindResearcherByUserID("patient-1")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestProfileRepository_ListResearchers(t *testing.T) {
	db := testutil.NewTestDB(t, &authdomain.User{}, &domain.PatientProfile{}, &domain.ResearcherProfile{})
	users := authrepo.NewUserRepository(db)
	repo := repository.NewProfileRepository(db)

	withProfile := &authdomain.User{Email: "a@lab.org", Role: authdomain.RoleResearcher}
	noProfile := &authdomain.User{Email: "b@lab.org", Role: authdomain.RoleResearcher}
	patient := &authdomain.User{Email: "p@example.com", Role: authdomain.RolePatient}
	for _, u := range []*authdomain.User{withProfile, noProfile, patient} {
		require.NoError(t, users.Create(u))
	}
	require.NoError(t, repo.CreateEmptyProfile(withProfile.ID, authdomain.RoleResearcher))
	rp, err := repo.FindResearcherByUserID(withProfile.ID)
	require.NoError(t, err)
	rp.Specialties = []string{"Oncology"}
	rp.AvailableForMeeting = true
	require.NoError(t, repo.SaveResearcher(rp))

	list, err := repo.ListResearchers()
	require.NoError(t, err)
	require.Len(t, list, 2)

	byEmail := map[string]domain.Researcher{}
	for _, r := range list {
		byEmail[r.Email] = r
	}
	require.Equal(t, []string{"Oncology"}, byEmail["a@lab.org"].Profile.Specialties)
	require.True(t, byEmail["a@lab.org"].Profile.AvailableForMeeting)
	require.Nil(t, byEmail["b@lab.org"].Profile)
}
