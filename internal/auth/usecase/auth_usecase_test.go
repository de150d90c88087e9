package usecase_test

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	authdomain "curalink-backend/internal/auth/domain"
	authdto "curalink-backend/internal/auth/dto"
	"curalink-backend/internal/auth/repository"
	"curalink-backend/internal/auth/usecase"
	"curalink-backend/internal/testutil"
	"curalink-backend/pkg/config"
	"curalink-backend/pkg/gmail"

	"github.com/stretchr/testify/require"
)

type profileRecorder struct {
	mu    sync.Mutex
	roles map[string]authdomain.Role
	err   error
}

func (p *profileRecorder) CreateEmptyProfile(userID string, role authdomain.Role) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	if p.roles == nil {
		p.roles = map[string]authdomain.Role{}
	}
	p.roles[userID] = role
	return nil
}

type chanMailer chan gmail.Message

func (m chanMailer) Send(_ context.Context, msg gmail.Message) error {
	m <- msg
	return nil
}

type fixture struct {
	uc       usecase.AuthUsecase
	repo     repository.UserRepository
	profiles *profileRecorder
	mail     chanMailer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := repository.NewUserRepository(testutil.NewTestDB(t, &authdomain.User{}))
	profiles := &profileRecorder{}
	mail := make(chanMailer, 4)
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiry: time.Hour, FrontendURL: "http://localhost:5173"}
	return &fixture{
		uc:       usecase.NewAuthUsecase(repo, profiles, mail, cfg, nil),
		repo:     repo,
		profiles: profiles,
		mail:     mail,
	}
}

func TestRegister(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Register(&authdto.RegisterRequest{Email: "r@example.com", Password: "pw123456", Role: "RESEARCHER"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, authdomain.RoleResearcher, resp.User.Role)
	require.Equal(t, authdomain.RoleResearcher, f.profiles.roles[resp.User.ID])

	resp, err = f.uc.Register(&authdto.RegisterRequest{Email: "p@example.com", Password: "pw123456", Role: "anything"})
	require.NoError(t, err)
	require.Equal(t, authdomain.RolePatient, resp.User.Role)

	_, err = f.uc.Register(&authdto.RegisterRequest{Email: "p@example.com", Password: "other", Role: "PATIENT"})
	require.ErrorIs(t, err, authdomain.ErrEmailInUse)
}

func TestRegister_ProfileFailure(t *testing.T) {
	f := newFixture(t)
	f.profiles.err = errors.New("db down")

	_, err := f.uc.Register(&authdto.RegisterRequest{Email: "x@example.com", Password: "pw", Role: "PATIENT"})
	require.Error(t, err)
}

func TestLoginAndValidateToken(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Register(&authdto.RegisterRequest{Email: "u@example.com", Password: "right-password", Role: "PATIENT"})
	require.NoError(t, err)

	_, err = f.uc.Login(&authdto.LoginRequest{Email: "u@example.com", Password: "wrong"})
	require.ErrorIs(t, err, authdomain.ErrInvalidCredentials)
	_, err = f.uc.Login(&authdto.LoginRequest{Email: "ghost@example.com", Password: "right-password"})
	require.ErrorIs(t, err, authdomain.ErrInvalidCredentials)

	resp, err := f.uc.Login(&authdto.LoginRequest{Email: "u@example.com", Password: "right-password"})
	require.NoError(t, err)
	require.Equal(t, "Login successful", resp.Message)

	user, err := f.uc.ValidateToken(resp.Token)
	require.NoError(t, err)
	require.Equal(t, "u@example.com", user.Email)

	_, err = f.uc.ValidateToken(resp.Token + "x")
	require.ErrorIs(t, err, authdomain.ErrInvalidToken)
}

var tokenPattern = regexp.MustCompile(`reset-password\?token=([0-9a-f]+)`)

func TestForgotAndResetPassword(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Register(&authdto.RegisterRequest{Email: "f@example.com", Password: "old-password", Role: "PATIENT"})
	require.NoError(t, err)

	require.NoError(t, f.uc.ForgotPassword("unknown@example.com"))
	require.NoError(t, f.uc.ForgotPassword(""))
	require.NoError(t, f.uc.ForgotPassword("f@example.com"))

	var msg gmail.Message
	select {
	case msg = <-f.mail:
	case <-time.After(2 * time.Second):
		t.Fatal("reset mail was not sent")
	}
	require.Equal(t, "f@example.com", msg.To)
	require.Contains(t, msg.HTML, "http://localhost:5173/reset-password?token=")
	m := tokenPattern.FindStringSubmatch(msg.HTML)
	require.Len(t, m, 2)
	raw := m[1]
	require.Len(t, raw, 64)

	stored, err := f.repo.FindByEmail("f@example.com")
	require.NoError(t, err)
	require.Equal(t, usecase.HashResetToken(raw), *stored.ResetPasswordToken)
	require.WithinDuration(t, time.Now().Add(time.Hour), *stored.ResetPasswordExpires, time.Minute)

	err = f.uc.ResetPassword(&authdto.ResetPasswordRequest{Token: "bogus", Password: "new-password"})
	require.ErrorIs(t, err, authdomain.ErrInvalidResetToken)

	require.NoError(t, f.uc.ResetPassword(&authdto.ResetPasswordRequest{Token: raw, Password: "new-password"}))

	_, err = f.uc.Login(&authdto.LoginRequest{Email: "f@example.com", Password: "new-password"})
	require.NoError(t, err)

	// single use
	err = f.uc.ResetPassword(&authdto.ResetPasswordRequest{Token: raw, Password: "again"})
	require.ErrorIs(t, err, authdomain.ErrInvalidResetToken)
}

func TestResetPassword_Expired(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Register(&authdto.RegisterRequest{Email: "e@example.com", Password: "pw", Role: "PATIENT"})
	require.NoError(t, err)

	user, err := f.repo.FindByEmail("e@example.com")
	require.NoError(t, err)
	hash := usecase.HashResetToken("expired-token")
	past := time.Now().Add(-time.Second)
	user.ResetPasswordToken = &hash
	user.ResetPasswordExpires = &past
	require.NoError(t, f.repo.Update(user))

	err = f.uc.ResetPassword(&authdto.ResetPasswordRequest{Token: "expired-token", Password: "new"})
	require.ErrorIs(t, err, authdomain.ErrInvalidResetToken)
}
