package usecase

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	authdomain "curalink-backend/internal/auth/domain"
	authdto "curalink-backend/internal/auth/dto"
	"curalink-backend/internal/auth/repository"
	"curalink-backend/pkg/config"
	"curalink-backend/pkg/gmail"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	resetTokenBytes    = 32
	resetTokenLifetime = time.Hour
	mailSendTimeout    = 30 * time.Second
)

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	userRepo repository.UserRepository
	profiles ProfileCreator
	mailer   gmail.Mailer
	config   *config.Config
	logger   *zap.Logger
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(userRepo repository.UserRepository, profiles ProfileCreator, mailer gmail.Mailer, cfg *config.Config, logger *zap.Logger) AuthUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &authUsecase{
		userRepo: userRepo,
		profiles: profiles,
		mailer:   mailer,
		config:   cfg,
		logger:   logger.Named("auth"),
	}
}

func (u *authUsecase) Register(req *authdto.RegisterRequest) (*authdto.TokenResponse, error) {
	existing, err := u.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, authdomain.ErrEmailInUse
	}

	hashedPassword, err := repository.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &authdomain.User{
		Email:    req.Email,
		Password: hashedPassword,
		Role:     authdomain.ParseRole(req.Role),
	}
	if err := u.userRepo.Create(user); err != nil {
		return nil, err
	}
	if err := u.profiles.CreateEmptyProfile(user.ID, user.Role); err != nil {
		return nil, fmt.Errorf("create %s profile: %w", user.Role, err)
	}

	token, err := u.generateToken(user)
	if err != nil {
		return nil, err
	}
	return &authdto.TokenResponse{Token: token, User: authdto.NewUserResponse(user)}, nil
}

func (u *authUsecase) Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error) {
	user, err := u.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !repository.CheckPasswordHash(req.Password, user.Password) {
		return nil, authdomain.ErrInvalidCredentials
	}

	token, err := u.generateToken(user)
	if err != nil {
		return nil, err
	}
	return &authdto.TokenResponse{
		Message: "Login successful",
		Token:   token,
		User:    authdto.NewUserResponse(user),
	}, nil
}

func (u *authUsecase) ForgotPassword(email string) error {
	if email == "" {
		return nil
	}
	user, err := u.userRepo.FindByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	raw := make([]byte, resetTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return err
	}
	token := hex.EncodeToString(raw)
	hashed := HashResetToken(token)
	expires := time.Now().Add(resetTokenLifetime)

	user.ResetPasswordToken = &hashed
	user.ResetPasswordExpires = &expires
	if err := u.userRepo.Update(user); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", u.config.FrontendURL, token)
	msg := gmail.Message{
		To:      user.Email,
		Subject: "CuraLink Password Reset Request",
		HTML: fmt.Sprintf(`<h1>You requested a password reset</h1>
<p>Click this link to reset your password (link expires in 1 hour):</p>
<a href="%s" target="_blank">%s</a>`, resetURL, resetURL),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), mailSendTimeout)
		defer cancel()
		if err := u.mailer.Send(ctx, msg); err != nil {
			u.logger.Error("failed to send password reset email", zap.String("user_id", user.ID), zap.Error(err))
		}
	}()
	return nil
}

func (u *authUsecase) ResetPassword(req *authdto.ResetPasswordRequest) error {
	user, err := u.userRepo.FindByResetToken(HashResetToken(req.Token), time.Now())
	if err != nil {
		return err
	}
	if user == nil {
		return authdomain.ErrInvalidResetToken
	}

	hashedPassword, err := repository.HashPassword(req.Password)
	if err != nil {
		return err
	}
	user.Password = hashedPassword
	user.ResetPasswordToken = nil
	user.ResetPasswordExpires = nil
	return u.userRepo.Update(user)
}

func (u *authUsecase) GetUser(id string) (*authdomain.User, error) {
	user, err := u.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, authdomain.ErrUserNotFound
	}
	return user, nil
}

func (u *authUsecase) generateToken(user *authdomain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(user.Role),
		"exp":     now.Add(u.config.JWTExpiry).Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(u.config.JWTSecret))
}

func (u *authUsecase) ValidateToken(tokenString string) (*authdomain.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(u.config.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, authdomain.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, authdomain.ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, authdomain.ErrInvalidToken
	}

	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, authdomain.ErrInvalidToken
	}
	return user, nil
}

// HashResetToken is the stored form of a reset token: its sha256 hex digest.
func HashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
