package repository

import (
	"errors"
	"time"

	authdomain "curalink-backend/internal/auth/domain"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of userRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) Create(user *authdomain.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	err := r.db.Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return authdomain.ErrEmailInUse
	}
	return err
}

func (r *userRepository) FindByEmail(email string) (*authdomain.User, error) {
	return r.first("email = ?", email)
}

func (r *userRepository) FindByID(id string) (*authdomain.User, error) {
	return r.first("id = ?", id)
}

func (r *userRepository) Update(user *authdomain.User) error {
	user.UpdatedAt = time.Now()
	return r.db.Save(user).Error
}

func (r *userRepository) FindByResetToken(tokenHash string, now time.Time) (*authdomain.User, error) {
	return r.first("reset_password_token = ? AND reset_password_expires >= ?", tokenHash, now)
}

func (r *userRepository) ClearExpiredResetTokens(now time.Time) (int64, error) {
	res := r.db.Model(&authdomain.User{}).
		Where("reset_password_token IS NOT NULL AND reset_password_expires < ?", now).
		Updates(map[string]interface{}{
			"reset_password_token":   nil,
			"reset_password_expires": nil,
			"updated_at":             now,
		})
	return res.RowsAffected, res.Error
}

func (r *userRepository) first(query string, args ...interface{}) (*authdomain.User, error) {
	var user authdomain.User
	err := r.db.Where(query, args...).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a password with a hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
