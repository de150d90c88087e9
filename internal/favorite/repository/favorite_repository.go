package repository

import (
	"errors"
	"time"

	"curalink-backend/internal/favorite/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FavoriteRepository interface {
	Exists(userID, entityID, entityType string) (bool, error)
	Create(fav *domain.Favorite) error
	ListByUser(userID string) ([]*domain.Favorite, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Exists(userID, entityID, entityType string) (bool, error) {
	var n int64
	err := r.db.Model(&domain.Favorite{}).
		Where("user_id = ? AND entity_id = ? AND entity_type = ?", userID, entityID, entityType).
		Count(&n).Error
	return n > 0, err
}

func (r *favoriteRepository) Create(fav *domain.Favorite) error {
	if fav.ID == "" {
		fav.ID = uuid.New().String()
	}
	fav.CreatedAt = time.Now()
	err := r.db.Create(fav).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrAlreadyFavorite
	}
	return err
}

// ListByUser returns the user's favorites, newest first.
func (r *favoriteRepository) ListByUser(userID string) ([]*domain.Favorite, error) {
	favorites := make([]*domain.Favorite, 0)
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&favorites).Error
	return favorites, err
}
