package usecase

import (
	"curalink-backend/internal/favorite/domain"
	"curalink-backend/internal/favorite/repository"
)

type AddFavoriteRequest struct {
	EntityID   string `json:"entityId" binding:"required"`
	EntityType string `json:"entityType" binding:"required"`
	Title      string `json:"title" binding:"required"`
	Summary    string `json:"summary"`
	URL        string `json:"url"`
}

type FavoriteUsecase interface {
	Add(userID string, req *AddFavoriteRequest) (*domain.Favorite, error)
	List(userID string) ([]*domain.Favorite, error)
}

type favoriteUsecase struct {
	repo repository.FavoriteRepository
}

func NewFavoriteUsecase(repo repository.FavoriteRepository) FavoriteUsecase {
	return &favoriteUsecase{repo: repo}
}

func (u *favoriteUsecase) Add(userID string, req *AddFavoriteRequest) (*domain.Favorite, error) {
	exists, err := u.repo.Exists(userID, req.EntityID, req.EntityType)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrAlreadyFavorite
	}

	fav := &domain.Favorite{
		UserID:     userID,
		EntityID:   req.EntityID,
		EntityType: req.EntityType,
		Title:      req.Title,
		Summary:    optional(req.Summary),
		URL:        optional(req.URL),
	}
	if err := u.repo.Create(fav); err != nil {
		return nil, err
	}
	return fav, nil
}

func (u *favoriteUsecase) List(userID string) ([]*domain.Favorite, error) {
	return u.repo.ListByUser(userID)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
