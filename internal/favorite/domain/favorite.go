package domain

import (
	"errors"
	"time"
)

var ErrAlreadyFavorite = errors.New("Already in favorites")

// Favorite is a trial, publication or expert saved by a user.
type Favorite struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36"`
	UserID     string    `json:"userId" gorm:"size:36;not null;uniqueIndex:idx_favorite_entity"`
	EntityID   string    `json:"entityId" gorm:"size:191;not null;uniqueIndex:idx_favorite_entity"`
	EntityType string    `json:"entityType" gorm:"size:32;not null;uniqueIndex:idx_favorite_entity"`
	Title      string    `json:"title" gorm:"not null"`
	Summary    *string   `json:"summary"`
	URL        *string   `json:"url"`
	CreatedAt  time.Time `json:"createdAt" gorm:"index"`
}
