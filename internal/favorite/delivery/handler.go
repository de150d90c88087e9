package delivery

import (
	"errors"
	"net/http"

	authdelivery "curalink-backend/internal/auth/delivery"
	"curalink-backend/internal/favorite/domain"
	"curalink-backend/internal/favorite/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type FavoriteHandler struct {
	favoriteUsecase usecase.FavoriteUsecase
	logger          *zap.Logger
}

func NewFavoriteHandler(favoriteUsecase usecase.FavoriteUsecase, logger *zap.Logger) *FavoriteHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FavoriteHandler{favoriteUsecase: favoriteUsecase, logger: logger.Named("favorite.http")}
}

// POST /api/favorites
func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	var req usecase.AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	fav, err := h.favoriteUsecase.Add(c.GetString(authdelivery.ContextUserID), &req)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyFavorite) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("save favorite failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusCreated, fav)
}

// GET /api/favorites
func (h *FavoriteHandler) GetFavorites(c *gin.Context) {
	favorites, err := h.favoriteUsecase.List(c.GetString(authdelivery.ContextUserID))
	if err != nil {
		h.logger.Error("list favorites failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, favorites)
}
