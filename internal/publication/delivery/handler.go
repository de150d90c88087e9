package delivery

import (
	"net/http"
	"strings"

	"curalink-backend/internal/publication/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PublicationHandler struct {
	publicationUsecase usecase.PublicationUsecase
	logger             *zap.Logger
}

func NewPublicationHandler(publicationUsecase usecase.PublicationUsecase, logger *zap.Logger) *PublicationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PublicationHandler{publicationUsecase: publicationUsecase, logger: logger.Named("publication.http")}
}

// GET /api/publications?q=
func (h *PublicationHandler) GetPublications(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": `A search query "q" is required.`})
		return
	}

	pubs, err := h.publicationUsecase.Search(c.Request.Context(), q)
	if err != nil {
		h.logger.Error("publication search failed", zap.String("q", q), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch publications"})
		return
	}
	c.JSON(http.StatusOK, pubs)
}
