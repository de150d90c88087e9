package api

import (
	assistantDelivery "curalink-backend/internal/assistant/delivery"
	assistantUsecase "curalink-backend/internal/assistant/usecase"
	authDelivery "curalink-backend/internal/auth/delivery"
	authUsecase "curalink-backend/internal/auth/usecase"
	favoriteDelivery "curalink-backend/internal/favorite/delivery"
	favoriteUsecase "curalink-backend/internal/favorite/usecase"
	profileDelivery "curalink-backend/internal/profile/delivery"
	profileUsecase "curalink-backend/internal/profile/usecase"
	publicationDelivery "curalink-backend/internal/publication/delivery"
	publicationUsecase "curalink-backend/internal/publication/usecase"
	trialDelivery "curalink-backend/internal/trial/delivery"
	trialUsecase "curalink-backend/internal/trial/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Usecases groups everything the HTTP layer serves.
type Usecases struct {
	Auth        authUsecase.AuthUsecase
	Profile     profileUsecase.ProfileUsecase
	Favorite    favoriteUsecase.FavoriteUsecase
	Trial       trialUsecase.TrialUsecase
	TrialSearch trialUsecase.TrialSearchUsecase
	Publication publicationUsecase.PublicationUsecase
	Assistant   assistantUsecase.AssistantUsecase
}

type Handler struct {
	authUsecase authUsecase.AuthUsecase

	authHandler        *authDelivery.AuthHandler
	profileHandler     *profileDelivery.ProfileHandler
	favoriteHandler    *favoriteDelivery.FavoriteHandler
	trialHandler       *trialDelivery.TrialHandler
	publicationHandler *publicationDelivery.PublicationHandler
	assistantHandler   *assistantDelivery.AssistantHandler
	settingsHandler    *SettingsHandler

	debug  bool
	logger *zap.Logger
}

func NewHandler(uc Usecases, settings *SettingsHandler, debug bool, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		authUsecase:        uc.Auth,
		authHandler:        authDelivery.NewAuthHandler(uc.Auth, logger),
		profileHandler:     profileDelivery.NewProfileHandler(uc.Profile, logger),
		favoriteHandler:    favoriteDelivery.NewFavoriteHandler(uc.Favorite, logger),
		trialHandler:       trialDelivery.NewTrialHandler(uc.Trial, uc.TrialSearch, logger),
		publicationHandler: publicationDelivery.NewPublicationHandler(uc.Publication, logger),
		assistantHandler:   assistantDelivery.NewAssistantHandler(uc.Assistant, logger),
		settingsHandler:    settings,
		debug:              debug,
		logger:             logger,
	}
}

// Engine builds the gin engine with middleware and routes.
func (h *Handler) Engine() *gin.Engine {
	if !h.debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(h.logger))

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h)
	return r
}

func (h *Handler) Start(addr string) error {
	return h.Engine().Run(addr)
}
