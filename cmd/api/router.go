package api

import (
	"net/http"
	"time"

	"curalink-backend/internal/auth/delivery"
	authdomain "curalink-backend/internal/auth/domain"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func SetupRoutes(r *gin.Engine, h *Handler) {
	requireAuth := delivery.AuthMiddleware(h.authUsecase)
	patientOnly := delivery.RequireRole(authdomain.RolePatient)
	researcherOnly := delivery.RequireRole(authdomain.RoleResearcher)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.authHandler.Register)
			auth.POST("/login", h.authHandler.Login)
			auth.POST("/forgot-password", h.authHandler.ForgotPassword)
			auth.POST("/reset-password", h.authHandler.ResetPassword)
			auth.GET("/me", requireAuth, h.authHandler.Me)
		}

		// Profile routes (role protected)
		patient := api.Group("/patient", requireAuth, patientOnly)
		{
			patient.GET("/me", h.profileHandler.GetPatientMe)
			patient.PUT("/me/profile", h.profileHandler.UpdatePatientProfile)
		}
		researcher := api.Group("/researcher", requireAuth, researcherOnly)
		{
			researcher.GET("/me", h.profileHandler.GetResearcherMe)
			researcher.PUT("/me/profile", h.profileHandler.UpdateResearcherProfile)
		}
		api.GET("/experts", requireAuth, patientOnly, h.profileHandler.ListResearchers)
		api.GET("/collaborators", requireAuth, researcherOnly, h.profileHandler.ListResearchers)

		// Favorites (protected)
		favorites := api.Group("/favorites", requireAuth)
		{
			favorites.POST("", h.favoriteHandler.AddFavorite)
			favorites.GET("", h.favoriteHandler.GetFavorites)
		}

		// Trial management (researcher only)
		manage := api.Group("/trials-management", requireAuth, researcherOnly)
		{
			manage.POST("", h.trialHandler.CreateTrial)
			manage.GET("", h.trialHandler.GetOwnedTrials)
			manage.PUT("/:id", h.trialHandler.UpdateTrial)
			manage.DELETE("/:id", h.trialHandler.DeleteTrial)
		}

		// Enriched search (protected)
		api.GET("/trials", requireAuth, h.trialHandler.GetTrials)
		api.GET("/publications", requireAuth, h.publicationHandler.GetPublications)

		// Assistant routes (public, used by the landing page)
		assistant := api.Group("/ai")
		{
			assistant.POST("/parse-condition", h.assistantHandler.ParseCondition)
			assistant.POST("/summarize", h.assistantHandler.Summarize)
			assistant.POST("/chat", h.assistantHandler.Chat)
		}

		// Settings routes (protected) - runtime configuration
		if h.settingsHandler != nil {
			settings := api.Group("/settings", requireAuth)
			{
				settings.GET("/ai", h.settingsHandler.GetAISettings)
				settings.PUT("/ai", h.settingsHandler.UpdateAISettings)
			}
		}
	}
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	logger = logger.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
