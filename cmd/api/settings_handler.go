package api

import (
	"net/http"

	"curalink-backend/pkg/ai"

	"github.com/gin-gonic/gin"
)

// SettingsHandler exposes the runtime-configurable AI settings.
type SettingsHandler struct {
	limiter  *ai.RateLimiter
	provider string
	model    string
}

func NewSettingsHandler(limiter *ai.RateLimiter, provider, model string) *SettingsHandler {
	return &SettingsHandler{limiter: limiter, provider: provider, model: model}
}

// UpdateAISettingsRequest represents the request body for updating AI settings
type UpdateAISettingsRequest struct {
	RequestsPerSecond int `json:"requests_per_second" binding:"required,min=1"`
}

// GetAISettings returns the active provider and request rate
// GET /api/settings/ai
func (h *SettingsHandler) GetAISettings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"provider":            h.provider,
		"model":               h.model,
		"requests_per_second": h.limiter.GetLimit(),
	})
}

// UpdateAISettings changes the global AI request rate at runtime
// PUT /api/settings/ai
func (h *SettingsHandler) UpdateAISettings(c *gin.Context) {
	var req UpdateAISettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "requests_per_second must be a positive integer"})
		return
	}

	h.limiter.SetLimit(req.RequestsPerSecond)

	c.JSON(http.StatusOK, gin.H{
		"message":             "AI settings updated successfully",
		"requests_per_second": h.limiter.GetLimit(),
	})
}
