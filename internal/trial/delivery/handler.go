package delivery

import (
	"errors"
	"net/http"

	authdelivery "curalink-backend/internal/auth/delivery"
	"curalink-backend/internal/trial/domain"
	"curalink-backend/internal/trial/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TrialHandler handles trial-related HTTP requests
type TrialHandler struct {
	trialUsecase  usecase.TrialUsecase
	searchUsecase usecase.TrialSearchUsecase
	logger        *zap.Logger
}

func NewTrialHandler(trialUsecase usecase.TrialUsecase, searchUsecase usecase.TrialSearchUsecase, logger *zap.Logger) *TrialHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TrialHandler{
		trialUsecase:  trialUsecase,
		searchUsecase: searchUsecase,
		logger:        logger.Named("trial.http"),
	}
}

// GetTrials returns recruiting registry trials for the patient's main condition
// GET /api/trials
func (h *TrialHandler) GetTrials(c *gin.Context) {
	trials, err := h.searchUsecase.SearchForPatient(c.Request.Context(), c.GetString(authdelivery.ContextUserID))
	if err != nil {
		if errors.Is(err, domain.ErrProfileIncomplete) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("trial search failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch clinical trials"})
		return
	}
	c.JSON(http.StatusOK, trials)
}

// CreateTrial registers a trial owned by the researcher
// POST /api/trials-management
func (h *TrialHandler) CreateTrial(c *gin.Context) {
	var req usecase.CreateTrialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	trial, err := h.trialUsecase.CreateTrial(c.GetString(authdelivery.ContextUserID), req)
	if err != nil {
		h.writeError(c, "Failed to create trial", err)
		return
	}
	c.JSON(http.StatusCreated, trial)
}

// GetOwnedTrials returns the researcher's trials
// GET /api/trials-management
func (h *TrialHandler) GetOwnedTrials(c *gin.Context) {
	trials, err := h.trialUsecase.GetOwnedTrials(c.GetString(authdelivery.ContextUserID))
	if err != nil {
		h.writeError(c, "Failed to get trials", err)
		return
	}
	c.JSON(http.StatusOK, trials)
}

// UpdateTrial updates an owned trial
// PUT /api/trials-management/:id
func (h *TrialHandler) UpdateTrial(c *gin.Context) {
	var updates usecase.TrialUpdateRequest
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trial, err := h.trialUsecase.UpdateTrial(c.GetString(authdelivery.ContextUserID), c.Param("id"), updates)
	if err != nil {
		h.writeError(c, "Failed to update trial", err)
		return
	}
	c.JSON(http.StatusOK, trial)
}

// DeleteTrial deletes an owned trial
// DELETE /api/trials-management/:id
func (h *TrialHandler) DeleteTrial(c *gin.Context) {
	if err := h.trialUsecase.DeleteTrial(c.GetString(authdelivery.ContextUserID), c.Param("id")); err != nil {
		h.writeError(c, "Failed to delete trial", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TrialHandler) writeError(c *gin.Context, fallback string, err error) {
	switch {
	case errors.Is(err, domain.ErrTrialNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrDuplicateNCTID):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.Error(fallback, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
