package delivery

import (
	"errors"
	"net/http"

	authdelivery "curalink-backend/internal/auth/delivery"
	"curalink-backend/internal/profile/domain"
	"curalink-backend/internal/profile/dto"
	"curalink-backend/internal/profile/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProfileHandler struct {
	profileUsecase usecase.ProfileUsecase
	logger         *zap.Logger
}

func NewProfileHandler(profileUsecase usecase.ProfileUsecase, logger *zap.Logger) *ProfileHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileHandler{profileUsecase: profileUsecase, logger: logger.Named("profile.http")}
}

// GET /api/patient/me
func (h *ProfileHandler) GetPatientMe(c *gin.Context) {
	resp, err := h.profileUsecase.GetPatient(authdelivery.CurrentUser(c))
	if err != nil {
		h.fail(c, "User profile not found", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PUT /api/patient/me/profile
func (h *ProfileHandler) UpdatePatientProfile(c *gin.Context) {
	var req dto.UpdatePatientProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Conditions) == 0 || req.Location == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Conditions and location are required"})
		return
	}

	profile, err := h.profileUsecase.UpdatePatient(c.GetString(authdelivery.ContextUserID), &req)
	if err != nil {
		h.fail(c, "Patient profile not found", err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GET /api/researcher/me
func (h *ProfileHandler) GetResearcherMe(c *gin.Context) {
	resp, err := h.profileUsecase.GetResearcher(authdelivery.CurrentUser(c))
	if err != nil {
		h.fail(c, "Researcher profile not found", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PUT /api/researcher/me/profile
func (h *ProfileHandler) UpdateResearcherProfile(c *gin.Context) {
	var req dto.UpdateResearcherProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Specialties) == 0 || len(req.ResearchInterests) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Specialties and research interests are required"})
		return
	}

	profile, err := h.profileUsecase.UpdateResearcher(c.GetString(authdelivery.ContextUserID), &req)
	if err != nil {
		h.fail(c, "Researcher profile not found", err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// ListResearchers serves both GET /api/experts and GET /api/collaborators.
func (h *ProfileHandler) ListResearchers(c *gin.Context) {
	researchers, err := h.profileUsecase.SearchResearchers(c.Query("q"))
	if err != nil {
		h.fail(c, "", err)
		return
	}
	c.JSON(http.StatusOK, researchers)
}

func (h *ProfileHandler) fail(c *gin.Context, notFound string, err error) {
	if errors.Is(err, domain.ErrProfileNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
		return
	}
	h.logger.Error("profile request failed", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
