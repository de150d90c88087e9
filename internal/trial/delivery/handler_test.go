package delivery_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	authdelivery "curalink-backend/internal/auth/delivery"
	"curalink-backend/internal/testutil"
	"curalink-backend/internal/trial/delivery"
	"curalink-backend/internal/trial/domain"
	"curalink-backend/internal/trial/repository"
	"curalink-backend/internal/trial/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type searchStub struct {
	results []domain.TrialResult
	err     error
}

func (s searchStub) SearchForPatient(context.Context, string) ([]domain.TrialResult, error) {
	return s.results, s.err
}

func newRouter(t *testing.T, search usecase.TrialSearchUsecase) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	uc := usecase.NewTrialUsecase(repository.NewGormTrialRepository(testutil.NewTestDB(t, &domain.ClinicalTrial{})))
	h := delivery.NewTrialHandler(uc, search, nil)

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(authdelivery.ContextUserID, c.GetHeader("X-Test-User")) })
	r.GET("/api/trials", h.GetTrials)
	m := r.Group("/api/trials-management")
	m.POST("", h.CreateTrial)
	m.GET("", h.GetOwnedTrials)
	m.PUT("/:id", h.UpdateTrial)
	m.DELETE("/:id", h.DeleteTrial)
	return r
}

func send(r *gin.Engine, user, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-User", user)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const trialBody = `{"nctId":"NCT9","title":"T","description":"D","status":"RECRUITING","phase":"Phase 1","eligibility":"Adults"}`

func TestTrialManagementRoutes(t *testing.T) {
	r := newRouter(t, searchStub{})

	require.Equal(t, http.StatusBadRequest, send(r, "r1", http.MethodPost, "/api/trials-management", `{"nctId":"NCT9"}`).Code)

	w := send(r, "r1", http.MethodPost, "/api/trials-management", trialBody)
	require.Equal(t, http.StatusCreated, w.Code)
	id := trialID(t, w.Body.Bytes())

	require.Equal(t, http.StatusConflict, send(r, "r2", http.MethodPost, "/api/trials-management", trialBody).Code)
	require.Equal(t, http.StatusForbidden, send(r, "r2", http.MethodPut, "/api/trials-management/"+id, `{"title":"x"}`).Code)
	require.Equal(t, http.StatusNotFound, send(r, "r1", http.MethodPut, "/api/trials-management/nope", `{"title":"x"}`).Code)

	w = send(r, "r1", http.MethodPut, "/api/trials-management/"+id, `{"title":"Renamed"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"title":"Renamed"`)

	w = send(r, "r1", http.MethodGet, "/api/trials-management", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"nctId":"NCT9"`)

	require.Equal(t, http.StatusForbidden, send(r, "r2", http.MethodDelete, "/api/trials-management/"+id, "").Code)
	require.Equal(t, http.StatusNoContent, send(r, "r1", http.MethodDelete, "/api/trials-management/"+id, "").Code)
	require.Equal(t, http.StatusNotFound, send(r, "r1", http.MethodDelete, "/api/trials-management/"+id, "").Code)
}

func TestGetTrials(t *testing.T) {
	r := newRouter(t, searchStub{err: domain.ErrProfileIncomplete})
	w := send(r, "p1", http.MethodGet, "/api/trials", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Profile setup incomplete. Please add conditions.")

	r = newRouter(t, searchStub{err: errors.New("registry down")})
	w = send(r, "p1", http.MethodGet, "/api/trials", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), "Failed to fetch clinical trials")

	r = newRouter(t, searchStub{results: []domain.TrialResult{{NCTID: "NCT1", AISummary: "- a"}}})
	w = send(r, "p1", http.MethodGet, "/api/trials", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"aiSummary":"- a"`)
}

func trialID(t *testing.T, body []byte) string {
	t.Helper()
	var trial domain.ClinicalTrial
	require.NoError(t, json.Unmarshal(body, &trial))
	require.NotEmpty(t, trial.ID)
	return trial.ID
}
