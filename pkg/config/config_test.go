package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GEMINI_MODELS", "")
	t.Setenv("TRIAL_PACING", "")
	t.Setenv("AI_MAX_ATTEMPTS", "")

	cfg := Load()

	require.Equal(t, []string{"gemini-1.5-flash", "gemini-pro", "gemini-2.0-flash-exp", "gemini-1.5-pro"}, cfg.GeminiModels)
	require.Equal(t, 1500*time.Millisecond, cfg.TrialPacing)
	require.Equal(t, 3, cfg.AIMaxAttempts)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GEMINI_MODELS", " gemini-2.5-flash , ,gemini-pro")
	t.Setenv("AI_CALL_TIMEOUT", "3s")
	t.Setenv("AI_MAX_ATTEMPTS", "5")
	t.Setenv("FRONTEND_URL", "https://app.example.com/")
	t.Setenv("DEBUG", "true")

	cfg := Load()

	require.Equal(t, []string{"gemini-2.5-flash", "gemini-pro"}, cfg.GeminiModels)
	require.Equal(t, 3*time.Second, cfg.AICallTimeout)
	require.Equal(t, 5, cfg.AIMaxAttempts)
	require.Equal(t, "https://app.example.com", cfg.FrontendURL)
	require.True(t, cfg.Debug)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_EXPIRY", "tomorrow")
	t.Setenv("AI_REQUESTS_PER_SECOND", "many")

	cfg := Load()

	require.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	require.Equal(t, 2, cfg.AIRequestsPerSecond)
}
