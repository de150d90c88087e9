package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port  string
	Debug bool

	DBDriver    string // "postgres" or "sqlite"
	DatabaseURL string

	JWTSecret   string
	JWTExpiry   time.Duration
	FrontendURL string

	// AI provider selection and credentials
	AIProvider      string
	GeminiAPIKey    string
	GeminiModels    []string // probed in order at startup
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	OpenAIModel     string
	AnthropicAPIKey string
	AnthropicModel  string
	OllamaBaseURL   string
	OllamaModel     string

	AICallTimeout        time.Duration
	AIMaxAttempts        int
	AIRequestsPerSecond  int
	TrialPacing          time.Duration
	PublicationPacing    time.Duration
	ClinicalTrialsURL    string
	PubMedURL            string

	// Gmail API credentials for outgoing mail
	GoogleClientID     string
	GoogleClientSecret string
	GmailRefreshToken  string
	MailFrom           string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:  getEnv("PORT", "5000"),
		Debug: getBool("DEBUG", false),

		DBDriver:    getEnv("DB_DRIVER", "postgres"),
		DatabaseURL: getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=curalink port=5432 sslmode=disable"),

		JWTSecret:   getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTExpiry:   getDuration("JWT_EXPIRY", 24*time.Hour),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),

		AIProvider:   getEnv("AI_PROVIDER", "gemini"),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModels: getList("GEMINI_MODELS", []string{
			"gemini-1.5-flash",
			"gemini-pro",
			"gemini-2.0-flash-exp",
			"gemini-1.5-pro",
		}),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:   getEnv("OPENAI_BASE_URL", ""),
		OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  getEnv("ANTHROPIC_MODEL", "claude-3-5-haiku-latest"),
		OllamaBaseURL:   getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		OllamaModel:     getEnv("OLLAMA_MODEL", "llama3"),

		AICallTimeout:       getDuration("AI_CALL_TIMEOUT", 10*time.Second),
		AIMaxAttempts:       getInt("AI_MAX_ATTEMPTS", 3),
		AIRequestsPerSecond: getInt("AI_REQUESTS_PER_SECOND", 2),
		TrialPacing:         getDuration("TRIAL_PACING", 1500*time.Millisecond),
		PublicationPacing:   getDuration("PUBLICATION_PACING", 1000*time.Millisecond),
		ClinicalTrialsURL:   getEnv("CLINICALTRIALS_BASE_URL", "https://clinicaltrials.gov"),
		PubMedURL:           getEnv("PUBMED_BASE_URL", "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GmailRefreshToken:  getEnv("GMAIL_REFRESH_TOKEN", ""),
		MailFrom:           getEnv("MAIL_FROM", "CuraLink <no-reply@curalink.local>"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getList splits a comma separated variable, dropping empty items.
func getList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
