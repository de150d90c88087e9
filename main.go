package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	api "curalink-backend/cmd/api"
	assistantUsecase "curalink-backend/internal/assistant/usecase"
	authdomain "curalink-backend/internal/auth/domain"
	authRepo "curalink-backend/internal/auth/repository"
	"curalink-backend/internal/auth/scheduler"
	authUsecase "curalink-backend/internal/auth/usecase"
	favoritedomain "curalink-backend/internal/favorite/domain"
	favoriteRepo "curalink-backend/internal/favorite/repository"
	favoriteUsecase "curalink-backend/internal/favorite/usecase"
	profiledomain "curalink-backend/internal/profile/domain"
	profileRepo "curalink-backend/internal/profile/repository"
	profileUsecase "curalink-backend/internal/profile/usecase"
	publicationUsecase "curalink-backend/internal/publication/usecase"
	summarydomain "curalink-backend/internal/summary/domain"
	summaryRepo "curalink-backend/internal/summary/repository"
	summaryUsecase "curalink-backend/internal/summary/usecase"
	trialdomain "curalink-backend/internal/trial/domain"
	trialRepo "curalink-backend/internal/trial/repository"
	trialUsecase "curalink-backend/internal/trial/usecase"
	"curalink-backend/pkg/ai"
	"curalink-backend/pkg/clinicaltrials"
	"curalink-backend/pkg/config"
	"curalink-backend/pkg/database"
	"curalink-backend/pkg/gmail"
	"curalink-backend/pkg/logger"
	"curalink-backend/pkg/pubmed"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zlog, err := logger.New(cfg.Debug)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := database.NewConnection(cfg)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(
		&authdomain.User{},
		&profiledomain.PatientProfile{},
		&profiledomain.ResearcherProfile{},
		&favoritedomain.Favorite{},
		&trialdomain.ClinicalTrial{},
		&summarydomain.SummaryRecord{},
	); err != nil {
		zlog.Fatal("failed to migrate database", zap.Error(err))
	}

	// AI provider is required; the first working candidate wins
	aiService, err := ai.NewService(ctx, ai.Config{
		Provider:          ai.ProviderType(cfg.AIProvider),
		GeminiAPIKey:      cfg.GeminiAPIKey,
		GeminiModels:      cfg.GeminiModels,
		OpenAIAPIKey:      cfg.OpenAIAPIKey,
		OpenAIBaseURL:     cfg.OpenAIBaseURL,
		OpenAIModel:       cfg.OpenAIModel,
		AnthropicAPIKey:   cfg.AnthropicAPIKey,
		AnthropicModel:    cfg.AnthropicModel,
		OllamaBaseURL:     cfg.OllamaBaseURL,
		OllamaModel:       cfg.OllamaModel,
		RequestsPerSecond: cfg.AIRequestsPerSecond,
	}, zlog)
	if err != nil {
		zlog.Fatal("no AI model available", zap.Error(err))
	}
	defer func() { _ = aiService.Close() }()

	// Initialize repositories (dependency injection)
	userRepository := authRepo.NewUserRepository(db)
	profileRepository := profileRepo.NewProfileRepository(db)
	favoriteRepository := favoriteRepo.NewFavoriteRepository(db)
	trialRepository := trialRepo.NewGormTrialRepository(db)
	summaryRepository := summaryRepo.NewSummaryRepository(db)

	// Summary pipeline shared by trial and publication search
	summarizer := summaryUsecase.NewRetryingSummarizer(aiService,
		summaryUsecase.WithMaxAttempts(cfg.AIMaxAttempts),
		summaryUsecase.WithCallTimeout(cfg.AICallTimeout),
		summaryUsecase.WithSummarizerLogger(zlog),
	)
	enricher := summaryUsecase.NewEnricher(summaryRepository, summarizer, zlog)

	registry := clinicaltrials.NewClient(cfg.ClinicalTrialsURL)
	articles := pubmed.NewClient(cfg.PubMedURL)
	mailer := gmail.New(gmail.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RefreshToken: cfg.GmailRefreshToken,
		From:         cfg.MailFrom,
	}, zlog)

	// Initialize use cases
	profileUc := profileUsecase.NewProfileUsecase(profileRepository)
	usecases := api.Usecases{
		Auth:        authUsecase.NewAuthUsecase(userRepository, profileRepository, mailer, cfg, zlog),
		Profile:     profileUc,
		Favorite:    favoriteUsecase.NewFavoriteUsecase(favoriteRepository),
		Trial:       trialUsecase.NewTrialUsecase(trialRepository),
		TrialSearch: trialUsecase.NewTrialSearchUsecase(profileUc, registry, enricher, summaryUsecase.TrialProfile(cfg.TrialPacing), zlog),
		Publication: publicationUsecase.NewPublicationUsecase(articles, enricher, summaryUsecase.PublicationProfile(cfg.PublicationPacing), zlog),
		Assistant:   assistantUsecase.NewAssistantUsecase(aiService, summarizer, zlog),
	}

	// Expired reset tokens are swept in the background
	janitor := scheduler.NewResetTokenJanitor(userRepository, scheduler.DefaultInterval, zlog)
	janitor.Start()
	defer janitor.Stop()

	settings := api.NewSettingsHandler(aiService.Limiter, string(aiService.Provider), aiService.Name())
	handler := api.NewHandler(usecases, settings, cfg.Debug, zlog)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("server starting", zap.String("port", cfg.Port), zap.String("ai_model", aiService.Name()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}
}
