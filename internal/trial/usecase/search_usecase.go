package usecase

import (
	"context"
	"fmt"

	summaryusecase "curalink-backend/internal/summary/usecase"
	"curalink-backend/internal/trial/domain"
	"curalink-backend/pkg/clinicaltrials"

	"go.uber.org/zap"
)

const (
	SearchPageSize    = 10
	noLocation        = "N/A"
	noRegistrySummary = "No summary available."
)

// ConditionSource yields the condition a patient's trial search is based on.
type ConditionSource interface {
	PatientCondition(userID string) (string, error)
}

type StudySearcher interface {
	SearchRecruiting(ctx context.Context, condition string, pageSize int) ([]clinicaltrials.Study, error)
}

type Enricher interface {
	Enrich(ctx context.Context, profile summaryusecase.Profile, records []summaryusecase.Record) ([]summaryusecase.Result, error)
}

type trialSearchUsecase struct {
	conditions ConditionSource
	registry   StudySearcher
	enricher   Enricher
	profile    summaryusecase.Profile
	logger     *zap.Logger
}

func NewTrialSearchUsecase(conditions ConditionSource, registry StudySearcher, enricher Enricher, profile summaryusecase.Profile, logger *zap.Logger) TrialSearchUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &trialSearchUsecase{
		conditions: conditions,
		registry:   registry,
		enricher:   enricher,
		profile:    profile,
		logger:     logger.Named("trial-search"),
	}
}

func (u *trialSearchUsecase) SearchForPatient(ctx context.Context, userID string) ([]domain.TrialResult, error) {
	condition, err := u.conditions.PatientCondition(userID)
	if err != nil {
		return nil, err
	}
	if condition == "" {
		return nil, domain.ErrProfileIncomplete
	}

	studies, err := u.registry.SearchRecruiting(ctx, condition, SearchPageSize)
	if err != nil {
		return nil, fmt.Errorf("search registry for %q: %w", condition, err)
	}
	u.logger.Info("registry search", zap.String("condition", condition), zap.Int("studies", len(studies)))

	out := make([]domain.TrialResult, len(studies))
	records := make([]summaryusecase.Record, len(studies))
	for i, s := range studies {
		summary := s.BriefSummary
		if summary == "" {
			summary = noRegistrySummary
		}
		location := s.City
		if location == "" {
			location = noLocation
		}
		out[i] = domain.TrialResult{
			NCTID:    s.NCTID,
			Title:    s.BriefTitle,
			Status:   s.OverallStatus,
			Location: location,
			URL:      clinicaltrials.StudyURL(s.NCTID),
			Summary:  summary,
		}
		records[i] = summaryusecase.Record{SourceID: s.NCTID, Text: summary}
	}

	results, err := u.enricher.Enrich(ctx, u.profile, records)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].AISummary = results[i].AISummary
	}
	return out, nil
}
