package usecase

import (
	"context"
	"fmt"
	"time"

	"curalink-backend/internal/summary/domain"
	"curalink-backend/internal/summary/repository"
	"curalink-backend/pkg/retry"

	"go.uber.org/zap"
)

// FallbackSummary replaces a summary that could not be generated.
const FallbackSummary = "Summary unavailable. Please try again later."

// Record is one external item that needs a summary.
type Record struct {
	SourceID string
	Text     string
}

// Origin tells where a result's summary came from.
type Origin string

const (
	OriginCached    Origin = "cached"
	OriginGenerated Origin = "generated"
	OriginFallback  Origin = "fallback"
)

type Result struct {
	SourceID  string
	AISummary string
	Origin    Origin
}

// Profile fixes the cache namespace, prompt and pacing for one registry.
type Profile struct {
	Kind   domain.SourceKind
	Prompt func(text string) string
	// Pacing is waited after each generation call, except after the last record.
	Pacing time.Duration
}

func TrialProfile(pacing time.Duration) Profile {
	return Profile{
		Kind: domain.SourceTrial,
		Prompt: func(text string) string {
			return fmt.Sprintf("Summarize this clinical trial in 3 simple bullet points: \"%s\"", text)
		},
		Pacing: pacing,
	}
}

func PublicationProfile(pacing time.Duration) Profile {
	return Profile{
		Kind: domain.SourcePublication,
		Prompt: func(text string) string {
			return fmt.Sprintf("You are a medical expert. Explain what this research paper is about in one simple sentence for a patient: \"%s\"", text)
		},
		Pacing: pacing,
	}
}

// Enricher attaches AI summaries to registry records through the summary
// cache. Records are processed one at a time so pacing holds across a batch.
type Enricher struct {
	repo       repository.SummaryRepository
	summarizer Summarizer
	sleep      func(ctx context.Context, d time.Duration) error
	logger     *zap.Logger
}

func NewEnricher(repo repository.SummaryRepository, summarizer Summarizer, logger *zap.Logger) *Enricher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Enricher{
		repo:       repo,
		summarizer: summarizer,
		sleep:      retry.Sleep,
		logger:     logger.Named("enricher"),
	}
}

// SetSleep replaces the pacing wait, for tests.
func (e *Enricher) SetSleep(sleep func(ctx context.Context, d time.Duration) error) {
	e.sleep = sleep
}

// Enrich returns one result per record, in input order. Summarization
// failures become FallbackSummary; only storage failures (wrapping
// domain.ErrStorageUnavailable) or a cancelled context abort the batch.
func (e *Enricher) Enrich(ctx context.Context, profile Profile, records []Record) ([]Result, error) {
	results := make([]Result, 0, len(records))

	for i, rec := range records {
		cached, err := e.repo.Get(ctx, profile.Kind, rec.SourceID)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s/%s: %w", domain.ErrStorageUnavailable, profile.Kind, rec.SourceID, err)
		}
		if cached != nil {
			e.logger.Debug("using cached summary", zap.String("kind", string(profile.Kind)), zap.String("source_id", rec.SourceID))
			results = append(results, Result{SourceID: rec.SourceID, AISummary: cached.Summary, Origin: OriginCached})
			continue
		}

		e.logger.Debug("generating summary", zap.String("kind", string(profile.Kind)), zap.String("source_id", rec.SourceID))
		text, err := e.summarizer.Summarize(ctx, profile.Prompt(rec.Text))
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			e.logger.Warn("summary failed, using fallback",
				zap.String("kind", string(profile.Kind)),
				zap.String("source_id", rec.SourceID),
				zap.Error(err))
			results = append(results, Result{SourceID: rec.SourceID, AISummary: FallbackSummary, Origin: OriginFallback})
		} else {
			stored, err := e.repo.Put(ctx, profile.Kind, rec.SourceID, text)
			if err != nil {
				return nil, fmt.Errorf("%w: write %s/%s: %w", domain.ErrStorageUnavailable, profile.Kind, rec.SourceID, err)
			}
			results = append(results, Result{SourceID: rec.SourceID, AISummary: stored.Summary, Origin: OriginGenerated})
		}

		if i < len(records)-1 && profile.Pacing > 0 {
			if err := e.sleep(ctx, profile.Pacing); err != nil {
				return nil, err
			}
		}
	}

	return results, nil
}
