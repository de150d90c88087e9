package usecase

import (
	"context"
	"fmt"
	"strings"

	"curalink-backend/internal/publication/domain"
	summaryusecase "curalink-backend/internal/summary/usecase"
	"curalink-backend/pkg/pubmed"

	"go.uber.org/zap"
)

const (
	SearchLimit  = 10
	notAvailable = "N/A"
	noTitle      = "No title available"
)

type ArticleSearcher interface {
	Search(ctx context.Context, term string, max int) ([]pubmed.Article, error)
}

type Enricher interface {
	Enrich(ctx context.Context, profile summaryusecase.Profile, records []summaryusecase.Record) ([]summaryusecase.Result, error)
}

type PublicationUsecase interface {
	// Search finds PubMed articles for q and summarizes each by its title.
	Search(ctx context.Context, q string) ([]domain.Publication, error)
}

type publicationUsecase struct {
	pubmed   ArticleSearcher
	enricher Enricher
	profile  summaryusecase.Profile
	logger   *zap.Logger
}

func NewPublicationUsecase(searcher ArticleSearcher, enricher Enricher, profile summaryusecase.Profile, logger *zap.Logger) PublicationUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &publicationUsecase{
		pubmed:   searcher,
		enricher: enricher,
		profile:  profile,
		logger:   logger.Named("publication-search"),
	}
}

func (u *publicationUsecase) Search(ctx context.Context, q string) ([]domain.Publication, error) {
	articles, err := u.pubmed.Search(ctx, q, SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("search pubmed for %q: %w", q, err)
	}
	u.logger.Info("pubmed search", zap.String("q", q), zap.Int("articles", len(articles)))

	out := make([]domain.Publication, len(articles))
	records := make([]summaryusecase.Record, len(articles))
	for i, a := range articles {
		title := orDefault(a.Title, noTitle)
		authors := strings.Join(a.Authors, ", ")
		out[i] = domain.Publication{
			ID:      a.PMID,
			Title:   title,
			Authors: orDefault(authors, notAvailable),
			Journal: orDefault(a.Journal, notAvailable),
			PubDate: orDefault(a.PubDate, notAvailable),
			URL:     pubmed.ArticleURL(a.PMID),
		}
		records[i] = summaryusecase.Record{SourceID: a.PMID, Text: title}
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

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
