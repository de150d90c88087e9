package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"curalink-backend/internal/publication/domain"
	"curalink-backend/internal/publication/usecase"
	summarydomain "curalink-backend/internal/summary/domain"
	"curalink-backend/internal/summary/repository/mock"
	summaryusecase "curalink-backend/internal/summary/usecase"
	"curalink-backend/pkg/pubmed"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type searcherStub struct {
	articles []pubmed.Article
	err      error
}

func (s searcherStub) Search(context.Context, string, int) ([]pubmed.Article, error) {
	return s.articles, s.err
}

type promptRecorder struct{ prompts []string }

func (p *promptRecorder) Summarize(_ context.Context, prompt string) (string, error) {
	p.prompts = append(p.prompts, prompt)
	return "A simple sentence.", nil
}

func TestSearch(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockSummaryRepository(ctrl)
	gomock.InOrder(
		repo.EXPECT().Get(gomock.Any(), summarydomain.SourcePublication, "111").
			Return(&summarydomain.SummaryRecord{Summary: "cached sentence"}, nil),
		repo.EXPECT().Get(gomock.Any(), summarydomain.SourcePublication, "222").Return(nil, nil),
		repo.EXPECT().Put(gomock.Any(), summarydomain.SourcePublication, "222", "A simple sentence.").
			Return(&summarydomain.SummaryRecord{Summary: "A simple sentence."}, nil),
	)

	summarizer := &promptRecorder{}
	enricher := summaryusecase.NewEnricher(repo, summarizer, nil)
	enricher.SetSleep(func(context.Context, time.Duration) error {
		t.Fatal("no pacing after the last record")
		return nil
	})

	uc := usecase.NewPublicationUsecase(searcherStub{articles: []pubmed.Article{
		{PMID: "111", Title: "Glioma outcomes.", Authors: []string{"Smith J", "Doe A"}, Journal: "Lancet", PubDate: "2024"},
		{PMID: "222"},
	}}, enricher, summaryusecase.PublicationProfile(time.Second), nil)

	pubs, err := uc.Search(context.Background(), "glioma")
	require.NoError(t, err)
	require.Equal(t, []domain.Publication{
		{ID: "111", Title: "Glioma outcomes.", Authors: "Smith J, Doe A", Journal: "Lancet", PubDate: "2024",
			URL: "https://pubmed.ncbi.nlm.nih.gov/111/", AISummary: "cached sentence"},
		{ID: "222", Title: "No title available", Authors: "N/A", Journal: "N/A", PubDate: "N/A",
			URL: "https://pubmed.ncbi.nlm.nih.gov/222/", AISummary: "A simple sentence."},
	}, pubs)
	require.Equal(t, []string{
		`You are a medical expert. Explain what this research paper is about in one simple sentence for a patient: "No title available"`,
	}, summarizer.prompts)
}

func TestSearch_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockSummaryRepository(ctrl)
	enricher := summaryusecase.NewEnricher(repo, &promptRecorder{}, nil)

	uc := usecase.NewPublicationUsecase(searcherStub{err: errors.New("eutils down")}, enricher, summaryusecase.PublicationProfile(0), nil)
	_, err := uc.Search(context.Background(), "x")
	require.Error(t, err)

	repo.EXPECT().Get(gomock.Any(), gomock.Any(), "1").Return(nil, errors.New("connection refused"))
	uc = usecase.NewPublicationUsecase(searcherStub{articles: []pubmed.Article{{PMID: "1", Title: "t"}}}, enricher, summaryusecase.PublicationProfile(0), nil)
	_, err = uc.Search(context.Background(), "x")
	require.ErrorIs(t, err, summarydomain.ErrStorageUnavailable)
}
