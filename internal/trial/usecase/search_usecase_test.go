package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	summarydomain "curalink-backend/internal/summary/domain"
	summaryrepo "curalink-backend/internal/summary/repository"
	summaryusecase "curalink-backend/internal/summary/usecase"
	"curalink-backend/internal/testutil"
	"curalink-backend/internal/trial/domain"
	"curalink-backend/internal/trial/usecase"
	"curalink-backend/pkg/clinicaltrials"

	"github.com/stretchr/testify/require"
)

type conditions map[string]string

func (c conditions) PatientCondition(userID string) (string, error) { return c[userID], nil }

type countingSummarizer struct {
	calls atomic.Int32
	fail  string
}

func (s *countingSummarizer) Summarize(_ context.Context, prompt string) (string, error) {
	s.calls.Add(1)
	if s.fail != "" && strings.Contains(prompt, s.fail) {
		return "", &summarydomain.SummarizationError{Attempts: 3, Err: errors.New("429 quota")}
	}
	return "- bullet for " + prompt[len(prompt)-12:], nil
}

const registryBody = `{"studies":[
 {"protocolSection":{"identificationModule":{"nctId":"NCT100","briefTitle":"A"},"statusModule":{"overallStatus":"RECRUITING"},
  "descriptionModule":{"briefSummary":"Alpha study."},"contactsLocationsModule":{"locations":[{"city":"Lyon"}]}}},
 {"protocolSection":{"identificationModule":{"nctId":"NCT200","briefTitle":"B"},"statusModule":{"overallStatus":"RECRUITING"}}}
]}`

func newSearch(t *testing.T, summarizer summaryusecase.Summarizer, pacing *[]time.Duration) (usecase.TrialSearchUsecase, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		require.Equal(t, "lung cancer", r.URL.Query().Get("query.cond"))
		require.Equal(t, "RECRUITING", r.URL.Query().Get("filter.overallStatus"))
		require.Equal(t, "10", r.URL.Query().Get("pageSize"))
		_, _ = w.Write([]byte(registryBody))
	}))
	t.Cleanup(ts.Close)

	repo := summaryrepo.NewSummaryRepository(testutil.NewTestDB(t, &summarydomain.SummaryRecord{}))
	enricher := summaryusecase.NewEnricher(repo, summarizer, nil)
	enricher.SetSleep(func(_ context.Context, d time.Duration) error {
		*pacing = append(*pacing, d)
		return nil
	})

	uc := usecase.NewTrialSearchUsecase(
		conditions{"patient": "lung cancer"},
		clinicaltrials.NewClient(ts.URL),
		enricher,
		summaryusecase.TrialProfile(1500*time.Millisecond),
		nil,
	)
	return uc, &hits
}

func TestSearchForPatient(t *testing.T) {
	summarizer := &countingSummarizer{}
	var pacing []time.Duration
	uc, _ := newSearch(t, summarizer, &pacing)

	results, err := uc.SearchForPatient(context.Background(), "patient")
	require.NoError(t, err)
	require.Len(t, results, 2)

	require.Equal(t, domain.TrialResult{
		NCTID:     "NCT100",
		Title:     "A",
		Status:    "RECRUITING",
		Location:  "Lyon",
		URL:       "https://clinicaltrials.gov/study/NCT100",
		Summary:   "Alpha study.",
		AISummary: `- bullet for lpha study."`,
	}, results[0])
	require.Equal(t, "N/A", results[1].Location)
	require.Equal(t, "No summary available.", results[1].Summary)
	require.NotEmpty(t, results[1].AISummary)
	require.EqualValues(t, 2, summarizer.calls.Load())
	require.Equal(t, []time.Duration{1500 * time.Millisecond}, pacing)

	// second search is served from the cache
	again, err := uc.SearchForPatient(context.Background(), "patient")
	require.NoError(t, err)
	require.Equal(t, results, again)
	require.EqualValues(t, 2, summarizer.calls.Load())
	require.Len(t, pacing, 1)
}

func TestSearchForPatient_FallbackSummary(t *testing.T) {
	summarizer := &countingSummarizer{fail: "Alpha"}
	var pacing []time.Duration
	uc, _ := newSearch(t, summarizer, &pacing)

	results, err := uc.SearchForPatient(context.Background(), "patient")
	require.NoError(t, err)
	require.Equal(t, summaryusecase.FallbackSummary, results[0].AISummary)
	require.NotEqual(t, summaryusecase.FallbackSummary, results[1].AISummary)
}

func TestSearchForPatient_IncompleteProfile(t *testing.T) {
	var pacing []time.Duration
	uc, hits := newSearch(t, &countingSummarizer{}, &pacing)

	_, err := uc.SearchForPatient(context.Background(), "someone-else")
	require.ErrorIs(t, err, domain.ErrProfileIncomplete)
	require.Zero(t, hits.Load())
}
