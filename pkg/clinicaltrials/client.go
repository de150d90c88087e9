package clinicaltrials

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"curalink-backend/pkg/retry"
)

const DefaultBaseURL = "https://clinicaltrials.gov"

// Study is the subset of a ClinicalTrials.gov v2 study the app uses.
type Study struct {
	NCTID         string
	BriefTitle    string
	OverallStatus string
	City          string // city of the first listed location, may be empty
	BriefSummary  string
}

// v2 API response structures

type studiesResponse struct {
	Studies       []apiStudy `json:"studies"`
	NextPageToken string     `json:"nextPageToken"`
}

type apiStudy struct {
	ProtocolSection struct {
		IdentificationModule struct {
			NCTID      string `json:"nctId"`
			BriefTitle string `json:"briefTitle"`
		} `json:"identificationModule"`
		StatusModule struct {
			OverallStatus string `json:"overallStatus"`
		} `json:"statusModule"`
		DescriptionModule struct {
			BriefSummary string `json:"briefSummary"`
		} `json:"descriptionModule"`
		ContactsLocationsModule struct {
			Locations []struct {
				City    string `json:"city"`
				Country string `json:"country"`
			} `json:"locations"`
		} `json:"contactsLocationsModule"`
	} `json:"protocolSection"`
}

// Client searches the ClinicalTrials.gov v2 REST API.
type Client struct {
	client  *http.Client
	baseURL string
	retry   retry.Config
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		retry: retry.Config{
			MaxAttempts: 3,
			BaseDelay:   250 * time.Millisecond,
			Retryable:   retry.IsTransient,
		},
	}
}

// SetHTTPClient replaces the transport, e.g. with an httptest client.
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.client = hc
}

// SearchRecruiting returns up to pageSize recruiting studies for condition,
// in registry order.
func (c *Client) SearchRecruiting(ctx context.Context, condition string, pageSize int) ([]Study, error) {
	query := url.Values{}
	query.Set("query.cond", condition)
	query.Set("filter.overallStatus", "RECRUITING")
	query.Set("pageSize", strconv.Itoa(pageSize))
	reqURL := fmt.Sprintf("%s/api/v2/studies?%s", c.baseURL, query.Encode())

	var payload studiesResponse
	err := retry.Do(ctx, c.retry, func(ctx context.Context, _ int) error {
		return c.getJSON(ctx, reqURL, &payload)
	})
	if err != nil {
		return nil, fmt.Errorf("clinicaltrials: search %q: %w", condition, err)
	}

	studies := make([]Study, 0, len(payload.Studies))
	for _, s := range payload.Studies {
		p := s.ProtocolSection
		study := Study{
			NCTID:         p.IdentificationModule.NCTID,
			BriefTitle:    p.IdentificationModule.BriefTitle,
			OverallStatus: p.StatusModule.OverallStatus,
			BriefSummary:  strings.TrimSpace(p.DescriptionModule.BriefSummary),
		}
		if locs := p.ContactsLocationsModule.Locations; len(locs) > 0 {
			study.City = locs[0].City
		}
		if study.NCTID == "" {
			continue
		}
		studies = append(studies, study)
	}
	return studies, nil
}

// StudyURL is the public page of a study.
func StudyURL(nctID string) string {
	return "https://clinicaltrials.gov/study/" + nctID
}

func (c *Client) getJSON(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &retry.StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
