package pubmed

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

const DefaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// Article is a PubMed document summary.
type Article struct {
	PMID    string
	Title   string
	Authors []string
	Journal string
	PubDate string
}

type searchResponse struct {
	ESearchResult struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

type summaryResponse struct {
	Result map[string]json.RawMessage `json:"result"`
}

type docSummary struct {
	UID     string `json:"uid"`
	Title   string `json:"title"`
	Authors []struct {
		Name string `json:"name"`
	} `json:"authors"`
	FullJournalName string `json:"fulljournalname"`
	PubDate         string `json:"pubdate"`
}

// Client talks to the NCBI E-utilities.
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

// Search runs esearch sorted by relevance and then esummary for the hits.
// Articles come back in esearch order; ids without a summary are skipped.
func (c *Client) Search(ctx context.Context, term string, max int) ([]Article, error) {
	ids, err := c.searchIDs(ctx, term, max)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []Article{}, nil
	}

	query := url.Values{}
	query.Set("db", "pubmed")
	query.Set("id", strings.Join(ids, ","))
	query.Set("retmode", "json")

	var payload summaryResponse
	if err := c.fetch(ctx, c.baseURL+"/esummary.fcgi?"+query.Encode(), &payload); err != nil {
		return nil, fmt.Errorf("pubmed: esummary: %w", err)
	}

	articles := make([]Article, 0, len(ids))
	for _, id := range ids {
		raw, ok := payload.Result[id]
		if !ok {
			continue
		}
		var doc docSummary
		if err := json.Unmarshal(raw, &doc); err != nil {
			continue
		}
		article := Article{
			PMID:    id,
			Title:   doc.Title,
			Journal: doc.FullJournalName,
			PubDate: doc.PubDate,
		}
		for _, a := range doc.Authors {
			if a.Name != "" {
				article.Authors = append(article.Authors, a.Name)
			}
		}
		articles = append(articles, article)
	}
	return articles, nil
}

func (c *Client) searchIDs(ctx context.Context, term string, max int) ([]string, error) {
	query := url.Values{}
	query.Set("db", "pubmed")
	query.Set("term", term)
	query.Set("retmax", strconv.Itoa(max))
	query.Set("sort", "relevance")
	query.Set("retmode", "json")

	var payload searchResponse
	if err := c.fetch(ctx, c.baseURL+"/esearch.fcgi?"+query.Encode(), &payload); err != nil {
		return nil, fmt.Errorf("pubmed: esearch %q: %w", term, err)
	}
	return payload.ESearchResult.IDList, nil
}

// ArticleURL is the public page of an article.
func ArticleURL(pmid string) string {
	return "https://pubmed.ncbi.nlm.nih.gov/" + pmid + "/"
}

func (c *Client) fetch(ctx context.Context, reqURL string, out any) error {
	return retry.Do(ctx, c.retry, func(ctx context.Context, _ int) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return err
		}
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
	})
}
