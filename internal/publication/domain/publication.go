package domain

// Publication is a PubMed article with its AI summary
type Publication struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Authors   string `json:"authors"`
	Journal   string `json:"journal"`
	PubDate   string `json:"pubDate"`
	URL       string `json:"url"`
	AISummary string `json:"aiSummary"`
}
