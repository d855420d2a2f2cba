package quote

// ListResponse is one page of quote summaries.
type ListResponse struct {
	Quotes []Summary `json:"quotes"`
	Total  int       `json:"total"`
}

// ShareResponse carries the share link built for a quote.
type ShareResponse struct {
	URL string `json:"url"`
}
