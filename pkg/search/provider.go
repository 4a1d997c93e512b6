package search

import (
	"context"
	"math"
)

// Result is one ranked search hit. Confidence is derived purely from rank
// after truncation, never from a provider relevance score.
type Result struct {
	Title      string
	Url        string
	Snippet    string
	Confidence float64
}

type Provider interface {
	// Search runs one attempt with a bounded timeout and returns at most
	// maxResults ranked results.
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}

// assignConfidence scores 1.0, 0.9, 0.8, ... by rank, floored at 0.1.
func assignConfidence(parsed []parsedResult) []Result {
	ranked := make([]Result, 0, len(parsed))
	for index, p := range parsed {
		confidence := math.Max(0.1, math.Round((1.0-0.1*float64(index))*100)/100)
		ranked = append(ranked, Result{
			Title:      p.title,
			Url:        p.url,
			Snippet:    p.snippet,
			Confidence: confidence,
		})
	}
	return ranked
}
