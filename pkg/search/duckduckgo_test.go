package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchParsesFixtureResults(t *testing.T) {
	provider := NewFixtureProvider()

	results, err := provider.Search(context.Background(), "golang testing", 5)
	assert.NoError(t, err)
	assert.Len(t, results, 2)

	assert.Equal(t, "Alpha Title", results[0].Title)
	assert.Equal(t, "https://example.com/alpha", results[0].Url)
	assert.Equal(t, "Alpha snippet text.", results[0].Snippet)
	assert.Equal(t, 1.0, results[0].Confidence)

	// Relative hrefs resolve against the search base.
	assert.Equal(t, "Beta Title", results[1].Title)
	assert.Equal(t, "https://duckduckgo.com/beta", results[1].Url)
	assert.Equal(t, "Beta snippet text.", results[1].Snippet)
	assert.Equal(t, 0.9, results[1].Confidence)
}

func TestSearchScoresAfterTruncation(t *testing.T) {
	html := `
<html><body>
  <div><a class="result__a" href="https://a.example.com">A</a></div>
  <div><a class="result__a" href="https://b.example.com">B</a></div>
  <div><a class="result__a" href="https://c.example.com">C</a></div>
</body></html>`
	provider := NewFixtureProviderWithHTML(html)

	results, err := provider.Search(context.Background(), "anything", 2)
	assert.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, 1.0, results[0].Confidence)
	assert.Equal(t, 0.9, results[1].Confidence)
}

func TestSearchEmptyQuery(t *testing.T) {
	provider := NewFixtureProvider()

	_, err := provider.Search(context.Background(), "   ", 5)
	assert.Error(t, err)
}

func TestSearchNoResults(t *testing.T) {
	provider := NewFixtureProviderWithHTML("<html><body></body></html>")

	results, err := provider.Search(context.Background(), "nothing", 5)
	assert.NoError(t, err)
	assert.Empty(t, results)
}

func TestAssignConfidenceFloor(t *testing.T) {
	parsed := make([]parsedResult, 12)
	for i := range parsed {
		parsed[i] = parsedResult{title: "t", url: "https://example.com"}
	}

	results := assignConfidence(parsed)
	assert.Equal(t, 1.0, results[0].Confidence)
	assert.Equal(t, 0.2, results[8].Confidence)
	assert.Equal(t, 0.1, results[9].Confidence)
	// Rank 11 and 12 would compute below zero; both clamp to the floor.
	assert.Equal(t, 0.1, results[10].Confidence)
	assert.Equal(t, 0.1, results[11].Confidence)
}

func TestSearchSkipsAnchorsWithoutHref(t *testing.T) {
	html := `
<html><body>
  <div><a class="result__a">No Href</a></div>
  <div><a class="result__a" href="https://ok.example.com">Kept</a></div>
</body></html>`
	provider := NewFixtureProviderWithHTML(html)

	results, err := provider.Search(context.Background(), "anything", 5)
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, "Kept", results[0].Title)
}
