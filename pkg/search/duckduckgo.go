package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	defaultBaseURL = "https://duckduckgo.com/html/"
	userAgent      = "infograph-search/1.0"
	requestTimeout = 10 * time.Second
)

// DuckDuckGoProvider scrapes the DuckDuckGo HTML endpoint. A custom fetch
// function replaces the HTTP call in test mode.
type DuckDuckGoProvider struct {
	baseURL string
	client  *http.Client
	fetch   func(ctx context.Context, query string) (string, error)
}

func NewDuckDuckGoProvider() *DuckDuckGoProvider {
	return &DuckDuckGoProvider{
		baseURL: defaultBaseURL,
		client: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

func (p *DuckDuckGoProvider) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}

	html, err := p.fetchHTML(ctx, query)
	if err != nil {
		return nil, err
	}

	parsed, err := p.parseResults(html)
	if err != nil {
		return nil, err
	}

	// Truncate before scoring so rank is relative to the returned list.
	if maxResults > 0 && len(parsed) > maxResults {
		parsed = parsed[:maxResults]
	}
	return assignConfidence(parsed), nil
}

func (p *DuckDuckGoProvider) fetchHTML(ctx context.Context, query string) (string, error) {
	if p.fetch != nil {
		return p.fetch(ctx, query)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL, nil)
	if err != nil {
		return "", err
	}
	q := req.URL.Query()
	q.Set("q", query)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("search request failed: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("search response unreadable: %w", err)
	}
	html, err := doc.Html()
	if err != nil {
		return "", err
	}
	return html, nil
}

type parsedResult struct {
	title   string
	url     string
	snippet string
}

func (p *DuckDuckGoProvider) parseResults(html string) ([]parsedResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("search response parse failed: %w", err)
	}

	var results []parsedResult
	doc.Find("a.result__a, a.result-link, a.result__url").Each(func(_ int, sel *goquery.Selection) {
		title := strings.TrimSpace(sel.Text())
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if title == "" || href == "" {
			return
		}

		container := sel.Closest("div")
		snippet := strings.TrimSpace(container.Find(".result__snippet, .result-snippet").First().Text())

		results = append(results, parsedResult{
			title:   title,
			url:     p.normalizeURL(href),
			snippet: snippet,
		})
	})
	return results, nil
}

// normalizeURL resolves relative hrefs against the search base.
func (p *DuckDuckGoProvider) normalizeURL(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	base, err := url.Parse(p.baseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
