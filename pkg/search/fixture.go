package search

import "context"

// FixtureHTML is a canned result page with one absolute and one relative
// link, served by the fixture provider in test mode.
const FixtureHTML = `
<html>
<body>
  <div class="results">
    <a class="result__a" href="https://example.com/alpha">Alpha Title</a>
    <span class="result__snippet">Alpha snippet text.</span>
  </div>
  <div class="results">
    <a class="result__a" href="/beta">Beta Title</a>
    <span class="result__snippet">Beta snippet text.</span>
  </div>
</body>
</html>
`

// NewFixtureProvider returns a provider that parses FixtureHTML instead of
// calling the network.
func NewFixtureProvider() Provider {
	return NewFixtureProviderWithHTML(FixtureHTML)
}

func NewFixtureProviderWithHTML(html string) Provider {
	return &DuckDuckGoProvider{
		baseURL: defaultBaseURL,
		fetch: func(ctx context.Context, query string) (string, error) {
			return html, nil
		},
	}
}
