package article

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func raw(title, url, source string) Raw {
	r := Raw{Title: title, URL: url}
	r.Source.Name = source
	return r
}

func TestShapeDropsEntriesWithoutTitleOrURL(t *testing.T) {
	out := Shape([]Raw{
		raw("", "https://example.com/a", "Reuters"),
		raw("   ", "https://example.com/b", "Reuters"),
		raw("Valid", "", "Reuters"),
		raw("Kept", "https://example.com/c", "Reuters"),
	})
	require.Len(t, out, 1)
	assert.Equal(t, "Kept", out[0].Title)
}

func TestShapeFirstOccurrenceWins(t *testing.T) {
	a := raw("Same", "https://example.com/x", "Reuters")
	a.Description = "first description"
	b := raw("Same", "https://example.com/x", "BBC News")
	b.Description = "second description"

	out := Shape([]Raw{a, b})
	require.Len(t, out, 1)
	assert.Equal(t, "Reuters", out[0].Source)
	assert.Equal(t, "first description", out[0].Description)
}

func TestShapeIsIdempotent(t *testing.T) {
	pool := []Raw{
		raw("A", "u1", "Reuters"),
		raw("B", "u2", "BBC News"),
		raw("A", "u1", "CNN"),
	}
	first := Shape(pool)
	second := Shape(pool)
	assert.Equal(t, first, second)
}

func TestShapeDefaultsMissingSource(t *testing.T) {
	out := Shape([]Raw{raw("Headline", "https://example.com", "")})
	require.Len(t, out, 1)
	assert.Equal(t, "Source", out[0].Source)
}

func TestShapeTruncatesDescription(t *testing.T) {
	r := raw("Long", "https://example.com/long", "Reuters")
	r.Description = strings.Repeat("x", 5000)

	out := Shape([]Raw{r})
	require.Len(t, out, 1)
	assert.Len(t, []rune(out[0].Description), DescriptionBudget)
}

func TestShapeFallsBackToContentSnippet(t *testing.T) {
	r := raw("No Desc", "https://example.com/nd", "Reuters")
	r.Content = "the content field"

	out := Shape([]Raw{r})
	require.Len(t, out, 1)
	assert.Equal(t, "the content field", out[0].Description)
}

func TestShapeStripsHTMLFromSnippets(t *testing.T) {
	r := raw("Markup", "https://example.com/m", "Reuters")
	r.Description = "<p>Rates <b>held</b> steady.</p>\n<img src=\"x\"/>"

	out := Shape([]Raw{r})
	require.Len(t, out, 1)
	assert.Equal(t, "Rates held steady.", out[0].Description)
}

func TestDomainParsing(t *testing.T) {
	a := Article{URL: "https://www.thehindu.com/news/article123.ece"}
	assert.Equal(t, "thehindu.com", a.Domain())

	assert.Equal(t, "", Article{URL: "://not a url"}.Domain())
	assert.Equal(t, "", Article{URL: ""}.Domain())
}

func TestPublishedTimeFailOpen(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	parsed := Article{PublishedAt: "2025-05-31T10:00:00Z"}.PublishedTime(now)
	assert.Equal(t, time.Date(2025, 5, 31, 10, 0, 0, 0, time.UTC), parsed)

	// Missing and garbage timestamps both resolve to now.
	assert.Equal(t, now, Article{}.PublishedTime(now))
	assert.Equal(t, now, Article{PublishedAt: "yesterday-ish"}.PublishedTime(now))
}
