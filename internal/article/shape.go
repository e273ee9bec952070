package article

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"newsagent/internal/metrics"
)

// Shape converts a raw provider pool into canonical articles, in pool order.
// Entries without a title or url are dropped. Duplicates share a (title+url)
// key; the first occurrence wins, so concatenation order of provider pools
// decides which duplicate's metadata survives. Descriptions are cleaned of
// HTML and truncated to DescriptionBudget runes. Pure transformation, no
// network access.
func Shape(raws []Raw) []Article {
	out := make([]Article, 0, len(raws))
	seen := make(map[string]struct{}, len(raws))

	for _, r := range raws {
		title := strings.TrimSpace(r.Title)
		rawURL := strings.TrimSpace(r.URL)
		if title == "" || rawURL == "" {
			continue
		}

		source := strings.TrimSpace(r.Source.Name)
		if source == "" {
			source = "Source"
		}

		desc := r.Description
		if desc == "" {
			desc = r.Content
		}
		desc = cleanSnippet(desc)

		a := Article{
			Title:       title,
			URL:         rawURL,
			Source:      source,
			PublishedAt: strings.TrimSpace(r.PublishedAt),
			ImageURL:    strings.TrimSpace(r.URLToImage),
			Description: truncate(desc, DescriptionBudget),
		}

		if _, dup := seen[a.Key()]; dup {
			metrics.Global.IncrementDuplicatesDropped()
			continue
		}
		seen[a.Key()] = struct{}{}
		out = append(out, a)
		metrics.Global.IncrementArticlesShaped()
	}
	return out
}

// cleanSnippet strips markup from a provider snippet. RSS descriptions in
// particular arrive with embedded HTML.
func cleanSnippet(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if strings.ContainsAny(s, "<&") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(s)); err == nil {
			s = doc.Text()
		}
	}
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, budget int) string {
	runes := []rune(s)
	if len(runes) <= budget {
		return s
	}
	return string(runes[:budget])
}
