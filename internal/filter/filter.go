// Package filter suppresses low-signal and user-excluded articles. Two
// independent tiers: a fixed quality bar (tabloid sources, celebrity-gossip
// title phrases) and a per-session exclusion list. The tiers compose without
// interacting; either alone can suppress an article.
package filter

import (
	"strings"

	"newsagent/internal/article"
	"newsagent/internal/metrics"
	"newsagent/internal/rules"
)

type Filter struct {
	tables *rules.Tables
}

func New(tables *rules.Tables) *Filter {
	return &Filter{tables: tables}
}

// LowSignal reports whether the fixed quality tier suppresses the article:
// denylisted source, or a low-signal phrase in the title. Source match wins
// regardless of title content.
func (f *Filter) LowSignal(a article.Article) bool {
	if f.tables.IsTabloid(a.Source) {
		return true
	}
	title := strings.ToLower(a.Title)
	for _, phrase := range f.tables.LowSignal {
		if strings.Contains(title, phrase) {
			return true
		}
	}
	return false
}

// Excluded reports whether any user keyword occurs in the lower-cased
// title+description+source haystack. Keywords are expected pre-normalized
// (see ParseExcludeList).
func (f *Filter) Excluded(a article.Article, keywords []string) bool {
	if len(keywords) == 0 {
		return false
	}
	hay := strings.ToLower(a.Title + " " + a.Description + " " + a.Source)
	for _, k := range keywords {
		if k != "" && strings.Contains(hay, k) {
			return true
		}
	}
	return false
}

// Apply runs both tiers over a shaped pool, preserving order.
func (f *Filter) Apply(arts []article.Article, exclude []string) []article.Article {
	out := make([]article.Article, 0, len(arts))
	for _, a := range arts {
		if f.LowSignal(a) {
			metrics.Global.IncrementLowSignalSuppressed()
			continue
		}
		if f.Excluded(a, exclude) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// ParseExcludeList splits a comma-separated user input into trimmed,
// lower-cased keywords. Empty entries are dropped.
func ParseExcludeList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
