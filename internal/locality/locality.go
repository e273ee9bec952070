// Package locality maps a country code to trusted domains and geo-keywords
// and decides how locally relevant each article is. It contributes an
// additive boost to national rankings and a stable partial promotion that
// lifts a handful of local items to the front of an already-ranked list.
package locality

import (
	"strings"

	"newsagent/internal/article"
	"newsagent/internal/rules"
)

// Score contributions for locality signals on national and category feeds.
const (
	trustedDomainBoost = 0.6
	geoKeywordBoost    = 0.3
)

// DefaultPromoteCount is how many local articles Promote lifts by default.
const DefaultPromoteCount = 5

type Resolver struct {
	country rules.Country
}

// New builds a resolver for a country code. Unsupported codes get empty
// tables: nothing matches, Boost is always zero and Promote is a no-op.
func New(tables *rules.Tables, code string) *Resolver {
	return &Resolver{country: tables.Country(code)}
}

// TrustedDomain reports whether the article's host belongs to the country's
// trusted-domain set. Subdomains of a trusted domain count.
func (r *Resolver) TrustedDomain(a article.Article) bool {
	host := a.Domain()
	if host == "" {
		return false
	}
	for _, d := range r.country.TrustedDomains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// GeoMatch reports whether the article text mentions any of the country's
// geo-keywords.
func (r *Resolver) GeoMatch(a article.Article) bool {
	if len(r.country.GeoKeywords) == 0 {
		return false
	}
	text := a.Text()
	for _, k := range r.country.GeoKeywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// Local reports whether either locality signal fires.
func (r *Resolver) Local(a article.Article) bool {
	return r.TrustedDomain(a) || r.GeoMatch(a)
}

// Boost is the additive locality contribution to a composite score.
func (r *Resolver) Boost(a article.Article) float64 {
	s := 0.0
	if r.TrustedDomain(a) {
		s += trustedDomainBoost
	}
	if r.GeoMatch(a) {
		s += geoKeywordBoost
	}
	return s
}

// Promote extracts up to n locally-flagged articles from a ranked list and
// places them at the front. The relative order of the promoted articles and
// of the remainder is preserved: a stable partial promotion, not a resort.
func (r *Resolver) Promote(arts []article.Article, n int) []article.Article {
	if n <= 0 || len(arts) == 0 {
		return arts
	}

	promoted := make([]article.Article, 0, n)
	rest := make([]article.Article, 0, len(arts))
	for _, a := range arts {
		if len(promoted) < n && r.Local(a) {
			promoted = append(promoted, a)
			continue
		}
		rest = append(rest, a)
	}
	return append(promoted, rest...)
}
