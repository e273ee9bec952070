// Package feed implements the fetch orchestrator: each logical feed issues
// one or more provider queries, merges pools, and escalates through an
// explicit, bounded list of fallback tiers when the shaped pool runs short.
package feed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"newsagent/internal/article"
)

// ID names a logical feed.
type ID string

const (
	National ID = "national"
	Global   ID = "global"
	ForYou   ID = "foryou"
)

const categoryPrefix = "category:"

// CategoryFeed returns the feed ID for a provider category (business,
// technology, science, health, sports).
func CategoryFeed(category string) ID {
	return ID(categoryPrefix + strings.ToLower(category))
}

// Category extracts the category name from a category feed ID.
func (id ID) Category() (string, bool) {
	s := string(id)
	if strings.HasPrefix(s, categoryPrefix) {
		return s[len(categoryPrefix):], true
	}
	return "", false
}

// ErrNoArticles marks a feed that stayed empty after every fallback tier.
var ErrNoArticles = errors.New("no articles after all fallback tiers")

// Error is a feed-level failure, surfaced to the presentation layer as a
// user-visible message. It never aborts other feeds.
type Error struct {
	Feed ID
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("feed %s: %v", e.Feed, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Provider is the external search/headline-retrieval capability.
type Provider interface {
	TopHeadlines(ctx context.Context, country, category string, pageSize int) ([]article.Raw, error)
	Everything(ctx context.Context, query string, days, pageSize int) ([]article.Raw, error)
}

// LocalFetcher pulls trusted local RSS feeds into the pool. Optional.
type LocalFetcher func(ctx context.Context, urls []string) []article.Raw

// query is one provider call. Failures count as zero results.
type query func(ctx context.Context) ([]article.Raw, error)

// tier is one escalation step: the queries to merge in, and the minimum
// shaped-pool size below which the next tier triggers.
type tier struct {
	queries   []query
	threshold int
}

// plan is the full fetch policy for one feed.
type plan struct {
	tiers    []tier
	cap      int
	country  string // empty disables locality
	semantic bool   // rank against the profile vector when possible
}
