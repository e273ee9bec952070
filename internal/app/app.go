// Package app wires the pipeline together and exposes the presentation
// boundary: feed fetches per session, and teaser/expand/clarify per article.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"newsagent/internal/article"
	"newsagent/internal/cache"
	"newsagent/internal/config"
	"newsagent/internal/feed"
	"newsagent/internal/gemini"
	"newsagent/internal/logger"
	"newsagent/internal/newsapi"
	"newsagent/internal/profile"
	"newsagent/internal/rss"
	"newsagent/internal/rules"
	"newsagent/internal/session"
	"newsagent/internal/summary"
)

type App struct {
	cfg  *config.Config
	sess *session.Session
	orch *feed.Orchestrator
	gen  *summary.Generator
	ai   *gemini.Client
}

// New builds a ready application. A missing or failing Gemini key is not
// fatal: generation falls back to snippets and For-You ranking degrades to
// authority+recency.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	tables, err := rules.Load(cfg.RulesPath)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}

	var ai *gemini.Client
	var embedder profile.Embedder
	var textGen summary.TextGenerator
	if cfg.GeminiAPIKey != "" {
		ai, err = gemini.NewClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			logger.Warn("gemini unavailable, running degraded", "error", err)
		} else {
			embedder = ai
			textGen = ai
		}
	} else {
		logger.Warn("GEMINI_API_KEY not set, generation and semantic ranking disabled")
	}

	orch := feed.New(feed.Config{
		Provider:     newsapi.New(cfg.NewsAPIKey, cfg.ProviderTimeout),
		Embedder:     embedder,
		Local:        rss.FetchLocal,
		Tables:       tables,
		Memo:         cache.New(cfg.FeedCacheSize, cfg.FeedCacheTTL),
		PromoteCount: cfg.PromoteCount,
	})

	return &App{
		cfg:  cfg,
		sess: session.New(),
		orch: orch,
		gen:  summary.New(textGen, cache.New(cfg.TextCacheSize, cfg.TextCacheTTL)),
		ai:   ai,
	}, nil
}

func (a *App) Close() {
	if a.ai != nil {
		a.ai.Close()
	}
}

// Session exposes the session for profile edits, feedback and bookmarks.
func (a *App) Session() *session.Session { return a.sess }

// Fetch returns the ordered article list for one feed.
func (a *App) Fetch(ctx context.Context, id feed.ID) ([]article.Article, error) {
	return a.orch.Fetch(ctx, id, a.sess)
}

// Teaser returns the short list-display text for an article. Never fails;
// degraded output is the truncated snippet.
func (a *App) Teaser(ctx context.Context, art article.Article) string {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.GenerateTimeout)
	defer cancel()
	return a.gen.Teaser(ctx, art, a.sess.Profile.ReadingLevel)
}

// Expand returns the structured on-demand analysis for an article.
func (a *App) Expand(ctx context.Context, art article.Article) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.GenerateTimeout)
	defer cancel()
	return a.gen.Expand(ctx, art, a.sess.Profile, a.sess.Profile.ReadingLevel)
}

// Clarify answers a follow-up question about an article. An empty question
// asks the default causal-chain question.
func (a *App) Clarify(ctx context.Context, art article.Article, question string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.GenerateTimeout)
	defer cancel()
	return a.gen.Clarify(ctx, art, a.sess.Profile, a.sess.Profile.ReadingLevel, question)
}

// Run is the console demo: fetch the main feeds for the current session and
// print the top of each with teasers. A failing feed prints its message and
// the remaining feeds still render.
func (a *App) Run(ctx context.Context) error {
	feeds := []feed.ID{feed.National, feed.Global, feed.ForYou}

	for _, id := range feeds {
		arts, err := a.Fetch(ctx, id)
		if err != nil {
			var ferr *feed.Error
			if errors.As(err, &ferr) {
				fmt.Printf("\n== %s ==\nNo articles available right now (%v). Try again in a minute.\n", strings.ToUpper(string(id)), ferr.Err)
				continue
			}
			return err
		}

		fmt.Printf("\n== %s == (%d articles)\n", strings.ToUpper(string(id)), len(arts))
		for i, art := range arts {
			if i >= 5 {
				break
			}
			fmt.Printf("%d. %s — %s\n", i+1, art.Title, art.Source)
			fmt.Printf("   %s\n", a.Teaser(ctx, art))
			fmt.Printf("   %s\n", art.URL)
		}
	}
	return nil
}
