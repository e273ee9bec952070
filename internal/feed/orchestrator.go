package feed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"newsagent/internal/article"
	"newsagent/internal/cache"
	"newsagent/internal/filter"
	"newsagent/internal/locality"
	"newsagent/internal/logger"
	"newsagent/internal/metrics"
	"newsagent/internal/profile"
	"newsagent/internal/rank"
	"newsagent/internal/rules"
	"newsagent/internal/session"
)

// Feed-specific minimum counts and caps.
const (
	nationalThreshold = 5
	globalThreshold   = 6
	forYouThreshold   = 10
	categoryThreshold = 12

	nationalCap = 60
	globalCap   = 60
	forYouCap   = 40
	categoryCap = 40

	searchDays        = 2
	maxQueryInterests = 12
)

// Fixed query strings for the non-personalized feeds.
const (
	globalQueryA   = "world OR economy OR inflation OR election OR ceasefire OR climate"
	globalQueryB   = "india OR europe OR china OR middle east OR us OR africa"
	globalCatchAll = "breaking news OR top stories"
	genericForYouQ = "technology OR business OR education OR finance"
)

type Config struct {
	Provider     Provider
	Embedder     profile.Embedder // nil degrades For-You to non-semantic ranking
	Local        LocalFetcher     // nil disables the local RSS supplement
	Tables       *rules.Tables
	Memo         *cache.Cache // nil disables memoization
	PromoteCount int
}

type Orchestrator struct {
	provider Provider
	embedder profile.Embedder
	local    LocalFetcher
	tables   *rules.Tables
	filter   *filter.Filter
	ranker   *rank.Ranker
	memo     *cache.Cache
	promote  int
}

func New(cfg Config) *Orchestrator {
	promote := cfg.PromoteCount
	if promote <= 0 {
		promote = locality.DefaultPromoteCount
	}
	return &Orchestrator{
		provider: cfg.Provider,
		embedder: cfg.Embedder,
		local:    cfg.Local,
		tables:   cfg.Tables,
		filter:   filter.New(cfg.Tables),
		ranker:   rank.New(cfg.Tables),
		memo:     cfg.Memo,
		promote:  promote,
	}
}

// Fetch resolves one feed for one session: query, merge, shape, filter,
// rank, cap. Provider failures on individual queries are absorbed; the feed
// fails only when every tier leaves the pool empty.
func (o *Orchestrator) Fetch(ctx context.Context, id ID, sess *session.Session) ([]article.Article, error) {
	start := time.Now()
	defer func() {
		metrics.Global.RecordFetchTime(time.Since(start))
		metrics.Global.SetLastRun()
	}()

	p := sess.Profile
	key := cache.Key("feed", string(id), p.Country,
		strings.Join(p.NormalizedInterests(), ","),
		strings.Join(sess.ExcludeKeywords(), ","))
	if o.memo != nil {
		if v, ok := o.memo.Get(key); ok {
			return v.([]article.Article), nil
		}
	}

	plan, err := o.planFor(id, p)
	if err != nil {
		return nil, &Error{Feed: id, Err: err}
	}

	shaped := o.executeTiers(ctx, id, plan, sess.ExcludeKeywords())
	if len(shaped) == 0 {
		return nil, &Error{Feed: id, Err: ErrNoArticles}
	}

	ranked := o.rank(ctx, plan, shaped, sess)
	if len(ranked) > plan.cap {
		ranked = ranked[:plan.cap]
	}

	if o.memo != nil {
		o.memo.Set(key, ranked)
	}
	metrics.Global.IncrementFeedsServed()
	return ranked, nil
}

// executeTiers merges raw pools tier by tier. Tier i+1 runs only when the
// shaped, filtered pool after tier i is below tier i's threshold. Escalation
// is bounded by the plan's tier list; there is no retry loop.
func (o *Orchestrator) executeTiers(ctx context.Context, id ID, pl plan, exclude []string) []article.Article {
	var pool []article.Raw
	var shaped []article.Article

	for i, t := range pl.tiers {
		if i > 0 {
			metrics.Global.IncrementFallbacksTriggered()
			logger.Info("feed fallback triggered", "feed", string(id), "tier", i, "have", len(shaped))
		}
		for _, q := range t.queries {
			raws, err := q(ctx)
			if err != nil {
				// Treated as zero results from this query.
				logger.Warn("provider query failed", "feed", string(id), "tier", i, "error", err)
				continue
			}
			pool = append(pool, raws...)
		}
		shaped = o.filter.Apply(article.Shape(pool), exclude)
		if len(shaped) >= t.threshold {
			break
		}
	}
	return shaped
}

func (o *Orchestrator) rank(ctx context.Context, pl plan, shaped []article.Article, sess *session.Session) []article.Article {
	loc := locality.New(o.tables, sess.Profile.Country)

	if pl.semantic {
		ranked, err := o.semanticRank(ctx, shaped, sess)
		if err == nil {
			return loc.Promote(ranked, o.promote)
		}
		metrics.Global.IncrementEmbeddingFailures()
		logger.Warn("semantic ranking unavailable, using base ranking", "error", err)
		// Degraded path: authority+recency with stable locality promotion.
		return loc.Promote(o.ranker.Rank(shaped, nil), o.promote)
	}

	if pl.country != "" {
		return o.ranker.Rank(shaped, loc)
	}
	return o.ranker.Rank(shaped, nil)
}

func (o *Orchestrator) semanticRank(ctx context.Context, shaped []article.Article, sess *session.Session) ([]article.Article, error) {
	if o.embedder == nil {
		return nil, fmt.Errorf("no embedder configured")
	}

	profileVec, err := profile.Vector(ctx, o.embedder, sess.Profile, &sess.Feedback)
	if err != nil {
		return nil, err
	}

	texts := make([]string, len(shaped))
	for i, a := range shaped {
		texts[i] = a.Title + ". " + a.Description
	}
	vecs, err := o.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed articles: %w", err)
	}

	return o.ranker.SemanticRank(shaped, vecs, profileVec, sess.Feedback.LikedURLs()), nil
}

// planFor builds the per-feed query tiers. Each feed has at most one or two
// fallback tiers past its primary queries.
func (o *Orchestrator) planFor(id ID, p profile.Profile) (plan, error) {
	switch {
	case id == National:
		return o.nationalPlan(p), nil
	case id == Global:
		return o.globalPlan(), nil
	case id == ForYou:
		return o.forYouPlan(p), nil
	default:
		if cat, ok := id.Category(); ok {
			return o.categoryPlan(cat, p), nil
		}
		return plan{}, fmt.Errorf("unknown feed %q", id)
	}
}

func (o *Orchestrator) nationalPlan(p profile.Profile) plan {
	country := p.Country
	locale := o.tables.Country(country)

	primary := []query{
		o.headlines(country, "general"),
		o.headlines(country, "business"),
		o.headlines(country, "technology"),
	}
	if o.local != nil && len(locale.LocalFeeds) > 0 {
		primary = append(primary, o.localQuery(locale.LocalFeeds))
	}

	tiers := []tier{{queries: primary, threshold: nationalThreshold}}
	if locale.FallbackQuery != "" {
		tiers = append(tiers, tier{
			queries:   []query{o.search(locale.FallbackQuery)},
			threshold: 0,
		})
	}
	return plan{tiers: tiers, cap: nationalCap, country: country}
}

func (o *Orchestrator) globalPlan() plan {
	return plan{
		tiers: []tier{
			{
				queries:   []query{o.search(globalQueryA), o.search(globalQueryB)},
				threshold: globalThreshold,
			},
			{
				queries:   []query{o.search(globalCatchAll)},
				threshold: 0,
			},
		},
		cap: globalCap,
	}
}

func (o *Orchestrator) forYouPlan(p profile.Profile) plan {
	interests := p.NormalizedInterests()
	if len(interests) > maxQueryInterests {
		interests = interests[:maxQueryInterests]
	}

	primaryQ := genericForYouQ
	if len(interests) > 0 {
		primaryQ = strings.Join(interests, " OR ")
	}

	tiers := []tier{{queries: []query{o.search(primaryQ)}, threshold: forYouThreshold}}

	// Tier 1: widen with the country's geo terms.
	locale := o.tables.Country(p.Country)
	if len(interests) > 0 && len(locale.GeoKeywords) > 0 {
		geo := locale.GeoKeywords
		if len(geo) > 4 {
			geo = geo[:4]
		}
		widened := primaryQ + " OR " + strings.Join(geo, " OR ")
		tiers = append(tiers, tier{queries: []query{o.search(widened)}, threshold: forYouThreshold})
	}

	// Tier 2: generic catch-all topics.
	if primaryQ != genericForYouQ {
		tiers = append(tiers, tier{queries: []query{o.search(genericForYouQ)}, threshold: 0})
	}

	return plan{tiers: tiers, cap: forYouCap, country: p.Country, semantic: true}
}

func (o *Orchestrator) categoryPlan(category string, p profile.Profile) plan {
	tiers := []tier{{
		queries:   []query{o.headlines(p.Country, category)},
		threshold: categoryThreshold,
	}}
	if q := o.tables.CategoryQueries[category]; q != "" {
		tiers = append(tiers, tier{queries: []query{o.search(q)}, threshold: 0})
	}
	return plan{tiers: tiers, cap: categoryCap, country: p.Country}
}

func (o *Orchestrator) headlines(country, category string) query {
	return func(ctx context.Context) ([]article.Raw, error) {
		return o.provider.TopHeadlines(ctx, country, category, 0)
	}
}

func (o *Orchestrator) search(q string) query {
	return func(ctx context.Context) ([]article.Raw, error) {
		return o.provider.Everything(ctx, q, searchDays, 0)
	}
}

func (o *Orchestrator) localQuery(urls []string) query {
	return func(ctx context.Context) ([]article.Raw, error) {
		return o.local(ctx, urls), nil
	}
}
