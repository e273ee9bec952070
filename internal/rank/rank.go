// Package rank orders shaped article pools by composite score. The base
// scheme combines outlet authority and recency, optionally with a locality
// boost; the semantic scheme re-ranks against a user profile vector with
// small authority/recency/feedback nudges. Sorting is stable, so equal
// scores keep pool order and fixtures stay reproducible.
package rank

import (
	"math"
	"sort"
	"time"

	"newsagent/internal/article"
	"newsagent/internal/locality"
	"newsagent/internal/rules"
)

// Base score weights, matching the outlet-quality-plus-recency scheme.
const (
	authorityBoost = 1.0
	recencyDay     = 1.2
	recencyTwoDays = 0.4
)

// Semantic feed nudges applied on top of cosine similarity.
const (
	semAuthorityBoost = 0.05
	semRecencyBoost   = 0.08
	semFeedbackBoost  = 0.1
)

type Ranker struct {
	Tables *rules.Tables
	Now    func() time.Time
}

func New(tables *rules.Tables) *Ranker {
	return &Ranker{Tables: tables, Now: time.Now}
}

func (r *Ranker) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// Score computes the base composite score. loc may be nil for feeds without
// a locality component (Global).
func (r *Ranker) Score(a article.Article, loc *locality.Resolver) float64 {
	now := r.now()
	s := 0.0
	if r.Tables.IsMajor(a.Source) {
		s += authorityBoost
	}
	age := now.Sub(a.PublishedTime(now).UTC())
	switch {
	case age <= 24*time.Hour:
		s += recencyDay
	case age <= 48*time.Hour:
		s += recencyTwoDays
	}
	if loc != nil {
		s += loc.Boost(a)
	}
	return s
}

// Rank returns the pool ordered by descending base score. The input slice is
// not modified.
func (r *Ranker) Rank(arts []article.Article, loc *locality.Resolver) []article.Article {
	out := make([]article.Article, len(arts))
	copy(out, arts)

	scores := make([]float64, len(out))
	for i, a := range out {
		scores[i] = r.Score(a, loc)
	}
	sortByScore(out, scores)
	return out
}

// SemanticScore combines cosine similarity between the article vector and
// the profile vector with authority, recency and feedback nudges.
func (r *Ranker) SemanticScore(a article.Article, vec, profileVec []float32, liked bool) float64 {
	now := r.now()
	s := Cosine(vec, profileVec)
	if r.Tables.IsMajor(a.Source) {
		s += semAuthorityBoost
	}
	if now.Sub(a.PublishedTime(now).UTC()) <= 24*time.Hour {
		s += semRecencyBoost
	}
	if liked {
		s += semFeedbackBoost
	}
	return s
}

// SemanticRank orders the pool by descending semantic score. vecs[i] must be
// the embedding of arts[i]; likedURLs marks articles with positive feedback.
func (r *Ranker) SemanticRank(arts []article.Article, vecs [][]float32, profileVec []float32, likedURLs map[string]bool) []article.Article {
	out := make([]article.Article, len(arts))
	copy(out, arts)

	scores := make([]float64, len(out))
	for i, a := range out {
		var vec []float32
		if i < len(vecs) {
			vec = vecs[i]
		}
		scores[i] = r.SemanticScore(a, vec, profileVec, likedURLs[a.URL])
	}
	sortByScore(out, scores)
	return out
}

func sortByScore(arts []article.Article, scores []float64) {
	idx := make([]int, len(arts))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return scores[idx[i]] > scores[idx[j]]
	})

	sorted := make([]article.Article, len(arts))
	for i, j := range idx {
		sorted[i] = arts[j]
	}
	copy(arts, sorted)
}

// Cosine returns the cosine similarity of two vectors, in [-1, 1]. Mismatched
// or empty vectors score zero.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
