// Package summary generates the reading-level-adjusted article texts:
// teasers for list display, expanded analyses on demand, and clarification
// answers. Prompts constrain the model to the supplied article fields only.
// Every path degrades to a non-fatal fallback when generation fails.
package summary

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"newsagent/internal/article"
	"newsagent/internal/cache"
	"newsagent/internal/gemini"
	"newsagent/internal/logger"
	"newsagent/internal/metrics"
	"newsagent/internal/profile"
)

// Generation temperatures per task.
const (
	teaserTemperature  = 0.2
	expandTemperature  = 0.25
	clarifyTemperature = 0.3
)

const defaultClarifyQuestion = "Explain step-by-step HOW and WHY this news could affect me over the next 6-12 months."

// TextGenerator is the external text-generation capability.
type TextGenerator interface {
	Generate(ctx context.Context, msgs []gemini.Message, temperature float32) (string, error)
}

type Generator struct {
	ai   TextGenerator // nil means generation unavailable; fallbacks apply
	memo *cache.Cache
}

// New builds a generator. memo holds generated texts (long TTL, keyed by
// exact inputs); pass nil to disable memoization.
func New(ai TextGenerator, memo *cache.Cache) *Generator {
	return &Generator{ai: ai, memo: memo}
}

// Teaser returns a 30-50 word reading-level-adjusted teaser. On any
// generation failure the truncated raw snippet is returned instead; a feed
// render never fails because teasers do.
func (g *Generator) Teaser(ctx context.Context, a article.Article, level string) string {
	key := cache.Key("teaser", a.URL, a.Title, level)
	if g.memo != nil {
		if v, ok := g.memo.Get(key); ok {
			return v.(string)
		}
	}

	if g.ai == nil {
		return FallbackTeaser(a)
	}

	system := "You write one-paragraph news teasers of 30-50 words. " +
		"Use ONLY the provided title/description/source - no outside facts, no opinions." +
		levelRider(level)
	payload := map[string]any{
		"ARTICLE":       articlePayload(a),
		"READING_LEVEL": level,
	}

	text, err := g.generate(ctx, system, payload, teaserTemperature)
	if err != nil {
		logger.Warn("teaser generation failed", "url", a.URL, "error", err)
		metrics.Global.IncrementGenerationFailures()
		return FallbackTeaser(a)
	}
	metrics.Global.IncrementTeasersGenerated()

	if g.memo != nil {
		g.memo.Set(key, text)
	}
	return text
}

// Expand returns the structured analysis for one article, tailored to the
// profile and bounded by the reading level's word budget.
func (g *Generator) Expand(ctx context.Context, a article.Article, p profile.Profile, level string) (string, error) {
	key := cache.Key("expand", a.URL, a.Title, level, p.Role, strings.Join(p.NormalizedInterests(), ","))
	if g.memo != nil {
		if v, ok := g.memo.Get(key); ok {
			return v.(string), nil
		}
	}

	if g.ai == nil {
		return "", fmt.Errorf("text generation unavailable")
	}

	lo, hi := boundsFor(level)
	system := fmt.Sprintf(
		"You are a concise, accurate news aide.\n"+
			"Write between %d-%d words. Use ONLY the provided title/description/source/time - no fabrication.\n"+
			"Structure:\n"+
			"What happened - crisp factual recap.\n"+
			"Why it matters to YOU - tailor to the user's work/study & interests.\n"+
			"Mechanism chain - how the effect propagates, step by step.\n"+
			"What to watch - 2-3 concrete signals.\n"+
			"Decision checklist - 2-3 concrete follow-ups.\n"+
			"Assumptions - what this reading takes for granted.\n"+
			"Confidence - High/Med/Low.\n",
		lo, hi,
	) + levelRider(level)

	payload := map[string]any{
		"USER": map[string]any{
			"name":      p.Name,
			"role":      p.Role,
			"interests": p.NormalizedInterests(),
		},
		"ARTICLE":       articlePayload(a),
		"READING_LEVEL": level,
	}

	text, err := g.generate(ctx, system, payload, expandTemperature)
	if err != nil {
		metrics.Global.IncrementGenerationFailures()
		return "", err
	}
	if g.memo != nil {
		g.memo.Set(key, text)
	}
	return text, nil
}

// Clarify answers a free-form follow-up question with a causal chain. An
// empty question asks the default "how does this affect me" question.
func (g *Generator) Clarify(ctx context.Context, a article.Article, p profile.Profile, level, question string) (string, error) {
	if g.ai == nil {
		return "", fmt.Errorf("text generation unavailable")
	}
	if strings.TrimSpace(question) == "" {
		question = defaultClarifyQuestion
	}

	system := "Answer clearly with a causal chain, tailored to user role/interests. " +
		"Use ONLY provided article info."
	switch level {
	case profile.LevelBasic:
		system += " Use simple language; define jargon."
	case profile.LevelHigh:
		system += " Include policy/market mechanisms if relevant."
	}

	payload := map[string]any{
		"QUESTION": question,
		"USER": map[string]any{
			"role":      p.Role,
			"interests": p.NormalizedInterests(),
		},
		"ARTICLE": map[string]any{
			"title":   a.Title,
			"snippet": a.Description,
			"source":  a.Source,
		},
	}

	return g.generate(ctx, system, payload, clarifyTemperature)
}

func (g *Generator) generate(ctx context.Context, system string, payload map[string]any, temperature float32) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal prompt payload: %w", err)
	}
	msgs := []gemini.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: string(body)},
	}
	text, err := g.ai.Generate(ctx, msgs, temperature)
	if err != nil {
		return "", err
	}
	return Sanitize(text), nil
}

func articlePayload(a article.Article) map[string]any {
	return map[string]any{
		"title":   a.Title,
		"source":  a.Source,
		"time":    displayTime(a),
		"snippet": a.Description,
		"url":     a.URL,
	}
}

func displayTime(a article.Article) string {
	now := time.Now().UTC()
	t := a.PublishedTime(now)
	return t.UTC().Format("02 Jan, 15:04 UTC")
}

// FallbackTeaser is the degraded teaser: the first sentence of the snippet
// (or the title), capped at 160 runes.
func FallbackTeaser(a article.Article) string {
	text := strings.TrimSpace(a.Description)
	if text == "" {
		text = a.Title
	}
	if idx := strings.Index(text, ". "); idx > 0 {
		text = text[:idx+1]
	}
	runes := []rune(text)
	if len(runes) > 160 {
		return string(runes[:160]) + "…"
	}
	return text
}
