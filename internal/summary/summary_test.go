package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsagent/internal/article"
	"newsagent/internal/cache"
	"newsagent/internal/gemini"
	"newsagent/internal/profile"
)

type fakeGen struct {
	calls   int
	lastSys string
	lastUsr string
	reply   string
	err     error
}

func (f *fakeGen) Generate(_ context.Context, msgs []gemini.Message, _ float32) (string, error) {
	f.calls++
	for _, m := range msgs {
		switch m.Role {
		case "system":
			f.lastSys = m.Content
		case "user":
			f.lastUsr = m.Content
		}
	}
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func testArticle() article.Article {
	return article.Article{
		Title:       "RBI holds repo rate steady",
		URL:         "https://example.com/rbi",
		Source:      "Example Wire",
		PublishedAt: time.Now().UTC().Format(time.RFC3339),
		Description: "The central bank kept rates unchanged. Markets had priced in the decision.",
	}
}

func TestTeaserUsesGeneratedText(t *testing.T) {
	g := New(&fakeGen{reply: "A short generated teaser."}, nil)
	got := g.Teaser(context.Background(), testArticle(), profile.LevelNormal)
	assert.Equal(t, "A short generated teaser.", got)
}

func TestTeaserFallsBackWithoutGenerator(t *testing.T) {
	g := New(nil, nil)
	got := g.Teaser(context.Background(), testArticle(), profile.LevelNormal)
	assert.Equal(t, "The central bank kept rates unchanged.", got)
}

func TestTeaserFallsBackOnFailure(t *testing.T) {
	g := New(&fakeGen{err: errors.New("quota exhausted")}, nil)
	got := g.Teaser(context.Background(), testArticle(), profile.LevelNormal)
	assert.Equal(t, "The central bank kept rates unchanged.", got)
}

func TestTeaserMemoized(t *testing.T) {
	ai := &fakeGen{reply: "Cached teaser."}
	g := New(ai, cache.New(8, time.Minute))
	a := testArticle()

	first := g.Teaser(context.Background(), a, profile.LevelNormal)
	second := g.Teaser(context.Background(), a, profile.LevelNormal)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, ai.calls)

	// A different reading level is a different entry.
	g.Teaser(context.Background(), a, profile.LevelHigh)
	assert.Equal(t, 2, ai.calls)
}

func TestExpandWordBoundsPerLevel(t *testing.T) {
	cases := []struct {
		level  string
		lo, hi int
	}{
		{profile.LevelBasic, 130, 200},
		{profile.LevelNormal, 110, 150},
		{profile.LevelHigh, 180, 260},
		{"unknown", 110, 150},
	}
	for _, tc := range cases {
		ai := &fakeGen{reply: "analysis"}
		g := New(ai, nil)
		_, err := g.Expand(context.Background(), testArticle(), profile.Profile{}.Defaults(), tc.level)
		require.NoError(t, err)
		assert.Contains(t, ai.lastSys, fmt.Sprintf("between %d-%d words", tc.lo, tc.hi), "level %s", tc.level)
	}
}

func TestExpandErrorsWithoutGenerator(t *testing.T) {
	g := New(nil, nil)
	_, err := g.Expand(context.Background(), testArticle(), profile.Profile{}.Defaults(), profile.LevelNormal)
	assert.Error(t, err)
}

func TestExpandPromptCarriesProfileAndArticle(t *testing.T) {
	ai := &fakeGen{reply: "analysis"}
	g := New(ai, nil)
	p := profile.Profile{Name: "Asha", Role: "banker", Interests: []string{"Markets"}}.Defaults()

	_, err := g.Expand(context.Background(), testArticle(), p, profile.LevelNormal)
	require.NoError(t, err)
	assert.Contains(t, ai.lastUsr, "banker")
	// Interest casing is preserved as first seen.
	assert.Contains(t, ai.lastUsr, "Markets")
	assert.Contains(t, ai.lastUsr, "RBI holds repo rate steady")
	assert.Contains(t, ai.lastSys, "Mechanism chain")
}

func TestClarifyDefaultQuestion(t *testing.T) {
	ai := &fakeGen{reply: "because"}
	g := New(ai, nil)

	_, err := g.Clarify(context.Background(), testArticle(), profile.Profile{}.Defaults(), profile.LevelNormal, "   ")
	require.NoError(t, err)
	assert.Contains(t, ai.lastUsr, "6-12 months")
}

func TestClarifyLevelRiders(t *testing.T) {
	ai := &fakeGen{reply: "because"}
	g := New(ai, nil)

	_, err := g.Clarify(context.Background(), testArticle(), profile.Profile{}.Defaults(), profile.LevelBasic, "why?")
	require.NoError(t, err)
	assert.Contains(t, ai.lastSys, "define jargon")

	_, err = g.Clarify(context.Background(), testArticle(), profile.Profile{}.Defaults(), profile.LevelHigh, "why?")
	require.NoError(t, err)
	assert.Contains(t, ai.lastSys, "policy/market mechanisms")
}

func TestClarifyErrorsWithoutGenerator(t *testing.T) {
	g := New(nil, nil)
	_, err := g.Clarify(context.Background(), testArticle(), profile.Profile{}.Defaults(), profile.LevelNormal, "why?")
	assert.Error(t, err)
}

func TestGeneratedTextIsSanitized(t *testing.T) {
	ai := &fakeGen{reply: "```\nThe answer. (Note: based on provided info only.)\n```"}
	g := New(ai, nil)
	got := g.Teaser(context.Background(), testArticle(), profile.LevelNormal)
	assert.Equal(t, "The answer.", got)
}

func TestFallbackTeaser(t *testing.T) {
	a := testArticle()
	assert.Equal(t, "The central bank kept rates unchanged.", FallbackTeaser(a))

	a.Description = ""
	assert.Equal(t, a.Title, FallbackTeaser(a))

	a.Description = strings.Repeat("x", 200)
	got := FallbackTeaser(a)
	assert.Equal(t, 161, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "…"))
}

func TestLevelPreviewDistinctPerLevel(t *testing.T) {
	basic := LevelPreview(profile.LevelBasic)
	normal := LevelPreview(profile.LevelNormal)
	high := LevelPreview(profile.LevelHigh)

	assert.NotEqual(t, basic, normal)
	assert.NotEqual(t, normal, high)
	assert.Contains(t, basic, "Example:")
	assert.Equal(t, normal, LevelPreview("garbage"))
}
