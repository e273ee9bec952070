package profile

import (
	"context"
	"fmt"
	"strings"
)

// likedTitleCount caps how many recent positive titles feed the summary.
const likedTitleCount = 5

// Embedder is the external embedding capability. Failure is never fatal to a
// feed; callers degrade to non-semantic ranking.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Summary builds the one-line textual persona that gets embedded: stated
// role, interests, country and the most recent liked titles.
func Summary(p Profile, likes []Feedback) string {
	var b strings.Builder
	b.WriteString("role: ")
	b.WriteString(p.Role)
	b.WriteString(" | interests: ")
	b.WriteString(strings.Join(p.NormalizedInterests(), ", "))
	b.WriteString(" | country: ")
	b.WriteString(p.Country)
	if len(likes) > 0 {
		titles := make([]string, 0, len(likes))
		for _, f := range likes {
			if t := strings.TrimSpace(f.Title); t != "" {
				titles = append(titles, t)
			}
		}
		if len(titles) > 0 {
			b.WriteString(" | liked: ")
			b.WriteString(strings.Join(titles, "; "))
		}
	}
	return b.String()
}

// Vector computes the profile embedding from the current profile and
// feedback log. Recomputed on demand, not cached across profile edits.
func Vector(ctx context.Context, e Embedder, p Profile, log *Log) ([]float32, error) {
	if e == nil {
		return nil, fmt.Errorf("no embedder available")
	}
	text := Summary(p, log.RecentLikes(likedTitleCount))
	vecs, err := e.Embed(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("embed profile summary: %w", err)
	}
	if len(vecs) == 0 || len(vecs[0]) == 0 {
		return nil, fmt.Errorf("empty profile embedding")
	}
	return vecs[0], nil
}
