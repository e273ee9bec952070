// Package profile holds the user profile, the implicit-feedback log and the
// profile-vector construction used for semantic ranking.
package profile

import (
	"strings"
	"time"
)

// Reading levels form a closed set; unknown values are treated as normal.
const (
	LevelBasic  = "basic"
	LevelNormal = "normal"
	LevelHigh   = "high"
)

// Profile is the user's stated identity. Mutable, session-owned.
type Profile struct {
	Name         string
	Role         string
	Interests    []string
	ReadingLevel string
	Country      string
}

// Defaults fills unset fields the way the onboarding form would.
func (p Profile) Defaults() Profile {
	if strings.TrimSpace(p.Name) == "" {
		p.Name = "Reader"
	}
	if strings.TrimSpace(p.Role) == "" {
		p.Role = "Professional/Student"
	}
	if p.ReadingLevel != LevelBasic && p.ReadingLevel != LevelHigh {
		p.ReadingLevel = LevelNormal
	}
	if p.Country == "" {
		p.Country = "in"
	}
	return p
}

// NormalizedInterests returns the interest list trimmed and deduplicated
// case-insensitively, preserving first-seen order and casing.
func (p Profile) NormalizedInterests() []string {
	seen := make(map[string]struct{}, len(p.Interests))
	out := make([]string, 0, len(p.Interests))
	for _, raw := range p.Interests {
		i := strings.TrimSpace(raw)
		if i == "" {
			continue
		}
		key := strings.ToLower(i)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, i)
	}
	return out
}

// ParseInterests splits a comma-separated interests field.
func ParseInterests(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Feedback is one implicit-feedback event: +1 like or -1 dislike.
type Feedback struct {
	URL   string
	Title string
	Label int
	At    time.Time
}

// Log is an append-only feedback log. Ranking and persona hints consult only
// the most recent events.
type Log struct {
	events []Feedback
}

func (l *Log) Add(f Feedback) {
	if f.At.IsZero() {
		f.At = time.Now()
	}
	l.events = append(l.events, f)
}

func (l *Log) Len() int { return len(l.events) }

// RecentLikes returns up to n most recent positively-labeled events, newest
// first.
func (l *Log) RecentLikes(n int) []Feedback {
	out := make([]Feedback, 0, n)
	for i := len(l.events) - 1; i >= 0 && len(out) < n; i-- {
		if l.events[i].Label > 0 {
			out = append(out, l.events[i])
		}
	}
	return out
}

// LikedURLs reports URLs whose most recent label is positive. A later
// dislike cancels an earlier like.
func (l *Log) LikedURLs() map[string]bool {
	latest := make(map[string]int, len(l.events))
	for _, e := range l.events {
		latest[e.URL] = e.Label
	}
	out := make(map[string]bool, len(latest))
	for u, label := range latest {
		if label > 0 {
			out[u] = true
		}
	}
	return out
}
