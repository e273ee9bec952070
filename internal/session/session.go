// Package session models one user's in-memory state: profile, feedback log,
// bookmarks and exclusion keywords. The session object is passed explicitly
// into every component operation; there is no ambient state. State lives for
// the process lifetime only and is owned by exactly one actor.
package session

import (
	"github.com/google/uuid"

	"newsagent/internal/filter"
	"newsagent/internal/profile"
)

type Session struct {
	ID       string
	Profile  profile.Profile
	Feedback profile.Log

	bookmarks map[string]bool
	exclude   []string
}

func New() *Session {
	return &Session{
		ID:        uuid.NewString(),
		Profile:   profile.Profile{}.Defaults(),
		bookmarks: make(map[string]bool),
	}
}

// SetProfile replaces the profile, applying onboarding defaults.
func (s *Session) SetProfile(p profile.Profile) {
	s.Profile = p.Defaults()
}

// Like records positive feedback for an article.
func (s *Session) Like(url, title string) {
	s.Feedback.Add(profile.Feedback{URL: url, Title: title, Label: 1})
}

// Dislike records negative feedback for an article.
func (s *Session) Dislike(url, title string) {
	s.Feedback.Add(profile.Feedback{URL: url, Title: title, Label: -1})
}

// ToggleBookmark flips the bookmark for a URL and returns the new state.
func (s *Session) ToggleBookmark(url string) bool {
	if s.bookmarks[url] {
		delete(s.bookmarks, url)
		return false
	}
	s.bookmarks[url] = true
	return true
}

func (s *Session) Bookmarked(url string) bool {
	return s.bookmarks[url]
}

func (s *Session) Bookmarks() []string {
	out := make([]string, 0, len(s.bookmarks))
	for u := range s.bookmarks {
		out = append(out, u)
	}
	return out
}

// SetExcludeKeywords parses and stores the comma-separated exclusion field.
func (s *Session) SetExcludeKeywords(raw string) {
	s.exclude = filter.ParseExcludeList(raw)
}

func (s *Session) ExcludeKeywords() []string {
	return s.exclude
}
