package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"newsagent/internal/profile"
)

func TestNewSessionHasDefaults(t *testing.T) {
	s := New()
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, profile.LevelNormal, s.Profile.ReadingLevel)
	assert.Equal(t, "in", s.Profile.Country)
	assert.NotEqual(t, s.ID, New().ID)
}

func TestSetProfileAppliesDefaults(t *testing.T) {
	s := New()
	s.SetProfile(profile.Profile{Name: "Asha", Country: "gb"})
	assert.Equal(t, "Asha", s.Profile.Name)
	assert.Equal(t, "gb", s.Profile.Country)
	assert.Equal(t, profile.LevelNormal, s.Profile.ReadingLevel)
}

func TestFeedbackRecording(t *testing.T) {
	s := New()
	s.Like("https://example.com/a", "A")
	s.Dislike("https://example.com/b", "B")

	assert.Equal(t, 2, s.Feedback.Len())

	liked := s.Feedback.LikedURLs()
	assert.Equal(t, map[string]bool{"https://example.com/a": true}, liked)
	assert.False(t, liked["https://example.com/b"])
}

func TestToggleBookmark(t *testing.T) {
	s := New()
	url := "https://example.com/a"

	assert.True(t, s.ToggleBookmark(url))
	assert.True(t, s.Bookmarked(url))
	assert.Equal(t, []string{url}, s.Bookmarks())

	assert.False(t, s.ToggleBookmark(url))
	assert.False(t, s.Bookmarked(url))
	assert.Empty(t, s.Bookmarks())
}

func TestExcludeKeywords(t *testing.T) {
	s := New()
	assert.Empty(t, s.ExcludeKeywords())

	s.SetExcludeKeywords("Crypto, IPL,  , celebrity")
	assert.Equal(t, []string{"crypto", "ipl", "celebrity"}, s.ExcludeKeywords())

	s.SetExcludeKeywords("")
	assert.Empty(t, s.ExcludeKeywords())
}
