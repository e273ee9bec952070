// Package article defines the canonical article record and the shaping
// boundary that converts untrusted provider payloads into it. Nothing
// downstream of Shape touches raw provider shapes.
package article

import (
	"net/url"
	"strings"
	"time"
)

// DescriptionBudget caps the stored snippet length, in runes. Keeps memory
// and prompt sizes bounded.
const DescriptionBudget = 900

// RawSource is the nested source object of a provider record.
type RawSource struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Raw is an untrusted provider record. Any field may be missing.
type Raw struct {
	Source      RawSource `json:"source"`
	Author      string    `json:"author"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	URLToImage  string    `json:"urlToImage"`
	PublishedAt string    `json:"publishedAt"`
	Content     string    `json:"content"`
}

// Article is the canonical record. Immutable once shaped.
type Article struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at"` // ISO-8601 or empty (= unknown)
	ImageURL    string `json:"image_url,omitempty"`
	Description string `json:"description"`
}

// Key is the deduplication identity: title and url concatenated.
func (a Article) Key() string {
	return a.Title + a.URL
}

// Domain returns the lower-cased host of the article URL, stripped of a
// leading "www.". Unparseable URLs yield the empty string.
func (a Article) Domain() string {
	u, err := url.Parse(a.URL)
	if err != nil || u.Host == "" {
		return ""
	}
	host := strings.ToLower(u.Host)
	return strings.TrimPrefix(host, "www.")
}

// Text returns the lower-cased title plus description, the haystack for
// keyword matching.
func (a Article) Text() string {
	return strings.ToLower(a.Title + " " + a.Description)
}

// timestamp layouts seen from providers, tried in order.
var publishedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	time.RFC1123Z,
	time.RFC1123,
}

// PublishedTime parses the published timestamp. Missing or unparseable
// timestamps resolve to now: undated items are treated as maximally recent
// rather than buried. That choice is fail-open on purpose.
func (a Article) PublishedTime(now time.Time) time.Time {
	if a.PublishedAt == "" {
		return now
	}
	for _, layout := range publishedLayouts {
		if t, err := time.Parse(layout, a.PublishedAt); err == nil {
			return t
		}
	}
	return now
}
