// Package rss pulls the per-country trusted local feeds that supplement the
// National pool when the search provider runs sparse for a country.
package rss

import (
	"context"
	"time"

	"github.com/mmcdole/gofeed"

	"newsagent/internal/article"
	"newsagent/internal/logger"
)

// FetchLocal downloads and parses the given feeds, returning raw records in
// feed order. Per-feed failures are logged and skipped; they never fail the
// pool.
func FetchLocal(ctx context.Context, urls []string) []article.Raw {
	parser := gofeed.NewParser()
	var out []article.Raw
	ok := 0

	for _, u := range urls {
		feed, err := parser.ParseURLWithContext(u, ctx)
		if err != nil {
			logger.Warn("local feed failed", "url", u, "error", err)
			continue
		}
		for _, item := range feed.Items {
			out = append(out, toRaw(feed, item))
		}
		ok++
	}

	logger.Debug("local feeds fetched", "ok", ok, "total", len(urls), "items", len(out))
	return out
}

func toRaw(feed *gofeed.Feed, item *gofeed.Item) article.Raw {
	raw := article.Raw{
		Title:       item.Title,
		Description: item.Description,
		URL:         item.Link,
	}
	raw.Source.Name = feed.Title
	if item.PublishedParsed != nil {
		raw.PublishedAt = item.PublishedParsed.UTC().Format(time.RFC3339)
	} else {
		raw.PublishedAt = item.Published
	}
	if item.Image != nil {
		raw.URLToImage = item.Image.URL
	}
	return raw
}
