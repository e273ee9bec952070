// Package rules holds the static tables the pipeline matches against:
// outlet quality lists, low-signal phrases, per-country locality data and
// category query strings. Tables ship with built-in defaults and can be
// overridden from a YAML file so they are tunable without touching the
// ranking code.
package rules

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Country describes the locality data for one supported country code.
type Country struct {
	Name           string   `yaml:"name"`
	TrustedDomains []string `yaml:"trustedDomains"`
	GeoKeywords    []string `yaml:"geoKeywords"`
	FallbackQuery  string   `yaml:"fallbackQuery"`
	LocalFeeds     []string `yaml:"localFeeds"`
}

// Tables is the full rule set consumed by the filter, locality and rank
// packages.
type Tables struct {
	Tabloids        []string           `yaml:"tabloids"`
	LowSignal       []string           `yaml:"lowSignal"`
	MajorOutlets    []string           `yaml:"majorOutlets"`
	Countries       map[string]Country `yaml:"countries"`
	CategoryQueries map[string]string  `yaml:"categoryQueries"`

	tabloidSet map[string]struct{}
	majorSet   map[string]struct{}
}

// Default returns the built-in rule set.
func Default() *Tables {
	t := &Tables{
		Tabloids: []string{
			"TMZ", "Daily Mail", "Page Six", "The Sun", "US Weekly", "Radar Online",
			"E! Online", "Perez Hilton", "Hollywood Life", "The Mirror", "OK! Magazine",
		},
		LowSignal: []string{
			"butt", "yacht", "kissed", "wardrobe malfunction", "dating rumors",
			"spotted with", "baby bump", "steamy photos",
		},
		MajorOutlets: []string{
			"Reuters", "AP News", "BBC News", "The Guardian", "Financial Times",
			"Bloomberg", "The Wall Street Journal", "The New York Times",
			"Al Jazeera English", "CNBC", "Forbes",
			"The Hindu", "The Economic Times", "Mint", "Indian Express",
			"Business Standard", "NDTV",
		},
		Countries: map[string]Country{
			"in": {
				Name: "India",
				TrustedDomains: []string{
					"thehindu.com", "ndtv.com", "indianexpress.com",
					"economictimes.indiatimes.com", "livemint.com", "business-standard.com",
					"hindustantimes.com", "timesofindia.indiatimes.com",
				},
				GeoKeywords: []string{
					"india", "new delhi", "mumbai", "bengaluru", "rbi",
					"lok sabha", "rajya sabha", "parliament", "supreme court", "sebi",
				},
				FallbackQuery: "India OR New Delhi OR RBI OR Parliament OR Supreme Court",
				LocalFeeds: []string{
					"https://www.thehindu.com/news/national/feeder/default.rss",
					"https://feeds.feedburner.com/ndtvnews-top-stories",
				},
			},
			"us": {
				Name: "United States",
				TrustedDomains: []string{
					"nytimes.com", "washingtonpost.com", "wsj.com", "npr.org",
					"apnews.com", "cnbc.com", "politico.com",
				},
				GeoKeywords: []string{
					"united states", "washington", "congress", "white house",
					"federal reserve", "senate", "supreme court",
				},
				FallbackQuery: "United States OR Washington OR Congress OR Federal Reserve",
				LocalFeeds: []string{
					"https://feeds.npr.org/1001/rss.xml",
				},
			},
			"gb": {
				Name: "United Kingdom",
				TrustedDomains: []string{
					"bbc.co.uk", "bbc.com", "theguardian.com", "ft.com",
					"telegraph.co.uk", "independent.co.uk", "sky.com",
				},
				GeoKeywords: []string{
					"uk", "britain", "united kingdom", "london", "westminster",
					"downing street", "bank of england", "nhs",
				},
				FallbackQuery: "UK OR Britain OR Westminster OR Bank of England",
				LocalFeeds: []string{
					"https://feeds.bbci.co.uk/news/uk/rss.xml",
				},
			},
			"sg": {
				Name: "Singapore",
				TrustedDomains: []string{
					"straitstimes.com", "channelnewsasia.com", "todayonline.com",
					"businesstimes.com.sg", "mothership.sg",
				},
				GeoKeywords: []string{
					"singapore", "mas", "temasek", "hdb", "changi", "asean",
				},
				FallbackQuery: "Singapore OR MAS OR Temasek OR ASEAN",
				LocalFeeds: []string{
					"https://www.channelnewsasia.com/api/v1/rss-outbound-feed?_format=xml",
				},
			},
			"au": {
				Name: "Australia",
				TrustedDomains: []string{
					"abc.net.au", "smh.com.au", "theage.com.au", "afr.com",
					"theaustralian.com.au", "news.com.au",
				},
				GeoKeywords: []string{
					"australia", "canberra", "sydney", "melbourne", "rba", "asx",
				},
				FallbackQuery: "Australia OR Canberra OR RBA OR ASX",
				LocalFeeds: []string{
					"https://www.abc.net.au/news/feed/51120/rss.xml",
				},
			},
			"ca": {
				Name: "Canada",
				TrustedDomains: []string{
					"cbc.ca", "theglobeandmail.com", "nationalpost.com",
					"ctvnews.ca", "globalnews.ca",
				},
				GeoKeywords: []string{
					"canada", "ottawa", "toronto", "bank of canada", "tsx", "quebec",
				},
				FallbackQuery: "Canada OR Ottawa OR Bank of Canada OR TSX",
				LocalFeeds: []string{
					"https://www.cbc.ca/webfeed/rss/rss-topstories",
				},
			},
		},
		CategoryQueries: map[string]string{
			"business":   "markets OR earnings OR merger OR inflation OR startup funding",
			"technology": "artificial intelligence OR semiconductor OR software OR cybersecurity",
			"science":    "research OR discovery OR space mission OR climate study",
			"health":     "public health OR vaccine OR clinical trial OR hospital",
			"sports":     "championship OR tournament OR league OR world cup",
		},
	}
	t.index()
	return t
}

// Load reads a YAML rule file and overlays it on the defaults. Any section
// present in the file replaces the default section wholesale. A missing file
// is not an error: the defaults are returned as-is.
func Load(path string) (*Tables, error) {
	base := Default()
	if path == "" {
		return base, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return base, nil
		}
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	var override Tables
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("parse rules file %s: %w", path, err)
	}

	if len(override.Tabloids) > 0 {
		base.Tabloids = override.Tabloids
	}
	if len(override.LowSignal) > 0 {
		base.LowSignal = override.LowSignal
	}
	if len(override.MajorOutlets) > 0 {
		base.MajorOutlets = override.MajorOutlets
	}
	if len(override.Countries) > 0 {
		base.Countries = override.Countries
	}
	if len(override.CategoryQueries) > 0 {
		base.CategoryQueries = override.CategoryQueries
	}
	base.index()
	return base, nil
}

func (t *Tables) index() {
	t.tabloidSet = make(map[string]struct{}, len(t.Tabloids))
	for _, name := range t.Tabloids {
		t.tabloidSet[strings.ToLower(name)] = struct{}{}
	}
	t.majorSet = make(map[string]struct{}, len(t.MajorOutlets))
	for _, name := range t.MajorOutlets {
		t.majorSet[strings.ToLower(name)] = struct{}{}
	}
}

// IsTabloid reports whether the source name is on the tabloid denylist.
func (t *Tables) IsTabloid(source string) bool {
	_, ok := t.tabloidSet[strings.ToLower(strings.TrimSpace(source))]
	return ok
}

// IsMajor reports whether the source name is on the major-outlet list.
func (t *Tables) IsMajor(source string) bool {
	_, ok := t.majorSet[strings.ToLower(strings.TrimSpace(source))]
	return ok
}

// Country returns the locality data for a country code. Unsupported codes
// yield the zero value: empty domain and keyword sets, so locality checks
// never match.
func (t *Tables) Country(code string) Country {
	return t.Countries[strings.ToLower(code)]
}

// SupportedCountries lists the country codes with locality data.
func (t *Tables) SupportedCountries() []string {
	codes := make([]string, 0, len(t.Countries))
	for code := range t.Countries {
		codes = append(codes, code)
	}
	return codes
}
