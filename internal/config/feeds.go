package config

import (
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

// Feed formats understood by the feed pipeline.
const (
	FeedFormatRSS2JSON = "rss2json" // JSON from an RSS-to-JSON proxy
	FeedFormatRSS      = "rss"      // raw RSS or Atom XML
)

const rss2jsonEndpoint = "https://api.rss2json.com/v1/api.json"

// Feed is one labelled feed polled by the feed pipeline.
type Feed struct {
	Label  string `yaml:"label"`
	URL    string `yaml:"url"`
	Format string `yaml:"format"`
}

type rawFeedsConfig struct {
	Feeds []Feed `yaml:"feeds"`
}

// DefaultFeeds returns the built-in feed set, in polling order. Every label
// points at its own LinkedIn job search.
func DefaultFeeds() []Feed {
	searches := []struct {
		label    string
		keywords string
		location string
	}{
		{"DevOps Fresher India", "DevOps Fresher", "India"},
		{"Junior Cloud Engineer Remote", "Junior Cloud Engineer", "Remote"},
		{"Site Reliability Engineer Graduate", "Site Reliability Engineer Graduate", "India"},
		{"AWS DevOps Associate", "AWS DevOps Associate", "India"},
		{"Kubernetes Engineer Fresher", "Kubernetes Engineer Fresher", "India"},
	}

	feeds := make([]Feed, 0, len(searches))
	for _, s := range searches {
		feeds = append(feeds, Feed{
			Label:  s.label,
			URL:    RSS2JSONURL(linkedInSearchURL(s.keywords, s.location)),
			Format: FeedFormatRSS2JSON,
		})
	}
	return feeds
}

// RSS2JSONURL wraps an RSS URL in the rss2json proxy endpoint.
func RSS2JSONURL(rssURL string) string {
	return rss2jsonEndpoint + "?" + url.Values{"rss_url": {rssURL}}.Encode()
}

func linkedInSearchURL(keywords, location string) string {
	return "https://www.linkedin.com/jobs/search/?" + url.Values{
		"keywords": {keywords},
		"location": {location},
	}.Encode()
}

// LoadFeeds returns the feed set for the feed pipeline. An empty path yields
// DefaultFeeds; otherwise the YAML file at path must declare at least one feed.
func LoadFeeds(path string) ([]Feed, error) {
	if path == "" {
		return DefaultFeeds(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read feeds config: %w", err)
	}

	var raw rawFeedsConfig
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &raw); err != nil {
		return nil, fmt.Errorf("parse feeds config: %w", err)
	}

	if len(raw.Feeds) == 0 {
		return nil, fmt.Errorf("feeds config %s declares no feeds", path)
	}

	seen := make(map[string]string, len(raw.Feeds))
	for i := range raw.Feeds {
		f := &raw.Feeds[i]
		if f.Label == "" || f.URL == "" {
			return nil, fmt.Errorf("feeds[%d]: label and url are required", i)
		}
		if f.Format == "" {
			f.Format = FeedFormatRSS2JSON
		}
		if f.Format != FeedFormatRSS2JSON && f.Format != FeedFormatRSS {
			return nil, fmt.Errorf("feeds[%d]: unsupported format %q", i, f.Format)
		}
		if other, ok := seen[f.URL]; ok {
			return nil, fmt.Errorf("feeds %q and %q share the url %s", other, f.Label, f.URL)
		}
		seen[f.URL] = f.Label
	}

	return raw.Feeds, nil
}
