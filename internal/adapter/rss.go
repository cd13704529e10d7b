package adapter

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/mmcdole/gofeed"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/amishk599/jobdigest/internal/model"
)

// Ensure RSSAdapter implements model.FeedFetcher.
var _ model.FeedFetcher = (*RSSAdapter)(nil)

// RSSAdapter fetches raw RSS or Atom feeds without a JSON proxy.
type RSSAdapter struct {
	parser *gofeed.Parser
}

// NewRSSAdapter creates a feed fetcher that downloads feeds with client.
func NewRSSAdapter(client *http.Client) *RSSAdapter {
	parser := gofeed.NewParser()
	parser.Client = client
	parser.UserAgent = userAgent
	return &RSSAdapter{parser: parser}
}

// Fetch downloads and parses feedURL, returning one item per entry.
func (a *RSSAdapter) Fetch(ctx context.Context, label, feedURL string) ([]model.FeedItem, error) {
	ctx, span := otel.Tracer("jobdigest/adapter/rss").Start(ctx, "feeds.fetch")
	span.SetAttributes(attribute.String("feed.label", label))
	defer span.End()

	feed, err := a.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		err = fmt.Errorf("rss fetch for %s: %w", label, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	items := make([]model.FeedItem, 0, len(feed.Items))
	for _, entry := range feed.Items {
		items = append(items, model.FeedItem{
			Label: label,
			Title: extractText(entry.Title),
			Link:  strings.TrimSpace(entry.Link),
		})
	}
	span.SetAttributes(attribute.Int("feed.items", len(items)))
	return items, nil
}
