package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/amishk599/jobdigest/internal/config"
	"github.com/amishk599/jobdigest/internal/digest"
	"github.com/amishk599/jobdigest/internal/model"
)

// FeedSubject is the subject line of the feed list email.
const FeedSubject = "Daily LinkedIn DevOps Job Listings"

// FeedPipeline polls a fixed list of feeds and mails their items. It shares
// nothing with SearchPipeline.
type FeedPipeline struct {
	feeds    []config.Feed
	fetchers map[string]model.FeedFetcher // keyed by config.Feed.Format
	notifier model.Notifier
	from     string
	to       string
	logger   *slog.Logger
}

// NewFeedPipeline creates a feed pipeline. fetchers maps each feed format to
// the fetcher that understands it.
func NewFeedPipeline(
	feeds []config.Feed,
	fetchers map[string]model.FeedFetcher,
	notifier model.Notifier,
	from, to string,
	logger *slog.Logger,
) *FeedPipeline {
	return &FeedPipeline{
		feeds:    feeds,
		fetchers: fetchers,
		notifier: notifier,
		from:     from,
		to:       to,
		logger:   logger,
	}
}

// Run fetches every feed, renders the combined list and sends it. It returns
// the number of items sent.
func (p *FeedPipeline) Run(ctx context.Context) (int, error) {
	ctx, span := otel.Tracer("jobdigest/pipeline").Start(ctx, "feeds.run")
	defer span.End()

	items, err := p.FetchAll(ctx)
	if err != nil {
		return 0, err
	}
	span.SetAttributes(attribute.Int("feeds.items", len(items)))

	body, err := digest.RenderFeeds(items)
	if err != nil {
		return 0, err
	}

	msg := model.MailMessage{
		Subject:  FeedSubject,
		From:     p.from,
		To:       p.to,
		HTMLBody: body,
	}
	if err := p.notifier.Notify(ctx, msg); err != nil {
		return 0, fmt.Errorf("delivering feed list: %w", err)
	}

	p.logger.Info("feed run complete", "feeds", len(p.feeds), "items", len(items))
	return len(items), nil
}

// FetchAll fetches feeds in order. A feed that fails is logged and
// contributes no items.
func (p *FeedPipeline) FetchAll(ctx context.Context) ([]model.FeedItem, error) {
	var items []model.FeedItem
	for _, feed := range p.feeds {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("feed fetch cancelled: %w", err)
		}

		fetcher, ok := p.fetchers[feed.Format]
		if !ok {
			p.logger.Error("error fetching feed", "feed", feed.Label, "error", fmt.Sprintf("no fetcher for format %q", feed.Format))
			continue
		}

		got, err := fetcher.Fetch(ctx, feed.Label, feed.URL)
		if err != nil {
			p.logger.Error("error fetching feed", "feed", feed.Label, "error", err)
			continue
		}
		p.logger.Debug("fetched feed", "feed", feed.Label, "items", len(got))
		items = append(items, got...)
	}
	return items, nil
}
