package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/amishk599/jobdigest/internal/model"
)

// Ensure RSS2JSONAdapter implements model.FeedFetcher.
var _ model.FeedFetcher = (*RSS2JSONAdapter)(nil)

// rss2jsonItem is one entry of an RSS-to-JSON proxy response.
type rss2jsonItem struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// rss2jsonResponse is the top-level RSS-to-JSON proxy response.
type rss2jsonResponse struct {
	Status  string         `json:"status"`
	Message string         `json:"message"`
	Items   []rss2jsonItem `json:"items"`
}

// RSS2JSONAdapter fetches feeds through an RSS-to-JSON proxy.
type RSS2JSONAdapter struct {
	client *http.Client
}

// NewRSS2JSONAdapter creates a feed fetcher that issues requests with client.
func NewRSS2JSONAdapter(client *http.Client) *RSS2JSONAdapter {
	return &RSS2JSONAdapter{client: client}
}

// Fetch GETs feedURL and extracts title/link pairs from its items array.
func (a *RSS2JSONAdapter) Fetch(ctx context.Context, label, feedURL string) ([]model.FeedItem, error) {
	ctx, span := otel.Tracer("jobdigest/adapter/rss2json").Start(ctx, "feeds.fetch")
	span.SetAttributes(attribute.String("feed.label", label))
	defer span.End()

	items, err := a.fetch(ctx, label, feedURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("feed.items", len(items)))
	return items, nil
}

func (a *RSS2JSONAdapter) fetch(ctx context.Context, label, feedURL string) ([]model.FeedItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("rss2json fetch for %s: %w", label, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rss2json fetch for %s: %w", label, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, fmt.Errorf("rss2json fetch for %s: %w", label, err)
	}

	var body rss2jsonResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("rss2json fetch for %s: %w", label, err)
	}
	if strings.EqualFold(body.Status, "error") {
		return nil, fmt.Errorf("rss2json fetch for %s: proxy error: %s", label, body.Message)
	}

	items := make([]model.FeedItem, 0, len(body.Items))
	for _, it := range body.Items {
		items = append(items, model.FeedItem{
			Label: label,
			Title: extractText(it.Title),
			Link:  strings.TrimSpace(it.Link),
		})
	}
	return items, nil
}
