package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/amishk599/jobdigest/internal/model"
)

const duckDuckGoHTMLURL = "https://html.duckduckgo.com/html/"

// safeSearchModerate is DuckDuckGo's kp value for moderate safe-search.
const safeSearchModerate = "-1"

// Ensure DuckDuckGoAdapter implements model.Searcher.
var _ model.Searcher = (*DuckDuckGoAdapter)(nil)

// DuckDuckGoAdapter runs text searches against the DuckDuckGo HTML endpoint
// and scrapes the result page.
type DuckDuckGoAdapter struct {
	endpoint string
	client   *http.Client
}

// NewDuckDuckGoAdapter creates a searcher that issues requests with client.
func NewDuckDuckGoAdapter(client *http.Client) *DuckDuckGoAdapter {
	return &DuckDuckGoAdapter{
		endpoint: duckDuckGoHTMLURL,
		client:   client,
	}
}

// Search issues one request for q and returns at most q.MaxResults hits,
// each tagged with q.Text.
func (a *DuckDuckGoAdapter) Search(ctx context.Context, q model.Query) ([]model.SearchHit, error) {
	ctx, span := otel.Tracer("jobdigest/adapter/duckduckgo").Start(ctx, "search.query")
	span.SetAttributes(
		attribute.String("search.query", q.Text),
		attribute.String("search.region", q.Region),
		attribute.Int("search.max_results", q.MaxResults),
	)
	defer span.End()

	hits, err := a.search(ctx, q)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("search.hits", len(hits)))
	return hits, nil
}

func (a *DuckDuckGoAdapter) search(ctx context.Context, q model.Query) ([]model.SearchHit, error) {
	form := url.Values{
		"q":  {q.Text},
		"kp": {safeSearchModerate},
	}
	if q.Region != "" {
		form.Set("kl", q.Region)
	}
	if df := freshnessToken(q.TimeLimit); df != "" {
		form.Set("df", df)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("duckduckgo search %q: %w", q.Text, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo search %q: %w", q.Text, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, fmt.Errorf("duckduckgo search %q: %w", q.Text, err)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo search %q: parse results: %w", q.Text, err)
	}

	var hits []model.SearchHit
	doc.Find("div.result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if q.MaxResults > 0 && len(hits) >= q.MaxResults {
			return false
		}
		if s.HasClass("result--ad") {
			return true
		}

		anchor := s.Find("a.result__a").First()
		href, _ := anchor.Attr("href")
		link := unwrapRedirect(href)
		if link == "" {
			return true
		}

		// Text() has already decoded entities; decoding again would turn a
		// literal "&lt;Go&gt;" into a tag.
		snippet := s.Find(".result__snippet").First().Text()
		source := strings.TrimSpace(s.Find(".result__url").First().Text())
		if source == "" {
			source = hostOf(link)
		}

		hits = append(hits, model.SearchHit{
			Query:  q.Text,
			Title:  collapseSpace(anchor.Text()),
			Link:   link,
			Body:   collapseSpace(snippet),
			Source: source,
		})
		return true
	})

	return hits, nil
}

// freshnessToken maps a configured time limit onto DuckDuckGo's df values.
// Unknown tokens are passed through unchanged.
func freshnessToken(timelimit string) string {
	switch strings.ToLower(strings.TrimSpace(timelimit)) {
	case "":
		return ""
	case "d", "d1", "day", "last day":
		return "d"
	case "w", "d7", "week", "last 7 days", "last week":
		return "w"
	case "m", "d30", "month", "last month":
		return "m"
	case "y", "year", "last year":
		return "y"
	default:
		return timelimit
	}
}

// unwrapRedirect returns the target of a DuckDuckGo /l/?uddg= redirect link,
// or href itself when it is a plain absolute link. Non-http(s) links yield "".
func unwrapRedirect(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}

	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if u.Path == "/l/" {
		if target := u.Query().Get("uddg"); target != "" {
			return unwrapRedirect(target)
		}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return u.String()
}

func hostOf(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
