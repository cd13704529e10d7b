// Package digest renders run results as HTML email bodies. All interpolated
// values are escaped by html/template.
package digest

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/amishk599/jobdigest/internal/model"
)

//go:embed templates/search.html templates/feeds.html
var templateFS embed.FS

var templates = template.Must(template.New("digest").ParseFS(templateFS, "templates/*.html"))

const (
	// PlainFallback is the text/plain part sent alongside the HTML digest.
	PlainFallback = "HTML email required. If you see this, enable HTML."

	NoResults   = "No results found today based on the current queries."
	NoFeedJobs  = "No new jobs found today."
	FeedHeading = "Daily LinkedIn DevOps Job Listings"

	snippetLimit    = 200
	timestampLayout = "2006-01-02 15:04"
)

// IST is the fixed UTC+5:30 zone digest headers are stamped in.
var IST = time.FixedZone("IST", 5*60*60+30*60)

type searchRow struct {
	Query   string
	Title   string
	Link    string // empty renders the title without a link
	Snippet string
	Source  string
}

// RenderSearch renders the search digest for results at time now.
func RenderSearch(results []model.Result, now time.Time) (string, error) {
	rows := make([]searchRow, 0, len(results))
	for _, r := range results {
		rows = append(rows, toRow(r))
	}

	data := struct {
		Timestamp string
		Rows      []searchRow
		NoResults string
	}{
		Timestamp: FormatTimestamp(now),
		Rows:      rows,
		NoResults: NoResults,
	}

	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, "search.html", data); err != nil {
		return "", fmt.Errorf("render search digest: %w", err)
	}
	return b.String(), nil
}

// RenderFeeds renders the feed pipeline's list of items.
func RenderFeeds(items []model.FeedItem) (string, error) {
	data := struct {
		Heading string
		Items   []model.FeedItem
		NoJobs  string
	}{
		Heading: FeedHeading,
		Items:   items,
		NoJobs:  NoFeedJobs,
	}

	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, "feeds.html", data); err != nil {
		return "", fmt.Errorf("render feed list: %w", err)
	}
	return b.String(), nil
}

// FormatTimestamp formats t as "YYYY-MM-DD HH:MM" in IST.
func FormatTimestamp(t time.Time) string {
	return t.In(IST).Format(timestampLayout)
}

// Truncate returns the first n characters of s followed by "..." when s is
// longer than n characters.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func toRow(r model.Result) searchRow {
	switch v := r.(type) {
	case model.SearchHit:
		title := strings.TrimSpace(v.Title)
		if title == "" {
			title = "Untitled"
		}
		link := v.Link
		if link == "" {
			link = "#"
		}
		return searchRow{
			Query:   strings.TrimSpace(v.Query),
			Title:   title,
			Link:    link,
			Snippet: Truncate(strings.TrimSpace(v.Body), snippetLimit),
			Source:  strings.TrimSpace(v.Source),
		}
	case model.QueryFailure:
		msg := ""
		if v.Err != nil {
			msg = v.Err.Error()
		}
		return searchRow{
			Query:   strings.TrimSpace(v.Query),
			Title:   "[ERROR searching: " + v.Query + "]",
			Snippet: Truncate(msg, snippetLimit),
		}
	default:
		return searchRow{Query: r.OriginQuery(), Title: "Untitled"}
	}
}
