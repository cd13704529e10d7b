package digest

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/amishk599/jobdigest/internal/model"
)

var fixedNow = time.Date(2026, 3, 2, 3, 45, 0, 0, time.UTC) // 09:15 IST

func TestRenderSearch_Empty(t *testing.T) {
	html, err := RenderSearch(nil, fixedNow)
	if err != nil {
		t.Fatalf("RenderSearch: %v", err)
	}
	if !strings.Contains(html, NoResults) {
		t.Errorf("expected no-results notice, got:\n%s", html)
	}
	if strings.Contains(html, "<table") {
		t.Error("empty digest should not contain a table")
	}
	if !strings.Contains(html, "2026-03-02 09:15 IST") {
		t.Errorf("expected IST timestamp in header, got:\n%s", html)
	}
	if !strings.Contains(html, "queries.yaml") {
		t.Error("expected footer tip")
	}
}

func TestRenderSearch_OneRowPerResult(t *testing.T) {
	results := []model.Result{
		model.SearchHit{Query: "backend intern", Title: "Intern A", Link: "https://x/1", Body: "body", Source: "lever"},
		model.SearchHit{Query: "backend intern", Title: "Intern B", Link: "https://x/2"},
	}

	html, err := RenderSearch(results, fixedNow)
	if err != nil {
		t.Fatalf("RenderSearch: %v", err)
	}
	if got := strings.Count(html, "<tr>"); got != 2 {
		t.Errorf("body rows = %d, want 2", got)
	}
	if !strings.Contains(html, `<a href="https://x/1">Intern A</a>`) {
		t.Errorf("expected hyperlink for first hit, got:\n%s", html)
	}
	if !strings.Contains(html, "lever") {
		t.Error("expected source label")
	}
	if strings.Contains(html, NoResults) {
		t.Error("non-empty digest should not contain the no-results notice")
	}
}

func TestRenderSearch_Placeholders(t *testing.T) {
	html, err := RenderSearch([]model.Result{model.SearchHit{Query: "q"}}, fixedNow)
	if err != nil {
		t.Fatalf("RenderSearch: %v", err)
	}
	if !strings.Contains(html, `<a href="#">Untitled</a>`) {
		t.Errorf("expected Untitled placeholder with # link, got:\n%s", html)
	}
}

func TestRenderSearch_QueryFailureRow(t *testing.T) {
	results := []model.Result{
		model.QueryFailure{Query: "golang jobs", Err: errors.New("connection reset")},
	}

	html, err := RenderSearch(results, fixedNow)
	if err != nil {
		t.Fatalf("RenderSearch: %v", err)
	}
	if !strings.Contains(html, "[ERROR searching: golang jobs]") {
		t.Errorf("expected error marker, got:\n%s", html)
	}
	if !strings.Contains(html, "connection reset") {
		t.Error("expected error text as snippet")
	}
}

func TestRenderSearch_EscapesInterpolatedText(t *testing.T) {
	results := []model.Result{
		model.SearchHit{
			Query:  "<i>q</i>",
			Title:  "<script>alert(1)</script>",
			Link:   "javascript:alert(2)",
			Body:   `"><img src=x onerror=alert(3)>`,
			Source: "<b>src</b>",
		},
	}

	html, err := RenderSearch(results, fixedNow)
	if err != nil {
		t.Fatalf("RenderSearch: %v", err)
	}
	for _, raw := range []string{"<script>", "<img", "<i>q</i>", "<b>src</b>", `href="javascript:`} {
		if strings.Contains(html, raw) {
			t.Errorf("digest contains unescaped %q", raw)
		}
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Error("expected escaped title")
	}
}

func TestRenderSearch_SnippetTruncation(t *testing.T) {
	exact := strings.Repeat("a", 200)
	long := strings.Repeat("b", 201)

	html, err := RenderSearch([]model.Result{
		model.SearchHit{Query: "q", Link: "https://x/1", Body: exact},
		model.SearchHit{Query: "q", Link: "https://x/2", Body: long},
	}, fixedNow)
	if err != nil {
		t.Fatalf("RenderSearch: %v", err)
	}
	if !strings.Contains(html, "<small>"+exact+"</small>") {
		t.Error("200-char body should render unmodified")
	}
	if !strings.Contains(html, "<small>"+strings.Repeat("b", 200)+"...</small>") {
		t.Error("201-char body should be cut to 200 chars plus ellipsis")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"", 5, ""},
		{"short", 5, "short"},
		{"toolong", 3, "too..."},
		{"héllo wörld", 5, "héllo..."},
	}
	for _, tc := range tests {
		if got := Truncate(tc.in, tc.n); got != tc.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tc.in, tc.n, got, tc.want)
		}
	}
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2026, 12, 31, 20, 0, 0, 0, time.UTC)
	if got := FormatTimestamp(ts); got != "2027-01-01 01:30" {
		t.Errorf("FormatTimestamp = %q, want 2027-01-01 01:30", got)
	}
}

func TestRenderFeeds(t *testing.T) {
	items := []model.FeedItem{
		{Label: "DevOps", Title: "SRE I", Link: "https://x/1"},
		{Label: "Cloud", Title: "Cloud <Intern>", Link: "https://x/2"},
	}

	html, err := RenderFeeds(items)
	if err != nil {
		t.Fatalf("RenderFeeds: %v", err)
	}
	if got := strings.Count(html, "<li>"); got != 2 {
		t.Errorf("<li> count = %d, want 2", got)
	}
	if strings.Index(html, "SRE I") > strings.Index(html, "Cloud &lt;Intern&gt;") {
		t.Error("items out of order or title not escaped")
	}
	if !strings.Contains(html, `<b>DevOps</b>: <a href="https://x/1">SRE I</a>`) {
		t.Errorf("unexpected item markup:\n%s", html)
	}
}

func TestRenderFeeds_Empty(t *testing.T) {
	html, err := RenderFeeds(nil)
	if err != nil {
		t.Fatalf("RenderFeeds: %v", err)
	}
	if html != NoFeedJobs {
		t.Errorf("RenderFeeds(nil) = %q, want %q", html, NoFeedJobs)
	}
}
