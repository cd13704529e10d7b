package preview

import (
	"errors"
	"strings"
	"testing"

	"github.com/amishk599/jobdigest/internal/digest"
	"github.com/amishk599/jobdigest/internal/model"
)

func TestRender_HitsAndFailures(t *testing.T) {
	out := Render([]model.Result{
		model.SearchHit{Query: "backend intern", Title: "Backend Intern", Link: "https://x/1", Source: "lever.co", Body: "Ship Go services."},
		model.QueryFailure{Query: "golang", Err: errors.New("HTTP 202")},
	})

	for _, want := range []string{
		"1. Backend Intern",
		"https://x/1",
		"lever.co",
		"query: backend intern",
		"Ship Go services.",
		"2. [ERROR searching: golang]",
		"HTTP 202",
		"1 unique results, 1 failed queries",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRender_Empty(t *testing.T) {
	out := Render(nil)
	if !strings.Contains(out, digest.NoResults) {
		t.Errorf("expected no-results notice:\n%s", out)
	}
	if !strings.Contains(out, "0 unique results, 0 failed queries") {
		t.Errorf("expected zero summary:\n%s", out)
	}
}

func TestRender_UntitledAndLongSnippet(t *testing.T) {
	out := Render([]model.Result{
		model.SearchHit{Query: "q", Link: "https://x/2", Body: strings.Repeat("a", snippetWidth+20)},
	})
	if !strings.Contains(out, "1. Untitled") {
		t.Errorf("expected Untitled placeholder:\n%s", out)
	}
	if !strings.Contains(out, strings.Repeat("a", snippetWidth)+"...") {
		t.Error("expected snippet cut to preview width")
	}
}
