// Package preview renders search results for the terminal, so queries can be
// tuned without sending mail.
package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/jobdigest/internal/digest"
	"github.com/amishk599/jobdigest/internal/model"
)

const snippetWidth = 100

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.Color("39")) // bright blue

	titleStyle = lipgloss.NewStyle().
			Bold(true)

	linkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33")).
			Underline(true)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")) // red

	entryStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	summaryStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))
)

// Render returns a styled listing of results in digest order, followed by a
// one-line summary.
func Render(results []model.Result) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Entry-level SWE roles (preview)"))
	b.WriteString("\n\n")

	if len(results) == 0 {
		b.WriteString(entryStyle.Render(subtitleStyle.Render(digest.NoResults)))
		b.WriteString("\n\n")
	}

	var hits, failures int
	for i, r := range results {
		var entry string
		switch v := r.(type) {
		case model.SearchHit:
			hits++
			entry = renderHit(i+1, v)
		case model.QueryFailure:
			failures++
			entry = renderFailure(i+1, v)
		}
		b.WriteString(entryStyle.Render(entry))
		b.WriteString("\n\n")
	}

	b.WriteString(summaryStyle.Render(fmt.Sprintf("%d unique results, %d failed queries", hits, failures)))
	b.WriteString("\n")
	return b.String()
}

func renderHit(n int, h model.SearchHit) string {
	title := h.Title
	if title == "" {
		title = "Untitled"
	}

	lines := []string{
		titleStyle.Render(fmt.Sprintf("%d. %s", n, title)),
		linkStyle.Render(h.Link),
	}
	meta := "query: " + h.Query
	if h.Source != "" {
		meta = h.Source + " · " + meta
	}
	lines = append(lines, subtitleStyle.Render(meta))
	if h.Body != "" {
		lines = append(lines, digest.Truncate(h.Body, snippetWidth))
	}
	return strings.Join(lines, "\n")
}

func renderFailure(n int, f model.QueryFailure) string {
	msg := ""
	if f.Err != nil {
		msg = f.Err.Error()
	}
	return strings.Join([]string{
		errorStyle.Render(fmt.Sprintf("%d. [ERROR searching: %s]", n, f.Query)),
		subtitleStyle.Render(msg),
	}, "\n")
}
