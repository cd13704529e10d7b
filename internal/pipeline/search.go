package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/amishk599/jobdigest/internal/dedup"
	"github.com/amishk599/jobdigest/internal/digest"
	"github.com/amishk599/jobdigest/internal/model"
)

// SearchSubject is the subject line of the search digest.
const SearchSubject = "Daily: Entry-level SWE roles (auto-search)"

// Summary describes what one search run delivered.
type Summary struct {
	Hits     int // unique listings in the digest
	Failures int // queries that failed and appear as error rows
}

// SearchPipeline owns one search run:
// search each query → dedup → render → notify.
type SearchPipeline struct {
	queries  []model.Query
	searcher model.Searcher
	notifier model.Notifier
	from     string
	to       string
	now      func() time.Time
	logger   *slog.Logger
}

// NewSearchPipeline creates a pipeline wired with all its dependencies. The
// digest is sent from from to to.
func NewSearchPipeline(
	queries []model.Query,
	searcher model.Searcher,
	notifier model.Notifier,
	from, to string,
	logger *slog.Logger,
) *SearchPipeline {
	return &SearchPipeline{
		queries:  queries,
		searcher: searcher,
		notifier: notifier,
		from:     from,
		to:       to,
		now:      time.Now,
		logger:   logger,
	}
}

// Run executes one pass of the pipeline. Per-query failures are carried into
// the digest; only cancellation, rendering and delivery errors are returned.
func (p *SearchPipeline) Run(ctx context.Context) (summary Summary, err error) {
	ctx, span := otel.Tracer("jobdigest/pipeline").Start(ctx, "search.run")
	span.SetAttributes(attribute.Int("search.queries", len(p.queries)))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	results, err := p.Collect(ctx)
	if err != nil {
		return Summary{}, err
	}

	unique := dedup.Results(results)
	for _, r := range unique {
		if _, failed := r.(model.QueryFailure); failed {
			summary.Failures++
		} else {
			summary.Hits++
		}
	}

	body, err := digest.RenderSearch(unique, p.now())
	if err != nil {
		return Summary{}, err
	}

	msg := model.MailMessage{
		Subject:   SearchSubject,
		From:      p.from,
		To:        p.to,
		PlainBody: digest.PlainFallback,
		HTMLBody:  body,
	}
	if err := p.notifier.Notify(ctx, msg); err != nil {
		return Summary{}, fmt.Errorf("delivering digest: %w", err)
	}

	p.logger.Info("search run complete",
		"queries", len(p.queries),
		"raw", len(results),
		"unique", summary.Hits,
		"failed_queries", summary.Failures,
	)
	span.SetAttributes(attribute.Int("search.unique", summary.Hits))
	return summary, nil
}

// Collect runs every query in order, one attempt each. A failed query yields
// a single model.QueryFailure in place of its hits. Collect stops early only
// when ctx is done.
func (p *SearchPipeline) Collect(ctx context.Context) ([]model.Result, error) {
	var results []model.Result
	for _, q := range p.queries {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("search cancelled: %w", err)
		}

		hits, err := p.searcher.Search(ctx, q)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("search cancelled: %w", ctx.Err())
			}
			p.logger.Warn("query failed", "query", q.Text, "error", err)
			results = append(results, model.QueryFailure{Query: q.Text, Err: err})
			continue
		}

		p.logger.Debug("query complete", "query", q.Text, "hits", len(hits))
		for _, h := range hits {
			h.Query = q.Text
			results = append(results, h)
		}
	}
	return results, nil
}
