package model

import "context"

// Query is one configured search term plus the run-level parameters it is
// issued with.
type Query struct {
	Text       string
	MaxResults int    // cap on hits returned for this query
	TimeLimit  string // provider freshness token, e.g. "d7"
	Region     string // provider region code, e.g. "in-en"
}

// Result is either a SearchHit or a QueryFailure. Both carry the query that
// produced them.
type Result interface {
	OriginQuery() string
}

// SearchHit is a single listing returned by the search provider. Link is the
// dedup key; two hits with the same link are the same listing.
type SearchHit struct {
	Query  string // originating query
	Title  string
	Link   string
	Body   string // snippet
	Source string // provider-supplied source label
}

func (h SearchHit) OriginQuery() string { return h.Query }

// QueryFailure records that searching for Query failed. It takes the place
// of that query's hits in the result list.
type QueryFailure struct {
	Query string
	Err   error
}

func (f QueryFailure) OriginQuery() string { return f.Query }

// FeedItem is a listing extracted from a feed-proxy response.
type FeedItem struct {
	Label string // feed label the item came from
	Title string
	Link  string
}

// MailMessage is the single message delivered per run.
type MailMessage struct {
	Subject   string
	From      string
	To        string
	PlainBody string // optional text/plain fallback
	HTMLBody  string
}

// Searcher runs one query against a search provider.
type Searcher interface {
	Search(ctx context.Context, q Query) ([]SearchHit, error)
}

// FeedFetcher fetches the items of one feed.
type FeedFetcher interface {
	Fetch(ctx context.Context, label, url string) ([]FeedItem, error)
}

// Notifier delivers a rendered digest.
type Notifier interface {
	Notify(ctx context.Context, msg MailMessage) error
}
