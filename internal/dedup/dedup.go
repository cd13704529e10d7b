// Package dedup collapses repeated listings within a single run.
package dedup

import "github.com/amishk599/jobdigest/internal/model"

// ByKey returns items with every repeat of a non-empty key removed. The first
// item for each key is kept and order is preserved. Items whose key is empty
// are always kept. The input slice is not modified.
func ByKey[T any](items []T, key func(T) string) []T {
	seen := make(map[string]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		k := key(item)
		if k == "" {
			out = append(out, item)
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, item)
	}
	return out
}

// Results deduplicates search results by hit link. Query failures carry no
// link and are always kept.
func Results(results []model.Result) []model.Result {
	return ByKey(results, resultKey)
}

func resultKey(r model.Result) string {
	if hit, ok := r.(model.SearchHit); ok {
		return hit.Link
	}
	return ""
}
