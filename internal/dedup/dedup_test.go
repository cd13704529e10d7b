package dedup

import (
	"errors"
	"reflect"
	"testing"

	"github.com/amishk599/jobdigest/internal/model"
)

func hit(query, title, link string) model.SearchHit {
	return model.SearchHit{Query: query, Title: title, Link: link}
}

func TestResults_FirstOccurrenceWins(t *testing.T) {
	in := []model.Result{
		hit("q1", "first", "https://x/1"),
		hit("q1", "other", "https://x/2"),
		hit("q2", "second copy", "https://x/1"),
		hit("q2", "third", "https://x/3"),
		hit("q2", "other copy", "https://x/2"),
	}

	got := Results(in)
	want := []model.Result{
		hit("q1", "first", "https://x/1"),
		hit("q1", "other", "https://x/2"),
		hit("q2", "third", "https://x/3"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Results =\n %+v\nwant\n %+v", got, want)
	}
}

func TestResults_EmptyLinksAlwaysKept(t *testing.T) {
	failure := model.QueryFailure{Query: "q3", Err: errors.New("timeout")}
	in := []model.Result{
		hit("q1", "no link", ""),
		hit("q1", "no link", ""),
		failure,
		failure,
		hit("q2", "linked", "https://x/1"),
	}

	got := Results(in)
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5 (empty links and failures kept)", len(got))
	}
}

func TestResults_Idempotent(t *testing.T) {
	in := []model.Result{
		hit("q1", "a", "https://x/1"),
		hit("q1", "b", "https://x/1"),
		hit("q1", "c", ""),
		model.QueryFailure{Query: "q2", Err: errors.New("boom")},
		hit("q2", "d", "https://x/2"),
	}

	once := Results(in)
	twice := Results(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("dedup not idempotent:\n once  %+v\n twice %+v", once, twice)
	}
}

func TestResults_Empty(t *testing.T) {
	if got := Results(nil); len(got) != 0 {
		t.Errorf("Results(nil) = %v, want empty", got)
	}
}

func TestByKey_DoesNotMutateInput(t *testing.T) {
	in := []string{"a", "b", "a", "c"}
	got := ByKey(in, func(s string) string { return s })

	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("ByKey = %v", got)
	}
	if !reflect.DeepEqual(in, []string{"a", "b", "a", "c"}) {
		t.Errorf("input mutated: %v", in)
	}
}

func TestByKey_AtMostOnePerKey(t *testing.T) {
	in := []model.SearchHit{
		hit("q", "1", "k1"), hit("q", "2", "k2"), hit("q", "3", "k1"),
		hit("q", "4", "k3"), hit("q", "5", "k2"), hit("q", "6", "k1"),
	}
	got := ByKey(in, func(h model.SearchHit) string { return h.Link })

	counts := map[string]int{}
	for _, h := range got {
		counts[h.Link]++
	}
	for k, n := range counts {
		if n != 1 {
			t.Errorf("key %s appears %d times", k, n)
		}
	}
	if got[0].Title != "1" || got[1].Title != "2" || got[2].Title != "4" {
		t.Errorf("unexpected order/retention: %+v", got)
	}
}
