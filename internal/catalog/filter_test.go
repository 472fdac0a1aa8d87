package catalog

import (
	"net/url"
	"reflect"
	"testing"
)

func TestBuildFilterCarriesPredicates(t *testing.T) {
	q := ParseQuery(url.Values{
		"keyword":    {"Phone"},
		"category":   {"electronics"},
		"priceRange": {"10-50"},
		"rating":     {"4"},
		"sort":       {"popular"},
	})
	f := BuildFilter(q)
	if f.Keyword != "Phone" || f.Category != "electronics" {
		t.Fatalf("unexpected text predicates: %+v", f)
	}
	if *f.PriceMin != 10 || *f.PriceMax != 50 || *f.MinRating != 4 {
		t.Fatalf("unexpected numeric predicates: %+v", f)
	}
	if !f.HasKeyword() {
		t.Fatalf("expected keyword predicate")
	}
}

func TestOrderClauses(t *testing.T) {
	cases := map[SortKey][]string{
		SortPriceAsc:   {"price ASC", "id ASC"},
		SortPriceDesc:  {"price DESC", "id DESC"},
		SortRatingDesc: {"rating DESC", "id DESC"},
		SortNewest:     {"created_at DESC", "id DESC"},
		SortPopular:    {"num_reviews DESC", "rating DESC", "id DESC"},
		"":             {"created_at DESC", "id DESC"},
	}
	for key, want := range cases {
		got := Filter{Sort: key}.OrderClauses()
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("sort %q: got %v want %v", key, got, want)
		}
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 12, 1},
		{1, 12, 1},
		{12, 12, 1},
		{13, 12, 2},
		{5, 2, 3},
		{100, 1, 100},
		{7, 0, 7},
	}
	for _, tc := range cases {
		if got := TotalPages(tc.total, tc.limit); got != tc.want {
			t.Fatalf("TotalPages(%d,%d)=%d want %d", tc.total, tc.limit, got, tc.want)
		}
	}
}
