package catalog

import (
	"net/url"
	"testing"
)

func floatPtrEqual(p *float64, want float64) bool {
	return p != nil && *p == want
}

func TestParseQueryDefaults(t *testing.T) {
	q := ParseQuery(url.Values{})
	if q.Page != 1 || q.Limit != 12 {
		t.Fatalf("unexpected defaults: page=%d limit=%d", q.Page, q.Limit)
	}
	if q.Sort != SortNewest {
		t.Fatalf("unexpected default sort: %s", q.Sort)
	}
	if q.Keyword != nil || q.Category != nil || q.PriceMin != nil || q.PriceMax != nil || q.Rating != nil {
		t.Fatalf("expected all optional fields absent: %+v", q)
	}
}

func TestParseQueryPriceRange(t *testing.T) {
	cases := []struct {
		raw     string
		wantMin *float64
		wantMax *float64
	}{
		{raw: "10-50", wantMin: ptr(10), wantMax: ptr(50)},
		{raw: "0.5-99.99", wantMin: ptr(0.5), wantMax: ptr(99.99)},
		{raw: "25", wantMin: ptr(25), wantMax: ptr(UnboundedPrice)},
		{raw: "-40", wantMin: nil, wantMax: ptr(40)},
		{raw: "15-", wantMin: ptr(15), wantMax: nil},
		{raw: "abc-40", wantMin: nil, wantMax: ptr(40)},
		{raw: "abc", wantMin: nil, wantMax: nil},
	}
	for _, tc := range cases {
		q := ParseQuery(url.Values{"priceRange": {tc.raw}})
		if !sameFloat(q.PriceMin, tc.wantMin) || !sameFloat(q.PriceMax, tc.wantMax) {
			t.Fatalf("priceRange=%q got min=%v max=%v", tc.raw, deref(q.PriceMin), deref(q.PriceMax))
		}
	}
}

func TestParseQueryExplicitBoundsAndPrecedence(t *testing.T) {
	q := ParseQuery(url.Values{"priceMin": {"5"}, "priceMax": {"x"}})
	if !floatPtrEqual(q.PriceMin, 5) || q.PriceMax != nil {
		t.Fatalf("unexpected explicit bounds: %v %v", deref(q.PriceMin), deref(q.PriceMax))
	}

	q = ParseQuery(url.Values{"priceRange": {"10-20"}, "priceMin": {"1"}, "priceMax": {"2"}})
	if !floatPtrEqual(q.PriceMin, 10) || !floatPtrEqual(q.PriceMax, 20) {
		t.Fatalf("priceRange should win: %v %v", deref(q.PriceMin), deref(q.PriceMax))
	}
}

// 非数值参数被静默丢弃而不是返回 400，分页回落到默认值。
func TestParseQueryDropsMalformedNumbers(t *testing.T) {
	q := ParseQuery(url.Values{
		"page":   {"two"},
		"limit":  {"many"},
		"rating": {"good"},
	})
	if q.Page != 1 || q.Limit != 12 {
		t.Fatalf("expected defaults, got page=%d limit=%d", q.Page, q.Limit)
	}
	if q.Rating != nil {
		t.Fatalf("expected rating absent, got %v", *q.Rating)
	}
}

func TestParseQueryFloorsAndCapsPagination(t *testing.T) {
	q := ParseQuery(url.Values{"page": {"0"}, "limit": {"-3"}})
	if q.Page != 1 || q.Limit != 1 {
		t.Fatalf("expected floor at 1, got page=%d limit=%d", q.Page, q.Limit)
	}
	q = ParseQuery(url.Values{"page": {"3"}, "limit": {"1000"}})
	if q.Page != 3 || q.Limit != 100 {
		t.Fatalf("unexpected page=%d limit=%d", q.Page, q.Limit)
	}
	if q.Offset() != 200 {
		t.Fatalf("unexpected offset: %d", q.Offset())
	}
}

func TestParseQueryKeywordAlias(t *testing.T) {
	q := ParseQuery(url.Values{"search": {" phone "}})
	if q.Keyword == nil || *q.Keyword != "phone" {
		t.Fatalf("search alias not applied: %v", q.Keyword)
	}
	q = ParseQuery(url.Values{"search": {"phone"}, "keyword": {"laptop"}})
	if q.Keyword == nil || *q.Keyword != "laptop" {
		t.Fatalf("keyword should win over search: %v", q.Keyword)
	}
	q = ParseQuery(url.Values{"keyword": {"   "}, "category": {""}})
	if q.Keyword != nil || q.Category != nil {
		t.Fatalf("blank strings should be absent")
	}
}

func TestParseSort(t *testing.T) {
	cases := map[string]SortKey{
		"price_asc":   SortPriceAsc,
		"PRICE_DESC":  SortPriceDesc,
		"rating_desc": SortRatingDesc,
		"popular":     SortPopular,
		"newest":      SortNewest,
		"":            SortNewest,
		"cheapest":    SortNewest,
	}
	for raw, want := range cases {
		if got := ParseSort(raw); got != want {
			t.Fatalf("ParseSort(%q)=%s want %s", raw, got, want)
		}
	}
}

func ptr(v float64) *float64 { return &v }

func sameFloat(got, want *float64) bool {
	if got == nil || want == nil {
		return got == nil && want == nil
	}
	return *got == *want
}

func deref(p *float64) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
