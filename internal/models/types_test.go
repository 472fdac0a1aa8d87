package models

import "testing"

func TestAttributesKeyIgnoresFieldOrder(t *testing.T) {
	a := Attributes{"size": "M", "color": "red"}
	b := Attributes{"color": "red", "size": "M"}
	if a.Key() != b.Key() {
		t.Fatalf("expected equal keys, got %q and %q", a.Key(), b.Key())
	}
	if a.Key() != "color=red&size=M" {
		t.Fatalf("unexpected key: %q", a.Key())
	}
	if (Attributes{}).Key() != "" || Attributes(nil).Key() != "" {
		t.Fatalf("empty attributes should have empty key")
	}
}

func TestDealCovers(t *testing.T) {
	deal := &Deal{ProductIDs: UintArray{3}, Categories: StringArray{"audio"}}
	cases := []struct {
		product Product
		want    bool
	}{
		{Product{ID: 3, Category: "phones"}, true},
		{Product{ID: 4, Category: "audio"}, true},
		{Product{ID: 5, Category: "phones"}, false},
	}
	for _, tc := range cases {
		if got := deal.Covers(&tc.product); got != tc.want {
			t.Fatalf("covers(%d,%s)=%v want %v", tc.product.ID, tc.product.Category, got, tc.want)
		}
	}
}
