package service

import (
	"errors"
	"testing"
	"time"

	"github.com/storefront-next/internal/repository"
)

func TestWishlistToggle(t *testing.T) {
	f := newServiceFixture(t, time.Now())
	product := seedProduct(t, f.db, "scarf", "apparel", "15.00", 3)
	wishlist := NewWishlistService(repository.NewWishlistRepository(f.db), f.productRepo)

	added, err := wishlist.Toggle(5, product.ID)
	if err != nil || !added {
		t.Fatalf("first toggle should add: added=%v err=%v", added, err)
	}
	list, err := wishlist.List(5)
	if err != nil {
		t.Fatalf("list wishlist failed: %v", err)
	}
	if len(list) != 1 || list[0].ID != product.ID {
		t.Fatalf("unexpected wishlist: %+v", list)
	}

	added, err = wishlist.Toggle(5, product.ID)
	if err != nil || added {
		t.Fatalf("second toggle should remove: added=%v err=%v", added, err)
	}
	list, _ = wishlist.List(5)
	if len(list) != 0 {
		t.Fatalf("expected empty wishlist, got %d", len(list))
	}

	if _, err := wishlist.Toggle(5, 9999); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}
