package service

import (
	"errors"
	"testing"
	"time"
)

func TestCartAddItemMergesSameVariant(t *testing.T) {
	f := newServiceFixture(t, time.Now())
	product := seedProduct(t, f.db, "tee", "apparel", "20.00", 5)

	if _, err := f.carts.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 2, Variant: map[string]string{"size": "M"}}); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	view, err := f.carts.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 1, Variant: map[string]string{"size": "M"}})
	if err != nil {
		t.Fatalf("add same variant failed: %v", err)
	}
	if len(view.Items) != 1 {
		t.Fatalf("expected merged line, got %d lines", len(view.Items))
	}
	if view.Items[0].Quantity != 3 || view.ItemCount != 3 {
		t.Fatalf("unexpected quantity: line=%d count=%d", view.Items[0].Quantity, view.ItemCount)
	}
	moneyEquals(t, "subtotal", view.Subtotal, "60")
	moneyEquals(t, "line total", view.Items[0].LineTotal, "60")
	if view.Items[0].Product.Slug != "tee" {
		t.Fatalf("expected product summary, got %+v", view.Items[0].Product)
	}
}

func TestCartAddItemKeepsVariantsApart(t *testing.T) {
	f := newServiceFixture(t, time.Now())
	product := seedProduct(t, f.db, "tee", "apparel", "20.00", 10)

	if _, err := f.carts.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 1, Variant: map[string]string{"size": "M"}}); err != nil {
		t.Fatalf("add M failed: %v", err)
	}
	view, err := f.carts.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 1, Variant: map[string]string{"size": "L"}})
	if err != nil {
		t.Fatalf("add L failed: %v", err)
	}
	if len(view.Items) != 2 {
		t.Fatalf("expected two lines, got %d", len(view.Items))
	}
}

func TestCartAddItemRejectsOverStock(t *testing.T) {
	f := newServiceFixture(t, time.Now())
	product := seedProduct(t, f.db, "mug", "kitchen", "8.50", 2)

	if _, err := f.carts.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	_, err := f.carts.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 1})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	view, err := f.carts.Get(1)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if view.Items[0].Quantity != 2 {
		t.Fatalf("failed add must not change quantity, got %d", view.Items[0].Quantity)
	}
}

func TestCartAddItemValidation(t *testing.T) {
	f := newServiceFixture(t, time.Now())
	product := seedProduct(t, f.db, "mug", "kitchen", "8.50", 2)

	if _, err := f.carts.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 0}); !errors.Is(err, ErrCartInvalidQuantity) {
		t.Fatalf("expected ErrCartInvalidQuantity, got %v", err)
	}
	if _, err := f.carts.AddItem(AddCartItemInput{UserID: 1, ProductID: 9999, Quantity: 1}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if err := f.db.Model(product).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate product failed: %v", err)
	}
	if _, err := f.carts.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 1}); !errors.Is(err, ErrProductNotAvailable) {
		t.Fatalf("expected ErrProductNotAvailable, got %v", err)
	}
}

func TestCartUpdateAndRemove(t *testing.T) {
	f := newServiceFixture(t, time.Now())
	product := seedProduct(t, f.db, "lamp", "home", "30.00", 4)

	view, err := f.carts.AddItem(AddCartItemInput{UserID: 7, ProductID: product.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	lineID := view.Items[0].ID

	view, err = f.carts.UpdateQuantity(7, lineID, 4)
	if err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}
	if view.Items[0].Quantity != 4 {
		t.Fatalf("unexpected quantity: %d", view.Items[0].Quantity)
	}
	if _, err := f.carts.UpdateQuantity(7, lineID, 5); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if _, err := f.carts.UpdateQuantity(8, lineID, 1); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("other user must not see line, got %v", err)
	}
	if _, err := f.carts.RemoveItem(8, lineID); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("other user must not remove line, got %v", err)
	}

	view, err = f.carts.RemoveItem(7, lineID)
	if err != nil {
		t.Fatalf("remove item failed: %v", err)
	}
	if len(view.Items) != 0 || !view.Subtotal.IsZero() {
		t.Fatalf("expected empty cart, got %+v", view)
	}
}
