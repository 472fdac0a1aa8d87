package service

import (
	"errors"
	"testing"
	"time"

	"github.com/storefront-next/internal/repository"
)

func TestReviewCreateUpdatesProductRating(t *testing.T) {
	f := newServiceFixture(t, time.Now())
	product := seedProduct(t, f.db, "kettle", "kitchen", "45.00", 3)
	reviews := NewReviewService(repository.NewReviewRepository(f.db), f.productRepo)

	if _, err := reviews.Create(CreateReviewInput{ProductID: product.ID, UserID: 1, Name: "Ann", Rating: 5, Comment: "great"}); err != nil {
		t.Fatalf("create first review failed: %v", err)
	}
	if _, err := reviews.Create(CreateReviewInput{ProductID: product.ID, UserID: 2, Name: "Bob", Rating: 2}); err != nil {
		t.Fatalf("create second review failed: %v", err)
	}

	reloaded, err := f.productRepo.GetByID(product.ID)
	if err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.NumReviews != 2 || reloaded.Rating != 3.5 {
		t.Fatalf("unexpected aggregate: rating=%v num=%d", reloaded.Rating, reloaded.NumReviews)
	}
	list, err := reviews.ListByProduct(product.ID)
	if err != nil {
		t.Fatalf("list reviews failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected two reviews, got %d", len(list))
	}
}

func TestReviewCreateRejectsDuplicateAndBadRating(t *testing.T) {
	f := newServiceFixture(t, time.Now())
	product := seedProduct(t, f.db, "kettle", "kitchen", "45.00", 3)
	reviews := NewReviewService(repository.NewReviewRepository(f.db), f.productRepo)

	if _, err := reviews.Create(CreateReviewInput{ProductID: product.ID, UserID: 1, Rating: 6}); !errors.Is(err, ErrInvalidRating) {
		t.Fatalf("expected ErrInvalidRating, got %v", err)
	}
	if _, err := reviews.Create(CreateReviewInput{ProductID: product.ID, UserID: 1, Rating: 4}); err != nil {
		t.Fatalf("create review failed: %v", err)
	}
	if _, err := reviews.Create(CreateReviewInput{ProductID: product.ID, UserID: 1, Rating: 1}); !errors.Is(err, ErrReviewExists) {
		t.Fatalf("expected ErrReviewExists, got %v", err)
	}
	if _, err := reviews.Create(CreateReviewInput{ProductID: 9999, UserID: 1, Rating: 3}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}

	reloaded, _ := f.productRepo.GetByID(product.ID)
	if reloaded.NumReviews != 1 || reloaded.Rating != 4 {
		t.Fatalf("rejected reviews must not change aggregate: rating=%v num=%d", reloaded.Rating, reloaded.NumReviews)
	}
}
