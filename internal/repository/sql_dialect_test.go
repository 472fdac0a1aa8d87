package repository

import (
	"strings"
	"testing"
)

func TestBuildLikeConditionByDialect(t *testing.T) {
	condition, argCount := buildLikeConditionByDialect("sqlite", []string{"name", " ", "brand"})
	if argCount != 2 {
		t.Fatalf("arg count want 2 got %d", argCount)
	}
	if condition != "(name LIKE ? OR brand LIKE ?)" {
		t.Fatalf("unexpected sqlite condition: %s", condition)
	}

	condition, _ = buildLikeConditionByDialect("postgres", []string{"name"})
	if condition != "(name ILIKE ?)" {
		t.Fatalf("unexpected postgres condition: %s", condition)
	}

	if condition, argCount := buildLikeConditionByDialect("sqlite", nil); condition != "" || argCount != 0 {
		t.Fatalf("expected empty condition, got %q/%d", condition, argCount)
	}
}

func TestFullTextConditionByDialect(t *testing.T) {
	if got := fullTextConditionByDialect("sqlite", productSearchColumns); got != "" {
		t.Fatalf("sqlite should not use full text, got %s", got)
	}
	got := fullTextConditionByDialect("postgres", productSearchColumns)
	if !strings.Contains(got, "to_tsvector('simple', coalesce(name, '') || ' ' || coalesce(description, '') || ' ' || coalesce(brand, ''))") {
		t.Fatalf("unexpected tsvector expr: %s", got)
	}
	if !strings.HasSuffix(got, "plainto_tsquery('simple', ?)") {
		t.Fatalf("unexpected tsquery expr: %s", got)
	}
}

func TestRepeatLikeArgs(t *testing.T) {
	args := repeatLikeArgs(containsPattern(" phone "), 3)
	if len(args) != 3 {
		t.Fatalf("args len want 3 got %d", len(args))
	}
	for idx, arg := range args {
		if arg != "%phone%" {
			t.Fatalf("args[%d] want %%phone%% got %v", idx, arg)
		}
	}
}
