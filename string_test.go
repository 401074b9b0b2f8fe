package vireo_test

import (
	"context"
	"testing"

	vireo "github.com/vireo-go/vireo"
)

func TestStringMinMessage(t *testing.T) {
	_, err := vireo.String().Min(3).Validate(context.Background(), "jo")
	g := mustGroup(t, err)
	if len(g) != 1 {
		t.Fatalf("len(group) = %d, want 1", len(g))
	}
	if g[0].Code != vireo.CodeConstraintViolation {
		t.Fatalf("code = %q", g[0].Code)
	}
	if g[0].Message != "String must be at least 3 characters" {
		t.Fatalf("message = %q", g[0].Message)
	}
}

func TestStringTypeMismatch(t *testing.T) {
	_, err := vireo.String().Validate(context.Background(), 42)
	g := mustGroup(t, err)
	if g[0].Code != vireo.CodeTypeMismatch {
		t.Fatalf("code = %q, want type_mismatch", g[0].Code)
	}
	if g[0].Message != "Expected string, got number" {
		t.Fatalf("message = %q", g[0].Message)
	}
}

func TestStringCollectsAllViolations(t *testing.T) {
	// Min, pattern and email all fail on the same input; all three must be
	// reported, not just the first.
	_, err := vireo.String().Min(5).Pattern(`^[a-z]+$`).Email().
		Validate(context.Background(), "A1")
	g := mustGroup(t, err)
	if len(g) != 3 {
		t.Fatalf("len(group) = %d, want 3: %v", len(g), g)
	}
}

func TestStringRuneLengths(t *testing.T) {
	if _, err := vireo.String().Length(3).Validate(context.Background(), "日本語"); err != nil {
		t.Fatalf("rune-counted length failed: %v", err)
	}
}

func TestStringFormats(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name   string
		schema *vireo.StringSchema
		good   string
		bad    string
	}{
		{"email", vireo.String().Email(), "a@example.com", "not-an-email"},
		{"url", vireo.String().URL(), "https://example.com/x", "example com"},
		{"uuid", vireo.String().UUID(), "123e4567-e89b-12d3-a456-426614174000", "123"},
		{"date", vireo.String().Date(), "2026-08-23", "23/08/2026"},
		{"datetime", vireo.String().DateTime(), "2026-08-23T10:00:00Z", "2026-08-23 10:00"},
	}
	for _, tc := range cases {
		if _, err := tc.schema.Validate(ctx, tc.good); err != nil {
			t.Fatalf("%s: %q rejected: %v", tc.name, tc.good, err)
		}
		if _, err := tc.schema.Validate(ctx, tc.bad); err == nil {
			t.Fatalf("%s: %q accepted", tc.name, tc.bad)
		}
	}
}

func TestStringTransformsRunInOrderAfterChecks(t *testing.T) {
	// Constraints see the raw value; Min(4) counts the surrounding spaces.
	out, err := vireo.String().Min(4).Trim().Lowercase().
		Validate(context.Background(), " AB ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "ab" {
		t.Fatalf("out = %q, want %q", out, "ab")
	}
}

func TestStringCustomMessageKeepsCode(t *testing.T) {
	_, err := vireo.String().Min(3).Message("pick a longer name").
		Validate(context.Background(), "jo")
	g := mustGroup(t, err)
	if g[0].Message != "pick a longer name" {
		t.Fatalf("message = %q", g[0].Message)
	}
	if g[0].Code != vireo.CodeConstraintViolation {
		t.Fatalf("custom message changed code: %q", g[0].Code)
	}
}

func TestStringInvalidPatternPanicsAtFirstUse(t *testing.T) {
	schema := vireo.String().Pattern(`[`)
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic")
		}
		if _, ok := r.(*vireo.SchemaError); !ok {
			t.Fatalf("panic value = %T, want *SchemaError", r)
		}
	}()
	_, _ = schema.Validate(context.Background(), "x")
}

func TestStringCopyOnWrite(t *testing.T) {
	base := vireo.String().Min(2)
	capped := base.Max(4)
	if _, err := base.Validate(context.Background(), "abcdef"); err != nil {
		t.Fatalf("base gained Max from derived schema: %v", err)
	}
	if _, err := capped.Validate(context.Background(), "abcdef"); err == nil {
		t.Fatalf("derived schema missing Max")
	}
}
