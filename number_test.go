package vireo_test

import (
	"context"
	"encoding/json"
	"testing"

	vireo "github.com/vireo-go/vireo"
)

func TestNumberMinMessage(t *testing.T) {
	_, err := vireo.Number().Int().Min(18).Validate(context.Background(), 15)
	g := mustGroup(t, err)
	if len(g) != 1 {
		t.Fatalf("len(group) = %d, want 1", len(g))
	}
	if g[0].Message != "Value must be at least 18" {
		t.Fatalf("message = %q", g[0].Message)
	}
}

func TestNumberAcceptsDecodedForms(t *testing.T) {
	ctx := context.Background()
	schema := vireo.Number().Int()
	for _, v := range []any{15, int64(15), json.Number("15"), 15.0} {
		out, err := schema.Validate(ctx, v)
		if err != nil {
			t.Fatalf("%T rejected: %v", v, err)
		}
		switch out.(type) {
		case int64, float64:
		default:
			t.Fatalf("output not normalized: %T", out)
		}
	}
}

func TestNumberIntRejectsFraction(t *testing.T) {
	_, err := vireo.Number().Int().Validate(context.Background(), 1.5)
	g := mustGroup(t, err)
	if g[0].Message != "Value must be an integer" {
		t.Fatalf("message = %q", g[0].Message)
	}
	_, err = vireo.Number().Int().Validate(context.Background(), json.Number("1.5"))
	mustGroup(t, err)
}

func TestNumberCollectsAllViolations(t *testing.T) {
	_, err := vireo.Number().Int().Positive().MultipleOf(4).
		Validate(context.Background(), -2.5)
	g := mustGroup(t, err)
	if len(g) != 3 {
		t.Fatalf("len(group) = %d, want 3: %v", len(g), g)
	}
}

func TestNumberBounds(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name   string
		schema *vireo.NumberSchema
		good   float64
		bad    float64
	}{
		{"min", vireo.Number().Min(3), 3, 2.9},
		{"max", vireo.Number().Max(3), 3, 3.1},
		{"gt", vireo.Number().Gt(3), 3.1, 3},
		{"lt", vireo.Number().Lt(3), 2.9, 3},
		{"positive", vireo.Number().Positive(), 0.1, 0},
		{"negative", vireo.Number().Negative(), -0.1, 0},
		{"nonnegative", vireo.Number().NonNegative(), 0, -0.1},
		{"multiple", vireo.Number().MultipleOf(0.5), 1.5, 1.3},
	}
	for _, tc := range cases {
		if _, err := tc.schema.Validate(ctx, tc.good); err != nil {
			t.Fatalf("%s: %v rejected: %v", tc.name, tc.good, err)
		}
		if _, err := tc.schema.Validate(ctx, tc.bad); err == nil {
			t.Fatalf("%s: %v accepted", tc.name, tc.bad)
		}
	}
}

func TestNumberTypeMismatch(t *testing.T) {
	_, err := vireo.Number().Validate(context.Background(), "15")
	g := mustGroup(t, err)
	if g[0].Code != vireo.CodeTypeMismatch {
		t.Fatalf("code = %q", g[0].Code)
	}
	if g[0].Message != "Expected number, got string" {
		t.Fatalf("message = %q", g[0].Message)
	}
}
