package vireo_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	vireo "github.com/vireo-go/vireo"
)

func mustGroup(t *testing.T, err error) vireo.ValidationErrorGroup {
	t.Helper()
	if err == nil {
		t.Fatalf("expected validation error, got nil")
	}
	g, ok := vireo.AsGroup(err)
	if !ok {
		t.Fatalf("expected ValidationErrorGroup, got %T: %v", err, err)
	}
	return g
}

func TestPathString(t *testing.T) {
	if got := (vireo.Path{}).String(); got != "/" {
		t.Fatalf("root path = %q, want %q", got, "/")
	}
	p := vireo.Path{}.Field("items").Index(2).Field("price")
	if got := p.String(); got != "/items/2/price" {
		t.Fatalf("path = %q, want %q", got, "/items/2/price")
	}
}

func TestPathExtendDoesNotAliasSiblings(t *testing.T) {
	base := vireo.Path{}.Field("a")
	p1 := base.Index(1)
	p2 := base.Index(2)
	if p1.String() != "/a/1" || p2.String() != "/a/2" {
		t.Fatalf("sibling paths alias: %q vs %q", p1, p2)
	}
}

func TestGroupErrorSummary(t *testing.T) {
	schema := vireo.Object().
		Field("a", vireo.String()).
		Field("b", vireo.String()).
		Field("c", vireo.String()).
		Field("d", vireo.String())

	_, err := schema.Validate(context.Background(), map[string]any{})
	g := mustGroup(t, err)
	if len(g) != 4 {
		t.Fatalf("len(group) = %d, want 4", len(g))
	}
	msg := g.Error()
	if !strings.Contains(msg, "required_field_missing at /a") {
		t.Fatalf("summary missing first entry: %q", msg)
	}
	if !strings.Contains(msg, "(total 4)") {
		t.Fatalf("summary missing total: %q", msg)
	}
}

func TestGroupJSONPayload(t *testing.T) {
	schema := vireo.Object().Field("username", vireo.String().Min(3))
	_, err := schema.Validate(context.Background(), map[string]any{"username": "jo"})
	g := mustGroup(t, err)

	payload, merr := json.Marshal(g)
	if merr != nil {
		t.Fatalf("marshal: %v", merr)
	}
	s := string(payload)
	for _, want := range []string{
		`"errors":[`,
		`"path":["username"]`,
		`"code":"constraint_violation"`,
		`"message":"String must be at least 3 characters"`,
	} {
		if !strings.Contains(s, want) {
			t.Fatalf("payload %s missing %s", s, want)
		}
	}
}

func TestAsGroupOnOtherError(t *testing.T) {
	if _, ok := vireo.AsGroup(context.Canceled); ok {
		t.Fatalf("AsGroup matched a non-group error")
	}
	if _, ok := vireo.AsGroup(nil); ok {
		t.Fatalf("AsGroup matched nil")
	}
}
