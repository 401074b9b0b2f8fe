package vireo_test

import (
	"context"
	"reflect"
	"testing"

	vireo "github.com/vireo-go/vireo"
)

func userSchema() *vireo.ObjectSchema {
	return vireo.Object().
		Field("username", vireo.String().Min(3)).
		Field("age", vireo.Number().Int().Min(18))
}

func TestObjectCollectsFieldErrorsInDeclarationOrder(t *testing.T) {
	_, err := userSchema().Validate(context.Background(), map[string]any{
		"username": "jo",
		"age":      15,
	})
	g := mustGroup(t, err)
	if len(g) != 2 {
		t.Fatalf("len(group) = %d, want 2: %v", len(g), g)
	}
	if got := g[0].Path.String(); got != "/username" {
		t.Fatalf("first path = %q", got)
	}
	if g[0].Message != "String must be at least 3 characters" {
		t.Fatalf("first message = %q", g[0].Message)
	}
	if got := g[1].Path.String(); got != "/age" {
		t.Fatalf("second path = %q", got)
	}
	if g[1].Message != "Value must be at least 18" {
		t.Fatalf("second message = %q", g[1].Message)
	}
}

func TestObjectErrorOrderIsStable(t *testing.T) {
	ctx := context.Background()
	schema := userSchema()
	input := map[string]any{"username": "jo", "age": 15}

	_, err := schema.Validate(ctx, input)
	want := mustGroup(t, err)
	for i := 0; i < 50; i++ {
		_, err := schema.Validate(ctx, input)
		got := mustGroup(t, err)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("iteration %d: order changed: %v vs %v", i, got, want)
		}
	}
}

func TestObjectValidateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	schema := userSchema()
	input := map[string]any{"username": "josephine", "age": 30}

	out1, err := schema.Validate(ctx, input)
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	out2, err := schema.Validate(ctx, out1)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if !reflect.DeepEqual(out1, out2) {
		t.Fatalf("validate(validate(x)) != validate(x): %v vs %v", out2, out1)
	}
}

func TestObjectRequiredVersusOptional(t *testing.T) {
	ctx := context.Background()
	schema := vireo.Object().
		Field("id", vireo.String()).
		Field("note", vireo.String().Optional())

	_, err := schema.Validate(ctx, map[string]any{})
	g := mustGroup(t, err)
	if len(g) != 1 || g[0].Code != vireo.CodeRequiredFieldMissing {
		t.Fatalf("group = %v", g)
	}
	if got := g[0].Path.String(); got != "/id" {
		t.Fatalf("path = %q", got)
	}

	out, err := schema.Validate(ctx, map[string]any{"id": "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, has := out.(map[string]any)["note"]; has {
		t.Fatalf("absent optional field present in output: %v", out)
	}
}

func TestObjectStrictRejectsUnknownKeys(t *testing.T) {
	ctx := context.Background()
	schema := vireo.Object().Field("a", vireo.String()).Strict()

	_, err := schema.Validate(ctx, map[string]any{"a": "x", "b": 1, "c": 2})
	g := mustGroup(t, err)
	if len(g) != 2 {
		t.Fatalf("len(group) = %d, want 2: %v", len(g), g)
	}
	// Unknown keys are reported in sorted order.
	if g[0].Path.String() != "/b" || g[1].Path.String() != "/c" {
		t.Fatalf("paths = %q, %q", g[0].Path, g[1].Path)
	}
	for _, e := range g {
		if e.Code != vireo.CodeUnexpectedField {
			t.Fatalf("code = %q", e.Code)
		}
	}
}

func TestObjectPassthroughCopiesUnknownKeys(t *testing.T) {
	ctx := context.Background()
	schema := vireo.Object().Field("a", vireo.String())

	out, err := schema.Validate(ctx, map[string]any{"a": "x", "extra": []any{1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(out.(map[string]any)["extra"], []any{1}) {
		t.Fatalf("extra key not passed through: %v", out)
	}
}

func TestObjectTypedAdditionalProperties(t *testing.T) {
	ctx := context.Background()
	schema := vireo.Object().
		Field("name", vireo.String()).
		AdditionalProperties(vireo.Number())

	out, err := schema.Validate(ctx, map[string]any{"name": "x", "score": 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.(map[string]any)["score"] != int64(7) {
		t.Fatalf("typed extra not validated: %v", out)
	}

	_, err = schema.Validate(ctx, map[string]any{"name": "x", "score": "high"})
	g := mustGroup(t, err)
	if got := g[0].Path.String(); got != "/score" {
		t.Fatalf("path = %q", got)
	}
}

func TestObjectPatternPropertiesFirstMatchWins(t *testing.T) {
	ctx := context.Background()
	schema := vireo.Object().
		PatternProperty(`^x-`, vireo.String()).
		PatternProperty(`^x-n`, vireo.Number()).
		Strict()

	// "x-name" matches both patterns; the first declared one applies.
	out, err := schema.Validate(ctx, map[string]any{"x-name": "v"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.(map[string]any)["x-name"] != "v" {
		t.Fatalf("pattern value mangled: %v", out)
	}

	// Keys matching no pattern fall back to the Strict policy.
	_, err = schema.Validate(ctx, map[string]any{"other": "v"})
	g := mustGroup(t, err)
	if g[0].Code != vireo.CodeUnexpectedField {
		t.Fatalf("code = %q", g[0].Code)
	}
}

func TestObjectTypeMismatch(t *testing.T) {
	_, err := userSchema().Validate(context.Background(), []any{1})
	g := mustGroup(t, err)
	if g[0].Code != vireo.CodeTypeMismatch {
		t.Fatalf("code = %q", g[0].Code)
	}
	if g[0].Message != "Expected object, got list" {
		t.Fatalf("message = %q", g[0].Message)
	}
}

func TestObjectDuplicateFieldPanics(t *testing.T) {
	defer func() {
		r := recover()
		se, ok := r.(*vireo.SchemaError)
		if !ok {
			t.Fatalf("panic value = %T, want *SchemaError", r)
		}
		if se.Code != vireo.CodeSchemaConstructionConflict {
			t.Fatalf("code = %q", se.Code)
		}
	}()
	_ = vireo.Object().
		Field("a", vireo.String()).
		Field("a", vireo.Number())
}

func TestObjectDescribe(t *testing.T) {
	d := userSchema().Field("note", vireo.String().Optional()).Describe()
	if d.Kind != vireo.KindObject {
		t.Fatalf("kind = %q", d.Kind)
	}
	names := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		names[i] = f.Name
	}
	if !reflect.DeepEqual(names, []string{"username", "age", "note"}) {
		t.Fatalf("field order = %v", names)
	}
	if !d.Fields[0].Required || d.Fields[2].Required {
		t.Fatalf("required flags wrong: %+v", d.Fields)
	}
	if d.Fields[0].Schema.Constraints["min"] != 3 {
		t.Fatalf("nested constraints missing: %+v", d.Fields[0].Schema)
	}
}
