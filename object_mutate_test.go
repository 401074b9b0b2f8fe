package vireo_test

import (
	"context"
	"reflect"
	"testing"

	vireo "github.com/vireo-go/vireo"
)

func TestExtendAddsFieldsWithoutTouchingBase(t *testing.T) {
	ctx := context.Background()
	base := userSchema()
	extended := base.Extend(vireo.Object().Field("email", vireo.String().Email()))

	// The extended schema requires the new field.
	_, err := extended.Validate(ctx, map[string]any{"username": "alice", "age": 30})
	g := mustGroup(t, err)
	if len(g) != 1 || g[0].Path.String() != "/email" {
		t.Fatalf("group = %v", g)
	}

	// The base schema is unchanged.
	if _, err := base.Validate(ctx, map[string]any{"username": "alice", "age": 30}); err != nil {
		t.Fatalf("base mutated by extend: %v", err)
	}
}

func TestExtendConflictPanicsNamingKeys(t *testing.T) {
	defer func() {
		r := recover()
		se, ok := r.(*vireo.SchemaError)
		if !ok {
			t.Fatalf("panic value = %T, want *SchemaError", r)
		}
		if se.Code != vireo.CodeSchemaConstructionConflict {
			t.Fatalf("code = %q", se.Code)
		}
		if !reflect.DeepEqual(se.Keys, []string{"age"}) {
			t.Fatalf("keys = %v", se.Keys)
		}
	}()
	_ = userSchema().Extend(vireo.Object().Field("age", vireo.Number()))
}

func TestExtendThenOmitEqualsBase(t *testing.T) {
	ctx := context.Background()
	base := userSchema()
	roundTrip := base.Extend(vireo.Object().Field("email", vireo.String())).Omit("email")

	input := map[string]any{"username": "jo", "age": 15}
	_, errBase := base.Validate(ctx, input)
	_, errRT := roundTrip.Validate(ctx, input)
	if !reflect.DeepEqual(mustGroup(t, errBase), mustGroup(t, errRT)) {
		t.Fatalf("extend().omit() diverges from base")
	}

	ok := map[string]any{"username": "alice", "age": 30}
	outBase, err := base.Validate(ctx, ok)
	if err != nil {
		t.Fatalf("base: %v", err)
	}
	outRT, err := roundTrip.Validate(ctx, ok)
	if err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if !reflect.DeepEqual(outBase, outRT) {
		t.Fatalf("outputs diverge: %v vs %v", outBase, outRT)
	}
}

func TestOmitKeepsAdditionalPolicy(t *testing.T) {
	ctx := context.Background()
	input := map[string]any{"username": "alice", "age": 30}

	// Under Strict, an omitted field present in input is now unexpected.
	strict := userSchema().Strict().Omit("age")
	_, err := strict.Validate(ctx, input)
	g := mustGroup(t, err)
	if len(g) != 1 || g[0].Code != vireo.CodeUnexpectedField || g[0].Path.String() != "/age" {
		t.Fatalf("group = %v", g)
	}

	// Under the default passthrough policy it is silently accepted.
	loose := userSchema().Omit("age")
	out, err := loose.Validate(ctx, input)
	if err != nil {
		t.Fatalf("passthrough rejected omitted key: %v", err)
	}
	if out.(map[string]any)["age"] != 30 {
		t.Fatalf("omitted key not passed through: %v", out)
	}
}

func TestExcludeSkipsChecksAndKeepsRawValue(t *testing.T) {
	ctx := context.Background()
	schema := userSchema().Strict().Exclude("age")

	// Any value for the excluded field passes and is copied verbatim, and it
	// never counts as an unexpected key under Strict.
	out, err := schema.Validate(ctx, map[string]any{"username": "alice", "age": "not a number"})
	if err != nil {
		t.Fatalf("excluded field still validated: %v", err)
	}
	if out.(map[string]any)["age"] != "not a number" {
		t.Fatalf("excluded value altered: %v", out)
	}

	// Absent excluded field is simply omitted.
	out, err = schema.Validate(ctx, map[string]any{"username": "alice"})
	if err != nil {
		t.Fatalf("absent excluded field rejected: %v", err)
	}
	if _, has := out.(map[string]any)["age"]; has {
		t.Fatalf("absent excluded field leaked into output: %v", out)
	}
}

func TestMutationChainsAreIndependent(t *testing.T) {
	ctx := context.Background()
	base := userSchema().Strict()
	a := base.Omit("age")
	b := base.Exclude("username")

	// base still enforces both fields
	_, err := base.Validate(ctx, map[string]any{"username": "jo", "age": 15})
	if g := mustGroup(t, err); len(g) != 2 {
		t.Fatalf("base group = %v", g)
	}
	// a dropped age only
	_, err = a.Validate(ctx, map[string]any{"username": "jo"})
	if g := mustGroup(t, err); len(g) != 1 || g[0].Path.String() != "/username" {
		t.Fatalf("a group = %v", g)
	}
	// b stopped checking username only
	_, err = b.Validate(ctx, map[string]any{"username": "jo", "age": 15})
	if g := mustGroup(t, err); len(g) != 1 || g[0].Path.String() != "/age" {
		t.Fatalf("b group = %v", g)
	}
}
