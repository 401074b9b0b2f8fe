package vireo

import (
	"context"

	"github.com/vireo-go/vireo/i18n"
)

// checkFunc is a node's kind-specific step 4 (type + constraints) and, for
// composites, the structural recursion over children. It returns the checked
// value, the node's exhaustive error set, and a fatal error reserved for
// context cancellation.
type checkFunc func(ctx context.Context, v any) (any, ValidationErrorGroup, error)

// resolveValue runs the pipeline shared by every node:
//
//  1. presence  — absent + required => required_field_missing
//  2. null      — nil is accepted only when nullable; distinct from absent
//  3. default   — materialized for absent values and trusted as-is
//     (constraint checks and transforms are bypassed)
//  4. checks    — kind-specific, all violations collected
//  5. transforms — chain-declaration order, only after step 4 passes
//  6. message   — a custom message replaces the text of this node's own
//     failures (empty-path entries); child entries keep theirs
func (c schemaCore) resolveValue(ctx context.Context, v any, present bool, check checkFunc) resolution {
	if err := ctx.Err(); err != nil {
		return resolution{fatal: err}
	}

	if !present {
		if c.hasDefault {
			return resolution{value: c.defaultFor()}
		}
		if !c.optional {
			return resolution{errs: ValidationErrorGroup{{
				Path:    Path{},
				Code:    CodeRequiredFieldMissing,
				Message: c.msg(i18n.T("required", nil)),
			}}}
		}
		return resolution{omit: true}
	}

	if v == nil {
		if c.nullable {
			return resolution{value: nil}
		}
		return resolution{errs: ValidationErrorGroup{{
			Path:    Path{},
			Code:    CodeTypeMismatch,
			Message: c.msg(i18n.T("null.forbidden", nil)),
		}}}
	}

	out, errs, fatal := check(ctx, v)
	if fatal != nil {
		return resolution{fatal: fatal}
	}
	if len(errs) > 0 {
		if c.message != "" {
			errs = overrideOwnMessages(errs, c.message)
		}
		return resolution{errs: errs}
	}

	return resolution{value: c.applyTransforms(out)}
}

// overrideOwnMessages rewrites the text of the node's own entries (those with
// an empty path). Child entries, already rebased under a segment, are left
// alone.
func overrideOwnMessages(errs ValidationErrorGroup, msg string) ValidationErrorGroup {
	out := make(ValidationErrorGroup, len(errs))
	for i, e := range errs {
		if len(e.Path) == 0 {
			e.Message = msg
		}
		out[i] = e
	}
	return out
}
