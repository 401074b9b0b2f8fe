package vireo

import (
	"context"
	"errors"

	"github.com/vireo-go/vireo/i18n"
)

// CustomFunc is the user extension point: a check that may perform real
// external work (database lookups, remote calls) under the caller's context.
// Returning a ValidationErrorGroup keeps paths and codes as-is; any other
// error becomes a single constraint_violation carrying its text.
type CustomFunc func(ctx context.Context, v any) (any, error)

// CustomSchema wraps a user-supplied check in the standard node contract.
type CustomSchema struct {
	core schemaCore
	fn   CustomFunc
}

// Custom returns a schema backed by fn.
func Custom(fn CustomFunc) *CustomSchema { return &CustomSchema{fn: fn} }

func (s *CustomSchema) clone() *CustomSchema { c := *s; return &c }

func (s *CustomSchema) Optional() *CustomSchema {
	c := s.clone()
	c.core.optional = true
	return c
}

func (s *CustomSchema) Nullable() *CustomSchema {
	c := s.clone()
	c.core.nullable = true
	return c
}

func (s *CustomSchema) Default(v any) *CustomSchema {
	c := s.clone()
	c.core.hasDefault, c.core.defValue = true, v
	return c
}

func (s *CustomSchema) Transform(fn func(any) any) *CustomSchema {
	c := s.clone()
	c.core = c.core.withTransform(fn)
	return c
}

func (s *CustomSchema) Message(msg string) *CustomSchema {
	c := s.clone()
	c.core.message = msg
	return c
}

func (s *CustomSchema) Validate(ctx context.Context, v any) (any, error) {
	return finish(s.resolve(ctx, v, true, modeSync))
}

func (s *CustomSchema) ValidateAsync(ctx context.Context, v any) (any, error) {
	return finish(s.resolve(ctx, v, true, modeAsync))
}

func (s *CustomSchema) resolve(ctx context.Context, v any, present bool, _ execMode) resolution {
	return s.core.resolveValue(ctx, v, present, s.check)
}

func (s *CustomSchema) check(ctx context.Context, v any) (any, ValidationErrorGroup, error) {
	out, err := s.fn(ctx, v)
	if err == nil {
		return out, nil, nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil, nil, err
	}
	if g, ok := AsGroup(err); ok {
		return nil, g, nil
	}
	msg := err.Error()
	if msg == "" {
		msg = i18n.T("custom", nil)
	}
	return nil, ValidationErrorGroup{{
		Path:    Path{},
		Code:    CodeConstraintViolation,
		Message: msg,
	}}, nil
}

func (s *CustomSchema) Describe() Description {
	d := Description{Kind: KindCustom}
	s.core.describeInto(&d)
	return d
}
