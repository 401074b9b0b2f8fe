package vireo

import (
	"context"
	"fmt"
	"reflect"

	"github.com/vireo-go/vireo/i18n"
)

// BoolSchema validates boolean values.
type BoolSchema struct {
	core schemaCore
}

// Bool returns a schema accepting boolean values.
func Bool() *BoolSchema { return &BoolSchema{} }

func (s *BoolSchema) clone() *BoolSchema { c := *s; return &c }

func (s *BoolSchema) Optional() *BoolSchema {
	c := s.clone()
	c.core.optional = true
	return c
}

func (s *BoolSchema) Nullable() *BoolSchema {
	c := s.clone()
	c.core.nullable = true
	return c
}

func (s *BoolSchema) Default(v bool) *BoolSchema {
	c := s.clone()
	c.core.hasDefault, c.core.defValue = true, v
	return c
}

func (s *BoolSchema) Message(msg string) *BoolSchema {
	c := s.clone()
	c.core.message = msg
	return c
}

func (s *BoolSchema) Validate(ctx context.Context, v any) (any, error) {
	return finish(s.resolve(ctx, v, true, modeSync))
}

func (s *BoolSchema) ValidateAsync(ctx context.Context, v any) (any, error) {
	return finish(s.resolve(ctx, v, true, modeAsync))
}

func (s *BoolSchema) resolve(ctx context.Context, v any, present bool, _ execMode) resolution {
	return s.core.resolveValue(ctx, v, present, s.check)
}

func (s *BoolSchema) check(_ context.Context, v any) (any, ValidationErrorGroup, error) {
	b, ok := v.(bool)
	if !ok {
		return nil, ValidationErrorGroup{{
			Path:    Path{},
			Code:    CodeTypeMismatch,
			Message: i18n.T("bool.type", map[string]string{"received": typeName(v)}),
		}}, nil
	}
	return b, nil, nil
}

func (s *BoolSchema) Describe() Description {
	d := Description{Kind: KindBoolean}
	s.core.describeInto(&d)
	return d
}

// NullSchema accepts only explicit null.
type NullSchema struct {
	core schemaCore
}

// Null returns a schema accepting only null.
func Null() *NullSchema {
	s := &NullSchema{}
	s.core.nullable = true
	return s
}

func (s *NullSchema) clone() *NullSchema { c := *s; return &c }

func (s *NullSchema) Optional() *NullSchema {
	c := s.clone()
	c.core.optional = true
	return c
}

func (s *NullSchema) Message(msg string) *NullSchema {
	c := s.clone()
	c.core.message = msg
	return c
}

func (s *NullSchema) Validate(ctx context.Context, v any) (any, error) {
	return finish(s.resolve(ctx, v, true, modeSync))
}

func (s *NullSchema) ValidateAsync(ctx context.Context, v any) (any, error) {
	return finish(s.resolve(ctx, v, true, modeAsync))
}

func (s *NullSchema) resolve(ctx context.Context, v any, present bool, _ execMode) resolution {
	return s.core.resolveValue(ctx, v, present, s.check)
}

func (s *NullSchema) check(_ context.Context, v any) (any, ValidationErrorGroup, error) {
	// Nil values are accepted by the pipeline's null step; anything reaching
	// the check is non-nil and therefore wrong.
	return nil, ValidationErrorGroup{{
		Path:    Path{},
		Code:    CodeTypeMismatch,
		Message: i18n.T("null.type", map[string]string{"received": typeName(v)}),
	}}, nil
}

func (s *NullSchema) Describe() Description {
	d := Description{Kind: KindNull}
	s.core.describeInto(&d)
	return d
}

// AnySchema accepts every value, including null, unchanged.
type AnySchema struct {
	core schemaCore
}

// Any returns a schema accepting every value.
func Any() *AnySchema {
	s := &AnySchema{}
	s.core.nullable = true
	return s
}

func (s *AnySchema) clone() *AnySchema { c := *s; return &c }

func (s *AnySchema) Optional() *AnySchema {
	c := s.clone()
	c.core.optional = true
	return c
}

func (s *AnySchema) Default(v any) *AnySchema {
	c := s.clone()
	c.core.hasDefault, c.core.defValue = true, v
	return c
}

func (s *AnySchema) Transform(fn func(any) any) *AnySchema {
	c := s.clone()
	c.core = c.core.withTransform(fn)
	return c
}

func (s *AnySchema) Validate(ctx context.Context, v any) (any, error) {
	return finish(s.resolve(ctx, v, true, modeSync))
}

func (s *AnySchema) ValidateAsync(ctx context.Context, v any) (any, error) {
	return finish(s.resolve(ctx, v, true, modeAsync))
}

func (s *AnySchema) resolve(ctx context.Context, v any, present bool, _ execMode) resolution {
	return s.core.resolveValue(ctx, v, present, s.check)
}

func (s *AnySchema) check(_ context.Context, v any) (any, ValidationErrorGroup, error) {
	return v, nil, nil
}

func (s *AnySchema) Describe() Description {
	d := Description{Kind: KindAny}
	s.core.describeInto(&d)
	return d
}

// LiteralSchema accepts exactly one value. Numeric literals match any numeric
// representation of the same value (json.Number, int, float64).
type LiteralSchema struct {
	core  schemaCore
	value any
}

// Literal returns a schema accepting exactly v.
func Literal(v any) *LiteralSchema {
	if n, ok := normalizeNumber(v); ok {
		v = n
	}
	return &LiteralSchema{value: v}
}

func (s *LiteralSchema) clone() *LiteralSchema { c := *s; return &c }

func (s *LiteralSchema) Optional() *LiteralSchema {
	c := s.clone()
	c.core.optional = true
	return c
}

func (s *LiteralSchema) Nullable() *LiteralSchema {
	c := s.clone()
	c.core.nullable = true
	return c
}

func (s *LiteralSchema) Message(msg string) *LiteralSchema {
	c := s.clone()
	c.core.message = msg
	return c
}

// literalValue exposes the expected value for discriminator-map construction.
func (s *LiteralSchema) literalValue() any { return s.value }

func (s *LiteralSchema) Validate(ctx context.Context, v any) (any, error) {
	return finish(s.resolve(ctx, v, true, modeSync))
}

func (s *LiteralSchema) ValidateAsync(ctx context.Context, v any) (any, error) {
	return finish(s.resolve(ctx, v, true, modeAsync))
}

func (s *LiteralSchema) resolve(ctx context.Context, v any, present bool, _ execMode) resolution {
	return s.core.resolveValue(ctx, v, present, s.check)
}

func (s *LiteralSchema) check(_ context.Context, v any) (any, ValidationErrorGroup, error) {
	cand := v
	if n, ok := normalizeNumber(v); ok {
		cand = n
	}
	if !literalEqual(cand, s.value) {
		return nil, ValidationErrorGroup{{
			Path:    Path{},
			Code:    CodeConstraintViolation,
			Message: i18n.T("literal.mismatch", map[string]string{"expected": fmt.Sprintf("%v", s.value)}),
		}}, nil
	}
	return cand, nil, nil
}

func literalEqual(a, b any) bool {
	if ai, ok := a.(int64); ok {
		if bf, ok := b.(float64); ok {
			return float64(ai) == bf
		}
	}
	if af, ok := a.(float64); ok {
		if bi, ok := b.(int64); ok {
			return af == float64(bi)
		}
	}
	return reflect.DeepEqual(a, b)
}

func (s *LiteralSchema) Describe() Description {
	d := Description{Kind: KindLiteral, Literal: s.value}
	s.core.describeInto(&d)
	return d
}
