package vireo

import (
	"context"
	"reflect"
	"strconv"

	"github.com/vireo-go/vireo/i18n"
)

// ListSchema validates every element of a slice against one item schema.
// Length constraints are checked independently of element content; the
// uniqueness check runs only once every element has individually passed and
// reports the later duplicate's index.
type ListSchema struct {
	core schemaCore
	item Validator

	minSet bool
	min    int
	maxSet bool
	max    int
	lenSet bool
	length int

	nonEmpty bool
	unique   bool
}

// List returns a schema validating each element against item.
func List(item Validator) *ListSchema { return &ListSchema{item: item} }

func (s *ListSchema) clone() *ListSchema { c := *s; return &c }

// Min requires at least n elements.
func (s *ListSchema) Min(n int) *ListSchema {
	c := s.clone()
	c.minSet, c.min = true, n
	return c
}

// Max allows at most n elements.
func (s *ListSchema) Max(n int) *ListSchema {
	c := s.clone()
	c.maxSet, c.max = true, n
	return c
}

// Length requires exactly n elements.
func (s *ListSchema) Length(n int) *ListSchema {
	c := s.clone()
	c.lenSet, c.length = true, n
	return c
}

// NonEmpty rejects the empty list.
func (s *ListSchema) NonEmpty() *ListSchema {
	c := s.clone()
	c.nonEmpty = true
	return c
}

// Unique rejects equal elements, reporting the later duplicate's index.
func (s *ListSchema) Unique() *ListSchema {
	c := s.clone()
	c.unique = true
	return c
}

// Optional marks the list as allowed to be absent.
func (s *ListSchema) Optional() *ListSchema {
	c := s.clone()
	c.core.optional = true
	return c
}

// Nullable accepts explicit null in place of the list.
func (s *ListSchema) Nullable() *ListSchema {
	c := s.clone()
	c.core.nullable = true
	return c
}

// Default supplies an output for absent input, bypassing element checks.
func (s *ListSchema) Default(v []any) *ListSchema {
	c := s.clone()
	c.core.hasDefault, c.core.defValue = true, v
	return c
}

// Transform appends a post-validation transform over the validated slice.
func (s *ListSchema) Transform(fn func(any) any) *ListSchema {
	c := s.clone()
	c.core = c.core.withTransform(fn)
	return c
}

// Message replaces the text of this node's own failures.
func (s *ListSchema) Message(msg string) *ListSchema {
	c := s.clone()
	c.core.message = msg
	return c
}

func (s *ListSchema) Validate(ctx context.Context, v any) (any, error) {
	return finish(s.resolve(ctx, v, true, modeSync))
}

func (s *ListSchema) ValidateAsync(ctx context.Context, v any) (any, error) {
	return finish(s.resolve(ctx, v, true, modeAsync))
}

func (s *ListSchema) resolve(ctx context.Context, v any, present bool, mode execMode) resolution {
	return s.core.resolveValue(ctx, v, present, func(ctx context.Context, v any) (any, ValidationErrorGroup, error) {
		return s.checkWith(ctx, v, mode)
	})
}

func (s *ListSchema) checkWith(ctx context.Context, v any, mode execMode) (any, ValidationErrorGroup, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, ValidationErrorGroup{{
			Path:    Path{},
			Code:    CodeTypeMismatch,
			Message: i18n.T("list.type", map[string]string{"received": typeName(v)}),
		}}, nil
	}

	var errs ValidationErrorGroup
	add := func(key string, data map[string]string) {
		errs = append(errs, ValidationError{
			Path:    Path{},
			Code:    CodeConstraintViolation,
			Message: i18n.T(key, data),
		})
	}

	// Length constraints are independent of element content.
	if s.nonEmpty && len(arr) == 0 {
		add("list.empty", nil)
	}
	if s.minSet && len(arr) < s.min {
		add("list.min", map[string]string{"min": strconv.Itoa(s.min)})
	}
	if s.maxSet && len(arr) > s.max {
		add("list.max", map[string]string{"max": strconv.Itoa(s.max)})
	}
	if s.lenSet && len(arr) != s.length {
		add("list.length", map[string]string{"length": strconv.Itoa(s.length)})
	}

	resolveItem := func(ctx context.Context, i int) resolution {
		return s.item.resolve(ctx, arr[i], true, mode)
	}

	var results []resolution
	if mode == modeAsync && len(arr) > 1 {
		rs, err := fanOut(ctx, len(arr), resolveItem)
		if err != nil {
			return nil, nil, err
		}
		results = rs
	} else {
		results = make([]resolution, len(arr))
		for i := range arr {
			r := resolveItem(ctx, i)
			if r.fatal != nil {
				return nil, nil, r.fatal
			}
			results[i] = r
		}
	}

	elementsFailed := false
	out := make([]any, len(arr))
	for i, r := range results {
		if len(r.errs) > 0 {
			errs = append(errs, prefixErrors(r.errs, i)...)
			elementsFailed = true
			continue
		}
		out[i] = r.value
	}

	if s.unique && !elementsFailed {
		for i := 1; i < len(out); i++ {
			for j := 0; j < i; j++ {
				if reflect.DeepEqual(out[i], out[j]) {
					errs = append(errs, ValidationError{
						Path:    Path{i},
						Code:    CodeConstraintViolation,
						Message: i18n.T("list.unique", nil),
					})
					break
				}
			}
		}
	}

	if len(errs) > 0 {
		return nil, errs, nil
	}
	return out, nil, nil
}

func (s *ListSchema) Describe() Description {
	d := Description{Kind: KindList, Constraints: map[string]any{}}
	s.core.describeInto(&d)
	item := s.item.Describe()
	d.Items = &item
	if s.minSet {
		d.Constraints["min"] = s.min
	}
	if s.maxSet {
		d.Constraints["max"] = s.max
	}
	if s.lenSet {
		d.Constraints["length"] = s.length
	}
	if s.nonEmpty {
		d.Constraints["nonEmpty"] = true
	}
	if s.unique {
		d.Constraints["unique"] = true
	}
	return d
}
