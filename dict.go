package vireo

import (
	"context"
	"sort"
	"strconv"

	"github.com/vireo-go/vireo/i18n"
)

// DictSchema validates a homogeneous string-keyed mapping: every value
// against one schema. Keys are iterated in sorted order so error order is
// deterministic.
type DictSchema struct {
	core  schemaCore
	value Validator

	minSet bool
	min    int
	maxSet bool
	max    int
}

// Dict returns a schema validating each mapping value against value.
func Dict(value Validator) *DictSchema { return &DictSchema{value: value} }

func (s *DictSchema) clone() *DictSchema { c := *s; return &c }

// MinProperties requires at least n entries.
func (s *DictSchema) MinProperties(n int) *DictSchema {
	c := s.clone()
	c.minSet, c.min = true, n
	return c
}

// MaxProperties allows at most n entries.
func (s *DictSchema) MaxProperties(n int) *DictSchema {
	c := s.clone()
	c.maxSet, c.max = true, n
	return c
}

// Optional marks the mapping as allowed to be absent.
func (s *DictSchema) Optional() *DictSchema {
	c := s.clone()
	c.core.optional = true
	return c
}

// Nullable accepts explicit null in place of the mapping.
func (s *DictSchema) Nullable() *DictSchema {
	c := s.clone()
	c.core.nullable = true
	return c
}

// Default supplies an output for absent input, bypassing value checks.
func (s *DictSchema) Default(v map[string]any) *DictSchema {
	c := s.clone()
	c.core.hasDefault, c.core.defValue = true, v
	return c
}

// Message replaces the text of this node's own failures.
func (s *DictSchema) Message(msg string) *DictSchema {
	c := s.clone()
	c.core.message = msg
	return c
}

func (s *DictSchema) Validate(ctx context.Context, v any) (any, error) {
	return finish(s.resolve(ctx, v, true, modeSync))
}

func (s *DictSchema) ValidateAsync(ctx context.Context, v any) (any, error) {
	return finish(s.resolve(ctx, v, true, modeAsync))
}

func (s *DictSchema) resolve(ctx context.Context, v any, present bool, mode execMode) resolution {
	return s.core.resolveValue(ctx, v, present, func(ctx context.Context, v any) (any, ValidationErrorGroup, error) {
		return s.checkWith(ctx, v, mode)
	})
}

func (s *DictSchema) checkWith(ctx context.Context, v any, mode execMode) (any, ValidationErrorGroup, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, ValidationErrorGroup{{
			Path:    Path{},
			Code:    CodeTypeMismatch,
			Message: i18n.T("dict.type", map[string]string{"received": typeName(v)}),
		}}, nil
	}

	var errs ValidationErrorGroup
	if s.minSet && len(m) < s.min {
		errs = append(errs, ValidationError{
			Path:    Path{},
			Code:    CodeConstraintViolation,
			Message: i18n.T("dict.min_properties", map[string]string{"min": strconv.Itoa(s.min)}),
		})
	}
	if s.maxSet && len(m) > s.max {
		errs = append(errs, ValidationError{
			Path:    Path{},
			Code:    CodeConstraintViolation,
			Message: i18n.T("dict.max_properties", map[string]string{"max": strconv.Itoa(s.max)}),
		})
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	resolveEntry := func(ctx context.Context, i int) resolution {
		return s.value.resolve(ctx, m[keys[i]], true, mode)
	}

	var results []resolution
	if mode == modeAsync && len(keys) > 1 {
		rs, err := fanOut(ctx, len(keys), resolveEntry)
		if err != nil {
			return nil, nil, err
		}
		results = rs
	} else {
		results = make([]resolution, len(keys))
		for i := range keys {
			r := resolveEntry(ctx, i)
			if r.fatal != nil {
				return nil, nil, r.fatal
			}
			results[i] = r
		}
	}

	out := make(map[string]any, len(m))
	for i, r := range results {
		k := keys[i]
		if len(r.errs) > 0 {
			errs = append(errs, prefixErrors(r.errs, k)...)
			continue
		}
		if !r.omit {
			out[k] = r.value
		}
	}

	if len(errs) > 0 {
		return nil, errs, nil
	}
	return out, nil, nil
}

func (s *DictSchema) Describe() Description {
	d := Description{Kind: KindDict, Constraints: map[string]any{}}
	s.core.describeInto(&d)
	vd := s.value.Describe()
	d.Values = &vd
	if s.minSet {
		d.Constraints["minProperties"] = s.min
	}
	if s.maxSet {
		d.Constraints["maxProperties"] = s.max
	}
	return d
}
