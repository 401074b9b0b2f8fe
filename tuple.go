package vireo

import (
	"context"
	"strconv"

	"github.com/vireo-go/vireo/i18n"
)

// TupleSchema validates a slice positionally: element i against the i-th
// schema. Without a rest schema the length must equal the arity exactly; with
// one, the length must be at least the arity and trailing elements validate
// against the rest schema. On a length mismatch the overlapping prefix is
// still validated so element errors are not masked.
type TupleSchema struct {
	core     schemaCore
	elements []Validator
	rest     Validator
}

// Tuple returns a schema with one positional validator per element.
func Tuple(elements ...Validator) *TupleSchema {
	return &TupleSchema{elements: elements}
}

func (s *TupleSchema) clone() *TupleSchema { c := *s; return &c }

// Rest accepts trailing elements beyond the fixed positions, validating each
// against schema.
func (s *TupleSchema) Rest(schema Validator) *TupleSchema {
	c := s.clone()
	c.rest = schema
	return c
}

// Optional marks the tuple as allowed to be absent.
func (s *TupleSchema) Optional() *TupleSchema {
	c := s.clone()
	c.core.optional = true
	return c
}

// Nullable accepts explicit null in place of the tuple.
func (s *TupleSchema) Nullable() *TupleSchema {
	c := s.clone()
	c.core.nullable = true
	return c
}

// Message replaces the text of this node's own failures.
func (s *TupleSchema) Message(msg string) *TupleSchema {
	c := s.clone()
	c.core.message = msg
	return c
}

func (s *TupleSchema) Validate(ctx context.Context, v any) (any, error) {
	return finish(s.resolve(ctx, v, true, modeSync))
}

func (s *TupleSchema) ValidateAsync(ctx context.Context, v any) (any, error) {
	return finish(s.resolve(ctx, v, true, modeAsync))
}

func (s *TupleSchema) resolve(ctx context.Context, v any, present bool, mode execMode) resolution {
	return s.core.resolveValue(ctx, v, present, func(ctx context.Context, v any) (any, ValidationErrorGroup, error) {
		return s.checkWith(ctx, v, mode)
	})
}

func (s *TupleSchema) checkWith(ctx context.Context, v any, mode execMode) (any, ValidationErrorGroup, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, ValidationErrorGroup{{
			Path:    Path{},
			Code:    CodeTypeMismatch,
			Message: i18n.T("tuple.type", map[string]string{"received": typeName(v)}),
		}}, nil
	}

	var errs ValidationErrorGroup
	arity := len(s.elements)
	if s.rest == nil {
		if len(arr) != arity {
			errs = append(errs, ValidationError{
				Path:    Path{},
				Code:    CodeConstraintViolation,
				Message: i18n.T("tuple.length", map[string]string{"length": strconv.Itoa(arity)}),
			})
		}
	} else if len(arr) < arity {
		errs = append(errs, ValidationError{
			Path:    Path{},
			Code:    CodeConstraintViolation,
			Message: i18n.T("tuple.min", map[string]string{"min": strconv.Itoa(arity)}),
		})
	}

	schemaFor := func(i int) Validator {
		if i < arity {
			return s.elements[i]
		}
		return s.rest
	}
	n := len(arr)
	if s.rest == nil && n > arity {
		n = arity
	}

	resolveElem := func(ctx context.Context, i int) resolution {
		return schemaFor(i).resolve(ctx, arr[i], true, mode)
	}

	var results []resolution
	if mode == modeAsync && n > 1 {
		rs, err := fanOut(ctx, n, resolveElem)
		if err != nil {
			return nil, nil, err
		}
		results = rs
	} else {
		results = make([]resolution, n)
		for i := 0; i < n; i++ {
			r := resolveElem(ctx, i)
			if r.fatal != nil {
				return nil, nil, r.fatal
			}
			results[i] = r
		}
	}

	out := make([]any, n)
	for i, r := range results {
		if len(r.errs) > 0 {
			errs = append(errs, prefixErrors(r.errs, i)...)
			continue
		}
		out[i] = r.value
	}

	if len(errs) > 0 {
		return nil, errs, nil
	}
	return out, nil, nil
}

func (s *TupleSchema) Describe() Description {
	d := Description{Kind: KindTuple}
	s.core.describeInto(&d)
	d.Elements = make([]Description, len(s.elements))
	for i, e := range s.elements {
		d.Elements[i] = e.Describe()
	}
	if s.rest != nil {
		rd := s.rest.Describe()
		d.Rest = &rd
	}
	return d
}
