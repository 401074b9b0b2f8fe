package vireo

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/vireo-go/vireo/i18n"
)

// discCache lazily derives the discriminator-value to branch-index map from
// each branch's literal constraint. It is owned by one schema instance and
// idempotent, so concurrent first use is safe.
type discCache struct {
	once sync.Once
	m    map[any]int
}

// UnionSchema accepts a value matching any of its branches. Plain unions try
// branches in declared order and return the first success; a discriminated
// union (see Discriminator) dispatches directly to the single branch selected
// by the discriminator field and never trials the others.
type UnionSchema struct {
	core          schemaCore
	branches      []Validator
	discriminator string
	disc          *discCache
}

// Union returns a schema accepting any of the branch schemas.
func Union(branches ...Validator) *UnionSchema {
	return &UnionSchema{branches: branches}
}

func (s *UnionSchema) clone() *UnionSchema { c := *s; return &c }

// Discriminator switches the union to direct dispatch on field. Every branch
// must be an object schema declaring field with a Literal constraint; the
// literal values must be distinct across branches. Violations are
// schema-authoring bugs and panic with *SchemaError.
func (s *UnionSchema) Discriminator(field string) *UnionSchema {
	seen := make(map[any]bool, len(s.branches))
	for i, b := range s.branches {
		obj, ok := b.(*ObjectSchema)
		if !ok {
			panic(&SchemaError{
				Code:    CodeSchemaConstructionConflict,
				Keys:    []string{field},
				Message: fmt.Sprintf("discriminated union branch %d is not an object schema", i),
			})
		}
		idx, ok := obj.index[field]
		if !ok {
			panic(&SchemaError{
				Code:    CodeSchemaConstructionConflict,
				Keys:    []string{field},
				Message: fmt.Sprintf("discriminated union branch %d does not declare field %q", i, field),
			})
		}
		lit, ok := obj.fields[idx].schema.(*LiteralSchema)
		if !ok {
			panic(&SchemaError{
				Code:    CodeSchemaConstructionConflict,
				Keys:    []string{field},
				Message: fmt.Sprintf("discriminated union branch %d field %q is not a literal", i, field),
			})
		}
		if seen[lit.literalValue()] {
			panic(&SchemaError{
				Code:    CodeSchemaConstructionConflict,
				Keys:    []string{field},
				Message: fmt.Sprintf("duplicate discriminator value %v", lit.literalValue()),
			})
		}
		seen[lit.literalValue()] = true
	}

	c := s.clone()
	c.discriminator = field
	c.disc = &discCache{}
	return c
}

// Optional marks the value as allowed to be absent.
func (s *UnionSchema) Optional() *UnionSchema {
	c := s.clone()
	c.core.optional = true
	return c
}

// Nullable accepts explicit null as a valid value.
func (s *UnionSchema) Nullable() *UnionSchema {
	c := s.clone()
	c.core.nullable = true
	return c
}

// Message replaces the text of this node's own failures.
func (s *UnionSchema) Message(msg string) *UnionSchema {
	c := s.clone()
	c.core.message = msg
	return c
}

func (s *UnionSchema) Validate(ctx context.Context, v any) (any, error) {
	return finish(s.resolve(ctx, v, true, modeSync))
}

func (s *UnionSchema) ValidateAsync(ctx context.Context, v any) (any, error) {
	return finish(s.resolve(ctx, v, true, modeAsync))
}

func (s *UnionSchema) resolve(ctx context.Context, v any, present bool, mode execMode) resolution {
	return s.core.resolveValue(ctx, v, present, func(ctx context.Context, v any) (any, ValidationErrorGroup, error) {
		if s.discriminator != "" {
			return s.dispatch(ctx, v, mode)
		}
		return s.trial(ctx, v, mode)
	})
}

// trial tries branches in declared order and returns the first success
// untouched. When every branch fails, the result is a single error
// summarizing each branch's first failure reason.
func (s *UnionSchema) trial(ctx context.Context, v any, mode execMode) (any, ValidationErrorGroup, error) {
	reasons := make([]string, 0, len(s.branches))
	for _, b := range s.branches {
		r := b.resolve(ctx, v, true, mode)
		if r.fatal != nil {
			return nil, nil, r.fatal
		}
		if len(r.errs) == 0 {
			return r.value, nil, nil
		}
		reasons = append(reasons, b.Describe().Kind+": "+r.errs[0].Message)
	}
	return nil, ValidationErrorGroup{{
		Path:    Path{},
		Code:    CodeNoUnionBranchMatched,
		Message: i18n.T("union.no_match", nil) + " (" + strings.Join(reasons, "; ") + ")",
	}}, nil
}

// dispatch selects the single branch named by the discriminator value and
// surfaces its errors directly. Other branches are never evaluated.
func (s *UnionSchema) dispatch(ctx context.Context, v any, mode execMode) (any, ValidationErrorGroup, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, ValidationErrorGroup{{
			Path:    Path{},
			Code:    CodeTypeMismatch,
			Message: i18n.T("object.type", map[string]string{"received": typeName(v)}),
		}}, nil
	}

	dv, present := m[s.discriminator]
	if !present {
		return nil, ValidationErrorGroup{{
			Path:    Path{}.Field(s.discriminator),
			Code:    CodeUnknownDiscriminatorValue,
			Message: i18n.T("union.discriminator_missing", map[string]string{"field": s.discriminator}),
		}}, nil
	}
	if n, numeric := normalizeNumber(dv); numeric {
		dv = n
	}

	idx, ok := s.discMap()[dv]
	if !ok {
		return nil, ValidationErrorGroup{{
			Path:    Path{}.Field(s.discriminator),
			Code:    CodeUnknownDiscriminatorValue,
			Message: i18n.T("union.discriminator_unknown", map[string]string{"value": fmt.Sprintf("%v", dv)}),
		}}, nil
	}

	r := s.branches[idx].resolve(ctx, v, true, mode)
	if r.fatal != nil {
		return nil, nil, r.fatal
	}
	if len(r.errs) > 0 {
		return nil, r.errs, nil
	}
	return r.value, nil, nil
}

func (s *UnionSchema) discMap() map[any]int {
	s.disc.once.Do(func() {
		m := make(map[any]int, len(s.branches))
		for i, b := range s.branches {
			obj := b.(*ObjectSchema)
			lit := obj.fields[obj.index[s.discriminator]].schema.(*LiteralSchema)
			m[lit.literalValue()] = i
		}
		s.disc.m = m
	})
	return s.disc.m
}

func (s *UnionSchema) Describe() Description {
	d := Description{Kind: KindUnion, Discriminator: s.discriminator}
	s.core.describeInto(&d)
	d.Branches = make([]Description, len(s.branches))
	for i, b := range s.branches {
		d.Branches[i] = b.Describe()
	}
	return d
}
