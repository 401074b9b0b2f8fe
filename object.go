package vireo

import (
	"context"
	"sort"

	"github.com/vireo-go/vireo/i18n"
)

type fieldEntry struct {
	name   string
	schema Validator
}

type patternProperty struct {
	pattern *patternCache
	schema  Validator
}

// ObjectSchema validates string-keyed mappings against an ordered set of
// declared fields. Declaration order is significant: it drives error
// discovery order and is stable across repeated validations. Input keys
// matching no field are tested against pattern properties in declaration
// order, then fall back to the additional-properties policy (Allowed unless
// changed with Strict or AdditionalProperties).
type ObjectSchema struct {
	core       schemaCore
	fields     []fieldEntry
	index      map[string]int
	patterns   []patternProperty
	additional AdditionalMode
	addSchema  Validator
}

// Object returns an empty object schema that passes unmatched keys through.
func Object() *ObjectSchema {
	return &ObjectSchema{index: map[string]int{}}
}

func (o *ObjectSchema) clone() *ObjectSchema { c := *o; return &c }

// Field declares a field in declaration order. Declaring the same name twice
// is a schema-authoring bug and panics with *SchemaError.
func (o *ObjectSchema) Field(name string, schema Validator) *ObjectSchema {
	if _, dup := o.index[name]; dup {
		panic(&SchemaError{
			Code:    CodeSchemaConstructionConflict,
			Keys:    []string{name},
			Message: "field declared twice",
		})
	}
	c := o.clone()
	fields := make([]fieldEntry, 0, len(o.fields)+1)
	fields = append(fields, o.fields...)
	c.fields = append(fields, fieldEntry{name: name, schema: schema})
	index := make(map[string]int, len(o.index)+1)
	for k, i := range o.index {
		index[k] = i
	}
	index[name] = len(c.fields) - 1
	c.index = index
	return c
}

// PatternProperty validates unmatched keys whose name matches expr. Patterns
// are tried in declaration order; the first match wins.
func (o *ObjectSchema) PatternProperty(expr string, schema Validator) *ObjectSchema {
	c := o.clone()
	patterns := make([]patternProperty, 0, len(o.patterns)+1)
	patterns = append(patterns, o.patterns...)
	c.patterns = append(patterns, patternProperty{
		pattern: &patternCache{expr: expr},
		schema:  schema,
	})
	return c
}

// Strict rejects unmatched keys with an unexpected_field error per key.
func (o *ObjectSchema) Strict() *ObjectSchema {
	c := o.clone()
	c.additional = AdditionalForbidden
	c.addSchema = nil
	return c
}

// Passthrough accepts unmatched keys and copies their values unchanged.
func (o *ObjectSchema) Passthrough() *ObjectSchema {
	c := o.clone()
	c.additional = AdditionalAllowed
	c.addSchema = nil
	return c
}

// AdditionalProperties validates unmatched keys against schema.
func (o *ObjectSchema) AdditionalProperties(schema Validator) *ObjectSchema {
	c := o.clone()
	c.additional = AdditionalTyped
	c.addSchema = schema
	return c
}

// Optional marks the object as allowed to be absent.
func (o *ObjectSchema) Optional() *ObjectSchema {
	c := o.clone()
	c.core.optional = true
	return c
}

// Nullable accepts explicit null in place of the object.
func (o *ObjectSchema) Nullable() *ObjectSchema {
	c := o.clone()
	c.core.nullable = true
	return c
}

// Default supplies an output for absent input. Defaults bypass field checks.
func (o *ObjectSchema) Default(v map[string]any) *ObjectSchema {
	c := o.clone()
	c.core.hasDefault, c.core.defValue = true, v
	return c
}

// DefaultFunc supplies a producer called per validation for absent input.
func (o *ObjectSchema) DefaultFunc(fn func() map[string]any) *ObjectSchema {
	c := o.clone()
	c.core.hasDefault = true
	c.core.defFn = func() any { return fn() }
	return c
}

// Transform appends a post-validation transform over the validated mapping.
func (o *ObjectSchema) Transform(fn func(any) any) *ObjectSchema {
	c := o.clone()
	c.core = c.core.withTransform(fn)
	return c
}

// Message replaces the text of this node's own failures (the type check);
// field errors keep their own messages.
func (o *ObjectSchema) Message(msg string) *ObjectSchema {
	c := o.clone()
	c.core.message = msg
	return c
}

func (o *ObjectSchema) Validate(ctx context.Context, v any) (any, error) {
	return finish(o.resolve(ctx, v, true, modeSync))
}

func (o *ObjectSchema) ValidateAsync(ctx context.Context, v any) (any, error) {
	return finish(o.resolve(ctx, v, true, modeAsync))
}

func (o *ObjectSchema) resolve(ctx context.Context, v any, present bool, mode execMode) resolution {
	return o.core.resolveValue(ctx, v, present, func(ctx context.Context, v any) (any, ValidationErrorGroup, error) {
		return o.checkWith(ctx, v, mode)
	})
}

func (o *ObjectSchema) checkWith(ctx context.Context, v any, mode execMode) (any, ValidationErrorGroup, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, ValidationErrorGroup{{
			Path:    Path{},
			Code:    CodeTypeMismatch,
			Message: i18n.T("object.type", map[string]string{"received": typeName(v)}),
		}}, nil
	}

	resolveField := func(ctx context.Context, i int) resolution {
		f := o.fields[i]
		val, present := m[f.name]
		return f.schema.resolve(ctx, val, present, mode)
	}

	var results []resolution
	if mode == modeAsync && len(o.fields) > 1 {
		rs, err := fanOut(ctx, len(o.fields), resolveField)
		if err != nil {
			return nil, nil, err
		}
		results = rs
	} else {
		results = make([]resolution, len(o.fields))
		for i := range o.fields {
			r := resolveField(ctx, i)
			if r.fatal != nil {
				return nil, nil, r.fatal
			}
			results[i] = r
		}
	}

	// Merge in declaration order regardless of completion order.
	var errs ValidationErrorGroup
	out := make(map[string]any, len(m))
	for i, r := range results {
		f := o.fields[i]
		if len(r.errs) > 0 {
			errs = append(errs, prefixErrors(r.errs, f.name)...)
			continue
		}
		if !r.omit {
			out[f.name] = r.value
		}
	}

	// Undeclared keys in sorted order for determinism.
	var extras []string
	for k := range m {
		if _, declared := o.index[k]; !declared {
			extras = append(extras, k)
		}
	}
	sort.Strings(extras)

	for _, k := range extras {
		matched := false
		for _, pp := range o.patterns {
			if !pp.pattern.get().MatchString(k) {
				continue
			}
			r := pp.schema.resolve(ctx, m[k], true, mode)
			if r.fatal != nil {
				return nil, nil, r.fatal
			}
			if len(r.errs) > 0 {
				errs = append(errs, prefixErrors(r.errs, k)...)
			} else if !r.omit {
				out[k] = r.value
			}
			matched = true
			break
		}
		if matched {
			continue
		}
		switch o.additional {
		case AdditionalForbidden:
			errs = append(errs, ValidationError{
				Path:    Path{k},
				Code:    CodeUnexpectedField,
				Message: i18n.T("object.unexpected", map[string]string{"key": k}),
			})
		case AdditionalAllowed:
			out[k] = m[k]
		case AdditionalTyped:
			r := o.addSchema.resolve(ctx, m[k], true, mode)
			if r.fatal != nil {
				return nil, nil, r.fatal
			}
			if len(r.errs) > 0 {
				errs = append(errs, prefixErrors(r.errs, k)...)
			} else if !r.omit {
				out[k] = r.value
			}
		}
	}

	if len(errs) > 0 {
		return nil, errs, nil
	}
	return out, nil, nil
}

func (o *ObjectSchema) Describe() Description {
	d := Description{Kind: KindObject, Additional: o.additional}
	o.core.describeInto(&d)
	d.Fields = make([]FieldDescription, len(o.fields))
	for i, f := range o.fields {
		fd := f.schema.Describe()
		d.Fields[i] = FieldDescription{
			Name:     f.name,
			Required: !fd.Optional,
			Schema:   fd,
		}
	}
	for _, pp := range o.patterns {
		d.Patterns = append(d.Patterns, PatternDescription{
			Pattern: pp.pattern.expr,
			Schema:  pp.schema.Describe(),
		})
	}
	if o.addSchema != nil {
		ad := o.addSchema.Describe()
		d.AdditionalSchema = &ad
	}
	return d
}
