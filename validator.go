package vireo

import (
	"context"
	"fmt"
	"regexp"
	"sync"

	json "github.com/goccy/go-json"
)

// execMode selects the evaluation strategy for composite nodes. Leaves resolve
// identically in both modes.
type execMode int

const (
	modeSync execMode = iota
	modeAsync
)

// resolution is the result of running one node's pipeline. Exactly one of
// (value, omit, errs, fatal) is meaningful: fatal carries context cancellation
// and aborts the whole call with no partial result; errs carries validation
// failures; omit marks an optional absent field that must not appear in the
// output; otherwise value holds the validated (and transformed) result.
type resolution struct {
	value any
	omit  bool
	errs  ValidationErrorGroup
	fatal error
}

// Validator is the closed contract implemented by every schema node.
// User-defined checks plug in through Custom rather than by implementing this
// interface directly.
type Validator interface {
	// Validate runs the synchronous pipeline against a decoded value and
	// returns the validated output. On failure the error is a
	// ValidationErrorGroup (extract it with AsGroup).
	Validate(ctx context.Context, v any) (any, error)

	// ValidateAsync runs the same pipeline with composite nodes fanning out
	// one goroutine per field/element. Results and errors are re-sequenced
	// into declaration/index order, so output is identical to Validate.
	ValidateAsync(ctx context.Context, v any) (any, error)

	// Describe reports the node's kind and configuration without executing
	// any validation. Generators consume this.
	Describe() Description

	resolve(ctx context.Context, v any, present bool, mode execMode) resolution
}

// Node kinds reported by Describe.
const (
	KindString  = "string"
	KindNumber  = "number"
	KindBoolean = "boolean"
	KindNull    = "null"
	KindAny     = "any"
	KindLiteral = "literal"
	KindObject  = "object"
	KindList    = "list"
	KindTuple   = "tuple"
	KindDict    = "dict"
	KindUnion   = "union"
	KindCustom  = "custom"
)

// AdditionalMode is an object schema's policy for input keys that match no
// declared field and no pattern property.
type AdditionalMode int

const (
	// AdditionalAllowed passes unmatched keys through to the output unchanged.
	AdditionalAllowed AdditionalMode = iota
	// AdditionalForbidden reports an unexpected_field error per unmatched key.
	AdditionalForbidden
	// AdditionalTyped validates unmatched keys against a designated schema.
	AdditionalTyped
)

// Description is the introspection view of a node. Only the fields relevant
// to the node's Kind are populated.
type Description struct {
	Kind       string
	Optional   bool
	Nullable   bool
	HasDefault bool

	// Scalar constraints keyed by constraint name (min, max, pattern, ...).
	Constraints map[string]any

	// Literal value (KindLiteral).
	Literal any

	// Object shape (KindObject).
	Fields           []FieldDescription
	Patterns         []PatternDescription
	Additional       AdditionalMode
	AdditionalSchema *Description

	// Element schemas (KindList / KindTuple / KindDict).
	Items    *Description
	Elements []Description
	Rest     *Description
	Values   *Description

	// Branches and discriminator (KindUnion).
	Branches      []Description
	Discriminator string
}

// FieldDescription is one declared object field, in declaration order.
type FieldDescription struct {
	Name     string
	Required bool
	Schema   Description
}

// PatternDescription is one pattern property, in declaration order.
type PatternDescription struct {
	Pattern string
	Schema  Description
}

// schemaCore carries the modifiers shared by every node kind. Schemas embed
// it by value; cloning a schema struct clones the core, and the transforms
// slice is copied on append so clones never alias.
type schemaCore struct {
	optional   bool
	nullable   bool
	hasDefault bool
	defValue   any
	defFn      func() any
	message    string
	transforms []func(any) any
}

func (c schemaCore) withTransform(fn func(any) any) schemaCore {
	ts := make([]func(any) any, 0, len(c.transforms)+1)
	ts = append(ts, c.transforms...)
	c.transforms = append(ts, fn)
	return c
}

func (c schemaCore) applyTransforms(v any) any {
	for _, fn := range c.transforms {
		v = fn(v)
	}
	return v
}

// msg returns the node's custom message when one is registered, else the
// default text.
func (c schemaCore) msg(def string) string {
	if c.message != "" {
		return c.message
	}
	return def
}

func (c schemaCore) defaultFor() any {
	if c.defFn != nil {
		return c.defFn()
	}
	return c.defValue
}

func (c schemaCore) describeInto(d *Description) {
	// A defaulted field can never fail the presence check, so it reports as
	// optional.
	d.Optional = c.optional || c.hasDefault
	d.Nullable = c.nullable
	d.HasDefault = c.hasDefault
}

// finish converts a root resolution into the public (value, error) shape.
func finish(r resolution) (any, error) {
	if r.fatal != nil {
		return nil, r.fatal
	}
	if len(r.errs) > 0 {
		return nil, r.errs
	}
	return r.value, nil
}

// typeName names a decoded value's type for error messages.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "list"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// patternCache compiles a regular expression once, at first use. An invalid
// expression is a schema-authoring bug and panics with *SchemaError.
type patternCache struct {
	expr string
	once sync.Once
	re   *regexp.Regexp
	err  error
}

func (p *patternCache) get() *regexp.Regexp {
	p.once.Do(func() {
		p.re, p.err = regexp.Compile(p.expr)
	})
	if p.err != nil {
		panic(&SchemaError{
			Code:    CodeSchemaConstructionConflict,
			Message: fmt.Sprintf("invalid pattern %q: %v", p.expr, p.err),
		})
	}
	return p.re
}
