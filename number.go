package vireo

import (
	"context"
	"math"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/vireo-go/vireo/i18n"
)

// normalizeNumber coerces any numeric input into int64 or float64. Decoded
// JSON arrives as json.Number (ParseJSON enables UseNumber), YAML as int or
// float64, and programmatic callers may hand in any Go numeric kind. Returns
// false when the value is not numeric.
func normalizeNumber(v any) (any, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		if f, err := n.Float64(); err == nil {
			return f, true
		}
		return nil, false
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return nil, false
	}
}

func asFloat(v any) float64 {
	if i, ok := v.(int64); ok {
		return float64(i)
	}
	return v.(float64)
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// NumberSchema validates numeric values. Validated output is normalized to
// int64 for integer inputs and float64 otherwise.
type NumberSchema struct {
	core schemaCore

	minSet bool
	min    float64
	maxSet bool
	max    float64
	gtSet  bool
	gt     float64
	ltSet  bool
	lt     float64

	integer     bool
	positive    bool
	negative    bool
	nonNegative bool

	multipleSet bool
	multiple    float64
}

// Number returns a schema accepting numeric values.
func Number() *NumberSchema { return &NumberSchema{} }

func (s *NumberSchema) clone() *NumberSchema { c := *s; return &c }

// Min requires value >= n.
func (s *NumberSchema) Min(n float64) *NumberSchema {
	c := s.clone()
	c.minSet, c.min = true, n
	return c
}

// Max requires value <= n.
func (s *NumberSchema) Max(n float64) *NumberSchema {
	c := s.clone()
	c.maxSet, c.max = true, n
	return c
}

// Gt requires value > n.
func (s *NumberSchema) Gt(n float64) *NumberSchema {
	c := s.clone()
	c.gtSet, c.gt = true, n
	return c
}

// Lt requires value < n.
func (s *NumberSchema) Lt(n float64) *NumberSchema {
	c := s.clone()
	c.ltSet, c.lt = true, n
	return c
}

// Int requires an integral value (a whole-valued float is accepted).
func (s *NumberSchema) Int() *NumberSchema {
	c := s.clone()
	c.integer = true
	return c
}

// Positive requires value > 0.
func (s *NumberSchema) Positive() *NumberSchema {
	c := s.clone()
	c.positive = true
	return c
}

// Negative requires value < 0.
func (s *NumberSchema) Negative() *NumberSchema {
	c := s.clone()
	c.negative = true
	return c
}

// NonNegative requires value >= 0.
func (s *NumberSchema) NonNegative() *NumberSchema {
	c := s.clone()
	c.nonNegative = true
	return c
}

// MultipleOf requires the value to be an exact multiple of n.
func (s *NumberSchema) MultipleOf(n float64) *NumberSchema {
	c := s.clone()
	c.multipleSet, c.multiple = true, n
	return c
}

// Optional marks the value as allowed to be absent.
func (s *NumberSchema) Optional() *NumberSchema {
	c := s.clone()
	c.core.optional = true
	return c
}

// Nullable accepts explicit null as a valid value.
func (s *NumberSchema) Nullable() *NumberSchema {
	c := s.clone()
	c.core.nullable = true
	return c
}

// Default supplies a value for absent input. Defaults bypass constraint
// checks and transforms.
func (s *NumberSchema) Default(v float64) *NumberSchema {
	c := s.clone()
	c.core.hasDefault, c.core.defValue = true, v
	return c
}

// DefaultFunc supplies a producer called per validation for absent input.
func (s *NumberSchema) DefaultFunc(fn func() float64) *NumberSchema {
	c := s.clone()
	c.core.hasDefault = true
	c.core.defFn = func() any { return fn() }
	return c
}

// Transform appends a post-validation transform over the normalized value.
func (s *NumberSchema) Transform(fn func(any) any) *NumberSchema {
	c := s.clone()
	c.core = c.core.withTransform(fn)
	return c
}

// Message replaces the text of this node's own failures.
func (s *NumberSchema) Message(msg string) *NumberSchema {
	c := s.clone()
	c.core.message = msg
	return c
}

func (s *NumberSchema) Validate(ctx context.Context, v any) (any, error) {
	return finish(s.resolve(ctx, v, true, modeSync))
}

func (s *NumberSchema) ValidateAsync(ctx context.Context, v any) (any, error) {
	return finish(s.resolve(ctx, v, true, modeAsync))
}

func (s *NumberSchema) resolve(ctx context.Context, v any, present bool, _ execMode) resolution {
	return s.core.resolveValue(ctx, v, present, s.check)
}

func (s *NumberSchema) check(_ context.Context, v any) (any, ValidationErrorGroup, error) {
	norm, ok := normalizeNumber(v)
	if !ok {
		return nil, ValidationErrorGroup{{
			Path:    Path{},
			Code:    CodeTypeMismatch,
			Message: i18n.T("number.type", map[string]string{"received": typeName(v)}),
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

	f := asFloat(norm)
	if s.integer {
		if _, isInt := norm.(int64); !isInt && math.Trunc(f) != f {
			add("number.int", nil)
		}
	}
	if s.minSet && f < s.min {
		add("number.min", map[string]string{"min": formatNumber(s.min)})
	}
	if s.maxSet && f > s.max {
		add("number.max", map[string]string{"max": formatNumber(s.max)})
	}
	if s.gtSet && f <= s.gt {
		add("number.gt", map[string]string{"limit": formatNumber(s.gt)})
	}
	if s.ltSet && f >= s.lt {
		add("number.lt", map[string]string{"limit": formatNumber(s.lt)})
	}
	if s.positive && f <= 0 {
		add("number.positive", nil)
	}
	if s.negative && f >= 0 {
		add("number.negative", nil)
	}
	if s.nonNegative && f < 0 {
		add("number.nonnegative", nil)
	}
	if s.multipleSet {
		r := math.Abs(math.Mod(f, s.multiple))
		if r > 1e-9 && math.Abs(r-math.Abs(s.multiple)) > 1e-9 {
			add("number.multiple_of", map[string]string{"multiple": formatNumber(s.multiple)})
		}
	}

	if len(errs) > 0 {
		return nil, errs, nil
	}
	return norm, nil, nil
}

func (s *NumberSchema) Describe() Description {
	d := Description{Kind: KindNumber, Constraints: map[string]any{}}
	s.core.describeInto(&d)
	if s.minSet {
		d.Constraints["min"] = s.min
	}
	if s.maxSet {
		d.Constraints["max"] = s.max
	}
	if s.gtSet {
		d.Constraints["gt"] = s.gt
	}
	if s.ltSet {
		d.Constraints["lt"] = s.lt
	}
	if s.integer {
		d.Constraints["int"] = true
	}
	if s.positive {
		d.Constraints["positive"] = true
	}
	if s.negative {
		d.Constraints["negative"] = true
	}
	if s.nonNegative {
		d.Constraints["nonNegative"] = true
	}
	if s.multipleSet {
		d.Constraints["multipleOf"] = s.multiple
	}
	return d
}
