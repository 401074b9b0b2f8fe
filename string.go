package vireo

import (
	"context"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/vireo-go/vireo/i18n"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

// StringSchema validates string values. Lengths are counted in runes, not
// bytes. All modifiers return a new schema; the receiver is never mutated.
type StringSchema struct {
	core schemaCore

	minSet bool
	min    int
	maxSet bool
	max    int
	lenSet bool
	length int

	nonEmpty bool
	pattern  *patternCache
	email    bool
	urlFmt   bool
	uuidFmt  bool
	dateFmt  bool
	dtFmt    bool
}

// String returns a schema accepting string values.
func String() *StringSchema { return &StringSchema{} }

func (s *StringSchema) clone() *StringSchema { c := *s; return &c }

// Min requires at least n characters.
func (s *StringSchema) Min(n int) *StringSchema {
	c := s.clone()
	c.minSet, c.min = true, n
	return c
}

// Max allows at most n characters.
func (s *StringSchema) Max(n int) *StringSchema {
	c := s.clone()
	c.maxSet, c.max = true, n
	return c
}

// Length requires exactly n characters.
func (s *StringSchema) Length(n int) *StringSchema {
	c := s.clone()
	c.lenSet, c.length = true, n
	return c
}

// NonEmpty rejects the empty string.
func (s *StringSchema) NonEmpty() *StringSchema {
	c := s.clone()
	c.nonEmpty = true
	return c
}

// Pattern requires the value to match the regular expression. The expression
// is compiled lazily at first validation; an invalid expression panics with
// *SchemaError.
func (s *StringSchema) Pattern(expr string) *StringSchema {
	c := s.clone()
	c.pattern = &patternCache{expr: expr}
	return c
}

// Email requires an email-shaped value.
func (s *StringSchema) Email() *StringSchema {
	c := s.clone()
	c.email = true
	return c
}

// URL requires an absolute URL with a scheme and host.
func (s *StringSchema) URL() *StringSchema {
	c := s.clone()
	c.urlFmt = true
	return c
}

// UUID requires an RFC 4122 UUID.
func (s *StringSchema) UUID() *StringSchema {
	c := s.clone()
	c.uuidFmt = true
	return c
}

// Date requires a YYYY-MM-DD calendar date.
func (s *StringSchema) Date() *StringSchema {
	c := s.clone()
	c.dateFmt = true
	return c
}

// DateTime requires an ISO 8601 / RFC 3339 timestamp (the timezone offset may
// be omitted).
func (s *StringSchema) DateTime() *StringSchema {
	c := s.clone()
	c.dtFmt = true
	return c
}

// Trim strips surrounding whitespace after validation.
func (s *StringSchema) Trim() *StringSchema {
	return s.Transform(strings.TrimSpace)
}

// Lowercase lowercases the value after validation.
func (s *StringSchema) Lowercase() *StringSchema {
	return s.Transform(strings.ToLower)
}

// Uppercase uppercases the value after validation.
func (s *StringSchema) Uppercase() *StringSchema {
	return s.Transform(strings.ToUpper)
}

// Transform appends a post-validation transform. Transforms run in
// declaration order, only after every constraint has passed.
func (s *StringSchema) Transform(fn func(string) string) *StringSchema {
	c := s.clone()
	c.core = c.core.withTransform(func(v any) any { return fn(v.(string)) })
	return c
}

// Optional marks the value as allowed to be absent.
func (s *StringSchema) Optional() *StringSchema {
	c := s.clone()
	c.core.optional = true
	return c
}

// Nullable accepts explicit null as a valid value.
func (s *StringSchema) Nullable() *StringSchema {
	c := s.clone()
	c.core.nullable = true
	return c
}

// Default supplies a value for absent input. Defaults are trusted: constraint
// checks and transforms do not run against them.
func (s *StringSchema) Default(v string) *StringSchema {
	c := s.clone()
	c.core.hasDefault, c.core.defValue = true, v
	return c
}

// DefaultFunc supplies a producer called per validation for absent input.
func (s *StringSchema) DefaultFunc(fn func() string) *StringSchema {
	c := s.clone()
	c.core.hasDefault = true
	c.core.defFn = func() any { return fn() }
	return c
}

// Message replaces the text of this node's own failures. Error codes, paths,
// and child errors are unaffected.
func (s *StringSchema) Message(msg string) *StringSchema {
	c := s.clone()
	c.core.message = msg
	return c
}

func (s *StringSchema) Validate(ctx context.Context, v any) (any, error) {
	return finish(s.resolve(ctx, v, true, modeSync))
}

func (s *StringSchema) ValidateAsync(ctx context.Context, v any) (any, error) {
	return finish(s.resolve(ctx, v, true, modeAsync))
}

func (s *StringSchema) resolve(ctx context.Context, v any, present bool, _ execMode) resolution {
	return s.core.resolveValue(ctx, v, present, s.check)
}

func (s *StringSchema) check(_ context.Context, v any) (any, ValidationErrorGroup, error) {
	str, ok := v.(string)
	if !ok {
		return nil, ValidationErrorGroup{{
			Path:    Path{},
			Code:    CodeTypeMismatch,
			Message: i18n.T("string.type", map[string]string{"received": typeName(v)}),
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

	n := utf8.RuneCountInString(str)
	if s.nonEmpty && str == "" {
		add("string.empty", nil)
	}
	if s.minSet && n < s.min {
		add("string.min", map[string]string{"min": strconv.Itoa(s.min)})
	}
	if s.maxSet && n > s.max {
		add("string.max", map[string]string{"max": strconv.Itoa(s.max)})
	}
	if s.lenSet && n != s.length {
		add("string.length", map[string]string{"length": strconv.Itoa(s.length)})
	}
	if s.pattern != nil && !s.pattern.get().MatchString(str) {
		add("string.pattern", map[string]string{"pattern": s.pattern.expr})
	}
	if s.email && !emailPattern.MatchString(str) {
		add("string.email", nil)
	}
	if s.urlFmt {
		if u, err := url.ParseRequestURI(str); err != nil || u.Scheme == "" || u.Host == "" {
			add("string.url", nil)
		}
	}
	if s.uuidFmt {
		if _, err := uuid.Parse(str); err != nil {
			add("string.uuid", nil)
		}
	}
	if s.dateFmt {
		if _, err := time.Parse("2006-01-02", str); err != nil {
			add("string.date", nil)
		}
	}
	if s.dtFmt && !isDateTime(str) {
		add("string.datetime", nil)
	}

	if len(errs) > 0 {
		return nil, errs, nil
	}
	return str, nil, nil
}

func isDateTime(s string) bool {
	if _, err := time.Parse(time.RFC3339, s); err == nil {
		return true
	}
	_, err := time.Parse("2006-01-02T15:04:05", s)
	return err == nil
}

func (s *StringSchema) Describe() Description {
	d := Description{Kind: KindString, Constraints: map[string]any{}}
	s.core.describeInto(&d)
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
	if s.pattern != nil {
		d.Constraints["pattern"] = s.pattern.expr
	}
	if s.email {
		d.Constraints["format"] = "email"
	}
	if s.urlFmt {
		d.Constraints["format"] = "url"
	}
	if s.uuidFmt {
		d.Constraints["format"] = "uuid"
	}
	if s.dateFmt {
		d.Constraints["format"] = "date"
	}
	if s.dtFmt {
		d.Constraints["format"] = "date-time"
	}
	return d
}
