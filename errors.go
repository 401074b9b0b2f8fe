package vireo

import (
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

// Error codes (exported consts for IDE completion and type safety by convention)
const (
	CodeTypeMismatch              = "type_mismatch"
	CodeConstraintViolation       = "constraint_violation"
	CodeRequiredFieldMissing      = "required_field_missing"
	CodeUnexpectedField           = "unexpected_field"
	CodeUnknownDiscriminatorValue = "unknown_discriminator_value"
	CodeNoUnionBranchMatched      = "no_union_branch_matched"
	// Schema authoring errors (construction time, carried by *SchemaError)
	CodeSchemaConstructionConflict = "schema_construction_conflict"
	// Input decode errors (ParseJSON/ParseYAML boundary)
	CodeParseError = "parse_error"
)

// ValidationError represents a single validation entry.
type ValidationError struct {
	Path    Path   `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationErrorGroup is an ordered, exhaustive collection of validation
// errors from one Validate/ValidateAsync call. Entries appear in pre-order
// discovery order: a node's own errors before its children's, children in
// declaration order. It implements error.
type ValidationErrorGroup []ValidationError

// Error summarizes the first few entries.
func (g ValidationErrorGroup) Error() string {
	if len(g) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(g)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		e := g[i]
		// e.g. constraint_violation at /username
		fmt.Fprintf(b, "%s at %s", e.Code, e.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// MarshalJSON shapes the group as the adapter payload:
// {"errors":[{"path":[...],"code":"...","message":"..."}]}.
// This payload is the sole contract with framework adapters.
func (g ValidationErrorGroup) MarshalJSON() ([]byte, error) {
	type payload struct {
		Errors []ValidationError `json:"errors"`
	}
	errs := []ValidationError(g)
	if errs == nil {
		errs = []ValidationError{}
	}
	return json.Marshal(payload{Errors: errs})
}

// AppendErrors appends entries to the destination, initializing the slice when
// needed.
func AppendErrors(dst ValidationErrorGroup, more ...ValidationError) ValidationErrorGroup {
	if dst == nil {
		dst = ValidationErrorGroup{}
	}
	return append(dst, more...)
}

// AsGroup extracts a ValidationErrorGroup from an error using errors.As.
func AsGroup(err error) (ValidationErrorGroup, bool) {
	if err == nil {
		return nil, false
	}
	var g ValidationErrorGroup
	if errors.As(err, &g) {
		return g, true
	}
	return nil, false
}

// prefixErrors rebases child errors under a parent path segment. The child
// entries are copied; paths are never mutated in place.
func prefixErrors(errs ValidationErrorGroup, seg any) ValidationErrorGroup {
	out := make(ValidationErrorGroup, len(errs))
	for i, e := range errs {
		p := make(Path, 0, len(e.Path)+1)
		p = append(p, seg)
		p = append(p, e.Path...)
		e.Path = p
		out[i] = e
	}
	return out
}

// SchemaError signals a schema-authoring mistake detected at construction time
// (for example an Extend key collision). It is deliberately distinct from
// ValidationErrorGroup: it reports a bug in the schema, not bad input, and is
// raised as a panic by the chainable construction API.
type SchemaError struct {
	Code    string
	Keys    []string
	Message string
}

func (e *SchemaError) Error() string {
	if len(e.Keys) > 0 {
		return fmt.Sprintf("vireo: %s: %s (keys: %s)", e.Code, e.Message, strings.Join(e.Keys, ", "))
	}
	return fmt.Sprintf("vireo: %s: %s", e.Code, e.Message)
}
