package vireo

import (
	"strconv"
	"strings"
)

// Path locates a value inside the input being validated. Segments are either
// string object keys or int list/tuple indices, root-first. Paths are treated
// as immutable: Field and Index always allocate a new backing array so that
// sibling subtrees can never observe each other's appends.
type Path []any

// Field returns a new path extended with an object key.
func (p Path) Field(name string) Path { return p.extend(name) }

// Index returns a new path extended with a list/tuple index.
func (p Path) Index(i int) Path { return p.extend(i) }

func (p Path) extend(seg any) Path {
	out := make(Path, 0, len(p)+1)
	out = append(out, p...)
	return append(out, seg)
}

// String renders the path in JSON Pointer style (for example: /items/2/price).
// The root path renders as "/".
func (p Path) String() string {
	if len(p) == 0 {
		return "/"
	}
	b := &strings.Builder{}
	for _, seg := range p {
		b.WriteByte('/')
		switch s := seg.(type) {
		case string:
			b.WriteString(s)
		case int:
			b.WriteString(strconv.Itoa(s))
		default:
			b.WriteString("?")
		}
	}
	return b.String()
}
