package sqlbind

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Result is an immutable rendered statement: text plus an insertion-ordered
// named parameter map. It is produced only by a builder's terminal Render
// and never mutated afterward.
type Result struct {
	text   string
	names  []string
	values map[string]any
}

func newResult(text string, b *Binder) *Result {
	return &Result{text: text, names: b.Names(), values: b.Values()}
}

// Text returns the statement text with named placeholders.
func (r *Result) Text() string { return r.text }

// ParamNames returns the bound parameter names in insertion order.
func (r *Result) ParamNames() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Params returns a copy of the name-to-value map.
func (r *Result) Params() map[string]any {
	out := make(map[string]any, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// Marker selects the positional placeholder style for Positional.
type Marker int

const (
	// Question renders "?" (database/sql drivers, MySQL, SQLite).
	Question Marker = iota
	// Dollar renders "$1".. ($N reused per name; pgx, PostgreSQL).
	Dollar
	// AtName renders "@p1".. (@pN reused per name; go-mssqldb).
	AtName
)

// placeholderPattern matches a named placeholder token. A "::" cast escapes
// the match by consuming the colon pair first.
var placeholderPattern = regexp.MustCompile(`::|:([A-Za-z_][A-Za-z0-9_]*)`)

// Positional converts the statement to positional form: each named
// placeholder becomes a positional marker in first-occurrence order and the
// returned value slice matches text occurrence order. With the Question
// style a repeated name repeats its value; the numbered styles reuse the
// first index.
func (r *Result) Positional(m Marker) (string, []any) {
	index := make(map[string]int)
	var values []any

	text := placeholderPattern.ReplaceAllStringFunc(r.text, func(tok string) string {
		if tok == "::" {
			return tok
		}
		name := tok[1:]
		v, ok := r.values[name]
		if !ok {
			// Leave unknown tokens alone; Verify reports them.
			return tok
		}
		switch m {
		case Question:
			values = append(values, v)
			return "?"
		default:
			n, seen := index[name]
			if !seen {
				values = append(values, v)
				n = len(values)
				index[name] = n
			}
			if m == Dollar {
				return "$" + strconv.Itoa(n)
			}
			return "@p" + strconv.Itoa(n)
		}
	})

	return text, values
}

// PositionalNames converts the text the way Positional does but returns the
// placeholder name behind each argument position instead of bound values.
// Every placeholder token counts, bound or not, which makes it the
// conversion for template statements: callers supply a value per name at
// execution time. With the Question style a repeated name occupies one
// position per occurrence; the numbered styles reuse the first index.
func (r *Result) PositionalNames(m Marker) (string, []string) {
	index := make(map[string]int)
	var names []string

	text := placeholderPattern.ReplaceAllStringFunc(r.text, func(tok string) string {
		if tok == "::" {
			return tok
		}
		name := tok[1:]
		switch m {
		case Question:
			names = append(names, name)
			return "?"
		default:
			n, seen := index[name]
			if !seen {
				names = append(names, name)
				n = len(names)
				index[name] = n
			}
			if m == Dollar {
				return "$" + strconv.Itoa(n)
			}
			return "@p" + strconv.Itoa(n)
		}
	})

	return text, names
}

// Verify scans the text for every placeholder token and fails if any lacks a
// bound value. It is an opt-in pre-execution check for construction bugs
// that only surface after full tree traversal.
func (r *Result) Verify() error {
	var missing []string
	for _, match := range placeholderPattern.FindAllString(r.text, -1) {
		if match == "::" {
			continue
		}
		name := match[1:]
		if _, ok := r.values[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrUnboundPlaceholder, strings.Join(missing, ", "))
	}
	return nil
}

// Debug returns the statement with bound values inlined as literals. The
// output is informational only and must never be executed; the quoting here
// does not defend against injection.
func (r *Result) Debug() string {
	return placeholderPattern.ReplaceAllStringFunc(r.text, func(tok string) string {
		if tok == "::" {
			return tok
		}
		v, ok := r.values[tok[1:]]
		if !ok {
			return tok
		}
		return debugLiteral(v)
	})
}

func debugLiteral(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case string:
		return "'" + strings.ReplaceAll(x, "'", "''") + "'"
	case []byte:
		return "'" + strings.ReplaceAll(string(x), "'", "''") + "'"
	default:
		return fmt.Sprintf("%v", v)
	}
}
