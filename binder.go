package sqlbind

import "strconv"

// Binder mints globally-unique placeholder names and records the values
// bound to them. One Binder covers one logical statement tree: the top-level
// builder creates it at render time and threads the same instance through
// every subquery, CTE body and set-operation member, so the monotonic
// counter guarantees uniqueness across the whole composed text.
//
// A Binder is not safe for concurrent use. The safety model is discipline,
// not locking: never share a Binder across concurrent builds.
type Binder struct {
	values map[string]any
	names  []string
	seq    int
	// template suppresses the counter suffix and value recording; used by
	// the Insert/Update template render for per-row reuse by a row writer.
	template bool
}

// NewBinder creates an empty Binder.
func NewBinder() *Binder {
	return &Binder{values: make(map[string]any)}
}

func newTemplateBinder() *Binder {
	return &Binder{values: make(map[string]any), template: true}
}

// Bind records value under a fresh counter-suffixed name derived from hint
// and returns the placeholder token, e.g. Bind("PENDING", "status") returns
// ":status_1". Hints that are not bare identifiers are reduced to one.
func (b *Binder) Bind(value any, hint string) string {
	hint = sanitizeHint(hint)
	if b.template {
		// Name-only placeholder; the row writer supplies values per row.
		return ":" + hint
	}
	b.seq++
	name := hint + "_" + strconv.Itoa(b.seq)
	b.names = append(b.names, name)
	b.values[name] = value
	return ":" + name
}

// Names returns the bound parameter names in insertion order.
func (b *Binder) Names() []string {
	out := make([]string, len(b.names))
	copy(out, b.names)
	return out
}

// Values returns a copy of the name-to-value map.
func (b *Binder) Values() map[string]any {
	out := make(map[string]any, len(b.values))
	for k, v := range b.values {
		out[k] = v
	}
	return out
}

// Len returns the number of bound parameters.
func (b *Binder) Len() int {
	return len(b.names)
}

// sanitizeHint reduces an arbitrary hint to a safe identifier. Column names
// arrive well-formed; anything else keeps only identifier characters and
// falls back to "p".
func sanitizeHint(hint string) string {
	var out []byte
	for i := 0; i < len(hint); i++ {
		ch := hint[i]
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') ||
			(ch >= '0' && ch <= '9') || ch == '_' {
			out = append(out, ch)
		}
	}
	if len(out) == 0 || (out[0] >= '0' && out[0] <= '9') {
		out = append([]byte{'p'}, out...)
	}
	return string(out)
}
