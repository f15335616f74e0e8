package sqlbind

import (
	"fmt"
	"reflect"
	"strings"
)

// Condition is one node of the closed condition/expression variant set.
// Nodes are immutable once constructed and stateless with respect to
// rendering except for what they write into the Binder they are given.
//
// A nil Condition is the absent value: every accumulation point (Where,
// Having, And, Or, join conditions) silently drops it, which is how the *If
// factories turn optional inputs into dynamic filters without call-site
// branching.
type Condition interface {
	isCondition()
}

type comparison struct {
	col   ColumnRef
	op    Operator
	value any
}

type rangeCond struct {
	col    ColumnRef
	lo, hi any
	not    bool
}

type patternCond struct {
	col   ColumnRef
	value string
	not   bool
}

type membership struct {
	col    ColumnRef
	values []any
	not    bool
}

type nullCheck struct {
	col ColumnRef
	not bool
}

type columnCompare struct {
	left  ColumnRef
	op    Operator
	right ColumnRef
}

type subqueryCond struct {
	col  ColumnRef // nil for EXISTS / NOT EXISTS
	verb string    // "IN", "NOT IN", "EXISTS", "NOT EXISTS" or a comparison operator
	stmt *SelectStmt
}

type rawCond struct {
	text   string
	values []any
}

type group struct {
	logic Logic
	items []Condition
}

func (comparison) isCondition()    {}
func (rangeCond) isCondition()     {}
func (patternCond) isCondition()   {}
func (membership) isCondition()    {}
func (nullCheck) isCondition()     {}
func (columnCompare) isCondition() {}
func (subqueryCond) isCondition()  {}
func (rawCond) isCondition()       {}
func (group) isCondition()         {}

// mustValue rejects a nil value handed to a required factory.
func mustValue(v any) {
	if isNilValue(v) {
		panic(fmt.Errorf("%w (use the *If factory for optional input)", ErrNilValue))
	}
}

func isNilValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

// Comparison factories. The required forms reject a nil value; the *If forms
// return the absent condition for a nil pointer.

func (c Column[T]) Eq(v T) Condition { return c.compare(Eq, v) }
func (c Column[T]) Ne(v T) Condition { return c.compare(Ne, v) }
func (c Column[T]) Gt(v T) Condition { return c.compare(Gt, v) }
func (c Column[T]) Ge(v T) Condition { return c.compare(Ge, v) }
func (c Column[T]) Lt(v T) Condition { return c.compare(Lt, v) }
func (c Column[T]) Le(v T) Condition { return c.compare(Le, v) }

func (c Column[T]) EqIf(v *T) Condition { return c.compareIf(Eq, v) }
func (c Column[T]) NeIf(v *T) Condition { return c.compareIf(Ne, v) }
func (c Column[T]) GtIf(v *T) Condition { return c.compareIf(Gt, v) }
func (c Column[T]) GeIf(v *T) Condition { return c.compareIf(Ge, v) }
func (c Column[T]) LtIf(v *T) Condition { return c.compareIf(Lt, v) }
func (c Column[T]) LeIf(v *T) Condition { return c.compareIf(Le, v) }

func (c Column[T]) compare(op Operator, v T) Condition {
	mustValue(v)
	return comparison{col: c, op: op, value: v}
}

func (c Column[T]) compareIf(op Operator, v *T) Condition {
	if v == nil {
		return nil
	}
	return comparison{col: c, op: op, value: *v}
}

// Between requires both bounds non-nil. BetweenIf is absent when either
// bound is missing.

func (c Column[T]) Between(lo, hi T) Condition {
	mustValue(lo)
	mustValue(hi)
	return rangeCond{col: c, lo: lo, hi: hi}
}

func (c Column[T]) NotBetween(lo, hi T) Condition {
	mustValue(lo)
	mustValue(hi)
	return rangeCond{col: c, lo: lo, hi: hi, not: true}
}

func (c Column[T]) BetweenIf(lo, hi *T) Condition {
	if lo == nil || hi == nil {
		return nil
	}
	return rangeCond{col: c, lo: *lo, hi: *hi}
}

// Pattern matching. Contains, StartsWith and EndsWith are sugar that wrap
// the value in wildcards before it is bound; the wildcards therefore travel
// inside the parameter, never in statement text.

func (c Column[T]) Like(s string) Condition    { return patternCond{col: c, value: s} }
func (c Column[T]) NotLike(s string) Condition { return patternCond{col: c, value: s, not: true} }

func (c Column[T]) Contains(s string) Condition   { return c.Like("%" + s + "%") }
func (c Column[T]) StartsWith(s string) Condition { return c.Like(s + "%") }
func (c Column[T]) EndsWith(s string) Condition   { return c.Like("%" + s) }

func (c Column[T]) LikeIf(s *string) Condition {
	if s == nil {
		return nil
	}
	return c.Like(*s)
}

func (c Column[T]) ContainsIf(s *string) Condition {
	if s == nil {
		return nil
	}
	return c.Contains(*s)
}

func (c Column[T]) StartsWithIf(s *string) Condition {
	if s == nil {
		return nil
	}
	return c.StartsWith(*s)
}

func (c Column[T]) EndsWithIf(s *string) Condition {
	if s == nil {
		return nil
	}
	return c.EndsWith(*s)
}

// Set membership. An empty set is a construction fault, not an
// empty-result query; use InIf when the set is optional.

func (c Column[T]) In(vs ...T) Condition {
	cond, err := c.TryIn(vs...)
	if err != nil {
		panic(err)
	}
	return cond
}

func (c Column[T]) NotIn(vs ...T) Condition {
	cond, err := c.TryNotIn(vs...)
	if err != nil {
		panic(err)
	}
	return cond
}

// TryIn is the error-returning form of In.
func (c Column[T]) TryIn(vs ...T) (Condition, error) {
	if len(vs) == 0 {
		return nil, ErrEmptySet
	}
	return membership{col: c, values: anySlice(vs)}, nil
}

// TryNotIn is the error-returning form of NotIn.
func (c Column[T]) TryNotIn(vs ...T) (Condition, error) {
	if len(vs) == 0 {
		return nil, ErrEmptySet
	}
	return membership{col: c, values: anySlice(vs), not: true}, nil
}

// InIf is absent for a nil or empty set.
func (c Column[T]) InIf(vs []T) Condition {
	if len(vs) == 0 {
		return nil
	}
	return membership{col: c, values: anySlice(vs)}
}

// NotInIf is absent for a nil or empty set.
func (c Column[T]) NotInIf(vs []T) Condition {
	if len(vs) == 0 {
		return nil
	}
	return membership{col: c, values: anySlice(vs), not: true}
}

func anySlice[T any](vs []T) []any {
	out := make([]any, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out
}

// Null checks bind nothing.

func (c Column[T]) IsNull() Condition    { return nullCheck{col: c} }
func (c Column[T]) IsNotNull() Condition { return nullCheck{col: c, not: true} }

// Column-to-column comparisons, used in join and correlation conditions.
// No parameter is bound.

func (c Column[T]) EqCol(o ColumnRef) Condition { return columnCompare{left: c, op: Eq, right: o} }
func (c Column[T]) NeCol(o ColumnRef) Condition { return columnCompare{left: c, op: Ne, right: o} }
func (c Column[T]) GtCol(o ColumnRef) Condition { return columnCompare{left: c, op: Gt, right: o} }
func (c Column[T]) GeCol(o ColumnRef) Condition { return columnCompare{left: c, op: Ge, right: o} }
func (c Column[T]) LtCol(o ColumnRef) Condition { return columnCompare{left: c, op: Lt, right: o} }
func (c Column[T]) LeCol(o ColumnRef) Condition { return columnCompare{left: c, op: Le, right: o} }

// Correlated subqueries. The nested statement renders against the enclosing
// statement's Binder, so its parameters merge into the outer map with
// placeholder names that stay unique across the whole tree.

func (c Column[T]) InQuery(sub *SelectStmt) Condition {
	return subqueryCond{col: c, verb: "IN", stmt: sub}
}

func (c Column[T]) NotInQuery(sub *SelectStmt) Condition {
	return subqueryCond{col: c, verb: "NOT IN", stmt: sub}
}

// EqQuery compares the column against a scalar subquery.
func (c Column[T]) EqQuery(sub *SelectStmt) Condition {
	return subqueryCond{col: c, verb: string(Eq), stmt: sub}
}

func (c Column[T]) NeQuery(sub *SelectStmt) Condition {
	return subqueryCond{col: c, verb: string(Ne), stmt: sub}
}

func (c Column[T]) GtQuery(sub *SelectStmt) Condition {
	return subqueryCond{col: c, verb: string(Gt), stmt: sub}
}

func (c Column[T]) GeQuery(sub *SelectStmt) Condition {
	return subqueryCond{col: c, verb: string(Ge), stmt: sub}
}

func (c Column[T]) LtQuery(sub *SelectStmt) Condition {
	return subqueryCond{col: c, verb: string(Lt), stmt: sub}
}

func (c Column[T]) LeQuery(sub *SelectStmt) Condition {
	return subqueryCond{col: c, verb: string(Le), stmt: sub}
}

// Exists wraps a correlated subquery in EXISTS.
func Exists(sub *SelectStmt) Condition {
	return subqueryCond{verb: "EXISTS", stmt: sub}
}

// NotExists wraps a correlated subquery in NOT EXISTS.
func NotExists(sub *SelectStmt) Condition {
	return subqueryCond{verb: "NOT EXISTS", stmt: sub}
}

// Raw is the escape hatch for fragments the model cannot express. Each "?"
// marker in text is substituted left-to-right with a Binder-generated named
// placeholder at render time. The text is screened by the expression
// validator (with the markers masked) before it is accepted; it panics on
// unsafe text or a marker/value count mismatch.
func Raw(text string, values ...any) Condition {
	cond, err := TryRaw(text, values...)
	if err != nil {
		panic(err)
	}
	return cond
}

// TryRaw is the error-returning form of Raw.
func TryRaw(text string, values ...any) (Condition, error) {
	if err := validateRawText(text); err != nil {
		return nil, err
	}
	if n := strings.Count(text, "?"); n != len(values) {
		return nil, fmt.Errorf("sqlbind: raw text has %d markers but %d values", n, len(values))
	}
	return rawCond{text: text, values: values}, nil
}

// And combines conditions with AND. Absent entries are dropped first; a
// single survivor is returned unwrapped (no redundant parentheses) and zero
// survivors is a construction fault. Use AndIf when the whole composite may
// be absent.
func And(cs ...Condition) Condition {
	cond := AndIf(cs...)
	if cond == nil {
		panic(ErrNoConditions)
	}
	return cond
}

// Or combines conditions with OR, with the same absent-entry handling as And.
func Or(cs ...Condition) Condition {
	cond := OrIf(cs...)
	if cond == nil {
		panic(ErrNoConditions)
	}
	return cond
}

// AndIf is the if-any form of And: absent entries are filtered first and the
// result is absent when none remain.
func AndIf(cs ...Condition) Condition {
	return composite(LogicAnd, cs)
}

// OrIf is the if-any form of Or.
func OrIf(cs ...Condition) Condition {
	return composite(LogicOr, cs)
}

func composite(logic Logic, cs []Condition) Condition {
	present := make([]Condition, 0, len(cs))
	for _, c := range cs {
		if c != nil {
			present = append(present, c)
		}
	}
	switch len(present) {
	case 0:
		return nil
	case 1:
		return present[0]
	default:
		return group{logic: logic, items: present}
	}
}
