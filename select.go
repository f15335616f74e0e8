package sqlbind

import (
	"fmt"
	"strings"
)

// CTE is one entry of a WITH prologue: a name wrapping a caller-supplied
// statement. Fixed definitions are zero-argument functions returning a CTE;
// definitions that need call-site arguments are plain functions taking them.
// Either way the builder consumes the resulting value.
type CTE struct {
	name string
	stmt *SelectStmt
}

// NewCTE names a statement for a WITH prologue. The name is validated as an
// identifier; the body shares the enclosing statement's Binder at render.
func NewCTE(name string, stmt *SelectStmt) CTE {
	mustIdentifier(name)
	return CTE{name: name, stmt: stmt}
}

type projection struct {
	col      ColumnRef
	caseExpr *CaseExpr
	window   *WindowExpr
	sub      *SelectStmt
	raw      string
	subAlias string
}

type joinClause struct {
	kind  JoinKind
	table Table
	sub   *SelectStmt
	named string
	alias string
	on    []Condition
}

type orderTerm struct {
	col   ColumnRef
	expr  Condition
	raw   string
	dir   Direction
	nulls NullOrdering
}

type groupTerm struct {
	col ColumnRef
	raw string
}

type setMember struct {
	op   SetOp
	stmt *SelectStmt
}

// SelectStmt accumulates the clauses of one SELECT statement. Like every
// builder in the package it is single use: chain, Render once, discard.
type SelectStmt struct {
	err      error
	rendered bool

	dialect     Dialect
	ctes        []CTE
	projections []projection
	distinct    bool
	from        Table
	hasFrom     bool
	joins       []joinClause
	where       []Condition
	groupBy     []groupTerm
	having      []Condition
	ordering    []orderTerm
	limit       *int
	offset      *int
	lock        LockMode
	setOps      []setMember
}

// Select starts a SELECT statement with the given projection columns. An
// empty projection renders "*". Expressions join the projection through
// SelectCase, SelectWindow, SelectQuery and SelectRaw.
func Select(cols ...ColumnRef) *SelectStmt {
	s := &SelectStmt{dialect: Postgres}
	for _, c := range cols {
		s.projections = append(s.projections, projection{col: c})
	}
	return s
}

func (s *SelectStmt) fail(err error) *SelectStmt {
	if s.err == nil {
		s.err = err
	}
	return s
}

func (s *SelectStmt) mutable() bool {
	if s.err != nil {
		return false
	}
	if s.rendered {
		s.err = ErrRendered
		return false
	}
	return true
}

// Dialect selects the pagination strategy for this statement. The default
// is Postgres.
func (s *SelectStmt) Dialect(d Dialect) *SelectStmt {
	if s.mutable() {
		s.dialect = d
	}
	return s
}

// With prepends CTE entries, rendered as a comma-joined "name AS (body)"
// list. Bodies share this statement's Binder.
func (s *SelectStmt) With(ctes ...CTE) *SelectStmt {
	if s.mutable() {
		s.ctes = append(s.ctes, ctes...)
	}
	return s
}

// Distinct sets the DISTINCT flag.
func (s *SelectStmt) Distinct() *SelectStmt {
	if s.mutable() {
		s.distinct = true
	}
	return s
}

// Columns appends projection columns.
func (s *SelectStmt) Columns(cols ...ColumnRef) *SelectStmt {
	if s.mutable() {
		for _, c := range cols {
			s.projections = append(s.projections, projection{col: c})
		}
	}
	return s
}

// SelectCase appends a CASE expression to the projection.
func (s *SelectStmt) SelectCase(ce *CaseExpr) *SelectStmt {
	if s.mutable() {
		s.projections = append(s.projections, projection{caseExpr: ce})
	}
	return s
}

// SelectWindow appends an analytic expression to the projection.
func (s *SelectStmt) SelectWindow(w *WindowExpr) *SelectStmt {
	if s.mutable() {
		s.projections = append(s.projections, projection{window: w})
	}
	return s
}

// SelectQuery appends a scalar subquery to the projection under alias. The
// subquery shares this statement's Binder at render.
func (s *SelectStmt) SelectQuery(sub *SelectStmt, alias string) *SelectStmt {
	if !s.mutable() {
		return s
	}
	if err := ValidateIdentifier(alias); err != nil {
		return s.fail(fmt.Errorf("invalid subquery alias: %w", err))
	}
	s.projections = append(s.projections, projection{sub: sub, subAlias: alias})
	return s
}

// SelectRaw appends a free-form projection expression, screened by the
// expression validator.
func (s *SelectStmt) SelectRaw(expr string) *SelectStmt {
	if !s.mutable() {
		return s
	}
	if err := ValidateExpression(expr); err != nil {
		return s.fail(err)
	}
	s.projections = append(s.projections, projection{raw: expr})
	return s
}

// From sets the source relation.
func (s *SelectStmt) From(t Table) *SelectStmt {
	if s.mutable() {
		s.from = t
		s.hasFrom = true
	}
	return s
}

// Join adds an inner join with one or more conditions; absent conditions are
// dropped and at least one must survive.
func (s *SelectStmt) Join(t Table, on ...Condition) *SelectStmt {
	return s.addJoin(joinClause{kind: innerJoin, table: t, on: on})
}

// LeftJoin adds a left outer join.
func (s *SelectStmt) LeftJoin(t Table, on ...Condition) *SelectStmt {
	return s.addJoin(joinClause{kind: leftJoin, table: t, on: on})
}

// RightJoin adds a right outer join.
func (s *SelectStmt) RightJoin(t Table, on ...Condition) *SelectStmt {
	return s.addJoin(joinClause{kind: rightJoin, table: t, on: on})
}

// CrossJoin adds a cross join; it takes no condition.
func (s *SelectStmt) CrossJoin(t Table) *SelectStmt {
	return s.addJoin(joinClause{kind: crossJoin, table: t})
}

// JoinEq is the equi-join shorthand: an inner join on left = right.
func (s *SelectStmt) JoinEq(t Table, left, right ColumnRef) *SelectStmt {
	return s.addJoin(joinClause{
		kind:  innerJoin,
		table: t,
		on:    []Condition{columnCompare{left: left, op: Eq, right: right}},
	})
}

// JoinQuery joins a derived table: "JOIN (sub) alias ON ...". The nested
// statement shares this statement's Binder at render.
func (s *SelectStmt) JoinQuery(sub *SelectStmt, alias string, on ...Condition) *SelectStmt {
	if !s.mutable() {
		return s
	}
	if err := ValidateIdentifier(alias); err != nil {
		return s.fail(fmt.Errorf("invalid join alias: %w", err))
	}
	return s.addJoin(joinClause{kind: innerJoin, sub: sub, alias: alias, on: on})
}

// JoinNamed joins a named relation such as a CTE introduced by With.
func (s *SelectStmt) JoinNamed(name, alias string, on ...Condition) *SelectStmt {
	if !s.mutable() {
		return s
	}
	if err := ValidateIdentifier(name); err != nil {
		return s.fail(fmt.Errorf("invalid join target: %w", err))
	}
	if err := ValidateIdentifier(alias); err != nil {
		return s.fail(fmt.Errorf("invalid join alias: %w", err))
	}
	return s.addJoin(joinClause{kind: innerJoin, named: name, alias: alias, on: on})
}

func (s *SelectStmt) addJoin(j joinClause) *SelectStmt {
	if !s.mutable() {
		return s
	}
	j.on = present(j.on)
	if j.kind != crossJoin && len(j.on) == 0 {
		return s.fail(fmt.Errorf("sqlbind: %s requires at least one condition", j.kind))
	}
	if j.kind == crossJoin && len(j.on) > 0 {
		return s.fail(fmt.Errorf("sqlbind: CROSS JOIN cannot have a condition"))
	}
	s.joins = append(s.joins, j)
	return s
}

// Where accumulates filter conditions, joined with AND at render. Absent
// entries are dropped, so optional filters flow straight through.
func (s *SelectStmt) Where(conds ...Condition) *SelectStmt {
	if s.mutable() {
		s.where = append(s.where, present(conds)...)
	}
	return s
}

// GroupBy appends grouping columns.
func (s *SelectStmt) GroupBy(cols ...ColumnRef) *SelectStmt {
	if s.mutable() {
		for _, c := range cols {
			s.groupBy = append(s.groupBy, groupTerm{col: c})
		}
	}
	return s
}

// GroupByRaw appends a free-form grouping expression, screened by the
// expression validator.
func (s *SelectStmt) GroupByRaw(expr string) *SelectStmt {
	if !s.mutable() {
		return s
	}
	if err := ValidateExpression(expr); err != nil {
		return s.fail(err)
	}
	s.groupBy = append(s.groupBy, groupTerm{raw: expr})
	return s
}

// Having accumulates post-grouping conditions with the same absent-entry
// handling as Where.
func (s *SelectStmt) Having(conds ...Condition) *SelectStmt {
	if s.mutable() {
		s.having = append(s.having, present(conds)...)
	}
	return s
}

// OrderBy appends an ordering term.
func (s *SelectStmt) OrderBy(col ColumnRef, dir Direction) *SelectStmt {
	if s.mutable() {
		s.ordering = append(s.ordering, orderTerm{col: col, dir: dir})
	}
	return s
}

// OrderByNulls appends an ordering term with explicit null placement.
func (s *SelectStmt) OrderByNulls(col ColumnRef, dir Direction, nulls NullOrdering) *SelectStmt {
	if s.mutable() {
		s.ordering = append(s.ordering, orderTerm{col: col, dir: dir, nulls: nulls})
	}
	return s
}

// OrderByExpr orders by a CASE or analytic expression.
func (s *SelectStmt) OrderByExpr(expr Condition, dir Direction) *SelectStmt {
	if !s.mutable() {
		return s
	}
	if expr == nil {
		return s.fail(fmt.Errorf("sqlbind: ORDER BY expression is absent"))
	}
	s.ordering = append(s.ordering, orderTerm{expr: expr, dir: dir})
	return s
}

// OrderByRaw appends a free-form ordering expression, screened by the
// expression validator.
func (s *SelectStmt) OrderByRaw(expr string) *SelectStmt {
	if !s.mutable() {
		return s
	}
	if err := ValidateExpression(expr); err != nil {
		return s.fail(err)
	}
	s.ordering = append(s.ordering, orderTerm{raw: expr})
	return s
}

// Limit caps the row count; the fragment is produced by the statement's
// Dialect at render time.
func (s *SelectStmt) Limit(n int) *SelectStmt {
	if s.mutable() {
		s.limit = &n
	}
	return s
}

// Offset skips leading rows; resolved through the Dialect like Limit.
func (s *SelectStmt) Offset(n int) *SelectStmt {
	if s.mutable() {
		s.offset = &n
	}
	return s
}

// Lock appends a row-locking clause.
func (s *SelectStmt) Lock(mode LockMode) *SelectStmt {
	if s.mutable() {
		s.lock = mode
	}
	return s
}

// Union appends a set-operation member. Members render in order after the
// base statement and share its Binder.
func (s *SelectStmt) Union(other *SelectStmt) *SelectStmt {
	return s.addSetOp(UnionOp, other)
}

// UnionAll appends a UNION ALL member.
func (s *SelectStmt) UnionAll(other *SelectStmt) *SelectStmt {
	return s.addSetOp(UnionAllOp, other)
}

// Except appends an EXCEPT member.
func (s *SelectStmt) Except(other *SelectStmt) *SelectStmt {
	return s.addSetOp(ExceptOp, other)
}

// Intersect appends an INTERSECT member.
func (s *SelectStmt) Intersect(other *SelectStmt) *SelectStmt {
	return s.addSetOp(IntersectOp, other)
}

func (s *SelectStmt) addSetOp(op SetOp, other *SelectStmt) *SelectStmt {
	if s.mutable() {
		s.setOps = append(s.setOps, setMember{op: op, stmt: other})
	}
	return s
}

// Render produces the Result with a fresh Binder. The builder is consumed:
// any later mutation or second Render fails with ErrRendered.
func (s *SelectStmt) Render() (*Result, error) {
	b := NewBinder()
	var sb strings.Builder
	if err := s.renderInto(b, &sb); err != nil {
		return nil, err
	}
	return newResult(sb.String(), b), nil
}

// MustRender is Render panicking on error.
func (s *SelectStmt) MustRender() *Result {
	res, err := s.Render()
	if err != nil {
		panic(err)
	}
	return res
}

// renderInto writes the statement using an externally supplied Binder. The
// composition entry points (subqueries, CTE bodies, set members, nested
// sources) use it to thread one Binder through the whole tree.
func (s *SelectStmt) renderInto(b *Binder, sb *strings.Builder) error {
	if s.err != nil {
		return s.err
	}
	if s.rendered {
		return ErrRendered
	}
	s.rendered = true

	if !s.hasFrom {
		return fmt.Errorf("sqlbind: SELECT has no source; call From")
	}

	if len(s.ctes) > 0 {
		sb.WriteString("WITH ")
		for i, cte := range s.ctes {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(cte.name)
			sb.WriteString(" AS (")
			if err := cte.stmt.renderInto(b, sb); err != nil {
				return err
			}
			sb.WriteString(")")
		}
		sb.WriteString(" ")
	}

	if err := s.renderCore(b, sb); err != nil {
		return err
	}

	for _, member := range s.setOps {
		sb.WriteString(" ")
		sb.WriteString(string(member.op))
		sb.WriteString(" ")
		if err := member.stmt.renderInto(b, sb); err != nil {
			return err
		}
	}

	if len(s.ordering) > 0 {
		sb.WriteString(" ORDER BY ")
		for i, o := range s.ordering {
			if i > 0 {
				sb.WriteString(", ")
			}
			if err := renderOrderTerm(o, b, sb); err != nil {
				return err
			}
		}
	}

	if frag := paginationFragment(s.dialect, s.limit, s.offset); frag != "" {
		sb.WriteString(" ")
		sb.WriteString(frag)
	}

	if s.lock != "" {
		sb.WriteString(" ")
		sb.WriteString(string(s.lock))
	}

	return nil
}

func (s *SelectStmt) renderCore(b *Binder, sb *strings.Builder) error {
	sb.WriteString("SELECT ")
	if s.distinct {
		sb.WriteString("DISTINCT ")
	}

	if len(s.projections) == 0 {
		sb.WriteString("*")
	} else {
		for i, p := range s.projections {
			if i > 0 {
				sb.WriteString(", ")
			}
			if err := renderProjection(p, b, sb); err != nil {
				return err
			}
		}
	}

	sb.WriteString(" FROM ")
	sb.WriteString(s.from.Ref())

	for _, j := range s.joins {
		sb.WriteString(" ")
		sb.WriteString(string(j.kind))
		sb.WriteString(" ")
		switch {
		case j.sub != nil:
			sb.WriteString("(")
			if err := j.sub.renderInto(b, sb); err != nil {
				return err
			}
			sb.WriteString(") ")
			sb.WriteString(j.alias)
		case j.named != "":
			sb.WriteString(j.named)
			sb.WriteString(" ")
			sb.WriteString(j.alias)
		default:
			sb.WriteString(j.table.Ref())
		}
		if j.kind != crossJoin {
			sb.WriteString(" ON ")
			if err := renderConditions(j.on, b, sb); err != nil {
				return err
			}
		}
	}

	if len(s.where) > 0 {
		sb.WriteString(" WHERE ")
		if err := renderConditions(s.where, b, sb); err != nil {
			return err
		}
	}

	if len(s.groupBy) > 0 {
		sb.WriteString(" GROUP BY ")
		for i, g := range s.groupBy {
			if i > 0 {
				sb.WriteString(", ")
			}
			if g.col != nil {
				sb.WriteString(g.col.Qualified())
			} else {
				sb.WriteString(g.raw)
			}
		}
	}

	if len(s.having) > 0 {
		sb.WriteString(" HAVING ")
		if err := renderConditions(s.having, b, sb); err != nil {
			return err
		}
	}

	return nil
}

func renderProjection(p projection, b *Binder, sb *strings.Builder) error {
	switch {
	case p.col != nil:
		sb.WriteString(p.col.Qualified())
	case p.caseExpr != nil:
		if err := renderCase(p.caseExpr, b, sb); err != nil {
			return err
		}
		if p.caseExpr.alias != "" {
			sb.WriteString(" AS ")
			sb.WriteString(p.caseExpr.alias)
		}
	case p.window != nil:
		if err := renderWindow(p.window, b, sb); err != nil {
			return err
		}
		if p.window.alias != "" {
			sb.WriteString(" AS ")
			sb.WriteString(p.window.alias)
		}
	case p.sub != nil:
		sb.WriteString("(")
		if err := p.sub.renderInto(b, sb); err != nil {
			return err
		}
		sb.WriteString(") AS ")
		sb.WriteString(p.subAlias)
	default:
		sb.WriteString(p.raw)
	}
	return nil
}

func renderOrderTerm(o orderTerm, b *Binder, sb *strings.Builder) error {
	switch {
	case o.col != nil:
		sb.WriteString(o.col.Qualified())
	case o.expr != nil:
		if err := renderCondition(o.expr, b, sb); err != nil {
			return err
		}
	default:
		sb.WriteString(o.raw)
	}
	if o.dir != "" {
		sb.WriteString(" ")
		sb.WriteString(string(o.dir))
	}
	if o.nulls != NullsNone {
		sb.WriteString(" ")
		sb.WriteString(string(o.nulls))
	}
	return nil
}

func paginationFragment(d Dialect, limit, offset *int) string {
	switch {
	case limit != nil && offset != nil:
		return d.LimitOffset(*limit, *offset)
	case limit != nil:
		return d.Limit(*limit)
	case offset != nil:
		return d.Offset(*offset)
	default:
		return ""
	}
}

// present filters absent conditions out of a list.
func present(cs []Condition) []Condition {
	out := make([]Condition, 0, len(cs))
	for _, c := range cs {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}
