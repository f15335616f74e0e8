package sqlbind

import (
	"fmt"
	"strings"
)

type assignment struct {
	col      ColumnRef
	value    any
	null     bool
	sub      *SelectStmt
	caseExpr *CaseExpr
	// arithmetic: col = operand op value / other column
	arith    ArithOp
	arithVal any
	otherCol ColumnRef
	operand  ColumnRef
}

// UpdateStmt accumulates one UPDATE statement. Rendering without a filter is
// a fault unless AllRows was called; the guard exists because a filterless
// UPDATE is far more often a forgotten Where than an intent.
type UpdateStmt struct {
	err      error
	rendered bool

	table    Table
	assigns  []assignment
	where    []Condition
	allRows  bool
	template bool
	returns  []ColumnRef
}

// Update starts an UPDATE statement targeting t.
func Update(t Table) *UpdateStmt {
	return &UpdateStmt{table: t}
}

func (s *UpdateStmt) fail(err error) *UpdateStmt {
	if s.err == nil {
		s.err = err
	}
	return s
}

func (s *UpdateStmt) mutable() bool {
	if s.err != nil {
		return false
	}
	if s.rendered {
		s.err = ErrRendered
		return false
	}
	return true
}

// Set assigns a bound value to col. A nil value is rejected; use SetNull for
// an explicit NULL or SetIf for skip-when-absent.
func (s *UpdateStmt) Set(col ColumnRef, value any) *UpdateStmt {
	if !s.mutable() {
		return s
	}
	if isNilValue(value) {
		return s.fail(fmt.Errorf("%w (use SetNull or SetIf)", ErrNilValue))
	}
	s.assigns = append(s.assigns, assignment{col: col, value: value})
	return s
}

// SetNull assigns an explicit NULL to col.
func (s *UpdateStmt) SetNull(col ColumnRef) *UpdateStmt {
	if s.mutable() {
		s.assigns = append(s.assigns, assignment{col: col, null: true})
	}
	return s
}

// SetIf assigns a bound value when it is present and skips the column
// entirely when it is absent. "Skip" means the column keeps its stored
// value, which is the other half of the nil duality SetNull covers.
func (s *UpdateStmt) SetIf(col ColumnRef, value any) *UpdateStmt {
	if !s.mutable() {
		return s
	}
	if isNilValue(value) {
		return s
	}
	s.assigns = append(s.assigns, assignment{col: col, value: value})
	return s
}

// SetQuery assigns the result of a scalar subquery to col. The subquery
// shares this statement's Binder at render.
func (s *UpdateStmt) SetQuery(col ColumnRef, sub *SelectStmt) *UpdateStmt {
	if s.mutable() {
		s.assigns = append(s.assigns, assignment{col: col, sub: sub})
	}
	return s
}

// SetAdd renders col = col + :value.
func (s *UpdateStmt) SetAdd(col ColumnRef, value any) *UpdateStmt {
	return s.setArith(col, Add, value)
}

// SetSub renders col = col - :value.
func (s *UpdateStmt) SetSub(col ColumnRef, value any) *UpdateStmt {
	return s.setArith(col, Sub, value)
}

func (s *UpdateStmt) setArith(col ColumnRef, op ArithOp, value any) *UpdateStmt {
	if !s.mutable() {
		return s
	}
	if isNilValue(value) {
		return s.fail(ErrNilValue)
	}
	s.assigns = append(s.assigns, assignment{col: col, arith: op, arithVal: value, operand: col})
	return s
}

// SetExpr renders the column-to-column arithmetic col = left op right.
func (s *UpdateStmt) SetExpr(col ColumnRef, left ColumnRef, op ArithOp, right ColumnRef) *UpdateStmt {
	if s.mutable() {
		s.assigns = append(s.assigns, assignment{col: col, arith: op, operand: left, otherCol: right})
	}
	return s
}

// SetCase assigns a CASE expression to col.
func (s *UpdateStmt) SetCase(col ColumnRef, ce *CaseExpr) *UpdateStmt {
	if s.mutable() {
		s.assigns = append(s.assigns, assignment{col: col, caseExpr: ce})
	}
	return s
}

// Where accumulates filter conditions joined with AND; absent entries are
// dropped.
func (s *UpdateStmt) Where(conds ...Condition) *UpdateStmt {
	if s.mutable() {
		s.where = append(s.where, present(conds)...)
	}
	return s
}

// AllRows is the explicit escape hatch allowing a filterless UPDATE.
func (s *UpdateStmt) AllRows() *UpdateStmt {
	if s.mutable() {
		s.allRows = true
	}
	return s
}

// Template switches to template mode: assignments render bare :column
// placeholders and the Result carries no values.
func (s *UpdateStmt) Template() *UpdateStmt {
	if s.mutable() {
		s.template = true
	}
	return s
}

// Returning appends a RETURNING clause with bare column names.
func (s *UpdateStmt) Returning(cols ...ColumnRef) *UpdateStmt {
	if s.mutable() {
		s.returns = append(s.returns, cols...)
	}
	return s
}

// Render produces the Result. The builder is consumed.
func (s *UpdateStmt) Render() (*Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.rendered {
		return nil, ErrRendered
	}
	s.rendered = true

	if len(s.assigns) == 0 {
		return nil, fmt.Errorf("sqlbind: UPDATE has no assignments")
	}
	if len(s.where) == 0 && !s.allRows {
		return nil, ErrNoFilter
	}

	b := NewBinder()
	if s.template {
		b = newTemplateBinder()
	}

	var sb strings.Builder
	sb.WriteString("UPDATE ")
	sb.WriteString(s.table.Ref())
	sb.WriteString(" SET ")
	for i, a := range s.assigns {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.col.ColumnName())
		sb.WriteString(" = ")
		if err := renderAssignment(a, b, &sb); err != nil {
			return nil, err
		}
	}

	if len(s.where) > 0 {
		sb.WriteString(" WHERE ")
		if err := renderConditions(s.where, b, &sb); err != nil {
			return nil, err
		}
	}

	if len(s.returns) > 0 {
		sb.WriteString(" RETURNING ")
		for i, c := range s.returns {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(c.ColumnName())
		}
	}

	return newResult(sb.String(), b), nil
}

// MustRender is Render panicking on error.
func (s *UpdateStmt) MustRender() *Result {
	res, err := s.Render()
	if err != nil {
		panic(err)
	}
	return res
}

func renderAssignment(a assignment, b *Binder, sb *strings.Builder) error {
	switch {
	case a.null:
		sb.WriteString("NULL")
	case a.sub != nil:
		sb.WriteString("(")
		if err := a.sub.renderInto(b, sb); err != nil {
			return err
		}
		sb.WriteString(")")
	case a.caseExpr != nil:
		return renderCase(a.caseExpr, b, sb)
	case a.arith != "":
		sb.WriteString(a.operand.ColumnName())
		sb.WriteString(" ")
		sb.WriteString(string(a.arith))
		sb.WriteString(" ")
		if a.otherCol != nil {
			sb.WriteString(a.otherCol.ColumnName())
		} else {
			sb.WriteString(b.Bind(a.arithVal, a.col.ColumnName()))
		}
	default:
		sb.WriteString(b.Bind(a.value, a.col.ColumnName()))
	}
	return nil
}
