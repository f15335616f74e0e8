package sqlbind

import (
	"fmt"
	"strings"
)

type insertValue struct {
	value   any
	literal string
	isLit   bool
}

// InsertStmt accumulates one INSERT statement: either explicit rows through
// Columns/Row, column-value pairs through Set, or a SELECT source through
// FromSelect. Single use like every builder.
type InsertStmt struct {
	err      error
	rendered bool

	table    Table
	columns  []ColumnRef
	rows     [][]insertValue
	pairRow  []insertValue
	source   *SelectStmt
	template bool
	returns  []ColumnRef
}

// InsertInto starts an INSERT statement targeting t. Any alias on t is
// ignored; the target renders as the bare relation name.
func InsertInto(t Table) *InsertStmt {
	return &InsertStmt{table: t}
}

func (s *InsertStmt) fail(err error) *InsertStmt {
	if s.err == nil {
		s.err = err
	}
	return s
}

func (s *InsertStmt) mutable() bool {
	if s.err != nil {
		return false
	}
	if s.rendered {
		s.err = ErrRendered
		return false
	}
	return true
}

// Columns declares the column list for Row-based inserts.
func (s *InsertStmt) Columns(cols ...ColumnRef) *InsertStmt {
	if s.mutable() {
		s.columns = append(s.columns, cols...)
	}
	return s
}

// Row appends one row of values. The width must match the declared columns;
// the mismatch is reported at render.
func (s *InsertStmt) Row(values ...any) *InsertStmt {
	if !s.mutable() {
		return s
	}
	if len(s.pairRow) > 0 {
		return s.fail(fmt.Errorf("sqlbind: cannot mix Row with Set"))
	}
	row := make([]insertValue, len(values))
	for i, v := range values {
		row[i] = insertValue{value: v}
	}
	s.rows = append(s.rows, row)
	return s
}

// Set appends one column-value pair; pairs form a single row. Set cannot be
// mixed with Columns/Row.
func (s *InsertStmt) Set(col ColumnRef, value any) *InsertStmt {
	if !s.mutable() {
		return s
	}
	if len(s.rows) > 0 {
		return s.fail(fmt.Errorf("sqlbind: cannot mix Set with Row"))
	}
	s.columns = append(s.columns, col)
	s.pairRow = append(s.pairRow, insertValue{value: value})
	return s
}

// Literal appends a column whose value is a validated inline expression,
// such as a database-side function call.
func (s *InsertStmt) Literal(col ColumnRef, expr string) *InsertStmt {
	if !s.mutable() {
		return s
	}
	if err := ValidateExpression(expr); err != nil {
		return s.fail(err)
	}
	if len(s.rows) > 0 {
		return s.fail(fmt.Errorf("sqlbind: cannot mix Literal with Row"))
	}
	s.columns = append(s.columns, col)
	s.pairRow = append(s.pairRow, insertValue{literal: expr, isLit: true})
	return s
}

// FromSelect makes the statement an INSERT ... SELECT with the given target
// columns. The nested statement shares this statement's Binder at render.
func (s *InsertStmt) FromSelect(cols []ColumnRef, sub *SelectStmt) *InsertStmt {
	if !s.mutable() {
		return s
	}
	if len(s.columns) > 0 || len(s.rows) > 0 || len(s.pairRow) > 0 {
		return s.fail(fmt.Errorf("sqlbind: cannot mix FromSelect with explicit values"))
	}
	s.columns = append(s.columns, cols...)
	s.source = sub
	return s
}

// Template switches the statement to template mode: parameter positions
// render as bare :column placeholders, Literal expressions keep their fixed
// text, and the Result carries no values. Callers pair the text with an
// external parameter map.
func (s *InsertStmt) Template() *InsertStmt {
	if s.mutable() {
		s.template = true
	}
	return s
}

// Returning appends a RETURNING clause with bare column names.
func (s *InsertStmt) Returning(cols ...ColumnRef) *InsertStmt {
	if s.mutable() {
		s.returns = append(s.returns, cols...)
	}
	return s
}

// Render produces the Result with a fresh Binder, or a bare-placeholder
// template Binder in template mode. The builder is consumed.
func (s *InsertStmt) Render() (*Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.rendered {
		return nil, ErrRendered
	}
	s.rendered = true

	if len(s.columns) == 0 {
		return nil, fmt.Errorf("sqlbind: INSERT has no columns")
	}

	rows := s.rows
	if len(s.pairRow) > 0 {
		rows = [][]insertValue{s.pairRow}
	}
	if s.source == nil && len(rows) == 0 {
		if s.template {
			// Columns-only form: one bare placeholder per declared column.
			rows = [][]insertValue{make([]insertValue, len(s.columns))}
		} else {
			return nil, fmt.Errorf("sqlbind: INSERT has no rows")
		}
	}

	b := NewBinder()
	if s.template {
		if s.source != nil {
			return nil, fmt.Errorf("sqlbind: template mode cannot be combined with FromSelect")
		}
		if len(rows) > 1 {
			return nil, fmt.Errorf("sqlbind: template mode allows a single row")
		}
		b = newTemplateBinder()
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(s.table.name)
	sb.WriteString(" (")
	for i, c := range s.columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(c.ColumnName())
	}
	sb.WriteString(")")

	if s.source != nil {
		sb.WriteString(" ")
		if err := s.source.renderInto(b, &sb); err != nil {
			return nil, err
		}
	} else {
		sb.WriteString(" VALUES ")
		for ri, row := range rows {
			if len(row) != len(s.columns) {
				return nil, fmt.Errorf("sqlbind: row %d has %d values for %d columns", ri+1, len(row), len(s.columns))
			}
			if ri > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("(")
			for ci, v := range row {
				if ci > 0 {
					sb.WriteString(", ")
				}
				if v.isLit {
					sb.WriteString(v.literal)
				} else {
					sb.WriteString(b.Bind(v.value, s.columns[ci].ColumnName()))
				}
			}
			sb.WriteString(")")
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
func (s *InsertStmt) MustRender() *Result {
	res, err := s.Render()
	if err != nil {
		panic(err)
	}
	return res
}
