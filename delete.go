package sqlbind

import (
	"strings"
)

// DeleteStmt accumulates one DELETE statement, with the same filter guard
// as UpdateStmt: no Where and no AllRows is a render fault.
type DeleteStmt struct {
	err      error
	rendered bool

	table   Table
	where   []Condition
	allRows bool
	returns []ColumnRef
}

// DeleteFrom starts a DELETE statement targeting t.
func DeleteFrom(t Table) *DeleteStmt {
	return &DeleteStmt{table: t}
}

func (s *DeleteStmt) mutable() bool {
	if s.err != nil {
		return false
	}
	if s.rendered {
		s.err = ErrRendered
		return false
	}
	return true
}

// Where accumulates filter conditions joined with AND; absent entries are
// dropped.
func (s *DeleteStmt) Where(conds ...Condition) *DeleteStmt {
	if s.mutable() {
		s.where = append(s.where, present(conds)...)
	}
	return s
}

// AllRows is the explicit escape hatch allowing a filterless DELETE.
func (s *DeleteStmt) AllRows() *DeleteStmt {
	if s.mutable() {
		s.allRows = true
	}
	return s
}

// Returning appends a RETURNING clause with bare column names.
func (s *DeleteStmt) Returning(cols ...ColumnRef) *DeleteStmt {
	if s.mutable() {
		s.returns = append(s.returns, cols...)
	}
	return s
}

// Render produces the Result. A filterless statement under AllRows renders
// "DELETE FROM <relation>" with an empty parameter set.
func (s *DeleteStmt) Render() (*Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.rendered {
		return nil, ErrRendered
	}
	s.rendered = true

	if len(s.where) == 0 && !s.allRows {
		return nil, ErrNoFilter
	}

	b := NewBinder()
	var sb strings.Builder
	sb.WriteString("DELETE FROM ")
	sb.WriteString(s.table.Ref())

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
func (s *DeleteStmt) MustRender() *Result {
	res, err := s.Render()
	if err != nil {
		panic(err)
	}
	return res
}
