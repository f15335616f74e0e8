package sqlbind

import (
	"fmt"
	"strings"
)

type mergeSet struct {
	col        ColumnRef
	value      any
	hasValue   bool
	caseExpr   *CaseExpr
	fromSource bool
}

// MergeStmt accumulates one ANSI MERGE statement: a target relation, a
// source (inline VALUES rows or a subquery), key columns joining the two,
// and at least one matched or not-matched action.
type MergeStmt struct {
	err      error
	rendered bool

	target   Table
	srcCols  []ColumnRef
	srcRows  [][]any
	srcQuery *SelectStmt
	srcAlias string

	keys []ColumnRef

	matchedSets   []mergeSet
	matchedDelete bool
	insertCols    []ColumnRef
}

// Merge starts a MERGE statement targeting t.
func Merge(t Table) *MergeStmt {
	return &MergeStmt{target: t, srcAlias: "src"}
}

func (s *MergeStmt) fail(err error) *MergeStmt {
	if s.err == nil {
		s.err = err
	}
	return s
}

func (s *MergeStmt) mutable() bool {
	if s.err != nil {
		return false
	}
	if s.rendered {
		s.err = ErrRendered
		return false
	}
	return true
}

// Source supplies an inline VALUES source: a column list and one or more
// rows. Row widths must match the column list.
func (s *MergeStmt) Source(cols []ColumnRef, rows ...[]any) *MergeStmt {
	if !s.mutable() {
		return s
	}
	if s.srcQuery != nil {
		return s.fail(fmt.Errorf("sqlbind: MERGE already has a query source"))
	}
	s.srcCols = cols
	s.srcRows = append(s.srcRows, rows...)
	return s
}

// SourceQuery supplies a subquery source under alias. The subquery shares
// this statement's Binder at render.
func (s *MergeStmt) SourceQuery(sub *SelectStmt, alias string) *MergeStmt {
	if !s.mutable() {
		return s
	}
	if len(s.srcRows) > 0 {
		return s.fail(fmt.Errorf("sqlbind: MERGE already has a VALUES source"))
	}
	if err := ValidateIdentifier(alias); err != nil {
		return s.fail(fmt.Errorf("invalid source alias: %w", err))
	}
	s.srcQuery = sub
	s.srcAlias = alias
	return s
}

// On declares the key columns; each renders as target.key = source.key.
func (s *MergeStmt) On(keys ...ColumnRef) *MergeStmt {
	if s.mutable() {
		s.keys = append(s.keys, keys...)
	}
	return s
}

// WhenMatchedUpdate updates each named column from the source row.
func (s *MergeStmt) WhenMatchedUpdate(cols ...ColumnRef) *MergeStmt {
	if s.mutable() {
		for _, c := range cols {
			s.matchedSets = append(s.matchedSets, mergeSet{col: c, fromSource: true})
		}
	}
	return s
}

// WhenMatchedSet updates col to a bound value on match.
func (s *MergeStmt) WhenMatchedSet(col ColumnRef, value any) *MergeStmt {
	if !s.mutable() {
		return s
	}
	if isNilValue(value) {
		return s.fail(ErrNilValue)
	}
	s.matchedSets = append(s.matchedSets, mergeSet{col: col, value: value, hasValue: true})
	return s
}

// WhenMatchedSetCase updates col to a CASE expression on match.
func (s *MergeStmt) WhenMatchedSetCase(col ColumnRef, ce *CaseExpr) *MergeStmt {
	if s.mutable() {
		s.matchedSets = append(s.matchedSets, mergeSet{col: col, caseExpr: ce})
	}
	return s
}

// WhenMatchedDelete deletes the target row on match. It cannot be combined
// with matched updates.
func (s *MergeStmt) WhenMatchedDelete() *MergeStmt {
	if s.mutable() {
		s.matchedDelete = true
	}
	return s
}

// WhenNotMatchedInsert inserts the named columns from the source row when no
// target row matches.
func (s *MergeStmt) WhenNotMatchedInsert(cols ...ColumnRef) *MergeStmt {
	if s.mutable() {
		s.insertCols = append(s.insertCols, cols...)
	}
	return s
}

// Render produces the Result. The builder is consumed.
func (s *MergeStmt) Render() (*Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.rendered {
		return nil, ErrRendered
	}
	s.rendered = true

	if s.srcQuery == nil && len(s.srcRows) == 0 {
		return nil, fmt.Errorf("sqlbind: MERGE has no source")
	}
	if len(s.keys) == 0 {
		return nil, fmt.Errorf("sqlbind: MERGE has no key columns; call On")
	}
	if len(s.matchedSets) == 0 && !s.matchedDelete && len(s.insertCols) == 0 {
		return nil, fmt.Errorf("sqlbind: MERGE has no actions")
	}
	if len(s.matchedSets) > 0 && s.matchedDelete {
		return nil, fmt.Errorf("sqlbind: MERGE cannot both update and delete on match")
	}

	b := NewBinder()
	var sb strings.Builder
	sb.WriteString("MERGE INTO ")
	sb.WriteString(s.target.Ref())
	sb.WriteString(" USING ")

	if s.srcQuery != nil {
		sb.WriteString("(")
		if err := s.srcQuery.renderInto(b, &sb); err != nil {
			return nil, err
		}
		sb.WriteString(") AS ")
		sb.WriteString(s.srcAlias)
	} else {
		sb.WriteString("(VALUES ")
		for ri, row := range s.srcRows {
			if len(row) != len(s.srcCols) {
				return nil, fmt.Errorf("sqlbind: source row %d has %d values for %d columns", ri+1, len(row), len(s.srcCols))
			}
			if ri > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("(")
			for ci, v := range row {
				if ci > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(b.Bind(v, s.srcCols[ci].ColumnName()))
			}
			sb.WriteString(")")
		}
		sb.WriteString(") AS ")
		sb.WriteString(s.srcAlias)
		sb.WriteString(" (")
		for i, c := range s.srcCols {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(c.ColumnName())
		}
		sb.WriteString(")")
	}

	sb.WriteString(" ON ")
	for i, k := range s.keys {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		sb.WriteString(s.targetQualified(k))
		sb.WriteString(" = ")
		sb.WriteString(s.srcAlias)
		sb.WriteString(".")
		sb.WriteString(k.ColumnName())
	}

	if s.matchedDelete {
		sb.WriteString(" WHEN MATCHED THEN DELETE")
	} else if len(s.matchedSets) > 0 {
		sb.WriteString(" WHEN MATCHED THEN UPDATE SET ")
		for i, m := range s.matchedSets {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(m.col.ColumnName())
			sb.WriteString(" = ")
			switch {
			case m.fromSource:
				sb.WriteString(s.srcAlias)
				sb.WriteString(".")
				sb.WriteString(m.col.ColumnName())
			case m.caseExpr != nil:
				if err := renderCase(m.caseExpr, b, &sb); err != nil {
					return nil, err
				}
			case m.hasValue:
				sb.WriteString(b.Bind(m.value, m.col.ColumnName()))
			}
		}
	}

	if len(s.insertCols) > 0 {
		sb.WriteString(" WHEN NOT MATCHED THEN INSERT (")
		for i, c := range s.insertCols {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(c.ColumnName())
		}
		sb.WriteString(") VALUES (")
		for i, c := range s.insertCols {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(s.srcAlias)
			sb.WriteString(".")
			sb.WriteString(c.ColumnName())
		}
		sb.WriteString(")")
	}

	return newResult(sb.String(), b), nil
}

// MustRender is Render panicking on error.
func (s *MergeStmt) MustRender() *Result {
	res, err := s.Render()
	if err != nil {
		panic(err)
	}
	return res
}

func (s *MergeStmt) targetQualified(c ColumnRef) string {
	return s.target.qualifier() + "." + c.ColumnName()
}
