package sqlbind

// WindowExpr is an analytic function with its OVER clause: function plus
// arguments, PARTITION BY, ORDER BY and an optional frame. Like CaseExpr it
// is a Condition, so it can appear in projection, filter or ordering
// position. Column arguments render as references; anything else is bound
// through the Binder.
type WindowExpr struct {
	fn        string
	args      []any
	partition []ColumnRef
	ordering  []orderTerm
	frame     string
	alias     string
}

func (*WindowExpr) isCondition() {}

// Over starts an analytic expression, e.g. Over("ROW_NUMBER") or
// Over("SUM", amount). The function name must be a bare identifier.
func Over(fn string, args ...any) *WindowExpr {
	mustIdentifier(fn)
	return &WindowExpr{fn: fn, args: args}
}

// PartitionBy adds partitioning columns.
func (w *WindowExpr) PartitionBy(cols ...ColumnRef) *WindowExpr {
	w.partition = append(w.partition, cols...)
	return w
}

// OrderBy adds an ordering term inside the OVER clause.
func (w *WindowExpr) OrderBy(col ColumnRef, dir Direction) *WindowExpr {
	w.ordering = append(w.ordering, orderTerm{col: col, dir: dir})
	return w
}

// Frame sets the frame clause verbatim, e.g. "ROWS BETWEEN 1 PRECEDING AND
// CURRENT ROW". The text is screened by the expression validator.
func (w *WindowExpr) Frame(text string) *WindowExpr {
	mustExpression(text)
	w.frame = text
	return w
}

// As sets the projection alias.
func (w *WindowExpr) As(alias string) *WindowExpr {
	mustIdentifier(alias)
	w.alias = alias
	return w
}
