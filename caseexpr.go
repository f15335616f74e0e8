package sqlbind

// CaseExpr is a searched or simple CASE expression. It is itself a
// Condition, so it can sit in projection, filter, ordering or assignment
// position; each branch binds its result through the statement Binder.
type CaseExpr struct {
	operand ColumnRef // non-nil for the simple form
	whens   []caseWhen
	elseRes *caseResult
	alias   string
}

type caseWhen struct {
	cond    Condition // searched form
	operand any       // simple form comparand
	result  caseResult
}

type caseResult struct {
	col   ColumnRef
	value any
	isCol bool
}

func (*CaseExpr) isCondition() {}

// Case starts a searched CASE expression.
func Case() *CaseExpr {
	return &CaseExpr{}
}

// CaseOf starts a simple CASE expression comparing col against each When
// operand.
func CaseOf(col ColumnRef) *CaseExpr {
	return &CaseExpr{operand: col}
}

// When adds a searched branch: WHEN cond THEN :result. Absent conditions are
// dropped like everywhere else.
func (ce *CaseExpr) When(cond Condition, result any) *CaseExpr {
	if cond == nil {
		return ce
	}
	ce.whens = append(ce.whens, caseWhen{cond: cond, result: caseResult{value: result}})
	return ce
}

// WhenCol is When with a column result instead of a bound value.
func (ce *CaseExpr) WhenCol(cond Condition, result ColumnRef) *CaseExpr {
	if cond == nil {
		return ce
	}
	ce.whens = append(ce.whens, caseWhen{cond: cond, result: caseResult{col: result, isCol: true}})
	return ce
}

// WhenValue adds a simple-form branch: WHEN :operand THEN :result. Only
// valid on a CaseOf expression.
func (ce *CaseExpr) WhenValue(operand, result any) *CaseExpr {
	ce.whens = append(ce.whens, caseWhen{operand: operand, result: caseResult{value: result}})
	return ce
}

// Else sets the ELSE result as a bound value.
func (ce *CaseExpr) Else(result any) *CaseExpr {
	ce.elseRes = &caseResult{value: result}
	return ce
}

// ElseCol sets the ELSE result to a column.
func (ce *CaseExpr) ElseCol(result ColumnRef) *CaseExpr {
	ce.elseRes = &caseResult{col: result, isCol: true}
	return ce
}

// As sets the projection alias. Ignored outside projection position.
func (ce *CaseExpr) As(alias string) *CaseExpr {
	mustIdentifier(alias)
	ce.alias = alias
	return ce
}
