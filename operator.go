package sqlbind

// Operator is a comparison operator usable in conditions and column-to-column
// comparisons.
type Operator string

const (
	Eq Operator = "="
	Ne Operator = "<>"
	Gt Operator = ">"
	Ge Operator = ">="
	Lt Operator = "<"
	Le Operator = "<="
)

// Logic joins the members of a composite condition.
type Logic string

const (
	LogicAnd Logic = "AND"
	LogicOr  Logic = "OR"
)

// ArithOp is an arithmetic operator for SET-clause expressions.
type ArithOp string

const (
	Add ArithOp = "+"
	Sub ArithOp = "-"
	Mul ArithOp = "*"
	Div ArithOp = "/"
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// NullOrdering places NULLs explicitly within an ORDER BY term.
type NullOrdering string

const (
	NullsNone  NullOrdering = ""
	NullsFirst NullOrdering = "NULLS FIRST"
	NullsLast  NullOrdering = "NULLS LAST"
)

// JoinKind is the SQL join type.
type JoinKind string

const (
	innerJoin JoinKind = "JOIN"
	leftJoin  JoinKind = "LEFT JOIN"
	rightJoin JoinKind = "RIGHT JOIN"
	crossJoin JoinKind = "CROSS JOIN"
)

// LockMode is the row-locking clause appended to a SELECT.
type LockMode string

const (
	ForUpdate           LockMode = "FOR UPDATE"
	ForUpdateNoWait     LockMode = "FOR UPDATE NOWAIT"
	ForUpdateSkipLocked LockMode = "FOR UPDATE SKIP LOCKED"
	ForShare            LockMode = "FOR SHARE"
)

// SetOp combines SELECT statements into a chain.
type SetOp string

const (
	UnionOp     SetOp = "UNION"
	UnionAllOp  SetOp = "UNION ALL"
	ExceptOp    SetOp = "EXCEPT"
	IntersectOp SetOp = "INTERSECT"
)
