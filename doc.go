// Package sqlbind builds parameterized SQL statements from a typed,
// composable model instead of string concatenation.
//
// Two guarantees hold for every statement the package produces:
//
//  1. Every caller-supplied value is bound through a named placeholder
//     (":hint_N") minted by a Binder. Values never appear in statement text.
//  2. Every raw text fragment a caller injects (raw conditions, free-form
//     select expressions, CTE names, join targets) is screened against an
//     injection blocklist before it is concatenated.
//
// A statement is assembled with a fluent builder, rendered exactly once, and
// returned as an immutable Result holding the text and an insertion-ordered
// parameter map:
//
//	orders := sqlbind.T("orders", "o")
//	status := sqlbind.Col[string](orders, "status")
//	amount := sqlbind.Col[int](orders, "amount")
//
//	res, err := sqlbind.Select(status, amount).
//		From(orders).
//		Where(status.Eq("PENDING"), amount.Ge(100)).
//		Render()
//
// Builders are single use: construct, chain, render once, discard. A Binder
// is created fresh for every top-level render and is shared only by the
// subqueries, CTE bodies and set-operation members composed into that one
// statement, which keeps placeholder names unique across the whole tree.
// Neither builders nor Binders are safe for concurrent use; statement
// producers must construct fresh state on every invocation.
//
// The package only ever produces (text, parameters) pairs. Execution,
// pooling, transactions and row scanning belong to the caller; the exec
// subpackage offers a thin bridge for the common cases.
package sqlbind
