package sqlbind

import "fmt"

// Dialect maps pagination to the trailing syntax fragment of the target
// database. Builders pick a strategy per statement; everything else the
// package renders is portable SQL.
//
// A new dialect is added by implementing the three operations.
type Dialect interface {
	// Limit renders the fragment for a row cap without an offset.
	Limit(limit int) string
	// Offset renders the fragment for an offset without a row cap.
	Offset(offset int) string
	// LimitOffset renders the fragment for both.
	LimitOffset(limit, offset int) string
}

// Named dialect configurations. Postgres and SQLite accept identical
// LIMIT/OFFSET syntax and deliberately alias one implementation.
var (
	Postgres  Dialect = limitOffsetDialect{}
	SQLite    Dialect = limitOffsetDialect{}
	MySQL     Dialect = mysqlDialect{}
	SQLServer Dialect = sqlServerDialect{}
)

type limitOffsetDialect struct{}

func (limitOffsetDialect) Limit(limit int) string {
	return fmt.Sprintf("LIMIT %d", limit)
}

func (limitOffsetDialect) Offset(offset int) string {
	return fmt.Sprintf("OFFSET %d", offset)
}

func (limitOffsetDialect) LimitOffset(limit, offset int) string {
	return fmt.Sprintf("LIMIT %d OFFSET %d", limit, offset)
}

type mysqlDialect struct{}

func (mysqlDialect) Limit(limit int) string {
	return fmt.Sprintf("LIMIT %d", limit)
}

// Offset alone is not expressible in MySQL; the conventional huge row count
// stands in for "no limit".
func (mysqlDialect) Offset(offset int) string {
	return fmt.Sprintf("LIMIT %d, 18446744073709551615", offset)
}

func (mysqlDialect) LimitOffset(limit, offset int) string {
	return fmt.Sprintf("LIMIT %d, %d", offset, limit)
}

type sqlServerDialect struct{}

// SQL Server pagination requires an ORDER BY and always states the offset.
func (sqlServerDialect) Limit(limit int) string {
	return fmt.Sprintf("OFFSET 0 ROWS FETCH NEXT %d ROWS ONLY", limit)
}

func (sqlServerDialect) Offset(offset int) string {
	return fmt.Sprintf("OFFSET %d ROWS", offset)
}

func (sqlServerDialect) LimitOffset(limit, offset int) string {
	return fmt.Sprintf("OFFSET %d ROWS FETCH NEXT %d ROWS ONLY", offset, limit)
}
