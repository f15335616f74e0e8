package sqlbind

import "fmt"

// Table is a named relation plus its current alias. Table values are
// immutable; As returns a fresh instance, and column handles minted from the
// old value keep the old alias. That makes self-joins and correlated
// subqueries safe: a column can never silently migrate to a new alias.
type Table struct {
	name  string
	alias string
}

// TryT creates a table reference, returning an error if the name or alias is
// not a valid identifier.
func TryT(name string, alias ...string) (Table, error) {
	if err := ValidateIdentifier(name); err != nil {
		return Table{}, fmt.Errorf("invalid table: %w", err)
	}
	t := Table{name: name}
	if len(alias) > 0 {
		if len(alias) > 1 {
			return Table{}, fmt.Errorf("only one alias allowed")
		}
		if err := ValidateIdentifier(alias[0]); err != nil {
			return Table{}, fmt.Errorf("invalid alias: %w", err)
		}
		t.alias = alias[0]
	}
	return t, nil
}

// T creates a table reference. It panics on an invalid name or alias.
func T(name string, alias ...string) Table {
	t, err := TryT(name, alias...)
	if err != nil {
		panic(err)
	}
	return t
}

// As rebinds the table under a new alias. The receiver is untouched; the
// result is a new instance and columns must be re-derived from it.
func (t Table) As(alias string) Table {
	mustIdentifier(alias)
	return Table{name: t.name, alias: alias}
}

// Name returns the relation name.
func (t Table) Name() string { return t.name }

// Alias returns the current alias, or "" if the table is unaliased.
func (t Table) Alias() string { return t.alias }

// Ref renders the FROM-position reference, "name alias" or bare "name".
func (t Table) Ref() string {
	if t.alias != "" {
		return t.name + " " + t.alias
	}
	return t.name
}

// qualifier is the prefix columns render with: the alias when present,
// otherwise the table name.
func (t Table) qualifier() string {
	if t.alias != "" {
		return t.alias
	}
	return t.name
}

// ColumnRef is the untyped view of a column that the condition model and the
// statement builders consume. Every Column[T] satisfies it.
type ColumnRef interface {
	// ColumnName returns the bare column name.
	ColumnName() string
	// Qualified returns the rendering form, "alias.name".
	Qualified() string
}

// Column is a typed reference to one column of one Table instance. The type
// parameter keeps condition factories honest (status.Eq expects a string,
// amount.Ge an int) without affecting rendering.
type Column[T any] struct {
	table Table
	name  string
}

// TryCol creates a column handle owned by t, returning an error on an
// invalid name.
func TryCol[T any](t Table, name string) (Column[T], error) {
	if err := ValidateIdentifier(name); err != nil {
		return Column[T]{}, fmt.Errorf("invalid column: %w", err)
	}
	return Column[T]{table: t, name: name}, nil
}

// Col creates a column handle owned by t. It panics on an invalid name.
func Col[T any](t Table, name string) Column[T] {
	c, err := TryCol[T](t, name)
	if err != nil {
		panic(err)
	}
	return c
}

// At re-derives the column under a rebound table, typically one returned by
// Table.As for a self-join. The receiver keeps its original table.
func (c Column[T]) At(t Table) Column[T] {
	return Column[T]{table: t, name: c.name}
}

// ColumnName returns the bare column name.
func (c Column[T]) ColumnName() string { return c.name }

// Qualified returns the rendering form, "alias.name".
func (c Column[T]) Qualified() string {
	return c.table.qualifier() + "." + c.name
}

// Table returns the owning table instance.
func (c Column[T]) Table() Table { return c.table }
