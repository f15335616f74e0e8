package sqlbind

import (
	"fmt"

	"github.com/zoobzio/dbml"
)

// Schema is a DBML-backed catalog that mints table and column handles only
// for relations the schema actually declares. It layers on top of the
// character-level validator: T rejects malformed names, Schema.Table rejects
// well-formed names that do not exist.
type Schema struct {
	project *dbml.Project
	tables  map[string]*dbml.Table
	columns map[string]map[string]*dbml.Column
}

// NewSchema builds a Schema from a DBML project, indexing its tables and
// columns for lookup.
func NewSchema(project *dbml.Project) (*Schema, error) {
	if project == nil {
		return nil, fmt.Errorf("sqlbind: project cannot be nil")
	}

	s := &Schema{
		project: project,
		tables:  make(map[string]*dbml.Table),
		columns: make(map[string]map[string]*dbml.Column),
	}
	for _, table := range project.Tables {
		s.tables[table.Name] = table
		s.columns[table.Name] = make(map[string]*dbml.Column)
		for _, col := range table.Columns {
			s.columns[table.Name][col.Name] = col
		}
	}
	return s, nil
}

// Table mints a Table handle for a declared relation. An unknown name is an
// error even when it is a perfectly valid identifier.
func (s *Schema) Table(name string, alias ...string) (Table, error) {
	if _, ok := s.tables[name]; !ok {
		return Table{}, fmt.Errorf("sqlbind: table %q not found in schema", name)
	}
	return TryT(name, alias...)
}

// MustTable is Table panicking on error.
func (s *Schema) MustTable(name string, alias ...string) Table {
	t, err := s.Table(name, alias...)
	if err != nil {
		panic(err)
	}
	return t
}

// Column mints an untyped column handle for a declared column of t. Typed
// handles come from the Col constructor; Schema trades the compile-time type
// for existence checking, which suits schemas loaded at runtime.
func (s *Schema) Column(t Table, name string) (Column[any], error) {
	cols, ok := s.columns[t.name]
	if !ok {
		return Column[any]{}, fmt.Errorf("sqlbind: table %q not found in schema", t.name)
	}
	if _, ok := cols[name]; !ok {
		return Column[any]{}, fmt.Errorf("sqlbind: column %q not found in table %q", name, t.name)
	}
	return TryCol[any](t, name)
}

// MustColumn is Column panicking on error.
func (s *Schema) MustColumn(t Table, name string) Column[any] {
	c, err := s.Column(t, name)
	if err != nil {
		panic(err)
	}
	return c
}

// ColumnType returns the declared DBML type of a column, or "" when the
// table or column is unknown.
func (s *Schema) ColumnType(table, column string) string {
	cols, ok := s.columns[table]
	if !ok {
		return ""
	}
	col, ok := cols[column]
	if !ok {
		return ""
	}
	return col.Type
}

// Tables returns the declared relation names.
func (s *Schema) Tables() []string {
	out := make([]string, 0, len(s.tables))
	for _, t := range s.project.Tables {
		out = append(out, t.Name)
	}
	return out
}
