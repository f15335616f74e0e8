package sqlbind

import (
	"fmt"
	"sync"
)

// Statement is the render surface every builder in the package satisfies.
type Statement interface {
	Render() (*Result, error)
}

// Registry maps names to statement factories. Builders are single use, so
// the registry stores factories rather than builders: every Render call
// invokes the factory for a fresh statement and consumes it. Registration
// and rendering are safe for concurrent use.
type Registry struct {
	factories sync.Map // name -> func() Statement
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register stores a factory under name. Re-registering a name is an error;
// the first definition wins.
func (r *Registry) Register(name string, factory func() Statement) error {
	if err := ValidateIdentifier(name); err != nil {
		return fmt.Errorf("invalid statement name: %w", err)
	}
	if factory == nil {
		return fmt.Errorf("sqlbind: factory for %q is nil", name)
	}
	if _, loaded := r.factories.LoadOrStore(name, factory); loaded {
		return fmt.Errorf("sqlbind: statement %q already registered", name)
	}
	return nil
}

// MustRegister is Register panicking on error.
func (r *Registry) MustRegister(name string, factory func() Statement) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

// Render builds and renders the named statement.
func (r *Registry) Render(name string) (*Result, error) {
	v, ok := r.factories.Load(name)
	if !ok {
		return nil, fmt.Errorf("sqlbind: statement %q not registered", name)
	}
	stmt := v.(func() Statement)()
	if stmt == nil {
		return nil, fmt.Errorf("sqlbind: factory for %q returned nil", name)
	}
	return stmt.Render()
}

// Names returns registered statement names in unspecified order.
func (r *Registry) Names() []string {
	var out []string
	r.factories.Range(func(k, _ any) bool {
		out = append(out, k.(string))
		return true
	})
	return out
}
