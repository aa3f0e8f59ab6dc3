package gate

import (
	"errors"
	"fmt"
)

// DuplicateNameError is returned when a check name is registered twice.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("check %q is already registered", e.Name)
}

// Registry holds the ordered list of checks for one invocation.
type Registry struct {
	checks []Check
	names  map[string]struct{}
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{names: map[string]struct{}{}}
}

// Register appends c to the registry. It returns a *DuplicateNameError and
// leaves the registry unchanged if a check with the same name exists.
func (r *Registry) Register(c Check) error {
	if c.name == "" {
		return errors.New("check name must not be empty")
	}
	if c.action == nil {
		return fmt.Errorf("check %q has no action", c.name)
	}
	if r.names == nil {
		r.names = map[string]struct{}{}
	}
	if _, ok := r.names[c.name]; ok {
		return &DuplicateNameError{Name: c.name}
	}
	r.names[c.name] = struct{}{}
	r.checks = append(r.checks, c)
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(checks ...Check) *Registry {
	for _, c := range checks {
		if err := r.Register(c); err != nil {
			panic(err)
		}
	}
	return r
}

// All returns a snapshot of the registered checks in registration order.
func (r *Registry) All() []Check {
	out := make([]Check, len(r.checks))
	copy(out, r.checks)
	return out
}

// Names returns the registered check names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.checks))
	for _, c := range r.checks {
		names = append(names, c.name)
	}
	return names
}

func (r *Registry) Len() int { return len(r.checks) }
