// Package backend defines the code-generation backend contract and a
// small registry of named backends, mirroring the frontend/backend split
// of the rest of the compiler: the frontend produces IR, a backend turns
// it into an on-disk artifact.
package backend

import (
	"fmt"

	"github.com/hdlc/hdlc/lang/ir"
)

// Backend renders irv to an output artifact. outputPath is nil when the
// caller did not request one, in which case the backend picks its own
// default. args carries backend-specific options, e.g. the comma-split
// values of the CLI's `-B` flag.
type Backend func(outputPath *string, irv *ir.IR, args []string) error

// Registry is a name-keyed set of backends, in registration order.
type Registry struct {
	names    []string
	backends map[string]Backend
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{backends: make(map[string]Backend)}
}

// Register adds backend under name. Registering the same name twice
// replaces the previous entry but keeps its original registration order.
func (r *Registry) Register(name string, backend Backend) {
	if _, ok := r.backends[name]; !ok {
		r.names = append(r.names, name)
	}
	r.backends[name] = backend
}

// Lookup returns the backend named name, and whether it was found. An
// empty name selects the first registered backend.
func (r *Registry) Lookup(name string) (Backend, bool) {
	if name == "" {
		if len(r.names) == 0 {
			return nil, false
		}
		name = r.names[0]
	}
	b, ok := r.backends[name]
	return b, ok
}

// Names returns the registered backend names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// ErrUnknownBackend reports that Lookup failed to find a requested
// backend.
type ErrUnknownBackend struct {
	Name string
}

func (e *ErrUnknownBackend) Error() string {
	return fmt.Sprintf("unknown backend %q", e.Name)
}
