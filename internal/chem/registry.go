package chem

import (
	"fmt"

	"github.com/minseo-dev/kinsim/internal/kinet"
)

// Registry tracks distinct species and assigns stable indices in
// first-seen order. Indices never change for the registry's lifetime.
type Registry struct {
	indices map[string]int
	names   []string
}

func NewRegistry() *Registry {
	return &Registry{indices: make(map[string]int)}
}

// Register returns the index for name, creating it on first use.
func (r *Registry) Register(name string) int {
	if i, ok := r.indices[name]; ok {
		return i
	}
	i := len(r.names)
	r.indices[name] = i
	r.names = append(r.names, name)
	return i
}

// Index looks up a species without registering it.
func (r *Registry) Index(name string) (int, bool) {
	i, ok := r.indices[name]
	return i, ok
}

func (r *Registry) Len() int { return len(r.names) }

// Name returns the species name at index i.
func (r *Registry) Name(i int) string { return r.names[i] }

// Names returns the species names in index order. The slice is a copy.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// InitialVector builds the ordered concentration vector from a
// name-to-concentration map. Species absent from the map default to
// zero. A name never registered fails with UnknownSpeciesError;
// negative concentrations are rejected.
func (r *Registry) InitialVector(initial map[string]float64) (kinet.State, error) {
	c := make(kinet.State, len(r.names))
	for name, v := range initial {
		i, ok := r.indices[name]
		if !ok {
			return nil, &UnknownSpeciesError{Name: name}
		}
		if v < 0 {
			return nil, fmt.Errorf("species %q: initial concentration must be non-negative, got %g", name, v)
		}
		c[i] = v
	}
	return c, nil
}
