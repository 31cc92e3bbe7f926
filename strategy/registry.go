package strategy

import (
	"fmt"
	"sort"
)

// Registry holds the configured strategies keyed by name. Names are
// also the keys of the persisted state document, so collisions would
// silently merge two strategies' books; NewRegistry rejects them.
type Registry struct {
	byName map[string]Strategy
}

// NewRegistry builds a registry from the given strategies, validating
// each and rejecting duplicate names.
func NewRegistry(strategies ...Strategy) (*Registry, error) {
	r := &Registry{byName: make(map[string]Strategy, len(strategies))}
	for _, s := range strategies {
		p := s.Params()
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.byName[p.Name]; dup {
			return nil, fmt.Errorf("strategy: duplicate name %q", p.Name)
		}
		r.byName[p.Name] = s
	}
	return r, nil
}

// Get returns the named strategy, or nil when unknown.
func (r *Registry) Get(name string) Strategy {
	return r.byName[name]
}

// All returns every registered strategy sorted by name.
func (r *Registry) All() []Strategy {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]Strategy, len(names))
	for i, name := range names {
		out[i] = r.byName[name]
	}
	return out
}

// Enabled returns the enabled strategies sorted by name.
func (r *Registry) Enabled() []Strategy {
	var out []Strategy
	for _, s := range r.All() {
		if s.Params().Enabled {
			out = append(out, s)
		}
	}
	return out
}

// Names returns all registered names sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
