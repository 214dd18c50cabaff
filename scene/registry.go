package scene

import (
	"fmt"
	"sort"
	"sync"
)

// Composer maps a frame index to the primitives drawn for it. Compose must be
// pure: the same frame always gives the same list, in any order of calls and
// from any goroutine.
type Composer interface {
	Compose(frame int) []Primitive
}

// ComposerFunc adapts a function to Composer.
type ComposerFunc func(frame int) []Primitive

func (f ComposerFunc) Compose(frame int) []Primitive { return f(frame) }

// Factory builds a composer for a contract and configuration. Curves and
// generated entities are set up here, so a malformed definition fails before
// the first frame.
type Factory func(c Contract, cfg Config) (Composer, error)

type registration struct {
	contract Contract
	factory  Factory
}

// Registry maps composition identifiers to their contracts and factories.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]registration
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]registration)}
}

// Register adds a composition under id, which must match the contract.
// Identifiers are unique.
func (r *Registry) Register(id string, c Contract, f Factory) error {
	if id != c.ID {
		return &InvalidConfigError{Field: "id", Value: id, Reason: fmt.Sprintf("contract is %q", c.ID)}
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if f == nil {
		return &InvalidConfigError{Field: "factory", Value: id, Reason: "nil factory"}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; ok {
		return &DuplicateCompositionError{ID: id}
	}
	r.entries[id] = registration{contract: c, factory: f}
	return nil
}

// Contract looks up a contract without building a composer.
func (r *Registry) Contract(id string) (Contract, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	if !ok {
		return Contract{}, &UnknownCompositionError{ID: id}
	}
	return e.contract, nil
}

// Resolve builds the composition with its default configuration.
func (r *Registry) Resolve(id string) (Contract, Composer, error) {
	c, err := r.Contract(id)
	if err != nil {
		return Contract{}, nil, err
	}
	return r.ResolveWith(id, c.Defaults)
}

// ResolveWith builds the composition with cfg. The returned composer clamps
// out of range frames to the first or last frame.
func (r *Registry) ResolveWith(id string, cfg Config) (Contract, Composer, error) {
	if err := cfg.Validate(); err != nil {
		return Contract{}, nil, err
	}
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		return Contract{}, nil, &UnknownCompositionError{ID: id}
	}
	comp, err := e.factory(e.contract, cfg)
	if err != nil {
		return Contract{}, nil, err
	}
	return e.contract, Clamp(e.contract, comp), nil
}

// Contracts lists every registered contract ordered by identifier.
func (r *Registry) Contracts() []Contract {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Contract, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.contract)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Clamp wraps comp so frames outside the contract render as the nearest
// valid frame.
func Clamp(c Contract, comp Composer) Composer {
	return ComposerFunc(func(frame int) []Primitive {
		return comp.Compose(c.ClampFrame(frame))
	})
}
