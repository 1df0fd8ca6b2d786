package activitylog

import (
	"context"
	"fmt"
	"sync"
)

// Describer renders a human readable label for one row of a kind.
type Describer interface {
	Describe(ctx context.Context, id string) (string, error)
}

type DescriberFunc func(ctx context.Context, id string) (string, error)

func (f DescriberFunc) Describe(ctx context.Context, id string) (string, error) {
	return f(ctx, id)
}

// Registry resolves an EntityRef to its object_repr through the describer
// registered for the ref's kind.
type Registry struct {
	mu         sync.RWMutex
	describers map[string]Describer
}

func NewRegistry() *Registry {
	return &Registry{describers: make(map[string]Describer)}
}

func (r *Registry) Register(kind string, d Describer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.describers[kind] = d
}

func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.describers))
	for k := range r.describers {
		kinds = append(kinds, k)
	}
	return kinds
}

// Describe falls back to "kind #id" when the kind is unknown or the lookup
// fails, so a missing label never blocks the audit row.
func (r *Registry) Describe(ctx context.Context, ref EntityRef) string {
	r.mu.RLock()
	d, ok := r.describers[ref.Kind]
	r.mu.RUnlock()

	fallback := fmt.Sprintf("%s #%s", ref.Kind, ref.ID)
	if !ok {
		return fallback
	}
	repr, err := d.Describe(ctx, ref.ID)
	if err != nil || repr == "" {
		return fallback
	}
	if len(repr) > 200 {
		repr = repr[:200]
	}
	return repr
}
