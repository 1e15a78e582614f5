package easing

import (
	"sort"
	"sync"
)

// Registry resolves curve names to functions. Scripted curves are added at
// startup and replaced on hot reload, so lookups are guarded.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

// NewRegistry returns a registry holding the five built-in curves.
func NewRegistry() *Registry {
	return &Registry{
		funcs: map[string]Func{
			NameLinear:    Linear,
			NameEaseIn:    EaseIn,
			NameEaseOut:   EaseOut,
			NameEaseInOut: EaseInOut,
			NameBounce:    Bounce,
		},
	}
}

func (r *Registry) Lookup(name string) (Func, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.funcs[name]
	return fn, ok
}

// Register adds fn under name, replacing any existing curve. Nil functions
// and empty names are ignored.
func (r *Registry) Register(name string, fn Func) {
	if r == nil || name == "" || fn == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[name] = fn
}

// Names returns the registered curve names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
