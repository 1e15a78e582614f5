package component

import (
	"reflect"
	"sync"
)

// ComponentID indexes a component store inside a world. Zero is unassigned.
type ComponentID uint32

// ComponentKind is the typed key for one component store. Kinds are cheap
// values; copies refer to the same store.
type ComponentKind[T any] struct {
	id ComponentID
}

// NewComponentKind allocates a fresh id for T. Two kinds of the same T are
// distinct stores.
func NewComponentKind[T any]() ComponentKind[T] {
	return ComponentKind[T]{id: registry.register(reflect.TypeFor[T]().String())}
}

func (k ComponentKind[T]) ID() ComponentID {
	return k.id
}

func (k ComponentKind[T]) Valid() bool {
	return k.id != 0
}

// Name is the Go type name the kind was registered for, e.g.
// "component.SectionMarker".
func (k ComponentKind[T]) Name() string {
	return Name(k.id)
}

// ComponentHandle is the package-level declaration form:
//
//	var GridComponent = NewComponent[Grid]()
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}

// Name reports the type name registered under id, or "" when unknown.
func Name(id ComponentID) string {
	return registry.name(id)
}

type kindRegistry struct {
	mu    sync.RWMutex
	names []string
}

var registry = &kindRegistry{names: []string{""}}

func (r *kindRegistry) register(name string) ComponentID {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names = append(r.names, name)
	return ComponentID(len(r.names) - 1)
}

func (r *kindRegistry) name(id ComponentID) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if int(id) >= len(r.names) {
		return ""
	}
	return r.names[id]
}
