package component

import (
	"errors"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ComponentID keys a component store in the world. Zero is never issued.
type ComponentID uint32

var nextComponentID atomic.Uint32

// ComponentKind ties a component ID to the Go type stored under it, so the
// ecs accessors can hand back *T without a registry lookup.
type ComponentKind[T any] struct {
	id ComponentID
}

// NewComponentKind issues a fresh kind. Two kinds of the same T are distinct
// stores.
func NewComponentKind[T any]() ComponentKind[T] {
	return ComponentKind[T]{id: ComponentID(nextComponentID.Add(1))}
}

func (k ComponentKind[T]) ID() ComponentID {
	return k.id
}

// Valid reports whether k was issued by NewComponentKind.
func (k ComponentKind[T]) Valid() bool {
	return k.id != 0
}

// ComponentHandle is the package level declaration of a component, e.g.
// LedgeClimberComponent.
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}
