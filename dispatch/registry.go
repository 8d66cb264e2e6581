// Package dispatch selects an implementation by the runtime category of an argument.
//
// A Registry holds at most one Handler per Tag. Dispatch classifies its
// argument, runs the handler registered for the resulting tag, and falls
// back to the registry's default when none is. A strict registry has no
// default and reports a *DispatchError instead.
package dispatch

import (
	"errors"
	"fmt"
	"sync"

	"github.com/on-the-ground/grimoire/shared/helper"
)

var (
	// ErrNoImplementation matches every *DispatchError.
	ErrNoImplementation = errors.New("no implementation registered")

	// ErrVariantMismatch is returned by a typed handler given a variant it does not accept.
	ErrVariantMismatch = errors.New("handler received a value of another category")
)

// DispatchError reports a strict registry without a handler for Tag.
type DispatchError struct {
	Tag Tag
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("%v for %s", ErrNoImplementation, e.Tag)
}

func (e *DispatchError) Is(target error) bool {
	return target == ErrNoImplementation
}

// Handler implements one category.
type Handler[R any] func(Value) (R, error)

// Registry maps tags to handlers. Registrations only add or replace; nothing is removed.
type Registry[R any] struct {
	mu       sync.RWMutex
	impls    map[Tag]Handler[R]
	fallback Handler[R]
}

// NewRegistry returns a registry that runs fallback for every unregistered tag.
// Panics if fallback is nil; use NewStrictRegistry for a registry without default.
func NewRegistry[R any](fallback Handler[R]) *Registry[R] {
	if fallback == nil {
		panic("dispatch: nil fallback handler")
	}
	return &Registry[R]{impls: make(map[Tag]Handler[R]), fallback: fallback}
}

// NewStrictRegistry returns a registry that fails with a *DispatchError for unregistered tags.
func NewStrictRegistry[R any]() *Registry[R] {
	return &Registry[R]{impls: make(map[Tag]Handler[R])}
}

// Register sets the handler for tag, replacing any earlier one.
func (r *Registry[R]) Register(tag Tag, h Handler[R]) {
	if !tag.valid() {
		panic(fmt.Sprintf("dispatch: unknown tag %s", tag))
	}
	if h == nil {
		panic(fmt.Sprintf("dispatch: nil handler for %s", tag))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.impls[tag] = h
}

// Registered reports whether tag has its own handler.
func (r *Registry[R]) Registered(tag Tag) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.impls[tag]
	return ok
}

// Dispatch classifies v and runs the matching handler.
func (r *Registry[R]) Dispatch(v any) (R, error) {
	return r.DispatchValue(Classify(v))
}

func (r *Registry[R]) DispatchValue(v Value) (R, error) {
	h, err := r.handlerFor(v.Tag())
	if err != nil {
		var zero R
		return zero, err
	}
	return h(v)
}

func (r *Registry[R]) handlerFor(tag Tag) (Handler[R], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if h, ok := r.impls[tag]; ok {
		return h, nil
	}
	if r.fallback != nil {
		return r.fallback, nil
	}
	return nil, &DispatchError{Tag: tag}
}

func typed[V Value, R any](fn func(V) (R, error)) Handler[R] {
	return func(v Value) (R, error) {
		typedV, ok := helper.AssertAs[V](v)
		if !ok {
			var zero R
			var want V
			return zero, fmt.Errorf("%w: want %s, got %s", ErrVariantMismatch, want.Tag(), v.Tag())
		}
		return fn(typedV)
	}
}

func OnInteger[R any](fn func(Integer) (R, error)) Handler[R] { return typed(fn) }

func OnText[R any](fn func(Text) (R, error)) Handler[R] { return typed(fn) }

func OnSequence[R any](fn func(Sequence) (R, error)) Handler[R] { return typed(fn) }

func OnMapping[R any](fn func(Mapping) (R, error)) Handler[R] { return typed(fn) }
