package di

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNilFactory is returned when a registration carries no factory
var ErrNilFactory = errors.New("di: factory cannot be nil")

// ErrNilBuilder is returned when a controller registration carries no builder
var ErrNilBuilder = errors.New("di: controller builder cannot be nil")

// DuplicateKeyError is returned when a service key is registered twice
type DuplicateKeyError struct {
	Key ServiceKey
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("di: service %q is already registered", e.Key)
}

// NotRegisteredError is returned when resolving a key with no registration
type NotRegisteredError struct {
	Key ServiceKey
}

func (e *NotRegisteredError) Error() string {
	return fmt.Sprintf("di: service %q is not registered", e.Key)
}

// CircularDependencyError is returned when a key reappears on its own
// construction chain
type CircularDependencyError struct {
	Key   ServiceKey
	Chain []ServiceKey
}

func (e *CircularDependencyError) Error() string {
	links := make([]string, len(e.Chain))
	for i, k := range e.Chain {
		links[i] = string(k)
	}
	return fmt.Sprintf("di: circular dependency on %q (chain: %s)", e.Key, strings.Join(links, " -> "))
}

// ResolutionError wraps a factory failure for a specific key
type ResolutionError struct {
	Key   ServiceKey
	Cause error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("di: resolving service %q: %v", e.Key, e.Cause)
}

// Unwrap returns the underlying error
func (e *ResolutionError) Unwrap() error {
	return e.Cause
}

// UnknownControllerError is returned when creating an unregistered controller
type UnknownControllerError struct {
	Name string
}

func (e *UnknownControllerError) Error() string {
	return fmt.Sprintf("di: controller %q is not registered", e.Name)
}

// DuplicateControllerError is returned when a controller name is registered twice
type DuplicateControllerError struct {
	Name string
}

func (e *DuplicateControllerError) Error() string {
	return fmt.Sprintf("di: controller %q is already registered", e.Name)
}
