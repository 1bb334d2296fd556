// Package di implements the composition root for the service: a keyed
// service registry, a resolving provider with singleton memoization and
// cycle detection, and a table-driven controller factory. Wiring is explicit;
// there is no reflection and no process-wide container.
package di

import (
	"context"
	"sync"
)

// ServiceKey identifies a bindable capability, typically an abstract port
type ServiceKey string

// Well-known service keys. Modules registering implementations and builders
// resolving them must agree on these.
const (
	KeyLogger               ServiceKey = "logger"
	KeyDynamoDBClient       ServiceKey = "dynamoDBClient"
	KeyUnitOfWork           ServiceKey = "unitOfWork"
	KeyTournamentRepository ServiceKey = "tournamentRepository"
	KeyPlayerRepository     ServiceKey = "playerRepository"
	KeyMatchRepository      ServiceKey = "matchRepository"
	KeyTournamentQuery      ServiceKey = "tournamentQuery"
	KeyEventPublisher       ServiceKey = "eventPublisher"
)

// Resolver resolves services by key. Factories receive a Resolver scoped to
// their construction chain so cycles are detected instead of recursed into.
type Resolver interface {
	// Resolve returns the instance bound to key, constructing it if needed
	Resolve(ctx context.Context, key ServiceKey) (interface{}, error)

	// MustResolve unwraps Resolve, panicking on failure. Only for use at the
	// composition boundary (inside controller builders or at bootstrap).
	MustResolve(ctx context.Context, key ServiceKey) interface{}
}

// Factory constructs a service instance. It may resolve its own dependencies
// through the supplied Resolver and may perform I/O.
type Factory func(ctx context.Context, r Resolver) (interface{}, error)

// ServiceEntry is a stored construction recipe
type ServiceEntry struct {
	Key      ServiceKey
	Lifetime Lifetime
	Factory  Factory
}

// Registry stores named construction recipes and their lifetime policy.
// It never constructs anything itself.
type Registry struct {
	mu      sync.RWMutex
	entries map[ServiceKey]ServiceEntry
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[ServiceKey]ServiceEntry),
	}
}

// Register stores a construction recipe under key. Re-registering an
// existing key fails with DuplicateKeyError and leaves the registry unchanged.
func (r *Registry) Register(key ServiceKey, lifetime Lifetime, factory Factory) error {
	if factory == nil {
		return ErrNilFactory
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[key]; exists {
		return &DuplicateKeyError{Key: key}
	}

	r.entries[key] = ServiceEntry{
		Key:      key,
		Lifetime: lifetime,
		Factory:  factory,
	}
	return nil
}

// Lookup returns the stored entry for key without constructing anything
func (r *Registry) Lookup(key ServiceKey) (ServiceEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, exists := r.entries[key]
	if !exists {
		return ServiceEntry{}, &NotRegisteredError{Key: key}
	}
	return entry, nil
}

// Keys returns all registered keys, in no particular order
func (r *Registry) Keys() []ServiceKey {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]ServiceKey, 0, len(r.entries))
	for key := range r.entries {
		keys = append(keys, key)
	}
	return keys
}
