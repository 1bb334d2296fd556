package di

import (
	"context"
	"fmt"
	"sync"
)

// Provider resolves services from a Registry. Singletons are constructed at
// most once; concurrent resolvers of the same singleton key share a single
// in-flight construction. A failed factory leaves the singleton slot empty
// so a later resolution may retry.
type Provider struct {
	registry *Registry

	mu         sync.Mutex // guards singletons and inflight
	singletons map[ServiceKey]interface{}
	inflight   map[ServiceKey]*inflightCall
}

// inflightCall is a singleton construction shared by concurrent resolvers
type inflightCall struct {
	done  chan struct{}
	value interface{}
	err   error
}

// NewProvider creates a provider over the given registry
func NewProvider(registry *Registry) *Provider {
	return &Provider{
		registry:   registry,
		singletons: make(map[ServiceKey]interface{}),
		inflight:   make(map[ServiceKey]*inflightCall),
	}
}

// Resolve resolves key on a fresh construction chain
func (p *Provider) Resolve(ctx context.Context, key ServiceKey) (interface{}, error) {
	return p.resolve(ctx, key, nil)
}

// MustResolve unwraps Resolve, panicking with a descriptive message on
// failure. Only intended for the composition boundary.
func (p *Provider) MustResolve(ctx context.Context, key ServiceKey) interface{} {
	instance, err := p.Resolve(ctx, key)
	if err != nil {
		panic(fmt.Sprintf("di: must resolve %q: %v", key, err))
	}
	return instance
}

// resolve is the resolution engine. chain holds the keys currently under
// construction on this resolution chain, outermost first.
func (p *Provider) resolve(ctx context.Context, key ServiceKey, chain []ServiceKey) (interface{}, error) {
	entry, err := p.registry.Lookup(key)
	if err != nil {
		return nil, err
	}

	for _, inConstruction := range chain {
		if inConstruction == key {
			return nil, &CircularDependencyError{Key: key, Chain: append(chain[:len(chain):len(chain)], key)}
		}
	}

	scoped := &chainResolver{provider: p, chain: append(chain[:len(chain):len(chain)], key)}

	if entry.Lifetime != Singleton {
		instance, err := entry.Factory(ctx, scoped)
		if err != nil {
			return nil, &ResolutionError{Key: key, Cause: err}
		}
		return instance, nil
	}

	p.mu.Lock()
	if instance, ok := p.singletons[key]; ok {
		p.mu.Unlock()
		return instance, nil
	}
	if call, ok := p.inflight[key]; ok {
		p.mu.Unlock()
		<-call.done
		return call.value, call.err
	}
	call := &inflightCall{done: make(chan struct{})}
	p.inflight[key] = call
	p.mu.Unlock()

	instance, err := entry.Factory(ctx, scoped)
	if err != nil {
		err = &ResolutionError{Key: key, Cause: err}
	}

	p.mu.Lock()
	delete(p.inflight, key)
	if err == nil {
		p.singletons[key] = instance
	}
	p.mu.Unlock()

	call.value, call.err = instance, err
	close(call.done)

	return instance, err
}

// chainResolver is the Resolver handed to factories; it carries the
// construction chain of its caller
type chainResolver struct {
	provider *Provider
	chain    []ServiceKey
}

func (c *chainResolver) Resolve(ctx context.Context, key ServiceKey) (interface{}, error) {
	return c.provider.resolve(ctx, key, c.chain)
}

func (c *chainResolver) MustResolve(ctx context.Context, key ServiceKey) interface{} {
	instance, err := c.Resolve(ctx, key)
	if err != nil {
		panic(fmt.Sprintf("di: must resolve %q: %v", key, err))
	}
	return instance
}

// ResolveAs resolves key and asserts the instance to T. A wrong dynamic
// type is reported as a ResolutionError for the key.
func ResolveAs[T any](ctx context.Context, r Resolver, key ServiceKey) (T, error) {
	instance, err := r.Resolve(ctx, key)
	if err != nil {
		var zero T
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		var zero T
		return zero, &ResolutionError{
			Key:   key,
			Cause: fmt.Errorf("service has type %T, want %T", instance, zero),
		}
	}
	return typed, nil
}

// MustResolveAs unwraps ResolveAs, panicking on failure. Only intended for
// the composition boundary.
func MustResolveAs[T any](ctx context.Context, r Resolver, key ServiceKey) T {
	typed, err := ResolveAs[T](ctx, r, key)
	if err != nil {
		panic(fmt.Sprintf("di: must resolve %q: %v", key, err))
	}
	return typed
}
