package di

import (
	"context"
	"net/http"
	"sync"
)

// Controller is a transport adapter owning exactly one use case. It
// translates an HTTP request into the use case's input and the output back
// into an HTTP response. Controllers never resolve services themselves.
type Controller interface {
	Handle(w http.ResponseWriter, r *http.Request)
}

// ControllerBuilder constructs a fully wired controller, resolving its
// dependencies through the supplied Resolver
type ControllerBuilder func(ctx context.Context, r Resolver) (Controller, error)

// ControllerFactory maps controller names to builders. Registering a new
// controller never touches existing entries.
type ControllerFactory struct {
	provider *Provider

	mu       sync.RWMutex
	builders map[string]ControllerBuilder
	order    []string
}

// NewControllerFactory creates a factory resolving through provider
func NewControllerFactory(provider *Provider) *ControllerFactory {
	return &ControllerFactory{
		provider: provider,
		builders: make(map[string]ControllerBuilder),
	}
}

// Register stores a builder under name. Re-registering an existing name
// fails with DuplicateControllerError.
func (f *ControllerFactory) Register(name string, builder ControllerBuilder) error {
	if builder == nil {
		return ErrNilBuilder
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.builders[name]; exists {
		return &DuplicateControllerError{Name: name}
	}

	f.builders[name] = builder
	f.order = append(f.order, name)
	return nil
}

// Create builds the named controller. Either a fully wired controller is
// returned or an error; a partially constructed controller never escapes.
func (f *ControllerFactory) Create(ctx context.Context, name string) (Controller, error) {
	f.mu.RLock()
	builder, exists := f.builders[name]
	f.mu.RUnlock()

	if !exists {
		return nil, &UnknownControllerError{Name: name}
	}

	return builder(ctx, f.provider)
}

// Names returns all registered controller names in registration order
func (f *ControllerFactory) Names() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, len(f.order))
	copy(names, f.order)
	return names
}
