package di

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// BootMode selects when controllers are constructed
type BootMode string

const (
	// BootEager resolves every controller at startup and fails fast
	BootEager BootMode = "eager"

	// BootLazy defers controller construction to first use
	BootLazy BootMode = "lazy"
)

// Container is the wired object graph produced by the Bootstrapper and
// handed to the transport layer
type Container struct {
	Logger      *zap.Logger
	Registry    *Registry
	Provider    *Provider
	Controllers *ControllerFactory
	Mode        BootMode
}

// RegistrationFunc populates a registry with service bindings
type RegistrationFunc func(registry *Registry) error

// AddLogger binds an already constructed logger under KeyLogger so factories
// further down the graph can resolve it
func AddLogger(logger *zap.Logger) RegistrationFunc {
	return func(registry *Registry) error {
		return registry.Register(KeyLogger, Singleton, func(context.Context, Resolver) (interface{}, error) {
			return logger, nil
		})
	}
}

// ControllerRegistrationFunc populates a controller factory with builders
type ControllerRegistrationFunc func(factory *ControllerFactory) error

// Bootstrapper orchestrates registration order and boot policy: persistence
// bindings first, then controller builders, then either eager or on-demand
// construction
type Bootstrapper struct {
	logger      *zap.Logger
	mode        BootMode
	registry    *Registry
	provider    *Provider
	controllers *ControllerFactory
}

// NewBootstrapper creates a bootstrapper with a fresh registry, provider
// and controller factory
func NewBootstrapper(mode BootMode, logger *zap.Logger) *Bootstrapper {
	registry := NewRegistry()
	provider := NewProvider(registry)
	return &Bootstrapper{
		logger:      logger,
		mode:        mode,
		registry:    registry,
		provider:    provider,
		controllers: NewControllerFactory(provider),
	}
}

// RegisterServices runs service registration modules in order. Registration
// failures are configuration errors and abort setup immediately.
func (b *Bootstrapper) RegisterServices(modules ...RegistrationFunc) error {
	for _, module := range modules {
		if err := module(b.registry); err != nil {
			return fmt.Errorf("service registration failed: %w", err)
		}
	}
	b.logger.Info("Services registered", zap.Int("count", len(b.registry.Keys())))
	return nil
}

// RegisterControllers runs controller registration modules in order
func (b *Bootstrapper) RegisterControllers(modules ...ControllerRegistrationFunc) error {
	for _, module := range modules {
		if err := module(b.controllers); err != nil {
			return fmt.Errorf("controller registration failed: %w", err)
		}
	}
	b.logger.Info("Controllers registered", zap.Strings("names", b.controllers.Names()))
	return nil
}

// Boot finalizes the composition root. In eager mode every registered
// controller is constructed up front and any failure aborts startup naming
// the offending controller; in lazy mode failures surface on first use.
func (b *Bootstrapper) Boot(ctx context.Context) (*Container, error) {
	if b.mode == BootEager {
		for _, name := range b.controllers.Names() {
			if _, err := b.controllers.Create(ctx, name); err != nil {
				return nil, fmt.Errorf("eager boot: controller %q: %w", name, err)
			}
		}
		b.logger.Info("Eager boot complete", zap.Int("controllers", len(b.controllers.Names())))
	}

	return &Container{
		Logger:      b.logger,
		Registry:    b.registry,
		Provider:    b.provider,
		Controllers: b.controllers,
		Mode:        b.mode,
	}, nil
}
