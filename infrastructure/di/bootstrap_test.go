package di

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBootstrapper_Boot_EagerConstructsAllControllers(t *testing.T) {
	bootstrapper := NewBootstrapper(BootEager, zap.NewNop())

	built := make(map[string]int)
	require.NoError(t, bootstrapper.RegisterControllers(func(f *ControllerFactory) error {
		for _, name := range []string{"AController", "BController"} {
			name := name
			if err := f.Register(name, func(context.Context, Resolver) (Controller, error) {
				built[name]++
				return &stubController{name: name}, nil
			}); err != nil {
				return err
			}
		}
		return nil
	}))

	container, err := bootstrapper.Boot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, BootEager, container.Mode)
	assert.Equal(t, 1, built["AController"])
	assert.Equal(t, 1, built["BController"])
}

func TestBootstrapper_Boot_EagerFailureNamesController(t *testing.T) {
	bootstrapper := NewBootstrapper(BootEager, zap.NewNop())

	require.NoError(t, bootstrapper.RegisterControllers(func(f *ControllerFactory) error {
		if err := f.Register("GoodController", stubBuilder("good")); err != nil {
			return err
		}
		return f.Register("BadController", func(context.Context, Resolver) (Controller, error) {
			return nil, errors.New("wiring broke")
		})
	}))

	_, err := bootstrapper.Boot(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BadController")
}

func TestBootstrapper_Boot_LazyDefersConstruction(t *testing.T) {
	bootstrapper := NewBootstrapper(BootLazy, zap.NewNop())

	var built int
	require.NoError(t, bootstrapper.RegisterControllers(func(f *ControllerFactory) error {
		return f.Register("LateController", func(context.Context, Resolver) (Controller, error) {
			built++
			return &stubController{name: "late"}, nil
		})
	}))

	container, err := bootstrapper.Boot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, built)

	// A broken lazy controller only fails when first created
	_, err = container.Controllers.Create(context.Background(), "LateController")
	require.NoError(t, err)
	assert.Equal(t, 1, built)
}

func TestBootstrapper_RegisterServices_FailFast(t *testing.T) {
	bootstrapper := NewBootstrapper(BootEager, zap.NewNop())

	err := bootstrapper.RegisterServices(
		func(r *Registry) error {
			return r.Register("alpha", Singleton, constFactory(1))
		},
		func(r *Registry) error {
			return r.Register("alpha", Singleton, constFactory(2))
		},
	)

	var dup *DuplicateKeyError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, ServiceKey("alpha"), dup.Key)
}

func TestAddLogger_BindsLoggerSingleton(t *testing.T) {
	logger := zap.NewNop()
	bootstrapper := NewBootstrapper(BootLazy, logger)

	require.NoError(t, bootstrapper.RegisterServices(AddLogger(logger)))

	container, err := bootstrapper.Boot(context.Background())
	require.NoError(t, err)

	resolved, err := ResolveAs[*zap.Logger](context.Background(), container.Provider, KeyLogger)
	require.NoError(t, err)
	assert.Same(t, logger, resolved)
}
