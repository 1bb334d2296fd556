package di

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubController struct {
	name string
}

func (c *stubController) Handle(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func stubBuilder(name string) ControllerBuilder {
	return func(context.Context, Resolver) (Controller, error) {
		return &stubController{name: name}, nil
	}
}

func TestControllerFactory_Create_Success(t *testing.T) {
	factory := NewControllerFactory(NewProvider(NewRegistry()))
	require.NoError(t, factory.Register("HealthController", stubBuilder("health")))

	controller, err := factory.Create(context.Background(), "HealthController")
	require.NoError(t, err)
	assert.Equal(t, "health", controller.(*stubController).name)
}

func TestControllerFactory_Create_UnknownName(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register("widget", Singleton, constFactory("w")))
	provider := NewProvider(registry)

	factory := NewControllerFactory(provider)
	require.NoError(t, factory.Register("KnownController", stubBuilder("known")))

	_, err := factory.Create(context.Background(), "GhostController")

	var unknown *UnknownControllerError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "GhostController", unknown.Name)

	// An unknown name must not disturb existing registrations
	controller, err := factory.Create(context.Background(), "KnownController")
	require.NoError(t, err)
	assert.NotNil(t, controller)
	assert.Equal(t, []string{"KnownController"}, factory.Names())
}

func TestControllerFactory_Register_DuplicateName(t *testing.T) {
	factory := NewControllerFactory(NewProvider(NewRegistry()))
	require.NoError(t, factory.Register("HealthController", stubBuilder("first")))

	err := factory.Register("HealthController", stubBuilder("second"))

	var dup *DuplicateControllerError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "HealthController", dup.Name)

	// The first builder keeps serving the name
	controller, err := factory.Create(context.Background(), "HealthController")
	require.NoError(t, err)
	assert.Equal(t, "first", controller.(*stubController).name)
}

func TestControllerFactory_Register_NilBuilder(t *testing.T) {
	factory := NewControllerFactory(NewProvider(NewRegistry()))

	err := factory.Register("HealthController", nil)
	assert.ErrorIs(t, err, ErrNilBuilder)
}

func TestControllerFactory_Create_BuilderResolvesServices(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register("greeting", Singleton, constFactory("hello")))
	provider := NewProvider(registry)

	factory := NewControllerFactory(provider)
	require.NoError(t, factory.Register("GreetingController", func(ctx context.Context, r Resolver) (Controller, error) {
		greeting, err := ResolveAs[string](ctx, r, "greeting")
		if err != nil {
			return nil, err
		}
		return &stubController{name: greeting}, nil
	}))

	controller, err := factory.Create(context.Background(), "GreetingController")
	require.NoError(t, err)
	assert.Equal(t, "hello", controller.(*stubController).name)
}

func TestControllerFactory_Create_MissingDependencySurfaces(t *testing.T) {
	factory := NewControllerFactory(NewProvider(NewRegistry()))
	require.NoError(t, factory.Register("BrokenController", func(ctx context.Context, r Resolver) (Controller, error) {
		if _, err := r.Resolve(ctx, "absent"); err != nil {
			return nil, err
		}
		return &stubController{}, nil
	}))

	_, err := factory.Create(context.Background(), "BrokenController")

	var notRegistered *NotRegisteredError
	require.ErrorAs(t, err, &notRegistered)
	assert.Equal(t, ServiceKey("absent"), notRegistered.Key)
}

func TestControllerFactory_Names_RegistrationOrder(t *testing.T) {
	factory := NewControllerFactory(NewProvider(NewRegistry()))

	require.NoError(t, factory.Register("C", stubBuilder("c")))
	require.NoError(t, factory.Register("A", stubBuilder("a")))
	require.NoError(t, factory.Register("B", stubBuilder("b")))

	assert.Equal(t, []string{"C", "A", "B"}, factory.Names())
}
