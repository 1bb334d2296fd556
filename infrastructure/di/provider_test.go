package di

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	id int
}

func TestProvider_Resolve_SingletonIsConstructedOnce(t *testing.T) {
	registry := NewRegistry()
	var calls int32

	require.NoError(t, registry.Register("widget", Singleton, func(context.Context, Resolver) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		return &widget{id: 1}, nil
	}))

	provider := NewProvider(registry)
	ctx := context.Background()

	first, err := provider.Resolve(ctx, "widget")
	require.NoError(t, err)
	second, err := provider.Resolve(ctx, "widget")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestProvider_Resolve_SingletonConcurrentSingleFlight(t *testing.T) {
	registry := NewRegistry()
	var calls int32

	require.NoError(t, registry.Register("widget", Singleton, func(context.Context, Resolver) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		return &widget{id: 7}, nil
	}))

	provider := NewProvider(registry)
	ctx := context.Background()

	const resolvers = 32
	results := make([]interface{}, resolvers)
	var wg sync.WaitGroup
	wg.Add(resolvers)

	for i := 0; i < resolvers; i++ {
		go func(i int) {
			defer wg.Done()
			instance, err := provider.Resolve(ctx, "widget")
			assert.NoError(t, err)
			results[i] = instance
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for i := 1; i < resolvers; i++ {
		assert.Same(t, results[0], results[i])
	}
}

func TestProvider_Resolve_TransientIsConstructedPerResolution(t *testing.T) {
	registry := NewRegistry()
	var calls int32

	require.NoError(t, registry.Register("widget", Transient, func(context.Context, Resolver) (interface{}, error) {
		return &widget{id: int(atomic.AddInt32(&calls, 1))}, nil
	}))

	provider := NewProvider(registry)
	ctx := context.Background()

	first, err := provider.Resolve(ctx, "widget")
	require.NoError(t, err)
	second, err := provider.Resolve(ctx, "widget")
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestProvider_Resolve_FactoryErrorIsWrapped(t *testing.T) {
	registry := NewRegistry()
	boom := errors.New("no database")

	require.NoError(t, registry.Register("widget", Transient, func(context.Context, Resolver) (interface{}, error) {
		return nil, boom
	}))

	provider := NewProvider(registry)

	_, err := provider.Resolve(context.Background(), "widget")

	var resolution *ResolutionError
	require.ErrorAs(t, err, &resolution)
	assert.Equal(t, ServiceKey("widget"), resolution.Key)
	assert.ErrorIs(t, err, boom)
}

func TestProvider_Resolve_FailedSingletonIsNotPoisoned(t *testing.T) {
	registry := NewRegistry()
	var calls int32

	require.NoError(t, registry.Register("widget", Singleton, func(context.Context, Resolver) (interface{}, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return nil, errors.New("transient outage")
		}
		return &widget{id: 2}, nil
	}))

	provider := NewProvider(registry)
	ctx := context.Background()

	_, err := provider.Resolve(ctx, "widget")
	require.Error(t, err)

	// The failure must not be cached; the next resolution retries the factory
	instance, err := provider.Resolve(ctx, "widget")
	require.NoError(t, err)
	assert.Equal(t, &widget{id: 2}, instance)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestProvider_Resolve_NotRegistered(t *testing.T) {
	provider := NewProvider(NewRegistry())

	_, err := provider.Resolve(context.Background(), "missing")

	var notRegistered *NotRegisteredError
	require.ErrorAs(t, err, &notRegistered)
	assert.Equal(t, ServiceKey("missing"), notRegistered.Key)
}

func TestProvider_Resolve_DirectSelfCycle(t *testing.T) {
	registry := NewRegistry()

	require.NoError(t, registry.Register("alpha", Singleton, func(ctx context.Context, r Resolver) (interface{}, error) {
		return r.Resolve(ctx, "alpha")
	}))

	provider := NewProvider(registry)

	_, err := provider.Resolve(context.Background(), "alpha")

	var circular *CircularDependencyError
	require.ErrorAs(t, err, &circular)
	assert.Equal(t, ServiceKey("alpha"), circular.Key)
	assert.Equal(t, []ServiceKey{"alpha", "alpha"}, circular.Chain)
}

func TestProvider_Resolve_IndirectCycleNamesChain(t *testing.T) {
	registry := NewRegistry()

	depend := func(on ServiceKey) Factory {
		return func(ctx context.Context, r Resolver) (interface{}, error) {
			return r.Resolve(ctx, on)
		}
	}

	require.NoError(t, registry.Register("alpha", Transient, depend("beta")))
	require.NoError(t, registry.Register("beta", Transient, depend("gamma")))
	require.NoError(t, registry.Register("gamma", Transient, depend("alpha")))

	provider := NewProvider(registry)

	_, err := provider.Resolve(context.Background(), "alpha")

	var circular *CircularDependencyError
	require.ErrorAs(t, err, &circular)
	assert.Equal(t, ServiceKey("alpha"), circular.Key)
	assert.Equal(t, []ServiceKey{"alpha", "beta", "gamma", "alpha"}, circular.Chain)
}

func TestProvider_Resolve_DependenciesThroughChainResolver(t *testing.T) {
	registry := NewRegistry()

	require.NoError(t, registry.Register("config", Singleton, constFactory("config-value")))
	require.NoError(t, registry.Register("service", Singleton, func(ctx context.Context, r Resolver) (interface{}, error) {
		cfg, err := r.Resolve(ctx, "config")
		if err != nil {
			return nil, err
		}
		return "service-with-" + cfg.(string), nil
	}))

	provider := NewProvider(registry)

	instance, err := provider.Resolve(context.Background(), "service")
	require.NoError(t, err)
	assert.Equal(t, "service-with-config-value", instance)
}

func TestResolveAs_WrongType(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register("widget", Singleton, constFactory("a string")))

	provider := NewProvider(registry)

	_, err := ResolveAs[*widget](context.Background(), provider, "widget")

	var resolution *ResolutionError
	require.ErrorAs(t, err, &resolution)
	assert.Equal(t, ServiceKey("widget"), resolution.Key)
}

func TestResolveAs_TypedValue(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register("widget", Singleton, constFactory(&widget{id: 9})))

	provider := NewProvider(registry)

	instance, err := ResolveAs[*widget](context.Background(), provider, "widget")
	require.NoError(t, err)
	assert.Equal(t, 9, instance.id)
}

func TestProvider_MustResolve_PanicsOnFailure(t *testing.T) {
	provider := NewProvider(NewRegistry())

	assert.Panics(t, func() {
		provider.MustResolve(context.Background(), "missing")
	})
}
