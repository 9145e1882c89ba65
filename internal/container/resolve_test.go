package container

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rollcall/internal/api"
)

func TestResolveUnregistered(t *testing.T) {
	c := New()

	_, err := c.Resolve(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, api.IsMissingDependency(err))
	assert.EqualError(t, err, "service ghost is not registered")
}

func TestResolveSingletonConstructedOnce(t *testing.T) {
	c := New()
	ctx := context.Background()

	counter := 0
	require.NoError(t, c.Register(&api.ServiceDefinition{
		Name: "db",
		Factory: func(ctx context.Context, deps map[string]any, cfg map[string]any) (any, error) {
			counter++
			return counter, nil
		},
	}))

	for i := 0; i < 3; i++ {
		instance, err := c.Resolve(ctx, "db")
		require.NoError(t, err)
		assert.Equal(t, 1, instance, "cached instance must be returned on call %d", i+1)
	}
	assert.Equal(t, 1, counter)
}

func TestResolveTransientConstructedEveryTime(t *testing.T) {
	c := New()
	ctx := context.Background()

	counter := 0
	require.NoError(t, c.Register(&api.ServiceDefinition{
		Name:      "scope",
		Lifecycle: api.LifecycleTransient,
		Factory: func(ctx context.Context, deps map[string]any, cfg map[string]any) (any, error) {
			counter++
			return counter, nil
		},
	}))

	first, err := c.Resolve(ctx, "scope")
	require.NoError(t, err)
	second, err := c.Resolve(ctx, "scope")
	require.NoError(t, err)

	assert.Equal(t, 2, counter)
	assert.NotEqual(t, first, second)
}

func TestResolveInjectsDependenciesAndConfig(t *testing.T) {
	c := New()
	ctx := context.Background()

	require.NoError(t, c.Register(&api.ServiceDefinition{
		Name:    "db",
		Factory: staticFactory("db-conn"),
	}))

	var seenDeps map[string]any
	var seenCfg map[string]any
	require.NoError(t, c.Register(&api.ServiceDefinition{
		Name:         "repo",
		Dependencies: []string{"db"},
		Config:       map[string]any{"table": "users"},
		Factory: func(ctx context.Context, deps map[string]any, cfg map[string]any) (any, error) {
			seenDeps = deps
			seenCfg = cfg
			return "repo", nil
		},
	}))

	_, err := c.Resolve(ctx, "repo")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"db": "db-conn"}, seenDeps)
	assert.Equal(t, map[string]any{"table": "users"}, seenCfg)
}

func TestResolveDiamondConstructsSharedSingletonOnce(t *testing.T) {
	c := New()
	ctx := context.Background()

	baseCount := 0
	require.NoError(t, c.Register(&api.ServiceDefinition{
		Name: "base",
		Factory: func(ctx context.Context, deps map[string]any, cfg map[string]any) (any, error) {
			baseCount++
			return "base", nil
		},
	}))
	require.NoError(t, c.Register(serviceDef("left", "base")))
	require.NoError(t, c.Register(serviceDef("right", "base")))
	require.NoError(t, c.Register(serviceDef("top", "left", "right")))

	_, err := c.Resolve(ctx, "top")
	require.NoError(t, err)
	assert.Equal(t, 1, baseCount, "shared singleton must be constructed once")
}

func TestResolveMissingDependency(t *testing.T) {
	c := New()

	require.NoError(t, c.Register(serviceDef("p", "q")))

	_, err := c.Resolve(context.Background(), "p")
	require.Error(t, err)
	assert.True(t, api.IsMissingDependency(err))
	assert.Contains(t, err.Error(), "service p depends on q")
}

func TestResolveTransitiveMissingDependencyAttribution(t *testing.T) {
	c := New()

	require.NoError(t, c.Register(serviceDef("a", "b")))
	require.NoError(t, c.Register(serviceDef("b", "ghost")))

	_, err := c.Resolve(context.Background(), "a")
	require.Error(t, err)

	// The error must name the service that actually declares the missing
	// reference, not the entry point of the resolution.
	var missingErr *api.MissingDependencyError
	require.True(t, errors.As(err, &missingErr))
	assert.Equal(t, "b", missingErr.Service)
	assert.Equal(t, "ghost", missingErr.Missing)
}

func TestResolveCycleFails(t *testing.T) {
	c := New()

	require.NoError(t, c.Register(serviceDef("x", "y")))
	require.NoError(t, c.Register(serviceDef("y", "x")))

	_, err := c.Resolve(context.Background(), "x")
	require.Error(t, err)

	var cycleErr *api.CircularDependencyError
	require.True(t, errors.As(err, &cycleErr))
	assert.Equal(t, []string{"x", "y", "x"}, cycleErr.Path)
}

func TestResolveDeclaredCycleDoesNotDeadlock(t *testing.T) {
	c := New()

	require.NoError(t, c.Register(serviceDef("x", "y")))
	require.NoError(t, c.Register(serviceDef("y", "x")))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, name := range []string{"x", "y"} {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			_, errs[i] = c.Resolve(context.Background(), name)
		}(i, name)
	}
	wg.Wait()

	for _, err := range errs {
		require.Error(t, err)
		assert.True(t, api.IsCircularDependency(err))
	}
}

func TestResolveReentrantFactoryDetected(t *testing.T) {
	c := New()

	require.NoError(t, c.Register(&api.ServiceDefinition{
		Name: "a",
		Factory: func(ctx context.Context, deps map[string]any, cfg map[string]any) (any, error) {
			// A factory asking for itself is a runtime cycle the static
			// check cannot see.
			return c.Resolve(ctx, "a")
		},
	}))

	_, err := c.Resolve(context.Background(), "a")
	require.Error(t, err)
	assert.True(t, api.IsCircularDependency(err))
}

func TestResolveFactoryErrorNotCached(t *testing.T) {
	c := New()
	ctx := context.Background()

	cause := errors.New("connection refused")
	attempts := 0
	require.NoError(t, c.Register(&api.ServiceDefinition{
		Name: "db",
		Factory: func(ctx context.Context, deps map[string]any, cfg map[string]any) (any, error) {
			attempts++
			if attempts == 1 {
				return nil, cause
			}
			return "ready", nil
		},
	}))

	_, err := c.Resolve(ctx, "db")
	require.Error(t, err)
	assert.True(t, api.IsFactoryExecution(err))
	assert.ErrorIs(t, err, cause, "the original cause must stay reachable")

	instance, err := c.Resolve(ctx, "db")
	require.NoError(t, err, "a failed construction must not be cached")
	assert.Equal(t, "ready", instance)
	assert.Equal(t, 2, attempts)

	_, err = c.Resolve(ctx, "db")
	require.NoError(t, err)
	assert.Equal(t, 2, attempts, "the success must be cached")
}

func TestResolveConcurrentSingletonConstructsOnce(t *testing.T) {
	c := New()

	var invocations atomic.Int32
	require.NoError(t, c.Register(&api.ServiceDefinition{
		Name: "db",
		Factory: func(ctx context.Context, deps map[string]any, cfg map[string]any) (any, error) {
			invocations.Add(1)
			// Widen the race window so every caller is in flight at once.
			time.Sleep(20 * time.Millisecond)
			return "db-conn", nil
		},
	}))

	const callers = 32
	var wg sync.WaitGroup
	results := make([]any, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = c.Resolve(context.Background(), "db")
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), invocations.Load(), "factory must run exactly once")
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "db-conn", results[i])
	}
}

func TestResolveConcurrentDifferentNamesIndependent(t *testing.T) {
	c := New()

	var invocations atomic.Int32
	for _, name := range []string{"a", "b", "c"} {
		name := name
		require.NoError(t, c.Register(&api.ServiceDefinition{
			Name: name,
			Factory: func(ctx context.Context, deps map[string]any, cfg map[string]any) (any, error) {
				invocations.Add(1)
				return name, nil
			},
		}))
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		for _, name := range []string{"a", "b", "c"} {
			wg.Add(1)
			go func(name string) {
				defer wg.Done()
				instance, err := c.Resolve(context.Background(), name)
				assert.NoError(t, err)
				assert.Equal(t, name, instance)
			}(name)
		}
	}
	wg.Wait()

	assert.Equal(t, int32(3), invocations.Load())
}

func TestTransientDependencyConstructedPerDependent(t *testing.T) {
	c := New()
	ctx := context.Background()

	scopeCount := 0
	require.NoError(t, c.Register(&api.ServiceDefinition{
		Name:      "scope",
		Lifecycle: api.LifecycleTransient,
		Factory: func(ctx context.Context, deps map[string]any, cfg map[string]any) (any, error) {
			scopeCount++
			return scopeCount, nil
		},
	}))
	require.NoError(t, c.Register(serviceDef("alpha", "scope")))
	require.NoError(t, c.Register(serviceDef("beta", "scope")))

	_, err := c.Resolve(ctx, "alpha")
	require.NoError(t, err)
	_, err = c.Resolve(ctx, "beta")
	require.NoError(t, err)

	assert.Equal(t, 2, scopeCount, "each dependent gets its own transient")
}

func TestResolveAll(t *testing.T) {
	c := New()
	ctx := context.Background()

	require.NoError(t, c.Register(serviceDef("a")))
	require.NoError(t, c.Register(serviceDef("b", "a")))

	instances, err := c.ResolveAll(ctx, []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"a": "a-instance",
		"b": "b-instance",
	}, instances)
}

func TestResolveAllStopsAtFirstFailure(t *testing.T) {
	c := New()
	ctx := context.Background()

	bCalls := 0
	require.NoError(t, c.Register(serviceDef("a")))
	require.NoError(t, c.Register(&api.ServiceDefinition{
		Name: "b",
		Factory: func(ctx context.Context, deps map[string]any, cfg map[string]any) (any, error) {
			bCalls++
			return "b", nil
		},
	}))

	instances, err := c.ResolveAll(ctx, []string{"a", "ghost", "b"})
	require.Error(t, err)
	assert.Nil(t, instances)
	assert.Contains(t, err.Error(), "resolve ghost")
	assert.True(t, api.IsMissingDependency(err))
	assert.Equal(t, 0, bCalls, "names after the failure must not be resolved")
}
