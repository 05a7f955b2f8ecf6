package container_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yieldgate/sdk-go/container"
	"github.com/yieldgate/sdk-go/internal/testutil"
)

func TestResolve(t *testing.T) {
	c := container.New()
	c.SetValue("port", 8080)

	t.Run("typed value", func(t *testing.T) {
		port, err := container.Resolve[int](c, "port")
		require.NoError(t, err)
		assert.Equal(t, 8080, port)
	})

	t.Run("type mismatch", func(t *testing.T) {
		_, err := container.Resolve[string](c, "port")
		mismatch := testutil.AssertErrorType[container.TypeMismatchError](t, err)
		assert.Equal(t, "port", mismatch.Name)
		assert.Equal(t, `dependency "port": expected string, got int`, err.Error())
	})

	t.Run("interface target", func(t *testing.T) {
		var log []string
		c.SetValue("closer", testutil.NewCloser("closer", &log))

		closer, err := container.Resolve[container.Disposable](c, "closer")
		require.NoError(t, err)
		require.NoError(t, closer.Close())
		assert.Equal(t, []string{"closer"}, log)
	})

	t.Run("propagates resolution errors", func(t *testing.T) {
		_, err := container.Resolve[int](c, "missing")
		assert.True(t, container.IsNotRegistered(err))

		_, err = container.ResolveAsync[int](context.Background(), c, "missing")
		assert.True(t, container.IsNotRegistered(err))
	})
}

func TestMustResolve(t *testing.T) {
	c := container.New()
	c.SetValue("name", "yieldgate")

	assert.Equal(t, "yieldgate", container.MustResolve[string](c, "name"))
	assert.PanicsWithValue(t,
		`container: failed to resolve "missing": dependency not found: "missing" is not registered`,
		func() { container.MustResolve[string](c, "missing") },
	)
}

func TestContainer_Describe(t *testing.T) {
	newContainer := func() *container.Container {
		c := container.New()
		c.SetValue("config", "cfg")
		c.Register("httpClient", testutil.NewCountingFactory("httpClient").Factory(), container.DependsOn("config"))
		c.Register("vaultAPI", testutil.NewCountingFactory("vaultAPI").Factory(), container.DependsOn("httpClient", "config"))
		c.Register("metrics", testutil.NewCountingFactory("metrics").Factory(), container.Lazy())
		c.Register("request", testutil.NewCountingFactory("request").Factory(), container.AsTransient())
		return c
	}

	t.Run("Validate", func(t *testing.T) {
		c := newContainer()
		require.NoError(t, c.Validate())

		// Lazy definitions are part of validation even though Initialize skips them.
		c.Register("a", testutil.NewCountingFactory("a").Factory(), container.Lazy(), container.DependsOn("b"))
		c.Register("b", testutil.NewCountingFactory("b").Factory(), container.Lazy(), container.DependsOn("a"))
		testutil.AssertCircularDependency(t, c.Validate())
	})

	t.Run("WriteDOT", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, newContainer().WriteDOT(&buf))

		out := buf.String()
		assert.Contains(t, out, "digraph")
		assert.Contains(t, out, `httpClient\n(singleton)`)
		assert.Contains(t, out, `metrics\n(lazy)`)
		assert.Contains(t, out, `request\n(transient)`)
		assert.Contains(t, out, `config\n(value)`)
	})

	t.Run("WriteText", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, newContainer().WriteText(&buf))

		out := buf.String()
		assert.Contains(t, out, "Level 0")
		assert.Contains(t, out, "vaultAPI")
		assert.Contains(t, out, "Cycles: None")
	})
}
