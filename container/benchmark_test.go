package container_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/yieldgate/sdk-go/container"
)

type benchService struct {
	deps []any
}

// setupBenchContainer registers deps leaf dependencies and a "service"
// depending on all of them, every definition with the given lifetime.
func setupBenchContainer(b *testing.B, lifetime container.Lifetime, deps int) *container.Container {
	b.Helper()

	c := container.New()

	names := make([]string, 0, deps)
	for i := 0; i < deps; i++ {
		name := fmt.Sprintf("dep%d", i)
		value := i
		c.Register(name, func(container.Resolver) (any, error) {
			return &value, nil
		}, container.WithLifetime(lifetime))
		names = append(names, name)
	}

	c.Register("service", func(r container.Resolver) (any, error) {
		s := &benchService{}
		for _, name := range names {
			dep, err := r.Get(name)
			if err != nil {
				return nil, err
			}
			s.deps = append(s.deps, dep)
		}
		return s, nil
	}, container.WithLifetime(lifetime), container.DependsOn(names...))

	if err := c.Initialize(context.Background()); err != nil {
		b.Fatalf("failed to initialize: %v", err)
	}
	return c
}

// BenchmarkResolution measures Get for each lifetime and dependency count.
func BenchmarkResolution(b *testing.B) {
	cases := []struct {
		name     string
		lifetime container.Lifetime
		deps     int
	}{
		{"Singleton/0deps", container.Singleton, 0},
		{"Singleton/1dep", container.Singleton, 1},
		{"Singleton/5deps", container.Singleton, 5},
		{"Transient/0deps", container.Transient, 0},
		{"Transient/1dep", container.Transient, 1},
		{"Transient/5deps", container.Transient, 5},
	}

	for _, tc := range cases {
		b.Run(tc.name, func(b *testing.B) {
			c := setupBenchContainer(b, tc.lifetime, tc.deps)

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				if _, err := c.Get("service"); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkConcurrentResolution measures parallel reads of a cached singleton.
func BenchmarkConcurrentResolution(b *testing.B) {
	c := setupBenchContainer(b, container.Singleton, 5)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = c.Get("service")
		}
	})
}

func BenchmarkGenericResolve(b *testing.B) {
	c := setupBenchContainer(b, container.Singleton, 1)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = container.Resolve[*benchService](c, "service")
	}
}

// BenchmarkInitialize measures building and initializing a fresh graph of eager singletons.
func BenchmarkInitialize(b *testing.B) {
	for _, deps := range []int{0, 5, 50} {
		b.Run(fmt.Sprintf("%ddeps", deps), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				setupBenchContainer(b, container.Singleton, deps)
			}
		})
	}
}
