package container

import "slices"

// RegisterOption configures a dependency definition at registration time.
type RegisterOption interface {
	apply(*Definition)
}

type registerOptionFunc func(*Definition)

func (f registerOptionFunc) apply(d *Definition) {
	f(d)
}

// WithLifetime sets the lifetime of the definition.
func WithLifetime(lifetime Lifetime) RegisterOption {
	return registerOptionFunc(func(d *Definition) {
		d.Lifetime = lifetime
	})
}

// AsSingleton caches the constructed value. This is the default.
func AsSingleton() RegisterOption {
	return WithLifetime(Singleton)
}

// AsTransient makes every resolution invoke the factory again.
func AsTransient() RegisterOption {
	return WithLifetime(Transient)
}

// Lazy defers construction until the first Get or GetAsync instead of
// building the dependency during Initialize.
func Lazy() RegisterOption {
	return registerOptionFunc(func(d *Definition) {
		d.Lazy = true
	})
}

// DependsOn declares the names the factory fetches through its Resolver.
// Declared names drive initialization order and cycle detection; the
// container does not inject them. Repeated names are dropped.
func DependsOn(names ...string) RegisterOption {
	return registerOptionFunc(func(d *Definition) {
		for _, name := range names {
			if !slices.Contains(d.Dependencies, name) {
				d.Dependencies = append(d.Dependencies, name)
			}
		}
	})
}

// Option configures a Container.
type Option func(*Container)

// WithStrictDependencies makes the Resolver handed to each factory reject
// names that are missing from the factory's declared dependencies.
func WithStrictDependencies() Option {
	return func(c *Container) {
		c.strict = true
	}
}
