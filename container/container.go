package container

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// ErrNilFactory is the cause reported when a definition has no factory.
var ErrNilFactory = errors.New("factory cannot be nil")

// Resolver is the read-only view of a container handed to factories.
type Resolver interface {
	// Get resolves a dependency synchronously.
	Get(name string) (any, error)

	// GetAsync resolves a dependency, waiting for asynchronous factories.
	GetAsync(ctx context.Context, name string) (any, error)
}

// Factory constructs the value of a named dependency. It fetches whatever it
// needs through r. Returning an Awaitable makes the factory asynchronous.
type Factory func(r Resolver) (any, error)

// Definition describes how a named dependency is constructed.
type Definition struct {
	Name         string
	Factory      Factory
	Lifetime     Lifetime
	Lazy         bool
	Dependencies []string
}

// IsSingleton reports whether the constructed value is cached.
func (d Definition) IsSingleton() bool {
	return d.Lifetime != Transient
}

func (d *Definition) clone() *Definition {
	cp := *d
	cp.Dependencies = slices.Clone(d.Dependencies)
	return &cp
}

// Container is a registry of named dependencies with ordered, cycle-safe,
// lifetime-aware resolution.
//
// A container is meant to have a single owner that registers dependencies,
// calls Initialize once at startup and then hands resolved values out.
// Internal state is guarded by a mutex, but construction is never run in
// parallel and concurrent resolution of the same uncached name is reported
// as a circular dependency.
type Container struct {
	id     string
	strict bool

	mu          sync.Mutex
	definitions map[string]*Definition
	order       []string
	values      map[string]any
	valueOrder  []string
	singletons  map[string]any
	inFlight    map[string]struct{}
	building    []string
	disposables []namedDisposable
	initialized bool
	generation  uint64

	initGroup singleflight.Group
}

var _ Resolver = (*Container)(nil)

// New creates an empty container.
func New(opts ...Option) *Container {
	c := &Container{
		id: uuid.NewString(),
	}
	c.reset()

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c
}

// ID returns the unique identifier assigned to the container by New.
func (c *Container) ID() string {
	return c.id
}

// Register stores the definition of name. Nothing is constructed yet.
// Registering a name again replaces its definition but keeps its original
// position in the initialization order.
func (c *Container) Register(name string, factory Factory, opts ...RegisterOption) {
	def := &Definition{
		Name:     name,
		Factory:  factory,
		Lifetime: Singleton,
	}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(def)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.definitions[name]; !exists {
		c.order = append(c.order, name)
	}
	c.definitions[name] = def
}

// SetValue stores value under name. Values take precedence over any
// definition registered for the same name.
func (c *Container) SetValue(name string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.values[name]; !exists {
		c.valueOrder = append(c.valueOrder, name)
	}
	c.values[name] = value
}

// Has reports whether name is a value, a cached singleton or a definition.
func (c *Container) Has(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.values[name]; ok {
		return true
	}
	if _, ok := c.singletons[name]; ok {
		return true
	}
	_, ok := c.definitions[name]
	return ok
}

// IsInitialized reports whether Initialize has completed successfully.
func (c *Container) IsInitialized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.initialized
}

// Names returns registered names in registration order followed by names
// that only exist as values.
func (c *Container) Names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := slices.Clone(c.order)
	for _, name := range c.valueOrder {
		if _, ok := c.definitions[name]; !ok {
			names = append(names, name)
		}
	}
	return names
}

// Definitions returns a copy of every definition in registration order.
func (c *Container) Definitions() []Definition {
	c.mu.Lock()
	defer c.mu.Unlock()

	defs := make([]Definition, 0, len(c.order))
	for _, name := range c.order {
		defs = append(defs, *c.definitions[name].clone())
	}
	return defs
}

// Clear returns the container to its pristine state. Cached values are
// dropped without being closed; use Close to dispose them.
func (c *Container) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.reset()
}

// reset must be called with mu held (or before the container is shared).
func (c *Container) reset() {
	c.definitions = make(map[string]*Definition)
	c.order = nil
	c.values = make(map[string]any)
	c.valueOrder = nil
	c.singletons = make(map[string]any)
	c.inFlight = make(map[string]struct{})
	c.building = nil
	c.disposables = nil
	c.initialized = false
	c.generation++
}

// cached returns a direct value or a cached singleton.
func (c *Container) cached(name string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.values[name]; ok {
		return v, true
	}
	v, ok := c.singletons[name]
	return v, ok
}

// currentGeneration identifies the container state; Clear moves it on.
func (c *Container) currentGeneration() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// storeSingleton caches value unless the container was cleared since gen.
func (c *Container) storeSingleton(gen uint64, name string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generation != gen {
		return
	}
	c.singletons[name] = value
	if d, ok := value.(Disposable); ok {
		c.disposables = append(c.disposables, namedDisposable{name: name, disposable: d})
	}
}

// enter marks name as under construction. Re-entering a name that is
// already under construction is a cycle.
func (c *Container) enter(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, busy := c.inFlight[name]; busy {
		return CircularDependencyError{Node: name, Path: c.cyclePath(name)}
	}

	c.inFlight[name] = struct{}{}
	c.building = append(c.building, name)
	return nil
}

func (c *Container) leave(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.inFlight, name)
	for i := len(c.building) - 1; i >= 0; i-- {
		if c.building[i] == name {
			c.building = slices.Delete(c.building, i, i+1)
			break
		}
	}
}

// cyclePath must be called with mu held.
func (c *Container) cyclePath(name string) []string {
	for i, n := range c.building {
		if n == name {
			return slices.Clone(c.building[i:])
		}
	}
	return []string{name}
}
