package container

import (
	"context"
	"runtime/debug"
	"slices"
)

// Get resolves name synchronously.
//
// Lookup order: direct value, cached singleton, then the definition. A
// transient definition is constructed on every call; a lazy singleton is
// constructed once and cached. An eager singleton must have been built by
// Initialize. A factory returning an Awaitable is rejected with a
// SyncAsyncMismatchError.
func (c *Container) Get(name string) (any, error) {
	def, value, found, err := c.lookup(name)
	if found || err != nil {
		return value, err
	}

	if err := c.enter(name); err != nil {
		return nil, err
	}
	defer c.leave(name)

	gen := c.currentGeneration()
	for _, dep := range def.Dependencies {
		if c.needsResolve(dep) {
			if _, err := c.Get(dep); err != nil {
				return nil, err
			}
		}
	}

	value, err = c.invoke(def)
	if err != nil {
		return nil, err
	}

	if _, async := value.(Awaitable); async {
		return nil, SyncAsyncMismatchError{Name: name}
	}

	if def.IsSingleton() {
		c.storeSingleton(gen, name, value)
	}

	return value, nil
}

// GetAsync resolves name like Get, but waits for factories that return an
// Awaitable before caching and returning the value.
func (c *Container) GetAsync(ctx context.Context, name string) (any, error) {
	def, value, found, err := c.lookup(name)
	if found || err != nil {
		return value, err
	}

	return c.construct(ctx, def, true)
}

// lookup applies the resolution precedence. It returns the definition to
// construct when nothing is cached and construction is allowed.
func (c *Container) lookup(name string) (*Definition, any, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.values[name]; ok {
		return nil, v, true, nil
	}
	if v, ok := c.singletons[name]; ok {
		return nil, v, true, nil
	}

	def, ok := c.definitions[name]
	if !ok {
		return nil, nil, false, NotRegisteredError{Name: name}
	}
	// An eager singleton reached again while Initialize builds it is a cycle,
	// not a missing initialization.
	if _, busy := c.inFlight[name]; busy {
		return nil, nil, false, CircularDependencyError{Node: name, Path: c.cyclePath(name)}
	}

	switch {
	case !def.IsSingleton(), def.Lazy:
		return def.clone(), nil, false, nil
	case !c.initialized:
		return nil, nil, false, NotInitializedError{Name: name}
	default:
		return nil, nil, false, PostInitMissingError{Name: name}
	}
}

// needsResolve reports whether a declared dependency should be resolved
// before its dependent is constructed. Transients are left to the factory.
func (c *Container) needsResolve(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.values[name]; ok {
		return false
	}
	if _, ok := c.singletons[name]; ok {
		return false
	}
	def, ok := c.definitions[name]
	return !ok || def.IsSingleton()
}

// construct builds def, awaiting an asynchronous result. With resolveDeps
// set, unresolved declared dependencies are resolved first.
func (c *Container) construct(ctx context.Context, def *Definition, resolveDeps bool) (any, error) {
	if err := c.enter(def.Name); err != nil {
		return nil, err
	}
	defer c.leave(def.Name)

	gen := c.currentGeneration()
	if resolveDeps {
		for _, dep := range def.Dependencies {
			if c.needsResolve(dep) {
				if _, err := c.GetAsync(ctx, dep); err != nil {
					return nil, err
				}
			}
		}
	}

	value, err := c.invoke(def)
	if err != nil {
		return nil, err
	}

	if a, async := value.(Awaitable); async {
		if value, err = c.await(ctx, def.Name, a); err != nil {
			return nil, err
		}
	}

	if def.IsSingleton() {
		c.storeSingleton(gen, def.Name, value)
	}

	return value, nil
}

func (c *Container) invoke(def *Definition) (value any, err error) {
	if def.Factory == nil {
		return nil, FactoryError{Name: def.Name, Cause: ErrNilFactory}
	}

	defer func() {
		if r := recover(); r != nil {
			value = nil
			err = FactoryPanicError{Name: def.Name, Panic: r, Stack: debug.Stack()}
		}
	}()

	value, err = def.Factory(c.resolverFor(def))
	if err != nil {
		return nil, FactoryError{Name: def.Name, Cause: err}
	}
	return value, nil
}

func (c *Container) await(ctx context.Context, name string, a Awaitable) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			value = nil
			err = FactoryPanicError{Name: name, Panic: r, Stack: debug.Stack()}
		}
	}()

	value, err = a.Await(ctx)
	if err != nil {
		return nil, FactoryError{Name: name, Cause: err}
	}
	return value, nil
}

func (c *Container) resolverFor(def *Definition) Resolver {
	if !c.strict {
		return c
	}
	return &strictResolver{container: c, definition: def}
}

// strictResolver only lets a factory fetch the names it declared.
type strictResolver struct {
	container  *Container
	definition *Definition
}

func (r *strictResolver) Get(name string) (any, error) {
	if err := r.check(name); err != nil {
		return nil, err
	}
	return r.container.Get(name)
}

func (r *strictResolver) GetAsync(ctx context.Context, name string) (any, error) {
	if err := r.check(name); err != nil {
		return nil, err
	}
	return r.container.GetAsync(ctx, name)
}

func (r *strictResolver) check(name string) error {
	if slices.Contains(r.definition.Dependencies, name) {
		return nil
	}
	return UndeclaredDependencyError{
		Name:       r.definition.Name,
		Dependency: name,
		Declared:   slices.Clone(r.definition.Dependencies),
	}
}
