package container

import (
	"context"

	"github.com/yieldgate/sdk-go/internal/graph"
)

const initializeKey = "initialize"

// Initialize constructs every non-lazy definition once, in dependency order.
//
// Definitions are sorted depth-first in registration order using only the
// declared dependencies that are part of the same batch; a cycle fails with
// a CircularDependencyError before any factory runs. Factories run one
// after another and asynchronous results are awaited, so a later factory can
// Get an earlier singleton. Names already held as values or cached
// singletons are skipped.
//
// The container is marked initialized only when every construction succeeds.
// On failure, singletons built so far stay cached and a later call resumes
// with the remainder. Concurrent callers share the outcome of a single run;
// once initialized, Initialize returns nil without running any factory.
//
// The shared run uses the context of the caller that started it. If that
// context is canceled, every caller waiting on the run gets its error, even
// one whose own context is still live; such a caller can call Initialize
// again. A Clear during the run makes it return ErrClearedDuringInitialize
// and leaves the container pristine.
func (c *Container) Initialize(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if c.IsInitialized() {
		return nil
	}

	_, err, _ := c.initGroup.Do(initializeKey, func() (any, error) {
		return nil, c.initialize(ctx)
	})
	return err
}

func (c *Container) initialize(ctx context.Context) error {
	// A caller may have queued behind a run that already succeeded.
	if c.IsInitialized() {
		return nil
	}

	gen := c.currentGeneration()
	batch := c.eagerDefinitions()

	g := graph.New()
	byName := make(map[string]*Definition, len(batch))
	for _, def := range batch {
		g.AddNode(def.Name, def.Dependencies...)
		byName[def.Name] = def
	}

	order, err := g.TopologicalSort()
	if err != nil {
		return err
	}

	for _, name := range order {
		if err := ctx.Err(); err != nil {
			return err
		}

		if _, ok := c.cached(name); ok {
			continue
		}

		if _, err := c.construct(ctx, byName[name], false); err != nil {
			return err
		}

		if c.currentGeneration() != gen {
			return ErrClearedDuringInitialize
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != gen {
		return ErrClearedDuringInitialize
	}
	c.initialized = true

	return nil
}

// eagerDefinitions returns copies of the non-lazy definitions in registration order.
func (c *Container) eagerDefinitions() []*Definition {
	c.mu.Lock()
	defer c.mu.Unlock()

	batch := make([]*Definition, 0, len(c.order))
	for _, name := range c.order {
		if def := c.definitions[name]; !def.Lazy {
			batch = append(batch, def.clone())
		}
	}
	return batch
}
