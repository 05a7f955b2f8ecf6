// Package container provides a named dependency container with ordered,
// cycle-safe and lifetime-aware resolution.
//
// # Overview
//
// A Container holds three kinds of entries, all keyed by name:
//   - values stored directly with SetValue
//   - definitions registered with Register (a Factory plus lifetime metadata)
//   - singletons cached after their factory ran once
//
// Lookup always goes value, then cached singleton, then definition.
//
// # Basic Usage
//
//	c := container.New()
//	c.SetValue("config", cfg)
//
//	c.Register("httpClient", func(r container.Resolver) (any, error) {
//	    cfg, err := container.Resolve[config.Config](r, "config")
//	    if err != nil {
//	        return nil, err
//	    }
//	    return transport.New(cfg)
//	}, container.DependsOn("config"))
//
//	c.Register("vaultAPI", func(r container.Resolver) (any, error) {
//	    httpClient, err := container.Resolve[*transport.Client](r, "httpClient")
//	    if err != nil {
//	        return nil, err
//	    }
//	    return api.NewVaultAPI(httpClient), nil
//	}, container.DependsOn("httpClient", "config"))
//
//	if err := c.Initialize(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//
//	vaults := container.MustResolve[*api.VaultAPI](c, "vaultAPI")
//
// # Lifetimes
//
//   - Singleton (default): the factory runs once and the value is cached.
//   - Transient: the factory runs on every resolution; nothing is cached.
//
// Singletons are eager unless registered with Lazy: Initialize builds them
// in dependency order and Get refuses them until it has run. Lazy singletons
// are built on first access.
//
// # Asynchronous Factories
//
// A factory that returns an Awaitable (for example a *Promise created with
// Go) is asynchronous. GetAsync and Initialize wait for it; Get reports a
// SyncAsyncMismatchError.
//
//	c.Register("session", func(r container.Resolver) (any, error) {
//	    return container.Go(func() (any, error) {
//	        return login(ctx)
//	    }), nil
//	})
//
// # Declared Dependencies
//
// DependsOn names are used for ordering and cycle detection only; a factory
// fetches its dependencies itself through the Resolver it receives. With
// WithStrictDependencies the Resolver refuses names that were not declared.
//
// # Error Handling
//
// Every failure is returned to the caller; the container never logs, retries
// or suppresses errors. Typed errors match sentinels with errors.Is:
//
//	if container.IsNotInitialized(err) {
//	    // Initialize has not run yet
//	}
package container
