package container

import "errors"

// ErrEmptyName is returned by module options registering an empty name.
var ErrEmptyName = errors.New("dependency name cannot be empty")

// ModuleOption represents a registration action within a module.
type ModuleOption func(*Container) error

// NewModule creates a new module with the given name and builders.
// Modules are a way to group related registrations together.
//
// Example:
//
//	var APIModule = container.NewModule("api",
//	    container.Provide("vaultAPI", newVaultAPI, container.DependsOn("httpClient")),
//	    container.Provide("authAPI", newAuthAPI, container.DependsOn("httpClient")),
//	)
//
//	c := container.New()
//	c.SetValue("config", cfg)
//	if err := c.AddModules(TransportModule, APIModule); err != nil {
//	    return err
//	}
func NewModule(name string, builders ...ModuleOption) ModuleOption {
	return func(c *Container) error {
		for _, builder := range builders {
			if builder == nil {
				continue
			}

			if err := builder(c); err != nil {
				return ModuleError{Module: name, Cause: err}
			}
		}

		return nil
	}
}

// Provide creates a ModuleOption that registers a factory.
func Provide(name string, factory Factory, opts ...RegisterOption) ModuleOption {
	return func(c *Container) error {
		if name == "" {
			return ErrEmptyName
		}
		if factory == nil {
			return FactoryError{Name: name, Cause: ErrNilFactory}
		}

		c.Register(name, factory, opts...)
		return nil
	}
}

// Value creates a ModuleOption that stores a value.
func Value(name string, value any) ModuleOption {
	return func(c *Container) error {
		if name == "" {
			return ErrEmptyName
		}

		c.SetValue(name, value)
		return nil
	}
}

// AddModules applies modules in order and stops at the first failure.
func (c *Container) AddModules(modules ...ModuleOption) error {
	for _, module := range modules {
		if module == nil {
			continue
		}

		if err := module(c); err != nil {
			return err
		}
	}

	return nil
}
