package domain

import "fmt"

// FindBackend searches for a backend definition by name.
func (c *Config) FindBackend(name string) (BackendDefinition, bool) {
	for _, backend := range c.Backends {
		if backend.Name == name {
			return backend, true
		}
	}
	return BackendDefinition{}, false
}

// HasBackend checks if a backend with the given name is configured.
func (c *Config) HasBackend(name string) bool {
	_, exists := c.FindBackend(name)
	return exists
}

// GetDefaultBackend retrieves the preferred backend definition, falling back
// to the first configured backend when no preference is set.
func (c *Config) GetDefaultBackend() (BackendDefinition, error) {
	name := c.Preferences.DefaultBackend
	if name == "" {
		if len(c.Backends) > 0 {
			return c.Backends[0], nil
		}
		return BackendDefinition{}, fmt.Errorf("no backends configured")
	}
	if backend, ok := c.FindBackend(name); ok {
		return backend, nil
	}
	return BackendDefinition{}, fmt.Errorf("default backend %s not found in configuration", name)
}

// AddBackend adds a new backend definition.
// Returns an error if a backend with the same name already exists.
func (c *Config) AddBackend(backend BackendDefinition) error {
	if c.HasBackend(backend.Name) {
		return fmt.Errorf("backend with name %s already exists", backend.Name)
	}
	c.Backends = append(c.Backends, backend)
	return nil
}

// RemoveBackend removes a backend definition by name.
// The default backend preference is cleared when it pointed at the removed one.
func (c *Config) RemoveBackend(name string) error {
	index := -1
	for i, backend := range c.Backends {
		if backend.Name == name {
			index = i
			break
		}
	}
	if index == -1 {
		return fmt.Errorf("backend %s not found", name)
	}
	c.Backends = append(c.Backends[:index], c.Backends[index+1:]...)
	if c.Preferences.DefaultBackend == name {
		c.Preferences.DefaultBackend = ""
	}
	return nil
}

// Validate performs structural checks on the configuration.
func (c *Config) Validate() error {
	seen := map[string]bool{}
	for _, backend := range c.Backends {
		if backend.Name == "" {
			return fmt.Errorf("backend with empty name")
		}
		if seen[backend.Name] {
			return fmt.Errorf("duplicate backend %s", backend.Name)
		}
		seen[backend.Name] = true
	}
	if c.Preferences.DefaultBackend != "" && !c.HasBackend(c.Preferences.DefaultBackend) {
		return fmt.Errorf("default backend %s not configured", c.Preferences.DefaultBackend)
	}
	if c.Preferences.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout must be >= 0")
	}
	switch c.History.Storage {
	case "", "json", "sqlite":
	default:
		return fmt.Errorf("unknown history storage %q", c.History.Storage)
	}
	return nil
}
