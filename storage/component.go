package storage

import (
	"context"
	"fmt"

	"github.com/kbukum/healthverse/component"
	"github.com/kbukum/healthverse/logger"
	"github.com/kbukum/healthverse/provider"
)

const healthCheckKey = ".health/check"

// Component wraps Storage and implements component.Component for lifecycle management.
type Component struct {
	storage Storage
	cfg     Config
	log     *logger.Logger
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
	_ provider.Provider     = (*Component)(nil)
)

// NewComponent creates a storage component for use with the component registry.
func NewComponent(cfg Config, log *logger.Logger) *Component {
	cfg.ApplyDefaults()
	return &Component{cfg: cfg, log: log.WithComponent("storage")}
}

// Storage returns the underlying Storage, or nil if not started.
func (c *Component) Storage() Storage {
	return c.storage
}

// Name returns the component name.
func (c *Component) Name() string { return "storage" }

// Start initializes the storage backend.
func (c *Component) Start(_ context.Context) error {
	s, err := New(c.cfg, c.log)
	if err != nil {
		return fmt.Errorf("storage start: %w", err)
	}
	c.storage = s
	return nil
}

// Stop releases the backend. Stored files are left in place.
func (c *Component) Stop(_ context.Context) error {
	c.storage = nil
	return nil
}

// IsAvailable checks if the storage backend is initialized.
func (c *Component) IsAvailable(_ context.Context) bool {
	return c.storage != nil
}

// Health checks the backend by resolving and checking a fixed key.
func (c *Component) Health(ctx context.Context) component.Health {
	if c.storage == nil {
		return component.Health{
			Name:    c.Name(),
			Status:  component.StatusUnhealthy,
			Message: "storage not initialized",
		}
	}

	if _, err := c.storage.Exists(ctx, healthCheckKey); err != nil {
		return component.Health{
			Name:    c.Name(),
			Status:  component.StatusUnhealthy,
			Message: fmt.Sprintf("health check failed: %v", err),
		}
	}

	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

// Describe returns infrastructure summary info for the bootstrap display.
func (c *Component) Describe() component.Description {
	return component.Description{
		Name:    "Media storage",
		Type:    "storage",
		Details: fmt.Sprintf("provider=%s base_path=%s", c.cfg.Provider, c.cfg.BasePath),
	}
}
