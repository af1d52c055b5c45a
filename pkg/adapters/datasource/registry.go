package datasource

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/dash-inc/dash-engine/pkg/config"
)

// AdapterFactory creates an Adapter from the target configuration.
type AdapterFactory func(ctx context.Context, cfg *config.TargetConfig, logger *zap.Logger) (Adapter, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]AdapterFactory)
)

// Register is called by each adapter's init() function.
// Thread-safe for concurrent init() calls.
func Register(driver string, factory AdapterFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[driver] = factory
}

// New creates an adapter for the configured driver.
func New(ctx context.Context, cfg *config.TargetConfig, logger *zap.Logger) (Adapter, error) {
	registryMu.RLock()
	factory, ok := registry[cfg.Driver]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unsupported target driver: %s (not compiled in)", cfg.Driver)
	}
	return factory(ctx, cfg, logger)
}

// RegisteredDrivers returns the names of all compiled-in adapters.
func RegisteredDrivers() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	drivers := make([]string, 0, len(registry))
	for driver := range registry {
		drivers = append(drivers, driver)
	}
	return drivers
}
