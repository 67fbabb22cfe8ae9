package lambda

import (
	"context"
	"sync"

	"stream-token-backend/internal/config"
	"stream-token-backend/internal/logging"
	"stream-token-backend/pkg/server"
)

// Manager builds the service container once per Lambda process and reuses
// it across warm invocations. The container only holds read-only config and
// stateless clients.
type Manager struct {
	loadConfig func() (*config.Config, error)

	once      sync.Once
	container *server.Container
	err       error
}

// NewManager creates a manager that loads configuration with loadConfig on first use
func NewManager(loadConfig func() (*config.Config, error)) *Manager {
	if loadConfig == nil {
		loadConfig = config.GetOptimizedConfig
	}
	return &Manager{loadConfig: loadConfig}
}

// GetContainer returns the service container, initializing it on first call.
// A failed initialization is remembered and returned on every call.
func (m *Manager) GetContainer(ctx context.Context) (*server.Container, error) {
	m.once.Do(func() {
		cfg, err := m.loadConfig()
		if err != nil {
			m.err = err
			return
		}
		logging.Configure(cfg.Logging)
		m.container, m.err = server.NewContainer(cfg)
	})
	return m.container, m.err
}

// Cleanup releases the container
func (m *Manager) Cleanup() error {
	if m.container == nil {
		return nil
	}
	return m.container.Close()
}
