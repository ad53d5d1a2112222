package configs

import (
	"fmt"
	"sync"

	"github.com/mesh-intelligence/crudable/pkg/registry"
)

// Register declares the config entities and containers on b.
func Register(b *registry.Builder) error {
	entities := []any{
		ConnectionConfig{},
		FilesWorkingSetConfig{},
		JesWorkingSetConfig{},
		Credentials{},
		DSMask{},
		UssPath{},
		JobsFilter{},
	}
	for _, e := range entities {
		if err := b.Entity(e); err != nil {
			return fmt.Errorf("register entity: %w", err)
		}
	}

	if err := b.Method(ConfigService{}, "Crudable",
		"FilesWorkingSetConfig", "ConnectionConfig", "JesWorkingSetConfig"); err != nil {
		return fmt.Errorf("declare method: %w", err)
	}

	return b.Container(
		ConfigState{},
		SandboxState{},
		FilesWorkingSetConfig{},
		JesWorkingSetConfig{},
		ConfigService{},
	)
}

// Registry returns the process-wide registry of the config domain. It is
// built on first call; later calls return the same registry.
var Registry = sync.OnceValues(func() (*registry.Registry, error) {
	b := registry.NewBuilder()
	if err := Register(b); err != nil {
		return nil, err
	}
	return b.Build()
})
