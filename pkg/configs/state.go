package configs

import "time"

// ConfigState is the persisted configuration of the plugin.
type ConfigState struct {
	Connections      []*ConnectionConfig      `json:"connections" yaml:"connections" contains:"ConnectionConfig"`
	FilesWorkingSets []*FilesWorkingSetConfig `json:"files_working_sets" yaml:"files_working_sets" contains:"FilesWorkingSetConfig"`
	JesWorkingSets   []*JesWorkingSetConfig   `json:"jes_working_sets" yaml:"jes_working_sets" contains:"JesWorkingSetConfig"`

	Settings Settings `json:"settings" yaml:"settings"`
}

// Settings are the scalar options of the config state.
type Settings struct {
	AutoSaveDelay     time.Duration `json:"auto_save_delay" yaml:"auto_save_delay"`
	IsAutoSyncEnabled bool          `json:"is_auto_sync_enabled" yaml:"is_auto_sync_enabled"`
	BatchSize         int           `json:"batch_size" yaml:"batch_size"`
}

// DefaultSettings returns the settings of a fresh installation.
func DefaultSettings() Settings {
	return Settings{
		AutoSaveDelay: 5 * time.Second,
		BatchSize:     100,
	}
}

// SandboxState is the editable copy of the config state shown in the
// settings dialog. It inherits the config collections and adds credentials.
type SandboxState struct {
	ConfigState

	Credentials []*Credentials `json:"credentials" yaml:"credentials" contains:"Credentials"`
}

// ConfigService exposes the config state through a single heterogeneous
// collection.
type ConfigService struct {
	State *ConfigState
}

// NewConfigService creates a service over an empty state.
func NewConfigService() *ConfigService {
	return &ConfigService{State: &ConfigState{Settings: DefaultSettings()}}
}

// Crudable returns every working set and connection of the state.
func (s *ConfigService) Crudable() []any {
	if s.State == nil {
		return nil
	}
	out := make([]any, 0, len(s.State.FilesWorkingSets)+len(s.State.Connections)+len(s.State.JesWorkingSets))
	for _, ws := range s.State.FilesWorkingSets {
		out = append(out, ws)
	}
	for _, c := range s.State.Connections {
		out = append(out, c)
	}
	for _, ws := range s.State.JesWorkingSets {
		out = append(out, ws)
	}
	return out
}
