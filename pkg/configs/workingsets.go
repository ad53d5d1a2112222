package configs

// WorkingSetConfig holds the fields shared by every working set.
type WorkingSetConfig struct {
	UUID                 string `json:"uuid" yaml:"uuid"`
	Name                 string `json:"name" yaml:"name"`
	ConnectionConfigUUID string `json:"connection_config_uuid" yaml:"connection_config_uuid"`
}

// FilesWorkingSetConfig groups dataset masks and USS paths of a connection.
type FilesWorkingSetConfig struct {
	WorkingSetConfig

	DSMasks  []DSMask  `json:"ds_masks" yaml:"ds_masks" contains:"DSMask"`
	USSPaths []UssPath `json:"uss_paths" yaml:"uss_paths" contains:"UssPath"`
}

// NewFilesWorkingSetConfig creates an empty files working set for connection.
func NewFilesWorkingSetConfig(name, connectionUUID string) *FilesWorkingSetConfig {
	return &FilesWorkingSetConfig{
		WorkingSetConfig: WorkingSetConfig{
			UUID:                 newUUID(),
			Name:                 name,
			ConnectionConfigUUID: connectionUUID,
		},
	}
}

// JesWorkingSetConfig groups jobs filters of a connection.
type JesWorkingSetConfig struct {
	WorkingSetConfig

	JobsFilters []JobsFilter `json:"jobs_filters" yaml:"jobs_filters" contains:"JobsFilter"`
}

// NewJesWorkingSetConfig creates a JES working set for connection.
func NewJesWorkingSetConfig(name, connectionUUID string, filters ...JobsFilter) *JesWorkingSetConfig {
	return &JesWorkingSetConfig{
		WorkingSetConfig: WorkingSetConfig{
			UUID:                 newUUID(),
			Name:                 name,
			ConnectionConfigUUID: connectionUUID,
		},
		JobsFilters: filters,
	}
}
