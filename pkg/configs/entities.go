package configs

import "github.com/google/uuid"

// ZOSVersion identifies the z/OS release of a connection.
type ZOSVersion string

// Supported z/OS versions.
const (
	ZOS21 ZOSVersion = "ZOS_2_1"
	ZOS22 ZOSVersion = "ZOS_2_2"
	ZOS23 ZOSVersion = "ZOS_2_3"
	ZOS24 ZOSVersion = "ZOS_2_4"
	ZOS25 ZOSVersion = "ZOS_2_5"
)

// ConnectionConfig describes a z/OSMF connection.
type ConnectionConfig struct {
	UUID              string     `json:"uuid" yaml:"uuid"`
	Name              string     `json:"name" yaml:"name"`
	URL               string     `json:"url" yaml:"url"`
	IsAllowSelfSigned bool       `json:"is_allow_self_signed" yaml:"is_allow_self_signed"`
	ZVersion          ZOSVersion `json:"z_version" yaml:"z_version"`
	Owner             string     `json:"owner,omitempty" yaml:"owner,omitempty"`
}

// NewConnectionConfig creates a connection with a fresh UUID.
func NewConnectionConfig(name, url string) *ConnectionConfig {
	return &ConnectionConfig{
		UUID:     newUUID(),
		Name:     name,
		URL:      url,
		ZVersion: ZOS25,
	}
}

// Credentials holds the login for a connection.
type Credentials struct {
	ConnectionConfigUUID string `json:"connection_config_uuid" yaml:"connection_config_uuid"`
	Username             string `json:"username" yaml:"username"`
	Password             string `json:"-" yaml:"-"`
}

// DSMask is a dataset mask in a files working set.
type DSMask struct {
	Mask      string `json:"mask" yaml:"mask"`
	IsSingle  bool   `json:"is_single" yaml:"is_single"`
	VolSer    string `json:"vol_ser,omitempty" yaml:"vol_ser,omitempty"`
	Recursive bool   `json:"recursive" yaml:"recursive"`
}

// UssPath is a USS directory in a files working set.
type UssPath struct {
	Path string `json:"path" yaml:"path"`
}

// JobsFilter selects jobs by owner, prefix and job ID.
type JobsFilter struct {
	Owner  string `json:"owner" yaml:"owner"`
	Prefix string `json:"prefix" yaml:"prefix"`
	JobID  string `json:"job_id,omitempty" yaml:"job_id,omitempty"`
}

// DefaultJobsFilter matches every job of owner.
func DefaultJobsFilter(owner string) JobsFilter {
	return JobsFilter{Owner: owner, Prefix: "*"}
}

// newUUID generates a UUID v7 for entity IDs.
func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
