package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/crudable/internal/paths"
	"github.com/mesh-intelligence/crudable/pkg/configs"
	"github.com/mesh-intelligence/crudable/pkg/registry"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
	envPrefix      = "CRUDABLE"

	cfgKeyLogLevel  = "log_level"
	cfgKeyLogFormat = "log_format"
	cfgKeyOutput    = "output"

	defaultLogLevel  = "warn"
	defaultLogFormat = "text"
	defaultOutput    = outputText
)

// Config validation errors.
var (
	errLogLevelUnknown  = errors.New("unknown log level")
	errLogFormatUnknown = errors.New("unknown log format")
	errOutputUnknown    = errors.New("unknown output format")
)

var (
	knownLogFormats = map[string]bool{"text": true, "json": true}
	knownOutputs    = map[string]bool{outputText: true, outputJSON: true, outputYAML: true}
)

func knownLevel(level string) bool {
	_, ok := logLevels[level]
	return ok
}

// validateConfig checks the effective configuration values.
func validateConfig(v *viper.Viper) error {
	if level := v.GetString(cfgKeyLogLevel); !knownLevel(level) {
		return fmt.Errorf("%w %q (valid: debug, info, warn, error)", errLogLevelUnknown, level)
	}
	if format := v.GetString(cfgKeyLogFormat); !knownLogFormats[format] {
		return fmt.Errorf("%w %q (valid: text, json)", errLogFormatUnknown, format)
	}
	if output := v.GetString(cfgKeyOutput); !knownOutputs[output] {
		return fmt.Errorf("%w %q (valid: text, json, yaml)", errOutputUnknown, output)
	}
	return nil
}

// loadConfig reads config.yaml from configDir using Viper. Keys may be
// overridden by CRUDABLE_* environment variables. A missing config.yaml is
// not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetDefault(cfgKeyLogFormat, defaultLogFormat)
	v.SetDefault(cfgKeyOutput, defaultOutput)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config %s: %w", filepath.Join(configDir, configFileExt), err)
	}
	return v, nil
}

// setup loads the configuration, creates the logger and builds the registry.
// The version and init commands need none of it.
func (s *session) setup(cmd *cobra.Command) error {
	switch cmd.Name() {
	case "version", "init", "help":
		return nil
	}

	configDir, err := paths.ResolveConfigDir(s.flags.configDir)
	if err != nil {
		return sysErr("resolve config dir: %w", err)
	}

	v, err := loadConfig(configDir)
	if err != nil {
		return sysErr("load config: %w", err)
	}
	if f := cmd.Flags().Lookup("output"); f != nil && f.Changed {
		v.Set(cfgKeyOutput, s.flags.output)
	}
	if s.flags.jsonMode {
		v.Set(cfgKeyOutput, outputJSON)
	}
	if err := validateConfig(v); err != nil {
		return err
	}
	s.v = v

	s.logger = newLogger(v.GetString(cfgKeyLogLevel), v.GetString(cfgKeyLogFormat), cmd.ErrOrStderr())
	s.logger.Debug("config loaded", "dir", configDir, "file", v.ConfigFileUsed())

	b := registry.NewBuilder(registry.WithLogger(s.logger))
	if err := configs.Register(b); err != nil {
		return sysErr("declare config domain: %w", err)
	}
	reg, err := b.Build()
	if err != nil {
		return sysErr("build registry: %w", err)
	}
	s.reg = reg
	return nil
}
