// Package config provides configuration file support for the sandbox.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/abhishekk2305/ai-safety-sandbox/pkg/errclass"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/fsutil"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/model"
)

// FileName is the config file location under the base directory.
const FileName = "config.yaml"

// Config is the sandbox configuration. The policy fields live at the top
// level of the YAML document; the remaining sections tune ambient behavior.
type Config struct {
	Policy    model.Policy    `yaml:",inline"`
	Logging   LoggingConfig   `yaml:"logging"`
	Retention RetentionConfig `yaml:"retention"`
}

// LoggingConfig configures logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// RetentionConfig configures snapshot retention for gc.
type RetentionConfig struct {
	KeepMinSnapshots int    `yaml:"keep_min_snapshots"`
	KeepMinAge       string `yaml:"keep_min_age"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Policy: model.DefaultPolicy(),
		Logging: LoggingConfig{
			Level: "info",
		},
		Retention: RetentionConfig{
			KeepMinSnapshots: 5,
			KeepMinAge:       "24h",
		},
	}
}

// Load reads config.yaml under baseDir. The returned Config is never nil:
// an absent file yields defaults with no error, and a malformed file yields
// defaults alongside an E_CONFIG_INVALID error so the caller can warn and
// proceed. Reloading is a wholesale re-read: call Load again and replace the
// previous value.
func Load(baseDir string) (*Config, error) {
	cfg := Default()
	path := filepath.Join(baseDir, FileName)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Default(), errclass.ErrConfigInvalid.WithMessagef("read config: %v", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return Default(), errclass.ErrConfigInvalid.WithMessagef("parse config: %v", err)
	}

	return cfg, nil
}

// Save writes the configuration to config.yaml under baseDir.
func Save(baseDir string, cfg *Config) error {
	path := filepath.Join(baseDir, FileName)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errclass.ErrConfigInvalid.WithMessagef("create config dir: %v", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errclass.ErrConfigInvalid.WithMessagef("marshal config: %v", err)
	}

	return fsutil.AtomicWrite(path, data, 0644)
}
