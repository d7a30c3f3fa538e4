// Package config loads CLI configuration from hostbind.yml.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config represents the hostbind CLI configuration
type Config struct {
	Snapshot SnapshotConfig `mapstructure:"snapshot"`
	Serve    ServeConfig    `mapstructure:"serve"`
	Output   OutputConfig   `mapstructure:"output"`
}

// SnapshotConfig locates the registry snapshot the CLI operates on
type SnapshotConfig struct {
	Path string `mapstructure:"path"`
}

// ServeConfig configures the inspect server
type ServeConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// OutputConfig configures CLI output rendering
type OutputConfig struct {
	Format  string `mapstructure:"format"`
	NoColor bool   `mapstructure:"no_color"`
}

// Load loads the configuration from hostbind.yml or hostbind.yaml in the
// working directory, falling back to defaults when no file exists.
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("snapshot.path", "registry.json")
	v.SetDefault("serve.host", "localhost")
	v.SetDefault("serve.port", 7474)
	v.SetDefault("output.format", "table")
	v.SetDefault("output.no_color", false)

	v.SetConfigName("hostbind")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Enable environment variable support
	v.SetEnvPrefix("HOSTBIND")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

func validate(c *Config) error {
	if c.Serve.Port <= 0 || c.Serve.Port > 65535 {
		return fmt.Errorf("invalid serve port: %d", c.Serve.Port)
	}
	switch c.Output.Format {
	case "table", "json":
	default:
		return fmt.Errorf("invalid output format: %q (want table or json)", c.Output.Format)
	}
	return nil
}
