// Package config provides configuration loading for Aegis.
// It supports a layered configuration approach with priority:
// CLI flags > environment variables (AEGIS_*) > config file (~/.aegis.yaml).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ReconProfile defines a named set of modules to run together.
type ReconProfile struct {
	Name    string   `mapstructure:"name" yaml:"name"`
	Modules []string `mapstructure:"modules" yaml:"modules"`
}

// Config holds all Aegis configuration options.
type Config struct {
	DefaultTarget  string         `mapstructure:"default_target" yaml:"default_target"`
	OutputFormat   string         `mapstructure:"output_format" yaml:"output_format"`
	MaxThreads     int            `mapstructure:"max_threads" yaml:"max_threads"`
	DefaultTimeout time.Duration  `mapstructure:"default_timeout" yaml:"default_timeout"`
	SafeMode       bool           `mapstructure:"safe_mode" yaml:"safe_mode"`
	WordlistPath   string         `mapstructure:"wordlist_path" yaml:"wordlist_path"`
	ShodanAPIKey   string         `mapstructure:"shodan_api_key" yaml:"shodan_api_key"`
	ReconProfiles  []ReconProfile `mapstructure:"recon_profiles" yaml:"recon_profiles"`
}

// Defaults returns a Config populated with default values.
func Defaults() Config {
	return Config{
		OutputFormat:   "text",
		MaxThreads:     10,
		DefaultTimeout: 5 * time.Second,
		SafeMode:       true,
	}
}

// Load reads configuration from ~/.aegis.yaml and environment variables.
// It does NOT apply CLI flag overrides. Call ApplyFlags for that.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(".aegis")
	v.SetConfigType("yaml")

	home, err := os.UserHomeDir()
	if err == nil {
		v.AddConfigPath(home)
	}

	v.SetEnvPrefix("AEGIS")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := Defaults()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)

	v.SetEnvPrefix("AEGIS")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Defaults()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// ApplyFlags overrides config values with any CLI flags that were explicitly set.
func ApplyFlags(cfg *Config, cmd *cobra.Command) {
	flags := cmd.Flags()

	if flags.Changed("target") {
		val, _ := flags.GetString("target")
		cfg.DefaultTarget = val
	}
	if flags.Changed("output") {
		val, _ := flags.GetString("output")
		cfg.OutputFormat = val
	}
	if flags.Changed("concurrency") {
		val, _ := flags.GetInt("concurrency")
		cfg.MaxThreads = val
	}
	if flags.Changed("timeout") {
		val, _ := flags.GetDuration("timeout")
		cfg.DefaultTimeout = val
	}
	if flags.Changed("safe") {
		val, _ := flags.GetBool("safe")
		cfg.SafeMode = val
	}
}

// GetProfile returns the recon profile with the given name, or nil if not found.
func (c *Config) GetProfile(name string) *ReconProfile {
	for i := range c.ReconProfiles {
		if c.ReconProfiles[i].Name == name {
			return &c.ReconProfiles[i]
		}
	}
	return nil
}

// ConfigFilePath returns the default config file path (~/.aegis.yaml).
func ConfigFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".aegis.yaml"
	}
	return filepath.Join(home, ".aegis.yaml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output_format", "text")
	v.SetDefault("max_threads", 10)
	v.SetDefault("default_timeout", 5*time.Second)
	v.SetDefault("safe_mode", true)
}
