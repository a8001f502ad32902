package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/AthenaLink/dockronos/internal/depgraph"
)

// Config represents the complete Dockronos configuration
type Config struct {
	Runtime  RuntimeConfig                `mapstructure:"runtime"`
	Health   HealthConfig                 `mapstructure:"health"`
	Events   EventsConfig                 `mapstructure:"events"`
	Logging  LoggingConfig                `mapstructure:"logging"`
	Services []depgraph.ServiceDefinition `mapstructure:"services"`
}

// RuntimeConfig controls container runtime selection
type RuntimeConfig struct {
	// Preference pins the container runtime instead of auto-detecting one
	// Options: "auto", "docker", "podman"
	Preference string `mapstructure:"preference"`
	// RestartDelaySeconds is the stop-to-start delay for runtimes without a
	// native compose restart (default: 1)
	RestartDelaySeconds int `mapstructure:"restart_delay_seconds"`
}

// HealthConfig controls health gating during dependency-ordered startup
type HealthConfig struct {
	// TimeoutSeconds is how long to wait for a probed service to report
	// healthy before aborting the chain (default: 30)
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
	// IntervalSeconds is how often to re-read container state while waiting
	// for a health probe (default: 1)
	IntervalSeconds int `mapstructure:"interval_seconds"`
	// GracePeriodSeconds is the settle time assumed for services that do not
	// declare a health probe (default: 2)
	GracePeriodSeconds int `mapstructure:"grace_period_seconds"`
}

// EventsConfig controls the event hub
type EventsConfig struct {
	// ReplayLimit is the number of events retained per event type for
	// late-subscriber replay (default: 100)
	ReplayLimit int `mapstructure:"replay_limit"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether file logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// Dir is the directory the log file is written to.
	// If empty, the config directory is used.
	Dir string `mapstructure:"dir"`
}

// HealthTimeout returns the health wait timeout as a time.Duration
func (h *HealthConfig) HealthTimeout() time.Duration {
	return time.Duration(h.TimeoutSeconds) * time.Second
}

// HealthInterval returns the health poll interval as a time.Duration
func (h *HealthConfig) HealthInterval() time.Duration {
	return time.Duration(h.IntervalSeconds) * time.Second
}

// GracePeriod returns the no-probe grace period as a time.Duration
func (h *HealthConfig) GracePeriod() time.Duration {
	return time.Duration(h.GracePeriodSeconds) * time.Second
}

// RestartDelay returns the stop-to-start restart delay as a time.Duration
func (r *RuntimeConfig) RestartDelay() time.Duration {
	return time.Duration(r.RestartDelaySeconds) * time.Second
}

// StarterConfig converts the health section into the dependency starter's
// runtime configuration.
func (c *Config) StarterConfig() depgraph.StarterConfig {
	return depgraph.StarterConfig{
		HealthTimeout:  c.Health.HealthTimeout(),
		HealthInterval: c.Health.HealthInterval(),
		GracePeriod:    c.Health.GracePeriod(),
	}
}

// DefinitionSource exposes the configured services as a dependency-graph
// definition source.
func (c *Config) DefinitionSource() depgraph.DefinitionSource {
	return depgraph.DefinitionSourceFunc(func() ([]depgraph.ServiceDefinition, error) {
		return c.Services, nil
	})
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Runtime: RuntimeConfig{
			Preference:          "auto",
			RestartDelaySeconds: 1,
		},
		Health: HealthConfig{
			TimeoutSeconds:     30,
			IntervalSeconds:    1,
			GracePeriodSeconds: 2,
		},
		Events: EventsConfig{
			ReplayLimit: 100,
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
			Dir:     "", // Empty means use the config directory
		},
		Services: []depgraph.ServiceDefinition{},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Runtime defaults
	viper.SetDefault("runtime.preference", defaults.Runtime.Preference)
	viper.SetDefault("runtime.restart_delay_seconds", defaults.Runtime.RestartDelaySeconds)

	// Health defaults
	viper.SetDefault("health.timeout_seconds", defaults.Health.TimeoutSeconds)
	viper.SetDefault("health.interval_seconds", defaults.Health.IntervalSeconds)
	viper.SetDefault("health.grace_period_seconds", defaults.Health.GracePeriodSeconds)

	// Events defaults
	viper.SetDefault("events.replay_limit", defaults.Events.ReplayLimit)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "dockronos")
	}
	// Fall back to ~/.config/dockronos
	home, err := os.UserHomeDir()
	if err != nil {
		return ".dockronos"
	}
	return filepath.Join(home, ".config", "dockronos")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// LogDir returns the directory the log file should be written to.
// An empty result disables file logging.
func (c *Config) LogDir() string {
	if !c.Logging.Enabled {
		return ""
	}
	if c.Logging.Dir != "" {
		return c.Logging.Dir
	}
	return ConfigDir()
}

// ValidRuntimes returns the list of valid runtime preference values
func ValidRuntimes() []string {
	return []string{"auto", "docker", "podman"}
}

// IsValidRuntime checks if the given runtime preference is valid
func IsValidRuntime(runtime string) bool {
	for _, valid := range ValidRuntimes() {
		if runtime == valid {
			return true
		}
	}
	return false
}
