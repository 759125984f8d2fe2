package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Format  string `mapstructure:"format"`
	Color   string `mapstructure:"color"`
	Quiet   bool   `mapstructure:"quiet"`
	Verbose bool   `mapstructure:"verbose"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Format:  "text",
		Color:   "auto",
		Quiet:   false,
		Verbose: false,
	}
}

// Load loads configuration from files and environment
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("npdump")
	v.SetConfigType("yaml")

	// Search order: system-wide, user config directory, working directory.
	v.AddConfigPath("/etc/npdump/")
	if configDir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(configDir, "npdump"))
	}
	v.AddConfigPath(".")

	// Environment variables
	v.SetEnvPrefix("NPDUMP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.BindEnv("format", "NPDUMP_FORMAT")
	v.BindEnv("color", "NPDUMP_COLOR")
	v.BindEnv("quiet", "NPDUMP_QUIET")
	v.BindEnv("verbose", "NPDUMP_VERBOSE")

	cfg := Default()
	v.SetDefault("format", cfg.Format)
	v.SetDefault("color", cfg.Color)
	v.SetDefault("quiet", cfg.Quiet)
	v.SetDefault("verbose", cfg.Verbose)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// No npdump.yaml anywhere; try the home dotfile before settling
		// on defaults.
		v.SetConfigName(".npdump")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, err
			}
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile loads configuration from a specific file
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ConfigFile returns the path to the config file Load would pick up, or
// an empty string when none exists.
func ConfigFile() string {
	v := viper.New()

	v.SetConfigName("npdump")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/npdump/")
	if configDir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(configDir, "npdump"))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err == nil {
		return v.ConfigFileUsed()
	}

	v.SetConfigName(".npdump")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	if err := v.ReadInConfig(); err == nil {
		return v.ConfigFileUsed()
	}

	return ""
}

// SearchPaths lists the file locations Load consults, in search order.
func SearchPaths() []string {
	paths := []string{filepath.Join("/etc/npdump", "npdump.yaml")}
	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, "npdump", "npdump.yaml"))
	}
	paths = append(paths, "npdump.yaml")
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".npdump.yaml"))
	}
	return paths
}
