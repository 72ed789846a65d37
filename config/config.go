package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/treelog/treelog/core"
)

// EnvConfigFile names the environment variable that points at the
// default configuration file, consulted when Configure is called with
// no explicit path.
const EnvConfigFile = "TREELOG_CONFIG"

// envPrefix is stripped from override variables: TREELOG_LEVEL,
// TREELOG_ENCODING, ...
const envPrefix = "TREELOG_"

// Config describes the engine setup, per-logger levels and the bridge
// state.
type Config struct {
	// Level is the explicit level of the root logger ("" = leave unset)
	Level string `koanf:"level"`
	// Encoding selects the engine encoder: "console" (default) or "json"
	Encoding string `koanf:"encoding"`
	// OutputPaths lists engine sinks: "stdout", "stderr" or file paths
	OutputPaths []string `koanf:"output_paths"`
	// Loggers maps logger names to explicit level names
	Loggers map[string]string `koanf:"loggers"`
	// Bridge enables forwarding native records to the generic facility
	Bridge bool `koanf:"bridge"`
}

// Levels resolves the per-logger level names, including the root entry,
// to native levels. Unknown names are a configuration error.
func (c *Config) Levels() (map[string]core.Level, error) {
	out := make(map[string]core.Level, len(c.Loggers)+1)
	if c.Level != "" {
		lv, err := core.ParseLevel(c.Level)
		if err != nil {
			return nil, err
		}
		out[""] = lv
	}
	for name, s := range c.Loggers {
		lv, err := core.ParseLevel(s)
		if err != nil {
			return nil, fmt.Errorf("logger %q: %w", name, err)
		}
		out[core.NormalizeName(name)] = lv
	}
	return out, nil
}

func (c *Config) validate() error {
	if c.Encoding != "" && c.Encoding != "console" && c.Encoding != "json" {
		return fmt.Errorf("config: unknown encoding %q", c.Encoding)
	}
	_, err := c.Levels()
	return err
}

// Load reads a YAML configuration file and applies TREELOG_* environment
// overrides.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return load(content)
}

// LoadBytes parses configuration from an in-memory YAML document,
// equivalent to loading a file with the same content.
func LoadBytes(content []byte) (*Config, error) {
	return load(content)
}

// DefaultPath returns the configuration file named by TREELOG_CONFIG,
// if the variable is set and the file is readable.
func DefaultPath() (string, bool) {
	path := os.Getenv(EnvConfigFile)
	if path == "" {
		return "", false
	}
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

func load(content []byte) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	// Environment overrides: TREELOG_LEVEL -> level,
	// TREELOG_OUTPUT_PATHS -> output_paths
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
