// Package config loads the tool configuration from a YAML file with
// environment variable overrides. Precedence, lowest to highest: built-in
// defaults, config file, environment.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file looked up in the working directory
// when no explicit path is given.
const DefaultFileName = "figmaforge.yml"

// Environment variables recognized as overrides.
const (
	EnvToken  = "FIGMA_TOKEN"
	EnvOutput = "FIGMAFORGE_OUTPUT"
	EnvAssets = "FIGMAFORGE_ASSETS"
)

// Duration wraps time.Duration so YAML values can use "10m" style strings.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Std returns the wrapped standard duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the resolved tool configuration.
type Config struct {
	// Token is the personal access token for the design API.
	Token string `yaml:"token"`
	// Output is the directory generated sources are written to.
	Output string `yaml:"output"`
	// Assets is the directory image assets are written to, relative to
	// Output.
	Assets string `yaml:"assets"`
	// Target selects the emitter: angular, react, scss, or tailwind.
	Target string `yaml:"target"`

	CacheDir string   `yaml:"cache_dir"`
	CacheTTL Duration `yaml:"cache_ttl"`

	// IncludeHidden keeps design layers marked invisible.
	IncludeHidden bool `yaml:"include_hidden"`
	// Variables also extracts the file's design variables into a variables
	// stylesheet.
	Variables bool `yaml:"variables"`
	// WatchInterval is the polling interval for watch mode.
	WatchInterval Duration `yaml:"watch_interval"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Output:        "generated",
		Assets:        "assets",
		Target:        "angular",
		CacheDir:      ".figmaforge-cache",
		CacheTTL:      Duration(time.Hour),
		WatchInterval: Duration(30 * time.Second),
	}
}

// Load reads the configuration. With an empty path the default file name is
// tried and its absence is not an error; an explicit path must exist.
// Environment overrides apply last either way.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// No config file is fine, defaults plus environment apply.
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvToken); v != "" {
		c.Token = v
	}
	if v := os.Getenv(EnvOutput); v != "" {
		c.Output = v
	}
	if v := os.Getenv(EnvAssets); v != "" {
		c.Assets = v
	}
}

// MissingTokenError reports that no access token was configured anywhere.
type MissingTokenError struct{}

func (*MissingTokenError) Error() string {
	return "no access token: set token in " + DefaultFileName + " or the " + EnvToken + " environment variable"
}

// Validate checks the configuration is usable for a conversion run.
func (c *Config) Validate() error {
	if c.Token == "" {
		return &MissingTokenError{}
	}
	switch c.Target {
	case "angular", "react", "scss", "tailwind":
	default:
		return fmt.Errorf("unknown target %q", c.Target)
	}
	return nil
}
