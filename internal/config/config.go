package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Default endpoints and tuning knobs for the SuiteSparse Matrix Collection.
const (
	DefaultBaseURL  = "https://suitesparse-collection-website.herokuapp.com"
	DefaultIndexURL = "https://sparse.tamu.edu/files/ssstats.csv"

	// DefaultFreshness is how long a cached index snapshot is served
	// without re-fetching from the remote.
	DefaultFreshness = time.Hour

	DefaultWorkers = 4
	MaxWorkers     = 8

	DefaultTimeout = 30 * time.Second

	UserAgent = "ssdownload (Go SuiteSparse downloader)"
)

// CacheDirEnv overrides the index cache directory when set.
const CacheDirEnv = "SSDOWNLOAD_CACHE_DIR"

// Config is the in-memory representation of ~/.ssdownload/config.yaml
// plus defaults. All fields are optional in the file.
type Config struct {
	BaseURL   string        `yaml:"base_url,omitempty"`
	IndexURL  string        `yaml:"index_url,omitempty"`
	CacheDir  string        `yaml:"cache_dir,omitempty"`
	Workers   int           `yaml:"workers,omitempty"`
	Timeout   time.Duration `yaml:"timeout,omitempty"`
	Freshness time.Duration `yaml:"freshness,omitempty"`
}

// configYAML mirrors Config with string durations so the file can say
// "30s" or "1h" instead of raw nanosecond counts.
type configYAML struct {
	BaseURL   string `yaml:"base_url,omitempty"`
	IndexURL  string `yaml:"index_url,omitempty"`
	CacheDir  string `yaml:"cache_dir,omitempty"`
	Workers   int    `yaml:"workers,omitempty"`
	Timeout   string `yaml:"timeout,omitempty"`
	Freshness string `yaml:"freshness,omitempty"`
}

// UnmarshalYAML implements yaml.Unmarshaler. Durations are parsed from
// time.ParseDuration syntax.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	var raw configYAML
	if err := value.Decode(&raw); err != nil {
		return err
	}
	c.BaseURL = raw.BaseURL
	c.IndexURL = raw.IndexURL
	c.CacheDir = raw.CacheDir
	c.Workers = raw.Workers
	c.Timeout = 0
	c.Freshness = 0
	if raw.Timeout != "" {
		d, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", raw.Timeout, err)
		}
		c.Timeout = d
	}
	if raw.Freshness != "" {
		d, err := time.ParseDuration(raw.Freshness)
		if err != nil {
			return fmt.Errorf("invalid freshness %q: %w", raw.Freshness, err)
		}
		c.Freshness = d
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (c Config) MarshalYAML() (any, error) {
	raw := configYAML{
		BaseURL:  c.BaseURL,
		IndexURL: c.IndexURL,
		CacheDir: c.CacheDir,
		Workers:  c.Workers,
	}
	if c.Timeout > 0 {
		raw.Timeout = c.Timeout.String()
	}
	if c.Freshness > 0 {
		raw.Freshness = c.Freshness.String()
	}
	return raw, nil
}

// SSDir returns the absolute path to ~/.ssdownload/.
func SSDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".ssdownload"), nil
}

// ConfigPath returns the absolute path to ~/.ssdownload/config.yaml.
func ConfigPath() (string, error) {
	dir, err := SSDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand ~: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// Default returns the built-in configuration used when no config file exists.
func Default() *Config {
	return &Config{
		BaseURL:   DefaultBaseURL,
		IndexURL:  DefaultIndexURL,
		Workers:   DefaultWorkers,
		Timeout:   DefaultTimeout,
		Freshness: DefaultFreshness,
	}
}

// Load reads ~/.ssdownload/config.yaml if present and fills unset fields
// with defaults. A missing file is not an error. The SSDOWNLOAD_CACHE_DIR
// environment variable (or the same key in ~/.ssdownload/.env) overrides
// the cache directory from any source.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.IndexURL == "" {
		cfg.IndexURL = DefaultIndexURL
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.Workers > MaxWorkers {
		cfg.Workers = MaxWorkers
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Freshness <= 0 {
		cfg.Freshness = DefaultFreshness
	}

	if dir := cacheDirOverride(); dir != "" {
		cfg.CacheDir = dir
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir, err = DefaultCacheDir()
		if err != nil {
			return nil, err
		}
	}
	cfg.CacheDir, err = ExpandPath(cfg.CacheDir)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save marshals cfg and writes it to ~/.ssdownload/config.yaml.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write config %s: %w", path, err)
	}
	return nil
}

// DefaultCacheDir returns the platform cache directory for ssdownload,
// e.g. ~/.cache/ssdownload on Linux.
func DefaultCacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine cache directory: %w", err)
	}
	return filepath.Join(base, "ssdownload"), nil
}

// cacheDirOverride consults the environment first, then the dotenv file.
func cacheDirOverride() string {
	if dir := os.Getenv(CacheDirEnv); dir != "" {
		return dir
	}
	env, err := LoadDotEnv()
	if err != nil {
		return ""
	}
	return env[CacheDirEnv]
}
