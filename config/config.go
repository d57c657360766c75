package config

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"time"

	"github.com/BurntSushi/toml"
)

const baseCfgPath = "feedlib/config.toml"

const (
	DefaultWorkers        = 10
	DefaultLogLevel       = "info"
	DefaultOutputPath     = "feeds.json"
	DefaultTimeoutSeconds = 30
)

type Config struct {
	Feeds      []FeedConfig `toml:"feeds"`
	Fields     []string     `toml:"fields"`      // Default projection, empty keeps whole documents
	Workers    int          `toml:"workers"`     // Concurrent fetches during a batch
	LogLevel   string       `toml:"log_level"`   // debug, info, warn or error
	OutputPath string       `toml:"output_path"` // Where the CLI writes parsed feeds
	Fetch      FetchConfig  `toml:"fetch"`
}

type FeedConfig struct {
	URL     string   `toml:"url"`
	Tags    []string `toml:"tags"`
	Enabled *bool    `toml:"enabled"` // Defaults to true if not set
}

type FetchConfig struct {
	UserAgent      string `toml:"user_agent"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// IsEnabled returns true if the feed is enabled (defaults to true if not explicitly set)
func (f FeedConfig) IsEnabled() bool {
	if f.Enabled == nil {
		return true
	}
	return *f.Enabled
}

func (f FetchConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds) * time.Second
}

// EnabledFeeds returns the feeds that are not switched off, in config order
func (c Config) EnabledFeeds() []FeedConfig {
	var feeds []FeedConfig
	for _, f := range c.Feeds {
		if f.IsEnabled() {
			feeds = append(feeds, f)
		}
	}
	return feeds
}

func Read(path string) (Config, error) {
	conf := Default()
	dat, err := os.ReadFile(path)
	if err != nil {
		return conf, err
	}
	_, err = toml.Decode(string(dat), &conf)
	if err != nil {
		return conf, fmt.Errorf("failed to decode config at %s with %w", path, err)
	}
	conf.setDefaults()
	if err := conf.validate(); err != nil {
		return conf, fmt.Errorf("invalid config at %s with %w", path, err)
	}
	return conf, nil
}

func Write(cfgPath string, cfg Config) error {
	blob, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config with %w", err)
	}
	basePath := path.Dir(cfgPath)
	err = os.MkdirAll(basePath, os.ModePerm)
	if err != nil {
		return fmt.Errorf("failed to create base config directory at '%s' with %w", basePath, err)
	}
	err = os.WriteFile(cfgPath, blob, 0644)
	if err != nil {
		return fmt.Errorf("failed to write into config file at '%s' with %w", cfgPath, err)
	}
	slog.Info("config written", "at", cfgPath)
	return nil
}

func Default() Config {
	return Config{
		Feeds:      []FeedConfig{},
		Workers:    DefaultWorkers,
		LogLevel:   DefaultLogLevel,
		OutputPath: DefaultOutputPath,
		Fetch: FetchConfig{
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
	}
}

func DefaultPath() string {
	var xdgHome = os.Getenv("XDG_CONFIG_HOME")
	if xdgHome != "" {
		return path.Join(xdgHome, baseCfgPath)
	}

	var home = os.Getenv("HOME")
	if home != "" {
		return path.Join(home, ".config", baseCfgPath)
	}

	panic("unclear where to search for the config fie")
}

func (c *Config) setDefaults() {
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.OutputPath == "" {
		c.OutputPath = DefaultOutputPath
	}
	if c.Fetch.TimeoutSeconds <= 0 {
		c.Fetch.TimeoutSeconds = DefaultTimeoutSeconds
	}
}

func (c Config) validate() error {
	for i, f := range c.Feeds {
		if f.URL == "" {
			return fmt.Errorf("feed #%d has no url", i+1)
		}
	}
	return nil
}
