package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"StockWatch/internal/model"
)

// Duration wraps time.Duration so YAML values like "200ms" decode cleanly.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config holds all application configuration.
type Config struct {
	Server struct {
		Listen string `yaml:"listen"`
	} `yaml:"server"`
	DataSource struct {
		BaseURL           string        `yaml:"base_url"` // empty means Yahoo Finance
		APIKey            string        `yaml:"api_key"`
		RequestsPerSecond float64       `yaml:"requests_per_second"`
		Burst             int           `yaml:"burst"`
		MaxRetries        int           `yaml:"max_retries"`
		RetryBaseDelay    Duration      `yaml:"retry_base_delay"`
		RetryMaxDelay     Duration      `yaml:"retry_max_delay"`
	} `yaml:"data_source"`
	Directory struct {
		File string `yaml:"file"`
	} `yaml:"directory"`
	Fetch struct {
		DefaultPeriod string `yaml:"default_period"`
		Workers       int    `yaml:"workers"`
		SMAWindow     int    `yaml:"sma_window"`
		EMAWindow     int    `yaml:"ema_window"`
		RSIWindow     int    `yaml:"rsi_window"`
	} `yaml:"fetch"`
	Watchlist struct {
		Symbols []string `yaml:"symbols"`
		Cron    string   `yaml:"cron"`
	} `yaml:"watchlist"`
	Log struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.Listen = v
	}
	if v := os.Getenv("BARS_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("BARS_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("TICKER_FILE"); v != "" {
		cfg.Directory.File = v
	}
	if v := os.Getenv("DEFAULT_PERIOD"); v != "" {
		cfg.Fetch.DefaultPeriod = v
	}
	if v := os.Getenv("FETCH_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Fetch.Workers = n
		}
	}
	if v := os.Getenv("WATCHLIST"); v != "" {
		cfg.Watchlist.Symbols = nil
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				cfg.Watchlist.Symbols = append(cfg.Watchlist.Symbols, s)
			}
		}
	}
	if v := os.Getenv("WATCHLIST_CRON"); v != "" {
		cfg.Watchlist.Cron = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Directory.File == "" {
		cfg.Directory.File = "data/nyse.csv"
	}
	if cfg.DataSource.RequestsPerSecond == 0 {
		cfg.DataSource.RequestsPerSecond = 5
	}
	if cfg.DataSource.Burst == 0 {
		cfg.DataSource.Burst = 10
	}
	if cfg.DataSource.MaxRetries == 0 {
		cfg.DataSource.MaxRetries = 3
	}
	if cfg.DataSource.RetryBaseDelay == 0 {
		cfg.DataSource.RetryBaseDelay = Duration(200 * time.Millisecond)
	}
	if cfg.DataSource.RetryMaxDelay == 0 {
		cfg.DataSource.RetryMaxDelay = Duration(5 * time.Second)
	}
	if cfg.Fetch.DefaultPeriod == "" {
		cfg.Fetch.DefaultPeriod = model.DefaultPeriod.String()
	}
	if cfg.Fetch.Workers == 0 {
		cfg.Fetch.Workers = 10
	}
	if cfg.Fetch.SMAWindow == 0 {
		cfg.Fetch.SMAWindow = 20
	}
	if cfg.Fetch.EMAWindow == 0 {
		cfg.Fetch.EMAWindow = 20
	}
	if cfg.Fetch.RSIWindow == 0 {
		cfg.Fetch.RSIWindow = 14
	}
	if cfg.Watchlist.Cron == "" {
		cfg.Watchlist.Cron = "0 */15 * * * *"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

// Validate checks that all required fields are coherent.
func (c *Config) Validate() error {
	if c.Directory.File == "" {
		return fmt.Errorf("directory.file is required")
	}
	if !model.Period(c.Fetch.DefaultPeriod).Valid() {
		return fmt.Errorf("fetch.default_period %q is not a supported period", c.Fetch.DefaultPeriod)
	}
	if c.Fetch.Workers < 1 {
		return fmt.Errorf("fetch.workers must be positive")
	}
	if c.DataSource.MaxRetries < 0 {
		return fmt.Errorf("data_source.max_retries must not be negative")
	}
	return nil
}
