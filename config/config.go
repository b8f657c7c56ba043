package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Assignment AssignmentConfig `yaml:"assignment"`
	Sweeper    SweeperConfig    `yaml:"sweeper"`
	Push       PushConfig       `yaml:"push"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RequestIPHeader string  `yaml:"request_ip_header"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// AssignmentConfig holds the tunables of the assignment engine and the
// capacity color bands shown to operators.
type AssignmentConfig struct {
	// An agent with fewer open tickets than MediumLoadThreshold is "low",
	// fewer than HighLoadThreshold is "medium", anything above is "high".
	MediumLoadThreshold int `yaml:"medium_load_threshold"`
	HighLoadThreshold   int `yaml:"high_load_threshold"`

	OperationTimeoutSeconds int           `yaml:"operation_timeout_seconds"`
	OperationTimeout        time.Duration `yaml:"-"` // Ignored by YAML parser
}

// SweeperConfig holds the configuration for the background sweep that flags
// unattended late-portfolio tickets.
type SweeperConfig struct {
	Enabled         bool          `yaml:"enabled"`
	IntervalSeconds int           `yaml:"interval_seconds"`
	Interval        time.Duration `yaml:"-"` // Ignored by YAML parser
}

// PushConfig holds the VAPID keys for web push notifications.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 300
	}

	// Band thresholds default to the values the dashboard has always shown.
	if cfg.Assignment.MediumLoadThreshold <= 0 {
		cfg.Assignment.MediumLoadThreshold = 3
	}
	if cfg.Assignment.HighLoadThreshold <= cfg.Assignment.MediumLoadThreshold {
		log.Printf("assignment.high_load_threshold must exceed medium_load_threshold; defaulting to 6")
		cfg.Assignment.HighLoadThreshold = 6
	}
	if cfg.Assignment.OperationTimeoutSeconds <= 0 {
		cfg.Assignment.OperationTimeoutSeconds = 10
	}
	cfg.Assignment.OperationTimeout = time.Duration(cfg.Assignment.OperationTimeoutSeconds) * time.Second

	if cfg.Sweeper.IntervalSeconds <= 0 {
		cfg.Sweeper.IntervalSeconds = 300
	}
	cfg.Sweeper.Interval = time.Duration(cfg.Sweeper.IntervalSeconds) * time.Second

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}

	return &cfg, nil
}
