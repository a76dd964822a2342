package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Address string `yaml:"address"`
	} `yaml:"server"`
	Database struct {
		Driver string `yaml:"driver"`
		URL    string `yaml:"url"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Firebase struct {
		CredentialsFile string `yaml:"credentials_file"`
		ProjectID       string `yaml:"project_id"`
	} `yaml:"firebase"`
	Bridge struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"bridge"`
	SMS struct {
		Gateway       string `yaml:"gateway"` // "device" or "mobizon"
		MobizonAPIKey string `yaml:"mobizon_api_key"`
	} `yaml:"sms"`
	Audit struct {
		Enabled   bool   `yaml:"enabled"`
		Bucket    string `yaml:"bucket"`
		Region    string `yaml:"region"`
		Endpoint  string `yaml:"endpoint"`
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
	} `yaml:"audit"`
	AlertSettings AlertSettings `yaml:"alert"`

	Alert AlertConfig `yaml:"-"`
}

// AlertSettings is the yaml shape of the alert section. Timings are plain
// seconds; zero means the default.
type AlertSettings struct {
	HoldSeconds             int    `yaml:"hold_seconds"`
	ShakeCooldownSeconds    int    `yaml:"shake_cooldown_seconds"`
	CallGapSeconds          int    `yaml:"call_gap_seconds"`
	TrackingIntervalSeconds int    `yaml:"tracking_interval_seconds"`
	LocationTimeoutSeconds  int    `yaml:"location_timeout_seconds"`
	LocationMaxAgeSeconds   int    `yaml:"location_max_age_seconds"`
	InboxMaxCount           int    `yaml:"inbox_max_count"`
	FailureWarnStreak       int    `yaml:"failure_warn_streak"`
	TrackingLinkBaseURL     string `yaml:"tracking_link_base_url"`
}

// AlertConfig groups every timing knob of the alert core.
type AlertConfig struct {
	HoldDuration        time.Duration
	ShakeCooldown       time.Duration
	CallGap             time.Duration
	TrackingInterval    time.Duration
	LocationTimeout     time.Duration
	LocationMaxAge      time.Duration
	InboxMaxCount       int
	FailureWarnStreak   int
	TrackingLinkBaseURL string
}

func LoadConfig() Config {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.yaml"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		log.Fatalf("Failed to unmarshal config data: %v", err)
	}
	cfg.Alert = buildAlertConfig(cfg.AlertSettings)
	return cfg
}

func buildAlertConfig(s AlertSettings) AlertConfig {
	cfg := AlertConfig{
		HoldDuration:        seconds(s.HoldSeconds, 10*time.Second),
		ShakeCooldown:       seconds(s.ShakeCooldownSeconds, 5*time.Second),
		CallGap:             seconds(s.CallGapSeconds, 7*time.Second),
		TrackingInterval:    seconds(s.TrackingIntervalSeconds, 15*time.Second),
		LocationTimeout:     seconds(s.LocationTimeoutSeconds, 15*time.Second),
		LocationMaxAge:      seconds(s.LocationMaxAgeSeconds, 10*time.Second),
		InboxMaxCount:       s.InboxMaxCount,
		FailureWarnStreak:   s.FailureWarnStreak,
		TrackingLinkBaseURL: s.TrackingLinkBaseURL,
	}
	if cfg.InboxMaxCount == 0 {
		cfg.InboxMaxCount = 20
	}
	if cfg.FailureWarnStreak == 0 {
		cfg.FailureWarnStreak = 3
	}
	return cfg
}

func seconds(n int, fallback time.Duration) time.Duration {
	if n <= 0 {
		return fallback
	}
	return time.Duration(n) * time.Second
}
