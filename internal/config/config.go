// Package config loads runtime settings from an optional YAML file with
// environment variable overrides. Environment always wins so deployments can
// tweak a setting without editing the file.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Store drivers.
const (
	DriverCSV   = "csv"
	DriverMySQL = "mysql"
)

type Config struct {
	AppAddr     string `yaml:"appAddr"`
	GinMode     string `yaml:"ginMode"`
	DataDir     string `yaml:"dataDir"`
	AuditFile   string `yaml:"auditFile"`
	StoreDriver string `yaml:"storeDriver"`
	MySQLDSN    string `yaml:"mysqlDsn"`
	JWTSecret   string `yaml:"jwtSecret"`

	// TripDurationRaw is the booked vehicle-hold window per trip, in
	// time.ParseDuration syntax ("1h", "90m").
	TripDurationRaw string `yaml:"tripDuration"`

	TripDuration time.Duration `yaml:"-"`

	// AdminPassword seeds the default admin account on an empty user store.
	AdminPassword string `yaml:"adminPassword"`

	CORSOrigins []string `yaml:"corsOrigins"`
}

func defaults() Config {
	return Config{
		AppAddr:       ":8080",
		DataDir:       "data",
		AuditFile:     "data/audit.log",
		StoreDriver:   DriverCSV,
		JWTSecret:     "change-me",
		TripDuration:  time.Hour,
		AdminPassword: "admin123",
	}
}

// Load reads the YAML file at path (skipped when missing or path is empty)
// and then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if cfg.TripDurationRaw != "" {
		d, err := time.ParseDuration(cfg.TripDurationRaw)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("invalid tripDuration %q", cfg.TripDurationRaw)
		}
		cfg.TripDuration = d
	}

	if cfg.StoreDriver != DriverCSV && cfg.StoreDriver != DriverMySQL {
		return Config{}, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	if cfg.StoreDriver == DriverMySQL && cfg.MySQLDSN == "" {
		return Config{}, fmt.Errorf("MYSQL_DSN is required for the mysql driver")
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.AppAddr, "APP_ADDR")
	setString(&cfg.GinMode, "GIN_MODE")
	setString(&cfg.DataDir, "DATA_DIR")
	setString(&cfg.AuditFile, "AUDIT_FILE")
	setString(&cfg.StoreDriver, "STORE_DRIVER")
	setString(&cfg.MySQLDSN, "MYSQL_DSN")
	setString(&cfg.JWTSecret, "JWT_SECRET")
	setString(&cfg.AdminPassword, "ADMIN_PASSWORD")

	setString(&cfg.TripDurationRaw, "TRIP_DURATION")
	if v := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); v != "" {
		cfg.CORSOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}
