package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AppAddr != ":8080" {
		t.Fatalf("appAddr = %q", cfg.AppAddr)
	}
	if cfg.StoreDriver != DriverCSV {
		t.Fatalf("storeDriver = %q", cfg.StoreDriver)
	}
	if cfg.TripDuration != time.Hour {
		t.Fatalf("tripDuration = %v", cfg.TripDuration)
	}
}

func TestLoadFileWithEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := "appAddr: \":9090\"\ndataDir: /var/lib/tourmate\ntripDuration: 90m\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("APP_ADDR", ":7070")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AppAddr != ":7070" {
		t.Fatalf("env override lost: appAddr = %q", cfg.AppAddr)
	}
	if cfg.DataDir != "/var/lib/tourmate" {
		t.Fatalf("dataDir = %q", cfg.DataDir)
	}
	if cfg.TripDuration != 90*time.Minute {
		t.Fatalf("tripDuration = %v", cfg.TripDuration)
	}
}

func TestLoadRejectsBadDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	if _, err := Load(""); err == nil {
		t.Fatal("unknown driver should be rejected")
	}
}

func TestMySQLDriverNeedsDSN(t *testing.T) {
	t.Setenv("STORE_DRIVER", DriverMySQL)
	t.Setenv("MYSQL_DSN", "")
	if _, err := Load(""); err == nil {
		t.Fatal("mysql driver without DSN should be rejected")
	}
}

func TestLoadRejectsBadTripDuration(t *testing.T) {
	t.Setenv("TRIP_DURATION", "yesterday")
	if _, err := Load(""); err == nil {
		t.Fatal("unparsable duration should be rejected")
	}
}
