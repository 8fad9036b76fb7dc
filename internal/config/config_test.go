package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/naveenspark/islendingabok/pkg/client"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{client.EnvUser, client.EnvPassword, EnvAPIURL, EnvLogLevel, EnvLogFormat} {
		t.Setenv(k, "")
		os.Unsetenv(k) //nolint:errcheck
	}
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	data := "ISL_USER=dotenvuser\nISL_PASSWORD=dotenvpass\nISL_LOG_LEVEL=debug\n"
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Username != "dotenvuser" || cfg.Password != "dotenvpass" {
		t.Errorf("credentials = %q/%q, want values from .env", cfg.Username, cfg.Password)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.APIURL != client.DefaultBaseURL {
		t.Errorf("APIURL = %q, want default", cfg.APIURL)
	}
}

func TestLoad_EnvWinsOverDotEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(client.EnvUser, "realuser")
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("ISL_USER=dotenvuser\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Username != "realuser" {
		t.Errorf("Username = %q, want %q", cfg.Username, "realuser")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.env"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Username != "" {
		t.Errorf("Username = %q, want empty", cfg.Username)
	}
}

func TestOverride(t *testing.T) {
	base := Config{Username: "a", Password: "b", APIURL: "http://x/"}
	got := base.Override("flaguser", "", "")
	if got.Username != "flaguser" || got.Password != "b" || got.APIURL != "http://x/" {
		t.Errorf("Override() = %+v", got)
	}
}
