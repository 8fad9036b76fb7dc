// Package config resolves CLI settings from flags, the environment and an
// optional .env file.
package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"github.com/naveenspark/islendingabok/pkg/client"
)

// Environment variables read by Load, alongside client.EnvUser and client.EnvPassword.
const (
	EnvAPIURL    = "ISL_API_URL"
	EnvLogLevel  = "ISL_LOG_LEVEL"
	EnvLogFormat = "ISL_LOG_FORMAT"
)

// Config is the resolved CLI configuration.
type Config struct {
	Username  string
	Password  string
	APIURL    string
	LogLevel  string
	LogFormat string
}

// Load reads the named .env files (default ".env") into the process
// environment without overriding variables already set, then builds a Config
// from the environment. A missing .env file is not an error.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, path := range envFiles {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}

	cfg := Config{
		Username:  os.Getenv(client.EnvUser),
		Password:  os.Getenv(client.EnvPassword),
		APIURL:    os.Getenv(EnvAPIURL),
		LogLevel:  os.Getenv(EnvLogLevel),
		LogFormat: os.Getenv(EnvLogFormat),
	}
	if cfg.APIURL == "" {
		cfg.APIURL = client.DefaultBaseURL
	}
	return cfg, nil
}

// Override replaces fields with non-empty values from flags.
func (c Config) Override(username, password, apiURL string) Config {
	if username != "" {
		c.Username = username
	}
	if password != "" {
		c.Password = password
	}
	if apiURL != "" {
		c.APIURL = apiURL
	}
	return c
}
