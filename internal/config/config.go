package config

import (
	"time"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

type SessionConfig struct {
	// Pepper is mixed into session token hashes before storage.
	Pepper string
	// TTL is fixed from issuance; sessions do not slide.
	TTL time.Duration
}

type Config struct {
	Environment string
	DatabaseURL string
	HTTP        HTTPConfig
	Session     SessionConfig
	CORSOrigins []string
}

// Load reads config.yaml when present and lets environment variables
// (ENVIRONMENT, DATABASE_URL, HTTP_PORT, SESSION_PEPPER, SESSION_TTL...)
// override every key.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	v.SetDefault("environment", "development")
	v.SetDefault("database_url", "roomreserve.db")
	v.SetDefault("http.host", "")
	v.SetDefault("http_port", 8080)
	v.SetDefault("session_pepper", "")
	v.SetDefault("session_ttl", 2*time.Hour)
	v.SetDefault("cors_origins", []string{})

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg := &Config{
		Environment: v.GetString("environment"),
		DatabaseURL: v.GetString("database_url"),
		HTTP: HTTPConfig{
			Host: v.GetString("http.host"),
			Port: v.GetInt("http_port"),
		},
		Session: SessionConfig{
			Pepper: v.GetString("session_pepper"),
			TTL:    v.GetDuration("session_ttl"),
		},
		CORSOrigins: v.GetStringSlice("cors_origins"),
	}
	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment != "production"
}
