// Package config handles application configuration via environment variables.
package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/tendant/oauth2-store/internal/store/docstore"
)

// Config holds all configuration for the storage adapter binaries.
type Config struct {
	// MongoDB settings
	MongoURI      string `env:"OAUTHSTORE_MONGO_URI" env-default:"mongodb://localhost:27017"`
	MongoDatabase string `env:"OAUTHSTORE_MONGO_DATABASE" env-default:"oauth2"`

	// Collection-name overrides; empty values keep the defaults
	CodeTable         string `env:"OAUTHSTORE_CODE_TABLE" env-default:""`
	AccessTokenTable  string `env:"OAUTHSTORE_ACCESS_TOKEN_TABLE" env-default:""`
	RefreshTokenTable string `env:"OAUTHSTORE_REFRESH_TOKEN_TABLE" env-default:""`
	ClientTable       string `env:"OAUTHSTORE_CLIENT_TABLE" env-default:""`
	UserTable         string `env:"OAUTHSTORE_USER_TABLE" env-default:""`
	JwtTable          string `env:"OAUTHSTORE_JWT_TABLE" env-default:""`
	JtiTable          string `env:"OAUTHSTORE_JTI_TABLE" env-default:""`

	// Admin server settings
	Host string `env:"OAUTHSTORE_HOST" env-default:"0.0.0.0"`
	Port int    `env:"OAUTHSTORE_PORT" env-default:"8080"`

	// Rate limiting for registration endpoints (requests per minute per IP)
	RegisterRateLimit int `env:"OAUTHSTORE_REGISTER_RATE_LIMIT" env-default:"10"`

	// Logging
	LogLevel  string `env:"OAUTHSTORE_LOG_LEVEL" env-default:"info"`
	LogFormat string `env:"OAUTHSTORE_LOG_FORMAT" env-default:"json"` // json or text
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// Addr returns the admin server address in host:port format.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Tables returns the collection-name configuration for the store. Unset
// overrides fall back to defaults at store construction.
func (c *Config) Tables() docstore.Tables {
	return docstore.Tables{
		CodeTable:         c.CodeTable,
		AccessTokenTable:  c.AccessTokenTable,
		RefreshTokenTable: c.RefreshTokenTable,
		ClientTable:       c.ClientTable,
		UserTable:         c.UserTable,
		JwtTable:          c.JwtTable,
		JtiTable:          c.JtiTable,
	}
}
