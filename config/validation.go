package config

import (
	"fmt"
	"strings"
)

// requiredField names a Config field that must be non-empty at startup.
type requiredField struct {
	name  string
	value func(*Config) string
}

var requiredFields = []requiredField{
	{"server port", func(c *Config) string { return c.ServerPort }},
	{"database host", func(c *Config) string { return c.DBHost }},
	{"database port", func(c *Config) string { return c.DBPort }},
	{"database user", func(c *Config) string { return c.DBUser }},
	{"database password", func(c *Config) string { return c.DBPassword }},
	{"database name", func(c *Config) string { return c.DBName }},
	{"jwt secret", func(c *Config) string { return c.JWTSecret }},
}

// ValidateConfig checks that every setting the server cannot run without is
// present. Redis settings are deliberately not required: without them the
// server runs with rate limiting disabled.
func ValidateConfig(cfg *Config) error {
	var missing []string
	for _, field := range requiredFields {
		if field.value(cfg) == "" {
			missing = append(missing, field.name)
		}
	}

	if cfg.DBSSLMode == "" {
		cfg.DBSSLMode = "disable"
	}
	if cfg.ServerHost == "" {
		cfg.ServerHost = "0.0.0.0"
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}
