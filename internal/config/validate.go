package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"slices"
)

// Validate ensures the configuration is usable. An empty remote endpoint is
// allowed; commands that talk to the remote check for it themselves.
func (c *Config) Validate() error {
	if err := c.validateRemote(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return c.validatePreview()
}

// RequireEndpoint reports a helpful error when no endpoint is configured.
func (c *Config) RequireEndpoint() error {
	if c.Remote.Endpoint == "" {
		return fmt.Errorf("remote.endpoint is required. Set %s or pass --endpoint", EnvEndpoint)
	}
	return nil
}

func (c *Config) validateRemote() error {
	if c.Remote.TimeoutSeconds < 0 {
		return errors.New("remote.timeout_seconds must not be negative")
	}
	if c.Remote.Endpoint == "" {
		return nil
	}
	parsed, err := url.Parse(c.Remote.Endpoint)
	if err != nil {
		return fmt.Errorf("remote.endpoint: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("remote.endpoint must be an http or https URL, got %q", c.Remote.Endpoint)
	}
	if parsed.Host == "" {
		return fmt.Errorf("remote.endpoint has no host: %q", c.Remote.Endpoint)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.Logging.Level) {
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	if !slices.Contains([]string{"text", "json"}, c.Logging.Format) {
		return fmt.Errorf("logging.format must be text or json; got %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) validatePreview() error {
	if c.Preview.TemplatesDir == "" {
		return nil
	}
	info, err := os.Stat(c.Preview.TemplatesDir)
	if err != nil {
		return fmt.Errorf("preview.templates_dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("preview.templates_dir is not a directory: %q", c.Preview.TemplatesDir)
	}
	return nil
}
