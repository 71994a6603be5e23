package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	c.Remote.Endpoint = strings.TrimSpace(c.Remote.Endpoint)
	c.Remote.UserAgent = strings.TrimSpace(c.Remote.UserAgent)
	if c.Remote.UserAgent == "" {
		c.Remote.UserAgent = defaultUserAgent
	}
	if c.Remote.TimeoutSeconds == 0 {
		c.Remote.TimeoutSeconds = defaultTimeoutSeconds
	}

	c.Server.Addr = strings.TrimSpace(c.Server.Addr)
	if c.Server.Addr == "" {
		c.Server.Addr = defaultServerAddr
	}
	c.Server.OriginPatterns = trimAll(c.Server.OriginPatterns)

	if err := c.normalizeStore(); err != nil {
		return err
	}

	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.Level == "warning" {
		c.Logging.Level = "warn"
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}

	c.Preview.Theme = strings.TrimSpace(c.Preview.Theme)
	c.Preview.Variant = strings.TrimSpace(c.Preview.Variant)
	c.Preview.Title = strings.TrimSpace(c.Preview.Title)
	c.Preview.Action = strings.TrimSpace(c.Preview.Action)
	c.Preview.StylesheetHref = strings.TrimSpace(c.Preview.StylesheetHref)
	if dir := strings.TrimSpace(c.Preview.TemplatesDir); dir != "" {
		var err error
		if c.Preview.TemplatesDir, err = expandPath(dir); err != nil {
			return fmt.Errorf("preview.templates_dir: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeStore() error {
	c.Store.Addr = strings.TrimSpace(c.Store.Addr)
	if c.Store.Addr == "" {
		c.Store.Addr = defaultStoreAddr
	}
	if strings.TrimSpace(c.Store.Path) == "" {
		c.Store.Path = defaultStorePath
	}
	var err error
	if c.Store.Path, err = expandPath(strings.TrimSpace(c.Store.Path)); err != nil {
		return fmt.Errorf("store.path: %w", err)
	}
	c.Store.Route = strings.TrimSpace(c.Store.Route)
	if c.Store.Route == "" {
		c.Store.Route = defaultStoreRoute
	}
	if !strings.HasPrefix(c.Store.Route, "/") {
		c.Store.Route = "/" + c.Store.Route
	}
	c.Store.WrapKey = strings.TrimSpace(c.Store.WrapKey)
	return nil
}

func trimAll(values []string) []string {
	var out []string
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
