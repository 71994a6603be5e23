// Package config loads formbuilder settings from YAML, TOML or JSON files,
// applies defaults and environment overrides, and validates the result.
package config
