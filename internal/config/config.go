package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Remote configures the schema endpoint the editor loads from and saves to.
type Remote struct {
	Endpoint       string `yaml:"endpoint" toml:"endpoint" json:"endpoint"`
	TimeoutSeconds int    `yaml:"timeout_seconds" toml:"timeout_seconds" json:"timeout_seconds"`
	UserAgent      string `yaml:"user_agent" toml:"user_agent" json:"user_agent"`
}

// Timeout returns the request timeout as a duration.
func (r Remote) Timeout() time.Duration {
	return time.Duration(r.TimeoutSeconds) * time.Second
}

// Server configures the HTTP editing API.
type Server struct {
	Addr string `yaml:"addr" toml:"addr" json:"addr"`
	// OriginPatterns lists extra hosts allowed to open the websocket feed.
	OriginPatterns []string `yaml:"origin_patterns" toml:"origin_patterns" json:"origin_patterns"`
}

// Store configures the development schema endpoint.
type Store struct {
	Addr  string `yaml:"addr" toml:"addr" json:"addr"`
	Path  string `yaml:"path" toml:"path" json:"path"`
	Route string `yaml:"route" toml:"route" json:"route"`
	// WrapKey, when set, wraps GET responses as {"<key>": [...]}.
	WrapKey string `yaml:"wrap_key" toml:"wrap_key" json:"wrap_key"`
}

// Logging configures log output.
type Logging struct {
	Level  string `yaml:"level" toml:"level" json:"level"`
	Format string `yaml:"format" toml:"format" json:"format"`
}

// Preview configures the HTML preview renderer.
type Preview struct {
	Theme          string `yaml:"theme" toml:"theme" json:"theme"`
	Variant        string `yaml:"variant" toml:"variant" json:"variant"`
	Title          string `yaml:"title" toml:"title" json:"title"`
	Action         string `yaml:"action" toml:"action" json:"action"`
	StylesheetHref string `yaml:"stylesheet_href" toml:"stylesheet_href" json:"stylesheet_href"`
	// TemplatesDir holds template files that replace bundled ones of the
	// same path, for example templates/form.tmpl.
	TemplatesDir string `yaml:"templates_dir" toml:"templates_dir" json:"templates_dir"`
}

// Config holds every formbuilder setting.
//
//   - Remote: schema endpoint and request settings
//   - Server: editing API bind address
//   - Store: development endpoint backed by SQLite
//   - Logging: level and format
//   - Preview: theme and page settings for the HTML preview
type Config struct {
	Remote  Remote  `yaml:"remote" toml:"remote" json:"remote"`
	Server  Server  `yaml:"server" toml:"server" json:"server"`
	Store   Store   `yaml:"store" toml:"store" json:"store"`
	Logging Logging `yaml:"logging" toml:"logging" json:"logging"`
	Preview Preview `yaml:"preview" toml:"preview" json:"preview"`
}

// Format names a configuration file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// ErrUnsupportedFormat reports a file extension Load does not understand.
var ErrUnsupportedFormat = errors.New("config: unsupported format")

// FormatForPath picks the syntax from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// candidatePaths are searched in order when Load is given no path.
var candidatePaths = []string{
	"formbuilder.yaml",
	"formbuilder.yml",
	"formbuilder.toml",
	"~/.config/formbuilder/config.yaml",
	"~/.config/formbuilder/config.toml",
}

// DefaultConfigPath returns where `config init` writes a new file.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/formbuilder/config.yaml")
}

// Load locates, parses, and validates a configuration file. An explicit path
// that does not exist is an error; with no path the first candidate found is
// used and, failing that, the defaults. Environment overrides are applied
// after the file. The returned string is the file that was read, or "".
func Load(path string) (*Config, string, error) {
	cfg := Default()

	resolved, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", err
	}

	if resolved != "" {
		data, err := os.ReadFile(resolved)
		if err != nil {
			return nil, "", fmt.Errorf("config: read %s: %w", resolved, err)
		}
		format, err := FormatForPath(resolved)
		if err != nil {
			return nil, "", err
		}
		if err := Decode(data, format, &cfg); err != nil {
			return nil, "", fmt.Errorf("config: parse %s: %w", resolved, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.normalize(); err != nil {
		return nil, "", err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return &cfg, resolved, nil
}

// Decode parses data into cfg. Keys missing from data keep their value in
// cfg. JSON goes through the YAML decoder.
func Decode(data []byte, format Format, cfg *Config) error {
	switch format {
	case FormatTOML:
		return toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(cfg)
	case FormatYAML, FormatJSON:
		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Encode writes cfg in the requested syntax.
func Encode(w io.Writer, cfg Config, format Format) error {
	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(cfg)
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(cfg); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// CreateSample writes the default configuration to path, in the syntax its
// extension names. Existing files are left alone.
func CreateSample(path string) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}
	if format == FormatJSON {
		return fmt.Errorf("%w: samples are written as YAML or TOML", ErrUnsupportedFormat)
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config: %s already exists", path)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: create directory: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := Encode(&buf, Default(), format); err != nil {
		return fmt.Errorf("config: encode sample: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("config: write sample: %w", err)
	}
	return nil
}

func resolveConfigPath(path string) (string, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", err
		}
		if _, err := os.Stat(expanded); err != nil {
			return "", fmt.Errorf("config: stat %s: %w", expanded, err)
		}
		return expanded, nil
	}

	for _, candidate := range candidatePaths {
		expanded, err := expandPath(candidate)
		if err != nil {
			continue
		}
		info, err := os.Stat(expanded)
		if err == nil && !info.IsDir() {
			return expanded, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("config: stat %s: %w", expanded, err)
		}
	}
	return "", nil
}

func (c *Config) applyEnv() {
	if value, ok := os.LookupEnv(EnvEndpoint); ok && strings.TrimSpace(value) != "" {
		c.Remote.Endpoint = value
	}
	if value, ok := os.LookupEnv(EnvAddr); ok && strings.TrimSpace(value) != "" {
		c.Server.Addr = value
	}
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("config: resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("config: resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// ExpandPath resolves a leading "~" against the user's home directory.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
