package config

const (
	defaultTimeoutSeconds = 15
	defaultUserAgent      = "go-formbuilder"
	defaultServerAddr     = "127.0.0.1:8080"
	defaultStoreAddr      = "127.0.0.1:8081"
	defaultStorePath      = "~/.local/share/formbuilder/schema.db"
	defaultStoreRoute     = "/schema"
	defaultLogLevel       = "info"
	defaultLogFormat      = "text"
	defaultPreviewTheme   = "formbuilder"
	defaultPreviewTitle   = "Form preview"

	// EnvEndpoint overrides remote.endpoint.
	EnvEndpoint = "FORMBUILDER_ENDPOINT"
	// EnvAddr overrides server.addr.
	EnvAddr = "FORMBUILDER_ADDR"
)

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Remote: Remote{
			TimeoutSeconds: defaultTimeoutSeconds,
			UserAgent:      defaultUserAgent,
		},
		Server: Server{
			Addr: defaultServerAddr,
		},
		Store: Store{
			Addr:  defaultStoreAddr,
			Path:  defaultStorePath,
			Route: defaultStoreRoute,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Preview: Preview{
			Theme: defaultPreviewTheme,
			Title: defaultPreviewTitle,
		},
	}
}
