package config

import "os"

const (
	// DefaultEndpoint is used when neither config file nor environment name a platform URL.
	DefaultEndpoint = "https://localhost:9443"
	// DefaultViewServer is the conventional view server name.
	DefaultViewServer = "view-server"
	// DefaultOutbox is the subdirectory generated report files are written under.
	DefaultOutbox = "formset-outbox"
)

// GetDefaultConfig returns the default configuration. Environment variables
// supply connection defaults so a config file is optional; resolution happens
// here, once, at load time.
func GetDefaultConfig() Config {
	return Config{
		Connection: Connection{
			Endpoint:   envOr("FORMSET_ENDPOINT", DefaultEndpoint),
			ViewServer: envOr("FORMSET_VIEW_SERVER", DefaultViewServer),
			User:       envOr("FORMSET_USER", ""),
			Secret:     envOr("FORMSET_SECRET", ""),
		},
		Output: Output{
			Root:   envOr("FORMSET_OUTPUT_ROOT", "."),
			Outbox: DefaultOutbox,
		},
		Server: Server{
			Port:       8085,
			Host:       "localhost",
			Transport:  TransportStreamableHTTP,
			MaxWorkers: 8,
		},
		LogLevel: "info",
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
