package config

// Config is the top-level configuration structure for formset.
type Config struct {
	Connection Connection `yaml:"connection"`
	Output     Output     `yaml:"output"`
	Server     Server     `yaml:"server"`
	LogLevel   string     `yaml:"logLevel,omitempty"` // debug|info|warn|error (default: info)
}

// Connection identifies the remote metadata service and the identity used
// against it. Values here become the credentials passed by value into every
// dispatch; the engine core never reads the environment itself.
type Connection struct {
	Endpoint   string `yaml:"endpoint,omitempty"`   // Platform URL, e.g. https://localhost:9443
	ViewServer string `yaml:"viewServer,omitempty"` // View server name (default: view-server)
	User       string `yaml:"user,omitempty"`       // User identity for session acquisition
	Secret     string `yaml:"secret,omitempty"`     // User secret; prefer FORMSET_SECRET over the file
}

// Output controls where narrative report files land.
type Output struct {
	Root   string `yaml:"root,omitempty"`   // Root directory for generated files (default: cwd)
	Outbox string `yaml:"outbox,omitempty"` // Subdirectory under root (default: formset-outbox)
}

const (
	// TransportStreamableHTTP is the streamable HTTP transport.
	TransportStreamableHTTP = "streamable-http"
	// TransportStdio is the standard I/O transport.
	TransportStdio = "stdio"
)

// Server defines the configuration for the MCP tool server (`formset serve`).
type Server struct {
	Port       int    `yaml:"port,omitempty"`       // Port for the HTTP transport (default: 8085)
	Host       string `yaml:"host,omitempty"`       // Host to bind to (default: localhost)
	Transport  string `yaml:"transport,omitempty"`  // Transport to use (default: streamable-http)
	MaxWorkers int    `yaml:"maxWorkers,omitempty"` // Concurrent report executions (default: 8)
	ReportDir  string `yaml:"reportDir,omitempty"`  // Directory of extra report definitions, watched for changes
}
