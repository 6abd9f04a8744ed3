package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/mitchellh/mapstructure"
)

// Config is the server-level configuration of the sidecar process. The
// policy document itself lives in its own file (Policy.Path) so it can
// be edited and reloaded independently of server settings.
type Config struct {
	// Addr is the address the HTTP server binds to. The sidecar is
	// meant to listen on loopback.
	Addr string `yaml:"addr"`

	Policy PolicyConfig `yaml:"policy"`
	Audit  AuditConfig  `yaml:"audit"`
	Admin  AdminConfig  `yaml:"admin"`
}

// PolicyConfig points at the initial policy document and configures the
// background sync task.
type PolicyConfig struct {
	// Path is the policy document file (JSON or YAML, by extension).
	Path string `yaml:"path"`

	// SyncInterval re-reads Path periodically and swaps the document
	// when it validates. Zero disables the sync task; the reload
	// endpoint still works.
	SyncInterval time.Duration `yaml:"sync_interval"`
}

// AuditConfig selects the audit sink. Type-specific settings are
// captured inline and decoded by the selected sink's constructor.
type AuditConfig struct {
	// Type is the sink type: "file", "memory" or "noop".
	Type string `yaml:"type"`

	// QueueSize bounds the async emission queue. Zero selects the
	// default.
	QueueSize int `yaml:"queue_size"`

	// Options captures sink-specific settings (e.g. "path" for file).
	Options map[string]any `yaml:",inline"`
}

// FileSinkOptions are the inline options of the "file" sink type.
type FileSinkOptions struct {
	Path string `mapstructure:"path"`
}

// DecodeFileSinkOptions decodes the inline option map of a file sink.
func (a *AuditConfig) DecodeFileSinkOptions() (*FileSinkOptions, error) {
	var opts FileSinkOptions
	if err := mapstructure.Decode(a.Options, &opts); err != nil {
		return nil, fmt.Errorf("decoding file sink options: %w", err)
	}
	if opts.Path == "" {
		return nil, fmt.Errorf("audit sink type 'file' requires a path")
	}
	return &opts, nil
}

// AdminConfig configures authentication for the admin surface.
type AdminConfig struct {
	// SigningKey is the HMAC key admin bearer tokens are signed with.
	// Leaving it empty leaves the admin routes unauthenticated, for
	// loopback-only deployments.
	SigningKey string `yaml:"signing_key"`
}

// Load reads and parses the server configuration file at the given
// path. It returns a Config struct or an error if loading, parsing or
// validation fails.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config file: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Addr == "" {
		c.Addr = "127.0.0.1:8443"
	}
	if c.Audit.Type == "" {
		c.Audit.Type = "memory"
	}
}

func (c *Config) Validate() error {
	if c.Policy.Path == "" {
		return fmt.Errorf("policy.path is required")
	}
	if c.Policy.SyncInterval < 0 {
		return fmt.Errorf("policy.sync_interval must not be negative")
	}

	switch c.Audit.Type {
	case "file":
		if _, err := c.Audit.DecodeFileSinkOptions(); err != nil {
			return err
		}
	case "memory", "noop":
	default:
		return fmt.Errorf("unknown audit sink type %q", c.Audit.Type)
	}

	if c.Audit.QueueSize < 0 {
		return fmt.Errorf("audit.queue_size must not be negative")
	}
	return nil
}
