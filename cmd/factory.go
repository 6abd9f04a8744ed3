package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/PredicateSystems/secureclaw/internal/cliconfig"
	"github.com/PredicateSystems/secureclaw/internal/core"
	"github.com/PredicateSystems/secureclaw/internal/engine"
	"github.com/PredicateSystems/secureclaw/internal/policy"
	"github.com/PredicateSystems/secureclaw/pkg/client"
)

// f is the shared command factory. Commands either talk to a remote
// server through GetClient or evaluate a local policy document.
var f = NewFactory()

type Factory struct {
	// RemoteAddr is the address of the SecureClaw server to connect to.
	RemoteAddr string

	// PolicyPath is the policy document used by local commands.
	PolicyPath string
}

func NewFactory() *Factory {
	return &Factory{}
}

// GetClient returns an HTTP client for remote operations, carrying a
// saved admin credential (secureclaw login) or the SECURECLAW_TOKEN
// env var if one is set.
func (f *Factory) GetClient() (*client.Client, error) {
	server := f.RemoteAddr // prio 1: command-line flag
	if server == "" {
		server = viper.GetString(ServerAddrKey) // prio 2: config/env
	}
	if server == "" {
		return nil, fmt.Errorf("server address not configured (use --server or set SECURECLAW_ADDR)")
	}

	var token string
	if cfg, err := cliconfig.Load(); err == nil {
		if cred, err := cfg.GetCredential(server); err == nil { // token prio 1: saved credential
			token = cred.Token
		}
	}

	if envToken := os.Getenv("SECURECLAW_TOKEN"); envToken != "" { // token prio 2: env var
		token = envToken
	}

	return client.New(server, client.WithAuthToken(token)), nil
}

// LoadPolicyDocument parses and validates the policy file set via
// --policy.
func (f *Factory) LoadPolicyDocument() (*core.PolicyDocument, error) {
	if f.PolicyPath == "" {
		return nil, fmt.Errorf("policy file not specified (use --policy)")
	}
	raw, err := os.ReadFile(f.PolicyPath)
	if err != nil {
		return nil, fmt.Errorf("reading policy file: %w", err)
	}
	doc, err := policy.Parse(raw, policy.FormatForPath(f.PolicyPath))
	if err != nil {
		return nil, fmt.Errorf("parsing policy file: %w", err)
	}
	return doc, nil
}

// GetLocalEngine builds an evaluation engine from the --policy file,
// for commands that decide locally without a server.
func (f *Factory) GetLocalEngine() (*engine.Engine, error) {
	doc, err := f.LoadPolicyDocument()
	if err != nil {
		return nil, err
	}
	return engine.New(doc), nil
}

func (f *Factory) bindPolicyFlag(flags *pflag.FlagSet) {
	flags.StringVarP(&f.PolicyPath, "policy", "f", "", "The policy document file to use")
}
