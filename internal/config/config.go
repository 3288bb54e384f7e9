// Package config loads cardeactl configuration from file, environment,
// and flags, and carries it through the cobra command context.
package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// managedHostSuffix marks hosting under the platform's managed domain;
// the developer bypass is hard-disabled there.
const managedHostSuffix = ".azurestaticapps.net"

// Config holds the settings shared by all cardeactl commands.
type Config struct {
	// Server is the oracle API base URL.
	Server string `mapstructure:"server"`
	// ManagedOrigin, when set, is the managed-hosting origin whose auth
	// gateway is authoritative for identity.
	ManagedOrigin string `mapstructure:"managed_origin"`
	// DevBypass enables the local-development auth bypass.
	DevBypass bool `mapstructure:"dev_bypass"`
	// MicrosoftIssuer and MicrosoftClientID configure the interactive
	// Microsoft login. Both empty is valid; the option is disabled.
	MicrosoftIssuer   string `mapstructure:"microsoft_issuer"`
	MicrosoftClientID string `mapstructure:"microsoft_client_id"`
	// Timeout bounds every network call.
	Timeout time.Duration `mapstructure:"timeout"`
	// NonInteractive disables prompts.
	NonInteractive bool `mapstructure:"non_interactive"`
	// CredentialDir overrides the credential store location.
	CredentialDir string `mapstructure:"credential_dir"`
}

// Load reads ~/.cardea/config.yaml (when present), CARDEA_* environment
// variables, and the given flags, in increasing precedence.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault("server", "http://localhost:8000")
	v.SetDefault("timeout", 10*time.Second)

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".cardea"))
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("CARDEA")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// Unmarshal only visits keys viper already knows about; bind every
	// config key explicitly so env-only settings are not dropped.
	for _, key := range []string{
		"server",
		"managed_origin",
		"dev_bypass",
		"microsoft_issuer",
		"microsoft_client_id",
		"timeout",
		"non_interactive",
		"credential_dir",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
		// The flag spells the key with a dash; rebind it under the
		// struct's key so it survives Unmarshal.
		if f := flags.Lookup("non-interactive"); f != nil {
			if err := v.BindPFlag("non_interactive", f); err != nil {
				return nil, fmt.Errorf("failed to bind non-interactive flag: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Managed reports whether the app runs against managed hosting: either
// an explicit managed origin, or a server URL under the managed domain.
func (c *Config) Managed() bool {
	if c.ManagedOrigin != "" {
		return true
	}
	u, err := url.Parse(c.Server)
	if err != nil {
		return false
	}
	return strings.HasSuffix(strings.ToLower(u.Hostname()), managedHostSuffix)
}

// GatewayOrigin is the origin whose /.auth endpoints to query.
func (c *Config) GatewayOrigin() string {
	if c.ManagedOrigin != "" {
		return c.ManagedOrigin
	}
	return c.Server
}

type contextKey string

const configKey contextKey = "cardeactl-config"

// IntoContext adds the config to the cobra command context. Called in
// the root command's PersistentPreRunE.
func IntoContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext retrieves the config from the command context.
func FromContext(ctx context.Context) (*Config, bool) {
	cfg, ok := ctx.Value(configKey).(*Config)
	return cfg, ok
}

// MustFromContext retrieves the config or panics; for use inside RunE
// funcs where the root command is known to have injected it.
func MustFromContext(ctx context.Context) *Config {
	cfg, ok := FromContext(ctx)
	if !ok {
		panic("cardeactl: config not found in context - this is a bug in cardeactl")
	}
	return cfg
}
