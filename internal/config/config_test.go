package config

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir()) // keep a real ~/.cardea/config.yaml out

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Server != "http://localhost:8000" {
		t.Fatalf("unexpected default server: %q", cfg.Server)
	}
	if cfg.Timeout != 10*time.Second {
		t.Fatalf("unexpected default timeout: %s", cfg.Timeout)
	}
	if cfg.Managed() {
		t.Fatal("defaults must not be managed")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CARDEA_SERVER", "https://oracle.example.net")
	t.Setenv("CARDEA_DEV_BYPASS", "true")
	t.Setenv("CARDEA_MANAGED_ORIGIN", "https://app.azurestaticapps.net")
	t.Setenv("CARDEA_MICROSOFT_ISSUER", "https://login.microsoftonline.com/t/v2.0")
	t.Setenv("CARDEA_MICROSOFT_CLIENT_ID", "client-1")
	t.Setenv("CARDEA_CREDENTIAL_DIR", "/tmp/cardea-creds")
	t.Setenv("CARDEA_TIMEOUT", "30s")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Server != "https://oracle.example.net" {
		t.Fatalf("env server not applied: %q", cfg.Server)
	}
	if !cfg.DevBypass {
		t.Fatal("env dev bypass not applied")
	}
	if cfg.ManagedOrigin != "https://app.azurestaticapps.net" {
		t.Fatalf("env managed origin not applied: %q", cfg.ManagedOrigin)
	}
	if !cfg.Managed() {
		t.Fatal("managed origin from env must flip Managed()")
	}
	if cfg.MicrosoftIssuer != "https://login.microsoftonline.com/t/v2.0" || cfg.MicrosoftClientID != "client-1" {
		t.Fatalf("env microsoft settings not applied: %q %q", cfg.MicrosoftIssuer, cfg.MicrosoftClientID)
	}
	if cfg.CredentialDir != "/tmp/cardea-creds" {
		t.Fatalf("env credential dir not applied: %q", cfg.CredentialDir)
	}
	if cfg.Timeout != 30*time.Second {
		t.Fatalf("env timeout not applied: %s", cfg.Timeout)
	}
}

func TestNonInteractiveFromEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CARDEA_NON_INTERACTIVE", "true")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !cfg.NonInteractive {
		t.Fatal("env non-interactive not applied")
	}
}

func TestFlagsWinOverEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CARDEA_SERVER", "https://env.example.net")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("server", "http://localhost:8000", "")
	if err := flags.Set("server", "https://flag.example.net"); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(flags)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Server != "https://flag.example.net" {
		t.Fatalf("flag did not win: %q", cfg.Server)
	}
}

func TestNonInteractiveFlagBinds(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Bool("non-interactive", false, "")
	if err := flags.Set("non-interactive", "true"); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(flags)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !cfg.NonInteractive {
		t.Fatal("non-interactive flag did not bind")
	}
}

func TestManagedDetection(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{"plain localhost", Config{Server: "http://localhost:8000"}, false},
		{"explicit managed origin", Config{Server: "http://localhost:8000", ManagedOrigin: "https://app.azurestaticapps.net"}, true},
		{"managed host suffix", Config{Server: "https://brave-tree-123.azurestaticapps.net"}, true},
		{"suffix is case-insensitive", Config{Server: "https://App.AzureStaticApps.NET"}, true},
		{"lookalike host", Config{Server: "https://azurestaticapps.net.evil.example"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Managed(); got != tt.want {
				t.Fatalf("Managed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGatewayOrigin(t *testing.T) {
	cfg := Config{Server: "https://api.example.net", ManagedOrigin: "https://app.example.net"}
	if got := cfg.GatewayOrigin(); got != "https://app.example.net" {
		t.Fatalf("expected the managed origin, got %q", got)
	}

	cfg.ManagedOrigin = ""
	if got := cfg.GatewayOrigin(); got != "https://api.example.net" {
		t.Fatalf("expected the server URL, got %q", got)
	}
}

func TestContextRoundTrip(t *testing.T) {
	cfg := &Config{Server: "http://localhost:8000"}
	ctx := IntoContext(context.Background(), cfg)

	got, ok := FromContext(ctx)
	if !ok || got != cfg {
		t.Fatal("config did not round-trip through context")
	}
	if MustFromContext(ctx) != cfg {
		t.Fatal("MustFromContext mismatch")
	}

	if _, ok := FromContext(context.Background()); ok {
		t.Fatal("expected no config in a bare context")
	}
}
