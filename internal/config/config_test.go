package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-clmform/internal/config"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(config.WithEnvFile(""), config.WithLookup(lookupFrom(nil)))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != config.DefaultPort || cfg.RelayURL != config.DefaultRelayURL || cfg.DataDir == "" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.Addr() != ":3000" {
		t.Fatalf("unexpected addr %q", cfg.Addr())
	}
}

func TestLoad_Precedence(t *testing.T) {
	file := writeFile(t, "clmform.yaml", strings.Join([]string{
		"accountId: from-file",
		"relayUrl: http://file.example",
		"port: \"4000\"",
		"allowedOrigins:",
		"  - https://file.example",
	}, "\n"))
	envFile := writeFile(t, ".env", "CLM_ACCOUNT_ID=from-dotenv\nPORT=5000\n")

	cfg, err := config.Load(
		config.WithFile(file),
		config.WithEnvFile(envFile),
		config.WithLookup(lookupFrom(map[string]string{
			"PORT":                    "6000",
			"CLMFORM_ALLOWED_ORIGINS": "https://a.example, ,https://b.example",
		})),
	)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AccountID != "from-dotenv" {
		t.Fatalf("expected .env to override file, got %q", cfg.AccountID)
	}
	if cfg.Port != "6000" {
		t.Fatalf("expected environment to override .env, got %q", cfg.Port)
	}
	if cfg.RelayURL != "http://file.example" {
		t.Fatalf("expected file value to survive, got %q", cfg.RelayURL)
	}
	if diff := cmp.Diff([]string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins); diff != "" {
		t.Fatalf("origins mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_FileFromEnvironment(t *testing.T) {
	file := writeFile(t, "clmform.yaml", "logLevel: debug\nlogFormat: json\n")
	cfg, err := config.Load(config.WithEnvFile(""), config.WithLookup(lookupFrom(map[string]string{
		config.EnvFile: file,
	})))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Fatalf("unexpected logging config %+v", cfg)
	}

	var buf bytes.Buffer
	cfg.Logger(&buf).Debug("hello", "k", "v")
	if !strings.Contains(buf.String(), `"msg":"hello"`) {
		t.Fatalf("expected json debug line, got %q", buf.String())
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := config.Load(config.WithFile(filepath.Join(t.TempDir(), "missing.yaml")), config.WithEnvFile("")); err == nil {
		t.Fatalf("expected missing file error")
	}
	bad := writeFile(t, "bad.yaml", "unknownKey: 1\n")
	if _, err := config.Load(config.WithFile(bad), config.WithEnvFile(""), config.WithLookup(lookupFrom(nil))); err == nil {
		t.Fatalf("expected unknown key error")
	}
	if _, err := config.Load(config.WithEnvFile(""), config.WithLookup(lookupFrom(map[string]string{config.EnvLogLevel: "loud"}))); err == nil {
		t.Fatalf("expected invalid level error")
	}
	if _, err := config.Load(config.WithEnvFile(filepath.Join(t.TempDir(), "absent.env")), config.WithLookup(lookupFrom(nil))); err != nil {
		t.Fatalf("missing .env must be ignored, got %v", err)
	}
}

func TestSplitList(t *testing.T) {
	if got := config.SplitList(""); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}
