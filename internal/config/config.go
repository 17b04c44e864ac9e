package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-clmform/pkg/clm"
)

// Environment variables read by Load.
const (
	EnvFile           = "CLMFORM_CONFIG"
	EnvDataDir        = "CLMFORM_DATA_DIR"
	EnvRelayURL       = "CLMFORM_RELAY_URL"
	EnvAccountID      = "CLM_ACCOUNT_ID"
	EnvPort           = "PORT"
	EnvCLMBaseURL     = "CLM_BASE_URL"
	EnvOAuthURL       = "CLM_OAUTH_URL"
	EnvAllowedOrigins = "CLMFORM_ALLOWED_ORIGINS"
	EnvLogLevel       = "CLMFORM_LOG_LEVEL"
	EnvLogFormat      = "CLMFORM_LOG_FORMAT"
)

const (
	DefaultPort     = "3000"
	DefaultRelayURL = "http://localhost:3000"
	defaultDirName  = "clmform"
)

// Config holds the settings shared by the CLI commands and the relay.
type Config struct {
	DataDir        string   `yaml:"dataDir"`
	RelayURL       string   `yaml:"relayUrl"`
	AccountID      string   `yaml:"accountId"`
	Port           string   `yaml:"port"`
	CLMBaseURL     string   `yaml:"clmBaseUrl"`
	OAuthURL       string   `yaml:"oauthUrl"`
	AllowedOrigins []string `yaml:"allowedOrigins"`
	LogLevel       string   `yaml:"logLevel"`
	LogFormat      string   `yaml:"logFormat"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		DataDir:    defaultDataDir(),
		RelayURL:   DefaultRelayURL,
		Port:       DefaultPort,
		CLMBaseURL: clm.DefaultBaseURL,
		OAuthURL:   clm.DefaultOAuthURL,
		LogLevel:   "info",
		LogFormat:  "text",
	}
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, defaultDirName)
	}
	return "." + defaultDirName
}

// Option customises Load.
type Option func(*loader)

type loader struct {
	file    string
	envFile string
	lookup  func(string) (string, bool)
}

// WithFile reads a YAML file on top of the defaults. A missing file is an
// error.
func WithFile(path string) Option {
	return func(l *loader) {
		l.file = path
	}
}

// WithEnvFile reads KEY=value pairs from path. Real environment variables
// take precedence. A missing file is ignored.
func WithEnvFile(path string) Option {
	return func(l *loader) {
		l.envFile = path
	}
}

// WithLookup replaces os.LookupEnv.
func WithLookup(lookup func(string) (string, bool)) Option {
	return func(l *loader) {
		if lookup != nil {
			l.lookup = lookup
		}
	}
}

// Load resolves the configuration: defaults, then the YAML file, then the
// .env file, then the process environment. Command-line flags are applied by
// the caller afterwards.
func Load(options ...Option) (Config, error) {
	l := loader{envFile: ".env", lookup: os.LookupEnv}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&l)
	}

	dotenv, err := readEnvFile(l.envFile)
	if err != nil {
		return Config{}, err
	}
	lookup := func(key string) (string, bool) {
		if v, ok := l.lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}

	cfg := Default()
	file := l.file
	if file == "" {
		if v, ok := lookup(EnvFile); ok && v != "" {
			file = v
		}
	}
	if file != "" {
		if err := cfg.mergeFile(file); err != nil {
			return Config{}, err
		}
	}
	cfg.mergeEnv(lookup)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readEnvFile(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read env file %s: %w", path, err)
	}
	return values, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	var file Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	c.merge(file)
	return nil
}

// merge copies the non-zero fields of other into c.
func (c *Config) merge(other Config) {
	set := func(dst *string, v string) {
		if strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	set(&c.DataDir, other.DataDir)
	set(&c.RelayURL, other.RelayURL)
	set(&c.AccountID, other.AccountID)
	set(&c.Port, other.Port)
	set(&c.CLMBaseURL, other.CLMBaseURL)
	set(&c.OAuthURL, other.OAuthURL)
	set(&c.LogLevel, other.LogLevel)
	set(&c.LogFormat, other.LogFormat)
	if len(other.AllowedOrigins) > 0 {
		c.AllowedOrigins = append([]string(nil), other.AllowedOrigins...)
	}
}

func (c *Config) mergeEnv(lookup func(string) (string, bool)) {
	get := func(key string) string {
		v, _ := lookup(key)
		return v
	}
	c.merge(Config{
		DataDir:        get(EnvDataDir),
		RelayURL:       get(EnvRelayURL),
		AccountID:      get(EnvAccountID),
		Port:           get(EnvPort),
		CLMBaseURL:     get(EnvCLMBaseURL),
		OAuthURL:       get(EnvOAuthURL),
		AllowedOrigins: SplitList(get(EnvAllowedOrigins)),
		LogLevel:       get(EnvLogLevel),
		LogFormat:      get(EnvLogFormat),
	})
}

// SplitList splits a comma separated list, dropping blanks.
func SplitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks values that would otherwise fail late.
func (c Config) Validate() error {
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.LogFormat)
	}
	if c.DataDir == "" {
		return errors.New("config: data directory is required")
	}
	return nil
}

// Addr is the relay listen address.
func (c Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// Logger builds the slog logger described by LogLevel and LogFormat.
func (c Config) Logger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return level, fmt.Errorf("config: unknown log level %q", raw)
	}
	return level, nil
}
