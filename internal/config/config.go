// Package config carga la configuración del servicio: archivo YAML opcional,
// luego variables de entorno, luego defaults, luego validación.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvConfigFile = "CONFIG_FILE"

	EnvPort          = "PORT"
	EnvLogLevel      = "LOG_LEVEL"
	EnvLogFormat     = "LOG_FORMAT"
	EnvAppName       = "APP_NAME"
	EnvDBDSN         = "DB_DSN"
	EnvAuthMode      = "AUTH_MODE"
	EnvOIDCIssuer    = "OIDC_ISSUER"
	EnvOIDCClientID  = "OIDC_CLIENT_ID"
	EnvSubjects      = "SUBJECTS_BACKEND"
	EnvProvider      = "INFERENCE_PROVIDER"
	EnvTimeout       = "INFERENCE_TIMEOUT"
	EnvMaxConcurrent = "INFERENCE_MAX_CONCURRENT"
	EnvOpenAIBaseURL = "OPENAI_BASE_URL"
	EnvOpenAIKey     = "OPENAI_API_KEY"
	EnvOpenAIModel   = "OPENAI_MODEL"
	EnvGeminiKey     = "GEMINI_API_KEY"
	EnvGeminiModel   = "GEMINI_MODEL"
	EnvAuditBackend  = "AUDIT_BACKEND"
	EnvAuditSQLite   = "AUDIT_SQLITE_PATH"
)

// MaxInferenceTimeout es el techo que acepta la config; coincide con el del dominio.
const MaxInferenceTimeout = 30 * time.Second

const (
	AuthDev  = "dev"
	AuthOIDC = "oidc"

	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendLog      = "log"

	ProviderCanned = "canned"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Subjects  SubjectsConfig  `yaml:"subjects"`
	Inference InferenceConfig `yaml:"inference"`
	Audit     AuditConfig     `yaml:"audit"`
}

type ServerConfig struct {
	Port            string `yaml:"port"`
	ReadTimeout     string `yaml:"read_timeout"`
	WriteTimeout    string `yaml:"write_timeout"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	App    string `yaml:"app"`
}

type DatabaseConfig struct {
	DSN             string `yaml:"dsn"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	ConnMaxLifetime string `yaml:"conn_max_lifetime"`
}

type AuthConfig struct {
	Mode     string `yaml:"mode"`
	Issuer   string `yaml:"issuer"`
	ClientID string `yaml:"client_id"`
}

type SubjectsConfig struct {
	Backend string `yaml:"backend"`
}

type InferenceConfig struct {
	Provider      string       `yaml:"provider"`
	Timeout       string       `yaml:"timeout"`
	MaxConcurrent int          `yaml:"max_concurrent"`
	OpenAI        OpenAIConfig `yaml:"openai"`
	Gemini        GeminiConfig `yaml:"gemini"`
}

type OpenAIConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type AuditConfig struct {
	Backend       string `yaml:"backend"`
	SQLitePath    string `yaml:"sqlite_path"`
	IncludePrompt bool   `yaml:"include_prompt"`
}

// Load lee path (o CONFIG_FILE si path está vacío). Sin archivo, todo sale de env + defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path == "" {
		path = strings.TrimSpace(os.Getenv(EnvConfigFile))
	}
	if path != "" {
		loaded, err := load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}
	return cfg, nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) finalize() error {
	if err := c.loadEnv(); err != nil {
		return err
	}
	c.loadDefaults()
	return c.validate()
}

func (c *Config) loadEnv() error {
	setString(&c.Server.Port, EnvPort)
	setString(&c.Log.Level, EnvLogLevel)
	setString(&c.Log.Format, EnvLogFormat)
	setString(&c.Log.App, EnvAppName)
	setString(&c.Database.DSN, EnvDBDSN)
	setString(&c.Auth.Mode, EnvAuthMode)
	setString(&c.Auth.Issuer, EnvOIDCIssuer)
	setString(&c.Auth.ClientID, EnvOIDCClientID)
	setString(&c.Subjects.Backend, EnvSubjects)
	setString(&c.Inference.Provider, EnvProvider)
	setString(&c.Inference.Timeout, EnvTimeout)
	setString(&c.Inference.OpenAI.BaseURL, EnvOpenAIBaseURL)
	setString(&c.Inference.OpenAI.APIKey, EnvOpenAIKey)
	setString(&c.Inference.OpenAI.Model, EnvOpenAIModel)
	setString(&c.Inference.Gemini.APIKey, EnvGeminiKey)
	setString(&c.Inference.Gemini.Model, EnvGeminiModel)
	setString(&c.Audit.Backend, EnvAuditBackend)
	setString(&c.Audit.SQLitePath, EnvAuditSQLite)

	if v := strings.TrimSpace(os.Getenv(EnvMaxConcurrent)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvMaxConcurrent, err)
		}
		c.Inference.MaxConcurrent = n
	}
	return nil
}

func setString(dst *string, env string) {
	if v := strings.TrimSpace(os.Getenv(env)); v != "" {
		*dst = v
	}
}

func (c *Config) loadDefaults() {
	def := func(dst *string, v string) {
		if strings.TrimSpace(*dst) == "" {
			*dst = v
		}
	}

	def(&c.Server.Port, "8080")
	def(&c.Server.ReadTimeout, "5s")
	// tiene que cubrir el timeout de inferencia
	def(&c.Server.WriteTimeout, "40s")
	def(&c.Server.ShutdownTimeout, "15s")

	def(&c.Log.Level, "info")
	def(&c.Log.Format, "text")
	def(&c.Log.App, "vet-intelligent")

	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	def(&c.Database.ConnMaxLifetime, "15m")

	def(&c.Auth.Mode, AuthDev)
	def(&c.Subjects.Backend, BackendMemory)

	def(&c.Inference.Provider, ProviderCanned)
	def(&c.Inference.Timeout, "30s")
	if c.Inference.MaxConcurrent == 0 {
		c.Inference.MaxConcurrent = 8
	}

	def(&c.Audit.Backend, BackendLog)
	def(&c.Audit.SQLitePath, "data/audit.db")

	c.Auth.Mode = strings.ToLower(c.Auth.Mode)
	c.Subjects.Backend = strings.ToLower(c.Subjects.Backend)
	c.Inference.Provider = strings.ToLower(c.Inference.Provider)
	c.Audit.Backend = strings.ToLower(c.Audit.Backend)
}

func (c *Config) validate() error {
	var errs []error

	for name, v := range map[string]string{
		"server.read_timeout":        c.Server.ReadTimeout,
		"server.write_timeout":       c.Server.WriteTimeout,
		"server.shutdown_timeout":    c.Server.ShutdownTimeout,
		"database.conn_max_lifetime": c.Database.ConnMaxLifetime,
	} {
		if _, err := time.ParseDuration(v); err != nil {
			errs = append(errs, fmt.Errorf("invalid %s: %w", name, err))
		}
	}

	if t, err := time.ParseDuration(c.Inference.Timeout); err != nil {
		errs = append(errs, fmt.Errorf("invalid inference.timeout: %w", err))
	} else if t <= 0 || t > MaxInferenceTimeout {
		errs = append(errs, fmt.Errorf("inference.timeout must be in (0, %s], got %s", MaxInferenceTimeout, t))
	}
	if c.Inference.MaxConcurrent < 0 {
		errs = append(errs, errors.New("inference.max_concurrent must be positive"))
	}

	switch c.Auth.Mode {
	case AuthDev:
	case AuthOIDC:
		if c.Auth.Issuer == "" || c.Auth.ClientID == "" {
			errs = append(errs, errors.New("auth.mode=oidc requires issuer and client_id"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown auth.mode %q", c.Auth.Mode))
	}

	needsDB := false
	switch c.Subjects.Backend {
	case BackendMemory:
	case BackendPostgres:
		needsDB = true
	default:
		errs = append(errs, fmt.Errorf("unknown subjects.backend %q", c.Subjects.Backend))
	}

	switch c.Inference.Provider {
	case ProviderCanned, ProviderOpenAI:
	case ProviderGemini:
		if c.Inference.Gemini.APIKey == "" {
			errs = append(errs, errors.New("inference.provider=gemini requires gemini.api_key"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown inference.provider %q", c.Inference.Provider))
	}

	switch c.Audit.Backend {
	case BackendLog, BackendMemory:
	case BackendPostgres:
		needsDB = true
	case BackendSQLite:
		if strings.TrimSpace(c.Audit.SQLitePath) == "" {
			errs = append(errs, errors.New("audit.backend=sqlite requires sqlite_path"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown audit.backend %q", c.Audit.Backend))
	}

	if needsDB && strings.TrimSpace(c.Database.DSN) == "" {
		errs = append(errs, errors.New("postgres backend requires database.dsn"))
	}

	return errors.Join(errs...)
}

func (s ServerConfig) Addr() string {
	if strings.HasPrefix(s.Port, ":") {
		return s.Port
	}
	return ":" + s.Port
}

func (s ServerConfig) ReadTimeoutDuration() time.Duration     { return mustDuration(s.ReadTimeout) }
func (s ServerConfig) WriteTimeoutDuration() time.Duration    { return mustDuration(s.WriteTimeout) }
func (s ServerConfig) ShutdownTimeoutDuration() time.Duration { return mustDuration(s.ShutdownTimeout) }

func (d DatabaseConfig) ConnMaxLifetimeDuration() time.Duration { return mustDuration(d.ConnMaxLifetime) }

func (i InferenceConfig) TimeoutDuration() time.Duration { return mustDuration(i.Timeout) }

// mustDuration solo se usa después de validate().
func mustDuration(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	return d
}
