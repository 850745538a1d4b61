package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for both services. It is built once at
// startup and handed to constructors by value or pointer; nothing reads it
// from package state afterwards.
type Config struct {
	Env      Environment
	LogLevel string

	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Advisor  AdvisorConfig
	Storage  StorageConfig
}

// ServerConfig holds HTTP listener options shared by both services.
type ServerConfig struct {
	Host            string
	FlockPort       string
	AdvisorPort     string
	CORSOrigins     []string
	ShutdownTimeout time.Duration
}

// DatabaseConfig selects and locates the flock database.
type DatabaseConfig struct {
	Driver   string // "sqlite" or "postgres"
	Path     string // sqlite file
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN returns the connection string for the configured driver.
func (d DatabaseConfig) DSN() string {
	if d.Driver == "sqlite" {
		return d.Path
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// RedisConfig locates the optional Redis instance used for rate limiting.
type RedisConfig struct {
	URL      string
	Host     string
	Port     string
	Password string
	DB       int
}

// Enabled reports whether any Redis location was configured.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Host != ""
}

// StorageConfig controls the optional S3 export of performance reports.
type StorageConfig struct {
	Bucket       string
	Region       string
	ReportPrefix string
	URLExpiry    time.Duration
}

// Enabled reports whether a bucket is configured.
func (s StorageConfig) Enabled() bool {
	return s.Bucket != ""
}

// AdvisorConfig holds the model endpoint and inference settings for the
// nutrition advisor.
type AdvisorConfig struct {
	Provider       string // "bedrock" or "gemini"
	Region         string
	ModelID        string
	BearerToken    string
	EndpointURL    string
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	MaxAttempts    int
	MaxTokens      int
	Temperature    float64
	TopP           float64
	GeminiAPIKey   string
	GeminiModel    string
	// RateLimit is the number of model-backed requests allowed per client per
	// hour. Zero disables limiting.
	RateLimit int
}

// Endpoint returns the Bedrock runtime base URL.
func (a AdvisorConfig) Endpoint() string {
	if a.EndpointURL != "" {
		return strings.TrimRight(a.EndpointURL, "/")
	}
	return fmt.Sprintf("https://bedrock-runtime.%s.amazonaws.com", a.Region)
}

// Missing lists the settings the selected provider needs but does not have.
func (a AdvisorConfig) Missing() []string {
	var missing []string
	switch a.Provider {
	case "gemini":
		if a.GeminiAPIKey == "" {
			missing = append(missing, "GEMINI_API_KEY")
		}
	default:
		if a.BearerToken == "" {
			missing = append(missing, "AWS_BEARER_TOKEN_BEDROCK")
		}
		if a.Region == "" {
			missing = append(missing, "AWS_REGION")
		}
		if a.ModelID == "" {
			missing = append(missing, "BEDROCK_MODEL_ID")
		}
	}
	return missing
}

// LoadConfig reads an optional env file and then builds a Config from
// environment variables, falling back to Docker secrets outside CI.
func LoadConfig(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	} else {
		// a missing .env is fine when values come from the environment
		_ = godotenv.Load()
	}

	env := GetEnvironment()
	src := source{secrets: env.UsesSecrets()}

	cfg := &Config{
		Env:      env,
		LogLevel: src.get("LOG_LEVEL", "info"),
		Server: ServerConfig{
			Host:            src.get("SERVER_HOST", "0.0.0.0"),
			FlockPort:       src.get("FLOCK_PORT", "8001"),
			AdvisorPort:     src.get("ADVISOR_PORT", "8000"),
			CORSOrigins:     splitList(src.get("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")),
			ShutdownTimeout: src.getSeconds("SHUTDOWN_TIMEOUT", 10),
		},
		Database: DatabaseConfig{
			Driver:   strings.ToLower(src.get("DB_DRIVER", "sqlite")),
			Path:     src.get("DB_PATH", "flockfeed.db"),
			Host:     src.get("DB_HOST", "localhost"),
			Port:     src.get("DB_PORT", "5432"),
			User:     src.get("DB_USER", "postgres"),
			Password: src.get("DB_PASSWORD", ""),
			Name:     src.get("DB_NAME", "flockfeed"),
			SSLMode:  src.get("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      src.get("REDIS_URL", ""),
			Host:     src.get("REDIS_HOST", ""),
			Port:     src.get("REDIS_PORT", "6379"),
			Password: src.get("REDIS_PASSWORD", ""),
			DB:       src.getInt("REDIS_DB", 0),
		},
		Advisor: AdvisorConfig{
			Provider:       strings.ToLower(src.get("ADVISOR_PROVIDER", "bedrock")),
			Region:         src.get("AWS_REGION", ""),
			ModelID:        src.get("BEDROCK_MODEL_ID", ""),
			BearerToken:    src.get("AWS_BEARER_TOKEN_BEDROCK", ""),
			EndpointURL:    src.get("BEDROCK_ENDPOINT_URL", ""),
			ConnectTimeout: src.getSeconds("BEDROCK_CONNECT_TIMEOUT", 60),
			ReadTimeout:    src.getSeconds("BEDROCK_READ_TIMEOUT", 60),
			MaxAttempts:    src.getInt("BEDROCK_MAX_ATTEMPTS", 3),
			MaxTokens:      src.getInt("MODEL_MAX_TOKENS", 8000),
			Temperature:    src.getFloat("MODEL_TEMPERATURE", 0.3),
			TopP:           src.getFloat("MODEL_TOP_P", 0.9),
			GeminiAPIKey:   src.get("GEMINI_API_KEY", ""),
			GeminiModel:    src.get("GEMINI_MODEL", "gemini-2.0-flash"),
			RateLimit:      src.getInt("ADVISOR_RATE_LIMIT", 60),
		},
		Storage: StorageConfig{
			Bucket:       src.get("S3_BUCKET_NAME", ""),
			Region:       src.get("AWS_REGION", ""),
			ReportPrefix: src.get("S3_REPORT_PREFIX", "reports"),
			URLExpiry:    src.getSeconds("S3_URL_EXPIRY", 3600),
		},
	}

	if err := src.err(); err != nil {
		return nil, fmt.Errorf("failed to load %s configuration: %w", env, err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// source resolves a key from the environment and, when allowed, from a
// secret file named after the lowercased key. Parse failures are collected
// and reported once.
type source struct {
	secrets bool
	errs    []string
}

func (s *source) get(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return strings.TrimSpace(v)
	}
	if s.secrets {
		if v := readSecret(strings.ToLower(key)); v != "" {
			return v
		}
	}
	return def
}

func (s *source) getInt(key string, def int) int {
	raw := s.get(key, "")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		s.errs = append(s.errs, fmt.Sprintf("%s must be an integer, got %q", key, raw))
		return def
	}
	return n
}

func (s *source) getFloat(key string, def float64) float64 {
	raw := s.get(key, "")
	if raw == "" {
		return def
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		s.errs = append(s.errs, fmt.Sprintf("%s must be a number, got %q", key, raw))
		return def
	}
	return f
}

func (s *source) getSeconds(key string, def int) time.Duration {
	return time.Duration(s.getInt(key, def)) * time.Second
}

func (s *source) err() error {
	if len(s.errs) == 0 {
		return nil
	}
	return errors.New(strings.Join(s.errs, "; "))
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
