package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points secrets at an empty directory and blanks the variables the
// tests depend on.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("SECRETS_DIR", dir)
	t.Setenv("CI", "")
	t.Setenv("ENV", "test")
	for _, key := range []string{
		"DB_DRIVER", "DB_PATH", "DB_PASSWORD", "FLOCK_PORT", "ADVISOR_PORT",
		"AWS_REGION", "BEDROCK_MODEL_ID", "AWS_BEARER_TOKEN_BEDROCK",
		"BEDROCK_MAX_ATTEMPTS", "MODEL_TEMPERATURE", "ADVISOR_PROVIDER",
		"CORS_ORIGINS", "REDIS_URL", "REDIS_HOST", "S3_BUCKET_NAME",
	} {
		t.Setenv(key, "")
	}
	return dir
}

func TestLoadConfigWithDefaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, Test, cfg.Env)
	assert.Equal(t, "8001", cfg.Server.FlockPort)
	assert.Equal(t, "8000", cfg.Server.AdvisorPort)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "flockfeed.db", cfg.Database.DSN())
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Storage.Enabled())

	a := cfg.Advisor
	assert.Equal(t, "bedrock", a.Provider)
	assert.Equal(t, 60*time.Second, a.ConnectTimeout)
	assert.Equal(t, 60*time.Second, a.ReadTimeout)
	assert.Equal(t, 3, a.MaxAttempts)
	assert.Equal(t, 8000, a.MaxTokens)
	assert.InDelta(t, 0.3, a.Temperature, 1e-9)
	assert.InDelta(t, 0.9, a.TopP, 1e-9)
	assert.ElementsMatch(t, []string{"AWS_BEARER_TOKEN_BEDROCK", "AWS_REGION", "BEDROCK_MODEL_ID"}, a.Missing())
}

func TestLoadConfigFromEnvAndSecrets(t *testing.T) {
	dir := isolate(t)
	t.Setenv("AWS_REGION", "us-east-1")
	t.Setenv("BEDROCK_MODEL_ID", "amazon.nova-pro-v1:0")
	t.Setenv("BEDROCK_MAX_ATTEMPTS", "5")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "aws_bearer_token_bedrock"), []byte("secret-token\n"), 0o600))

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "secret-token", cfg.Advisor.BearerToken)
	assert.Equal(t, 5, cfg.Advisor.MaxAttempts)
	assert.Empty(t, cfg.Advisor.Missing())
	assert.Equal(t, "https://bedrock-runtime.us-east-1.amazonaws.com", cfg.Advisor.Endpoint())
}

func TestLoadConfigIgnoresSecretsInCI(t *testing.T) {
	dir := isolate(t)
	t.Setenv("CI", "true")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "aws_region"), []byte("eu-west-1"), 0o600))

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, CI, cfg.Env)
	assert.Empty(t, cfg.Advisor.Region)
}

func TestLoadConfigEnvFile(t *testing.T) {
	isolate(t)
	envFile := filepath.Join(t.TempDir(), "advisor.env")
	require.NoError(t, os.WriteFile(envFile, []byte("ADVISOR_PROVIDER=gemini\nGEMINI_API_KEY=abc\n"), 0o600))
	// godotenv never overrides variables that are already present
	for _, key := range []string{"ADVISOR_PROVIDER", "GEMINI_API_KEY"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := LoadConfig(envFile)
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.Advisor.Provider)
	assert.Equal(t, "abc", cfg.Advisor.GeminiAPIKey)
	assert.Empty(t, cfg.Advisor.Missing())
}

func TestLoadConfigRejectsBadNumbers(t *testing.T) {
	isolate(t)
	t.Setenv("MODEL_TEMPERATURE", "warm")

	_, err := LoadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MODEL_TEMPERATURE")
}

func TestValidateConfig(t *testing.T) {
	isolate(t)
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	prod := *cfg
	prod.Env = Production
	prod.Database.Driver = "postgres"
	err = ValidateConfig(&prod)
	require.Error(t, err)
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "DB_PASSWORD", verrs[0].Field)

	prod.Database.Password = "hunter2"
	assert.NoError(t, ValidateConfig(&prod))

	bad := *cfg
	bad.Advisor.MaxAttempts = 0
	bad.Advisor.TopP = 1.5
	bad.Database.Driver = "oracle"
	err = ValidateConfig(&bad)
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 3)
}

func TestEndpointOverride(t *testing.T) {
	a := AdvisorConfig{Region: "us-west-2", EndpointURL: "http://127.0.0.1:9999/"}
	assert.Equal(t, "http://127.0.0.1:9999", a.Endpoint())
}
