package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one pass.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "\n")
}

// secretsRequired lists, per environment, the settings postgres deployments
// must provide.
var secretsRequired = map[Environment][]string{
	CI:         {"DB_PASSWORD"},
	Production: {"DB_PASSWORD"},
}

// ValidateConfig checks structural consistency. Missing advisor credentials
// are not an error here: the advisor reports them from its root endpoint.
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors

	if cfg.Server.FlockPort == "" {
		errs = append(errs, ValidationError{"FLOCK_PORT", "must not be empty"})
	}
	if cfg.Server.AdvisorPort == "" {
		errs = append(errs, ValidationError{"ADVISOR_PORT", "must not be empty"})
	}

	switch cfg.Database.Driver {
	case "sqlite":
		if cfg.Database.Path == "" {
			errs = append(errs, ValidationError{"DB_PATH", "is required for the sqlite driver"})
		}
	case "postgres":
		for _, key := range secretsRequired[cfg.Env] {
			if key == "DB_PASSWORD" && cfg.Database.Password == "" {
				errs = append(errs, ValidationError{key, fmt.Sprintf("is required in %s", cfg.Env)})
			}
		}
	default:
		errs = append(errs, ValidationError{"DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.Database.Driver)})
	}

	a := cfg.Advisor
	if a.Provider != "bedrock" && a.Provider != "gemini" {
		errs = append(errs, ValidationError{"ADVISOR_PROVIDER", fmt.Sprintf("unsupported provider %q", a.Provider)})
	}
	if a.MaxAttempts < 1 {
		errs = append(errs, ValidationError{"BEDROCK_MAX_ATTEMPTS", "must be at least 1"})
	}
	if a.MaxTokens < 1 {
		errs = append(errs, ValidationError{"MODEL_MAX_TOKENS", "must be positive"})
	}
	if a.Temperature < 0 || a.Temperature > 1 {
		errs = append(errs, ValidationError{"MODEL_TEMPERATURE", "must be between 0 and 1"})
	}
	if a.TopP < 0 || a.TopP > 1 {
		errs = append(errs, ValidationError{"MODEL_TOP_P", "must be between 0 and 1"})
	}
	if a.RateLimit < 0 {
		errs = append(errs, ValidationError{"ADVISOR_RATE_LIMIT", "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
