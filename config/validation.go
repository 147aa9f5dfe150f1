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

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errs []string

	if cfg.JWTSecret == "" {
		errs = append(errs, ValidationError{"JWT_SECRET", "is required (env or jwt_secret secret)"}.Error())
	}

	switch cfg.DBDriver {
	case "postgres":
		if cfg.DBPassword == "" && cfg.Environment != Test {
			errs = append(errs, ValidationError{"DB_PASSWORD", "is required for postgres"}.Error())
		}
	case "sqlite":
		if cfg.DBPath == "" {
			errs = append(errs, ValidationError{"DB_PATH", "is required for sqlite"}.Error())
		}
	default:
		errs = append(errs, ValidationError{"DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver)}.Error())
	}

	switch cfg.LLMProvider {
	case "gemini":
		if cfg.GeminiAPIKey == "" && cfg.Environment == Production {
			errs = append(errs, ValidationError{"GEMINI_API_KEY", "is required in production"}.Error())
		}
	case "deepseek":
		if cfg.DeepSeekAPIKey == "" && cfg.Environment == Production {
			errs = append(errs, ValidationError{"DEEPSEEK_API_KEY", "is required in production"}.Error())
		}
	default:
		errs = append(errs, ValidationError{"LLM_PROVIDER", fmt.Sprintf("unsupported provider %q", cfg.LLMProvider)}.Error())
	}

	if cfg.LLMTimeout <= 0 {
		errs = append(errs, ValidationError{"LLM_TIMEOUT", "must be positive"}.Error())
	}
	if cfg.LLMRequestsPerMinute <= 0 {
		errs = append(errs, ValidationError{"LLM_REQUESTS_PER_MINUTE", "must be positive"}.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}

	return nil
}
