package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort     string
	ServerHost     string
	AllowedOrigins []string
	ClientURL      string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string

	// Redis configuration
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// JWT configuration
	JWTSecret string

	// Generation service configuration
	LLMProvider          string
	GeminiAPIKey         string
	GeminiModel          string
	GeminiAPIURL         string
	DeepSeekAPIKey       string
	DeepSeekAPIURL       string
	LLMTimeout           time.Duration
	LLMRequestsPerMinute int
	GenerateLimitPerHour int

	// Object storage for generation transcripts
	S3BucketName string
	AWSRegion    string

	// SMTP configuration
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	EmailFrom    string

	// Logging
	LogLevel  string
	LogFormat string
}

// secretKeys are read from Docker secrets when the environment does not
// provide them.
var secretKeys = []string{
	"jwt_secret",
	"db_password",
	"redis_password",
	"gemini_api_key",
	"deepseek_api_key",
	"smtp_password",
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	for _, key := range secretKeys {
		if v.GetString(key) == "" {
			if secret := readSecret(key); secret != "" {
				v.Set(key, secret)
			}
		}
	}

	cfg := &Config{
		Environment:          env,
		ServerPort:           v.GetString("server_port"),
		ServerHost:           v.GetString("server_host"),
		AllowedOrigins:       splitList(v.GetString("allowed_origins")),
		ClientURL:            strings.TrimRight(v.GetString("client_url"), "/"),
		DBDriver:             strings.ToLower(v.GetString("db_driver")),
		DBHost:               v.GetString("db_host"),
		DBPort:               v.GetString("db_port"),
		DBUser:               v.GetString("db_user"),
		DBPassword:           v.GetString("db_password"),
		DBName:               v.GetString("db_name"),
		DBSSLMode:            v.GetString("db_ssl_mode"),
		DBPath:               v.GetString("db_path"),
		RedisURL:             v.GetString("redis_url"),
		RedisHost:            v.GetString("redis_host"),
		RedisPort:            v.GetString("redis_port"),
		RedisPassword:        v.GetString("redis_password"),
		RedisDB:              v.GetInt("redis_db"),
		JWTSecret:            v.GetString("jwt_secret"),
		LLMProvider:          strings.ToLower(v.GetString("llm_provider")),
		GeminiAPIKey:         v.GetString("gemini_api_key"),
		GeminiModel:          v.GetString("gemini_model"),
		GeminiAPIURL:         v.GetString("gemini_api_url"),
		DeepSeekAPIKey:       v.GetString("deepseek_api_key"),
		DeepSeekAPIURL:       v.GetString("deepseek_api_url"),
		LLMTimeout:           v.GetDuration("llm_timeout"),
		LLMRequestsPerMinute: v.GetInt("llm_requests_per_minute"),
		GenerateLimitPerHour: v.GetInt("generate_limit_per_hour"),
		S3BucketName:         v.GetString("s3_bucket_name"),
		AWSRegion:            v.GetString("aws_region"),
		SMTPHost:             v.GetString("smtp_host"),
		SMTPPort:             v.GetString("smtp_port"),
		SMTPUsername:         v.GetString("smtp_username"),
		SMTPPassword:         v.GetString("smtp_password"),
		EmailFrom:            v.GetString("email_from"),
		LogLevel:             v.GetString("log_level"),
		LogFormat:            v.GetString("log_format"),
	}

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_port", "8080")
	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("allowed_origins", "http://localhost:5173")
	v.SetDefault("client_url", "http://localhost:5173")

	v.SetDefault("db_driver", "postgres")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_name", "pikasmart")
	v.SetDefault("db_ssl_mode", "disable")
	v.SetDefault("db_path", "pikasmart.db")

	v.SetDefault("redis_port", "6379")
	v.SetDefault("redis_db", 0)

	v.SetDefault("llm_provider", "gemini")
	v.SetDefault("gemini_model", "gemini-2.5-flash")
	v.SetDefault("gemini_api_url", "https://generativelanguage.googleapis.com/v1beta/models")
	v.SetDefault("deepseek_api_url", "https://api.deepseek.com/v1/chat/completions")
	v.SetDefault("llm_timeout", "60s")
	v.SetDefault("llm_requests_per_minute", 30)
	v.SetDefault("generate_limit_per_hour", 20)

	v.SetDefault("aws_region", "us-east-1")

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
}

// DSN returns the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// RedisEnabled reports whether any Redis endpoint is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// SecureCookies reports whether session cookies must carry the Secure flag.
func (c *Config) SecureCookies() bool {
	return c.Environment == Production
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
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
