package configs

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultJWTSecret is the development signing key; production refuses to start with it
const DefaultJWTSecret = "default-secret-change-in-production"

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Cache    CacheConfig
	Display  DisplayConfig
	Log      LogConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port    string
	OpsPort string
	Env     string
	// BaseURL is the public address of the API, used to build OAuth callback URLs
	BaseURL string
	// AppRedirect is where the browser lands after a successful login
	AppRedirect string
	// CORSOrigins restricts cross-origin requests; empty allows any origin
	CORSOrigins []string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL string
}

// AuthConfig holds session and social login configuration
type AuthConfig struct {
	JWTSecret    string
	TokenTTL     time.Duration
	CookieSecure bool
	Google       OAuthClientConfig
	GitHub       OAuthClientConfig
}

// OAuthClientConfig holds the credentials of one identity provider
type OAuthClientConfig struct {
	ClientID     string
	ClientSecret string
	// AuthURL, TokenURL and APIURL replace the public endpoints when set,
	// e.g. for GitHub Enterprise
	AuthURL  string
	TokenURL string
	APIURL   string
}

// Enabled reports whether the provider has credentials
func (c OAuthClientConfig) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// CacheConfig holds record cache configuration
type CacheConfig struct {
	TTL           time.Duration
	SweepSchedule string
}

// DisplayConfig holds presentation defaults
type DisplayConfig struct {
	// DefaultCurrency is the dataset currency reported for users without records
	DefaultCurrency string
	// Timezone decides the calendar day used in export file names
	Timezone string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			OpsPort:     getEnv("OPS_PORT", "8081"),
			Env:         getEnv("GO_ENV", "development"),
			BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
			AppRedirect: getEnv("APP_REDIRECT_URL", "/money"),
			CORSOrigins: getEnvList("CORS_ORIGINS"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Auth: AuthConfig{
			JWTSecret:    getEnv("JWT_SECRET", DefaultJWTSecret),
			TokenTTL:     getEnvDuration("TOKEN_TTL", 24*time.Hour),
			CookieSecure: getEnvBool("COOKIE_SECURE", false),
			Google: OAuthClientConfig{
				ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
				ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
				AuthURL:      getEnv("GOOGLE_AUTH_URL", ""),
				TokenURL:     getEnv("GOOGLE_TOKEN_URL", ""),
				APIURL:       getEnv("GOOGLE_API_URL", ""),
			},
			GitHub: OAuthClientConfig{
				ClientID:     getEnv("GITHUB_CLIENT_ID", ""),
				ClientSecret: getEnv("GITHUB_CLIENT_SECRET", ""),
				AuthURL:      getEnv("GITHUB_AUTH_URL", ""),
				TokenURL:     getEnv("GITHUB_TOKEN_URL", ""),
				APIURL:       getEnv("GITHUB_API_URL", ""),
			},
		},
		Cache: CacheConfig{
			TTL:           getEnvDuration("RECORD_CACHE_TTL", 5*time.Minute),
			SweepSchedule: getEnv("RECORD_CACHE_SWEEP", "0 */1 * * * *"),
		},
		Display: DisplayConfig{
			DefaultCurrency: getEnv("DEFAULT_CURRENCY", "eur"),
			Timezone:        getEnv("DISPLAY_TIMEZONE", "UTC"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
	}
}

// IsProduction reports whether the service runs with GO_ENV=production
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
