package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var ErrEmptyEnvironmentVariable = errors.New("empty environment variable")

// UnknownItemPolicy controls what happens when a caller orders a menu item
// the food_menu table does not know about.
type UnknownItemPolicy string

const (
	// UnknownItemReject leaves the item out of the order and names it in the reply.
	UnknownItemReject UnknownItemPolicy = "reject"
	// UnknownItemFallback charges a fixed fallback price for the item.
	UnknownItemFallback UnknownItemPolicy = "fallback"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Speech   SpeechConfig
	Intent   IntentConfig
	Services ServicesConfig
	Storage  StorageConfig
	Session  SessionConfig
	Hotel    HotelConfig
	Server   ServerConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Username string
	Password string
	Name     string
}

// SpeechConfig holds Azure Speech credentials and voice selection
type SpeechConfig struct {
	Key      string
	Region   string
	Voice    string
	Language string
}

// IntentConfig holds the DeepSeek intent-extraction settings
type IntentConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// ServicesConfig holds remaining external service API keys
type ServicesConfig struct {
	GoogleAIAPIKey string
}

// StorageConfig holds durable audio storage settings
type StorageConfig struct {
	Mode          string // "local" or "azure"
	LocalDir      string
	PublicBaseURL string
	AzureSASURL   string // container SAS URL, required when Mode is "azure"
}

// SessionConfig holds call-session store settings
type SessionConfig struct {
	Backend       string // "memory" or "redis"
	TTLSeconds    int
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// HotelConfig holds the hotel-facing conversational defaults
type HotelConfig struct {
	Name              string
	GreetingText      string
	CurrencySymbol    string
	UnknownItemPolicy UnknownItemPolicy
	FallbackItemPrice float64
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int
}

// Load reads and validates all required environment variables
func Load() (*Config, error) {
	// Load env.local in non-production environments
	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load("env.local"); err != nil {
			return nil, fmt.Errorf("failed to load env.local: %w", err)
		}
	}

	cfg := &Config{}

	var err error
	if cfg.Database.Host, err = requireEnv("DB_HOST"); err != nil {
		return nil, err
	}
	if cfg.Database.Username, err = requireEnv("DB_USERNAME"); err != nil {
		return nil, err
	}
	if cfg.Database.Password, err = requireEnv("DB_PASSWORD"); err != nil {
		return nil, err
	}
	if cfg.Database.Name, err = requireEnv("DB_NAME"); err != nil {
		return nil, err
	}

	if cfg.Speech.Key, err = requireEnv("AZURE_SPEECH_KEY"); err != nil {
		return nil, err
	}
	if cfg.Speech.Region, err = requireEnv("AZURE_SPEECH_REGION"); err != nil {
		return nil, err
	}
	cfg.Speech.Voice = getEnvWithDefault("AZURE_SPEECH_VOICE", "en-IN-NeerjaNeural")
	cfg.Speech.Language = getEnvWithDefault("AZURE_SPEECH_LANGUAGE", "en-IN")

	if cfg.Intent.APIKey, err = requireEnv("DEEPSEEK_API_KEY"); err != nil {
		return nil, err
	}
	cfg.Intent.BaseURL = getEnvWithDefault("DEEPSEEK_BASE_URL", "https://api.deepseek.com")
	cfg.Intent.Model = getEnvWithDefault("DEEPSEEK_MODEL", "deepseek-chat")

	if cfg.Services.GoogleAIAPIKey, err = requireEnv("GOOGLE_AI_API_KEY"); err != nil {
		return nil, err
	}

	cfg.Storage.Mode = getEnvWithDefault("AUDIO_STORAGE_MODE", "local")
	cfg.Storage.LocalDir = getEnvWithDefault("AUDIO_OUTPUT_DIR", "static/audio")
	if cfg.Storage.PublicBaseURL, err = requireEnv("PUBLIC_BASE_URL"); err != nil {
		return nil, err
	}
	if cfg.Storage.Mode == "azure" {
		if cfg.Storage.AzureSASURL, err = requireEnv("AZURE_BLOB_SAS_URL"); err != nil {
			return nil, err
		}
	}

	cfg.Session.Backend = getEnvWithDefault("SESSION_BACKEND", "memory")
	ttl := getEnvWithDefault("SESSION_TTL_SECONDS", "1800")
	cfg.Session.TTLSeconds, err = strconv.Atoi(ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SESSION_TTL_SECONDS: %w", err)
	}
	if cfg.Session.Backend == "redis" {
		if cfg.Session.RedisAddr, err = requireEnv("REDIS_ADDR"); err != nil {
			return nil, err
		}
		cfg.Session.RedisPassword = os.Getenv("REDIS_PASSWORD")
		redisDB := getEnvWithDefault("REDIS_DB", "0")
		cfg.Session.RedisDB, err = strconv.Atoi(redisDB)
		if err != nil {
			return nil, fmt.Errorf("failed to parse REDIS_DB: %w", err)
		}
	}

	cfg.Hotel.Name = getEnvWithDefault("HOTEL_NAME", "Grand Hotel")
	cfg.Hotel.GreetingText = getEnvWithDefault("GREETING_TEXT",
		fmt.Sprintf("Welcome to %s. How can I assist you today?", cfg.Hotel.Name))
	cfg.Hotel.CurrencySymbol = getEnvWithDefault("CURRENCY_SYMBOL", "₹")
	policy := UnknownItemPolicy(getEnvWithDefault("UNKNOWN_ITEM_POLICY", string(UnknownItemReject)))
	if policy != UnknownItemReject && policy != UnknownItemFallback {
		return nil, fmt.Errorf("invalid UNKNOWN_ITEM_POLICY %q", policy)
	}
	cfg.Hotel.UnknownItemPolicy = policy
	fallbackPrice := getEnvWithDefault("FALLBACK_ITEM_PRICE", "100")
	cfg.Hotel.FallbackItemPrice, err = strconv.ParseFloat(fallbackPrice, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse FALLBACK_ITEM_PRICE: %w", err)
	}

	serverPort, err := requireEnv("SERVER_PORT")
	if err != nil {
		return nil, err
	}
	cfg.Server.Port, err = strconv.Atoi(serverPort)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SERVER_PORT: %w", err)
	}

	return cfg, nil
}

// ConnectionString returns a PostgreSQL connection string
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s",
		c.Username, c.Password, c.Host, c.Name)
}

// requireEnv retrieves an environment variable or returns an error if empty
func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set: %w", key, ErrEmptyEnvironmentVariable)
	}
	return value, nil
}

// getEnvWithDefault retrieves an environment variable or returns a default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
