package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported text generation backends.
const (
	ProviderGemini = "gemini"
	ProviderGroq   = "groq"
)

const (
	defaultGeminiModel    = "gemini-1.5-flash"
	defaultGroqModel      = "llama-3.3-70b-versatile"
	defaultGroqURL        = "https://api.groq.com/openai/v1/chat/completions"
	defaultSpoonacularURL = "https://api.spoonacular.com"
	defaultDatabasePath   = "data/meal-scheduler.db"
	defaultPort           = "8080"
)

// Config holds the configuration for the application.
type Config struct {
	LLMProvider  string
	GeminiAPIKey string
	GeminiModel  string
	GroqAPIKey   string
	GroqModel    string
	GroqURL      string

	SpoonacularAPIKey string
	SpoonacularURL    string

	DatabasePath string
	Port         string

	// AuthJWTSecret enables bearer token checks on the API when set.
	AuthJWTSecret string
}

// NewFromEnv creates a new Config object from environment variables.
// A .env file in the working directory is loaded first when present;
// variables already set in the environment take precedence.
func NewFromEnv() (*Config, error) {
	return NewFromViper(viper.New())
}

// NewFromViper is NewFromEnv for a caller-owned viper instance, such as
// one with command-line flags bound to it.
func NewFromViper(v *viper.Viper) (*Config, error) {
	_ = godotenv.Load()
	return Load(v)
}

// LoadEnvFile loads variables from an explicit dotenv file.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// Load builds a Config from v. Values bound to v (flags, config files)
// win over environment variables, which win over defaults.
//
// API keys are optional here: a missing key only fails the requests that
// need it.
func Load(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()
	v.SetDefault("llm_provider", ProviderGemini)
	v.SetDefault("gemini_model", defaultGeminiModel)
	v.SetDefault("groq_model", defaultGroqModel)
	v.SetDefault("groq_url", defaultGroqURL)
	v.SetDefault("spoonacular_url", defaultSpoonacularURL)
	v.SetDefault("database_path", defaultDatabasePath)
	v.SetDefault("port", defaultPort)

	provider := strings.ToLower(strings.TrimSpace(v.GetString("llm_provider")))
	if provider != ProviderGemini && provider != ProviderGroq {
		return nil, fmt.Errorf("LLM_PROVIDER must be %q or %q, got %q", ProviderGemini, ProviderGroq, provider)
	}

	port := v.GetString("port")
	if _, err := strconv.Atoi(port); err != nil {
		return nil, fmt.Errorf("PORT must be a number, got %q", port)
	}

	return &Config{
		LLMProvider:       provider,
		GeminiAPIKey:      v.GetString("gemini_api_key"),
		GeminiModel:       v.GetString("gemini_model"),
		GroqAPIKey:        v.GetString("groq_api_key"),
		GroqModel:         v.GetString("groq_model"),
		GroqURL:           v.GetString("groq_url"),
		SpoonacularAPIKey: v.GetString("spoonacular_api_key"),
		SpoonacularURL:    strings.TrimRight(v.GetString("spoonacular_url"), "/"),
		DatabasePath:      v.GetString("database_path"),
		Port:              port,
		AuthJWTSecret:     v.GetString("auth_jwt_secret"),
	}, nil
}
