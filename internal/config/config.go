package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath  = ".env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	defaultRunAddress = ":8080"
	defaultMigrations = "migrations"
	defaultAIBaseURL  = "https://ai.gateway.lovable.dev/v1"
	defaultAIModel    = "google/gemini-3-flash-preview"
	defaultAITimeout  = 10 * time.Second
	defaultGeoBaseURL = "https://ipapi.co"
	defaultLang       = "en"
)

// Config is the server configuration, sourced from the environment
// with an optional .env file.
type Config struct {
	Env    string
	DB     db
	Server server
	AI     ai
	Geo    geo
	Lang   string
}

type db struct {
	DatabaseURI string `env:"DATABASE_URI"`
	Migrations  string `env:"MIGRATIONS_PATH"`
}

type server struct {
	RunAddress string `env:"RUN_ADDRESS"`
}

type ai struct {
	APIKey  string        `env:"AI_API_KEY"`
	BaseURL string        `env:"AI_BASE_URL"`
	Model   string        `env:"AI_MODEL"`
	Timeout time.Duration `env:"AI_TIMEOUT"`
}

type geo struct {
	BaseURL string `env:"GEO_BASE_URL"`
}

// MustLoad reads configuration from the environment. The AI API key
// is deliberately optional: without it the classifier degrades to its
// random fallback instead of refusing to start.
func MustLoad() *Config {
	if err := godotenv.Load(envPath); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	viper.AutomaticEnv()
	viper.SetDefault("RUN_ADDRESS", defaultRunAddress)
	viper.SetDefault("MIGRATIONS_PATH", defaultMigrations)
	viper.SetDefault("APP_ENV", EnvLocal)
	viper.SetDefault("AI_BASE_URL", defaultAIBaseURL)
	viper.SetDefault("AI_MODEL", defaultAIModel)
	viper.SetDefault("AI_TIMEOUT", defaultAITimeout)
	viper.SetDefault("GEO_BASE_URL", defaultGeoBaseURL)
	viper.SetDefault("DEFAULT_LANG", defaultLang)

	return &Config{
		Env: viper.GetString("APP_ENV"),
		DB: db{
			DatabaseURI: viper.GetString("DATABASE_URI"),
			Migrations:  viper.GetString("MIGRATIONS_PATH"),
		},
		Server: server{
			RunAddress: viper.GetString("RUN_ADDRESS"),
		},
		AI: ai{
			APIKey:  viper.GetString("AI_API_KEY"),
			BaseURL: viper.GetString("AI_BASE_URL"),
			Model:   viper.GetString("AI_MODEL"),
			Timeout: viper.GetDuration("AI_TIMEOUT"),
		},
		Geo: geo{
			BaseURL: viper.GetString("GEO_BASE_URL"),
		},
		Lang: viper.GetString("DEFAULT_LANG"),
	}
}
