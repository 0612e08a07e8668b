package config

import "path/filepath"

// Config holds all application configuration in a structured way.
type Config struct {
	App      AppConfig
	Paths    PathsConfig
	Database DatabaseConfig
	Cache    CacheConfig
	AI       AIConfig
}

type AppConfig struct {
	Version            string
	Port               string
	Debug              bool
	Environment        string
	BasePath           string
	CorsAllowedOrigins []string
}

type PathsConfig struct {
	Storages string
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string // File path for SQLite, DB name for Postgres
}

type CacheConfig struct {
	TTLHours          int
	SweepIntervalMins int
	BackgroundSweep   bool
}

type AIConfig struct {
	GeminiAPIKey string
	Model        string
	VisionModel  string
}

// Global provides access to the loaded configuration globally.
var Global *Config

// LoadConfig loads configuration from environment variables or defaults.
// TTL and credentials are read once here at startup; business logic only
// ever sees the resulting struct.
func LoadConfig() (*Config, error) {
	storages := getEnv("APP_STORAGES_DIR", "storages")

	cfg := &Config{
		App: AppConfig{
			Version:            "v1.2.0",
			Port:               getEnv("APP_PORT", "3000"),
			Debug:              getEnvBool("APP_DEBUG", false),
			Environment:        getEnv("APP_ENV", "development"),
			BasePath:           getEnv("APP_BASE_PATH", ""),
			CorsAllowedOrigins: getEnvList("APP_CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
		},
		Paths: PathsConfig{
			Storages: storages,
		},
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "sqlite"),
			Name:     getEnv("DB_NAME", filepath.Join(storages, "app.db")),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
		},
		Cache: CacheConfig{
			TTLHours:          getEnvInt("CACHE_TTL_HOURS", 24),
			SweepIntervalMins: getEnvInt("CACHE_SWEEP_INTERVAL_MINS", 60),
			BackgroundSweep:   getEnvBool("CACHE_BACKGROUND_SWEEP", true),
		},
		AI: AIConfig{
			GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
			Model:        getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			VisionModel:  getEnv("GEMINI_VISION_MODEL", "gemini-2.0-flash"),
		},
	}

	Global = cfg
	return cfg, nil
}
