package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Store backends for the saved classroom list.
const (
	StoreBackendFile     = "file"
	StoreBackendRedis    = "redis"
	StoreBackendPostgres = "postgres"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database DatabaseConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Log      LogConfig
	Store    StoreConfig
	AI       AIConfig
	Chart    ChartConfig
	Roster   RosterConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// StoreConfig selects where saved classrooms live.
type StoreConfig struct {
	Backend    string
	Key        string
	StorageDir string
}

// AIConfig configures the generative text service.
type AIConfig struct {
	Enabled     bool
	Endpoint    string
	Model       string
	APIKey      string
	Temperature float64
	Timeout     time.Duration
}

// ChartConfig tunes the printable seating chart.
type ChartConfig struct {
	Title string
}

type RosterConfig struct {
	MaxNames int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	backend := strings.ToLower(strings.TrimSpace(v.GetString("STORE_BACKEND")))
	switch backend {
	case StoreBackendRedis, StoreBackendPostgres:
	default:
		backend = StoreBackendFile
	}
	cfg.Store = StoreConfig{
		Backend:    backend,
		Key:        v.GetString("STORE_KEY"),
		StorageDir: v.GetString("STORAGE_DIR"),
	}

	temperature := v.GetFloat64("AI_TEMPERATURE")
	if temperature < 0 || temperature > 2 {
		temperature = 0.2
	}
	cfg.AI = AIConfig{
		Enabled:     v.GetBool("AI_ENABLED"),
		Endpoint:    strings.TrimRight(v.GetString("AI_ENDPOINT"), "/"),
		Model:       v.GetString("AI_MODEL"),
		APIKey:      v.GetString("AI_API_KEY"),
		Temperature: temperature,
		Timeout:     parseDuration(v.GetString("AI_TIMEOUT"), 90*time.Second),
	}

	cfg.Chart = ChartConfig{Title: v.GetString("CHART_TITLE")}

	maxNames := v.GetInt("ROSTER_MAX_NAMES")
	if maxNames <= 0 {
		maxNames = 200
	}
	cfg.Roster = RosterConfig{MaxNames: maxNames}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "classroom_seating")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 4)
	v.SetDefault("DB_MAX_IDLE_CONNS", 2)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("STORE_BACKEND", StoreBackendFile)
	v.SetDefault("STORE_KEY", "seating_classrooms")
	v.SetDefault("STORAGE_DIR", "./data")

	v.SetDefault("AI_ENABLED", true)
	v.SetDefault("AI_ENDPOINT", "https://generativelanguage.googleapis.com")
	v.SetDefault("AI_MODEL", "gemini-2.0-flash")
	v.SetDefault("AI_API_KEY", "")
	v.SetDefault("AI_TEMPERATURE", 0.2)
	v.SetDefault("AI_TIMEOUT", "90s")

	v.SetDefault("CHART_TITLE", "Zasedací pořádek")
	v.SetDefault("ROSTER_MAX_NAMES", 200)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
