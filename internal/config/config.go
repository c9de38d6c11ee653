package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	Environment string
	DebugMode   bool

	// Database
	DatabaseURL    string
	MigrateOnStart bool
	MigrationsDir  string

	// Redis
	RedisURL        string
	SessionCommands bool // relay input events published on Redis

	// Server
	Port        string
	FrontendURL string

	// Quiz content
	QuizBackend   string // file, redis or postgres
	QuizAssetsDir string

	// Leaderboard persistence
	ScoreBackend string // file, redis or postgres
	ScoreDataDir string

	// Session timing
	StartCountdownSeconds float64
	FinalCountdownSeconds int
	DefaultSessionSeconds int
	TickRateHz            int

	// Sound
	EasterEggUsesStartClip bool

	// Security
	JWTSecret         string
	DevicePINHash     string
	SessionTimeoutMin int
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	return &Config{
		// Environment
		Environment: getEnv("APP_ENV", "development"),
		DebugMode:   getEnvBool("DEBUG_MODE", false),

		// Database
		DatabaseURL:    getEnv("DATABASE_URL", "postgres://localhost:5432/quizgolf?sslmode=disable"),
		MigrateOnStart: getEnvBool("MIGRATE_ON_START", false),
		MigrationsDir:  getEnv("MIGRATIONS_DIR", "migrations"),

		// Redis
		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379/0"),
		SessionCommands: getEnvBool("SESSION_COMMANDS", false),

		// Server
		Port:        getEnv("APP_PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		// Quiz content
		QuizBackend:   getEnv("QUIZ_BACKEND", "file"),
		QuizAssetsDir: getEnv("QUIZ_ASSETS_DIR", "assets"),

		// Leaderboard persistence
		ScoreBackend: getEnv("SCORE_BACKEND", "file"),
		ScoreDataDir: getEnv("SCORE_DATA_DIR", "data"),

		// Session timing
		StartCountdownSeconds: getEnvFloat("START_COUNTDOWN_SECONDS", 3.0),
		FinalCountdownSeconds: getEnvInt("FINAL_COUNTDOWN_SECONDS", 3),
		DefaultSessionSeconds: getEnvInt("DEFAULT_SESSION_SECONDS", 300),
		TickRateHz:            getEnvInt("TICK_RATE_HZ", 60),

		// Sound
		EasterEggUsesStartClip: getEnvBool("EASTER_EGG_USES_START_CLIP", true),

		// Security
		JWTSecret:         getEnv("JWT_SECRET", "change-me-in-production"),
		DevicePINHash:     getEnv("DEVICE_PIN_HASH", ""),
		SessionTimeoutMin: getEnvInt("SESSION_TIMEOUT_MINUTES", 720),
	}
}

// NeedsDatabase reports whether any backend is configured to use Postgres.
func (c *Config) NeedsDatabase() bool {
	return c.QuizBackend == "postgres" || c.ScoreBackend == "postgres"
}

// NeedsRedis reports whether any backend or the command relay uses Redis.
func (c *Config) NeedsRedis() bool {
	return c.QuizBackend == "redis" || c.ScoreBackend == "redis" || c.SessionCommands
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
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
