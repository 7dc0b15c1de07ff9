package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	ServerPort    string
	SessionSecret string
	RedisAddr     string
	CORSOrigins   string

	QuestionsPerGame int
	StartingLives    int
	PointsPerCorrect int
	ChallengeWindow  time.Duration
	RoomTTL          time.Duration
	CodeMaxAttempts  int

	RateLimitPerMinute int
	RateLimitBurst     int
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBName:        getEnv("DB_NAME", "humbug"),
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		SessionSecret: getEnv("SESSION_SECRET", "super-secret-key-change-me"),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		CORSOrigins:   getEnv("CORS_ORIGINS", "*"),

		QuestionsPerGame: getEnvInt("QUESTIONS_PER_GAME", 10),
		StartingLives:    getEnvInt("STARTING_LIVES", 3),
		PointsPerCorrect: getEnvInt("POINTS_PER_CORRECT", 10),
		ChallengeWindow:  time.Duration(getEnvInt("CHALLENGE_WINDOW_SECONDS", 30)) * time.Second,
		RoomTTL:          time.Duration(getEnvInt("ROOM_TTL_HOURS", 6)) * time.Hour,
		CodeMaxAttempts:  getEnvInt("CODE_MAX_ATTEMPTS", 50),

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 30),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}
