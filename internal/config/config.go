package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	Port           string
	Columns        int
	Rows           int
	WinLength      int
	SearchDepth    int
	Heuristic      bool
	Difficulty     string
	RedisURL       string
	RedisPassword  string
	TallyTTL       time.Duration
	SessionIdle    time.Duration
	AllowedOrigins []string
	EnablePprof    bool
	LogLevel       string
}

var AppConfig *Config

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")

	// Board & engine
	columns := GetEnvAsInt("BOARD_COLUMNS", 7)
	rows := GetEnvAsInt("BOARD_ROWS", 6)
	winLength := GetEnvAsInt("WIN_LENGTH", 4)
	searchDepth := GetEnvAsInt("SEARCH_DEPTH", 6)
	heuristic := GetEnvAsBool("SEARCH_HEURISTIC", false)
	difficulty := GetEnv("BOT_DIFFICULTY", "hard")

	// Redis tally cache
	redisURL := GetEnv("REDIS_URL", "localhost:6379")
	redisPassword := GetEnv("REDIS_PASSWORD", "")
	tallyTTLHours := GetEnvAsInt("TALLY_TTL_HOURS", 24)
	sessionIdleMin := GetEnvAsInt("SESSION_IDLE_MINUTES", 60)

	allowedOrigins := []string{"http://localhost:5173"}
	if extra := GetEnv("ALLOWED_ORIGINS", ""); extra != "" {
		for _, origin := range strings.Split(extra, ",") {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	AppConfig = &Config{
		Port:           port,
		Columns:        columns,
		Rows:           rows,
		WinLength:      winLength,
		SearchDepth:    searchDepth,
		Heuristic:      heuristic,
		Difficulty:     difficulty,
		RedisURL:       redisURL,
		RedisPassword:  redisPassword,
		TallyTTL:       time.Duration(tallyTTLHours) * time.Hour,
		SessionIdle:    time.Duration(sessionIdleMin) * time.Minute,
		AllowedOrigins: allowedOrigins,
		EnablePprof:    GetEnvAsBool("ENABLE_PPROF", false),
		LogLevel:       GetEnv("LOG_LEVEL", "info"),
	}

	return AppConfig
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Msgf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Warn().Msgf("Invalid boolean value for %s: %s, using default: %t", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
