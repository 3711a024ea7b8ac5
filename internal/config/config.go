package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Lock ordering strategies understood by the transfer coordinator.
const (
	LockOrderingOrdered = "ordered"
	LockOrderingFromTo  = "from-to"
)

// Notification sinks.
const (
	NotifySinkLog   = "log"
	NotifySinkRedis = "redis"
)

// Config is the process configuration, read once at startup.
type Config struct {
	Port        string
	Env         string
	LogLevel    string
	EnableReset bool

	LockTimeout  time.Duration
	LockOrdering string

	NotifySink      string
	NotifyWorkers   int
	NotifyQueueSize int

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisChannel  string
}

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// Load reads Config from the environment, falling back to defaults.
func Load() Config {
	return Config{
		Port:        GetEnv("PORT", "3000"),
		Env:         GetEnv("ENV", "development"),
		LogLevel:    GetEnv("LOG_LEVEL", "info"),
		EnableReset: GetBoolEnv("ENABLE_RESET", false),

		LockTimeout:  GetDurationEnv("LOCK_TIMEOUT", 3000*time.Millisecond),
		LockOrdering: strings.ToLower(GetEnv("LOCK_ORDERING", LockOrderingOrdered)),

		NotifySink:      strings.ToLower(GetEnv("NOTIFY_SINK", NotifySinkLog)),
		NotifyWorkers:   GetIntEnv("NOTIFY_WORKERS", 4),
		NotifyQueueSize: GetIntEnv("NOTIFY_QUEUE_SIZE", 1024),

		RedisHost:     GetEnv("REDIS_HOST", "localhost"),
		RedisPort:     GetEnv("REDIS_PORT", "6379"),
		RedisPassword: GetEnv("REDIS_PASSWORD", ""),
		RedisDB:       GetIntEnv("REDIS_DB", 0),
		RedisChannel:  GetEnv("NOTIFY_REDIS_CHANNEL", "account-notifications"),
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetBoolEnv returns a bool environment variable or a default value.
func GetBoolEnv(key string, defaultVal bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

// GetDurationEnv accepts Go durations ("3s") or a bare number of milliseconds.
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(val); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultVal
}

// IsProduction checks if the app runs in production mode.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}
