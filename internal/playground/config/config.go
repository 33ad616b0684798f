package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI           string
	MongoTimeout       time.Duration
	Port               string
	DBName             string
	UsersCollection    string
	SessionsCollection string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	// SessionTTL is the expireAfterSeconds of the sessions createdAt index.
	SessionTTL       time.Duration
	ProfileSlowMS    int
	AllowDestructive bool
	ClusterMode      bool
	WorkDir          string
	LogLevel         string
}

// LoadConfig reads the environment, after merging an optional .env file from
// the working directory. Variables already set in the process win.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		MongoURI:           getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoTimeout:       getEnvDuration("MONGO_TIMEOUT", 10*time.Second),
		Port:               getEnv("PORT", "8080"),
		DBName:             getEnv("DB_NAME", "playground_db"),
		UsersCollection:    getEnv("COLLECTION_USERS", "users"),
		SessionsCollection: getEnv("COLLECTION_SESSIONS", "sessions"),
		ReadTimeout:        getEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
		WriteTimeout:       getEnvDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
		SessionTTL:         getEnvDuration("SESSION_TTL", time.Hour),
		ProfileSlowMS:      getEnvInt("PROFILE_SLOW_MS", 100),
		AllowDestructive:   getEnvBool("ALLOW_DESTRUCTIVE", false),
		ClusterMode:        getEnvBool("CLUSTER_MODE", false),
		WorkDir:            getEnv("WORK_DIR", ""),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("MONGO_URI is required")
	}
	if !strings.HasPrefix(c.MongoURI, "mongodb://") && !strings.HasPrefix(c.MongoURI, "mongodb+srv://") {
		return fmt.Errorf("MONGO_URI must use the mongodb:// or mongodb+srv:// scheme")
	}
	if c.DBName == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.UsersCollection == "" || c.SessionsCollection == "" {
		return fmt.Errorf("collection names must not be empty")
	}
	if c.SessionTTL < time.Second {
		return fmt.Errorf("SESSION_TTL must be at least one second")
	}
	if c.ProfileSlowMS < 0 {
		return fmt.Errorf("PROFILE_SLOW_MS must not be negative")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return fallback
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		return fallback
	}
	return val
}

func getEnvBool(key string, fallback bool) bool {
	valStr := os.Getenv(key)
	if valStr == "" {
		return fallback
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		return fallback
	}
	return val
}

// getEnvDuration accepts a bare number of seconds or a Go duration string.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	valStr := os.Getenv(key)
	if valStr == "" {
		return fallback
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		d, err := time.ParseDuration(valStr)
		if err == nil {
			return d
		}
		return fallback
	}
	return time.Duration(val) * time.Second
}
