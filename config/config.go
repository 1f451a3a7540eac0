package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config stores the application configuration.
type Config struct {
	ServerAddr string

	// External music services
	DeezerAPIURL string // metadata service (artists, albums, charts)
	RapidAPIHost string // playback-metadata service host
	RapidAPIKey  string // playback-metadata service key

	// Local library storage
	LibraryBackend string // "file" or "redis"
	LibraryDir     string // directory for the file backend

	// Redis (used when LibraryBackend == "redis")
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Logging
	LogLevel string
	LogFile  string
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// Load loads configuration from environment variables (via .env file) or defaults.
func Load() *Config {
	// godotenv.Load() will not override existing env vars.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env, relying on existing environment variables and defaults.")
	}

	return &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8080"),

		DeezerAPIURL: getEnv("DEEZER_API_URL", "https://api.deezer.com"),
		RapidAPIHost: getEnv("RAPIDAPI_HOST", "deezerdevs-deezer.p.rapidapi.com"),
		RapidAPIKey:  os.Getenv("RAPIDAPI_KEY"), // no sensible hardcoded default for a key

		LibraryBackend: getEnv("LIBRARY_BACKEND", "file"),
		LibraryDir:     getEnv("LIBRARY_DIR", "library"),

		RedisHost:     getEnv("REDIS_HOST", "127.0.0.1"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),
	}
}
