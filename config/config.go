package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Environment-backed configuration, loaded once at startup
var (
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	JWTSecret       string
	CookieSecure    bool
	DefaultPassword string

	ServerAddr string
)

// Load reads the .env file (if present) and fills the configuration variables.
// Missing .env is not an error: in containers everything comes from the environment.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	PostgresHost = getEnv("POSTGRES_HOST", "localhost")
	PostgresPort = getEnv("POSTGRES_PORT", "5432")
	PostgresUser = getEnv("POSTGRES_USER", "postgres")
	PostgresPassword = getEnv("POSTGRES_PASSWORD", "postgres")
	PostgresDB = getEnv("POSTGRES_DB", "backoffice")

	JWTSecret = getEnv("JWT_SECRET", "")
	if JWTSecret == "" {
		log.Println("JWT_SECRET is not set, using an insecure development secret")
		JWTSecret = "dev-secret-do-not-use-in-production"
	}
	CookieSecure = getEnv("COOKIE_SECURE", "true") == "true"
	DefaultPassword = getEnv("DEFAULT_ADMIN_PASSWORD", "")

	ServerAddr = getEnv("SERVER_ADDR", ":8080")
}

func getEnv(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
