package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

var SecretKey []byte

func Init() {
	_ = godotenv.Load()

	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		log.Fatal("JWT secret key not set")
	}
	SecretKey = []byte(secret)
}

func Port() string {
	return ":" + getEnv("PORT", "8080")
}

func DatabaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", ""),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "storefront"),
		getEnv("DB_SSLMODE", "disable"),
	)
}

func MigrationsPath() string {
	return getEnv("MIGRATIONS_PATH", "migrations")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
