package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries everything the service reads from the environment.
// AccessFee is the single source of truth for the unlock price: the
// proof ledger validates submissions against it and the earnings
// aggregator multiplies by it.
type Config struct {
	Port          string
	DatabaseURL   string
	MongoURI      string
	MongoDB       string
	JWTSecret     string
	MigrationsDir string
	AccessFee     int64
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment directly")
	}
	return &Config{
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "housing_media"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),
		AccessFee:     getEnvInt64("ACCESS_FEE", 1000),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
