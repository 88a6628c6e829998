package config

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

type StorageConfig struct {
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Region          string
	Endpoint        string
}

type Config struct {
	DB_URL      string
	Port        string
	JWTSecret   string
	Environment string
	AccessTTL   time.Duration
	RefreshTTL  time.Duration
	CorsConfig  cors.Options
	Storage     StorageConfig
}

var Envs = initConfig()

func initConfig() Config {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("No", envFile, "file found")
	}

	return Config{
		DB_URL:      getEnv("DB_URL", ""),
		Port:        getEnv("PORT", "8080"),
		JWTSecret:   getEnv("JWT_SECRET", "not-so-secret-now-is-it?"),
		Environment: getEnv("ENV", "development"),
		AccessTTL:   getDurationMinutes("ACCESS_TOKEN_MINUTES", 15),
		RefreshTTL:  getDurationMinutes("REFRESH_TOKEN_MINUTES", 7*24*60),
		CorsConfig:  CorsConfig(),
		Storage: StorageConfig{
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("STORAGE_SECRET_ACCESS_KEY", ""),
			BucketName:      getEnv("STORAGE_BUCKET_NAME", ""),
			Region:          getEnv("STORAGE_REGION", "auto"),
			Endpoint:        getEnv("STORAGE_ENDPOINT", ""),
		},
	}
}

// Gets the env by key or fallbacks
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDurationMinutes(key string, fallback int) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if minutes, err := strconv.Atoi(value); err == nil && minutes > 0 {
			return time.Duration(minutes) * time.Minute
		}
		log.Println("Ignoring invalid", key, "value:", value)
	}
	return time.Duration(fallback) * time.Minute
}

func CorsConfig() cors.Options {
	return cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}
}
