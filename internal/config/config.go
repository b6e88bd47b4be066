package config

import (
	"log"
	"net/http"
	"os"
	"strings"

	"pomotrack-backend/internal/utils"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type Config struct {
	DB_URL      string
	SqlitePath  string
	Port        string
	JWTSecret   string
	Environment string
	FrontendURL string
	CorsConfig  cors.Options
	Google      GoogleConfig
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
		SqlitePath:  getEnv("SQLITE_PATH", "pomotrack.db"),
		Port:        getEnv("PORT", "8080"),
		JWTSecret:   jwtSecret(),
		Environment: getEnv("ENV", "development"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		CorsConfig:  CorsConfig(),
		Google: GoogleConfig{
			ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			RedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8080/api/auth/google/callback"),
		},
	}
}

// jwtSecret returns the pinned JWT_SECRET, or generates an ephemeral one.
// An ephemeral secret invalidates every issued token on restart, which is
// only acceptable in development.
func jwtSecret() string {
	if secret, ok := os.LookupEnv("JWT_SECRET"); ok && secret != "" {
		return secret
	}
	secret, err := utils.GenerateSecureToken(32)
	if err != nil {
		log.Fatal("Failed to generate JWT secret:", err)
	}
	log.Println("JWT_SECRET not set, using an ephemeral secret; issued tokens will not survive a restart")
	return secret
}

// Gets the env by key or fallbacks
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func CorsConfig() cors.Options {
	origins := strings.Split(getEnv("CORS_ORIGINS", "http://localhost:5173"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}
}
