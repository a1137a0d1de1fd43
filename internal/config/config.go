package config

import (
	"log"
	"os"
	"strconv"
)

// Config holds all environment-driven settings. The Gemini credential is
// read here once and handed to the gateway constructor; no other package
// touches the environment for it.
type Config struct {
	Port        string
	FrontendURL string

	SessionSecret string

	GeminiAPIKey     string
	GeminiTextModel  string
	GeminiImageModel string

	// DefaultQuestionCount is used when a generation request does not name
	// a count of its own.
	DefaultQuestionCount int
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing required env %s", k)
	}
	return v
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("WARN: env %s=%q is not an integer, using default %d", k, v, def)
		return def
	}
	return n
}

// Load reads the configuration from the environment. Call godotenv.Load
// before this if a .env file should be honored.
func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		SessionSecret: getEnv("SESSION_SECRET", "smartstudy-dev-secret"),

		GeminiAPIKey:     mustEnv("GEMINI_API_KEY"),
		GeminiTextModel:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiImageModel: getEnv("GEMINI_IMAGE_MODEL", "gemini-2.5-flash-image"),

		DefaultQuestionCount: getEnvInt("DEFAULT_QUESTION_COUNT", 3),
	}
}
