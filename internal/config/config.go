package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr string

	// data
	AvailabilityPath string
	MenuPath         string

	// booking
	DefaultDate    string
	RestaurantName string

	// menu answering
	GeminiAPIKey string
	ChatModel    string
	EmbedModel   string
}

// FromEnv builds the configuration from environment variables, reading a
// .env file first if one exists. GEMINI_API_KEY may be empty; the server
// then answers menu questions with a static apology instead of the model.
func FromEnv() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		ListenAddr:       getenv("LISTEN_ADDR", ":8080"),
		AvailabilityPath: getenv("AVAILABILITY_PATH", "data/availability.json"),
		MenuPath:         getenv("MENU_PATH", "data/menu.json"),
		DefaultDate:      getenv("DEFAULT_DATE", "2026-02-20"),
		RestaurantName:   getenv("RESTAURANT_NAME", "Bella Roma"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		ChatModel:        getenv("GEMINI_MODEL", "gemini-2.0-flash"),
		EmbedModel:       getenv("GEMINI_EMBED_MODEL", "text-embedding-004"),
	}

	if _, err := time.Parse("2006-01-02", cfg.DefaultDate); err != nil {
		return Config{}, fmt.Errorf("invalid DEFAULT_DATE %q (want YYYY-MM-DD)", cfg.DefaultDate)
	}

	return cfg, nil
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
