package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string
	AdminID       string
	SupabaseURL   string
	SupabaseKey   string
	PhotoURL      string
	WebAppURL     string
	ContactURL    string
}

func LoadConfig() (*Config, error) {
	// .env отсутствует в serverless-окружении, поэтому ошибку игнорируем
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken: os.Getenv("BOT_TOKEN"),
		AdminID:       os.Getenv("ADMIN_ID"),
		SupabaseURL:   os.Getenv("SUPABASE_URL"),
		SupabaseKey:   os.Getenv("SUPABASE_KEY"),
		PhotoURL:      getenvDefault("PHOTO_URL", "https://www.cio.com/wp-content/uploads/2023/05/SW-Blog-image-Getty-1170x600-2.jpg?quality=50&strip=all"),
		WebAppURL:     getenvDefault("WEBAPP_URL", "https://invest-app-neon.vercel.app"),
		ContactURL:    getenvDefault("CONTACT_URL", "https://t.me/KapitalPro_Support"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет наличие обязательных переменных окружения.
func (c *Config) Validate() error {
	switch {
	case c.TelegramToken == "":
		return errors.New("BOT_TOKEN is required in environment variables")
	case c.AdminID == "":
		return errors.New("ADMIN_ID is required in environment variables")
	case c.SupabaseURL == "":
		return errors.New("SUPABASE_URL is required in environment variables")
	case c.SupabaseKey == "":
		return errors.New("SUPABASE_KEY is required in environment variables")
	}
	return nil
}

// IsAdmin сравнивает идентификатор вызывающего со сконфигурированным
// администратором. Сравнение всегда строковое.
func (c *Config) IsAdmin(userID string) bool {
	return userID == c.AdminID
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
