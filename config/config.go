package config

import (
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type Config struct {
	Port      string
	DSN       string
	PrintsDir string
}

func Load() *Config {
	return &Config{
		Port:      getEnv("PORT", "8080"),
		DSN:       getEnv("DATABASE_DSN", "restopos:restopos@tcp(localhost:3306)/restopos?charset=utf8mb4&parseTime=True&loc=Local"),
		PrintsDir: getEnv("PRINTS_DIR", "prints"),
	}
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{})
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
