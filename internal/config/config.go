package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mystore/storefront/internal/models"
)

type Config struct {
	DB_HOST        string
	DB_PORT        string
	DB_USER        string
	DB_PASSWORD    string
	DB_NAME        string
	ES_URL         string
	ES_USER        string
	ES_PASSWORD    string
	KAFKA_ADDRESS  string
	SESSION_SECRET string
	SEED_DATABASE  bool
	UPLOAD_DIR     string
	PORT           string
	LOG_LEVEL      string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		DB_HOST:        os.Getenv("DB_HOST"),
		DB_PORT:        os.Getenv("DB_PORT"),
		DB_USER:        os.Getenv("DB_USER"),
		DB_PASSWORD:    os.Getenv("DB_PASSWORD"),
		DB_NAME:        os.Getenv("DB_NAME"),
		ES_URL:         os.Getenv("ES_URL"),
		ES_USER:        os.Getenv("ES_USER"),
		ES_PASSWORD:    os.Getenv("ES_PASSWORD"),
		KAFKA_ADDRESS:  os.Getenv("KAFKA_ADDRESS"),
		SESSION_SECRET: os.Getenv("SESSION_SECRET"),
		SEED_DATABASE:  os.Getenv("SEED_DATABASE") == "true",
		UPLOAD_DIR:     os.Getenv("UPLOAD_DIR"),
		PORT:           os.Getenv("PORT"),
		LOG_LEVEL:      os.Getenv("LOG_LEVEL"),
	}

	if config.SESSION_SECRET == "" {
		return nil, fmt.Errorf("SESSION_SECRET is not set")
	}
	if config.UPLOAD_DIR == "" {
		config.UPLOAD_DIR = "./public/images"
	}
	if config.PORT == "" {
		config.PORT = "8080"
	}

	return config, nil
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DB_USER, cfg.DB_PASSWORD, cfg.DB_HOST, cfg.DB_PORT, cfg.DB_NAME,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("cannot connect to db: %w", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Session{}); err != nil {
		return nil, fmt.Errorf("cannot migrate db: %w", err)
	}
	return db, nil
}
