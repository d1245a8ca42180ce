package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	APIBaseURL string
	DBDSN      string
	LogFile    string
}

func Load() Config {
	// Local overrides live in .env; a missing file is fine.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	api := os.Getenv("API_BASE_URL")
	if api == "" {
		api = "http://localhost:3000"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "techreads.db" // sqlite file for the session token store
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./techreads.log"
	}

	cfg := Config{Port: port, APIBaseURL: api, DBDSN: dsn, LogFile: logFile}
	log.Printf("[config] PORT=%s API_BASE_URL=%s DB_DSN=%s LOG_FILE=%s", cfg.Port, cfg.APIBaseURL, cfg.DBDSN, cfg.LogFile)
	return cfg
}
