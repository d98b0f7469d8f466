package config

import (
	"os"
	"strconv"
)

func loadDevelopmentConfig(cfg *Config) {
	loadSharedConfig(cfg)

	cfg.DatabaseDebug = true
	if cfg.DatabaseFilePath == "" {
		cfg.DatabaseFilePath = "./tmp/data.sqlite"
	}
	cfg.ServerHost = "127.0.0.1"
}

// loadSharedConfig reads the environment variables that apply to every
// environment.
func loadSharedConfig(cfg *Config) {
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err == nil {
		cfg.ServerPort = port
	}

	cfg.AuthJWTSecret = os.Getenv("AUTH_JWT_SECRET")
	cfg.DatabaseFilePath = os.Getenv("DATABASE_FILE_PATH")
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
}
