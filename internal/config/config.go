package config

import (
	"os"

	"github.com/joho/godotenv"
	logrus "github.com/sirupsen/logrus"
)

// Load reads .env if present; otherwise the process environment is used
// as-is.
func Load() {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found, relying on env vars")
	}
}

// GetEnv reads an environment variable or returns the provided default.
func GetEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}
