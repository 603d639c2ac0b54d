package utils

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// ErrMissingEnv is returned when a required environment variable is unset.
var ErrMissingEnv = errors.New("missing required environment variable")

// LoadEnv reads .env (if present) and returns the required variables.
func LoadEnv(requiredVars []string) (map[string]string, error) {
	_ = godotenv.Load()

	envVars := make(map[string]string)

	for _, key := range requiredVars {
		value := os.Getenv(key)
		if value == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingEnv, key)
		}
		envVars[key] = value
	}

	return envVars, nil
}

// LookupEnv reads .env (if present) and returns the variables that are set.
func LookupEnv(vars []string) map[string]string {
	_ = godotenv.Load()

	envVars := make(map[string]string)
	for _, key := range vars {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			envVars[key] = value
		}
	}
	return envVars
}
