package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the controller's configuration values.
type Config struct {
	MaxSteps int  // Hard ceiling on navigation cycles before the run is aborted
	Debug    bool // Enables per-cycle debug logging
}

const (
	defaultMaxSteps = 10000
	defaultDebug    = false
)

// Envs holds the controller's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the controller configuration.
// It loads environment variables from a .env file when one is present.
// Every variable is optional; the controller must be able to run with no
// arguments and no environment at all.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	return Config{
		MaxSteps: getEnvAsIntWithDefault("MOUSE_MAX_STEPS", defaultMaxSteps),
		Debug:    getEnvAsBoolWithDefault("MOUSE_DEBUG", defaultDebug),
	}
}

// getEnvAsIntWithDefault retrieves the value of an environment variable as an
// integer, or returns the default if the variable is not set. A set but
// unparsable value is a fatal misconfiguration.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvAsBoolWithDefault retrieves the value of an environment variable as a
// boolean, or returns the default if the variable is not set.
func getEnvAsBoolWithDefault(key string, defaultValue bool) bool {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be a boolean: %v", key, err)
	}
	return value
}
