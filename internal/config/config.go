package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the configuration settings for the address resolution service.
//
// Fields:
// - Env: The current environment (e.g., local, dev, prod).
// - Port: The port for the monitoring server.
// - ProviderType: The type of geocoding provider to use (arcgis, google, nominatim).
// - APIKey: The API key for accessing external services (required for Google).
// - Workers: The number of concurrent workers for address lookups.
// - MaxRetries: The number of retry rounds for failed lookups after the first dispatch.
// - BatchLimit: The maximum number of address rows fetched per polling cycle.
// - Interval: The duration between polling cycles.
// - Database: Configuration settings for the PostgreSQL database.
type Config struct {
	Env          string         `yaml:"env"`                  // Env is the current environment: local, dev, prod.
	Port         int            `yaml:"waypoint.port"`        // Port is the monitoring server port.
	ProviderType string         `yaml:"provider.type"`        // ProviderType specifies which geocoding provider to use
	APIKey       string         `yaml:"provider.api_key"`     // The API key for accessing external services.
	Workers      int            `yaml:"waypoint.workers"`     // The number of concurrent workers for lookups.
	MaxRetries   int            `yaml:"waypoint.max_retries"` // Retry rounds for failed lookups.
	BatchLimit   int            `yaml:"waypoint.batch_limit"` // Maximum address rows fetched per cycle.
	Interval     time.Duration  `yaml:"waypoint.interval"`    // The duration between polling cycles.
	Database     PostgresConfig `yaml:"postgres"`             // Database holds the postgres database configuration
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `yaml:"host"`                        // Host is the database server address.
	Port     string `yaml:"port"     env-default:"5432"` // Port is the database server port.
	User     string `yaml:"user"`                        // User is the database user.
	Password string `yaml:"password"`                    // Password is the database user's password.
	Name     string `yaml:"db_name"`                     // Name is the name of the database.
}

// MustLoad loads the configuration from the environment and returns a Config struct.
func MustLoad() *Config {
	_ = godotenv.Load()

	interval, err := time.ParseDuration(setDefaultEnv("WAYPOINT_INTERVAL", "10m"))
	if err != nil {
		panic("failed to parse interval from configuration")
	}

	healthPort, err := strconv.Atoi(setDefaultEnv("WAYPOINT_HEALTH_PORT", "8080"))
	if err != nil {
		panic("failed to parse port for monitoring server from configuration")
	}

	workers, err := strconv.Atoi(setDefaultEnv("WAYPOINT_WORKERS", "10"))
	if err != nil {
		panic("failed to parse workers from configuration, must be an integer type")
	}

	maxRetries, err := strconv.Atoi(setDefaultEnv("WAYPOINT_MAX_RETRIES", "10"))
	if err != nil {
		panic("failed to parse max retries from configuration, must be an integer type")
	}

	batchLimit, err := strconv.Atoi(setDefaultEnv("WAYPOINT_BATCH_LIMIT", "100"))
	if err != nil {
		panic("failed to parse batch limit from configuration, must be an integer type")
	}

	return &Config{
		Env:          setDefaultEnv("WAYPOINT_ENV", "production"),
		Port:         healthPort,
		ProviderType: setDefaultEnv("WAYPOINT_PROVIDER_TYPE", "arcgis"), // ArcGIS works without an API key
		APIKey:       os.Getenv("WAYPOINT_PROVIDER_KEY"),
		Workers:      workers,
		MaxRetries:   maxRetries,
		BatchLimit:   batchLimit,
		Interval:     interval,
		Database: PostgresConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     os.Getenv("DB_PORT"),
			User:     os.Getenv("DB_USERNAME"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
		},
	}
}

func setDefaultEnv(key, override string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = override
	}

	return value
}
