// Package config collects every environment-derived setting into one value
// built at startup. Nothing past main reads the environment directly.
package config

import "os"

// Config carries the application's runtime settings.
type Config struct {
	Port      string
	DSN       string
	JWTSecret string

	CORSOrigins []string

	StorageProjectID string
	StorageAPIKey    string
	StorageBucket    string
}

// Load reads the environment with development defaults. godotenv is expected
// to have populated the process environment already.
func Load() Config {
	dbHost := getenv("DB_HOST", "localhost")
	dbPort := getenv("DB_PORT", "5432")
	dbUser := getenv("DB_USER", "postgres")
	dbPassword := getenv("DB_PASSWORD", "postgres")
	dbName := getenv("DB_NAME", "postgres")
	dbSslMode := getenv("DB_SSLMODE", "disable")

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if os.Getenv("GIN_MODE") == "release" {
			panic("FATAL: JWT_SECRET environment variable is required in production mode")
		}
		secret = "default_super_secret_key" // Development fallback only — DO NOT use in production
	}

	return Config{
		Port:      getenv("PORT", "8080"),
		DSN:       "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode,
		JWTSecret: secret,
		CORSOrigins: []string{
			getenv("FRONTEND_ORIGIN", "http://localhost:5173"),
			"http://127.0.0.1:5173",
		},
		StorageProjectID: getenv("STORAGE_PROJECT_ID", ""),
		StorageAPIKey:    getenv("STORAGE_API_KEY", ""),
		StorageBucket:    getenv("STORAGE_BUCKET", "uploads"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
