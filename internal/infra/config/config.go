// internal/infra/config/config.go
package config

import "os"

// Config holds environment-derived settings for the whole application.
type Config struct {
	Port string

	// Postgres (catalog store)
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	// Optional Secret Manager resource name for the DB password
	// (projects/<p>/secrets/<s>/versions/latest). When set, it takes
	// precedence over DB_PASSWORD.
	DBPasswordSecret string

	// Firestore (cart store)
	FirestoreProjectID       string
	FirestoreCredentialsFile string

	// GCS (food images)
	FoodImageBucket string

	// Firebase Auth (session token verification)
	FirebaseProjectID string

	// Shared GCP credentials file (GOOGLE_APPLICATION_CREDENTIALS)
	GCPCreds string

	// Allowed CORS origin for the storefront / admin frontends.
	FrontendOrigin string
}

// Load reads environment variables and returns a Config.
func Load() *Config {
	defaultProject := os.Getenv("GCP_PROJECT_ID")

	return &Config{
		Port: getenvDefault("PORT", "8080"),

		DBHost:           getenvDefault("DB_HOST", "localhost"),
		DBPort:           getenvDefault("DB_PORT", "5432"),
		DBUser:           getenvDefault("DB_USER", "postgres"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBPasswordSecret: os.Getenv("DB_PASSWORD_SECRET"),
		DBName:           getenvDefault("DB_NAME", "foodhall"),

		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),

		FoodImageBucket: getenvDefault("FOOD_IMAGE_BUCKET", "foodhall-food-images"),

		FirebaseProjectID: getenvDefault("FIREBASE_PROJECT_ID", defaultProject),

		GCPCreds: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),

		FrontendOrigin: getenvDefault("FRONTEND_ORIGIN", "*"),
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
