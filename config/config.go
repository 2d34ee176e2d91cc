package config

import (
	"encoding/base64"
	"log"
	"os"

	"github.com/joho/godotenv"

	"Sistem-Absensi-Ronda/pkg/password"
)

const (
	StorageDriverLocal  = "local"
	StorageDriverGitHub = "github"
)

type AppConfig struct {
	Port              string
	PasetoSecret      string
	AdminUsername     string
	AdminPasswordHash string

	// StorageDriver memilih backend dokumen: "local" (file JSON di DataDir)
	// atau "github" (contents API). Settings lokal selalu ada di DataDir.
	StorageDriver string
	DataDir       string

	// Kredensial awal untuk driver github; bisa ditimpa lewat endpoint
	// settings dan file settings.json lokal.
	GitHubOwner string
	GitHubRepo  string
	GitHubToken string

	// FormBaseURL dipakai QR Code formulir absensi.
	FormBaseURL string
}

// LoadConfig loads configuration from .env file
func LoadConfig() *AppConfig {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Warning: Error loading .env file (might not exist in production): %v", err)
	}

	secretBase64 := getEnv("PASETO_SECRET", "cmFoYXNpYS1yb25kYS1yYWhhc2lhLXJvbmRhLTEyMzQ=")

	secretBytes, err := base64.URLEncoding.DecodeString(secretBase64)
	if err != nil {
		secretBytes, err = base64.StdEncoding.DecodeString(secretBase64)
		if err != nil {
			log.Fatalf("PASETO_SECRET di .env bukan Base64 yang valid: %v", err)
		}
	}
	if len(secretBytes) != 32 {
		log.Fatalf("PASETO_SECRET (setelah decode) harus tepat 32 byte, sekarang %d byte", len(secretBytes))
	}

	driver := getEnv("STORAGE_DRIVER", StorageDriverLocal)
	if driver != StorageDriverLocal && driver != StorageDriverGitHub {
		log.Fatalf("STORAGE_DRIVER tidak dikenal: %q (pilihan: local, github)", driver)
	}

	adminPasswordHash := getEnv("ADMIN_PASSWORD_HASH", "")
	if adminPasswordHash == "" {
		// Fallback pengembangan: hash password plaintext dari env saat start.
		plain := getEnv("ADMIN_PASSWORD", "ronda123")
		adminPasswordHash, err = password.HashPassword(plain)
		if err != nil {
			log.Fatalf("Gagal membuat hash password admin: %v", err)
		}
	}

	return &AppConfig{
		Port:              getEnv("PORT", "3000"),
		PasetoSecret:      secretBase64,
		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: adminPasswordHash,
		StorageDriver:     driver,
		DataDir:           getEnv("DATA_DIR", "./data"),
		GitHubOwner:       getEnv("GITHUB_OWNER", ""),
		GitHubRepo:        getEnv("GITHUB_REPO", ""),
		GitHubToken:       getEnv("GITHUB_TOKEN", ""),
		FormBaseURL:       getEnv("FORM_BASE_URL", "http://localhost:3000"),
	}
}

// Helper function to get environment variable or fallback to default
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
