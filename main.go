package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"Sistem-Absensi-Ronda/config"
	"Sistem-Absensi-Ronda/handlers"
	"Sistem-Absensi-Ronda/models"
	"Sistem-Absensi-Ronda/router"
	"Sistem-Absensi-Ronda/storage"

	_ "time/tzdata"
)

// @title Sistem Absensi Ronda API
// @version 1.0
// @description API pencatat absensi ronda malam: record kehadiran petugas per malam jaga, uang prelek, dan jadwal piket mingguan, tersimpan sebagai dokumen JSON lokal atau di repo GitHub.
//
// @contact.name API Support
// @contact.url https://github.com/your-repo
// @contact.email support@example.com
//
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
//
// @host localhost:3000
// @BasePath /api/v1
// @schemes http https
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and PASETO token.
//
// @tag.name Auth
// @tag.description Authentication endpoints
//
// @tag.name Attendance
// @tag.description Pencatatan dan rekap absensi ronda
//
// @tag.name Schedule
// @tag.description Jadwal piket mingguan
//
// @tag.name Settings
// @tag.description Kredensial penyimpanan remote
func main() {

	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file tidak ditemukan, menggunakan environment variables sistem")
	}

	cfg := config.LoadConfig()

	local := storage.NewLocalStore(cfg.DataDir)

	var store storage.DocumentStore = local
	var github *storage.GitHubStore
	if cfg.StorageDriver == config.StorageDriverGitHub {
		github = newGitHubStore(cfg, local)
		store = github
	}

	app := fiber.New()

	config.SetupCORS(app)

	app.Use(logger.New())

	if err := router.SetupRoutes(app, cfg, store, local, github); err != nil {
		log.Fatalf("Gagal menyiapkan aplikasi: %v", err)
	}

	log.Printf("Server running on port %s", cfg.Port)
	log.Printf("Storage driver: %s", cfg.StorageDriver)
	log.Printf("API Documentation: http://localhost:%s/docs/index.html", cfg.Port)
	log.Printf("CORS enabled for origins: %v", config.GetAllowedOrigins())
	log.Fatal(app.Listen(":" + cfg.Port))
}

// newGitHubStore memakai kredensial dari settings.json lokal bila ada,
// kalau tidak dari env. Saat kredensial ditolak, file settings lokal ikut
// dibuang supaya user diminta mengisi ulang.
func newGitHubStore(cfg *config.AppConfig, local *storage.LocalStore) *storage.GitHubStore {
	creds, err := handlers.LoadRemoteSettings(context.Background(), local)
	if err != nil {
		log.Printf("Warning: settings.json tidak terbaca, memakai kredensial dari env: %v", err)
	}
	if !creds.Complete() {
		creds = models.RemoteSettings{
			Owner: cfg.GitHubOwner,
			Repo:  cfg.GitHubRepo,
			Token: cfg.GitHubToken,
		}
	}
	if !creds.Complete() {
		log.Println("Warning: kredensial penyimpanan remote belum lengkap; isi lewat PUT /api/v1/settings/remote")
	}

	github := storage.NewGitHubStore(creds)
	github.OnAuthFailure = func() { handlers.ClearRemoteSettings(local) }
	return github
}
