package router

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"Sistem-Absensi-Ronda/config"
	"Sistem-Absensi-Ronda/config/middleware"
	"Sistem-Absensi-Ronda/handlers"
	"Sistem-Absensi-Ronda/pkg/paseto"
	"Sistem-Absensi-Ronda/repository"
	"Sistem-Absensi-Ronda/seeder"
	"Sistem-Absensi-Ronda/storage"

	_ "Sistem-Absensi-Ronda/docs"
)

// SetupRoutes merangkai repository, handler, dan rute. store adalah backend
// dokumen aktif (lokal atau GitHub); local selalu ada untuk settings, dan
// github nil bila driver lokal yang dipakai.
func SetupRoutes(app *fiber.App, cfg *config.AppConfig, store storage.DocumentStore, local *storage.LocalStore, github *storage.GitHubStore) error {
	log.Println("Memulai pendaftaran rute aplikasi...")

	maker, err := paseto.NewMaker(cfg.PasetoSecret)
	if err != nil {
		return fmt.Errorf("gagal menyiapkan token maker: %w", err)
	}

	attendanceRepo := repository.NewAttendanceRepository(store, storage.RecordsPath)
	scheduleRepo := repository.NewScheduleRepository(store, storage.SchedulePath)

	if err := seeder.SeedDocuments(attendanceRepo, scheduleRepo); err != nil {
		return fmt.Errorf("gagal memuat dokumen awal: %w", err)
	}

	authHandler := handlers.NewAuthHandler(cfg, maker)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceRepo, scheduleRepo, cfg.FormBaseURL)
	scheduleHandler := handlers.NewScheduleHandler(scheduleRepo)
	settingsHandler := handlers.NewSettingsHandler(local, github)

	// Health check & Docs
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Sistem Absensi Ronda API",
			"status":  "running",
			"docs":    "/docs/index.html",
		})
	})
	app.Get("/docs/*", swagger.HandlerDefault)

	api := app.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)

	attendanceGroup := api.Group("/attendance", middleware.AuthMiddleware(maker))
	attendanceGroup.Post("/", attendanceHandler.Submit)
	attendanceGroup.Get("/recap", attendanceHandler.GetRecap)
	attendanceGroup.Get("/export", attendanceHandler.Export)
	attendanceGroup.Post("/reload", attendanceHandler.Reload)

	adminAttendanceGroup := attendanceGroup.Group("/", middleware.AdminMiddleware())
	adminAttendanceGroup.Post("/import", attendanceHandler.Import)
	adminAttendanceGroup.Get("/qrcode", attendanceHandler.GenerateQRCode)

	scheduleGroup := api.Group("/schedule", middleware.AuthMiddleware(maker))
	scheduleGroup.Get("/", scheduleHandler.GetSchedule)
	scheduleGroup.Get("/upcoming", scheduleHandler.GetUpcomingNights)

	adminScheduleGroup := scheduleGroup.Group("/", middleware.AdminMiddleware())
	adminScheduleGroup.Put("/", scheduleHandler.ReplaceSchedule)
	adminScheduleGroup.Post("/officers", scheduleHandler.AddOfficer)
	adminScheduleGroup.Delete("/officers", scheduleHandler.RemoveOfficer)

	settingsGroup := api.Group("/settings", middleware.AuthMiddleware(maker), middleware.AdminMiddleware())
	settingsGroup.Get("/remote", settingsHandler.GetSettings)
	settingsGroup.Put("/remote", settingsHandler.UpdateSettings)
	settingsGroup.Delete("/remote", settingsHandler.ClearSettings)

	log.Println("Semua rute aplikasi berhasil didaftarkan.")
	log.Println("Routes yang tersedia:")
	log.Println("- POST /api/v1/auth/login")
	log.Println("- POST /api/v1/attendance (protected)")
	log.Println("- GET /api/v1/attendance/recap (protected)")
	log.Println("- GET /api/v1/attendance/export (protected)")
	log.Println("- POST /api/v1/attendance/reload (protected)")
	log.Println("- POST /api/v1/attendance/import (admin only)")
	log.Println("- GET /api/v1/attendance/qrcode (admin only)")
	log.Println("- GET /api/v1/schedule (protected)")
	log.Println("- GET /api/v1/schedule/upcoming (protected)")
	log.Println("- PUT /api/v1/schedule (admin only)")
	log.Println("- POST /api/v1/schedule/officers (admin only)")
	log.Println("- DELETE /api/v1/schedule/officers (admin only)")
	log.Println("- GET/PUT/DELETE /api/v1/settings/remote (admin only)")
	log.Println("Swagger documentation tersedia di: /docs/index.html")

	return nil
}
