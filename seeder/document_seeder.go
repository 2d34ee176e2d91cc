package seeder

import (
	"context"
	"log"
	"time"

	"Sistem-Absensi-Ronda/repository"
)

// SeedDocuments memuat dokumen absensi dan jadwal dari penyimpanan.
// Dokumen yang belum pernah ada diinisialisasi dengan payload bawaan
// (daftar kosong untuk absensi, roster bawaan untuk jadwal) oleh Load
// masing-masing repository.
func SeedDocuments(attendanceRepo repository.AttendanceRepository, scheduleRepo repository.ScheduleRepository) error {
	log.Println("🌱 Memuat dokumen absensi dan jadwal dari penyimpanan...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := attendanceRepo.Load(ctx); err != nil {
		return err
	}
	log.Printf("✔ Data absensi siap (%d record)", attendanceRepo.Count())

	if err := scheduleRepo.Load(ctx); err != nil {
		return err
	}
	log.Println("✔ Jadwal ronda siap")

	log.Println("✅ Dokumen penyimpanan siap dipakai")
	return nil
}
