package handlers

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"Sistem-Absensi-Ronda/models"
	util "Sistem-Absensi-Ronda/pkg/utils"
	"Sistem-Absensi-Ronda/repository"
)

type AttendanceHandler struct {
	repo         repository.AttendanceRepository
	scheduleRepo repository.ScheduleRepository
	formBaseURL  string
}

func NewAttendanceHandler(repo repository.AttendanceRepository, scheduleRepo repository.ScheduleRepository, formBaseURL string) *AttendanceHandler {
	return &AttendanceHandler{repo: repo, scheduleRepo: scheduleRepo, formBaseURL: formBaseURL}
}

// Submit godoc
// @Summary Catat absensi ronda malam ini
// @Description Membuat satu record absensi untuk satu malam jaga. Maksimal satu record per tanggal; petugas yang tidak diberi status dianggap Hadir.
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.AttendanceSubmitPayload true "Isian absensi"
// @Success 201 {object} models.SubmitSuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse "Absensi tanggal ini sudah tercatat"
// @Router /attendance [post]
func (h *AttendanceHandler) Submit(c *fiber.Ctx) error {
	var payload models.AttendanceSubmitPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload tidak valid", "details": err.Error()})
	}

	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	now := time.Now()
	date := payload.Date
	if date == "" {
		date = now.Format("2006-01-02")
	}

	parsedDate, err := time.Parse("2006-01-02", date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Tanggal tidak valid", "details": err.Error()})
	}

	// Satu malam satu record. Status "sudah absen" diturunkan dari isi
	// koleksi, tidak disimpan terpisah.
	if h.repo.HasDate(date) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": fmt.Sprintf("Absensi untuk tanggal %s sudah tercatat", date),
		})
	}

	weekday := int(parsedDate.Weekday())
	roster := h.scheduleRepo.Lookup(weekday)
	if len(roster) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Tidak ada petugas terjadwal untuk hari %s", util.DayName(weekday)),
		})
	}

	officers := make([]models.OfficerAttendance, 0, len(roster))
	for _, name := range roster {
		// Petugas tanpa status eksplisit dicatat Hadir.
		status := models.StatusHadir
		if s, ok := payload.Statuses[name]; ok {
			status = models.AttendanceStatus(s)
		}
		officers = append(officers, models.OfficerAttendance{Name: name, Status: status})
	}

	record := models.AttendanceRecord{
		ID:         util.RecordID(now),
		Date:       date,
		Day:        util.NightLabel(weekday),
		Officers:   officers,
		Notes:      payload.Notes,
		Collection: util.ParseCollection(payload.Collection),
	}

	if err := h.repo.Append(c.Context(), record); err != nil {
		return storageErrorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SubmitSuccessResponse{
		Message: "Absensi ronda berhasil dicatat",
		Record:  record,
	})
}

// GetRecap godoc
// @Summary Rekap absensi
// @Description Mengambil daftar record absensi, bisa difilter satu tanggal, urut tanggal terbaru dulu.
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param date query string false "Filter tanggal (YYYY-MM-DD)"
// @Success 200 {object} models.RecapResponse
// @Router /attendance/recap [get]
func (h *AttendanceHandler) GetRecap(c *fiber.Ctx) error {
	records := h.repo.FindAll(c.Query("date"))

	return c.Status(fiber.StatusOK).JSON(models.RecapResponse{
		Message: "Rekap absensi berhasil diambil",
		Records: records,
		Total:   len(records),
	})
}

// Export godoc
// @Summary Ekspor seluruh data absensi
// @Description Mengunduh seluruh koleksi sebagai satu dokumen JSON (data_ronda.json).
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.AttendanceRecord
// @Router /attendance/export [get]
func (h *AttendanceHandler) Export(c *fiber.Ctx) error {
	content, err := h.repo.ExportJSON()
	if err != nil {
		return storageErrorResponse(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="data_ronda.json"`)
	return c.Status(fiber.StatusOK).Send(content)
}

// Import godoc
// @Summary Impor data absensi
// @Description Mengganti seluruh koleksi dengan isi dokumen JSON yang diunggah. Tidak ada merge; dokumen yang bukan daftar record ditolak utuh.
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body []models.AttendanceRecord true "Isi data_ronda.json"
// @Success 200 {object} models.ImportSuccessResponse
// @Failure 400 {object} models.ErrorResponse "Dokumen bukan daftar record"
// @Router /attendance/import [post]
func (h *AttendanceHandler) Import(c *fiber.Ctx) error {
	if err := h.repo.ImportJSON(c.Context(), c.Body()); err != nil {
		return storageErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(models.ImportSuccessResponse{
		Message: "Data absensi berhasil diimpor",
		Total:   h.repo.Count(),
	})
}

// Reload godoc
// @Summary Muat ulang data dari penyimpanan
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.RecapResponse
// @Router /attendance/reload [post]
func (h *AttendanceHandler) Reload(c *fiber.Ctx) error {
	if err := h.repo.Load(c.Context()); err != nil {
		return storageErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Data absensi dimuat ulang dari penyimpanan",
		"total":   h.repo.Count(),
	})
}

// GenerateQRCode godoc
// @Summary QR Code formulir absensi malam ini
// @Description Membuat QR Code (PNG base64) yang mengarah ke formulir absensi tanggal hari ini.
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.QRCodeResponse
// @Router /attendance/qrcode [get]
func (h *AttendanceHandler) GenerateQRCode(c *fiber.Ctx) error {
	today := time.Now().Format("2006-01-02")
	formURL := fmt.Sprintf("%s/absen?tanggal=%s&kode=%s", h.formBaseURL, today, uuid.New().String())

	png, err := qrcode.Encode(formURL, qrcode.Medium, 256)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal membuat gambar QR Code"})
	}

	return c.Status(fiber.StatusOK).JSON(models.QRCodeResponse{
		Message:     "QR Code berhasil dibuat",
		QRCodeImage: "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
		FormURL:     formURL,
	})
}
