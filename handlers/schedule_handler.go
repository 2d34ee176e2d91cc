package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/teambition/rrule-go"

	"Sistem-Absensi-Ronda/models"
	util "Sistem-Absensi-Ronda/pkg/utils"
	"Sistem-Absensi-Ronda/repository"
)

type ScheduleHandler struct {
	repo repository.ScheduleRepository
}

func NewScheduleHandler(repo repository.ScheduleRepository) *ScheduleHandler {
	return &ScheduleHandler{repo: repo}
}

// GetSchedule godoc
// @Summary Jadwal piket mingguan
// @Tags Schedule
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ScheduleResponse
// @Router /schedule [get]
func (h *ScheduleHandler) GetSchedule(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(models.ScheduleResponse{
		Message:  "Jadwal ronda berhasil diambil",
		Schedule: h.repo.Schedule(),
	})
}

// AddOfficer godoc
// @Summary Tambah petugas ke satu hari
// @Description Menambahkan nama ke daftar piket satu hari. Nama kosong atau yang sudah ada di hari itu tidak mengubah apa-apa.
// @Tags Schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.ScheduleOfficerPayload true "Hari dan nama petugas"
// @Success 200 {object} models.ScheduleResponse
// @Router /schedule/officers [post]
func (h *ScheduleHandler) AddOfficer(c *fiber.Ctx) error {
	var payload models.ScheduleOfficerPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload tidak valid", "details": err.Error()})
	}

	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	added, err := h.repo.AddOfficer(c.Context(), payload.Weekday, payload.Name)
	if err != nil {
		return storageErrorResponse(c, err)
	}

	message := fmt.Sprintf("Petugas '%s' ditambahkan ke hari %s", payload.Name, util.DayName(payload.Weekday))
	if !added {
		message = fmt.Sprintf("Petugas '%s' sudah terdaftar di hari %s, tidak ada perubahan", payload.Name, util.DayName(payload.Weekday))
	}

	return c.Status(fiber.StatusOK).JSON(models.ScheduleResponse{
		Message:  message,
		Schedule: h.repo.Schedule(),
	})
}

// RemoveOfficer godoc
// @Summary Hapus petugas dari satu hari
// @Tags Schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.ScheduleOfficerPayload true "Hari dan nama petugas"
// @Success 200 {object} models.ScheduleResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /schedule/officers [delete]
func (h *ScheduleHandler) RemoveOfficer(c *fiber.Ctx) error {
	var payload models.ScheduleOfficerPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload tidak valid", "details": err.Error()})
	}

	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	removed, err := h.repo.RemoveOfficer(c.Context(), payload.Weekday, payload.Name)
	if err != nil {
		return storageErrorResponse(c, err)
	}
	if !removed {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": fmt.Sprintf("Petugas '%s' tidak ditemukan di hari %s", payload.Name, util.DayName(payload.Weekday)),
		})
	}

	return c.Status(fiber.StatusOK).JSON(models.ScheduleResponse{
		Message:  fmt.Sprintf("Petugas '%s' dihapus dari hari %s", payload.Name, util.DayName(payload.Weekday)),
		Schedule: h.repo.Schedule(),
	})
}

// ReplaceSchedule godoc
// @Summary Ganti seluruh jadwal piket
// @Tags Schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.ScheduleReplacePayload true "Jadwal baru"
// @Success 200 {object} models.ScheduleResponse
// @Router /schedule [put]
func (h *ScheduleHandler) ReplaceSchedule(c *fiber.Ctx) error {
	var payload models.ScheduleReplacePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload tidak valid", "details": err.Error()})
	}

	if err := h.repo.ReplaceAll(c.Context(), payload.Schedule); err != nil {
		return storageErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(models.ScheduleResponse{
		Message:  "Jadwal ronda berhasil diganti",
		Schedule: h.repo.Schedule(),
	})
}

var rruleWeekdays = [7]rrule.Weekday{
	rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA,
}

// GetUpcomingNights godoc
// @Summary Malam jaga berikutnya untuk satu hari piket
// @Description Menghitung N tanggal jaga berikutnya untuk satu indeks hari sebagai recurrence mingguan.
// @Tags Schedule
// @Produce json
// @Security BearerAuth
// @Param weekday query int true "Indeks hari (0=Minggu .. 6=Sabtu)"
// @Param count query int false "Jumlah malam (default 4, maksimal 52)"
// @Success 200 {object} models.UpcomingNightsResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /schedule/upcoming [get]
func (h *ScheduleHandler) GetUpcomingNights(c *fiber.Ctx) error {
	weekday := c.QueryInt("weekday", -1)
	if weekday < 0 || weekday > 6 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Parameter weekday harus 0 sampai 6"})
	}

	count := c.QueryInt("count", 4)
	if count < 1 || count > 52 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Parameter count harus 1 sampai 52"})
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: []rrule.Weekday{rruleWeekdays[weekday]},
		Dtstart:   time.Now(),
		Count:     count,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menghitung jadwal berikutnya", "details": err.Error()})
	}

	roster := h.repo.Lookup(weekday)
	nights := make([]models.UpcomingNight, 0, count)
	for _, occurrence := range rule.All() {
		nights = append(nights, models.UpcomingNight{
			Date:     occurrence.Format("2006-01-02"),
			Day:      util.NightLabel(weekday),
			Officers: roster,
		})
	}

	return c.Status(fiber.StatusOK).JSON(models.UpcomingNightsResponse{
		Message: "Jadwal ronda berikutnya berhasil dihitung",
		Nights:  nights,
	})
}
