package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"Sistem-Absensi-Ronda/storage"
)

// storageErrorResponse memetakan taksonomi error penyimpanan ke respons
// HTTP. Semuanya non-fatal: user tinggal mengulang aksinya.
func storageErrorResponse(c *fiber.Ctx, err error) error {
	var conflict *storage.ConflictError
	var format *storage.FormatError
	var transport *storage.TransportError

	switch {
	case errors.As(err, &conflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Data di penyimpanan sudah berubah. Data terbaru telah dimuat ulang, silakan ulangi aksi Anda.",
		})
	case errors.As(err, &format):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Format data tidak valid",
			"details": err.Error(),
		})
	case errors.As(err, &transport):
		if transport.StatusCode == fiber.StatusUnauthorized || transport.StatusCode == fiber.StatusForbidden {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Kredensial penyimpanan remote ditolak dan sudah dihapus. Silakan isi ulang lewat pengaturan.",
			})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   "Gagal menghubungi penyimpanan",
			"details": transport.Detail,
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Terjadi kesalahan internal",
			"details": err.Error(),
		})
	}
}
