package handlers

import (
	"github.com/gofiber/fiber/v2"

	"Sistem-Absensi-Ronda/config"
	"Sistem-Absensi-Ronda/models"
	"Sistem-Absensi-Ronda/pkg/paseto"
	"Sistem-Absensi-Ronda/pkg/password"
	util "Sistem-Absensi-Ronda/pkg/utils"
)

type AuthHandler struct {
	cfg   *config.AppConfig
	maker *paseto.Maker
}

func NewAuthHandler(cfg *config.AppConfig, maker *paseto.Maker) *AuthHandler {
	return &AuthHandler{cfg: cfg, maker: maker}
}

// Login godoc
// @Summary Login admin ronda
// @Description Memeriksa kredensial admin dan mengembalikan token PASETO bila valid.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body models.UserLoginPayload true "Kredensial login"
// @Success 200 {object} models.LoginSuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse "Kombinasi username dan password salah"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var payload models.UserLoginPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload tidak valid", "details": err.Error()})
	}

	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	if payload.Username != h.cfg.AdminUsername ||
		!password.CheckPasswordHash(payload.Password, h.cfg.AdminPasswordHash) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Kombinasi username dan password salah"})
	}

	token, err := h.maker.GenerateToken(payload.Username, "admin")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal membuat token"})
	}

	return c.Status(fiber.StatusOK).JSON(models.LoginSuccessResponse{
		Message: "Login berhasil",
		Token:   token,
		Role:    "admin",
	})
}
