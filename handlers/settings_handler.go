package handlers

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"

	"Sistem-Absensi-Ronda/models"
	util "Sistem-Absensi-Ronda/pkg/utils"
	"Sistem-Absensi-Ronda/storage"
)

// SettingsHandler mengurus kredensial penyimpanan remote: diisi sekali,
// disimpan lokal di settings.json, dibuang saat dicabut atau ditolak.
type SettingsHandler struct {
	local  *storage.LocalStore
	github *storage.GitHubStore // nil bila driver penyimpanan lokal
}

func NewSettingsHandler(local *storage.LocalStore, github *storage.GitHubStore) *SettingsHandler {
	return &SettingsHandler{local: local, github: github}
}

// LoadRemoteSettings membaca kredensial yang tersimpan lokal. Tidak adanya
// file settings berarti belum pernah diisi, bukan error.
func LoadRemoteSettings(ctx context.Context, local *storage.LocalStore) (models.RemoteSettings, error) {
	var settings models.RemoteSettings

	doc, err := local.Load(ctx, storage.SettingsPath)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return settings, nil
		}
		return settings, err
	}

	if err := json.Unmarshal(doc.Content, &settings); err != nil {
		return models.RemoteSettings{}, &storage.FormatError{Path: storage.SettingsPath, Err: err}
	}
	return settings, nil
}

// ClearRemoteSettings membuang file settings lokal. Dipasang juga sebagai
// OnAuthFailure milik GitHubStore.
func ClearRemoteSettings(local *storage.LocalStore) {
	_ = local.Delete(context.Background(), storage.SettingsPath)
}

func maskToken(token string) string {
	if len(token) <= 4 {
		return "****"
	}
	return token[:4] + "****"
}

// GetSettings godoc
// @Summary Lihat kredensial penyimpanan remote
// @Description Token hanya ditampilkan sebagian.
// @Tags Settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.RemoteSettingsResponse
// @Router /settings/remote [get]
func (h *SettingsHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := LoadRemoteSettings(c.Context(), h.local)
	if err != nil {
		return storageErrorResponse(c, err)
	}

	if !settings.Complete() {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Kredensial penyimpanan remote belum diisi",
		})
	}

	return c.Status(fiber.StatusOK).JSON(models.RemoteSettingsResponse{
		Message: "Kredensial penyimpanan remote tersimpan",
		Owner:   settings.Owner,
		Repo:    settings.Repo,
		Token:   maskToken(settings.Token),
	})
}

// UpdateSettings godoc
// @Summary Simpan kredensial penyimpanan remote
// @Description Menyimpan owner/repo/token secara lokal dan langsung memakainya untuk penyimpanan remote.
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.RemoteSettings true "Kredensial repo GitHub"
// @Success 200 {object} models.RemoteSettingsResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /settings/remote [put]
func (h *SettingsHandler) UpdateSettings(c *fiber.Ctx) error {
	var payload models.RemoteSettings
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload tidak valid", "details": err.Error()})
	}

	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	content, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengkodekan kredensial"})
	}

	// Ambil token versi file settings yang ada supaya Save tidak konflik.
	sha := ""
	if doc, loadErr := h.local.Load(c.Context(), storage.SettingsPath); loadErr == nil {
		sha = doc.SHA
	}

	if _, err := h.local.Save(c.Context(), storage.SettingsPath, content, sha); err != nil {
		return storageErrorResponse(c, err)
	}

	if h.github != nil {
		h.github.SetCredentials(payload)
	}

	return c.Status(fiber.StatusOK).JSON(models.RemoteSettingsResponse{
		Message: "Kredensial penyimpanan remote tersimpan",
		Owner:   payload.Owner,
		Repo:    payload.Repo,
		Token:   maskToken(payload.Token),
	})
}

// ClearSettings godoc
// @Summary Hapus kredensial penyimpanan remote
// @Tags Settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.RemoteSettingsResponse
// @Router /settings/remote [delete]
func (h *SettingsHandler) ClearSettings(c *fiber.Ctx) error {
	if err := h.local.Delete(c.Context(), storage.SettingsPath); err != nil {
		return storageErrorResponse(c, err)
	}

	if h.github != nil {
		h.github.SetCredentials(models.RemoteSettings{})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Kredensial penyimpanan remote dihapus. Silakan isi ulang sebelum sinkronisasi berikutnya.",
	})
}
