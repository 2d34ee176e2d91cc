package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Sistem-Absensi-Ronda/handlers"
	"Sistem-Absensi-Ronda/models"
	"Sistem-Absensi-Ronda/repository"
	"Sistem-Absensi-Ronda/storage"
)

func newTestApp(t *testing.T) (*fiber.App, repository.AttendanceRepository) {
	t.Helper()

	store := storage.NewLocalStore(t.TempDir())
	ctx := context.Background()

	attendanceRepo := repository.NewAttendanceRepository(store, storage.RecordsPath)
	require.NoError(t, attendanceRepo.Load(ctx))

	scheduleRepo := repository.NewScheduleRepository(store, storage.SchedulePath)
	require.NoError(t, scheduleRepo.Load(ctx))
	// 2024-01-01 adalah hari Senin; rosternya A dan B.
	require.NoError(t, scheduleRepo.ReplaceAll(ctx, models.DutySchedule{1: {"A", "B"}}))

	handler := handlers.NewAttendanceHandler(attendanceRepo, scheduleRepo, "http://localhost:3000")

	app := fiber.New()
	app.Post("/attendance", handler.Submit)
	app.Get("/attendance/recap", handler.GetRecap)
	app.Get("/attendance/export", handler.Export)
	app.Post("/attendance/import", handler.Import)
	app.Get("/attendance/qrcode", handler.GenerateQRCode)

	return app, attendanceRepo
}

func jsonRequest(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, target, &body)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestSubmitMondayNightScenario(t *testing.T) {
	app, repo := newTestApp(t)

	resp, err := app.Test(jsonRequest(t, fiber.MethodPost, "/attendance", models.AttendanceSubmitPayload{
		Date:       "2024-01-01",
		Statuses:   map[string]string{"A": "Hadir", "B": "Ijin"},
		Notes:      "",
		Collection: "50000",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var result models.SubmitSuccessResponse
	decodeBody(t, resp, &result)

	record := result.Record
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "2024-01-01", record.Date)
	assert.Equal(t, "Senin malam Selasa", record.Day)
	assert.Equal(t, []models.OfficerAttendance{
		{Name: "A", Status: models.StatusHadir},
		{Name: "B", Status: models.StatusIjin},
	}, record.Officers)
	assert.Equal(t, "", record.Notes)
	assert.Equal(t, 50000, record.Collection)

	// Submit kedua untuk tanggal yang sama ditolak tanpa record baru.
	resp, err = app.Test(jsonRequest(t, fiber.MethodPost, "/attendance", models.AttendanceSubmitPayload{
		Date: "2024-01-01",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, 1, repo.Count())
}

func TestSubmitDefaultsMissingOfficersToHadir(t *testing.T) {
	app, _ := newTestApp(t)

	// Hanya B yang diberi status; A mengikuti kebijakan bawaan Hadir.
	resp, err := app.Test(jsonRequest(t, fiber.MethodPost, "/attendance", models.AttendanceSubmitPayload{
		Date:     "2024-01-01",
		Statuses: map[string]string{"B": "Alpa"},
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var result models.SubmitSuccessResponse
	decodeBody(t, resp, &result)
	assert.Equal(t, models.StatusHadir, result.Record.Officers[0].Status)
	assert.Equal(t, models.StatusAlpa, result.Record.Officers[1].Status)
}

func TestSubmitCoercesCollection(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(jsonRequest(t, fiber.MethodPost, "/attendance", models.AttendanceSubmitPayload{
		Date:       "2024-01-01",
		Collection: "1a2b3",
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var result models.SubmitSuccessResponse
	decodeBody(t, resp, &result)
	assert.Equal(t, 123, result.Record.Collection)
}

func TestSubmitRejectsUnknownStatus(t *testing.T) {
	app, repo := newTestApp(t)

	resp, err := app.Test(jsonRequest(t, fiber.MethodPost, "/attendance", models.AttendanceSubmitPayload{
		Date:     "2024-01-01",
		Statuses: map[string]string{"A": "Telat"},
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 0, repo.Count())
}

func TestSubmitRejectsDayWithoutRoster(t *testing.T) {
	app, _ := newTestApp(t)

	// 2024-01-02 hari Selasa; jadwal test hanya mengisi Senin.
	resp, err := app.Test(jsonRequest(t, fiber.MethodPost, "/attendance", models.AttendanceSubmitPayload{
		Date: "2024-01-02",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRecapFilterAndOrder(t *testing.T) {
	app, repo := newTestApp(t)
	ctx := context.Background()

	seed := []models.AttendanceRecord{
		{ID: "1", Date: "2024-01-01", Day: "Senin malam Selasa"},
		{ID: "2", Date: "2024-01-08", Day: "Senin malam Selasa"},
		{ID: "3", Date: "2024-01-15", Day: "Senin malam Selasa"},
	}
	require.NoError(t, repo.ReplaceAll(ctx, seed))

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/attendance/recap", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var recap models.RecapResponse
	decodeBody(t, resp, &recap)
	require.Equal(t, 3, recap.Total)
	assert.Equal(t, "2024-01-15", recap.Records[0].Date)
	assert.Equal(t, "2024-01-01", recap.Records[2].Date)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/attendance/recap?date=2024-01-08", nil))
	require.NoError(t, err)
	decodeBody(t, resp, &recap)
	require.Equal(t, 1, recap.Total)
	assert.Equal(t, "2", recap.Records[0].ID)
}

func TestExportImportRoundTripOverHTTP(t *testing.T) {
	app, repo := newTestApp(t)
	ctx := context.Background()

	seed := []models.AttendanceRecord{
		{ID: "1", Date: "2024-01-01", Day: "Senin malam Selasa", Collection: 50000},
		{ID: "2", Date: "2024-01-08", Day: "Senin malam Selasa", Notes: "hujan deras"},
	}
	require.NoError(t, repo.ReplaceAll(ctx, seed))
	before := repo.FindAll("")

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/attendance/export", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "data_ronda.json")

	exported, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	req := httptest.NewRequest(fiber.MethodPost, "/attendance/import", bytes.NewReader(exported))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, before, repo.FindAll(""))
}

func TestImportRejectsMalformedDocument(t *testing.T) {
	app, repo := newTestApp(t)

	require.NoError(t, repo.ReplaceAll(context.Background(), []models.AttendanceRecord{
		{ID: "1", Date: "2024-01-01"},
	}))

	req := httptest.NewRequest(fiber.MethodPost, "/attendance/import", bytes.NewReader([]byte(`{"bukan":"daftar"}`)))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 1, repo.Count())
}

func TestGenerateQRCode(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/attendance/qrcode", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result models.QRCodeResponse
	decodeBody(t, resp, &result)
	assert.Contains(t, result.QRCodeImage, "data:image/png;base64,")
	assert.Contains(t, result.FormURL, "http://localhost:3000/absen?tanggal=")
}
