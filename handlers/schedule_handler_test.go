package handlers_test

import (
	"context"
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

func newScheduleApp(t *testing.T) (*fiber.App, repository.ScheduleRepository) {
	t.Helper()

	store := storage.NewLocalStore(t.TempDir())
	repo := repository.NewScheduleRepository(store, storage.SchedulePath)
	require.NoError(t, repo.Load(context.Background()))

	handler := handlers.NewScheduleHandler(repo)

	app := fiber.New()
	app.Get("/schedule", handler.GetSchedule)
	app.Put("/schedule", handler.ReplaceSchedule)
	app.Post("/schedule/officers", handler.AddOfficer)
	app.Delete("/schedule/officers", handler.RemoveOfficer)
	app.Get("/schedule/upcoming", handler.GetUpcomingNights)

	return app, repo
}

func TestGetScheduleReturnsDefaults(t *testing.T) {
	app, _ := newScheduleApp(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/schedule", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result models.ScheduleResponse
	decodeBody(t, resp, &result)
	assert.Equal(t, models.DefaultDutySchedule(), result.Schedule)
}

func TestAddAndRemoveOfficerOverHTTP(t *testing.T) {
	app, repo := newScheduleApp(t)

	resp, err := app.Test(jsonRequest(t, fiber.MethodPost, "/schedule/officers", models.ScheduleOfficerPayload{
		Weekday: 1,
		Name:    "Pak Zaki",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, repo.Lookup(1), "Pak Zaki")

	resp, err = app.Test(jsonRequest(t, fiber.MethodDelete, "/schedule/officers", models.ScheduleOfficerPayload{
		Weekday: 1,
		Name:    "Pak Zaki",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotContains(t, repo.Lookup(1), "Pak Zaki")
}

func TestRemoveUnknownOfficerIsNotFound(t *testing.T) {
	app, _ := newScheduleApp(t)

	resp, err := app.Test(jsonRequest(t, fiber.MethodDelete, "/schedule/officers", models.ScheduleOfficerPayload{
		Weekday: 1,
		Name:    "Pak Tidak Ada",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestReplaceScheduleOverHTTP(t *testing.T) {
	app, repo := newScheduleApp(t)

	resp, err := app.Test(jsonRequest(t, fiber.MethodPut, "/schedule", models.ScheduleReplacePayload{
		Schedule: models.DutySchedule{2: {"X", "Y"}},
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, []string{"X", "Y"}, repo.Lookup(2))
	assert.Empty(t, repo.Lookup(1))
}

func TestUpcomingNights(t *testing.T) {
	app, _ := newScheduleApp(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/schedule/upcoming?weekday=1&count=3", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result models.UpcomingNightsResponse
	decodeBody(t, resp, &result)
	require.Len(t, result.Nights, 3)
	for _, night := range result.Nights {
		assert.Equal(t, "Senin malam Selasa", night.Day)
		assert.Equal(t, models.DefaultDutySchedule()[1], night.Officers)
	}
}

func TestUpcomingNightsValidatesParams(t *testing.T) {
	app, _ := newScheduleApp(t)

	for _, target := range []string{
		"/schedule/upcoming",
		"/schedule/upcoming?weekday=9",
		"/schedule/upcoming?weekday=1&count=0",
	} {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, target, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "target %s", target)
	}
}
