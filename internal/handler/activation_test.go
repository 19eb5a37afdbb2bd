package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"elena-license-engine/internal/database"
	"elena-license-engine/internal/middleware"
	"elena-license-engine/internal/model"
	"elena-license-engine/internal/service"
	"elena-license-engine/internal/store"
	"elena-license-engine/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

const testMachineID = "ELENA-M1M1-M1M1"

// setupTestApp builds a Fiber app with the production route layout on
// top of an in-memory store and test database.
func setupTestApp(t *testing.T) (*fiber.App, *service.Engine, *service.Registry) {
	t.Helper()

	database.InitTestDB()
	t.Cleanup(database.CleanTestDB)
	util.InitJWT("test-secret")

	kv := store.NewMemoryKV()
	registry := service.NewRegistry(kv)
	e := service.NewEngine(kv, registry, testMachineID)
	Init(e)
	sheetSync = nil

	app := fiber.New()
	api := app.Group("/api/v1")

	activation := api.Group("/activation")
	activation.Post("/activate", HandleActivate)
	activation.Post("/lock", HandleLock)
	activation.Get("/status", HandleStatus)

	api.Put("/settings", HandleUpdateSettings)

	licenses := api.Group("/licenses")
	licenses.Use(middleware.Auth(), middleware.MasterOnly(e))
	licenses.Get("/", HandleGetAllLicenses)
	licenses.Post("/generate", HandleGenerateKey)
	licenses.Get("/statistics", HandleRegistryStatistics)
	licenses.Get("/logs", HandleActivationLogs)
	licenses.Get("/:key", HandleGetLicense)
	licenses.Delete("/:key", HandleRevokeLicense)

	return app, e, registry
}

func jsonRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var out map[string]any
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// activateMaster unlocks the app under the master key and returns the
// session token.
func activateMaster(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, err := app.Test(jsonRequest("POST", "/api/v1/activation/activate", model.ActivateInput{Key: model.MasterKeyDisplay}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	token, _ := body["token"].(string)
	assert.NotEmpty(t, token)
	return token
}

func TestHandleActivate(t *testing.T) {
	app, engine, _ := setupTestApp(t)

	tests := []struct {
		name       string
		key        string
		wantStatus int
	}{
		{"empty_key", "", fiber.StatusBadRequest},
		{"unknown_key", "ELENA-ZZZZ-ZZZZ", fiber.StatusNotFound},
		{"master_key", model.MasterKeyDisplay, fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(jsonRequest("POST", "/api/v1/activation/activate", model.ActivateInput{Key: tt.key}))
			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}

	assert.True(t, engine.Config().IsActive)
	assert.True(t, engine.IsMasterSession())
}

func TestHandleActivateMachineMismatch(t *testing.T) {
	app, engine, registry := setupTestApp(t)

	key, err := engine.GenerateKey("Brasserie du Littoral", 30)
	assert.NoError(t, err)

	// The key is already locked onto another machine
	assert.NoError(t, registry.Bind(key, "ELENA-M2M2-M2M2"))

	resp, err := app.Test(jsonRequest("POST", "/api/v1/activation/activate", model.ActivateInput{Key: key}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.False(t, engine.Config().IsActive)
}

func TestHandleLockAndReactivate(t *testing.T) {
	app, engine, _ := setupTestApp(t)
	activateMaster(t, app)

	resp, err := app.Test(jsonRequest("POST", "/api/v1/activation/lock", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, false, body["isActive"])
	assert.False(t, engine.Config().IsActive)

	// The binding survived, so the same key unlocks again
	activateMaster(t, app)
	assert.True(t, engine.Config().IsActive)
}

func TestHandleStatus(t *testing.T) {
	app, _, _ := setupTestApp(t)

	resp, err := app.Test(jsonRequest("GET", "/api/v1/activation/status", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, false, body["isActive"])
	assert.Equal(t, false, body["isMaster"])
	assert.Equal(t, testMachineID, body["machineId"])
	assert.Equal(t, "Mon Entrepôt", body["companyName"])
}

func TestHandleUpdateSettings(t *testing.T) {
	app, engine, _ := setupTestApp(t)

	resp, err := app.Test(jsonRequest("PUT", "/api/v1/settings", model.SettingsInput{
		CompanyName: "Entrepôt Littoral",
		Supervisor:  "Justin",
		IFU:         "3201900000001",
	}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	cfg := engine.Config()
	assert.Equal(t, "Entrepôt Littoral", cfg.CompanyName)
	assert.Equal(t, "Justin", cfg.Supervisor)
	assert.Equal(t, "3201900000001", cfg.IFU)
	// Activation state is not reachable from the settings endpoint
	assert.False(t, cfg.IsActive)
}
