package utils_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/keralatechreach/portal-api/internal/utils"
)

func runEnvelope(t *testing.T, h fiber.Handler) (int, map[string]interface{}) {
	t.Helper()

	app := fiber.New()
	app.Get("/", h)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestSendSuccessEnvelope(t *testing.T) {
	status, body := runEnvelope(t, func(c *fiber.Ctx) error {
		return utils.SendSuccess(c, "fetched", fiber.Map{"id": 7})
	})

	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, body["success"])
	require.Equal(t, "fetched", body["message"])
	require.Equal(t, float64(7), body["data"].(map[string]interface{})["id"])
	require.NotContains(t, body, "meta")
}

func TestSendSuccessWithStatusDefaultsMessage(t *testing.T) {
	status, body := runEnvelope(t, func(c *fiber.Ctx) error {
		return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "", fiber.Map{"id": 1})
	})

	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, "success", body["message"])
}

func TestSendListCarriesMeta(t *testing.T) {
	status, body := runEnvelope(t, func(c *fiber.Ctx) error {
		return utils.SendList(c, "listed", []string{"a", "b"}, fiber.Map{
			"pagination": fiber.Map{"page": 1, "total_pages": 3},
		})
	})

	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, body["success"])
	require.Len(t, body["data"], 2)

	meta, ok := body["meta"].(map[string]interface{})
	require.True(t, ok)
	pagination := meta["pagination"].(map[string]interface{})
	require.Equal(t, float64(3), pagination["total_pages"])
}

func TestSendErrorEnvelope(t *testing.T) {
	status, body := runEnvelope(t, func(c *fiber.Ctx) error {
		return utils.SendError(c, fiber.StatusNotFound, "news not found")
	})

	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, false, body["success"])
	require.Equal(t, "news not found", body["message"])
	require.NotContains(t, body, "data")
}
