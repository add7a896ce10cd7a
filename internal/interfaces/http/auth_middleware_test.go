package http_test

import (
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jortega/ventas-api/internal/interfaces/http"
	"github.com/jortega/ventas-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-http-tests"

func accessToken(t *testing.T, expMinutes int) string {
	t.Helper()
	token, err := jwt.GenerateAccess(testSecret, jwt.Identity{
		UserID: "u1",
		Email:  "u1@x.com",
		Rol:    "usuario",
	}, "ventas-api-test", expMinutes)
	require.NoError(t, err)
	return token
}

// buildTestApp monta una ruta protegida y una opcional que devuelven la
// identidad que el middleware dejó en el contexto.
func buildTestApp() *fiber.App {
	app := fiber.New()

	whoami := func(c *fiber.Ctx) error {
		caller := apphttp.CallerFromCtx(c)
		return c.JSON(fiber.Map{
			"id":          caller.ID,
			"autenticado": caller.Autenticado,
		})
	}
	app.Get("/protegida", apphttp.AuthMiddleware(testSecret), whoami)
	app.Get("/opcional", apphttp.OptionalAuthMiddleware(testSecret), whoami)
	return app
}

func doRequest(t *testing.T, app *fiber.App, token string) (*nethttp.Response, map[string]any, string) {
	t.Helper()
	req := httptest.NewRequest(nethttp.MethodGet, "/protegida", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return decodeBody(t, resp)
}

func decodeBody(t *testing.T, resp *nethttp.Response) (*nethttp.Response, map[string]any, string) {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp, body, string(raw)
}

func TestAuthMiddleware_SinToken(t *testing.T) {
	app := buildTestApp()

	resp, body, _ := doRequest(t, app, "")
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "detail")
}

func TestAuthMiddleware_TokenInvalido(t *testing.T) {
	app := buildTestApp()

	resp, body, _ := doRequest(t, app, "no-es-un-jwt")
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "detail")
}

func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	app := buildTestApp()

	resp, _, _ := doRequest(t, app, accessToken(t, -1))
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenValido(t *testing.T) {
	app := buildTestApp()

	resp, body, _ := doRequest(t, app, accessToken(t, 60))
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "u1", body["id"])
	assert.Equal(t, true, body["autenticado"])
}

func TestOptionalAuthMiddleware_SinTokenPasaComoAnonimo(t *testing.T) {
	app := buildTestApp()

	req := httptest.NewRequest(nethttp.MethodGet, "/opcional", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	resp, body, _ := decodeBody(t, resp)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "", body["id"])
	assert.Equal(t, false, body["autenticado"])
}

func TestOptionalAuthMiddleware_TokenInvalidoNoSeDegrada(t *testing.T) {
	app := buildTestApp()

	req := httptest.NewRequest(nethttp.MethodGet, "/opcional", nil)
	req.Header.Set("Authorization", "Bearer no-es-un-jwt")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
}

func TestOptionalAuthMiddleware_TokenValidoCargaIdentidad(t *testing.T) {
	app := buildTestApp()

	req := httptest.NewRequest(nethttp.MethodGet, "/opcional", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken(t, 60))
	resp, err := app.Test(req)
	require.NoError(t, err)
	resp, body, _ := decodeBody(t, resp)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "u1", body["id"])
}

func TestAuthMiddleware_HeaderMalformado(t *testing.T) {
	app := buildTestApp()

	casos := []string{"Basic abc", "Bearer", "Bearer   "}
	for _, header := range casos {
		req := httptest.NewRequest(nethttp.MethodGet, "/protegida", nil)
		req.Header.Set("Authorization", header)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode, "header %q", header)
	}
}
