package http_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/cierre-fiscal/internal/interfaces/http"
	"github.com/jhoicas/cierre-fiscal/pkg/logger"
)

type stubChecker struct {
	active bool
	err    error
}

func (s stubChecker) HasActiveModule(context.Context, string, string) (bool, error) {
	return s.active, s.err
}

func moduleApp(checker stubChecker, log *logger.Logger) *fiber.App {
	app := fiber.New()
	app.Get("/fiscal",
		apphttp.AuthMiddleware(testTokens),
		apphttp.RequireModule("fiscal", checker, log),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)
	return app
}

func getFiscal(t *testing.T, app *fiber.App) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/fiscal", nil)
	req.Header.Set("Authorization", tokenForRole(t, "admin"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRequireModule_Activo(t *testing.T) {
	resp := getFiscal(t, moduleApp(stubChecker{active: true}, nil))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireModule_Inactivo_Retorna403(t *testing.T) {
	resp := getFiscal(t, moduleApp(stubChecker{active: false}, nil))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MODULE_DISABLED")
}

// El detalle del fallo queda en el log, no en la respuesta.
func TestRequireModule_FalloDelVerificador_Retorna503YRegistra(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWriter(&buf, "debug")

	resp := getFiscal(t, moduleApp(stubChecker{err: errors.New("conexión rechazada")}, log))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MODULE_CHECK_FAILED")
	assert.NotContains(t, string(body), "conexión rechazada")

	assert.Contains(t, buf.String(), "conexión rechazada")
	assert.Contains(t, buf.String(), testCompanyID)
	assert.Contains(t, buf.String(), `"module":"fiscal"`)
}
