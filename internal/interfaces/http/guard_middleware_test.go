package http_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/application/auth"
	apphttp "github.com/jhoicas/Tienda-api/internal/interfaces/http"
	"github.com/jhoicas/Tienda-api/pkg/token"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testSessionSecret = "session-secret-para-tests-del-guard"
	testIssuer        = "tienda-api-test"
)

// buildTestApp construye una app Fiber mínima con el Guard y la tabla de
// reglas por defecto, más handlers dummy en las rutas que nos interesan.
func buildTestApp() *fiber.App {
	app := fiber.New()
	app.Use(apphttp.Guard(testSessionSecret, auth.DefaultRules()))

	app.Get("/panel/dashboard", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true, "role": apphttp.GetRole(c)})
	})
	app.Post("/api/pedidos", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true, "user_id": apphttp.GetUserID(c)})
	})
	app.Get("/api/productos", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	return app
}

// sessionCookieForRole genera un artefacto de sesión firmado con el rol dado.
func sessionCookieForRole(t *testing.T, role string) *http.Cookie {
	t.Helper()
	now := time.Now()
	sub := token.Subject{ID: 1, Email: "test@example.com", Name: "Test", Role: role}
	artifact, err := token.GenerateSession(testSessionSecret, testIssuer, sub, "svc", now, now.Add(token.SessionTTL))
	require.NoError(t, err)
	return &http.Cookie{Name: apphttp.SessionCookieName, Value: artifact}
}

func doRequest(t *testing.T, app *fiber.App, method, path string, cookie *http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests del Route Authorization Guard
// ──────────────────────────────────────────────────────────────────────────────

// Superadmin accede al panel: pasa el guard y llega al handler.
func TestGuard_SuperadminAccedeAlPanel(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, http.MethodGet, "/panel/dashboard", sessionCookieForRole(t, "superadmin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Cliente en el panel: usuario conocido pero sin privilegios → /unauthorized,
// NO /login (esa ruta es para desconocidos).
func TestGuard_ClienteEnElPanel_RedirigeAUnauthorized(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, http.MethodGet, "/panel/dashboard", sessionCookieForRole(t, "cliente"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/unauthorized", resp.Header.Get("Location"))
}

// Sin sesión en ruta protegida: redirect a /login con la URL original como
// callback para volver ahí después de autenticarse.
func TestGuard_SinSesion_RedirigeALoginConCallback(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, http.MethodGet, "/panel/dashboard", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)

	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/login", loc.Path)
	assert.Equal(t, "/panel/dashboard", loc.Query().Get("callbackUrl"))
}

// Token con firma inválida cuenta como no autenticado.
func TestGuard_TokenInvalido_RedirigeALogin(t *testing.T) {
	app := buildTestApp()
	cookie := &http.Cookie{Name: apphttp.SessionCookieName, Value: "token.invalido.aqui"}
	resp := doRequest(t, app, http.MethodGet, "/panel/dashboard", cookie)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
}

// Sesión expirada (emitida hace más de 30 días) cuenta como no autenticado,
// aunque la firma sea correcta.
func TestGuard_SesionExpirada_RedirigeALogin(t *testing.T) {
	app := buildTestApp()
	issuedAt := time.Now().Add(-token.SessionTTL - time.Second)
	sub := token.Subject{ID: 1, Email: "test@example.com", Role: "superadmin"}
	artifact, err := token.GenerateSession(testSessionSecret, testIssuer, sub, "", issuedAt, issuedAt.Add(token.SessionTTL))
	require.NoError(t, err)

	resp := doRequest(t, app, http.MethodGet, "/panel/dashboard", &http.Cookie{Name: apphttp.SessionCookieName, Value: artifact})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
}

// Bajo /api/ no hay redirects: 401 JSON sin sesión, 403 JSON con rol insuficiente.
func TestGuard_RutasAPI_RespondenJSON(t *testing.T) {
	app := buildTestApp()

	resp := doRequest(t, app, http.MethodPost, "/api/pedidos", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPost, "/api/pedidos", sessionCookieForRole(t, "cliente"))
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode, "cliente sí puede crear pedidos")
}

// Las rutas fuera de la tabla pasan sin sesión: el guard es una allow-list
// sobre prefijos, no un firewall default-deny.
func TestGuard_RutaSinRegla_PasaSinSesion(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, http.MethodGet, "/api/productos", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
