package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Tienda-api/internal/application/auth"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Tienda-api/internal/interfaces/http"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes: almacén de usuarios en memoria y proveedor OAuth
// ──────────────────────────────────────────────────────────────────────────────

type memUserRepo struct {
	users  map[string]*entity.User
	nextID int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*entity.User{}, nextID: 1}
}

func (m *memUserRepo) FindByEmail(email string) (*entity.User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, nil
	}
	copia := *u
	return &copia, nil
}

func (m *memUserRepo) FindByID(id int64) (*entity.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			copia := *u
			return &copia, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) Create(user *entity.User) error {
	user.ID = m.nextID
	m.nextID++
	copia := *user
	m.users[user.Email] = &copia
	return nil
}

func (m *memUserRepo) seed(t *testing.T, email, password, role string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, m.Create(&entity.User{
		Email: email, Name: "Ana", PasswordHash: string(hash), Role: role, Provider: entity.ProviderCredentials,
	}))
}

type stubProvider struct{ profile auth.Profile }

func (s *stubProvider) AuthURL(state string) string {
	return "https://accounts.example.com/auth?state=" + state
}

func (s *stubProvider) Exchange(_ context.Context, _ string) (*auth.Profile, error) {
	p := s.profile
	return &p, nil
}

func buildAuthApp(repo *memUserRepo, provider auth.IdentityProvider) *fiber.App {
	log := logger.Nop()
	cfg := auth.TokenConfig{
		SessionSecret: testSessionSecret,
		ServiceSecret: "service-secret-para-tests-del-guard",
		Issuer:        testIssuer,
	}
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:        auth.NewAuthUseCase(repo, log),
		Federated:     auth.NewFederatedSignIn(repo, log),
		Sessions:      auth.NewSessionIssuer(repo, cfg, log),
		Provider:      provider,
		CatalogUC:     usecase.NewCatalogUseCase(nil, nil),
		OrderUC:       usecase.NewOrderUseCase(nil, nil),
		SessionSecret: cfg.SessionSecret,
		Rules:         auth.DefaultRules(),
		Log:           log,
	})
	return app
}

func login(t *testing.T, app *fiber.App, email, password string) *http.Response {
	t.Helper()
	body := strings.NewReader(`{"email":"` + email + `","password":"` + password + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func sessionCookieFrom(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == apphttp.SessionCookieName {
			return c
		}
	}
	t.Fatal("no se encontró la cookie de sesión en la respuesta")
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests del flujo login → session → logout
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesCorrectas_EmiteCookieDeSesion(t *testing.T) {
	repo := newMemUserRepo()
	repo.seed(t, "ana@example.com", "secreta123", "cliente")
	app := buildAuthApp(repo, &stubProvider{})

	resp := login(t, app, "ana@example.com", "secreta123")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	cookie := sessionCookieFrom(t, resp)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly, "el artefacto de sesión viaja en cookie httponly")

	var out struct {
		User struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "cliente", out.User.Role)
}

// Password incorrecto, email desconocido y credenciales faltantes responden
// el MISMO 401 genérico: el formulario de login no puede enumerar cuentas.
func TestLogin_FallosOpacosIdenticos(t *testing.T) {
	repo := newMemUserRepo()
	repo.seed(t, "ana@example.com", "secreta123", "cliente")
	app := buildAuthApp(repo, &stubProvider{})

	for _, caso := range []struct{ email, password string }{
		{"ana@example.com", "incorrecta"},
		{"nadie@example.com", "loquesea"},
		{"", ""},
	} {
		resp := login(t, app, caso.email, caso.password)
		var out struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "credenciales inválidas", out.Message)
	}
}

// La lectura de sesión devuelve el service token y la identidad RE-DERIVADA
// del almacén: un cambio de rol posterior al login aparece en el siguiente GET.
func TestSession_DevuelveTokenYRolVigente(t *testing.T) {
	repo := newMemUserRepo()
	repo.seed(t, "ana@example.com", "secreta123", "cliente")
	app := buildAuthApp(repo, &stubProvider{})

	resp := login(t, app, "ana@example.com", "secreta123")
	cookie := sessionCookieFrom(t, resp)
	resp.Body.Close()

	// Ascenso después del login.
	repo.users["ana@example.com"].Role = "vendedor"

	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	req.AddCookie(cookie)
	resp2, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp2.Body.Close()

	require.Equal(t, http.StatusOK, resp2.StatusCode)
	var out struct {
		Token string `json:"token"`
		User  struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&out))
	assert.NotEmpty(t, out.Token, "debe devolver el service token embebido")
	assert.Equal(t, "vendedor", out.User.Role, "el rol debe re-derivarse del almacén en cada lectura")
}

func TestSession_SinCookie_Retorna401(t *testing.T) {
	app := buildAuthApp(newMemUserRepo(), &stubProvider{})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogout_ExpiraLaCookieSinRedirect(t *testing.T) {
	repo := newMemUserRepo()
	repo.seed(t, "ana@example.com", "secreta123", "cliente")
	app := buildAuthApp(repo, &stubProvider{})

	resp := login(t, app, "ana@example.com", "secreta123")
	cookie := sessionCookieFrom(t, resp)
	resp.Body.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(cookie)
	resp2, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp2.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp2.StatusCode, "logout no fuerza redirect de página")
	cleared := sessionCookieFrom(t, resp2)
	assert.Empty(t, cleared.Value, "la cookie de sesión debe quedar vacía")
}

// El callback de Google con un email nuevo crea la cuenta cliente y deja una
// sesión iniciada; el state inválido se rechaza.
func TestGoogleCallback_FlujoCompleto(t *testing.T) {
	repo := newMemUserRepo()
	provider := &stubProvider{profile: auth.Profile{
		ProviderID: "g-1", Email: "nuevo@example.com", FullName: "Nuevo Usuario",
	}}
	app := buildAuthApp(repo, provider)

	// Inicio del flujo: obtiene el state en cookie.
	req := httptest.NewRequest(http.MethodGet, "/api/auth/google", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)

	var stateCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "oauth_state" {
			stateCookie = c
		}
	}
	require.NotNil(t, stateCookie)

	// Callback con el state correcto.
	req = httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?state="+stateCookie.Value+"&code=abc", nil)
	req.AddCookie(stateCookie)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.NotEmpty(t, sessionCookieFrom(t, resp).Value, "el callback debe dejar sesión iniciada")

	created, err := repo.FindByEmail("nuevo@example.com")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, entity.RoleCliente, created.Role)

	// State que no coincide con la cookie → rechazado.
	req = httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?state=otro&code=abc", nil)
	req.AddCookie(stateCookie)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
