// Package authclient expone el estado de autenticación a código de UI o a
// otros servicios: estado tri-valente, predicado de rol, login/logout y el
// accessor del service token con caché.
package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/Tienda-api/internal/application/auth"
)

// State estado de autenticación observado por el cliente.
type State int

const (
	StateLoading State = iota
	StateAuthenticated
	StateUnauthenticated
)

// Decision resultado de RequireRoles para una ruta protegida del lado cliente.
// Es defensa en profundidad y UX: la decisión autoritativa la toma el Guard
// del servidor antes de transmitir contenido.
type Decision int

const (
	DecisionPending Decision = iota
	DecisionAllow
	DecisionRedirectLogin
	DecisionRedirectUnauthorized
)

// ErrNoToken no se pudo obtener un service token (sin sesión o sesión expirada).
var ErrNoToken = errors.New("authclient: no hay service token disponible")

// minTokenLength chequeo grueso de vida del token cacheado: no es validación
// criptográfica, solo descarta valores vacíos o truncados.
const minTokenLength = 20

// Session identidad vigente según el endpoint de sesión.
type Session struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Client fachada de autenticación sobre la API de la tienda.
// La caché del token vive en el cliente (objeto explícito, no estado global):
// cada componente que la necesite recibe el mismo *Client inyectado.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu          sync.Mutex
	cachedToken string
	state       State
	user        *Session
}

// New construye la fachada contra la URL base de la API. El cookie jar
// transporta la cookie de sesión httponly entre llamadas.
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("authclient: crear cookie jar: %w", err)
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Jar: jar, Timeout: 15 * time.Second},
		state:      StateLoading,
	}, nil
}

// State devuelve el estado tri-valente actual.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CurrentUser devuelve la identidad vigente, o nil si no hay sesión resuelta.
func (c *Client) CurrentUser() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return nil
	}
	u := *c.user
	return &u
}

// HasRole indica si el usuario actual tiene alguno de los roles dados.
func (c *Client) HasRole(roles ...string) bool {
	u := c.CurrentUser()
	if u == nil {
		return false
	}
	return auth.HasRole(u.Role, roles...)
}

// RequireRoles decide el destino de una ruta protegida del lado cliente:
// Pending mientras el estado no se ha resuelto (el caller muestra un estado de
// carga, nada concluyente), redirect a login si no hay sesión, redirect a
// unauthorized si el rol no alcanza, Allow en caso contrario.
func (c *Client) RequireRoles(required ...string) Decision {
	c.mu.Lock()
	state, user := c.state, c.user
	c.mu.Unlock()

	switch state {
	case StateLoading:
		return DecisionPending
	case StateUnauthenticated:
		return DecisionRedirectLogin
	}
	if user == nil || !auth.HasRole(user.Role, required...) {
		return DecisionRedirectUnauthorized
	}
	return DecisionAllow
}

// Login autentica con email/password. Limpia primero cualquier service token
// cacheado: un login nuevo nunca debe reutilizar el token de la sesión previa.
func (c *Client) Login(ctx context.Context, email, password string) error {
	c.mu.Lock()
	c.cachedToken = ""
	c.mu.Unlock()

	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/login", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("authclient: login: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.setUnauthenticated()
		return fmt.Errorf("authclient: login rechazado (%d)", resp.StatusCode)
	}

	var out struct {
		User Session `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("authclient: decodificar login: %w", err)
	}

	c.mu.Lock()
	c.state = StateAuthenticated
	c.user = &out.User
	c.mu.Unlock()
	return nil
}

// GoogleLoginURL construye la URL que inicia el sign-in federado, con la URL
// de retorno como callback.
func (c *Client) GoogleLoginURL(callbackURL string) string {
	u := c.baseURL + "/api/auth/google"
	if callbackURL != "" {
		u += "?callbackUrl=" + url.QueryEscape(callbackURL)
	}
	return u
}

// Logout limpia la caché del service token y cierra la sesión en el servidor,
// sin forzar redirect de página. Tras Logout, ServiceToken jamás devuelve el
// valor cacheado previo.
func (c *Client) Logout(ctx context.Context) error {
	c.mu.Lock()
	c.cachedToken = ""
	c.state = StateUnauthenticated
	c.user = nil
	c.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/logout", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("authclient: logout: %w", err)
	}
	defer resp.Body.Close()
	return nil
}

// ServiceToken devuelve el token para la API backend. Si hay uno cacheado que
// pasa el chequeo básico de vida lo devuelve; si no, descarta la caché, lee la
// sesión del servidor, extrae el token embebido y lo cachea.
//
// Llamadas concurrentes pueden disparar lecturas de sesión redundantes (no hay
// single-flight); la última en terminar gana la caché.
func (c *Client) ServiceToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	if len(c.cachedToken) >= minTokenLength {
		tok := c.cachedToken
		c.mu.Unlock()
		return tok, nil
	}
	c.cachedToken = ""
	c.mu.Unlock()

	if err := c.Refresh(ctx); err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.cachedToken) < minTokenLength {
		return "", ErrNoToken
	}
	return c.cachedToken, nil
}

// Refresh lee el endpoint de sesión y actualiza estado, identidad y caché.
func (c *Client) Refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/auth/session", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("authclient: leer sesión: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.setUnauthenticated()
		return ErrNoToken
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("authclient: sesión respondió %d", resp.StatusCode)
	}

	var out struct {
		Token string  `json:"token"`
		User  Session `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("authclient: decodificar sesión: %w", err)
	}

	c.mu.Lock()
	c.state = StateAuthenticated
	c.user = &out.User
	c.cachedToken = out.Token
	c.mu.Unlock()
	return nil
}

func (c *Client) setUnauthenticated() {
	c.mu.Lock()
	c.state = StateUnauthenticated
	c.user = nil
	c.cachedToken = ""
	c.mu.Unlock()
}
