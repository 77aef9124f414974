package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jhoicas/Tienda-api/internal/application/auth"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/pkg/logger"
	"github.com/jhoicas/Tienda-api/pkg/token"
)

// Cookies de corta vida para el flujo OAuth.
const (
	stateCookieName    = "oauth_state"
	callbackCookieName = "oauth_callback"
)

// AuthHandler maneja login por credenciales, sign-in federado, lectura de
// sesión y logout.
type AuthHandler struct {
	uc        *auth.AuthUseCase
	federated *auth.FederatedSignIn
	sessions  *auth.SessionIssuer
	provider  auth.IdentityProvider
	log       *logger.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, federated *auth.FederatedSignIn, sessions *auth.SessionIssuer, provider auth.IdentityProvider, log *logger.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, federated: federated, sessions: sessions, provider: provider, log: log}
}

// Login godoc
// @Summary      Iniciar sesión con email y password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	identity, err := h.uc.Login(in.Email, in.Password)
	if err != nil {
		// Un solo mensaje opaco para credenciales faltantes, email desconocido,
		// password incorrecto o fallo de verificación: nada de detalle cruza
		// el borde hacia el formulario de login.
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	}

	artifact, err := h.sessions.Issue(*identity)
	if err != nil {
		h.log.Error().Err(err).Msg("login: emisión de sesión")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo iniciar sesión"})
	}
	setSessionCookie(c, artifact, time.Now().Add(token.SessionTTL))

	return c.JSON(dto.LoginResponse{User: toUserResponse(*identity)})
}

// Session godoc
// @Summary      Leer/renovar la sesión y obtener el service token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	raw := c.Cookies(SessionCookieName)
	if raw == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sin sesión"})
	}
	refreshed, claims, err := h.sessions.Refresh(raw)
	if err != nil {
		clearSessionCookie(c)
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión inválida o expirada"})
	}
	// La cookie renovada conserva la expiración original (sin ventana deslizante).
	setSessionCookie(c, refreshed, claims.ExpiresAt.Time)

	sub := claims.Subject()
	return c.JSON(dto.SessionResponse{
		Token: claims.ServiceToken,
		User:  toUserResponse(entity.Identity{ID: sub.ID, Name: sub.Name, Email: sub.Email, Role: sub.Role}),
	})
}

// GoogleLogin godoc
// @Summary      Iniciar el flujo de sign-in con Google
// @Tags         auth
// @Param        callbackUrl  query  string  false  "URL a la que volver tras autenticarse"
// @Success      302
// @Router       /api/auth/google [get]
func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	state := uuid.New().String()
	c.Cookie(&fiber.Cookie{
		Name: stateCookieName, Value: state,
		Expires: time.Now().Add(10 * time.Minute), HTTPOnly: true, SameSite: "Lax", Path: "/",
	})
	if cb := c.Query("callbackUrl"); cb != "" {
		c.Cookie(&fiber.Cookie{
			Name: callbackCookieName, Value: cb,
			Expires: time.Now().Add(10 * time.Minute), HTTPOnly: true, SameSite: "Lax", Path: "/",
		})
	}
	return c.Redirect(h.provider.AuthURL(state), fiber.StatusFound)
}

// GoogleCallback godoc
// @Summary      Callback del authorization code de Google
// @Tags         auth
// @Success      302
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *fiber.Ctx) error {
	state := c.Query("state")
	if state == "" || state != c.Cookies(stateCookieName) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: "state inválido"})
	}
	code := c.Query("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_CODE", Message: "code requerido"})
	}

	profile, err := h.provider.Exchange(c.Context(), code)
	if err != nil {
		h.log.Error().Err(err).Msg("sign-in federado: intercambio de code")
		return c.Redirect("/login?error=oauth", fiber.StatusFound)
	}

	identity := h.federated.SignIn(*profile)
	artifact, err := h.sessions.Issue(identity)
	if err != nil {
		h.log.Error().Err(err).Msg("sign-in federado: emisión de sesión")
		return c.Redirect("/login?error=oauth", fiber.StatusFound)
	}
	setSessionCookie(c, artifact, time.Now().Add(token.SessionTTL))

	target := c.Cookies(callbackCookieName)
	if target == "" {
		target = "/"
	}
	expireCookie(c, stateCookieName)
	expireCookie(c, callbackCookieName)
	return c.Redirect(target, fiber.StatusFound)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Success      204
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	clearSessionCookie(c)
	return c.SendStatus(fiber.StatusNoContent)
}

func setSessionCookie(c *fiber.Ctx, value string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Expires:  expires,
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
}

func clearSessionCookie(c *fiber.Ctx) {
	expireCookie(c, SessionCookieName)
}

func expireCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
}

func toUserResponse(id entity.Identity) dto.UserResponse {
	return dto.UserResponse{ID: id.ID, Name: id.Name, Email: id.Email, Role: id.Role}
}
