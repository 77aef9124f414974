package http

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Tienda-api/internal/application/auth"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/pkg/token"
)

// SessionCookieName cookie httponly que transporta el artefacto de sesión.
const SessionCookieName = "session_token"

// Locals keys para la identidad del usuario en Fiber.
const (
	LocalUserID    = "user_id"
	LocalUserEmail = "user_email"
	LocalUserName  = "user_name"
	LocalUserRole  = "user_role"
)

// Guard intercepta todo request cuyo path coincida con la tabla de reglas y
// valida sesión + rol ANTES de servir contenido protegido.
//
// Comportamiento:
//   - Path sin regla: pasa libre (allow-list sobre prefijos, no default-deny).
//   - Sin sesión válida: redirect a /login?callbackUrl=<URL original> para
//     volver ahí tras autenticarse. Bajo /api/ responde 401 JSON.
//   - Sesión válida pero rol no permitido: redirect a /unauthorized (el
//     usuario ES conocido, solo le faltan privilegios). Bajo /api/: 403 JSON.
//
// La validación es local (firma del token), sin viajes de red.
func Guard(sessionSecret string, rules []auth.Rule) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rule, matched := auth.Match(rules, c.Path())
		if !matched {
			return c.Next()
		}

		raw := c.Cookies(SessionCookieName)
		if raw == "" {
			return denyUnauthenticated(c)
		}
		claims, err := token.ParseSession(sessionSecret, raw)
		if err != nil {
			return denyUnauthenticated(c)
		}
		if !rule.Allows(claims.Role) {
			return denyForbidden(c)
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalUserEmail, claims.Email)
		c.Locals(LocalUserName, claims.Name)
		c.Locals(LocalUserRole, claims.Role)
		return c.Next()
	}
}

func denyUnauthenticated(c *fiber.Ctx) error {
	if isAPIPath(c.Path()) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión requerida"})
	}
	return c.Redirect("/login?callbackUrl="+url.QueryEscape(c.OriginalURL()), fiber.StatusFound)
}

func denyForbidden(c *fiber.Ctx) error {
	if isAPIPath(c.Path()) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin acceso a esta ruta"})
	}
	return c.Redirect("/unauthorized", fiber.StatusFound)
}

func isAPIPath(path string) bool {
	return strings.HasPrefix(path, "/api/")
}

// GetUserID devuelve el ID de usuario del contexto (después del Guard).
func GetUserID(c *fiber.Ctx) int64 {
	v, _ := c.Locals(LocalUserID).(int64)
	return v
}

// GetUserEmail devuelve el email del contexto.
func GetUserEmail(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalUserEmail).(string)
	return v
}

// GetUserName devuelve el nombre del contexto.
func GetUserName(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalUserName).(string)
	return v
}

// GetRole devuelve el rol del contexto.
func GetRole(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalUserRole).(string)
	return v
}
