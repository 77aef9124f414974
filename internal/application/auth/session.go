package auth

import (
	"time"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/pkg/logger"
	"github.com/jhoicas/Tienda-api/pkg/token"
)

// TokenConfig secretos y emisor de los dos tipos de token.
// Secretos distintos por audiencia: el verificador del service token no puede
// falsificar artefactos de sesión ni al revés.
type TokenConfig struct {
	SessionSecret string
	ServiceSecret string
	Issuer        string
}

// SessionIssuer acuña y refresca el artefacto de sesión.
// En cada entrega re-deriva rol y nombre desde el almacén de usuarios: el
// artefacto nunca es la fuente autoritativa del rol vigente.
type SessionIssuer struct {
	users repository.UserRepository
	cfg   TokenConfig
	log   *logger.Logger
	now   func() time.Time
}

// NewSessionIssuer construye el emisor de sesiones.
func NewSessionIssuer(users repository.UserRepository, cfg TokenConfig, log *logger.Logger) *SessionIssuer {
	return &SessionIssuer{users: users, cfg: cfg, log: log, now: time.Now}
}

// Issue acuña un artefacto de sesión nuevo tras un evento de autenticación.
// La ventana de expiración queda anclada a este instante: 30 días, sin
// renovación deslizante en refrescos posteriores.
func (s *SessionIssuer) Issue(identity entity.Identity) (string, error) {
	now := s.now()
	sub := token.Subject{ID: identity.ID, Email: identity.Email, Name: identity.Name, Role: identity.Role}
	svc, err := token.GenerateService(s.cfg.ServiceSecret, s.cfg.Issuer, sub, now)
	if err != nil {
		return "", err
	}
	return token.GenerateSession(s.cfg.SessionSecret, s.cfg.Issuer, sub, svc, now, now.Add(token.SessionTTL))
}

// Refresh revalida el artefacto, re-lee el usuario por el email del token y
// re-firma con rol/nombre frescos y un service token nuevo (1h), preservando
// la ventana de expiración original.
//
// Si la lectura del almacén falla, el contenido previo del token se conserva
// tal cual (no se degrada ni destruye una sesión válida); el error solo se
// registra. Retorna el artefacto re-firmado y sus claims.
func (s *SessionIssuer) Refresh(sessionToken string) (string, *token.SessionClaims, error) {
	claims, err := token.ParseSession(s.cfg.SessionSecret, sessionToken)
	if err != nil {
		return "", nil, err
	}

	sub := claims.Subject()
	user, err := s.users.FindByEmail(sub.Email)
	switch {
	case err != nil:
		s.log.Error().Err(err).Str("email", sub.Email).Msg("refresh de sesión: lectura de usuario")
	case user == nil:
		// Registro desaparecido: conservar los claims previos en lugar de
		// cerrar una sesión que sigue siendo criptográficamente válida.
		s.log.Warn().Str("email", sub.Email).Msg("refresh de sesión: usuario no encontrado")
	default:
		sub = token.Subject{ID: user.ID, Email: user.Email, Name: user.Name, Role: user.Role}
	}

	svc, err := token.GenerateService(s.cfg.ServiceSecret, s.cfg.Issuer, sub, s.now())
	if err != nil {
		return "", nil, err
	}

	refreshed, err := token.GenerateSession(
		s.cfg.SessionSecret, s.cfg.Issuer, sub, svc,
		claims.IssuedAt.Time, claims.ExpiresAt.Time,
	)
	if err != nil {
		return "", nil, err
	}

	out, err := token.ParseSession(s.cfg.SessionSecret, refreshed)
	if err != nil {
		return "", nil, err
	}
	return refreshed, out, nil
}
