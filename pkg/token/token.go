package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Vida útil de cada tipo de token.
// La sesión expira a los 30 días de la EMISIÓN original: un refresh re-firma
// el artefacto pero no corre la ventana (no hay renovación deslizante).
// El service token expira a la hora y se re-acuña en cada refresh.
const (
	SessionTTL = 30 * 24 * time.Hour
	ServiceTTL = time.Hour
)

// Subject identidad mínima que viaja dentro de ambos tokens.
type Subject struct {
	ID    int64
	Email string
	Name  string
	Role  string
}

// SessionClaims claims del artefacto de sesión (cookie httponly).
// ServiceToken es un segundo JWT completo, firmado con OTRO secreto, destinado
// a la API backend que no conoce el formato interno de la sesión.
type SessionClaims struct {
	jwt.RegisteredClaims
	UserID       int64  `json:"user_id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	ServiceToken string `json:"service_token,omitempty"`
}

// Subject reconstruye la identidad embebida en los claims.
func (c *SessionClaims) Subject() Subject {
	return Subject{ID: c.UserID, Email: c.Email, Name: c.Name, Role: c.Role}
}

// ServiceClaims claims del service token ({id, email, role}).
type ServiceClaims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// GenerateSession firma el artefacto de sesión con la ventana [issuedAt, expiresAt].
// El refresh pasa la ventana original del token previo para mantener la expiración anclada.
func GenerateSession(secret, issuer string, sub Subject, serviceToken string, issuedAt, expiresAt time.Time) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("token: secret de sesión vacío")
	}
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   fmt.Sprintf("%d", sub.ID),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID:       sub.ID,
		Email:        sub.Email,
		Name:         sub.Name,
		Role:         sub.Role,
		ServiceToken: serviceToken,
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(secret))
}

// ParseSession valida el artefacto de sesión y devuelve sus claims.
// Retorna error si el token es inválido, expirado o con firma incorrecta.
func ParseSession(secret, tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if err := parse(secret, tokenString, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// GenerateService firma un service token de 1 hora para la API backend.
func GenerateService(secret, issuer string, sub Subject, now time.Time) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("token: secret de servicio vacío")
	}
	claims := ServiceClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   fmt.Sprintf("%d", sub.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ServiceTTL)),
		},
		UserID: sub.ID,
		Email:  sub.Email,
		Role:   sub.Role,
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(secret))
}

// ParseService valida el service token y devuelve sus claims.
func ParseService(secret, tokenString string) (*ServiceClaims, error) {
	claims := &ServiceClaims{}
	if err := parse(secret, tokenString, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func parse(secret, tokenString string, claims jwt.Claims) error {
	if secret == "" {
		return fmt.Errorf("token: secret vacío")
	}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return err
	}
	if !tok.Valid {
		return fmt.Errorf("claims inválidos")
	}
	return nil
}
