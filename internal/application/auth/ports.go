package auth

import "context"

// Profile resultado normalizado del proveedor de identidad externo.
type Profile struct {
	ProviderID string
	Email      string
	FullName   string
}

// IdentityProvider puerto del proveedor OAuth (lo implementa infrastructure/oauth).
type IdentityProvider interface {
	// AuthURL construye la URL de autorización con el state CSRF dado.
	AuthURL(state string) string
	// Exchange intercambia el authorization code por el perfil del usuario.
	Exchange(ctx context.Context, code string) (*Profile, error)
}
