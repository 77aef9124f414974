package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jhoicas/Tienda-api/internal/application/auth"
	"github.com/jhoicas/Tienda-api/pkg/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const userInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

var _ auth.IdentityProvider = (*GoogleProvider)(nil)

// GoogleProvider adaptador OAuth de Google (authorization code flow).
// Pide los scopes de perfil y email para poder normalizar el resultado a la
// misma forma de usuario que el login por credenciales.
type GoogleProvider struct {
	oauth *oauth2.Config
}

// NewGoogleProvider construye el adaptador desde la configuración.
func NewGoogleProvider(cfg config.OAuthConfig) *GoogleProvider {
	return &GoogleProvider{
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
	}
}

// AuthURL construye la URL de autorización con el state CSRF dado.
func (p *GoogleProvider) AuthURL(state string) string {
	return p.oauth.AuthCodeURL(state)
}

// Exchange intercambia el authorization code por tokens y consulta el endpoint
// de userinfo para obtener {id, email, name}.
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (*auth.Profile, error) {
	tok, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("google: intercambio de code: %w", err)
	}

	client := p.oauth.Client(ctx, tok)
	resp, err := client.Get(userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("google: consulta de userinfo: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google: userinfo respondió %d", resp.StatusCode)
	}

	var info struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("google: decodificar userinfo: %w", err)
	}
	if info.Email == "" {
		return nil, fmt.Errorf("google: userinfo sin email")
	}

	return &auth.Profile{ProviderID: info.ID, Email: info.Email, FullName: info.Name}, nil
}
