package auth

import (
	"strings"
	"time"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// FederatedSignIn puente con el proveedor de identidad: normaliza el perfil
// OAuth a la misma forma de identidad que el login por credenciales y crea el
// registro de usuario en el primer sign-in.
type FederatedSignIn struct {
	users repository.UserRepository
	log   *logger.Logger
}

// NewFederatedSignIn construye el puente federado.
func NewFederatedSignIn(users repository.UserRepository, log *logger.Logger) *FederatedSignIn {
	return &FederatedSignIn{users: users, log: log}
}

// SignIn resuelve el perfil del proveedor a una identidad local.
//
// Primer sign-in de un email desconocido: inserta un usuario con rol cliente
// (mínimo privilegio), hash de password vacío y provenance del proveedor.
// Email ya existente: no escribe nada; rol y provenance se preservan intactos.
// Las fallas de lectura/escritura se registran y el sign-in continúa: el
// usuario queda autenticado aunque su registro no se haya persistido.
func (f *FederatedSignIn) SignIn(profile Profile) entity.Identity {
	existing, err := f.users.FindByEmail(profile.Email)
	if err != nil {
		f.log.Error().Err(err).Str("email", profile.Email).Msg("sign-in federado: lectura de usuario")
	}
	if existing != nil {
		return existing.Identity()
	}

	name, surname := splitFullName(profile.FullName)
	now := time.Now()
	user := &entity.User{
		Email:     profile.Email,
		Name:      name,
		Surname:   surname,
		Role:      entity.RoleCliente,
		Provider:  entity.ProviderGoogle,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := f.users.Create(user); err != nil {
		// Best-effort: el insert fallido se registra con campos suficientes
		// para reconciliar después, pero nunca bloquea el login.
		f.log.Error().Err(err).
			Str("email", profile.Email).
			Str("provider", entity.ProviderGoogle).
			Msg("sign-in federado: no se pudo crear el usuario")
	}
	return user.Identity()
}

// splitFullName separa el nombre completo del proveedor: primer token = nombre,
// resto = apellido.
func splitFullName(full string) (name, surname string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
