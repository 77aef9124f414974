package auth

import (
	"errors"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// AuthUseCase verificador de credenciales: valida email+password contra el
// hash almacenado y devuelve la identidad normalizada.
type AuthUseCase struct {
	users repository.UserRepository
	log   *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{users: users, log: log}
}

// Login verifica email/password y devuelve la identidad {id, name, email, role}.
//
// Taxonomía de fallos (todos se presentan al usuario con el mismo mensaje,
// para no filtrar si el email existe o no):
//   - ErrMissingCredentials: falta email o password.
//   - ErrInvalidCredentials: email desconocido, cuenta sin password (solo
//     federada) o hash que no coincide.
//   - ErrVerification: fallo del subsistema bcrypt distinto de un mismatch;
//     se registra con detalle.
func (uc *AuthUseCase) Login(email, password string) (*entity.Identity, error) {
	if email == "" || password == "" {
		return nil, domain.ErrMissingCredentials
	}
	user, err := uc.users.FindByEmail(email)
	if err != nil {
		uc.log.Error().Err(err).Msg("login: lectura de usuario")
		return nil, domain.ErrVerification
	}
	if user == nil || user.PasswordHash == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, domain.ErrInvalidCredentials
		}
		// Hash corrupto o fallo de la librería: no es un password incorrecto.
		uc.log.Error().Err(err).Int64("user_id", user.ID).Msg("login: fallo de bcrypt")
		return nil, domain.ErrVerification
	}
	identity := user.Identity()
	return &identity, nil
}
