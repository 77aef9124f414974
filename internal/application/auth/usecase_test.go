package auth

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// fakeUserRepo — almacén de usuarios en memoria para los tests del núcleo auth
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	mu          sync.Mutex
	users       map[string]*entity.User
	nextID      int64
	findErr     error
	createErr   error
	createCalls int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}, nextID: 1}
}

func (f *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	u, ok := f.users[email]
	if !ok {
		return nil, nil
	}
	copia := *u
	return &copia, nil
}

func (f *fakeUserRepo) FindByID(id int64) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			copia := *u
			return &copia, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Create(user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	if !entity.ValidRole(user.Role) {
		return domain.ErrInvalidRole
	}
	if _, ok := f.users[user.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	user.ID = f.nextID
	f.nextID++
	copia := *user
	f.users[user.Email] = &copia
	return nil
}

func (f *fakeUserRepo) add(t *testing.T, email, password, role string) *entity.User {
	t.Helper()
	hash := ""
	if password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		require.NoError(t, err)
		hash = string(h)
	}
	u := &entity.User{Email: email, Name: "Usuario", PasswordHash: hash, Role: role, Provider: entity.ProviderCredentials}
	require.NoError(t, f.Create(u))
	f.createCalls-- // el seed no cuenta como escritura del flujo bajo test
	return u
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests del verificador de credenciales
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesCorrectas_RetornaIdentidad(t *testing.T) {
	repo := newFakeUserRepo()
	seeded := repo.add(t, "ana@example.com", "secreta123", entity.RoleCliente)
	uc := NewAuthUseCase(repo, logger.Nop())

	identity, err := uc.Login("ana@example.com", "secreta123")
	require.NoError(t, err)

	assert.Equal(t, seeded.ID, identity.ID)
	assert.Equal(t, "ana@example.com", identity.Email)
	assert.Equal(t, entity.RoleCliente, identity.Role)
}

// Email desconocido y password incorrecto producen EXACTAMENTE el mismo error:
// nada permite enumerar cuentas desde afuera.
func TestLogin_FallosIndistinguibles(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(t, "ana@example.com", "secreta123", entity.RoleCliente)
	uc := NewAuthUseCase(repo, logger.Nop())

	_, errDesconocido := uc.Login("nadie@example.com", "loquesea")
	_, errPassword := uc.Login("ana@example.com", "incorrecta")

	assert.ErrorIs(t, errDesconocido, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errPassword, domain.ErrInvalidCredentials)
	assert.Equal(t, errDesconocido, errPassword)
}

func TestLogin_CredencialesFaltantes(t *testing.T) {
	uc := NewAuthUseCase(newFakeUserRepo(), logger.Nop())

	_, err := uc.Login("", "algo")
	assert.ErrorIs(t, err, domain.ErrMissingCredentials)

	_, err = uc.Login("ana@example.com", "")
	assert.ErrorIs(t, err, domain.ErrMissingCredentials)
}

// Una cuenta solo-federada (hash vacío) no tiene camino de login por password.
func TestLogin_CuentaSinPassword_RetornaInvalidCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(t, "federada@example.com", "", entity.RoleCliente)
	uc := NewAuthUseCase(repo, logger.Nop())

	_, err := uc.Login("federada@example.com", "cualquiera")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

// Un hash corrupto dispara un fallo de bcrypt distinto del mismatch: se
// clasifica como error de verificación, no como password incorrecto.
func TestLogin_HashCorrupto_RetornaVerificationError(t *testing.T) {
	repo := newFakeUserRepo()
	repo.users["rota@example.com"] = &entity.User{
		ID: 7, Email: "rota@example.com", PasswordHash: "no-es-un-hash-bcrypt", Role: entity.RoleCliente,
	}
	uc := NewAuthUseCase(repo, logger.Nop())

	_, err := uc.Login("rota@example.com", "secreta123")
	assert.ErrorIs(t, err, domain.ErrVerification)
}

func TestLogin_FalloDeLectura_RetornaVerificationError(t *testing.T) {
	repo := newFakeUserRepo()
	repo.findErr = errors.New("db caída")
	uc := NewAuthUseCase(repo, logger.Nop())

	_, err := uc.Login("ana@example.com", "secreta123")
	assert.ErrorIs(t, err, domain.ErrVerification)
}
