package entity

import "time"

// Roles válidos para User. Conjunto cerrado: el repositorio rechaza
// cualquier string de rol fuera de esta enumeración.
const (
	RoleAdminTienda = "admin_tienda"
	RoleVendedor    = "vendedor"
	RoleCliente     = "cliente"
	RoleSuperadmin  = "superadmin"
)

// Proveedores de autenticación (procedencia de la cuenta).
const (
	ProviderCredentials = "credentials"
	ProviderGoogle      = "google"
)

// ValidRole indica si el string pertenece a la enumeración de roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdminTienda, RoleVendedor, RoleCliente, RoleSuperadmin:
		return true
	}
	return false
}

// User representa un usuario de la tienda.
// PasswordHash vacío significa cuenta solo-federada (Google): no tiene
// camino de login por password. Una cuenta creada con password debe tener
// hash bcrypt no vacío.
type User struct {
	ID           int64
	Email        string // único
	Name         string
	Surname      string
	PasswordHash string // bcrypt, nunca plano en dominio después de persistir
	Role         string // admin_tienda, vendedor, cliente, superadmin
	Provider     string // credentials, google
	Phone        string // opcional
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity es la forma normalizada del usuario autenticado que circula por
// el núcleo de auth (login por credenciales y federado producen la misma).
type Identity struct {
	ID    int64
	Name  string
	Email string
	Role  string
}

// Identity deriva la identidad normalizada del registro.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
