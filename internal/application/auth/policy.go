package auth

import (
	"strings"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// Rule regla de autorización: prefijo de ruta y roles permitidos.
type Rule struct {
	Prefix string
	Roles  []string
}

// Allows indica si el rol pertenece al conjunto permitido de la regla.
func (r Rule) Allows(role string) bool {
	return HasRole(role, r.Roles...)
}

// HasRole predicado de membresía de rol contra un conjunto requerido.
func HasRole(role string, required ...string) bool {
	for _, r := range required {
		if role == r {
			return true
		}
	}
	return false
}

// DefaultRules tabla de protección de rutas: fuente única de verdad para el
// guard del servidor y para el cliente (authclient). Lista ordenada: aplica
// solo la PRIMERA regla cuyo prefijo coincida; las rutas sin regla pasan
// libres (allow-list, no default-deny).
func DefaultRules() []Rule {
	return []Rule{
		{Prefix: "/panel/usuarios", Roles: []string{entity.RoleSuperadmin}},
		{Prefix: "/panel", Roles: []string{entity.RoleAdminTienda, entity.RoleVendedor, entity.RoleSuperadmin}},
		{Prefix: "/cuenta", Roles: []string{entity.RoleCliente, entity.RoleVendedor, entity.RoleAdminTienda, entity.RoleSuperadmin}},
		{Prefix: "/api/pedidos", Roles: []string{entity.RoleCliente, entity.RoleVendedor, entity.RoleAdminTienda, entity.RoleSuperadmin}},
	}
}

// Match devuelve la primera regla cuyo prefijo coincide con el path.
func Match(rules []Rule, path string) (Rule, bool) {
	for _, r := range rules {
		if strings.HasPrefix(path, r.Prefix) {
			return r, true
		}
	}
	return Rule{}, false
}
