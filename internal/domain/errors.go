package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidRole        = errors.New("rol desconocido")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")

	// Errores del núcleo de autenticación. Hacia el usuario final todos los
	// fallos de login se presentan con el mismo mensaje opaco; la distinción
	// existe solo para logging y tests.
	ErrMissingCredentials = errors.New("email y password son requeridos")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrVerification       = errors.New("fallo al verificar credenciales")

	// Fallos best-effort: se registran pero nunca interrumpen el request en curso.
	ErrRecordFetch = errors.New("no se pudo leer el registro de usuario")
	ErrRecordWrite = errors.New("no se pudo persistir el registro de usuario")
)
