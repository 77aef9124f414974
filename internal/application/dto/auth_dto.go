package dto

// LoginRequest entrada para login por credenciales.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse identidad del usuario autenticado (sin password).
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginResponse salida del login: la sesión viaja en cookie httponly, aquí
// solo se devuelve la identidad.
type LoginResponse struct {
	User UserResponse `json:"user"`
}

// SessionResponse salida del endpoint de lectura de sesión: el service token
// para la API backend más la identidad vigente (re-derivada del almacén).
type SessionResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
