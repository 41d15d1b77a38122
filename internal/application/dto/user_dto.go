package dto

import "time"

// RegisterRequest entrada para registro público. Type solo admite customer o expert.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Type     string `json:"type" enums:"customer,expert"`
}

// RegisterResponse confirma el alta y devuelve el rol asignado.
type RegisterResponse struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// LoginRequest credenciales; RememberMe extiende el token a 30 días.
type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

// LoginResponse salida con el token JWT.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	Name    string `json:"name"`
	Type    string `json:"type"`
}

// TokenUser datos del usuario autenticado.
type TokenUser struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Type  string `json:"type"`
}

// VerifyTokenResponse resultado de /api/verify-token.
type VerifyTokenResponse struct {
	Valid bool      `json:"valid"`
	User  TokenUser `json:"user"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// UserListResponse listado de usuarios para el panel de administración.
type UserListResponse struct {
	Users []UserResponse `json:"users"`
}
