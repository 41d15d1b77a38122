package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
	RoleExpert   = "expert"
)

// IsValidRole indica si role es uno de los tres roles conocidos.
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleCustomer, RoleExpert:
		return true
	}
	return false
}

// User representa una cuenta del sistema. Email es la clave natural entre almacenes.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, opaco fuera del caso de uso de auth
	Role         string // admin, customer, expert
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CopyFrom copia todos los campos de src excepto el ID.
func (u *User) CopyFrom(src *User) {
	u.Name = src.Name
	u.Email = src.Email
	u.PasswordHash = src.PasswordHash
	u.Role = src.Role
	u.CreatedAt = src.CreatedAt
	u.UpdatedAt = src.UpdatedAt
}

// Clone devuelve una copia independiente, ID incluido.
func (u *User) Clone() *User {
	c := &User{ID: u.ID}
	c.CopyFrom(u)
	return c
}

// SameContent compara los campos de negocio ignorando ID y timestamps.
func (u *User) SameContent(o *User) bool {
	return u.Name == o.Name &&
		u.Email == o.Email &&
		u.PasswordHash == o.PasswordHash &&
		u.Role == o.Role
}
