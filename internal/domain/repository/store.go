package repository

import "context"

// TxFunc recibe repositorios atados a una transacción abierta.
type TxFunc func(users UserRepository, dogs DogRepository) error

// Store es un almacén relacional completo (primario o secundario) con las tablas user y dog.
type Store interface {
	// Dialect devuelve "postgres", "sqlite" o "mysql".
	Dialect() string
	Users() UserRepository
	Dogs() DogRepository
	// EnsureSchema crea las tablas que falten; no altera las existentes.
	EnsureSchema(ctx context.Context) error
	// ResetSchema elimina y vuelve a crear ambas tablas.
	ResetSchema(ctx context.Context) error
	// MigrateColumns añade columnas introducidas después de crear las tablas (updated_at, gender).
	MigrateColumns(ctx context.Context) error
	// RunInTx ejecuta fn en una transacción: Commit si devuelve nil, Rollback en otro caso.
	RunInTx(ctx context.Context, fn TxFunc) error
	Ping(ctx context.Context) error
	Close()
}
