package postgres

import (
	"context"
	"fmt"
)

var createStatements = []string{
	`CREATE TABLE IF NOT EXISTS "user" (
		id SERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		email VARCHAR(120) NOT NULL UNIQUE,
		password VARCHAR(200) NOT NULL,
		type VARCHAR(20) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS dog (
		id SERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		breed VARCHAR(100) NOT NULL,
		age INTEGER NOT NULL,
		color VARCHAR(100) NOT NULL,
		height NUMERIC(7,2) NOT NULL,
		weight NUMERIC(7,2) NOT NULL,
		gender VARCHAR(10),
		vaccines VARCHAR(500),
		diseases VARCHAR(500),
		medical_history VARCHAR(1000),
		personality VARCHAR(500),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

var dropStatements = []string{
	`DROP TABLE IF EXISTS dog`,
	`DROP TABLE IF EXISTS "user"`,
}

// Columnas añadidas en revisiones posteriores del esquema.
var migrateStatements = []string{
	`ALTER TABLE "user" ADD COLUMN IF NOT EXISTS updated_at TIMESTAMPTZ`,
	`UPDATE "user" SET updated_at = NOW() WHERE updated_at IS NULL`,
	`ALTER TABLE dog ADD COLUMN IF NOT EXISTS updated_at TIMESTAMPTZ`,
	`UPDATE dog SET updated_at = NOW() WHERE updated_at IS NULL`,
	`ALTER TABLE dog ADD COLUMN IF NOT EXISTS gender VARCHAR(10)`,
}

// EnsureSchema crea las tablas que falten.
func (s *Store) EnsureSchema(ctx context.Context) error {
	return s.execAll(ctx, "ensure schema", createStatements)
}

// ResetSchema elimina y recrea ambas tablas en una sola transacción.
func (s *Store) ResetSchema(ctx context.Context) error {
	stmts := append(append([]string{}, dropStatements...), createStatements...)
	return s.execAll(ctx, "reset schema", stmts)
}

// MigrateColumns añade updated_at y gender a tablas creadas por versiones anteriores.
func (s *Store) MigrateColumns(ctx context.Context) error {
	return s.execAll(ctx, "migrate columns", migrateStatements)
}

func (s *Store) execAll(ctx context.Context, op string, stmts []string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: begin: %w", op, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()
	for _, stmt := range stmts {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}
	return nil
}
