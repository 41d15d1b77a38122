package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/adoptease-api/internal/domain/repository"
)

// Tras insertar con ID explícito (sync) la secuencia SERIAL queda atrasada.
var sequenceResync = []string{
	`SELECT setval(pg_get_serial_sequence('"user"', 'id'), GREATEST((SELECT COALESCE(MAX(id), 0) FROM "user"), 1))`,
	`SELECT setval(pg_get_serial_sequence('dog', 'id'), GREATEST((SELECT COALESCE(MAX(id), 0) FROM dog), 1))`,
}

// RunInTx inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (s *Store) RunInTx(ctx context.Context, fn repository.TxFunc) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewUserRepository(tx), NewDogRepository(tx)); err != nil {
		return err
	}
	for _, stmt := range sequenceResync {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("resync sequence: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
