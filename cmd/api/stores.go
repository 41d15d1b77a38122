package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/adoptease-api/internal/domain/repository"
	"github.com/jhoicas/adoptease-api/internal/infrastructure/storage"
	"github.com/jhoicas/adoptease-api/pkg/config"
	"github.com/jhoicas/adoptease-api/pkg/logger"
)

type openFunc func(ctx context.Context, rawURL string) (repository.Store, error)

// openStores conecta los almacenes y crea sus esquemas. La migración de columnas
// no se hace aquí: es responsabilidad de `dbsync migrate`.
// Un secundario inalcanzable solo desactiva la sincronización; uno alcanzable
// cuyo esquema no se puede crear es un error.
func openStores(ctx context.Context, db config.DBConfig, log *logger.Logger, open openFunc) (repository.Store, repository.Store, error) {
	primary, err := open(ctx, db.PrimaryURL)
	if err != nil {
		return nil, nil, fmt.Errorf("conexión al almacén primario %s: %w", storage.Redact(db.PrimaryURL), err)
	}
	if err := primary.EnsureSchema(ctx); err != nil {
		primary.Close()
		return nil, nil, fmt.Errorf("inicializar esquema del primario: %w", err)
	}
	if !db.HasSecondary() {
		return primary, nil, nil
	}

	secondary, err := open(ctx, db.SecondaryURL)
	if err != nil {
		log.Error().Err(err).Str("url", storage.Redact(db.SecondaryURL)).Msg("conexión al almacén secundario; sincronización desactivada")
		return primary, nil, nil
	}
	if err := secondary.EnsureSchema(ctx); err != nil {
		secondary.Close()
		primary.Close()
		return nil, nil, fmt.Errorf("inicializar esquema del secundario: %w", err)
	}
	return primary, secondary, nil
}
