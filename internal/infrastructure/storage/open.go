// Package storage elige el adaptador de persistencia según el esquema de la URL.
package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/adoptease-api/internal/domain/repository"
	"github.com/jhoicas/adoptease-api/internal/infrastructure/postgres"
	"github.com/jhoicas/adoptease-api/internal/infrastructure/sqlstore"
)

// Kind devuelve el dialecto que corresponde a la URL: postgres, mysql o sqlite.
func Kind(rawURL string) (string, error) {
	u := strings.TrimSpace(rawURL)
	lower := strings.ToLower(u)
	switch {
	case u == "":
		return "", fmt.Errorf("url de base de datos vacía")
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return "postgres", nil
	case strings.HasPrefix(lower, "mysql://"):
		return sqlstore.DialectMySQL, nil
	case strings.HasPrefix(lower, "sqlite:"), strings.HasPrefix(lower, "file:"),
		strings.HasSuffix(lower, ".db"), strings.HasSuffix(lower, ".sqlite"), strings.HasSuffix(lower, ".sqlite3"):
		return sqlstore.DialectSQLite, nil
	}
	return "", fmt.Errorf("esquema de base de datos no soportado: %q", Redact(u))
}

// Open conecta al almacén indicado por la URL.
func Open(ctx context.Context, rawURL string) (repository.Store, error) {
	kind, err := Kind(rawURL)
	if err != nil {
		return nil, err
	}
	rawURL = strings.TrimSpace(rawURL)
	// Cada rama devuelve nil explícito: un *Store nil dentro de la interfaz no es nil.
	switch kind {
	case "postgres":
		s, err := postgres.Open(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	case sqlstore.DialectMySQL:
		s, err := sqlstore.OpenMySQL(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		s, err := sqlstore.OpenSQLite(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

// Redact oculta las credenciales de una URL antes de registrarla.
func Redact(rawURL string) string {
	at := strings.LastIndex(rawURL, "@")
	scheme := strings.Index(rawURL, "://")
	if at < 0 || scheme < 0 || at < scheme {
		return rawURL
	}
	return rawURL[:scheme+3] + "***" + rawURL[at:]
}
