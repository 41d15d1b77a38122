package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// EnsureSchema crea las tablas que falten.
func (s *Store) EnsureSchema(ctx context.Context) error {
	return s.execAll(ctx, "ensure schema", s.dialect.create)
}

// ResetSchema elimina y recrea ambas tablas.
func (s *Store) ResetSchema(ctx context.Context) error {
	stmts := append(append([]string{}, s.dialect.drop...), s.dialect.create...)
	return s.execAll(ctx, "reset schema", stmts)
}

func (s *Store) execAll(ctx context.Context, op string, stmts []string) error {
	if !s.dialect.txDDL {
		for _, stmt := range stmts {
			if _, err := s.db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
		}
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin: %w", op, err)
	}
	defer func() { _ = tx.Rollback() }()
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}
	return nil
}

type columnMigration struct {
	table  string
	column string
	ddl    string
	stamp  bool
}

var migrations = []columnMigration{
	{table: "user", column: "updated_at", ddl: "DATETIME NULL", stamp: true},
	{table: "dog", column: "updated_at", ddl: "DATETIME NULL", stamp: true},
	{table: "dog", column: "gender", ddl: "VARCHAR(10) NULL"},
}

// MigrateColumns añade updated_at y gender a tablas de revisiones anteriores.
// MySQL usa ALTER TABLE; SQLite reconstruye la tabla copiando las filas.
func (s *Store) MigrateColumns(ctx context.Context) error {
	now := time.Now().UTC()
	if s.dialect.name == DialectSQLite {
		for _, table := range []string{"user", "dog"} {
			if err := s.rebuildSQLiteTable(ctx, table, now); err != nil {
				return err
			}
		}
		return nil
	}
	for _, m := range migrations {
		ok, err := s.dialect.columnExists(ctx, s.db, m.table, m.column)
		if err != nil {
			return err
		}
		if ok {
			continue
		}
		table := m.table
		if table == "user" {
			table = s.dialect.userTable
		}
		if _, err := s.db.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, m.column, m.ddl)); err != nil {
			return fmt.Errorf("add column %s.%s: %w", m.table, m.column, err)
		}
		if m.stamp {
			if _, err := s.db.ExecContext(ctx, fmt.Sprintf("UPDATE %s SET %s = ? WHERE %s IS NULL", table, m.column, m.column), now); err != nil {
				return fmt.Errorf("stamp %s.%s: %w", m.table, m.column, err)
			}
		}
	}
	return nil
}

// rebuildSQLiteTable crea la tabla con el esquema actual, copia las columnas comunes,
// sella updated_at y reemplaza la original. No hace nada si ya tiene todas las columnas.
func (s *Store) rebuildSQLiteTable(ctx context.Context, table string, now time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("migrate %s: begin: %w", table, err)
	}
	defer func() { _ = tx.Rollback() }()

	existing, err := sqliteColumns(ctx, tx, table)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		return nil
	}
	have := make(map[string]bool, len(existing))
	for _, c := range existing {
		have[c] = true
	}
	missing := false
	for _, m := range migrations {
		if m.table == table && !have[m.column] {
			missing = true
		}
	}
	if !missing {
		return nil
	}

	quoted := `"` + table + `"`
	tmp := table + "_new"
	create := sqliteDialect.create[0]
	if table == "dog" {
		create = sqliteDialect.create[1]
	}
	create = strings.Replace(create, "IF NOT EXISTS "+quoted, `"`+tmp+`"`, 1)
	create = strings.Replace(create, "IF NOT EXISTS "+table, `"`+tmp+`"`, 1)
	if _, err := tx.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("migrate %s: create: %w", table, err)
	}

	cols := strings.Join(existing, ", ")
	insert := fmt.Sprintf(`INSERT INTO "%s" (%s) SELECT %s FROM %s`, tmp, cols, cols, quoted)
	if _, err := tx.ExecContext(ctx, insert); err != nil {
		return fmt.Errorf("migrate %s: copy: %w", table, err)
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`UPDATE "%s" SET updated_at = ? WHERE updated_at IS NULL`, tmp), now); err != nil {
		return fmt.Errorf("migrate %s: stamp: %w", table, err)
	}
	if _, err := tx.ExecContext(ctx, `DROP TABLE `+quoted); err != nil {
		return fmt.Errorf("migrate %s: drop: %w", table, err)
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`ALTER TABLE "%s" RENAME TO %s`, tmp, quoted)); err != nil {
		return fmt.Errorf("migrate %s: rename: %w", table, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migrate %s: commit: %w", table, err)
	}
	return nil
}
