package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/adoptease-api/internal/domain"
	"github.com/jhoicas/adoptease-api/internal/domain/entity"
	"github.com/jhoicas/adoptease-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, name, email, password, type, created_at, updated_at`

// UserRepo persiste usuarios en SQLite o MySQL (usable con *sql.DB o *sql.Tx).
type UserRepo struct {
	q     querier
	table string
}

func newUserRepository(q querier, d dialect) *UserRepo {
	return &UserRepo{q: q, table: d.userTable}
}

// Create inserta el usuario. Con ID cero lo asigna la base de datos.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	var (
		res sql.Result
		err error
	)
	if user.ID == 0 {
		res, err = r.q.ExecContext(ctx,
			`INSERT INTO `+r.table+` (name, email, password, type, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
			user.Name, user.Email, user.PasswordHash, user.Role, utc(user.CreatedAt), utc(user.UpdatedAt))
	} else {
		_, err = r.q.ExecContext(ctx,
			`INSERT INTO `+r.table+` (id, name, email, password, type, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			user.ID, user.Name, user.Email, user.PasswordHash, user.Role, utc(user.CreatedAt), utc(user.UpdatedAt))
	}
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	if res != nil {
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert user: last id: %w", err)
		}
		user.ID = id
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM `+r.table+` WHERE id = ?`, id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM `+r.table+` WHERE email = ? LIMIT 1`, email)
}

func (r *UserRepo) GetByRoleAndEmail(ctx context.Context, role, email string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM `+r.table+` WHERE type = ? AND email = ? LIMIT 1`, role, email)
}

func (r *UserRepo) getOne(ctx context.Context, query string, args ...any) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// Update sobrescribe todos los campos del usuario.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE `+r.table+` SET name = ?, email = ?, password = ?, type = ?, created_at = ?, updated_at = ? WHERE id = ?`,
		user.Name, user.Email, user.PasswordHash, user.Role, utc(user.CreatedAt), utc(user.UpdatedAt), user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	return requireAffected(res, "update user")
}

func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+userColumns+` FROM `+r.table+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM `+r.table+` WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return requireAffected(res, "delete user")
}

func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+r.table).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func scanUser(row scanner) (*entity.User, error) {
	var (
		u                entity.User
		created, updated nullTime
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &created, &updated); err != nil {
		return nil, err
	}
	u.CreatedAt = created.Time
	u.UpdatedAt = updated.orCreated(created.Time)
	return &u, nil
}

// requireAffected traduce cero filas afectadas a domain.ErrNotFound.
func requireAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
