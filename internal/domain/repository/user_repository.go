package repository

import (
	"context"

	"github.com/jhoicas/adoptease-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los Get* devuelven (nil, nil) cuando el registro no existe.
type UserRepository interface {
	// Create persiste el usuario. Con ID cero la base asigna uno y se escribe en user.ID;
	// con ID distinto de cero se conserva (lo usa la sincronización).
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByRoleAndEmail(ctx context.Context, role, email string) (*entity.User, error)
	// Update sobrescribe todos los campos del usuario con ese ID.
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context) ([]*entity.User, error)
	// Delete devuelve domain.ErrNotFound si no había fila con ese ID.
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}
