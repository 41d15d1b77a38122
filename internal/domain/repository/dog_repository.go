package repository

import (
	"context"

	"github.com/jhoicas/adoptease-api/internal/domain/entity"
)

// DogRepository define el puerto de persistencia para Dog (DIP).
type DogRepository interface {
	// Create persiste el perro; mismo contrato de ID que UserRepository.Create.
	Create(ctx context.Context, dog *entity.Dog) error
	GetByID(ctx context.Context, id int64) (*entity.Dog, error)
	Update(ctx context.Context, dog *entity.Dog) error
	List(ctx context.Context) ([]*entity.Dog, error)
	// Delete devuelve domain.ErrNotFound si no había fila con ese ID.
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}
