package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/adoptease-api/internal/domain"
	"github.com/jhoicas/adoptease-api/internal/domain/entity"
	"github.com/jhoicas/adoptease-api/internal/domain/repository"
)

var _ repository.DogRepository = (*DogRepo)(nil)

// Las columnas de texto libre admiten NULL en tablas antiguas.
const dogColumns = `id, name, breed, age, color, height, weight, COALESCE(gender, ''),
	COALESCE(vaccines, ''), COALESCE(diseases, ''), COALESCE(medical_history, ''), COALESCE(personality, ''),
	created_at, COALESCE(updated_at, created_at)`

// DogRepo implementación del puerto DogRepository sobre PostgreSQL (usable con pool o tx).
type DogRepo struct {
	q Querier
}

// NewDogRepository construye el adaptador.
func NewDogRepository(q Querier) *DogRepo {
	return &DogRepo{q: q}
}

// Create persiste un perro. Con ID cero lo asigna la secuencia.
func (r *DogRepo) Create(ctx context.Context, dog *entity.Dog) error {
	args := []any{
		dog.Name, dog.Breed, dog.Age, dog.Color, dog.Height, dog.Weight, dog.Gender,
		dog.Vaccines, dog.Diseases, dog.MedicalHistory, dog.Personality, dog.CreatedAt, dog.UpdatedAt,
	}
	var err error
	if dog.ID == 0 {
		query := `
			INSERT INTO dog (name, breed, age, color, height, weight, gender,
				vaccines, diseases, medical_history, personality, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
		err = r.q.QueryRow(ctx, query, args...).Scan(&dog.ID)
	} else {
		query := `
			INSERT INTO dog (name, breed, age, color, height, weight, gender,
				vaccines, diseases, medical_history, personality, created_at, updated_at, id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
		_, err = r.q.Exec(ctx, query, append(args, dog.ID)...)
	}
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert dog: %w", err)
	}
	return nil
}

// GetByID obtiene un perro por ID.
func (r *DogRepo) GetByID(ctx context.Context, id int64) (*entity.Dog, error) {
	d, err := scanDog(r.q.QueryRow(ctx, `SELECT `+dogColumns+` FROM dog WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get dog by id: %w", err)
	}
	return d, nil
}

// Update sobrescribe todos los campos del perro.
func (r *DogRepo) Update(ctx context.Context, dog *entity.Dog) error {
	query := `
		UPDATE dog SET name = $2, breed = $3, age = $4, color = $5, height = $6, weight = $7, gender = $8,
			vaccines = $9, diseases = $10, medical_history = $11, personality = $12,
			created_at = $13, updated_at = $14
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		dog.ID, dog.Name, dog.Breed, dog.Age, dog.Color, dog.Height, dog.Weight, dog.Gender,
		dog.Vaccines, dog.Diseases, dog.MedicalHistory, dog.Personality, dog.CreatedAt, dog.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update dog: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve todos los perros ordenados por ID.
func (r *DogRepo) List(ctx context.Context) ([]*entity.Dog, error) {
	rows, err := r.q.Query(ctx, `SELECT `+dogColumns+` FROM dog ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list dogs: %w", err)
	}
	defer rows.Close()
	var list []*entity.Dog
	for rows.Next() {
		d, err := scanDog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan dog: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// Delete elimina un perro por ID.
func (r *DogRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM dog WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete dog: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Count cuenta los perros.
func (r *DogRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM dog`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count dogs: %w", err)
	}
	return n, nil
}

func scanDog(row pgxScanner) (*entity.Dog, error) {
	var d entity.Dog
	err := row.Scan(
		&d.ID, &d.Name, &d.Breed, &d.Age, &d.Color, &d.Height, &d.Weight, &d.Gender,
		&d.Vaccines, &d.Diseases, &d.MedicalHistory, &d.Personality,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
