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

var _ repository.DogRepository = (*DogRepo)(nil)

const dogColumns = `id, name, breed, age, color, height, weight, COALESCE(gender, ''),
	COALESCE(vaccines, ''), COALESCE(diseases, ''), COALESCE(medical_history, ''), COALESCE(personality, ''),
	created_at, updated_at`

// DogRepo persiste perros en SQLite o MySQL.
type DogRepo struct {
	q querier
}

func newDogRepository(q querier) *DogRepo {
	return &DogRepo{q: q}
}

func (r *DogRepo) Create(ctx context.Context, dog *entity.Dog) error {
	args := []any{
		dog.Name, dog.Breed, dog.Age, dog.Color, dog.Height, dog.Weight, dog.Gender,
		dog.Vaccines, dog.Diseases, dog.MedicalHistory, dog.Personality, utc(dog.CreatedAt), utc(dog.UpdatedAt),
	}
	const cols = `name, breed, age, color, height, weight, gender,
		vaccines, diseases, medical_history, personality, created_at, updated_at`
	var (
		res sql.Result
		err error
	)
	if dog.ID == 0 {
		res, err = r.q.ExecContext(ctx,
			`INSERT INTO dog (`+cols+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...)
	} else {
		_, err = r.q.ExecContext(ctx,
			`INSERT INTO dog (`+cols+`, id) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, append(args, dog.ID)...)
	}
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert dog: %w", err)
	}
	if res != nil {
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert dog: last id: %w", err)
		}
		dog.ID = id
	}
	return nil
}

func (r *DogRepo) GetByID(ctx context.Context, id int64) (*entity.Dog, error) {
	d, err := scanDog(r.q.QueryRowContext(ctx, `SELECT `+dogColumns+` FROM dog WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get dog by id: %w", err)
	}
	return d, nil
}

func (r *DogRepo) Update(ctx context.Context, dog *entity.Dog) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE dog SET name = ?, breed = ?, age = ?, color = ?, height = ?, weight = ?, gender = ?,
			vaccines = ?, diseases = ?, medical_history = ?, personality = ?, created_at = ?, updated_at = ?
		WHERE id = ?`,
		dog.Name, dog.Breed, dog.Age, dog.Color, dog.Height, dog.Weight, dog.Gender,
		dog.Vaccines, dog.Diseases, dog.MedicalHistory, dog.Personality, utc(dog.CreatedAt), utc(dog.UpdatedAt),
		dog.ID)
	if err != nil {
		return fmt.Errorf("update dog: %w", err)
	}
	return requireAffected(res, "update dog")
}

func (r *DogRepo) List(ctx context.Context) ([]*entity.Dog, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+dogColumns+` FROM dog ORDER BY id`)
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

func (r *DogRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM dog WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete dog: %w", err)
	}
	return requireAffected(res, "delete dog")
}

func (r *DogRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM dog`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count dogs: %w", err)
	}
	return n, nil
}

func scanDog(row scanner) (*entity.Dog, error) {
	var (
		d                entity.Dog
		created, updated nullTime
	)
	err := row.Scan(
		&d.ID, &d.Name, &d.Breed, &d.Age, &d.Color, &d.Height, &d.Weight, &d.Gender,
		&d.Vaccines, &d.Diseases, &d.MedicalHistory, &d.Personality,
		&created, &updated,
	)
	if err != nil {
		return nil, err
	}
	d.CreatedAt = created.Time
	d.UpdatedAt = updated.orCreated(created.Time)
	return &d, nil
}
