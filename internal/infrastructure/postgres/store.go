package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/adoptease-api/internal/domain/repository"
)

var _ repository.Store = (*Store)(nil)

// Store agrupa el pool y los repositorios de un almacén PostgreSQL.
type Store struct {
	pool  *pgxpool.Pool
	users *UserRepo
	dogs  *DogRepo
}

// Open conecta a PostgreSQL y construye el Store.
func Open(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := NewPool(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	return NewStore(pool), nil
}

// NewStore envuelve un pool existente.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		pool:  pool,
		users: NewUserRepository(pool),
		dogs:  NewDogRepository(pool),
	}
}

func (s *Store) Dialect() string                  { return "postgres" }
func (s *Store) Users() repository.UserRepository { return s.users }
func (s *Store) Dogs() repository.DogRepository   { return s.dogs }
func (s *Store) Ping(ctx context.Context) error   { return s.pool.Ping(ctx) }
func (s *Store) Close()                           { s.pool.Close() }
