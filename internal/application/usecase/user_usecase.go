package usecase

import (
	"context"
	"errors"

	"github.com/jhoicas/adoptease-api/internal/application/dto"
	"github.com/jhoicas/adoptease-api/internal/domain"
	"github.com/jhoicas/adoptease-api/internal/domain/entity"
	"github.com/jhoicas/adoptease-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para la administración de usuarios.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// List devuelve todos los usuarios sin el hash de la contraseña.
func (uc *UserUseCase) List(ctx context.Context) (*dto.UserListResponse, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.UserListResponse{Users: make([]dto.UserResponse, 0, len(users))}
	for _, u := range users {
		out.Users = append(out.Users, entityToUserResponse(u))
	}
	return out, nil
}

// Delete elimina al usuario id. Un admin no puede borrarse a sí mismo.
func (uc *UserUseCase) Delete(ctx context.Context, actor *entity.User, id int64) error {
	if actor != nil && actor.ID == id {
		return domain.ErrSelfDelete
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}
	return nil
}

func entityToUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Type:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
