package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/adoptease-api/internal/application/dto"
	"github.com/jhoicas/adoptease-api/internal/domain"
	"github.com/jhoicas/adoptease-api/internal/domain/entity"
	"github.com/jhoicas/adoptease-api/internal/domain/repository"
	"github.com/jhoicas/adoptease-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret string
	Issuer string
}

// AdminAccount cuenta de administración garantizada al arrancar.
type AdminAccount struct {
	Email    string
	Name     string
	Password string
}

// AuthUseCase casos de uso de autenticación: registro, login, verificación y admin de arranque.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	hashCost int
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, hashCost: bcrypt.DefaultCost, now: time.Now}
}

// WithHashCost cambia el coste de bcrypt (los tests usan bcrypt.MinCost).
func (uc *AuthUseCase) WithHashCost(cost int) *AuthUseCase {
	uc.hashCost = cost
	return uc
}

// WithClock fija el reloj usado para emitir y validar tokens.
func (uc *AuthUseCase) WithClock(now func() time.Time) *AuthUseCase {
	uc.now = now
	return uc
}

// Register crea un cliente o experto. El rol admin solo se crea en el arranque.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	in.Type = strings.TrimSpace(in.Type)

	verr := &domain.ValidationError{}
	if in.Email == "" {
		verr.Add("email", "email es obligatorio")
	} else if len(in.Email) > 120 || !strings.Contains(in.Email, "@") {
		verr.Add("email", "email inválido")
	}
	if in.Password == "" {
		verr.Add("password", "password es obligatorio")
	}
	if in.Name == "" {
		verr.Add("name", "name es obligatorio")
	} else if len([]rune(in.Name)) > 100 {
		verr.Add("name", "name admite como máximo 100 caracteres")
	}
	switch in.Type {
	case "":
		verr.Add("type", "type es obligatorio")
	case entity.RoleCustomer, entity.RoleExpert:
	default:
		verr.Add("type", "type debe ser customer o expert")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	existing, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := uc.now().UTC()
	user := &entity.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Type,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return &dto.RegisterResponse{Message: "Registro exitoso", Type: user.Role}, nil
}

// Login verifica email/password y emite un JWT de 1 día (30 con rememberMe).
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidPassword
	}
	token, err := jwt.GenerateAt(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, user.Email, user.Name, user.Role, jwt.TTL(in.RememberMe), uc.now())
	if err != nil {
		return nil, fmt.Errorf("generar token: %w", err)
	}
	return &dto.LoginResponse{
		Message: "Inicio de sesión exitoso",
		Token:   token,
		Name:    user.Name,
		Type:    user.Role,
	}, nil
}

// Authenticate valida el token y carga el usuario actual por su email.
// Devuelve jwt.ErrExpired, domain.ErrUnauthorized o domain.ErrUserNotFound.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	claims, err := jwt.ParseAt(uc.jwtCfg.Secret, token, uc.now())
	if err != nil {
		if errors.Is(err, jwt.ErrExpired) {
			return nil, err
		}
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByEmail(ctx, claims.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// VerifyToken informa si el token sigue siendo válido y a quién pertenece.
func (uc *AuthUseCase) VerifyToken(ctx context.Context, token string) (*dto.VerifyTokenResponse, error) {
	user, err := uc.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	return &dto.VerifyTokenResponse{
		Valid: true,
		User:  dto.TokenUser{Email: user.Email, Name: user.Name, Type: user.Role},
	}, nil
}

// EnsureAdmin crea la cuenta admin configurada si no existe. Idempotente.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, acc AdminAccount) (bool, error) {
	existing, err := uc.userRepo.GetByRoleAndEmail(ctx, entity.RoleAdmin, acc.Email)
	if err != nil {
		return false, fmt.Errorf("buscar admin: %w", err)
	}
	if existing != nil {
		return false, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(acc.Password), uc.hashCost)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	name := acc.Name
	if name == "" {
		name = "Admin"
	}
	now := uc.now().UTC()
	admin := &entity.User{
		Name:         name,
		Email:        acc.Email,
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, admin); err != nil {
		return false, fmt.Errorf("crear admin: %w", err)
	}
	return true, nil
}
