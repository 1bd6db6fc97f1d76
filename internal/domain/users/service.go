package users

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"petshop-api/internal/domain/paging"
	"petshop-api/internal/ports/auth"
	"petshop-api/internal/security/password"
)

var cpfPattern = regexp.MustCompile(`^\d{11}$`)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RegisterInput es el alta por /auth/register. No lleva rol: el
// autoregistro siempre queda CLIENT, pida lo que pida el payload.
type RegisterInput struct {
	Name     string
	CPF      string
	Password string
}

func (in RegisterInput) validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(2, 120)),
		validation.Field(&in.CPF, validation.Required,
			validation.Match(cpfPattern).Error("cpf must be 11 digits")),
		validation.Field(&in.Password, validation.Required, validation.Length(6, 72)),
	)
}

func (s *Service) Register(ctx context.Context, in RegisterInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if err := in.validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return err
	}

	return s.repo.Create(ctx, User{
		CPF:          in.CPF,
		Name:         in.Name,
		Role:         auth.RoleClient,
		PasswordHash: hash,
	})
}

// Login resuelve por nombre y verifica la password. Nombre desconocido y
// password incorrecta devuelven el mismo ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, name, plain string) (User, error) {
	u, err := s.repo.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return User{}, ErrInvalidCredentials
	}
	if !password.Verify(plain, u.PasswordHash) {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

// CreateInput es el alta administrativa, con rol explícito.
type CreateInput struct {
	CPF      string
	Name     string
	Password string
	Role     auth.Role
}

func (in CreateInput) validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(2, 120)),
		validation.Field(&in.CPF, validation.Required,
			validation.Match(cpfPattern).Error("cpf must be 11 digits")),
		validation.Field(&in.Password, validation.Required, validation.Length(6, 72)),
		validation.Field(&in.Role, validation.In(auth.RoleAdmin, auth.RoleClient)),
	)
}

func (s *Service) Create(ctx context.Context, in CreateInput) (User, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Role == "" {
		in.Role = auth.RoleClient
	}
	if err := in.validate(); err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return User{}, err
	}

	u := User{CPF: in.CPF, Name: in.Name, Role: in.Role, PasswordHash: hash}
	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, cpf string) (User, error) {
	return s.repo.GetByCPF(ctx, strings.TrimSpace(cpf))
}

func (s *Service) List(ctx context.Context, pg paging.Params) (paging.Page[User], error) {
	return s.repo.List(ctx, pg)
}

// UpdateInput es el merge parcial: nil = no tocar. El CPF no aparece
// porque es inmutable (la ruta ya lo identifica).
type UpdateInput struct {
	Name     *string
	Role     *auth.Role
	Password *string
}

func (s *Service) Update(ctx context.Context, cpf string, in UpdateInput) (User, error) {
	current, err := s.repo.GetByCPF(ctx, strings.TrimSpace(cpf))
	if err != nil {
		return User{}, err
	}

	if in.Name != nil {
		current.Name = strings.TrimSpace(*in.Name)
	}
	if in.Role != nil {
		current.Role = *in.Role
	}
	if in.Password != nil {
		hash, err := password.Hash(*in.Password)
		if err != nil {
			return User{}, err
		}
		current.PasswordHash = hash
	}

	if err := validation.ValidateStruct(&current,
		validation.Field(&current.Name, validation.Required, validation.Length(2, 120)),
		validation.Field(&current.Role, validation.Required,
			validation.In(auth.RoleAdmin, auth.RoleClient)),
	); err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repo.Update(ctx, current); err != nil {
		return User{}, err
	}
	return current, nil
}

func (s *Service) Delete(ctx context.Context, cpf string) (bool, error) {
	return s.repo.Delete(ctx, strings.TrimSpace(cpf))
}
