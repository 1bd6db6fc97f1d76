package breeds

import (
	"context"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"petshop-api/internal/domain/access"
	"petshop-api/internal/domain/paging"
)

// Pets es la vista mínima del módulo padre.
type Pets interface {
	ExistsInScope(ctx context.Context, sc access.Scope, id string) (bool, error)
}

type Service struct {
	repo Repository
	pets Pets
}

func NewService(repo Repository, pets Pets) *Service {
	return &Service{repo: repo, pets: pets}
}

type CreateInput struct {
	PetID       string
	Description string
}

func (in CreateInput) validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.PetID, validation.Required),
		validation.Field(&in.Description, validation.Required, validation.Length(1, 200)),
	)
}

// Create exige que la mascota padre exista dentro del scope.
func (s *Service) Create(ctx context.Context, sc access.Scope, in CreateInput) (Breed, error) {
	in.Description = strings.TrimSpace(in.Description)
	if err := in.validate(); err != nil {
		return Breed{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	ok, err := s.pets.ExistsInScope(ctx, sc, in.PetID)
	if err != nil {
		return Breed{}, err
	}
	if !ok {
		return Breed{}, ErrNotFound
	}

	b := Breed{
		ID:          uuid.NewString(),
		PetID:       in.PetID,
		Description: in.Description,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return Breed{}, err
	}
	return b, nil
}

func (s *Service) Get(ctx context.Context, sc access.Scope, id string) (Breed, error) {
	return s.repo.Get(ctx, sc, id)
}

func (s *Service) List(ctx context.Context, sc access.Scope, pg paging.Params) (paging.Page[Breed], error) {
	return s.repo.List(ctx, sc, pg)
}

func (s *Service) ListByClient(ctx context.Context, sc access.Scope, clientID string, pg paging.Params) (paging.Page[Breed], error) {
	return s.repo.ListByClient(ctx, sc, clientID, pg)
}

func (s *Service) ListByPet(ctx context.Context, sc access.Scope, petID string, pg paging.Params) (paging.Page[Breed], error) {
	return s.repo.ListByPet(ctx, sc, petID, pg)
}

type UpdateInput struct {
	PetID       *string
	Description *string
}

func (s *Service) Update(ctx context.Context, sc access.Scope, id string, in UpdateInput) (Breed, error) {
	current, err := s.repo.Get(ctx, sc, id)
	if err != nil {
		return Breed{}, err
	}

	if in.PetID != nil && *in.PetID != current.PetID {
		ok, err := s.pets.ExistsInScope(ctx, sc, *in.PetID)
		if err != nil {
			return Breed{}, err
		}
		if !ok {
			return Breed{}, ErrNotFound
		}
		current.PetID = *in.PetID
	}
	if in.Description != nil {
		current.Description = strings.TrimSpace(*in.Description)
	}

	if err := (CreateInput{PetID: current.PetID, Description: current.Description}).validate(); err != nil {
		return Breed{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repo.Update(ctx, current); err != nil {
		return Breed{}, err
	}
	return current, nil
}

func (s *Service) Delete(ctx context.Context, sc access.Scope, id string) (bool, error) {
	return s.repo.Delete(ctx, sc, id)
}
