package appointments

import (
	"context"
	"fmt"
	"strings"
	"time"

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
	now  func() time.Time
}

func NewService(repo Repository, pets Pets) *Service {
	return &Service{repo: repo, pets: pets, now: time.Now}
}

type CreateInput struct {
	PetID       string
	Description string
	Cost        float64
	// Date en cero usa la hora del servidor.
	Date time.Time
}

func (in CreateInput) validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.PetID, validation.Required),
		validation.Field(&in.Description, validation.Required, validation.Length(1, 500)),
		validation.Field(&in.Cost, validation.Min(0.0)),
	)
}

func (s *Service) Create(ctx context.Context, sc access.Scope, in CreateInput) (Appointment, error) {
	in.Description = strings.TrimSpace(in.Description)
	if err := in.validate(); err != nil {
		return Appointment{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	ok, err := s.pets.ExistsInScope(ctx, sc, in.PetID)
	if err != nil {
		return Appointment{}, err
	}
	if !ok {
		return Appointment{}, ErrNotFound
	}

	if in.Date.IsZero() {
		in.Date = s.now()
	}
	a := Appointment{
		ID:          uuid.NewString(),
		PetID:       in.PetID,
		Description: in.Description,
		Cost:        in.Cost,
		Date:        in.Date,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

func (s *Service) Get(ctx context.Context, sc access.Scope, id string) (Appointment, error) {
	return s.repo.Get(ctx, sc, id)
}

func (s *Service) List(ctx context.Context, sc access.Scope, pg paging.Params) (paging.Page[Appointment], error) {
	return s.repo.List(ctx, sc, pg)
}

func (s *Service) ListByClient(ctx context.Context, sc access.Scope, clientID string, pg paging.Params) (paging.Page[Appointment], error) {
	return s.repo.ListByClient(ctx, sc, clientID, pg)
}

func (s *Service) ListByPet(ctx context.Context, sc access.Scope, petID string, pg paging.Params) (paging.Page[Appointment], error) {
	return s.repo.ListByPet(ctx, sc, petID, pg)
}

type UpdateInput struct {
	PetID       *string
	Description *string
	Cost        *float64
	Date        *time.Time
}

func (s *Service) Update(ctx context.Context, sc access.Scope, id string, in UpdateInput) (Appointment, error) {
	current, err := s.repo.Get(ctx, sc, id)
	if err != nil {
		return Appointment{}, err
	}

	if in.PetID != nil && *in.PetID != current.PetID {
		ok, err := s.pets.ExistsInScope(ctx, sc, *in.PetID)
		if err != nil {
			return Appointment{}, err
		}
		if !ok {
			return Appointment{}, ErrNotFound
		}
		current.PetID = *in.PetID
	}
	if in.Description != nil {
		current.Description = strings.TrimSpace(*in.Description)
	}
	if in.Cost != nil {
		current.Cost = *in.Cost
	}
	if in.Date != nil {
		current.Date = *in.Date
	}

	if err := (CreateInput{
		PetID:       current.PetID,
		Description: current.Description,
		Cost:        current.Cost,
	}).validate(); err != nil {
		return Appointment{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repo.Update(ctx, current); err != nil {
		return Appointment{}, err
	}
	return current, nil
}

func (s *Service) Delete(ctx context.Context, sc access.Scope, id string) (bool, error) {
	return s.repo.Delete(ctx, sc, id)
}
