package addresses

import (
	"context"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"petshop-api/internal/domain/access"
	"petshop-api/internal/domain/paging"
)

type Clients interface {
	ExistsInScope(ctx context.Context, sc access.Scope, id string) (bool, error)
}

type Service struct {
	repo    Repository
	clients Clients
}

func NewService(repo Repository, clients Clients) *Service {
	return &Service{repo: repo, clients: clients}
}

type CreateInput struct {
	ClientID     string
	Street       string
	City         string
	Neighborhood string
	Complement   string
	Tag          string
}

func (in CreateInput) validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.ClientID, validation.Required),
		validation.Field(&in.Street, validation.Required, validation.Length(1, 200)),
		validation.Field(&in.City, validation.Required, validation.Length(1, 120)),
	)
}

func (s *Service) Create(ctx context.Context, sc access.Scope, in CreateInput) (Address, error) {
	in.Street = strings.TrimSpace(in.Street)
	in.City = strings.TrimSpace(in.City)
	if err := in.validate(); err != nil {
		return Address{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	ok, err := s.clients.ExistsInScope(ctx, sc, in.ClientID)
	if err != nil {
		return Address{}, err
	}
	if !ok {
		return Address{}, ErrNotFound
	}

	a := Address{
		ID:           uuid.NewString(),
		ClientID:     in.ClientID,
		Street:       in.Street,
		City:         in.City,
		Neighborhood: in.Neighborhood,
		Complement:   in.Complement,
		Tag:          in.Tag,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return Address{}, err
	}
	return a, nil
}

func (s *Service) Get(ctx context.Context, sc access.Scope, id string) (Address, error) {
	return s.repo.Get(ctx, sc, id)
}

func (s *Service) List(ctx context.Context, sc access.Scope, pg paging.Params) (paging.Page[Address], error) {
	return s.repo.List(ctx, sc, pg)
}

func (s *Service) ListByClient(ctx context.Context, sc access.Scope, clientID string, pg paging.Params) (paging.Page[Address], error) {
	return s.repo.ListByClient(ctx, sc, clientID, pg)
}

type UpdateInput struct {
	ClientID     *string
	Street       *string
	City         *string
	Neighborhood *string
	Complement   *string
	Tag          *string
}

func (s *Service) Update(ctx context.Context, sc access.Scope, id string, in UpdateInput) (Address, error) {
	current, err := s.repo.Get(ctx, sc, id)
	if err != nil {
		return Address{}, err
	}

	if in.ClientID != nil && *in.ClientID != current.ClientID {
		ok, err := s.clients.ExistsInScope(ctx, sc, *in.ClientID)
		if err != nil {
			return Address{}, err
		}
		if !ok {
			return Address{}, ErrNotFound
		}
		current.ClientID = *in.ClientID
	}
	if in.Street != nil {
		current.Street = strings.TrimSpace(*in.Street)
	}
	if in.City != nil {
		current.City = strings.TrimSpace(*in.City)
	}
	if in.Neighborhood != nil {
		current.Neighborhood = *in.Neighborhood
	}
	if in.Complement != nil {
		current.Complement = *in.Complement
	}
	if in.Tag != nil {
		current.Tag = *in.Tag
	}

	if err := (CreateInput{
		ClientID: current.ClientID,
		Street:   current.Street,
		City:     current.City,
	}).validate(); err != nil {
		return Address{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repo.Update(ctx, current); err != nil {
		return Address{}, err
	}
	return current, nil
}

func (s *Service) Delete(ctx context.Context, sc access.Scope, id string) (bool, error) {
	return s.repo.Delete(ctx, sc, id)
}
