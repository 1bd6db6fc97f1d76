package contacts

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
	ClientID string
	Tag      string
	Type     string
	Value    string
}

func (in CreateInput) validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.ClientID, validation.Required),
		validation.Field(&in.Type, validation.Required, validation.Length(1, 60)),
		validation.Field(&in.Value, validation.Required, validation.Length(1, 200)),
	)
}

func (s *Service) Create(ctx context.Context, sc access.Scope, in CreateInput) (Contact, error) {
	in.Value = strings.TrimSpace(in.Value)
	if err := in.validate(); err != nil {
		return Contact{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	ok, err := s.clients.ExistsInScope(ctx, sc, in.ClientID)
	if err != nil {
		return Contact{}, err
	}
	if !ok {
		return Contact{}, ErrNotFound
	}

	c := Contact{
		ID:       uuid.NewString(),
		ClientID: in.ClientID,
		Tag:      in.Tag,
		Type:     in.Type,
		Value:    in.Value,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return Contact{}, err
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, sc access.Scope, id string) (Contact, error) {
	return s.repo.Get(ctx, sc, id)
}

func (s *Service) List(ctx context.Context, sc access.Scope, pg paging.Params) (paging.Page[Contact], error) {
	return s.repo.List(ctx, sc, pg)
}

type UpdateInput struct {
	ClientID *string
	Tag      *string
	Type     *string
	Value    *string
}

func (s *Service) Update(ctx context.Context, sc access.Scope, id string, in UpdateInput) (Contact, error) {
	current, err := s.repo.Get(ctx, sc, id)
	if err != nil {
		return Contact{}, err
	}

	if in.ClientID != nil && *in.ClientID != current.ClientID {
		ok, err := s.clients.ExistsInScope(ctx, sc, *in.ClientID)
		if err != nil {
			return Contact{}, err
		}
		if !ok {
			return Contact{}, ErrNotFound
		}
		current.ClientID = *in.ClientID
	}
	if in.Tag != nil {
		current.Tag = *in.Tag
	}
	if in.Type != nil {
		current.Type = *in.Type
	}
	if in.Value != nil {
		current.Value = strings.TrimSpace(*in.Value)
	}

	if err := (CreateInput{
		ClientID: current.ClientID,
		Type:     current.Type,
		Value:    current.Value,
	}).validate(); err != nil {
		return Contact{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repo.Update(ctx, current); err != nil {
		return Contact{}, err
	}
	return current, nil
}

func (s *Service) Delete(ctx context.Context, sc access.Scope, id string) (bool, error) {
	return s.repo.Delete(ctx, sc, id)
}
