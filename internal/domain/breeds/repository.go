package breeds

import (
	"context"

	"petshop-api/internal/domain/access"
	"petshop-api/internal/domain/paging"
)

type Repository interface {
	Create(ctx context.Context, b Breed) error
	Get(ctx context.Context, sc access.Scope, id string) (Breed, error)
	List(ctx context.Context, sc access.Scope, pg paging.Params) (paging.Page[Breed], error)
	ListByClient(ctx context.Context, sc access.Scope, clientID string, pg paging.Params) (paging.Page[Breed], error)
	ListByPet(ctx context.Context, sc access.Scope, petID string, pg paging.Params) (paging.Page[Breed], error)
	Update(ctx context.Context, b Breed) error
	Delete(ctx context.Context, sc access.Scope, id string) (bool, error)
}
