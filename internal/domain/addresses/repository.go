package addresses

import (
	"context"

	"petshop-api/internal/domain/access"
	"petshop-api/internal/domain/paging"
)

type Repository interface {
	Create(ctx context.Context, a Address) error
	Get(ctx context.Context, sc access.Scope, id string) (Address, error)
	List(ctx context.Context, sc access.Scope, pg paging.Params) (paging.Page[Address], error)
	ListByClient(ctx context.Context, sc access.Scope, clientID string, pg paging.Params) (paging.Page[Address], error)
	Update(ctx context.Context, a Address) error
	Delete(ctx context.Context, sc access.Scope, id string) (bool, error)
}
