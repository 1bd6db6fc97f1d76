package pets

import (
	"context"

	"petshop-api/internal/domain/access"
	"petshop-api/internal/domain/paging"
)

// Repository persiste mascotas. El scope se compone en cada lectura y
// baja siguiendo la cadena pet -> client -> cpf.
type Repository interface {
	Create(ctx context.Context, p Pet) error
	Get(ctx context.Context, sc access.Scope, id string) (Pet, error)
	Exists(ctx context.Context, sc access.Scope, id string) (bool, error)
	List(ctx context.Context, sc access.Scope, pg paging.Params) (paging.Page[Pet], error)
	ListByClient(ctx context.Context, sc access.Scope, clientID string, pg paging.Params) (paging.Page[Pet], error)
	Update(ctx context.Context, p Pet) error
	Delete(ctx context.Context, sc access.Scope, id string) (bool, error)
}
