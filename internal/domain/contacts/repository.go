package contacts

import (
	"context"

	"petshop-api/internal/domain/access"
	"petshop-api/internal/domain/paging"
)

// Repository compone el scope igual que el resto de los módulos, aunque
// las rutas de contactos sean solo de ADMIN: el predicado vive en la
// capa de datos, no en el router.
type Repository interface {
	Create(ctx context.Context, c Contact) error
	Get(ctx context.Context, sc access.Scope, id string) (Contact, error)
	List(ctx context.Context, sc access.Scope, pg paging.Params) (paging.Page[Contact], error)
	Update(ctx context.Context, c Contact) error
	Delete(ctx context.Context, sc access.Scope, id string) (bool, error)
}
