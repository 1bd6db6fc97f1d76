package clients

import (
	"context"

	"petshop-api/internal/domain/access"
	"petshop-api/internal/domain/paging"
)

// Repository persiste clientes. Todas las lecturas y bajas componen el
// scope: con scope restringido, un cliente ajeno equivale a inexistente.
type Repository interface {
	Create(ctx context.Context, c Client) error
	Get(ctx context.Context, sc access.Scope, id string) (Client, error)
	Exists(ctx context.Context, sc access.Scope, id string) (bool, error)
	List(ctx context.Context, sc access.Scope, pg paging.Params) (paging.Page[Client], error)
	// Update reemplaza la fila por ID; el service ya re-apuntó por
	// (id, scope) antes de mergear.
	Update(ctx context.Context, c Client) error
	Delete(ctx context.Context, sc access.Scope, id string) (bool, error)
}
