package users

import (
	"context"

	"petshop-api/internal/domain/paging"
)

// Repository persiste usuarios. Las rutas de usuarios son solo ADMIN,
// así que acá no entra scope de propiedad.
type Repository interface {
	// Create falla con ErrConflict si el CPF o el nombre ya existen.
	Create(ctx context.Context, u User) error
	GetByCPF(ctx context.Context, cpf string) (User, error)
	GetByName(ctx context.Context, name string) (User, error)
	List(ctx context.Context, pg paging.Params) (paging.Page[User], error)
	// Update reemplaza la fila identificada por u.CPF; ErrNotFound si no existe.
	Update(ctx context.Context, u User) error
	Delete(ctx context.Context, cpf string) (bool, error)
}
