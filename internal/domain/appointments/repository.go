package appointments

import (
	"context"

	"petshop-api/internal/domain/access"
	"petshop-api/internal/domain/paging"
)

type Repository interface {
	Create(ctx context.Context, a Appointment) error
	Get(ctx context.Context, sc access.Scope, id string) (Appointment, error)
	List(ctx context.Context, sc access.Scope, pg paging.Params) (paging.Page[Appointment], error)
	ListByClient(ctx context.Context, sc access.Scope, clientID string, pg paging.Params) (paging.Page[Appointment], error)
	ListByPet(ctx context.Context, sc access.Scope, petID string, pg paging.Params) (paging.Page[Appointment], error)
	Update(ctx context.Context, a Appointment) error
	Delete(ctx context.Context, sc access.Scope, id string) (bool, error)
}
