package pets

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"petshop-api/internal/domain/access"
	"petshop-api/internal/domain/paging"
	"petshop-api/internal/ports/images"
)

// Clients es la vista mínima del módulo padre que necesitamos para
// validar propiedad sin importar el paquete completo.
type Clients interface {
	ExistsInScope(ctx context.Context, sc access.Scope, id string) (bool, error)
}

type Service struct {
	repo    Repository
	clients Clients
	images  images.Store
}

func NewService(repo Repository, clients Clients, imgs images.Store) *Service {
	return &Service{repo: repo, clients: clients, images: imgs}
}

type CreateInput struct {
	ClientID  string
	BreedID   string
	Name      string
	BirthDate *time.Time
}

func (in CreateInput) validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.ClientID, validation.Required),
		validation.Field(&in.Name, validation.Required, validation.Length(1, 120)),
	)
}

// Create da de alta una mascota. El cliente padre tiene que existir
// dentro del scope del principal: apuntar a un cliente ajeno responde
// igual que apuntar a uno inexistente.
func (s *Service) Create(ctx context.Context, sc access.Scope, in CreateInput) (Pet, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := in.validate(); err != nil {
		return Pet{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	ok, err := s.clients.ExistsInScope(ctx, sc, in.ClientID)
	if err != nil {
		return Pet{}, err
	}
	if !ok {
		return Pet{}, ErrNotFound
	}

	p := Pet{
		ID:        uuid.NewString(),
		ClientID:  in.ClientID,
		BreedID:   in.BreedID,
		Name:      in.Name,
		BirthDate: in.BirthDate,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, sc access.Scope, id string) (Pet, error) {
	return s.repo.Get(ctx, sc, id)
}

// ExistsInScope lo usan breeds y appointments para chequear la mascota
// padre.
func (s *Service) ExistsInScope(ctx context.Context, sc access.Scope, id string) (bool, error) {
	return s.repo.Exists(ctx, sc, id)
}

func (s *Service) List(ctx context.Context, sc access.Scope, pg paging.Params) (paging.Page[Pet], error) {
	return s.repo.List(ctx, sc, pg)
}

func (s *Service) ListByClient(ctx context.Context, sc access.Scope, clientID string, pg paging.Params) (paging.Page[Pet], error) {
	return s.repo.ListByClient(ctx, sc, clientID, pg)
}

type UpdateInput struct {
	ClientID  *string
	BreedID   *string
	Name      *string
	BirthDate *time.Time
}

// Update mergea los campos no nulos. Re-apuntar a otro cliente exige
// que el destino también esté dentro del scope; si no, ErrNotFound.
func (s *Service) Update(ctx context.Context, sc access.Scope, id string, in UpdateInput) (Pet, error) {
	current, err := s.repo.Get(ctx, sc, id)
	if err != nil {
		return Pet{}, err
	}

	if in.ClientID != nil && *in.ClientID != current.ClientID {
		ok, err := s.clients.ExistsInScope(ctx, sc, *in.ClientID)
		if err != nil {
			return Pet{}, err
		}
		if !ok {
			return Pet{}, ErrNotFound
		}
		current.ClientID = *in.ClientID
	}
	if in.BreedID != nil {
		current.BreedID = *in.BreedID
	}
	if in.Name != nil {
		current.Name = strings.TrimSpace(*in.Name)
	}
	if in.BirthDate != nil {
		current.BirthDate = in.BirthDate
	}

	if err := (CreateInput{ClientID: current.ClientID, Name: current.Name}).validate(); err != nil {
		return Pet{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repo.Update(ctx, current); err != nil {
		return Pet{}, err
	}
	return current, nil
}

func (s *Service) Delete(ctx context.Context, sc access.Scope, id string) (bool, error) {
	return s.repo.Delete(ctx, sc, id)
}

// UploadImage guarda la foto como pet_<id>_<nombre>, pisando la
// anterior. Errores de I/O colapsan a false.
func (s *Service) UploadImage(ctx context.Context, sc access.Scope, id, filename string, src io.Reader) bool {
	current, err := s.repo.Get(ctx, sc, id)
	if err != nil {
		return false
	}

	name := fmt.Sprintf("pet_%s_%s", id, filepath.Base(filename))
	if current.Image != "" {
		_ = s.images.Remove(ctx, current.Image)
	}
	if err := s.images.Save(ctx, name, src); err != nil {
		return false
	}

	current.Image = name
	return s.repo.Update(ctx, current) == nil
}

// ProfileImage abre la foto registrada; cualquier falla es ErrNotFound.
func (s *Service) ProfileImage(ctx context.Context, sc access.Scope, id string) (io.ReadCloser, string, error) {
	current, err := s.repo.Get(ctx, sc, id)
	if err != nil {
		return nil, "", err
	}
	if current.Image == "" {
		return nil, "", ErrNotFound
	}

	rc, err := s.images.Open(ctx, current.Image)
	if err != nil {
		return nil, "", ErrNotFound
	}
	return rc, current.Image, nil
}
