package clients

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"petshop-api/internal/domain/access"
	"petshop-api/internal/domain/paging"
	"petshop-api/internal/ports/images"
)

var cpfPattern = regexp.MustCompile(`^\d{11}$`)

type Service struct {
	repo   Repository
	images images.Store
	now    func() time.Time
}

func NewService(repo Repository, imgs images.Store) *Service {
	return &Service{
		repo:   repo,
		images: imgs,
		now:    time.Now,
	}
}

type CreateInput struct {
	Name string
	CPF  string
}

func (in CreateInput) validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(2, 120)),
		validation.Field(&in.CPF, validation.Required,
			validation.Match(cpfPattern).Error("cpf must be 11 digits")),
	)
}

// Create da de alta un cliente. Con scope restringido el CPF del payload
// se pisa con el del principal: un CLIENT solo puede crear su propio
// perfil, nunca uno ajeno.
func (s *Service) Create(ctx context.Context, sc access.Scope, in CreateInput) (Client, error) {
	if sc.Restricted() {
		in.CPF = sc.CPF()
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := in.validate(); err != nil {
		return Client{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	c := Client{
		ID:               uuid.NewString(),
		Name:             in.Name,
		CPF:              in.CPF,
		RegistrationDate: s.now(),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return Client{}, err
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, sc access.Scope, id string) (Client, error) {
	return s.repo.Get(ctx, sc, id)
}

// ExistsInScope lo usan los módulos hijos (pets, addresses, contacts)
// para chequear la propiedad del padre sin ciclos de imports.
func (s *Service) ExistsInScope(ctx context.Context, sc access.Scope, id string) (bool, error) {
	return s.repo.Exists(ctx, sc, id)
}

func (s *Service) List(ctx context.Context, sc access.Scope, pg paging.Params) (paging.Page[Client], error) {
	return s.repo.List(ctx, sc, pg)
}

// UpdateInput es el merge parcial: nil = no tocar.
type UpdateInput struct {
	Name *string
	CPF  *string
}

// Update re-apunta por (id, scope), mergea los campos no nulos y guarda.
// Con scope restringido el CPF no se puede cambiar: ignorarlo evita que
// un cliente "regale" su perfil a otro CPF.
func (s *Service) Update(ctx context.Context, sc access.Scope, id string, in UpdateInput) (Client, error) {
	current, err := s.repo.Get(ctx, sc, id)
	if err != nil {
		return Client{}, err
	}

	if in.Name != nil {
		current.Name = strings.TrimSpace(*in.Name)
	}
	if in.CPF != nil && !sc.Restricted() {
		current.CPF = *in.CPF
	}

	if err := (CreateInput{Name: current.Name, CPF: current.CPF}).validate(); err != nil {
		return Client{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repo.Update(ctx, current); err != nil {
		return Client{}, err
	}
	return current, nil
}

func (s *Service) Delete(ctx context.Context, sc access.Scope, id string) (bool, error) {
	return s.repo.Delete(ctx, sc, id)
}

// UploadImage guarda la imagen de perfil como client_<id>_<nombre>,
// borrando la anterior si había. Los errores de I/O colapsan a false:
// el caller solo distingue guardó / no guardó.
func (s *Service) UploadImage(ctx context.Context, sc access.Scope, id, filename string, src io.Reader) bool {
	current, err := s.repo.Get(ctx, sc, id)
	if err != nil {
		return false
	}

	name := fmt.Sprintf("client_%s_%s", id, filepath.Base(filename))
	if current.Image != "" {
		_ = s.images.Remove(ctx, current.Image)
	}
	if err := s.images.Save(ctx, name, src); err != nil {
		return false
	}

	current.Image = name
	return s.repo.Update(ctx, current) == nil
}

// ProfileImage abre la imagen registrada. Entidad inexistente, sin
// imagen o archivo perdido: todo ErrNotFound.
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
