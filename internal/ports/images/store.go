package images

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound: la imagen pedida no existe en el store.
var ErrNotFound = errors.New("image not found")

// Store guarda y sirve las imágenes de perfil (clientes y mascotas).
// El nombre es plano, sin directorios; el adapter decide dónde vive.
type Store interface {
	Save(ctx context.Context, name string, src io.Reader) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Remove(ctx context.Context, name string) error
}
