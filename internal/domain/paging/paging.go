package paging

import (
	"net/http"
	"strconv"
)

const (
	DefaultSize = 10
	MaxSize     = 100
)

// Params es el pedido de página: page 0-based + tamaño, con defaults
// cuando el caller no manda nada.
type Params struct {
	Page int
	Size int
}

func (p Params) Offset() int { return p.Page * p.Size }

// Normalize aplica defaults y límites (size en [1, MaxSize], page >= 0).
func Normalize(page, size int) Params {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	return Params{Page: page, Size: size}
}

// FromRequest lee ?page= y ?size= de la query. Valores ausentes o basura
// caen en los defaults.
func FromRequest(r *http.Request) Params {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("size"))
	return Normalize(page, size)
}

// Page es el sobre de respuesta paginada con metadata de totales.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// New arma la página a partir de los items ya recortados y el total real.
func New[T any](items []T, p Params, total int64) Page[T] {
	if items == nil {
		items = make([]T, 0)
	}
	pages := 0
	if p.Size > 0 {
		pages = int((total + int64(p.Size) - 1) / int64(p.Size))
	}
	return Page[T]{
		Items:      items,
		Page:       p.Page,
		Size:       p.Size,
		TotalItems: total,
		TotalPages: pages,
	}
}

// Slice recorta un slice completo ya filtrado/ordenado (repos en memoria).
func Slice[T any](all []T, p Params) Page[T] {
	total := int64(len(all))
	lo := p.Offset()
	if lo > len(all) {
		lo = len(all)
	}
	hi := lo + p.Size
	if hi > len(all) {
		hi = len(all)
	}
	out := make([]T, hi-lo)
	copy(out, all[lo:hi])
	return New(out, p, total)
}

// Map convierte el contenido de una página (entidad -> DTO) conservando
// la metadata.
func Map[T, U any](pg Page[T], fn func(T) U) Page[U] {
	items := make([]U, 0, len(pg.Items))
	for _, it := range pg.Items {
		items = append(items, fn(it))
	}
	return Page[U]{
		Items:      items,
		Page:       pg.Page,
		Size:       pg.Size,
		TotalItems: pg.TotalItems,
		TotalPages: pg.TotalPages,
	}
}
