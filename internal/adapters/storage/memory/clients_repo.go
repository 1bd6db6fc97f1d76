package memory

import (
	"context"
	"sort"
	"sync"

	"petshop-api/internal/domain/access"
	"petshop-api/internal/domain/clients"
	"petshop-api/internal/domain/paging"
)

type ClientsRepo struct {
	mu   sync.RWMutex
	byID map[string]clients.Client
}

func NewClientsRepo() *ClientsRepo {
	return &ClientsRepo{byID: make(map[string]clients.Client)}
}

func inScope(sc access.Scope, c clients.Client) bool {
	return !sc.Restricted() || c.CPF == sc.CPF()
}

// ownerCPF resuelve el CPF dueño de un cliente; lo usan los repos hijos
// para componer el scope de sus propias filas.
func (r *ClientsRepo) ownerCPF(id string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return "", false
	}
	return c.CPF, true
}

func (r *ClientsRepo) Create(_ context.Context, c clients.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[c.ID] = c
	return nil
}

func (r *ClientsRepo) Get(_ context.Context, sc access.Scope, id string) (clients.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok || !inScope(sc, c) {
		return clients.Client{}, clients.ErrNotFound
	}
	return c, nil
}

func (r *ClientsRepo) Exists(_ context.Context, sc access.Scope, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	return ok && inScope(sc, c), nil
}

func (r *ClientsRepo) List(_ context.Context, sc access.Scope, pg paging.Params) (paging.Page[clients.Client], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]clients.Client, 0, len(r.byID))
	for _, c := range r.byID {
		if inScope(sc, c) {
			all = append(all, c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return paging.Slice(all, pg), nil
}

func (r *ClientsRepo) Update(_ context.Context, c clients.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[c.ID]; !ok {
		return clients.ErrNotFound
	}
	r.byID[c.ID] = c
	return nil
}

func (r *ClientsRepo) Delete(_ context.Context, sc access.Scope, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok || !inScope(sc, c) {
		return false, nil
	}
	delete(r.byID, id)
	return true, nil
}
