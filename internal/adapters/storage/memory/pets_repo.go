package memory

import (
	"context"
	"sort"
	"sync"

	"petshop-api/internal/domain/access"
	"petshop-api/internal/domain/paging"
	"petshop-api/internal/domain/pets"
)

type PetsRepo struct {
	mu      sync.RWMutex
	byID    map[string]pets.Pet
	clients *ClientsRepo
}

func NewPetsRepo(clients *ClientsRepo) *PetsRepo {
	return &PetsRepo{byID: make(map[string]pets.Pet), clients: clients}
}

// petInScope sigue la cadena pet -> client -> cpf. Una mascota cuyo
// cliente ya no existe queda fuera de todo scope restringido.
func (r *PetsRepo) petInScope(sc access.Scope, p pets.Pet) bool {
	if !sc.Restricted() {
		return true
	}
	cpf, ok := r.clients.ownerCPF(p.ClientID)
	return ok && cpf == sc.CPF()
}

// clientOf resuelve el cliente dueño de una mascota; lo usan breeds y
// appointments para su propio scope y sus filtros por cliente.
func (r *PetsRepo) clientOf(id string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return "", false
	}
	return p.ClientID, true
}

func (r *PetsRepo) Create(_ context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[p.ID] = p
	return nil
}

func (r *PetsRepo) Get(_ context.Context, sc access.Scope, id string) (pets.Pet, error) {
	r.mu.RLock()
	p, ok := r.byID[id]
	r.mu.RUnlock()

	if !ok || !r.petInScope(sc, p) {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (r *PetsRepo) Exists(_ context.Context, sc access.Scope, id string) (bool, error) {
	r.mu.RLock()
	p, ok := r.byID[id]
	r.mu.RUnlock()

	return ok && r.petInScope(sc, p), nil
}

func (r *PetsRepo) List(_ context.Context, sc access.Scope, pg paging.Params) (paging.Page[pets.Pet], error) {
	return r.list(sc, pg, func(pets.Pet) bool { return true })
}

func (r *PetsRepo) ListByClient(_ context.Context, sc access.Scope, clientID string, pg paging.Params) (paging.Page[pets.Pet], error) {
	return r.list(sc, pg, func(p pets.Pet) bool { return p.ClientID == clientID })
}

func (r *PetsRepo) list(sc access.Scope, pg paging.Params, keep func(pets.Pet) bool) (paging.Page[pets.Pet], error) {
	r.mu.RLock()
	all := make([]pets.Pet, 0, len(r.byID))
	for _, p := range r.byID {
		all = append(all, p)
	}
	r.mu.RUnlock()

	filtered := all[:0]
	for _, p := range all {
		if keep(p) && r.petInScope(sc, p) {
			filtered = append(filtered, p)
		}
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].ID < filtered[j].ID })
	return paging.Slice(filtered, pg), nil
}

func (r *PetsRepo) Update(_ context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[p.ID]; !ok {
		return pets.ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *PetsRepo) Delete(_ context.Context, sc access.Scope, id string) (bool, error) {
	r.mu.RLock()
	p, ok := r.byID[id]
	r.mu.RUnlock()

	if !ok || !r.petInScope(sc, p) {
		return false, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	return true, nil
}
