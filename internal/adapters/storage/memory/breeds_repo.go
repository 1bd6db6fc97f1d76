package memory

import (
	"context"
	"sort"
	"sync"

	"petshop-api/internal/domain/access"
	"petshop-api/internal/domain/breeds"
	"petshop-api/internal/domain/paging"
)

type BreedsRepo struct {
	mu   sync.RWMutex
	byID map[string]breeds.Breed
	pets *PetsRepo
}

func NewBreedsRepo(pets *PetsRepo) *BreedsRepo {
	return &BreedsRepo{byID: make(map[string]breeds.Breed), pets: pets}
}

func (r *BreedsRepo) breedInScope(sc access.Scope, b breeds.Breed) bool {
	if !sc.Restricted() {
		return true
	}
	clientID, ok := r.pets.clientOf(b.PetID)
	if !ok {
		return false
	}
	cpf, ok := r.pets.clients.ownerCPF(clientID)
	return ok && cpf == sc.CPF()
}

func (r *BreedsRepo) Create(_ context.Context, b breeds.Breed) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[b.ID] = b
	return nil
}

func (r *BreedsRepo) Get(_ context.Context, sc access.Scope, id string) (breeds.Breed, error) {
	r.mu.RLock()
	b, ok := r.byID[id]
	r.mu.RUnlock()

	if !ok || !r.breedInScope(sc, b) {
		return breeds.Breed{}, breeds.ErrNotFound
	}
	return b, nil
}

func (r *BreedsRepo) List(_ context.Context, sc access.Scope, pg paging.Params) (paging.Page[breeds.Breed], error) {
	return r.list(sc, pg, func(breeds.Breed) bool { return true })
}

func (r *BreedsRepo) ListByClient(_ context.Context, sc access.Scope, clientID string, pg paging.Params) (paging.Page[breeds.Breed], error) {
	return r.list(sc, pg, func(b breeds.Breed) bool {
		owner, ok := r.pets.clientOf(b.PetID)
		return ok && owner == clientID
	})
}

func (r *BreedsRepo) ListByPet(_ context.Context, sc access.Scope, petID string, pg paging.Params) (paging.Page[breeds.Breed], error) {
	return r.list(sc, pg, func(b breeds.Breed) bool { return b.PetID == petID })
}

func (r *BreedsRepo) list(sc access.Scope, pg paging.Params, keep func(breeds.Breed) bool) (paging.Page[breeds.Breed], error) {
	r.mu.RLock()
	all := make([]breeds.Breed, 0, len(r.byID))
	for _, b := range r.byID {
		all = append(all, b)
	}
	r.mu.RUnlock()

	filtered := all[:0]
	for _, b := range all {
		if keep(b) && r.breedInScope(sc, b) {
			filtered = append(filtered, b)
		}
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].ID < filtered[j].ID })
	return paging.Slice(filtered, pg), nil
}

func (r *BreedsRepo) Update(_ context.Context, b breeds.Breed) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[b.ID]; !ok {
		return breeds.ErrNotFound
	}
	r.byID[b.ID] = b
	return nil
}

func (r *BreedsRepo) Delete(_ context.Context, sc access.Scope, id string) (bool, error) {
	r.mu.RLock()
	b, ok := r.byID[id]
	r.mu.RUnlock()

	if !ok || !r.breedInScope(sc, b) {
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
