package memory

import (
	"context"
	"sort"
	"sync"

	"petshop-api/internal/domain/access"
	"petshop-api/internal/domain/addresses"
	"petshop-api/internal/domain/paging"
)

type AddressesRepo struct {
	mu      sync.RWMutex
	byID    map[string]addresses.Address
	clients *ClientsRepo
}

func NewAddressesRepo(clients *ClientsRepo) *AddressesRepo {
	return &AddressesRepo{byID: make(map[string]addresses.Address), clients: clients}
}

func (r *AddressesRepo) addressInScope(sc access.Scope, a addresses.Address) bool {
	if !sc.Restricted() {
		return true
	}
	cpf, ok := r.clients.ownerCPF(a.ClientID)
	return ok && cpf == sc.CPF()
}

func (r *AddressesRepo) Create(_ context.Context, a addresses.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[a.ID] = a
	return nil
}

func (r *AddressesRepo) Get(_ context.Context, sc access.Scope, id string) (addresses.Address, error) {
	r.mu.RLock()
	a, ok := r.byID[id]
	r.mu.RUnlock()

	if !ok || !r.addressInScope(sc, a) {
		return addresses.Address{}, addresses.ErrNotFound
	}
	return a, nil
}

func (r *AddressesRepo) List(_ context.Context, sc access.Scope, pg paging.Params) (paging.Page[addresses.Address], error) {
	return r.list(sc, pg, func(addresses.Address) bool { return true })
}

func (r *AddressesRepo) ListByClient(_ context.Context, sc access.Scope, clientID string, pg paging.Params) (paging.Page[addresses.Address], error) {
	return r.list(sc, pg, func(a addresses.Address) bool { return a.ClientID == clientID })
}

func (r *AddressesRepo) list(sc access.Scope, pg paging.Params, keep func(addresses.Address) bool) (paging.Page[addresses.Address], error) {
	r.mu.RLock()
	all := make([]addresses.Address, 0, len(r.byID))
	for _, a := range r.byID {
		all = append(all, a)
	}
	r.mu.RUnlock()

	filtered := all[:0]
	for _, a := range all {
		if keep(a) && r.addressInScope(sc, a) {
			filtered = append(filtered, a)
		}
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].ID < filtered[j].ID })
	return paging.Slice(filtered, pg), nil
}

func (r *AddressesRepo) Update(_ context.Context, a addresses.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[a.ID]; !ok {
		return addresses.ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *AddressesRepo) Delete(_ context.Context, sc access.Scope, id string) (bool, error) {
	r.mu.RLock()
	a, ok := r.byID[id]
	r.mu.RUnlock()

	if !ok || !r.addressInScope(sc, a) {
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
