package memory

import (
	"context"
	"sort"
	"sync"

	"petshop-api/internal/domain/access"
	"petshop-api/internal/domain/contacts"
	"petshop-api/internal/domain/paging"
)

type ContactsRepo struct {
	mu      sync.RWMutex
	byID    map[string]contacts.Contact
	clients *ClientsRepo
}

func NewContactsRepo(clients *ClientsRepo) *ContactsRepo {
	return &ContactsRepo{byID: make(map[string]contacts.Contact), clients: clients}
}

func (r *ContactsRepo) contactInScope(sc access.Scope, c contacts.Contact) bool {
	if !sc.Restricted() {
		return true
	}
	cpf, ok := r.clients.ownerCPF(c.ClientID)
	return ok && cpf == sc.CPF()
}

func (r *ContactsRepo) Create(_ context.Context, c contacts.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[c.ID] = c
	return nil
}

func (r *ContactsRepo) Get(_ context.Context, sc access.Scope, id string) (contacts.Contact, error) {
	r.mu.RLock()
	c, ok := r.byID[id]
	r.mu.RUnlock()

	if !ok || !r.contactInScope(sc, c) {
		return contacts.Contact{}, contacts.ErrNotFound
	}
	return c, nil
}

func (r *ContactsRepo) List(_ context.Context, sc access.Scope, pg paging.Params) (paging.Page[contacts.Contact], error) {
	r.mu.RLock()
	all := make([]contacts.Contact, 0, len(r.byID))
	for _, c := range r.byID {
		all = append(all, c)
	}
	r.mu.RUnlock()

	filtered := all[:0]
	for _, c := range all {
		if r.contactInScope(sc, c) {
			filtered = append(filtered, c)
		}
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].ID < filtered[j].ID })
	return paging.Slice(filtered, pg), nil
}

func (r *ContactsRepo) Update(_ context.Context, c contacts.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[c.ID]; !ok {
		return contacts.ErrNotFound
	}
	r.byID[c.ID] = c
	return nil
}

func (r *ContactsRepo) Delete(_ context.Context, sc access.Scope, id string) (bool, error) {
	r.mu.RLock()
	c, ok := r.byID[id]
	r.mu.RUnlock()

	if !ok || !r.contactInScope(sc, c) {
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
