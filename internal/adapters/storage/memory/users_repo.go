// Package memory implementa los repositorios sobre mapas en proceso.
// Sirve para tests y para correr la API sin Postgres; la cadena de
// propiedad se resuelve siguiendo punteros entre repos.
package memory

import (
	"context"
	"sort"
	"sync"

	"petshop-api/internal/domain/paging"
	"petshop-api/internal/domain/users"
)

type UsersRepo struct {
	mu    sync.RWMutex
	byCPF map[string]users.User
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{byCPF: make(map[string]users.User)}
}

func (r *UsersRepo) Create(_ context.Context, u users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byCPF[u.CPF]; ok {
		return users.ErrConflict
	}
	for _, existing := range r.byCPF {
		if existing.Name == u.Name {
			return users.ErrConflict
		}
	}
	r.byCPF[u.CPF] = u
	return nil
}

func (r *UsersRepo) GetByCPF(_ context.Context, cpf string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byCPF[cpf]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

func (r *UsersRepo) GetByName(_ context.Context, name string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.byCPF {
		if u.Name == name {
			return u, nil
		}
	}
	return users.User{}, users.ErrNotFound
}

func (r *UsersRepo) List(_ context.Context, pg paging.Params) (paging.Page[users.User], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]users.User, 0, len(r.byCPF))
	for _, u := range r.byCPF {
		all = append(all, u)
	}
	// orden estable para que la paginación sea reproducible
	sort.Slice(all, func(i, j int) bool { return all[i].CPF < all[j].CPF })
	return paging.Slice(all, pg), nil
}

func (r *UsersRepo) Update(_ context.Context, u users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byCPF[u.CPF]; !ok {
		return users.ErrNotFound
	}
	for cpf, existing := range r.byCPF {
		if cpf != u.CPF && existing.Name == u.Name {
			return users.ErrConflict
		}
	}
	r.byCPF[u.CPF] = u
	return nil
}

func (r *UsersRepo) Delete(_ context.Context, cpf string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byCPF[cpf]; !ok {
		return false, nil
	}
	delete(r.byCPF, cpf)
	return true, nil
}
