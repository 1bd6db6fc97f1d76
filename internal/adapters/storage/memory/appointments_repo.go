package memory

import (
	"context"
	"sort"
	"sync"

	"petshop-api/internal/domain/access"
	"petshop-api/internal/domain/appointments"
	"petshop-api/internal/domain/paging"
)

type AppointmentsRepo struct {
	mu   sync.RWMutex
	byID map[string]appointments.Appointment
	pets *PetsRepo
}

func NewAppointmentsRepo(pets *PetsRepo) *AppointmentsRepo {
	return &AppointmentsRepo{byID: make(map[string]appointments.Appointment), pets: pets}
}

func (r *AppointmentsRepo) appointmentInScope(sc access.Scope, a appointments.Appointment) bool {
	if !sc.Restricted() {
		return true
	}
	clientID, ok := r.pets.clientOf(a.PetID)
	if !ok {
		return false
	}
	cpf, ok := r.pets.clients.ownerCPF(clientID)
	return ok && cpf == sc.CPF()
}

func (r *AppointmentsRepo) Create(_ context.Context, a appointments.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[a.ID] = a
	return nil
}

func (r *AppointmentsRepo) Get(_ context.Context, sc access.Scope, id string) (appointments.Appointment, error) {
	r.mu.RLock()
	a, ok := r.byID[id]
	r.mu.RUnlock()

	if !ok || !r.appointmentInScope(sc, a) {
		return appointments.Appointment{}, appointments.ErrNotFound
	}
	return a, nil
}

func (r *AppointmentsRepo) List(_ context.Context, sc access.Scope, pg paging.Params) (paging.Page[appointments.Appointment], error) {
	return r.list(sc, pg, func(appointments.Appointment) bool { return true })
}

func (r *AppointmentsRepo) ListByClient(_ context.Context, sc access.Scope, clientID string, pg paging.Params) (paging.Page[appointments.Appointment], error) {
	return r.list(sc, pg, func(a appointments.Appointment) bool {
		owner, ok := r.pets.clientOf(a.PetID)
		return ok && owner == clientID
	})
}

func (r *AppointmentsRepo) ListByPet(_ context.Context, sc access.Scope, petID string, pg paging.Params) (paging.Page[appointments.Appointment], error) {
	return r.list(sc, pg, func(a appointments.Appointment) bool { return a.PetID == petID })
}

func (r *AppointmentsRepo) list(sc access.Scope, pg paging.Params, keep func(appointments.Appointment) bool) (paging.Page[appointments.Appointment], error) {
	r.mu.RLock()
	all := make([]appointments.Appointment, 0, len(r.byID))
	for _, a := range r.byID {
		all = append(all, a)
	}
	r.mu.RUnlock()

	filtered := all[:0]
	for _, a := range all {
		if keep(a) && r.appointmentInScope(sc, a) {
			filtered = append(filtered, a)
		}
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].ID < filtered[j].ID })
	return paging.Slice(filtered, pg), nil
}

func (r *AppointmentsRepo) Update(_ context.Context, a appointments.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[a.ID]; !ok {
		return appointments.ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *AppointmentsRepo) Delete(_ context.Context, sc access.Scope, id string) (bool, error) {
	r.mu.RLock()
	a, ok := r.byID[id]
	r.mu.RUnlock()

	if !ok || !r.appointmentInScope(sc, a) {
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
