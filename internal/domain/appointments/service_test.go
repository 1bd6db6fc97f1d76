package appointments_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"petshop-api/internal/adapters/images/fsstore"
	mem "petshop-api/internal/adapters/storage/memory"
	"petshop-api/internal/domain/access"
	"petshop-api/internal/domain/appointments"
	"petshop-api/internal/domain/clients"
	"petshop-api/internal/domain/paging"
	"petshop-api/internal/domain/pets"
)

type fixture struct {
	clientsSvc      *clients.Service
	petsSvc         *pets.Service
	appointmentsSvc *appointments.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	imgs := fsstore.New(t.TempDir())
	cr := mem.NewClientsRepo()
	pr := mem.NewPetsRepo(cr)
	clientsSvc := clients.NewService(cr, imgs)
	petsSvc := pets.NewService(pr, clientsSvc, imgs)
	return fixture{
		clientsSvc:      clientsSvc,
		petsSvc:         petsSvc,
		appointmentsSvc: appointments.NewService(mem.NewAppointmentsRepo(pr), petsSvc),
	}
}

func (f fixture) pet(t *testing.T, cpf string) pets.Pet {
	t.Helper()
	ctx := context.Background()
	c, err := f.clientsSvc.Create(ctx, access.Unrestricted(), clients.CreateInput{
		Name: "Cliente", CPF: cpf,
	})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	p, err := f.petsSvc.Create(ctx, access.Unrestricted(), pets.CreateInput{
		ClientID: c.ID, Name: "Milo",
	})
	if err != nil {
		t.Fatalf("create pet: %v", err)
	}
	return p
}

func TestCreateChecksPetOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.pet(t, "11111111111")

	a, err := f.appointmentsSvc.Create(ctx, access.OwnedBy("11111111111"), appointments.CreateInput{
		PetID: p.ID, Description: "Vacuna anual", Cost: 150,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.Date.IsZero() {
		t.Fatal("zero date should default to server time")
	}

	// mascota de otro dueño: not-found
	_, err = f.appointmentsSvc.Create(ctx, access.OwnedBy("22222222222"), appointments.CreateInput{
		PetID: p.ID, Description: "Intruso", Cost: 10,
	})
	if !errors.Is(err, appointments.ErrNotFound) {
		t.Fatalf("foreign pet should be not-found, got %v", err)
	}
}

func TestChainScoping(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mine := f.pet(t, "11111111111")
	other := f.pet(t, "22222222222")

	a, err := f.appointmentsSvc.Create(ctx, access.Unrestricted(), appointments.CreateInput{
		PetID: mine.ID, Description: "Control", Cost: 80, Date: time.Now(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.appointmentsSvc.Create(ctx, access.Unrestricted(), appointments.CreateInput{
		PetID: other.ID, Description: "Control ajeno", Cost: 80, Date: time.Now(),
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	// la visibilidad sigue la cadena appointment -> pet -> client -> cpf
	if _, err := f.appointmentsSvc.Get(ctx, access.OwnedBy("11111111111"), a.ID); err != nil {
		t.Fatalf("owner get: %v", err)
	}
	if _, err := f.appointmentsSvc.Get(ctx, access.OwnedBy("22222222222"), a.ID); !errors.Is(err, appointments.ErrNotFound) {
		t.Fatalf("foreign get should be not-found, got %v", err)
	}

	pg, err := f.appointmentsSvc.List(ctx, access.OwnedBy("11111111111"), paging.Normalize(0, 10))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if pg.TotalItems != 1 {
		t.Fatalf("restricted list: got %d want 1", pg.TotalItems)
	}

	pg, err = f.appointmentsSvc.ListByPet(ctx, access.OwnedBy("11111111111"), other.ID, paging.Normalize(0, 10))
	if err != nil {
		t.Fatalf("list by pet: %v", err)
	}
	if pg.TotalItems != 0 {
		t.Fatalf("foreign pet filter should be empty, got %d", pg.TotalItems)
	}

	pg, err = f.appointmentsSvc.List(ctx, access.Unrestricted(), paging.Normalize(0, 10))
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if pg.TotalItems != 2 {
		t.Fatalf("admin list: got %d want 2", pg.TotalItems)
	}
}

func TestUpdateMergeAndRepoint(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mine := f.pet(t, "11111111111")
	other := f.pet(t, "22222222222")

	a, err := f.appointmentsSvc.Create(ctx, access.Unrestricted(), appointments.CreateInput{
		PetID: mine.ID, Description: "Control", Cost: 80, Date: time.Now(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	cost := 120.5
	updated, err := f.appointmentsSvc.Update(ctx, access.OwnedBy("11111111111"), a.ID, appointments.UpdateInput{
		Cost: &cost,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Cost != 120.5 || updated.Description != "Control" {
		t.Fatalf("merge failed: %+v", updated)
	}

	// mover el turno a una mascota ajena bajo scope restringido: not-found
	_, err = f.appointmentsSvc.Update(ctx, access.OwnedBy("11111111111"), a.ID, appointments.UpdateInput{
		PetID: &other.ID,
	})
	if !errors.Is(err, appointments.ErrNotFound) {
		t.Fatalf("repoint to foreign pet should be not-found, got %v", err)
	}
}

func TestInvalidInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.pet(t, "11111111111")

	cases := []appointments.CreateInput{
		{PetID: "", Description: "x", Cost: 1},
		{PetID: p.ID, Description: "", Cost: 1},
		{PetID: p.ID, Description: "x", Cost: -5},
	}
	for _, in := range cases {
		if _, err := f.appointmentsSvc.Create(ctx, access.Unrestricted(), in); !errors.Is(err, appointments.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", in, err)
		}
	}
}
