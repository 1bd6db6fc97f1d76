package pets_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"petshop-api/internal/adapters/images/fsstore"
	mem "petshop-api/internal/adapters/storage/memory"
	"petshop-api/internal/domain/access"
	"petshop-api/internal/domain/clients"
	"petshop-api/internal/domain/paging"
	"petshop-api/internal/domain/pets"
)

type fixture struct {
	clientsSvc *clients.Service
	petsSvc    *pets.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	imgs := fsstore.New(t.TempDir())
	cr := mem.NewClientsRepo()
	clientsSvc := clients.NewService(cr, imgs)
	petsSvc := pets.NewService(mem.NewPetsRepo(cr), clientsSvc, imgs)
	return fixture{clientsSvc: clientsSvc, petsSvc: petsSvc}
}

func (f fixture) client(t *testing.T, cpf string) clients.Client {
	t.Helper()
	c, err := f.clientsSvc.Create(context.Background(), access.Unrestricted(), clients.CreateInput{
		Name: "Cliente", CPF: cpf,
	})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	return c
}

func TestCreateChecksParentOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.client(t, "11111111111")

	// dueño crea bajo su propio cliente
	p, err := f.petsSvc.Create(ctx, access.OwnedBy("11111111111"), pets.CreateInput{
		ClientID: owner.ID, Name: "Milo",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == "" || p.ClientID != owner.ID {
		t.Fatalf("unexpected pet: %+v", p)
	}

	// otro CLIENT apunta al mismo cliente: not-found, nunca forbidden
	_, err = f.petsSvc.Create(ctx, access.OwnedBy("22222222222"), pets.CreateInput{
		ClientID: owner.ID, Name: "Ajeno",
	})
	if !errors.Is(err, pets.ErrNotFound) {
		t.Fatalf("foreign parent should be not-found, got %v", err)
	}

	// cliente inexistente: misma respuesta
	_, err = f.petsSvc.Create(ctx, access.Unrestricted(), pets.CreateInput{
		ClientID: "no-existe", Name: "Fantasma",
	})
	if !errors.Is(err, pets.ErrNotFound) {
		t.Fatalf("missing parent should be not-found, got %v", err)
	}
}

func TestGetFollowsOwnershipChain(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.client(t, "11111111111")

	p, err := f.petsSvc.Create(ctx, access.Unrestricted(), pets.CreateInput{
		ClientID: owner.ID, Name: "Milo",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := f.petsSvc.Get(ctx, access.OwnedBy("11111111111"), p.ID); err != nil {
		t.Fatalf("owner get: %v", err)
	}
	if _, err := f.petsSvc.Get(ctx, access.OwnedBy("22222222222"), p.ID); !errors.Is(err, pets.ErrNotFound) {
		t.Fatalf("foreign get should be not-found, got %v", err)
	}
	if _, err := f.petsSvc.Get(ctx, access.Unrestricted(), p.ID); err != nil {
		t.Fatalf("admin get: %v", err)
	}
}

func TestListScopedAndByClient(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mine := f.client(t, "11111111111")
	other := f.client(t, "22222222222")

	for _, c := range []clients.Client{mine, mine, other} {
		if _, err := f.petsSvc.Create(ctx, access.Unrestricted(), pets.CreateInput{
			ClientID: c.ID, Name: "Pet",
		}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	pg, err := f.petsSvc.List(ctx, access.OwnedBy("11111111111"), paging.Normalize(0, 10))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if pg.TotalItems != 2 {
		t.Fatalf("restricted list: got %d want 2", pg.TotalItems)
	}

	// filtro por cliente ajeno bajo scope restringido: vacío
	pg, err = f.petsSvc.ListByClient(ctx, access.OwnedBy("11111111111"), other.ID, paging.Normalize(0, 10))
	if err != nil {
		t.Fatalf("list by client: %v", err)
	}
	if pg.TotalItems != 0 {
		t.Fatalf("foreign client filter should be empty, got %d", pg.TotalItems)
	}

	pg, err = f.petsSvc.ListByClient(ctx, access.Unrestricted(), mine.ID, paging.Normalize(0, 10))
	if err != nil {
		t.Fatalf("list by client: %v", err)
	}
	if pg.TotalItems != 2 {
		t.Fatalf("admin filter by client: got %d want 2", pg.TotalItems)
	}
}

func TestUpdateMergeAndReparent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mine := f.client(t, "11111111111")
	other := f.client(t, "22222222222")

	birth := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)
	p, err := f.petsSvc.Create(ctx, access.Unrestricted(), pets.CreateInput{
		ClientID: mine.ID, Name: "Milo", BirthDate: &birth,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	name := "Milo II"
	updated, err := f.petsSvc.Update(ctx, access.OwnedBy("11111111111"), p.ID, pets.UpdateInput{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Milo II" {
		t.Fatalf("name not merged: %+v", updated)
	}
	if updated.BirthDate == nil || !updated.BirthDate.Equal(birth) {
		t.Fatal("omitted birth date must survive the merge")
	}

	// re-apuntar a un cliente ajeno bajo scope restringido: not-found
	_, err = f.petsSvc.Update(ctx, access.OwnedBy("11111111111"), p.ID, pets.UpdateInput{ClientID: &other.ID})
	if !errors.Is(err, pets.ErrNotFound) {
		t.Fatalf("reparent to foreign client should be not-found, got %v", err)
	}

	// el admin sí puede
	updated, err = f.petsSvc.Update(ctx, access.Unrestricted(), p.ID, pets.UpdateInput{ClientID: &other.ID})
	if err != nil {
		t.Fatalf("admin reparent: %v", err)
	}
	if updated.ClientID != other.ID {
		t.Fatalf("admin reparent failed: %+v", updated)
	}
}

func TestDeleteScoped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.client(t, "11111111111")

	p, err := f.petsSvc.Create(ctx, access.Unrestricted(), pets.CreateInput{
		ClientID: owner.ID, Name: "Milo",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	deleted, err := f.petsSvc.Delete(ctx, access.OwnedBy("22222222222"), p.ID)
	if err != nil || deleted {
		t.Fatalf("foreign delete should be a no-op: %v %v", deleted, err)
	}
	deleted, err = f.petsSvc.Delete(ctx, access.OwnedBy("11111111111"), p.ID)
	if err != nil || !deleted {
		t.Fatalf("owner delete: %v %v", deleted, err)
	}
	deleted, err = f.petsSvc.Delete(ctx, access.Unrestricted(), p.ID)
	if err != nil || deleted {
		t.Fatalf("second delete should report false: %v %v", deleted, err)
	}
}
