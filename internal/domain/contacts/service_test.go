package contacts_test

import (
	"context"
	"errors"
	"testing"

	"petshop-api/internal/adapters/images/fsstore"
	mem "petshop-api/internal/adapters/storage/memory"
	"petshop-api/internal/domain/access"
	"petshop-api/internal/domain/clients"
	"petshop-api/internal/domain/contacts"
	"petshop-api/internal/domain/paging"
)

func newFixture(t *testing.T) (*clients.Service, *contacts.Service) {
	t.Helper()
	cr := mem.NewClientsRepo()
	clientsSvc := clients.NewService(cr, fsstore.New(t.TempDir()))
	return clientsSvc, contacts.NewService(mem.NewContactsRepo(cr), clientsSvc)
}

func TestCRUD(t *testing.T) {
	clientsSvc, svc := newFixture(t)
	ctx := context.Background()

	c, err := clientsSvc.Create(ctx, access.Unrestricted(), clients.CreateInput{
		Name: "Ana", CPF: "11111111111",
	})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}

	ct, err := svc.Create(ctx, access.Unrestricted(), contacts.CreateInput{
		ClientID: c.ID, Tag: "personal", Type: "email", Value: "ana@example.com",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// padre inexistente: not-found
	if _, err := svc.Create(ctx, access.Unrestricted(), contacts.CreateInput{
		ClientID: "no-existe", Type: "email", Value: "x@example.com",
	}); !errors.Is(err, contacts.ErrNotFound) {
		t.Fatalf("missing parent should be not-found, got %v", err)
	}

	value := "nueva@example.com"
	updated, err := svc.Update(ctx, access.Unrestricted(), ct.ID, contacts.UpdateInput{Value: &value})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Value != value || updated.Type != "email" || updated.Tag != "personal" {
		t.Fatalf("merge failed: %+v", updated)
	}

	pg, err := svc.List(ctx, access.Unrestricted(), paging.Normalize(0, 10))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if pg.TotalItems != 1 {
		t.Fatalf("list: got %d want 1", pg.TotalItems)
	}

	deleted, err := svc.Delete(ctx, access.Unrestricted(), ct.ID)
	if err != nil || !deleted {
		t.Fatalf("delete: %v %v", deleted, err)
	}
	deleted, err = svc.Delete(ctx, access.Unrestricted(), ct.ID)
	if err != nil || deleted {
		t.Fatalf("second delete should report false: %v %v", deleted, err)
	}
}

func TestInvalidInput(t *testing.T) {
	clientsSvc, svc := newFixture(t)
	ctx := context.Background()

	c, err := clientsSvc.Create(ctx, access.Unrestricted(), clients.CreateInput{
		Name: "Ana", CPF: "11111111111",
	})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}

	cases := []contacts.CreateInput{
		{ClientID: "", Type: "email", Value: "x@example.com"},
		{ClientID: c.ID, Type: "", Value: "x@example.com"},
		{ClientID: c.ID, Type: "email", Value: ""},
	}
	for _, in := range cases {
		if _, err := svc.Create(ctx, access.Unrestricted(), in); !errors.Is(err, contacts.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", in, err)
		}
	}
}
