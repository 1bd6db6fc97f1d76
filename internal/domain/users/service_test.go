package users_test

import (
	"context"
	"errors"
	"testing"

	mem "petshop-api/internal/adapters/storage/memory"
	"petshop-api/internal/domain/users"
	"petshop-api/internal/ports/auth"
)

func newService() *users.Service {
	return users.NewService(mem.NewUsersRepo())
}

func TestRegisterAlwaysClient(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	err := svc.Register(ctx, users.RegisterInput{
		Name: "ana", CPF: "11111111111", Password: "secreta123",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	u, err := svc.Get(ctx, "11111111111")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if u.Role != auth.RoleClient {
		t.Fatalf("self-registration must end up CLIENT, got %s", u.Role)
	}
	if u.PasswordHash == "secreta123" || u.PasswordHash == "" {
		t.Fatal("password must be stored hashed")
	}
}

func TestRegisterDuplicate(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	in := users.RegisterInput{Name: "ana", CPF: "11111111111", Password: "secreta123"}
	if err := svc.Register(ctx, in); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := svc.Register(ctx, in); !errors.Is(err, users.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	// mismo nombre con otro CPF también choca: el login es por nombre
	in.CPF = "22222222222"
	if err := svc.Register(ctx, in); !errors.Is(err, users.ErrConflict) {
		t.Fatalf("expected ErrConflict on duplicate name, got %v", err)
	}
}

func TestRegisterInvalidInput(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	cases := []users.RegisterInput{
		{Name: "ana", CPF: "123", Password: "secreta123"},        // cpf corto
		{Name: "ana", CPF: "1111111111a", Password: "secreta123"}, // cpf no numérico
		{Name: "a", CPF: "11111111111", Password: "secreta123"},  // nombre corto
		{Name: "ana", CPF: "11111111111", Password: "123"},       // password corta
	}
	for _, in := range cases {
		if err := svc.Register(ctx, in); !errors.Is(err, users.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", in, err)
		}
	}
}

func TestLogin(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	if err := svc.Register(ctx, users.RegisterInput{
		Name: "ana", CPF: "11111111111", Password: "secreta123",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	u, err := svc.Login(ctx, "ana", "secreta123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if u.CPF != "11111111111" {
		t.Fatalf("unexpected user: %+v", u)
	}

	// nombre desconocido y password mala devuelven el mismo error
	if _, err := svc.Login(ctx, "nadie", "secreta123"); !errors.Is(err, users.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, "ana", "incorrecta"); !errors.Is(err, users.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUpdateMerge(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, users.CreateInput{
		Name: "ana", CPF: "11111111111", Password: "secreta123", Role: auth.RoleClient,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	name := "ana maria"
	u, err := svc.Update(ctx, "11111111111", users.UpdateInput{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if u.Name != "ana maria" {
		t.Fatalf("name not updated: %+v", u)
	}
	if u.Role != created.Role || u.PasswordHash != created.PasswordHash {
		t.Fatal("omitted fields must survive the merge")
	}

	// cambiar password rehashea
	pw := "nueva-pass"
	u2, err := svc.Update(ctx, "11111111111", users.UpdateInput{Password: &pw})
	if err != nil {
		t.Fatalf("update password: %v", err)
	}
	if u2.PasswordHash == created.PasswordHash {
		t.Fatal("password change must produce a new hash")
	}
	if _, err := svc.Login(ctx, "ana maria", "nueva-pass"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestUpdateMissing(t *testing.T) {
	svc := newService()
	name := "x y"
	if _, err := svc.Update(context.Background(), "99999999999", users.UpdateInput{Name: &name}); !errors.Is(err, users.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteIdempotent(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, users.CreateInput{
		Name: "ana", CPF: "11111111111", Password: "secreta123", Role: auth.RoleClient,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	deleted, err := svc.Delete(ctx, "11111111111")
	if err != nil || !deleted {
		t.Fatalf("first delete: %v %v", deleted, err)
	}
	deleted, err = svc.Delete(ctx, "11111111111")
	if err != nil || deleted {
		t.Fatalf("second delete should report false: %v %v", deleted, err)
	}
}

func TestEnsureAdmin(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	cfg := users.SeedConfig{CPF: "12345678900", Name: "admin", Password: "admin123"}

	created, err := users.EnsureAdmin(ctx, svc, cfg)
	if err != nil || !created {
		t.Fatalf("first seed: %v %v", created, err)
	}

	u, err := svc.Get(ctx, cfg.CPF)
	if err != nil {
		t.Fatalf("get seeded admin: %v", err)
	}
	if u.Role != auth.RoleAdmin {
		t.Fatalf("seeded user must be ADMIN, got %s", u.Role)
	}

	created, err = users.EnsureAdmin(ctx, svc, cfg)
	if err != nil || created {
		t.Fatalf("second seed should be a no-op: %v %v", created, err)
	}
}
