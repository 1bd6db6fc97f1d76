package password

import (
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("secreta123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("unexpected hash format: %s", hash)
	}

	if !Verify("secreta123", hash) {
		t.Fatal("expected correct password to verify")
	}
	if Verify("otracosa", hash) {
		t.Fatal("expected wrong password to fail")
	}
}

func TestHashUsesRandomSalt(t *testing.T) {
	h1, err := Hash("secreta123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	h2, err := Hash("secreta123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if h1 == h2 {
		t.Fatal("two hashes of the same password should differ (random salt)")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	for _, phc := range []string{
		"",
		"not-a-hash",
		"$argon2id$v=19$m=65536,t=3,p=1$salt",   // segmentos de menos
		"$argon2i$v=19$m=65536,t=3,p=1$aa$bb",   // variante equivocada
		"$argon2id$v=19$m=abc,t=3,p=1$aa$bb",    // params rotos
		"$argon2id$v=19$m=65536,t=3,p=1$!!$bb",  // base64 inválido
	} {
		if Verify("secreta123", phc) {
			t.Fatalf("expected Verify to reject %q", phc)
		}
	}
}
