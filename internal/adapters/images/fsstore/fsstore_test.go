package fsstore

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"petshop-api/internal/ports/images"
)

func TestSaveOpenRemove(t *testing.T) {
	st := New(t.TempDir())
	ctx := context.Background()

	if err := st.Save(ctx, "client_1_foto.jpg", strings.NewReader("payload")); err != nil {
		t.Fatalf("save: %v", err)
	}

	rc, err := st.Open(ctx, "client_1_foto.jpg")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	data, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(data) != "payload" {
		t.Fatalf("unexpected content: %q", data)
	}

	if err := st.Remove(ctx, "client_1_foto.jpg"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := st.Open(ctx, "client_1_foto.jpg"); !errors.Is(err, images.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after remove, got %v", err)
	}
}

func TestOpenMissing(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Open(context.Background(), "nope.jpg"); !errors.Is(err, images.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRemoveMissingIsNoop(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Remove(context.Background(), "nope.jpg"); err != nil {
		t.Fatalf("remove missing should be a no-op, got %v", err)
	}
}

func TestSaveFlattensPath(t *testing.T) {
	st := New(t.TempDir())
	ctx := context.Background()

	// un nombre con directorios no puede escaparse del dir base
	if err := st.Save(ctx, "../../etc/passwd", strings.NewReader("x")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := st.Open(ctx, "passwd"); err != nil {
		t.Fatalf("expected flattened name to be readable: %v", err)
	}
}
