package tests

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/Ruthu543/Pneumonia-Prediction/internal/server/storage"
)

// Save -> Open круг, затирание одноимённого файла, URL
func TestLocalStore_SaveOpenOverwrite(t *testing.T) {
	ctx := context.Background()

	store, err := storage.NewLocalStore(t.TempDir(), "/static/uploads")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := store.Save(ctx, "chest.jpeg", strings.NewReader("first")); err != nil {
		t.Fatalf("save: %v", err)
	}

	// одноимённый файл затирается молча
	if err := store.Save(ctx, "chest.jpeg", strings.NewReader("second")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	rc, err := store.Open(ctx, "chest.jpeg")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()

	b, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "second" {
		t.Fatalf("expected last write to win, got %q", b)
	}

	url, err := store.URL(ctx, "chest.jpeg")
	if err != nil {
		t.Fatalf("url: %v", err)
	}
	if url != "/static/uploads/chest.jpeg" {
		t.Fatalf("unexpected url: %q", url)
	}
}

// Отсутствующий объект
func TestLocalStore_Open_Missing(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir(), "/static/uploads")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := store.Open(context.Background(), "missing.jpeg"); err == nil {
		t.Fatal("expected error for missing object")
	}
}
