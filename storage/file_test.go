package storage

import (
	"context"
	"errors"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	if _, err := store.Get(ctx, "wolio.auth.token"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing key error = %v, want ErrNotFound", err)
	}

	if err := store.Set(ctx, "wolio.auth.token", []byte("tok-1")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	value, err := store.Get(ctx, "wolio.auth.token")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(value) != "tok-1" {
		t.Fatalf("value = %q, want tok-1", value)
	}

	if err := store.Set(ctx, "wolio.auth.token", []byte("tok-2")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	value, _ = store.Get(ctx, "wolio.auth.token")
	if string(value) != "tok-2" {
		t.Fatalf("value = %q, want tok-2", value)
	}

	if err := store.Remove(ctx, "wolio.auth.token"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := store.Get(ctx, "wolio.auth.token"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("removed key error = %v, want ErrNotFound", err)
	}
}

func TestFileStoreRemoveMissingKeyIsNoError(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := store.Remove(context.Background(), "never.written"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
}

func TestFileStoreEscapesKeys(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	// A key with path characters must not escape the directory.
	key := "../outside/..//key"
	if err := store.Set(ctx, key, []byte("x")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	value, err := store.Get(ctx, key)
	if err != nil || string(value) != "x" {
		t.Fatalf("Get = %q, %v", value, err)
	}
}

func TestFileStoreCanceledContext(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := store.Set(ctx, "k", []byte("v")); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Set error = %v, want ErrUnavailable", err)
	}
	if _, err := store.Get(ctx, "k"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Get error = %v, want ErrUnavailable", err)
	}
}

func TestNewFileStoreRejectsEmptyDir(t *testing.T) {
	if _, err := NewFileStore(""); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("error = %v, want ErrUnavailable", err)
	}
}
