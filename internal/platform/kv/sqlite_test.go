package kv_test

import (
	"context"
	"path/filepath"
	"testing"

	"vlx/internal/platform/kv"
)

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), ".vlx", "vlx.db")

	store, err := kv.NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if _, found, err := store.Get(ctx, "missing"); err != nil || found {
		t.Fatalf("absent key: found=%t err=%v", found, err)
	}
	if err := store.Set(ctx, "k", []byte("v1")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Set(ctx, "k", []byte("v2")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := kv.NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()
	got, found, err := reopened.Get(ctx, "k")
	if err != nil || !found {
		t.Fatalf("get after reopen: found=%t err=%v", found, err)
	}
	if string(got) != "v2" {
		t.Fatalf("last write should win, got %q", got)
	}
}

func TestOpenDrivers(t *testing.T) {
	t.Parallel()
	store, release, err := kv.Open(kv.DriverMemory, "")
	if err != nil {
		t.Fatalf("open memory: %v", err)
	}
	if _, ok := store.(*kv.MemoryStore); !ok {
		t.Fatalf("expected memory store, got %T", store)
	}
	if err := release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	if _, _, err := kv.Open("etcd", ""); err == nil {
		t.Fatalf("unknown driver must fail")
	}
}
