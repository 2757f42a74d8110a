package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func testBackend(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()

	if _, err := b.Get(ctx, "missing"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("Get of missing key: err = %v, want ErrKeyNotFound", err)
	}

	if err := b.Set(ctx, "k", []byte(`[{"id":1}]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	blob, err := b.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(blob) != `[{"id":1}]` {
		t.Fatalf("Get returned %q", blob)
	}

	if err := b.Set(ctx, "k", []byte(`[]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	blob, err = b.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get after overwrite: %v", err)
	}
	if string(blob) != `[]` {
		t.Fatalf("overwrite not visible, got %q", blob)
	}

	if err := b.Remove(ctx, "k"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := b.Get(ctx, "k"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("Get after Remove: err = %v, want ErrKeyNotFound", err)
	}

	// Removing a key that never existed is not an error.
	if err := b.Remove(ctx, "never"); err != nil {
		t.Fatalf("Remove of missing key: %v", err)
	}
}

func TestMemoryBackend(t *testing.T) {
	b := NewMemory()
	defer b.Close()
	testBackend(t, b)
}

func TestMemoryBackend_CopiesBlobs(t *testing.T) {
	ctx := context.Background()
	b := NewMemory()
	defer b.Close()

	src := []byte(`["a"]`)
	if err := b.Set(ctx, "k", src); err != nil {
		t.Fatalf("Set: %v", err)
	}
	src[2] = 'b'

	blob, err := b.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(blob) != `["a"]` {
		t.Fatalf("stored blob aliased caller slice: %q", blob)
	}
	blob[2] = 'c'
	again, _ := b.Get(ctx, "k")
	if string(again) != `["a"]` {
		t.Fatalf("returned blob aliased stored slice: %q", again)
	}
}

func TestFileBackend(t *testing.T) {
	b, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	defer b.Close()
	testBackend(t, b)
}

func TestFileBackend_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	b, err := NewFile(dir)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	if err := b.Set(ctx, "resto_orders", []byte(`[{"id":7}]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	b.Close()

	b2, err := NewFile(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer b2.Close()
	blob, err := b2.Get(ctx, "resto_orders")
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if string(blob) != `[{"id":7}]` {
		t.Fatalf("Get after reopen returned %q", blob)
	}
}

func TestFileBackend_LeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	b, err := NewFile(dir)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	defer b.Close()
	if err := b.Set(ctx, "k", []byte(`{}`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "k.json.tmp")); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
}

func TestPebbleBackend(t *testing.T) {
	b, err := NewPebble(t.TempDir())
	if err != nil {
		t.Fatalf("NewPebble: %v", err)
	}
	defer b.Close()
	testBackend(t, b)
}

func TestOpen_UnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), "etcd", ""); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestOpen_Memory(t *testing.T) {
	b, err := Open(context.Background(), DriverMemory, "")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer b.Close()
	if _, ok := b.(*Memory); !ok {
		t.Fatalf("Open returned %T, want *Memory", b)
	}
}
