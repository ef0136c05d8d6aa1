package kv_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"stocktracker/pkg/storage/kv"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func backends(t *testing.T) map[string]kv.Storage {
	t.Helper()

	fs, err := kv.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("file store: %v", err)
	}

	mr := miniredis.RunT(t)
	rs := kv.NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	return map[string]kv.Storage{
		"memory": kv.NewMemoryStore(),
		"file":   fs,
		"redis":  rs,
	}
}

func TestStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()

			if _, err := s.Get(ctx, "stockWatchlist"); !errors.Is(err, kv.ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}

			if err := s.Put(ctx, "stockWatchlist", []byte(`[{"symbol":"MSFT"}]`)); err != nil {
				t.Fatalf("put: %v", err)
			}
			if err := s.Put(ctx, "stockWatchlist", []byte(`[]`)); err != nil {
				t.Fatalf("overwrite: %v", err)
			}

			got, err := s.Get(ctx, "stockWatchlist")
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if string(got) != `[]` {
				t.Errorf("got %q, want []", got)
			}
		})
	}
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	s := kv.NewMemoryStore()

	v := []byte("abc")
	_ = s.Put(ctx, "k", v)
	v[0] = 'z'

	got, _ := s.Get(ctx, "k")
	if string(got) != "abc" {
		t.Errorf("stored value aliased caller buffer: %q", got)
	}
}

func TestFileStore_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	s, err := kv.NewFileStore(dir)
	if err != nil {
		t.Fatalf("file store: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := s.Put(context.Background(), "stockWatchlist", []byte(`["AAPL"]`)); err != nil {
			t.Fatalf("put: %v", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "stockWatchlist.json" {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Errorf("unexpected files: %v", names)
	}

	if _, err := os.Stat(filepath.Join(dir, "stockWatchlist.json")); err != nil {
		t.Errorf("value file missing: %v", err)
	}
}

func TestRedisStore_UsesPrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	s := kv.NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	defer s.Close()

	if err := s.Put(context.Background(), "stockWatchlist", []byte("[]")); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := mr.Get("stocktracker:stockWatchlist")
	if err != nil || got != "[]" {
		t.Errorf("raw key = %q, %v", got, err)
	}
}

func TestRedisStore_ServerDown(t *testing.T) {
	mr := miniredis.RunT(t)
	s := kv.NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1}))
	defer s.Close()
	mr.Close()

	_, err := s.Get(context.Background(), "stockWatchlist")
	if err == nil || errors.Is(err, kv.ErrNotFound) {
		t.Errorf("expected transport error, got %v", err)
	}
}
