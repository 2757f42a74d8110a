package storage

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/cockroachdb/pebble"
)

// Pebble is an embedded LSM-backed Backend for deployments that outgrow
// flat files but still run single-node.
type Pebble struct {
	db *pebble.DB
}

func NewPebble(dir string) (*Pebble, error) {
	if dir == "" {
		dir = "data"
	}
	d, err := pebble.Open(filepath.Clean(dir), &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("pebble open: %w", err)
	}
	return &Pebble{db: d}, nil
}

func (p *Pebble) Get(_ context.Context, key string) ([]byte, error) {
	v, closer, err := p.db.Get([]byte(key))
	if err == pebble.ErrNotFound {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("pebble get %s: %w", key, err)
	}
	defer closer.Close()
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (p *Pebble) Set(_ context.Context, key string, blob []byte) error {
	if err := p.db.Set([]byte(key), blob, pebble.Sync); err != nil {
		return fmt.Errorf("pebble set %s: %w", key, err)
	}
	return nil
}

func (p *Pebble) Remove(_ context.Context, key string) error {
	if err := p.db.Delete([]byte(key), pebble.Sync); err != nil {
		return fmt.Errorf("pebble delete %s: %w", key, err)
	}
	return nil
}

func (p *Pebble) Close() error { return p.db.Close() }
