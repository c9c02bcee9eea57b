package server

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/KitchenMishap/huffcodes/compress"
)

var ErrNotFound = errors.New("not found")

// Table is a stored code table, keyed by symbol rendered as a string.
type Table struct {
	ID        string                    `json:"id"`
	Codes     map[string]string         `json:"codes"`
	Stats     compress.CompressionStats `json:"stats"`
	CreatedAt time.Time                 `json:"created_at"`
}

type TableRepo interface {
	Save(ctx context.Context, t *Table) error
	FindByID(ctx context.Context, id string) (*Table, error)
	List(ctx context.Context) ([]*Table, error)
}

type tableRepoInMemory struct {
	mu    sync.RWMutex
	store map[string]*Table
}

func NewTableRepoInMemory() TableRepo {
	return &tableRepoInMemory{store: make(map[string]*Table)}
}

func (r *tableRepoInMemory) Save(_ context.Context, t *Table) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.store[t.ID] = t
	return nil
}

func (r *tableRepoInMemory) FindByID(_ context.Context, id string) (*Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	return t, nil
}

// List returns tables oldest first.
func (r *tableRepoInMemory) List(_ context.Context) ([]*Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Table, 0, len(r.store))
	for _, t := range r.store {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
