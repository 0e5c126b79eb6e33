package services

import (
	"context"
	"errors"
	"sync"

	"shinyshoes/internal/domain"
	"shinyshoes/internal/repos"
)

type memStore struct {
	mu    sync.Mutex
	data  map[string][]byte
	loads int
	fail  error
}

func newMemStore() *memStore { return &memStore{data: map[string][]byte{}} }

func (m *memStore) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	if m.fail != nil {
		return nil, m.fail
	}
	v, ok := m.data[key]
	if !ok {
		return nil, repos.ErrCartNotFound
	}
	return v, nil
}

func (m *memStore) Save(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

type fakeOrders struct {
	mu      sync.Mutex
	created []domain.NewOrder
	list    []domain.Order
	err     error
	entered chan struct{}
	release chan struct{}
}

func (f *fakeOrders) Create(ctx context.Context, o domain.NewOrder) (int64, error) {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.created = append(f.created, o)
	return int64(len(f.created)), nil
}

func (f *fakeOrders) ListNewest(context.Context) ([]domain.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.list, nil
}

var errStoreDown = errors.New("store down")

func product(t interface{ Fatal(...any) }, id string) domain.Product {
	for _, p := range DefaultProducts() {
		if p.ID == id {
			return p
		}
	}
	t.Fatal("no seed product " + id)
	return domain.Product{}
}
