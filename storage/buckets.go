package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/nats-io/nats.go/jetstream"
)

// Buckets opens document stores by bucket name on demand.
type Buckets struct {
	open func(ctx context.Context, bucket string) (*DocumentStore, error)

	mu     sync.Mutex
	stores map[string]*DocumentStore
}

// NewBuckets opens buckets through js.
func NewBuckets(js jetstream.JetStream) *Buckets {
	return &Buckets{
		open: func(ctx context.Context, bucket string) (*DocumentStore, error) {
			return NewDocumentStore(ctx, js, bucket)
		},
		stores: make(map[string]*DocumentStore),
	}
}

// StaticBuckets serves a fixed set of stores.
func StaticBuckets(stores ...*DocumentStore) *Buckets {
	b := &Buckets{stores: make(map[string]*DocumentStore)}
	for _, s := range stores {
		b.stores[s.Bucket()] = s
	}
	b.open = func(_ context.Context, bucket string) (*DocumentStore, error) {
		return nil, fmt.Errorf("open bucket %s: %w", bucket, ErrNotFound)
	}
	return b
}

// Store returns the store for bucket.
func (b *Buckets) Store(ctx context.Context, bucket string) (*DocumentStore, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if s, ok := b.stores[bucket]; ok {
		return s, nil
	}
	s, err := b.open(ctx, bucket)
	if err != nil {
		return nil, err
	}
	b.stores[bucket] = s
	return s, nil
}

// Get retrieves the document a locator names.
func (b *Buckets) Get(ctx context.Context, l Locator) (*Document, error) {
	s, err := b.Store(ctx, l.Bucket)
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, l.Key)
}
