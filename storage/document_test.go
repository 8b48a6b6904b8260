package storage

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semontology/rdf"
)

// fakeKV is an in-memory bucket. Methods the store does not use are left
// to the embedded interface.
type fakeKV struct {
	jetstream.KeyValue

	mu     sync.Mutex
	bucket string
	data   map[string][]byte
	rev    uint64
	getErr error
}

func newFakeKV(bucket string) *fakeKV {
	return &fakeKV{bucket: bucket, data: make(map[string][]byte)}
}

func (f *fakeKV) Bucket() string { return f.bucket }

func (f *fakeKV) Put(_ context.Context, key string, value []byte) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rev++
	f.data[key] = value
	return f.rev, nil
}

func (f *fakeKV) Get(_ context.Context, key string) (jetstream.KeyValueEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	v, ok := f.data[key]
	if !ok {
		return nil, jetstream.ErrKeyNotFound
	}
	return &fakeEntry{bucket: f.bucket, key: key, value: v, revision: f.rev}, nil
}

func (f *fakeKV) Delete(_ context.Context, key string, _ ...jetstream.KVDeleteOpt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

func (f *fakeKV) Keys(_ context.Context, _ ...jetstream.WatchOpt) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.data) == 0 {
		return nil, jetstream.ErrNoKeysFound
	}
	keys := make([]string, 0, len(f.data))
	for k := range f.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

type fakeEntry struct {
	bucket   string
	key      string
	value    []byte
	revision uint64
}

func (e *fakeEntry) Bucket() string                  { return e.bucket }
func (e *fakeEntry) Key() string                     { return e.key }
func (e *fakeEntry) Value() []byte                   { return e.value }
func (e *fakeEntry) Revision() uint64                { return e.revision }
func (e *fakeEntry) Created() time.Time              { return time.Now() }
func (e *fakeEntry) Delta() uint64                   { return 0 }
func (e *fakeEntry) Operation() jetstream.KeyValueOp { return jetstream.KeyValuePut }

func TestParseLocator(t *testing.T) {
	tests := []struct {
		input   string
		want    Locator
		wantErr bool
	}{
		{input: "kv://ONTO/pizza.nt", want: Locator{Bucket: "ONTO", Key: "pizza.nt"}},
		{input: "kv://ONTO/a/b.yaml", want: Locator{Bucket: "ONTO", Key: "a/b.yaml"}},
		{input: "kv://ONTO", wantErr: true},
		{input: "kv:///key", wantErr: true},
		{input: "kv://ONTO/", wantErr: true},
		{input: "file:///tmp/x.nt", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseLocator(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidLocator)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.input, got.String())
		})
	}
	assert.True(t, IsLocator("kv://x/y"))
	assert.False(t, IsLocator("http://x/y"))
}

func TestDocumentStore(t *testing.T) {
	ctx := context.Background()
	s := NewDocumentStoreFromKV(newFakeKV("ONTO"))

	keys, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)

	doc := &Document{Key: "pizza.nt", IRI: "http://example.org/pizza", Content: []byte("<a> <b> <c> .\n")}
	rev, err := s.Put(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), rev)
	assert.Equal(t, "ntriples", doc.Format)
	assert.False(t, doc.UpdatedAt.IsZero())

	got, err := s.Get(ctx, "pizza.nt")
	require.NoError(t, err)
	assert.Equal(t, doc.Content, got.Content)
	assert.Equal(t, doc.IRI, got.IRI)
	assert.Equal(t, rdf.FormatNTriples, got.DocumentFormat())
	assert.Equal(t, rev, got.Revision)

	_, err = s.Put(ctx, &Document{Key: "other.yaml"})
	require.NoError(t, err)
	keys, err = s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"other.yaml", "pizza.nt"}, keys)

	require.NoError(t, s.Delete(ctx, "pizza.nt"))
	_, err = s.Get(ctx, "pizza.nt")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "kv://ONTO/pizza.nt")

	_, err = s.Put(ctx, &Document{})
	assert.Error(t, err)
}

func TestDocumentStoreErrors(t *testing.T) {
	kv := newFakeKV("ONTO")
	kv.getErr = errors.New("nats: timeout")
	s := NewDocumentStoreFromKV(kv)

	_, err := s.Get(context.Background(), "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	kv.getErr = nil
	kv.data["broken"] = []byte("{")
	_, err = s.Get(context.Background(), "broken")
	assert.ErrorContains(t, err, "unmarshal document")
}

func TestDocumentFormatFallsBackToKey(t *testing.T) {
	d := &Document{Key: "a.yaml", Format: "bogus"}
	assert.Equal(t, rdf.FormatAxiomYAML, d.DocumentFormat())
}

func TestStaticBuckets(t *testing.T) {
	ctx := context.Background()
	s := NewDocumentStoreFromKV(newFakeKV("ONTO"))
	_, err := s.Put(ctx, &Document{Key: "a.nt", Content: []byte("x")})
	require.NoError(t, err)

	b := StaticBuckets(s)
	doc, err := b.Get(ctx, Locator{Bucket: "ONTO", Key: "a.nt"})
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), doc.Content)

	_, err = b.Get(ctx, Locator{Bucket: "MISSING", Key: "a.nt"})
	assert.ErrorIs(t, err, ErrNotFound)
}
