package source

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/c360studio/semstreams/pkg/retry"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semontology/rdf"
	"github.com/c360studio/semontology/storage"
)

const pizzaNT = `<http://example.org/pizza> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#Ontology> .
<http://example.org/pizza#Pizza> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#Class> .
`

func fastRetry() retry.Config {
	return retry.Config{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestOpenFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "pizza.nt", pizzaNT)
	ctx := context.Background()

	t.Run("absolute path", func(t *testing.T) {
		doc, err := NewOpener().Open(ctx, path, rdf.FormatUnknown)
		require.NoError(t, err)
		assert.Equal(t, rdf.FormatNTriples, doc.Format)
		assert.Equal(t, pizzaNT, string(doc.Content))
	})

	t.Run("file url", func(t *testing.T) {
		doc, err := NewOpener().Open(ctx, "file://"+path, rdf.FormatUnknown)
		require.NoError(t, err)
		assert.Equal(t, "file://"+path, doc.Locator)
	})

	t.Run("relative to base dir", func(t *testing.T) {
		doc, err := NewOpener(WithBaseDir(dir)).Open(ctx, "pizza.nt", rdf.FormatUnknown)
		require.NoError(t, err)
		assert.Equal(t, rdf.FormatNTriples, doc.Format)
	})

	t.Run("hint overrides extension", func(t *testing.T) {
		doc, err := NewOpener().Open(ctx, path, rdf.FormatTurtle)
		require.NoError(t, err)
		assert.Equal(t, rdf.FormatTurtle, doc.Format)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := NewOpener().Open(ctx, filepath.Join(dir, "absent.nt"), rdf.FormatUnknown)
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})
}

func TestPath(t *testing.T) {
	tests := []struct {
		name    string
		baseDir string
		locator string
		want    string
	}{
		{name: "plain", locator: "/data/pizza.nt", want: "/data/pizza.nt"},
		{name: "file url", locator: "file:///data/pizza.nt", want: "/data/pizza.nt"},
		{name: "file url with host", locator: "file://data/pizza.nt", want: "/data/pizza.nt"},
		{name: "localhost", locator: "file://localhost/data/pizza.nt", want: "/data/pizza.nt"},
		{name: "relative", baseDir: "/onto", locator: "food/pizza.nt", want: "/onto/food/pizza.nt"},
		{name: "cleaned", locator: "/data/../data/./pizza.nt", want: "/data/pizza.nt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewOpener(WithBaseDir(tt.baseDir)).Path(tt.locator)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOpenRemote(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/pizza", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Contains(t, r.Header.Get("Accept"), "application/n-triples")
		w.Header().Set("Content-Type", "application/n-triples; charset=utf-8")
		_, _ = w.Write([]byte(pizzaNT))
	})
	mux.HandleFunc("/food.ttl", func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write([]byte("@prefix : <x#> ."))
	})
	var flaky atomic.Int32
	mux.HandleFunc("/flaky", func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		if flaky.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/turtle")
		_, _ = w.Write([]byte("@prefix : <x#> ."))
	})
	mux.HandleFunc("/gone", func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/forbidden", func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	ctx := context.Background()
	o := NewOpener(WithPrivateNetworks(true), WithRetry(fastRetry()), WithHTTPClient(srv.Client()))

	tests := []struct {
		name      string
		path      string
		format    rdf.Format
		calls     int32
		wantErr   error
		permanent bool
	}{
		{name: "media type", path: "/pizza", format: rdf.FormatNTriples, calls: 1},
		{name: "extension fallback", path: "/food.ttl", format: rdf.FormatTurtle, calls: 1},
		{name: "transient failures retried", path: "/flaky", format: rdf.FormatTurtle, calls: 3},
		{name: "not found", path: "/gone", calls: 1, wantErr: fs.ErrNotExist, permanent: true},
		{name: "other status", path: "/forbidden", calls: 1, permanent: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls.Store(0)
			doc, err := o.Open(ctx, srv.URL+tt.path, rdf.FormatUnknown)
			assert.Equal(t, tt.calls, calls.Load())
			if tt.permanent {
				require.Error(t, err)
				assert.True(t, retry.IsNonRetryable(err))
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.format, doc.Format)
		})
	}

	t.Run("private network blocked by default", func(t *testing.T) {
		calls.Store(0)
		_, err := NewOpener().Open(ctx, srv.URL+"/pizza", rdf.FormatUnknown)
		assert.ErrorIs(t, err, ErrBlockedURL)
		assert.Zero(t, calls.Load())
	})
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{url: "https://example.org/pizza.nt"},
		{url: "https://93.184.216.34/pizza.nt"},
		{url: "http://example.org/pizza.nt", wantErr: true},
		{url: "ftp://example.org/pizza.nt", wantErr: true},
		{url: "https://localhost/pizza.nt", wantErr: true},
		{url: "https://build.local/pizza.nt", wantErr: true},
		{url: "https://ontologies.internal/pizza.nt", wantErr: true},
		{url: "https://127.0.0.1/pizza.nt", wantErr: true},
		{url: "https://10.1.2.3/pizza.nt", wantErr: true},
		{url: "https://192.168.0.10/pizza.nt", wantErr: true},
		{url: "https://169.254.169.254/latest", wantErr: true},
		{url: "https://100.64.0.1/pizza.nt", wantErr: true},
		{url: "https://[::1]/pizza.nt", wantErr: true},
		{url: "https://[fd00::1]/pizza.nt", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrBlockedURL)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// memoryKV is an in-memory bucket serving Get and Put.
type memoryKV struct {
	jetstream.KeyValue

	mu     sync.Mutex
	bucket string
	data   map[string][]byte
	fails  int
}

func (m *memoryKV) Bucket() string { return m.bucket }

func (m *memoryKV) Put(_ context.Context, key string, value []byte) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return uint64(len(m.data)), nil
}

func (m *memoryKV) Get(_ context.Context, key string) (jetstream.KeyValueEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fails > 0 {
		m.fails--
		return nil, errors.New("nats: timeout")
	}
	v, ok := m.data[key]
	if !ok {
		return nil, jetstream.ErrKeyNotFound
	}
	return &memoryEntry{value: v}, nil
}

type memoryEntry struct {
	jetstream.KeyValueEntry
	value []byte
}

func (e *memoryEntry) Value() []byte    { return e.value }
func (e *memoryEntry) Revision() uint64 { return 1 }

func TestOpenKV(t *testing.T) {
	ctx := context.Background()
	kv := &memoryKV{bucket: "ONTO", data: make(map[string][]byte)}
	store := storage.NewDocumentStoreFromKV(kv)
	_, err := store.Put(ctx, &storage.Document{Key: "pizza.nt", IRI: "http://example.org/pizza", Content: []byte(pizzaNT)})
	require.NoError(t, err)

	o := NewOpener(WithBuckets(storage.StaticBuckets(store)), WithRetry(fastRetry()))

	t.Run("found", func(t *testing.T) {
		doc, err := o.Open(ctx, "kv://ONTO/pizza.nt", rdf.FormatUnknown)
		require.NoError(t, err)
		assert.Equal(t, rdf.FormatNTriples, doc.Format)
		assert.Equal(t, pizzaNT, string(doc.Content))
	})

	t.Run("transient errors retried", func(t *testing.T) {
		kv.fails = 2
		_, err := o.Open(ctx, "kv://ONTO/pizza.nt", rdf.FormatUnknown)
		require.NoError(t, err)
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := o.Open(ctx, "kv://ONTO/absent.nt", rdf.FormatUnknown)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.True(t, retry.IsNonRetryable(err))
	})

	t.Run("no buckets", func(t *testing.T) {
		_, err := NewOpener().Open(ctx, "kv://ONTO/pizza.nt", rdf.FormatUnknown)
		assert.Error(t, err)
	})
}
