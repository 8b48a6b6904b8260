// Package storage keeps ontology documents in NATS JetStream key-value
// buckets. Documents are addressed by kv://<bucket>/<key> locators.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/c360studio/semontology/rdf"
)

// DefaultBucket is the bucket used when none is configured.
const DefaultBucket = "ONTOLOGY_DOCUMENTS"

// Scheme is the locator scheme of stored documents.
const Scheme = "kv://"

// Locator names a stored document.
type Locator struct {
	Bucket string
	Key    string
}

// String returns the kv:// form of the locator.
func (l Locator) String() string {
	return Scheme + l.Bucket + "/" + l.Key
}

// IsLocator reports whether s uses the kv:// scheme.
func IsLocator(s string) bool { return strings.HasPrefix(s, Scheme) }

// ParseLocator parses kv://<bucket>/<key>.
func ParseLocator(s string) (Locator, error) {
	rest, ok := strings.CutPrefix(s, Scheme)
	if !ok {
		return Locator{}, fmt.Errorf("%w: %s", ErrInvalidLocator, s)
	}
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return Locator{}, fmt.Errorf("%w: %s", ErrInvalidLocator, s)
	}
	return Locator{Bucket: bucket, Key: key}, nil
}

// Document is a stored ontology document.
type Document struct {
	Key       string    `json:"key"`
	IRI       string    `json:"iri,omitempty"`
	Format    string    `json:"format"`
	Content   []byte    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`

	Revision uint64 `json:"-"`
}

// DocumentFormat returns the parsed document format.
func (d *Document) DocumentFormat() rdf.Format {
	f, err := rdf.ParseFormat(d.Format)
	if err != nil {
		return rdf.FormatForPath(d.Key)
	}
	return f
}

// DocumentStore provides document storage operations backed by NATS KV.
type DocumentStore struct {
	kv jetstream.KeyValue
}

// NewDocumentStore opens the bucket, creating it if it doesn't exist.
func NewDocumentStore(ctx context.Context, js jetstream.JetStream, bucket string) (*DocumentStore, error) {
	kv, err := getOrCreateBucket(ctx, js, bucket)
	if err != nil {
		return nil, fmt.Errorf("create %s bucket: %w", bucket, err)
	}
	return &DocumentStore{kv: kv}, nil
}

// NewDocumentStoreFromKV wraps an open bucket.
func NewDocumentStoreFromKV(kv jetstream.KeyValue) *DocumentStore {
	return &DocumentStore{kv: kv}
}

func getOrCreateBucket(ctx context.Context, js jetstream.JetStream, name string) (jetstream.KeyValue, error) {
	kv, err := js.KeyValue(ctx, name)
	if err == nil {
		return kv, nil
	}
	// Bucket doesn't exist, create it
	return js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      name,
		Description: fmt.Sprintf("Ontology documents (%s)", strings.ToLower(name)),
		History:     5, // Keep last 5 revisions
	})
}

// Bucket returns the bucket name.
func (s *DocumentStore) Bucket() string { return s.kv.Bucket() }

// Locator returns the locator of key in this bucket.
func (s *DocumentStore) Locator(key string) Locator {
	return Locator{Bucket: s.kv.Bucket(), Key: key}
}

// Put stores doc under doc.Key and returns the new revision.
func (s *DocumentStore) Put(ctx context.Context, doc *Document) (uint64, error) {
	if doc.Key == "" {
		return 0, errors.New("put document: empty key")
	}
	if doc.Format == "" {
		doc.Format = rdf.FormatForPath(doc.Key).String()
	}
	doc.UpdatedAt = time.Now()

	data, err := json.Marshal(doc)
	if err != nil {
		return 0, fmt.Errorf("marshal document: %w", err)
	}
	rev, err := s.kv.Put(ctx, doc.Key, data)
	if err != nil {
		return 0, fmt.Errorf("store document: %w", err)
	}
	doc.Revision = rev
	return rev, nil
}

// Get retrieves a document by key.
func (s *DocumentStore) Get(ctx context.Context, key string) (*Document, error) {
	entry, err := s.kv.Get(ctx, key)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("get %s: %w", s.Locator(key), ErrNotFound)
		}
		return nil, fmt.Errorf("get document: %w", err)
	}

	var d Document
	if err := json.Unmarshal(entry.Value(), &d); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	d.Revision = entry.Revision()
	return &d, nil
}

// Delete removes a document.
func (s *DocumentStore) Delete(ctx context.Context, key string) error {
	if err := s.kv.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// List returns the keys of all stored documents.
func (s *DocumentStore) List(ctx context.Context) ([]string, error) {
	keys, err := s.kv.Keys(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoKeysFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("list document keys: %w", err)
	}
	return keys, nil
}

// isNotFound checks if an error indicates a key was not found.
func isNotFound(err error) bool {
	return errors.Is(err, jetstream.ErrKeyNotFound) ||
		errors.Is(err, jetstream.ErrKeyDeleted) ||
		(err != nil && strings.Contains(err.Error(), "key not found"))
}
