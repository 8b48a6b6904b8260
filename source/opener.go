// Package source opens ontology documents and reads them into graphs.
//
// An Opener resolves a locator to document bytes: local paths and file:
// IRIs, http(s) URLs, and kv://bucket/key documents held in NATS KV.
// NTriplesReader is the primary statement-level reader; AxiomReader reads
// the axiom-centric YAML format and is meant as the loader's fallback.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/c360studio/semstreams/pkg/retry"

	"github.com/c360studio/semontology/loader"
	"github.com/c360studio/semontology/rdf"
	"github.com/c360studio/semontology/storage"
)

// maxDocumentSize bounds remote documents.
const maxDocumentSize = 64 << 20

// acceptHeader lists the media types asked of remote servers.
const acceptHeader = "application/n-triples, application/yaml;q=0.9, text/turtle;q=0.5, */*;q=0.1"

var mediaTypes = map[string]rdf.Format{
	"application/n-triples": rdf.FormatNTriples,
	"text/plain":            rdf.FormatNTriples,
	"text/turtle":           rdf.FormatTurtle,
	"application/ld+json":   rdf.FormatJSONLD,
	"application/rdf+xml":   rdf.FormatRDFXML,
	"application/yaml":      rdf.FormatAxiomYAML,
	"application/x-yaml":    rdf.FormatAxiomYAML,
	"text/yaml":             rdf.FormatAxiomYAML,
}

// Document is an opened document.
type Document struct {
	Locator string
	Format  rdf.Format
	Content []byte
}

// Opener resolves locators to document bytes.
type Opener struct {
	client       *http.Client
	buckets      *storage.Buckets
	baseDir      string
	allowPrivate bool
	retry        retry.Config
	logger       *slog.Logger
}

// OpenerOption configures an Opener.
type OpenerOption func(*Opener)

// WithHTTPClient sets the client used for http(s) locators.
func WithHTTPClient(c *http.Client) OpenerOption {
	return func(o *Opener) { o.client = c }
}

// WithBuckets enables kv:// locators.
func WithBuckets(b *storage.Buckets) OpenerOption {
	return func(o *Opener) { o.buckets = b }
}

// WithBaseDir resolves relative paths against dir.
func WithBaseDir(dir string) OpenerOption {
	return func(o *Opener) { o.baseDir = dir }
}

// WithPrivateNetworks allows remote locators on loopback and private
// addresses, and plain http.
func WithPrivateNetworks(allow bool) OpenerOption {
	return func(o *Opener) { o.allowPrivate = allow }
}

// WithRetry sets the retry policy for transient remote failures.
func WithRetry(cfg retry.Config) OpenerOption {
	return func(o *Opener) { o.retry = cfg }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) OpenerOption {
	return func(o *Opener) { o.logger = l }
}

// NewOpener creates an Opener.
func NewOpener(opts ...OpenerOption) *Opener {
	o := &Opener{
		client: &http.Client{Timeout: 30 * time.Second},
		retry:  retry.Quick(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Open reads the document a locator names. A format hint other than
// FormatUnknown overrides detection.
func (o *Opener) Open(ctx context.Context, locator string, hint rdf.Format) (*Document, error) {
	var (
		doc *Document
		err error
	)
	switch {
	case storage.IsLocator(locator):
		doc, err = o.openKV(ctx, locator)
	case strings.HasPrefix(locator, "http://"), strings.HasPrefix(locator, "https://"):
		doc, err = o.openRemote(ctx, locator)
	default:
		doc, err = o.openFile(locator)
	}
	if err != nil {
		return nil, err
	}
	if hint != rdf.FormatUnknown {
		doc.Format = hint
	}
	return doc, nil
}

// Path returns the filesystem path of a local locator.
func (o *Opener) Path(locator string) (string, error) {
	path := locator
	if strings.HasPrefix(locator, "file:") {
		u, err := url.Parse(locator)
		if err != nil {
			return "", fmt.Errorf("parse %s: %w", locator, err)
		}
		path = u.Path
		if path == "" {
			path = u.Opaque
		}
		if u.Host != "" && u.Host != "localhost" {
			path = "/" + u.Host + path
		}
	}
	if !filepath.IsAbs(path) && o.baseDir != "" {
		path = filepath.Join(o.baseDir, path)
	}
	return filepath.Clean(path), nil
}

func (o *Opener) openFile(locator string) (*Document, error) {
	path, err := o.Path(locator)
	if err != nil {
		return nil, retry.NonRetryable(err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &Document{Locator: locator, Format: rdf.FormatForPath(path), Content: content}, nil
}

func (o *Opener) openKV(ctx context.Context, locator string) (*Document, error) {
	if o.buckets == nil {
		return nil, retry.NonRetryable(fmt.Errorf("open %s: no kv buckets configured", locator))
	}
	l, err := storage.ParseLocator(locator)
	if err != nil {
		return nil, retry.NonRetryable(err)
	}
	stored, err := retry.DoWithResult(ctx, o.retry, func() (*storage.Document, error) {
		d, err := o.buckets.Get(ctx, l)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, retry.NonRetryable(err)
		}
		return d, err
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", locator, err)
	}
	return &Document{Locator: locator, Format: stored.DocumentFormat(), Content: stored.Content}, nil
}

func (o *Opener) openRemote(ctx context.Context, locator string) (*Document, error) {
	if !o.allowPrivate {
		if err := ValidateURL(locator); err != nil {
			return nil, retry.NonRetryable(fmt.Errorf("open %s: %w", locator, err))
		}
	}

	doc, err := retry.DoWithResult(ctx, o.retry, func() (*Document, error) {
		return o.fetch(ctx, locator)
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", locator, err)
	}
	return doc, nil
}

func (o *Opener) fetch(ctx context.Context, locator string) (*Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return nil, retry.NonRetryable(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", acceptHeader)

	resp, err := o.client.Do(req)
	if err != nil {
		o.logger.Debug("Fetch failed", "url", locator, "error", err)
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return nil, retry.NonRetryable(fmt.Errorf("fetch: %s: %w", resp.Status, fs.ErrNotExist))
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("fetch: %s", resp.Status)
	case resp.StatusCode != http.StatusOK:
		return nil, retry.NonRetryable(fmt.Errorf("fetch: %s", resp.Status))
	}

	content, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(content) > maxDocumentSize {
		return nil, retry.NonRetryable(fmt.Errorf("document exceeds %d bytes", maxDocumentSize))
	}

	format := rdf.FormatUnknown
	if mt, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type")); err == nil {
		format = mediaTypes[mt]
	}
	if format == rdf.FormatUnknown {
		u, _ := url.Parse(locator)
		if u != nil {
			format = rdf.FormatForPath(u.Path)
		}
	}
	return &Document{Locator: locator, Format: format, Content: content}, nil
}

// documentSource adapts a loader source to an Opener call.
func (o *Opener) documentSource(ctx context.Context, src loader.DocumentSource) (*Document, error) {
	if src.Locator == "" {
		return nil, retry.NonRetryable(loader.ErrNoSource)
	}
	return o.Open(ctx, src.Locator, src.Format)
}
