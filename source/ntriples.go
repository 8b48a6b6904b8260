package source

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/c360studio/semontology/loader"
	"github.com/c360studio/semontology/rdf"
)

// NTriplesReader is the primary graph reader. Documents in any other
// syntax, or that fail to parse, are reported with loader.UnsupportedFormat
// so the loader can try its secondary reader.
type NTriplesReader struct {
	opener *Opener
	logger *slog.Logger
}

var _ loader.GraphReader = (*NTriplesReader)(nil)

// NewNTriplesReader creates a reader over opener.
func NewNTriplesReader(opener *Opener) *NTriplesReader {
	return &NTriplesReader{opener: opener, logger: opener.logger}
}

// ReadGraph implements loader.GraphReader.
func (r *NTriplesReader) ReadGraph(ctx context.Context, src loader.DocumentSource) (*rdf.Graph, rdf.Format, error) {
	doc, err := r.opener.documentSource(ctx, src)
	if err != nil {
		return nil, rdf.FormatUnknown, err
	}
	return r.Parse(doc)
}

// Parse decodes an opened document.
func (r *NTriplesReader) Parse(doc *Document) (*rdf.Graph, rdf.Format, error) {
	if doc.Format != rdf.FormatNTriples && doc.Format != rdf.FormatUnknown {
		return nil, rdf.FormatUnknown, loader.UnsupportedFormat(doc.Locator, doc.Format, nil)
	}
	g := rdf.NewGraph()
	n, err := rdf.DecodeNTriples(bytes.NewReader(doc.Content), g)
	if err != nil {
		return nil, rdf.FormatUnknown, loader.UnsupportedFormat(doc.Locator, doc.Format, err)
	}
	r.logger.Debug("Parsed n-triples", "source", doc.Locator, "triples", n)
	return g, rdf.FormatNTriples, nil
}
