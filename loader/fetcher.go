package loader

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/c360studio/semstreams/pkg/retry"
)

// Fetcher turns document sources into GraphRecords.
type Fetcher struct {
	primary   GraphReader
	secondary AxiomReader
	iriMapper IRIMapper
	sources   DocumentSourceMapper
	registry  Registry
	cfg       Config
	logger    *slog.Logger
	metrics   *Metrics
}

// Fetch produces the record for src. Within a session, a locator already
// read by the secondary reader is answered from the session. The record is
// registered in the session under its identity.
func (f *Fetcher) Fetch(ctx context.Context, src DocumentSource, s *Session) (*GraphRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if src.Graph != nil {
		rec := newRecord(src.Graph, src.Format, src.Locator)
		s.register(rec)
		f.metrics.fetched("passthrough")
		return rec, nil
	}
	if src.Locator == "" {
		return nil, retry.NonRetryable(ErrNoSource)
	}
	if rec, ok := s.loaded[src.Locator]; ok {
		s.register(rec)
		return rec, nil
	}

	read := DocumentSource{Locator: s.documentIRI(f.iriMapper, src.Locator), Format: src.Format}

	if f.cfg.UseAlternateLoaderOnly() || f.primary == nil {
		if f.secondary == nil {
			return nil, retry.NonRetryable(&ConfigMismatchError{
				Option: "use_alternate_loader_only",
				Reason: "no secondary reader configured",
			})
		}
		return f.readSecondary(ctx, read, src.Locator, s, nil)
	}

	g, format, err := f.primary.ReadGraph(ctx, read)
	if err == nil {
		rec := newRecord(g, format, src.Locator)
		s.register(rec)
		f.metrics.fetched("primary")
		f.logger.Debug("Graph loaded", "ontology", rec.Name(), "source", read.Locator, "format", format, "reader", "primary")
		return rec, nil
	}
	f.metrics.fetchFailed("primary")
	if !IsRetryable(err) || f.secondary == nil {
		return nil, err
	}

	f.metrics.fellBack()
	f.logger.Debug("Primary reader failed, trying secondary", "source", read.Locator, "error", err)
	return f.readSecondary(ctx, read, src.Locator, s, err)
}

// readSecondary reads src with the secondary reader against an overlay of
// the caller's registry. primaryErr, when set, is kept as the suppressed
// cause of the resulting record.
func (f *Fetcher) readSecondary(ctx context.Context, src DocumentSource, locator string, s *Session, primaryErr error) (*GraphRecord, error) {
	overlay := NewOverlay(f.registry)
	g, format, err := f.secondary.ReadAxioms(ctx, src, overlay)
	if err != nil {
		f.metrics.fetchFailed("secondary")
		return nil, retry.NonRetryable(&OntologyCreationError{
			Locator:   src.Locator,
			Primary:   primaryErr,
			Secondary: err,
		})
	}

	for _, r := range overlay.Registered() {
		if r.Source == "" {
			continue
		}
		imp := newRecord(r.Graph, r.Format, r.Source)
		imp.noTransform = true
		s.loaded[r.Source] = imp
	}

	rec := newRecord(g, format, locator)
	rec.noTransform = true
	rec.suppressed = primaryErr
	s.register(rec)
	f.metrics.fetched("secondary")
	f.logger.Debug("Graph loaded", "ontology", rec.Name(), "source", src.Locator, "format", format, "reader", "secondary")
	return rec, nil
}

// FetchImport produces the record for an imported ontology IRI. An
// ontology the caller already holds is wrapped without I/O. Otherwise the
// document source mapper is asked first, then the IRI mapper, and finally
// the IRI itself is read.
func (f *Fetcher) FetchImport(ctx context.Context, iri string, s *Session) (*GraphRecord, error) {
	if r, ok := findResident(f.registry, iri); ok {
		return f.resident(r, s), nil
	}
	if f.sources != nil {
		if src, ok := f.sources.DocumentSource(iri); ok {
			return f.Fetch(ctx, src, s)
		}
	}
	doc := s.documentIRI(f.iriMapper, iri)
	if doc != iri {
		if r, ok := findResident(f.registry, doc); ok {
			return f.resident(r, s), nil
		}
	}
	rec, err := f.Fetch(ctx, DocumentSource{Locator: doc}, s)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", iri, err)
	}
	return rec, nil
}

func (f *Fetcher) resident(r Resident, s *Session) *GraphRecord {
	rec := residentRecord(r)
	s.register(rec)
	f.metrics.fetched("resident")
	return rec
}
