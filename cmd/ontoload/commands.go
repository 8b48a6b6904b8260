package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/c360studio/semontology/catalog"
	"github.com/c360studio/semontology/export"
	"github.com/c360studio/semontology/manager"
	"github.com/c360studio/semontology/ontology"
	"github.com/c360studio/semontology/rdf"
	"github.com/c360studio/semontology/storage"
	"github.com/c360studio/semontology/vocabulary/owl"
)

func loadCmd(flags *globalFlags) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "load <locator>",
		Short: "Load an ontology and its imports",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := flags.startApp(cmd)
			if err != nil {
				return err
			}
			defer app.Shutdown(5 * time.Second)

			o, err := app.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), app.Manager(), o)

			if !watch {
				return nil
			}
			return watchAndReload(cmd, app, args[0])
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Reload when catalog documents change")
	return cmd
}

// watchAndReload reloads locator after every catalog rescan until
// interrupted.
func watchAndReload(cmd *cobra.Command, app *App, locator string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	w, err := catalog.NewWatcher(app.Catalog(), catalog.DefaultDebounce)
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Watching catalog directories, press Ctrl-C to stop")
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			if ev.Err != nil {
				fmt.Fprintf(out, "rescan failed: %v\n", ev.Err)
				continue
			}
			fmt.Fprintf(out, "%d documents changed, reloading\n", len(ev.Paths))
			if err := app.Reset(); err != nil {
				return err
			}
			o, err := app.Load(ctx, locator)
			if err != nil {
				fmt.Fprintf(out, "reload failed: %v\n", err)
				continue
			}
			printSummary(out, app.Manager(), o)
		}
	}
}

func printSummary(w io.Writer, m *manager.Manager, root *manager.Ontology) {
	fmt.Fprintf(w, "Loaded %s (%d ontologies)\n", root.Key(), m.Len())
	for _, o := range m.List() {
		src := o.Source()
		if src == "" {
			src = "-"
		}
		fmt.Fprintf(w, "  %s\t%s\t%d statements\t%s\n", o.Key(), o.Format(), o.Graph().Len(), src)
		for _, imp := range o.Imports() {
			fmt.Fprintf(w, "    imports %s\n", imp)
		}
	}
	for _, warn := range root.Warnings() {
		fmt.Fprintf(w, "warning: %s\n", warn)
	}
}

func axiomsCmd(flags *globalFlags) *cobra.Command {
	var (
		kinds    []string
		class    string
		property string
		all      bool
	)

	cmd := &cobra.Command{
		Use:   "axioms <locator>",
		Short: "Print the axioms of a loaded ontology",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			want := make(map[ontology.AxiomKind]bool, len(kinds))
			for _, name := range kinds {
				k, err := ontology.ParseKind(name)
				if err != nil {
					return err
				}
				want[k] = true
			}

			app, err := flags.startApp(cmd)
			if err != nil {
				return err
			}
			defer app.Shutdown(5 * time.Second)

			root, err := app.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			targets := []*manager.Ontology{root}
			if all {
				targets = app.Manager().List()
			}

			out := cmd.OutOrStdout()
			for _, o := range targets {
				axioms, err := describe(o, class, property)
				if err != nil {
					return err
				}
				for _, a := range axioms {
					if len(want) > 0 && !want[a.Value().Kind()] {
						continue
					}
					fmt.Fprintln(out, a.Key())
				}
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&kinds, "kind", nil, "Only print these axiom kinds (e.g. SubClassOf)")
	cmd.Flags().StringVar(&class, "class", "", "Only print axioms describing this class IRI")
	cmd.Flags().StringVar(&property, "property", "", "Only print axioms describing this object property IRI")
	cmd.Flags().BoolVar(&all, "closure", false, "Include every ontology of the import closure")
	cmd.MarkFlagsMutuallyExclusive("class", "property")
	return cmd
}

func describe(o *manager.Ontology, class, property string) ([]ontology.Object[ontology.Axiom], error) {
	switch {
	case class != "":
		return o.ClassAxioms(ontology.Class{IRI: class})
	case property != "":
		return o.ObjectPropertyAxioms(ontology.ObjectProperty{IRI: property})
	default:
		return o.Axioms()
	}
}

func exportCmd(flags *globalFlags) *cobra.Command {
	var (
		format  string
		profile string
		output  string
		closure bool
	)

	cmd := &cobra.Command{
		Use:   "export <locator>",
		Short: "Serialize a loaded ontology",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "" && format == "" {
				format = filepath.Ext(output)
			}
			if format == "" {
				format = string(export.FormatTurtle)
			}
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			if _, ok := export.Profiles[export.Profile(profile)]; !ok {
				return fmt.Errorf("unknown profile: %s", profile)
			}

			app, err := flags.startApp(cmd)
			if err != nil {
				return err
			}
			defer app.Shutdown(5 * time.Second)

			o, err := app.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			exporter := export.NewExporter(export.Profile(profile))
			exporter.AddPrefixes(o.Graph().Prefixes())
			var g rdf.Reader = o.Graph()
			if closure {
				g = o.Closure()
			}

			w := cmd.OutOrStdout()
			if output != "" {
				file, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer file.Close()
				w = file
			}
			return exporter.Write(w, g, f)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (turtle, ntriples, jsonld)")
	cmd.Flags().StringVar(&profile, "profile", string(export.ProfileFull), "Export profile (full, logical, declarations)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	cmd.Flags().BoolVar(&closure, "closure", false, "Export the whole import closure")
	return cmd
}

func storeCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage documents in the NATS key-value bucket",
	}

	var key, iri string
	put := &cobra.Command{
		Use:   "put <file>",
		Short: "Upload a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read document: %w", err)
			}
			if key == "" {
				key = filepath.Base(args[0])
			}
			return withStore(cmd, flags, func(ctx context.Context, s *storage.DocumentStore) error {
				doc := &storage.Document{Key: key, IRI: iri, Content: content}
				if _, err := s.Put(ctx, doc); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (revision %d)\n", s.Locator(key), doc.Revision)
				return nil
			})
		},
	}
	put.Flags().StringVar(&key, "key", "", "Document key (default: file name)")
	put.Flags().StringVar(&iri, "iri", "", "Ontology IRI the document defines")

	list := &cobra.Command{
		Use:   "list",
		Short: "List stored documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, flags, func(ctx context.Context, s *storage.DocumentStore) error {
				keys, err := s.List(ctx)
				if err != nil {
					return err
				}
				for _, k := range keys {
					fmt.Fprintln(cmd.OutOrStdout(), s.Locator(k))
				}
				return nil
			})
		},
	}

	cmd.AddCommand(put, list)
	return cmd
}

func withStore(cmd *cobra.Command, flags *globalFlags, fn func(context.Context, *storage.DocumentStore) error) error {
	app, err := flags.startApp(cmd)
	if err != nil {
		return err
	}
	defer app.Shutdown(5 * time.Second)

	s, err := app.Store(cmd.Context())
	if err != nil {
		return err
	}
	return fn(cmd.Context(), s)
}

func vocabCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vocab",
		Short: "List the registered OWL predicates",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			preds := owl.Predicates()
			sort.Strings(preds)
			for _, p := range preds {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", p, owl.IRIFor(p))
			}
		},
	}
}
