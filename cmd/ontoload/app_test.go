package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/c360studio/semontology/config"
)

const pizzaNT = `<http://example.org/pizza> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#Ontology> .
<http://example.org/pizza> <http://www.w3.org/2002/07/owl#imports> <http://example.org/food> .
<http://example.org/pizza#Pizza> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#Class> .
<http://example.org/pizza#Pizza> <http://www.w3.org/2000/01/rdf-schema#subClassOf> <http://example.org/food#Food> .
<http://example.org/pizza#Pizza> <http://www.w3.org/2000/01/rdf-schema#label> "Pizza"@en .
`

const foodNT = `<http://example.org/food> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#Ontology> .
<http://example.org/food#Food> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#Class> .
`

// setupProject writes a project whose catalog scans the ontologies
// directory, and returns the config path and the root document path.
func setupProject(t *testing.T) (string, string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	dir := t.TempDir()
	onts := filepath.Join(dir, "ontologies")
	if err := os.MkdirAll(onts, 0755); err != nil {
		t.Fatal(err)
	}
	pizza := filepath.Join(onts, "pizza.nt")
	if err := os.WriteFile(pizza, []byte(pizzaNT), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(onts, "food.nt"), []byte(foodNT), 0644); err != nil {
		t.Fatal(err)
	}

	cfgPath := filepath.Join(dir, "custom.yaml")
	cfg := "catalog:\n  directories: [ontologies]\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}
	return cfgPath, pizza
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, "ontoload version "+Version) {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestLoadCommand(t *testing.T) {
	cfgPath, pizza := setupProject(t)

	out, err := execute(t, "load", pizza, "--config", cfgPath, "--log-level", "error")
	if err != nil {
		t.Fatalf("load failed: %v\n%s", err, out)
	}
	for _, want := range []string{
		"Loaded http://example.org/pizza (2 ontologies)",
		"imports http://example.org/food",
		"food.nt",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q:\n%s", want, out)
		}
	}
}

func TestLoadCommandMissingImport(t *testing.T) {
	cfgPath, pizza := setupProject(t)
	if err := os.Remove(filepath.Join(filepath.Dir(pizza), "food.nt")); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "load", pizza, "--config", cfgPath, "--log-level", "error"); err == nil {
		t.Error("expected load to fail with the throw policy")
	}

	out, err := execute(t, "load", pizza, "--config", cfgPath, "--log-level", "error", "--missing-imports", "warn")
	if err != nil {
		t.Fatalf("load with warn policy failed: %v", err)
	}
	if !strings.Contains(out, "(1 ontologies)") || !strings.Contains(out, "warning:") {
		t.Errorf("expected a single ontology and a warning:\n%s", out)
	}
}

func TestAxiomsCommand(t *testing.T) {
	cfgPath, pizza := setupProject(t)

	out, err := execute(t, "axioms", pizza, "--config", cfgPath, "--log-level", "error", "--kind", "SubClassOf")
	if err != nil {
		t.Fatalf("axioms failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 1 || !strings.HasPrefix(lines[0], "SubClassOf(") {
		t.Errorf("expected one SubClassOf axiom, got:\n%s", out)
	}

	out, err = execute(t, "axioms", pizza, "--config", cfgPath, "--log-level", "error",
		"--closure", "--kind", "Declaration")
	if err != nil {
		t.Fatalf("axioms --closure failed: %v", err)
	}
	if !strings.Contains(out, "http://example.org/food#Food") {
		t.Errorf("closure should include imported declarations:\n%s", out)
	}

	if _, err := execute(t, "axioms", pizza, "--config", cfgPath, "--kind", "NoSuchKind"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestExportCommand(t *testing.T) {
	cfgPath, pizza := setupProject(t)
	target := filepath.Join(t.TempDir(), "out.nt")

	if _, err := execute(t, "export", pizza, "--config", cfgPath, "--log-level", "error",
		"--profile", "logical", "-o", target); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, "<http://www.w3.org/2000/01/rdf-schema#subClassOf>") {
		t.Errorf("export should keep logical axioms:\n%s", out)
	}
	if strings.Contains(out, "rdf-schema#label") {
		t.Errorf("logical profile should drop labels:\n%s", out)
	}

	if _, err := execute(t, "export", pizza, "--config", cfgPath, "--profile", "bogus"); err == nil {
		t.Error("expected error for unknown profile")
	}
}

func TestStoreRequiresNATS(t *testing.T) {
	cfgPath, _ := setupProject(t)
	_, err := execute(t, "store", "list", "--config", cfgPath, "--log-level", "error")
	if err == nil || !strings.Contains(err.Error(), "nats is not configured") {
		t.Errorf("expected nats configuration error, got %v", err)
	}
}

func TestVocabCommand(t *testing.T) {
	out, err := execute(t, "vocab")
	if err != nil {
		t.Fatalf("vocab failed: %v", err)
	}
	if !strings.Contains(out, "owl.class.sub_class_of\thttp://www.w3.org/2000/01/rdf-schema#subClassOf") {
		t.Errorf("unexpected vocab output:\n%s", out)
	}
}

func TestAppRecordsMetrics(t *testing.T) {
	cfgPath, pizza := setupProject(t)
	cfg, err := config.NewLoader(nil).Load(cfgPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	app, err := NewApp(cfg, nil)
	if err != nil {
		t.Fatalf("failed to create app: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := app.Start(ctx); err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Shutdown(5 * time.Second)

	if _, err := app.Load(ctx, pizza); err != nil {
		t.Fatalf("load: %v", err)
	}

	families, err := app.registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "semontology_loader_loads_total" {
			found = true
		}
	}
	if !found {
		t.Error("loads_total not recorded")
	}

	// Reset drops the loaded ontologies.
	if err := app.Reset(); err != nil {
		t.Fatal(err)
	}
	if app.Manager().Len() != 0 {
		t.Errorf("manager should be empty after reset, has %d", app.Manager().Len())
	}
}
