package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cognicore/seating/pkg/seating/roster"
)

func TestBuildPlannerDefaults(t *testing.T) {
	planner, comp, cleanup, err := buildPlanner(context.Background(), "", "")
	if err != nil {
		t.Fatalf("buildPlanner failed: %v", err)
	}
	defer cleanup()

	if planner.MaxTableSize() != 10 {
		t.Errorf("Expected default capacity, got %d", planner.MaxTableSize())
	}
	if comp.Extractor == nil {
		t.Error("Expected extractor")
	}
}

func TestBuildPlannerWithStore(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "seating.yaml")
	if err := os.WriteFile(cfgPath, []byte("max_table_size: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	planner, _, cleanup, err := buildPlanner(ctx, cfgPath, filepath.Join(tmpDir, "runs.db"))
	if err != nil {
		t.Fatalf("buildPlanner failed: %v", err)
	}
	defer cleanup()

	people := []roster.Person{
		{Name: "A", Description: "chess"},
		{Name: "B", Description: "cooking"},
		{Name: "C", Description: "travel"},
	}
	run, err := planner.Assign(ctx, people, 5)
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if len(run.Tables) != 2 {
		t.Errorf("Expected 2 tables, got %d", len(run.Tables))
	}

	var out bytes.Buffer
	if err := printHistory(ctx, &out, planner); err != nil {
		t.Fatalf("printHistory: %v", err)
	}
	if !strings.Contains(out.String(), run.ID) {
		t.Errorf("History should list run %s, got %q", run.ID, out.String())
	}
}

func TestBuildPlannerBadConfig(t *testing.T) {
	_, _, _, err := buildPlanner(context.Background(), "/nonexistent/seating.yaml", "")
	if err == nil {
		t.Error("buildPlanner should fail with non-existent config")
	}
}

func TestWriteOutputFormats(t *testing.T) {
	planner, _, cleanup, err := buildPlanner(context.Background(), "", "")
	if err != nil {
		t.Fatal(err)
	}
	defer cleanup()

	run, err := planner.Assign(context.Background(), []roster.Person{{Name: "A", Description: `He said "hi"`}}, 1)
	if err != nil {
		t.Fatal(err)
	}

	var csvOut bytes.Buffer
	if err := writeOutput(&csvOut, "CSV", run, 10); err != nil {
		t.Fatalf("csv: %v", err)
	}
	if csvOut.String() != "Table,Name,Description\n1,A,\"He said \"\"hi\"\"\"\n" {
		t.Errorf("Unexpected csv output %q", csvOut.String())
	}

	var xlsxOut bytes.Buffer
	if err := writeOutput(&xlsxOut, "xlsx", run, 10); err != nil {
		t.Fatalf("xlsx: %v", err)
	}
	if !bytes.HasPrefix(xlsxOut.Bytes(), []byte("PK")) {
		t.Error("xlsx output should be a zip archive")
	}

	var htmlOut bytes.Buffer
	if err := writeOutput(&htmlOut, "html", run, 10); err != nil {
		t.Fatalf("html: %v", err)
	}
	if !strings.Contains(htmlOut.String(), "Table 1") {
		t.Error("html output should mention Table 1")
	}

	if err := writeOutput(&bytes.Buffer{}, "pdf", run, 10); err == nil {
		t.Error("Unknown format should fail")
	}
}

func TestSuggest(t *testing.T) {
	_, comp, cleanup, err := buildPlanner(context.Background(), "", "")
	if err != nil {
		t.Fatal(err)
	}
	defer cleanup()

	people := []roster.Person{
		{Name: "A", Description: "software engineer who likes chess"},
		{Name: "B", Description: "software engineer into cooking"},
		{Name: "C", Description: "software designer, travel"},
		{Name: "D", Description: "software tester and jazz fan"},
		{Name: "E", Description: "painter"},
	}

	candidates := suggest(people, comp.Extractor)
	if len(candidates) != 1 || candidates[0].Token != "software" {
		t.Fatalf("Expected [software], got %v", candidates)
	}

	var out bytes.Buffer
	printSuggestions(&out, candidates)
	if !strings.Contains(out.String(), "software") || !strings.Contains(out.String(), "80.0%") {
		t.Errorf("Unexpected suggestions output %q", out.String())
	}
}
