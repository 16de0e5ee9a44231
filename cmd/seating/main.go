package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/cognicore/seating/pkg/seating"
	"github.com/cognicore/seating/pkg/seating/config"
	"github.com/cognicore/seating/pkg/seating/export"
	"github.com/cognicore/seating/pkg/seating/keywords"
	"github.com/cognicore/seating/pkg/seating/roster"
	"github.com/cognicore/seating/pkg/seating/stoplist"
	"github.com/cognicore/seating/pkg/seating/store"
	"github.com/cognicore/seating/pkg/seating/store/sqlite"
)

func main() {
	var (
		inPath       = flag.String("in", "", "Roster CSV with Name and Description columns")
		configPath   = flag.String("config", "", "Config file (optional)")
		dbPath       = flag.String("db", "", "Run history database (optional)")
		outPath      = flag.String("out", "", "Output file (default stdout)")
		format       = flag.String("format", "csv", "Output format: csv, xlsx or html")
		seed         = flag.Uint64("seed", 0, "Random seed (0 = random)")
		reassign     = flag.String("reassign", "", "Reassign the roster of a stored run")
		history      = flag.Bool("history", false, "List stored runs")
		suggestStops = flag.Bool("suggest-stops", false, "Suggest roster-specific stopwords and exit")
	)
	flag.Parse()

	ctx := context.Background()

	planner, comp, cleanup, err := buildPlanner(ctx, *configPath, *dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	if *history {
		if err := printHistory(ctx, os.Stdout, planner); err != nil {
			log.Fatal(err)
		}
		return
	}

	if *seed == 0 {
		*seed = seating.RandomSeed()
	}

	var run store.Run
	switch {
	case *reassign != "":
		run, err = planner.Reassign(ctx, *reassign, *seed)
		if err != nil {
			log.Fatalf("reassign: %v", err)
		}
	case *inPath != "":
		people, err := roster.LoadFile(*inPath)
		if err != nil {
			log.Fatalf("load roster: %v", err)
		}
		log.Printf("Loaded %d people from %s", len(people), *inPath)

		if *suggestStops {
			printSuggestions(os.Stdout, suggest(people, comp.Extractor))
			return
		}

		run, err = planner.Assign(ctx, people, *seed)
		if err != nil {
			log.Fatalf("assign: %v", err)
		}
	default:
		log.Fatal("--in or --reassign required")
	}

	summary := planner.Summarize(run.Tables)
	log.Printf("Run %s: %d people assigned to %d tables (seed %d, mean diversity %.3f)",
		run.ID, summary.People, summary.Tables, run.Seed, summary.MeanDiversity)
	if summary.Undersized > 0 {
		log.Printf("%d tables have fewer than %d people", summary.Undersized, planner.MaxTableSize())
	}

	out := io.Writer(os.Stdout)
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Fatalf("create output: %v", err)
		}
		defer f.Close()
		out = f
	}

	if err := writeOutput(out, *format, run, planner.MaxTableSize()); err != nil {
		log.Fatalf("export: %v", err)
	}
	if *outPath != "" {
		log.Printf("Wrote %s", *outPath)
	}
}

func buildPlanner(ctx context.Context, configPath, dbPath string) (*seating.Planner, *config.Components, func(), error) {
	loader := config.Loader{ConfigPath: configPath}
	comp, err := loader.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	opts := seating.Options{
		Extractor:     comp.Extractor,
		MaxTableSize:  comp.Builder.MaxTableSize,
		EvenFillBonus: comp.Builder.EvenFillBonus,
	}
	if dbPath != "" {
		st, err := sqlite.OpenSQLite(ctx, dbPath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open store: %w", err)
		}
		opts.Store = st
	}

	planner := seating.New(opts)
	cleanup := func() {
		planner.Close()
	}
	return planner, comp, cleanup, nil
}

func writeOutput(w io.Writer, format string, run store.Run, maxTableSize int) error {
	switch strings.ToLower(format) {
	case "csv":
		if err := export.WriteCSV(w, run.Tables); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	case "xlsx":
		buf, err := export.XLSX(run.Tables)
		if err != nil {
			return err
		}
		_, err = buf.WriteTo(w)
		return err
	case "html":
		return export.HTML(w, run.Tables, export.HTMLOptions{MaxTableSize: maxTableSize})
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func printHistory(ctx context.Context, w io.Writer, planner *seating.Planner) error {
	runs, err := planner.History(ctx, 20)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs stored.")
		return nil
	}
	for _, r := range runs {
		fmt.Fprintf(w, "%s  %s  %d people  %d tables\n",
			r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04"), r.People, r.Tables)
	}
	return nil
}

func suggest(people []roster.Person, extractor *keywords.Extractor) []stoplist.Candidate {
	docs := make([][]string, len(people))
	for i, p := range people {
		docs[i] = extractor.Extract(p.Description)
	}
	return extractor.Stopwords().SuggestCandidates(stoplist.CollectStats(docs), stoplist.DefaultThresholds())
}

func printSuggestions(w io.Writer, candidates []stoplist.Candidate) {
	if len(candidates) == 0 {
		fmt.Fprintln(w, "No stopword suggestions.")
		return
	}
	fmt.Fprintln(w, "Suggested stopwords (token, share of descriptions):")
	for _, c := range candidates {
		fmt.Fprintf(w, "  %-20s %5.1f%%\n", c.Token, c.Stats.DFPercent)
	}
}
