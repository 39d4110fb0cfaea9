package main

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/Anton-art/Syntropy/internal/ingest"
	"github.com/Anton-art/Syntropy/internal/pipeline"
	"github.com/Anton-art/Syntropy/internal/scanner"
)

var scanFlags struct {
	deep    bool
	workers int
}

var scanCmd = &cobra.Command{
	Use:   "scan <file>...",
	Short: "Score documents for information density and structure",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runScan,
}

func init() {
	f := scanCmd.Flags()
	f.BoolVar(&scanFlags.deep, "deep", false, "Always run the multi-scale escalation scan")
	f.IntVar(&scanFlags.workers, "workers", 0, "Parallel documents (0 = CPU count)")
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg := scanner.DefaultConfig()
	out := cmd.OutOrStdout()
	var mu sync.Mutex

	errs := pipeline.ScanFiles(args, scanFlags.workers, func(path string) error {
		doc, err := ingest.ParseFile(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		stream := scanner.AnalyzeStream(doc.Text, cfg)

		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(out, "=== %s ===\n", doc.Title)
		if stream == nil {
			fmt.Fprintf(out, "too short to score\n\n")
			return nil
		}
		fmt.Fprintf(out, "structure:  %s\n", stream.Structure)
		fmt.Fprintf(out, "global:     %.2f\n", stream.GlobalScore)
		fmt.Fprintf(out, "windows:    %d\n", len(stream.Series))
		fmt.Fprintf(out, "integrity:  %.2f\n", stream.Integrity)

		ambiguous := stream.Structure == scanner.StructureChaos || stream.Structure == scanner.StructureDisruption
		if scanFlags.deep || ambiguous {
			state := scanner.AnalyzeFractal(doc.Text, cfg)
			fmt.Fprintf(out, "diagnosis:  %s (consistency %.2f, weakest link %.2f)\n",
				state.Diagnosis, state.Consistency, state.WeakestLink)
		}
		fmt.Fprintln(out)
		return nil
	})

	for _, err := range errs {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%d of %d documents failed", len(errs), len(args))
	}
	return nil
}
