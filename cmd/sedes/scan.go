package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/kmantas/sedes/internal/cli"
	"github.com/kmantas/sedes/internal/corpus"
)

func scanCmd() *cobra.Command {
	var (
		knownPath   string
		lemmataPath string
		work        string
		output      string
		jobs        int
		report      bool
	)

	cmd := &cobra.Command{
		Use:   "scan [file...]",
		Short: "Scan hexameter lines and assign sedes",
		Long: `Scan reads verse from the given files (or stdin), determines each line's
scansion, and writes one CSV row per word with its metrical shape and the
sedes at which it begins. Ambiguous and unscannable lines keep their rows
with sedes withheld; use 'sedes review' to settle them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			analyzer, err := buildAnalyzer(knownPath)
			if err != nil {
				return err
			}
			lemmatizer, err := buildLemmatizer(lemmataPath)
			if err != nil {
				return err
			}
			lines, err := readSources(args, work)
			if err != nil {
				return err
			}

			processor := corpus.NewProcessor(analyzer, lemmatizer, jobs)
			if report {
				bar := progressbar.NewOptions(len(lines),
					progressbar.OptionSetDescription("scanning"),
					progressbar.OptionSetWriter(os.Stderr),
					progressbar.OptionShowCount(),
					progressbar.OptionClearOnFinish(),
				)
				processor.OnProgress(func(done int) { _ = bar.Set(done) })
			}

			results, stats, err := processor.Process(cmd.Context(), lines)
			if err != nil {
				return err
			}

			w, closeOutput, err := outputWriter(output)
			if err != nil {
				return err
			}
			if err := corpus.WriteWordRecords(w, corpus.AllRecords(results), corpus.StatusesByLine(results)); err != nil {
				_ = closeOutput()
				return err
			}
			if err := closeOutput(); err != nil {
				return fmt.Errorf("failed to close output: %w", err)
			}

			if report {
				fmt.Fprint(os.Stderr, cli.RenderScanReport(stats))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&knownPath, "known", "", "YAML override table of hand-vetted scansions")
	cmd.Flags().StringVar(&lemmataPath, "lemmata", "", "TSV lemma table")
	cmd.Flags().StringVar(&work, "work", "", "work identifier (default: input filename)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output CSV file (default: stdout)")
	cmd.Flags().IntVar(&jobs, "jobs", runtime.NumCPU(), "parallel scansion workers")
	cmd.Flags().BoolVar(&report, "report", false, "show progress and an outcome report on stderr")
	return cmd
}
