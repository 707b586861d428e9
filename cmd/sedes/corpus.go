package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/kmantas/sedes/internal/cli"
	"github.com/kmantas/sedes/internal/common"
	"github.com/kmantas/sedes/internal/corpus"
	"github.com/kmantas/sedes/internal/storage"
)

func corpusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corpus",
		Short: "Manage the scanned-corpus database",
	}
	cmd.AddCommand(corpusImportCmd())
	cmd.AddCommand(corpusExportCmd())
	return cmd
}

func corpusImportCmd() *cobra.Command {
	var (
		knownPath   string
		lemmataPath string
		work        string
		jobs        int
	)

	cmd := &cobra.Command{
		Use:   "import [file...]",
		Short: "Scan verse files and store the results",
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
			bar := progressbar.NewOptions(len(lines),
				progressbar.OptionSetDescription("scanning"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
			processor.OnProgress(func(done int) { _ = bar.Set(done) })

			results, stats, err := processor.Process(cmd.Context(), lines)
			if err != nil {
				return err
			}

			store, err := openStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			warn := func(err error) {
				common.LogWarn("import warning", common.Fields{"error": err.Error()})
			}
			for workID, batch := range groupByWork(results) {
				importID, err := store.ImportLines(cmd.Context(), workID, batch, warn)
				if err != nil {
					return err
				}
				common.LogInfo("imported work", common.Fields{
					"work":      workID,
					"lines":     len(batch),
					"import_id": importID,
				})
			}

			fmt.Fprint(os.Stderr, cli.RenderScanReport(stats))
			return nil
		},
	}

	cmd.Flags().StringVar(&knownPath, "known", "", "YAML override table of hand-vetted scansions")
	cmd.Flags().StringVar(&lemmataPath, "lemmata", "", "TSV lemma table")
	cmd.Flags().StringVar(&work, "work", "", "work identifier (default: input filename)")
	cmd.Flags().IntVar(&jobs, "jobs", runtime.NumCPU(), "parallel scansion workers")
	return cmd
}

// groupByWork converts processor results into per-work import batches,
// preserving line order.
func groupByWork(results []corpus.LineResult) map[string][]storage.ImportLine {
	batches := make(map[string][]storage.ImportLine)
	for _, r := range results {
		batches[r.Work] = append(batches[r.Work], storage.ImportLine{
			BookN:   r.Locator.BookN,
			LineN:   r.Locator.LineN,
			Text:    r.Line.Text(),
			Status:  r.Status,
			Records: r.Records,
		})
	}
	return batches
}

func corpusExportCmd() *cobra.Command {
	var (
		work   string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored word records as CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			records, err := store.GetWordRecords(cmd.Context(), work)
			if err != nil {
				return err
			}
			statuses, err := store.GetLineStatuses(cmd.Context(), work)
			if err != nil {
				return err
			}

			w, closeOutput, err := outputWriter(output)
			if err != nil {
				return err
			}
			if err := corpus.WriteWordRecords(w, records, statuses); err != nil {
				_ = closeOutput()
				return err
			}
			return closeOutput()
		},
	}

	cmd.Flags().StringVar(&work, "work", "", "restrict export to one work")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output CSV file (default: stdout)")
	return cmd
}
