package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/kmantas/sedes/internal/cli"
	"github.com/kmantas/sedes/internal/corpus"
	"github.com/kmantas/sedes/internal/model"
	"github.com/kmantas/sedes/internal/tui"
)

func reviewCmd() *cobra.Command {
	var (
		knownPath string
		work      string
		jobs      int
	)

	cmd := &cobra.Command{
		Use:   "review [file...]",
		Short: "Interactively settle ambiguous lines",
		Long: `Review scans the given verse files and walks through every line the
enumerator could not settle on its own. Accepting a candidate scansion
appends it to the override table, so the next scan resolves the line
without prompting.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The override table may not exist yet on a first review.
			existing := knownPath
			if _, err := os.Stat(knownPath); errors.Is(err, os.ErrNotExist) {
				existing = ""
			}
			analyzer, err := buildAnalyzer(existing)
			if err != nil {
				return err
			}
			lines, err := readSources(args, work)
			if err != nil {
				return err
			}

			processor := corpus.NewProcessor(analyzer, nil, jobs)
			results, _, err := processor.Process(cmd.Context(), lines)
			if err != nil {
				return err
			}

			var items []tui.ReviewItem
			for _, r := range results {
				if r.Status != model.StatusAmbiguous {
					continue
				}
				items = append(items, tui.ReviewItem{
					Work:       r.Work,
					Location:   r.Locator.String(),
					Text:       r.Line.TextWithoutQuotes(),
					Candidates: r.Candidates,
				})
			}
			if len(items) == 0 {
				fmt.Println(cli.FormatSuccess("No ambiguous lines."))
				return nil
			}

			accepted, err := tui.Run(items, knownPath)
			if err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Accepted %d of %d ambiguous lines.", accepted, len(items))))
			return nil
		},
	}

	cmd.Flags().StringVar(&knownPath, "known", "known.yaml", "YAML override table to read and append to")
	cmd.Flags().StringVar(&work, "work", "", "work identifier (default: input filename)")
	cmd.Flags().IntVar(&jobs, "jobs", runtime.NumCPU(), "parallel scansion workers")
	return cmd
}
