package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kmantas/sedes/internal/appositive"
	"github.com/kmantas/sedes/internal/corpus"
	"github.com/kmantas/sedes/internal/expectancy"
	"github.com/kmantas/sedes/internal/model"
)

func expectancyCmd() *cobra.Command {
	var (
		by         string
		merge      string
		unweighted bool
		fromDB     bool
		work       string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "expectancy [file...]",
		Short: "Compute sedes expectancy z-scores",
		Long: `Expectancy reads word records produced by 'sedes scan' (CSV files, stdin,
or the database with --from-db) and computes, for each grouping, how far
each placement sits from the weighted corpus mean. The grouping is a
"dist/cond" pair: records are partitioned by the cond fields and the
distribution taken over the dist fields.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := expectancy.ParseGroupingSpec(by)
			if err != nil {
				return err
			}

			var records []model.WordRecord
			switch {
			case fromDB:
				if len(args) > 0 {
					return fmt.Errorf("--from-db takes no file arguments")
				}
				store, err := openStorage(cmd.Context())
				if err != nil {
					return err
				}
				defer func() { _ = store.Close() }()
				records, err = store.GetWordRecords(cmd.Context(), work)
				if err != nil {
					return err
				}
			case len(args) == 0:
				records, err = corpus.ReadWordRecords(os.Stdin)
				if err != nil {
					return err
				}
			default:
				for _, path := range args {
					f, err := os.Open(path)
					if err != nil {
						return fmt.Errorf("failed to open %s: %w", path, err)
					}
					read, err := corpus.ReadWordRecords(f)
					_ = f.Close()
					if err != nil {
						return fmt.Errorf("failed to read %s: %w", path, err)
					}
					records = append(records, read...)
				}
			}

			switch merge {
			case "none":
			case "shared-sedes":
				records = appositive.Apply(appositive.SharedSedes{}, records)
			default:
				return fmt.Errorf("unknown --merge mode %q", merge)
			}

			compute := expectancy.Compute
			if unweighted {
				compute = expectancy.Unweighted
			}
			result, err := compute(corpus.Rows(records), spec)
			if err != nil {
				return err
			}

			w, closeOutput, err := outputWriter(output)
			if err != nil {
				return err
			}
			if err := corpus.WriteExpectancy(w, spec, result); err != nil {
				_ = closeOutput()
				return err
			}
			return closeOutput()
		},
	}

	cmd.Flags().StringVar(&by, "by", "sedes/lemma", "grouping as dist/cond field lists")
	cmd.Flags().StringVar(&merge, "merge", "none", "appositive merging (none, shared-sedes)")
	cmd.Flags().BoolVar(&unweighted, "unweighted", false, "use ordinary population statistics instead of weighted")
	cmd.Flags().BoolVar(&fromDB, "from-db", false, "read word records from the database")
	cmd.Flags().StringVar(&work, "work", "", "restrict --from-db to one work")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output CSV file (default: stdout)")
	return cmd
}
