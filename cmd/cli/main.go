package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"fairlens/adapters/excel"
	"fairlens/adapters/postgres"
	"fairlens/adapters/report"
	"fairlens/app"
	"fairlens/domain/fairness"
	"fairlens/internal/config"
	"fairlens/internal/testkit"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "fairlens",
		Short: "Fairness and bias analysis for tabular datasets",
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newHistoryCmd(),
		newSettingsCmd(),
		newSampleCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newAnalyzeCmd() *cobra.Command {
	var extended bool
	var format string

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Run the fairness pipeline over a CSV or Excel dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ds, err := excel.NewDataReader(args[0]).Snapshot(cmd.Context())
			if err != nil {
				return err
			}

			service := app.NewAnalysisService(cfg.Analysis, nil)

			var payload interface{}
			var base *fairness.AnalysisResult
			if extended {
				result, err := service.AnalyzeExtended(cmd.Context(), ds)
				if err != nil {
					return err
				}
				payload, base = result, &result.AnalysisResult
			} else {
				result, err := service.Analyze(cmd.Context(), ds)
				if err != nil {
					return err
				}
				payload, base = result, result
			}

			switch format {
			case "markdown":
				fmt.Println(report.NewRenderer().RenderMarkdown(base))
			case "json":
				out, err := json.MarshalIndent(payload, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
			default:
				return fmt.Errorf("unknown format %q (want json or markdown)", format)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&extended, "extended", false, "include significance tests, intersectional, temporal, and proxy analysis")
	cmd.Flags().StringVar(&format, "format", "json", "output format: json or markdown")
	return cmd
}

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent analysis summaries from the history store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cfg.Database.Enabled {
				return fmt.Errorf("DATABASE_URL is required for history")
			}
			db, err := postgres.Connect(cfg.Database.URL)
			if err != nil {
				return err
			}
			defer db.Close()

			rows, err := postgres.NewHistoryRepository(db).Recent(context.Background(), limit)
			if err != nil {
				return err
			}
			for _, row := range rows {
				fmt.Printf("%s  %s  records=%d  score=%.3f  flags=%d  risk=%s\n",
					row.Timestamp.Format("2006-01-02 15:04"), row.ID, row.RecordCount,
					row.BiasScore, row.FlagCount, row.RiskLevel)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum rows to list")
	return cmd
}

func newSettingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Print the effective analysis configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(cfg.Analysis, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
}

func newSampleCmd() *cobra.Command {
	var records int
	var seed int64
	var out string

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write a synthetic biased loan-application CSV for experimentation",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds := testkit.LoanDataset(testkit.LoanOptions{
				Records:            records,
				MaleShare:          0.7,
				MaleApprovalRate:   0.9,
				FemaleApprovalRate: 0.6,
				Seed:               seed,
				Months:             6,
			})

			var b strings.Builder
			cols := ds.Columns()
			for i, c := range cols {
				if i > 0 {
					b.WriteByte(',')
				}
				b.WriteString(c.String())
			}
			b.WriteByte('\n')
			for _, rec := range ds.Records() {
				for i, c := range cols {
					if i > 0 {
						b.WriteByte(',')
					}
					b.WriteString(rec.Get(c).String())
				}
				b.WriteByte('\n')
			}
			return os.WriteFile(out, []byte(b.String()), 0o644)
		},
	}

	cmd.Flags().IntVar(&records, "records", 100, "number of synthetic records")
	cmd.Flags().Int64Var(&seed, "seed", 42, "generator seed")
	cmd.Flags().StringVar(&out, "out", "sample.csv", "output CSV path")
	return cmd
}
