package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"mancova/app"
	"mancova/domain/core"
	"mancova/domain/dataset"
	"mancova/internal"
	"mancova/internal/config"
	"mancova/internal/container"
	"mancova/internal/errors"
	"mancova/internal/testkit"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// A missing .env is normal; the defaults reproduce the standard run
	_ = godotenv.Load()
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the command line and returns the process exit code. Failures
// are reported once, on stderr, with their error code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "mancova: [%s] %v\n", errors.GetCode(err), err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var cfgFile string
	rootCmd := &cobra.Command{
		Use:   "mancova",
		Short: "One-way MANCOVA report over the questionnaire dataset",
		Long: `Fits Anxiety, Stress and Spirituality against the test type, prints the
multivariate tests, univariate tests and residuals, and writes the document
outputs (mancova_output.docx by default).`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), cfgFile, cmd.OutOrStdout())
		},
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "optional YAML config file")

	rootCmd.AddCommand(
		newSummaryCmd(&cfgFile),
		newSampleCmd(),
	)
	return rootCmd
}

func setup(cfgFile string) (*container.Container, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	logger := internal.NewLogger(internal.ParseLogLevel(cfg.Log.Level))
	return container.New(cfg, logger)
}

func runReport(ctx context.Context, cfgFile string, stdout io.Writer) error {
	c, err := setup(cfgFile)
	if err != nil {
		return err
	}
	defer c.Logger.Sync()

	res, err := c.ReportService.BuildReport(ctx, app.ReportRequest{
		RunID:              core.NewRunID(),
		MultivariateSource: c.MultivariateSource(),
	})
	if err != nil {
		return err
	}
	return c.ReportService.RenderOutputs(ctx, res.Tables, c.Outputs, stdout)
}

func newSummaryCmd(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print the full multivariate model summary for every effect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := setup(*cfgFile)
			if err != nil {
				return err
			}
			defer c.Logger.Sync()

			ds, err := c.Source.Load(cmd.Context())
			if err != nil {
				return errors.Wrap(err, "load dataset")
			}
			res, err := c.Multivariate.Fit(cmd.Context(), ds, dataset.ModelVariables)
			if err != nil {
				return errors.Wrap(err, "multivariate model")
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), res.Summary())
			return err
		},
	}
}

func newSampleCmd() *cobra.Command {
	var out string
	var perLevel int
	var seed int64

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write a synthetic questionnaire dataset (xlsx or csv)",
		Long: `Writes a deterministic dataset with the source file's headers, for trying the
report without the real data.

Example: mancova sample --out sample.xlsx --per-level 30 --seed 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if perLevel <= 0 {
				return errors.InvalidInput("per-level must be > 0")
			}
			cfg := testkit.DefaultSurveyConfig()
			cfg.PerLevel = perLevel
			cfg.Seed = seed
			records := testkit.NewSurveyDataGenerator(cfg).Records()

			var err error
			switch strings.ToLower(filepath.Ext(out)) {
			case ".csv":
				err = testkit.WriteCSV(out, records)
			default:
				err = testkit.WriteXLSX(out, records)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d rows to %s\n", len(records), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "sample_data.xlsx", "output file path (.xlsx or .csv)")
	cmd.Flags().IntVar(&perLevel, "per-level", 30, "respondents per test type")
	cmd.Flags().Int64Var(&seed, "seed", 42, "RNG seed (deterministic)")
	return cmd
}
