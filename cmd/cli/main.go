package main

import (
	"context"
	"fmt"
	"os"

	"gotips/adapters/tipsdata"
	"gotips/domain/tips"
	"gotips/internal"
	"gotips/internal/analysis"
	"gotips/internal/cli"
	"gotips/internal/dataset"
	"gotips/internal/export"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gotips-cli",
		Short: "Tip analytics from the terminal",
	}

	rootCmd.AddCommand(
		newReportCmd(),
		newExportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type filterFlags struct {
	days  []string
	times []string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.days, "day", nil, "days to keep (Thu, Fri, Sat, Sun); all when omitted")
	cmd.Flags().StringSliceVar(&f.times, "time", nil, "meal times to keep (Lunch, Dinner); all when omitted")
}

// view prepares the dataset and applies the flags. An omitted flag keeps
// every value of that side.
func (f *filterFlags) view(ctx context.Context) (*analysis.View, error) {
	days, times := f.days, f.times
	if len(days) == 0 {
		days = stringsOf(tips.Days)
	}
	if len(times) == 0 {
		times = stringsOf(tips.Times)
	}
	sel, err := tips.ParseSelection(days, times)
	if err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}

	logger := internal.NewLogger(internal.LogLevelWarn)
	table, err := dataset.NewPreparer(tipsdata.NewEmbeddedSource(), logger).Prepare(ctx)
	if err != nil {
		return nil, err
	}
	return analysis.FilterSelection(table, sel), nil
}

func stringsOf[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func newReportCmd() *cobra.Command {
	var filters filterFlags
	var topN int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print headline metrics and insights for a selection",
		Long: `Print headline metrics, insights and the most generous tips.

Example: gotips-cli report --day Sat --day Sun --time Dinner`,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := filters.view(cmd.Context())
			if err != nil {
				return err
			}
			opts := analysis.DefaultOptions()
			opts.TopN = topN
			snapshot, err := analysis.Dashboard(v, opts)
			if err != nil {
				return err
			}
			return cli.RenderReport(cmd.OutOrStdout(), snapshot)
		},
	}
	filters.register(cmd)
	cmd.Flags().IntVar(&topN, "top", 10, "number of top tips to list")
	return cmd
}

func newExportCmd() *cobra.Command {
	var filters filterFlags
	var output string
	var topN int

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the filtered rows, describe table and top tips to an xlsx workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := filters.view(cmd.Context())
			if err != nil {
				return err
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			defer f.Close()

			if err := export.WriteXLSX(f, v, topN); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d rows to %s\n", v.Count(), output)
			return nil
		},
	}
	filters.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "tips.xlsx", "output workbook path")
	cmd.Flags().IntVar(&topN, "top", 10, "number of rows in the top sheet")
	return cmd
}
