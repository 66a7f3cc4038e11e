package cmd

import (
	"io"

	"github.com/KaramelBytes/datavis-cli/internal/analysis"
	"github.com/spf13/cobra"
)

var (
	descIn        inputFlags
	descOut       outputFlags
	descOutliers  bool
	descThreshold float64
)

var describeCmd = &cobra.Command{
	Use:   "describe <file|->",
	Short: "Summarize each series of an upload",
	Long: `Parse an upload and print descriptive statistics per series (count, min, max, mean,
std, median, MAD). With --outliers, values whose robust z-score exceeds --outlier-threshold
are counted. The table format prints a markdown summary.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := descIn.load(cmd, args[0])
		if err != nil {
			return err
		}
		rep, err := analysis.Summarize(s.Source, s.Chart, analysis.Options{
			Outliers:         descOutliers,
			OutlierThreshold: descThreshold,
		})
		if err != nil {
			return err
		}
		return descOut.emit(cmd, rep.Series, func(w io.Writer) error {
			_, err := io.WriteString(w, rep.Markdown())
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	descIn.register(describeCmd, true)
	describeCmd.Flags().StringVarP(&descOut.format, "format", "f", "", "output format: json | yaml | table (default from config)")
	describeCmd.Flags().StringVarP(&descOut.output, "output", "o", "", "write to file instead of stdout")
	descOut.precision = -1
	describeCmd.Flags().BoolVar(&descOutliers, "outliers", false, "count robust z-score outliers per series")
	describeCmd.Flags().Float64Var(&descThreshold, "outlier-threshold", analysis.DefaultOutlierThreshold, "robust |z| threshold for outliers")
}
