package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/KaramelBytes/datavis-cli/internal/export"
	"github.com/KaramelBytes/datavis-cli/internal/regression"
	"github.com/spf13/cobra"
)

var (
	regIn  inputFlags
	regOut outputFlags
	regX   []float64
	regY   []float64
)

// fitReport is one fitted line as printed by regress.
type fitReport struct {
	Label       string    `json:"label" yaml:"label"`
	Equation    string    `json:"equation" yaml:"equation"`
	Slope       float64   `json:"slope" yaml:"slope"`
	Intercept   float64   `json:"intercept" yaml:"intercept"`
	X           []float64 `json:"x" yaml:"x"`
	Predictions []float64 `json:"predictions" yaml:"predictions"`
}

func newFitReport(label string, x []float64, fit *regression.Result) fitReport {
	return fitReport{
		Label:       label,
		Equation:    fit.Equation(),
		Slope:       fit.Slope,
		Intercept:   fit.Intercept,
		X:           x,
		Predictions: fit.Predictions,
	}
}

var regressCmd = &cobra.Command{
	Use:   "regress [file|-]",
	Short: "Fit ordinary-least-squares lines",
	Long: `Fit y = slope*x + intercept. Either pass the points directly:

  datavis regress --x 1,2,3 --y 2,4,6

or give an upload, in which case every series is fitted against its own x values.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var reports []fitReport
		if len(args) == 0 {
			if len(regX) == 0 && len(regY) == 0 {
				return fmt.Errorf("provide --x and --y, or a file")
			}
			fit, err := regression.Fit(regX, regY)
			if err != nil {
				return err
			}
			reports = append(reports, newFitReport("input", regX, fit))
		} else {
			s, err := regIn.load(cmd, args[0])
			if err != nil {
				return err
			}
			for _, ser := range s.Chart.Series {
				fit, err := regression.FitSeries(ser)
				if err != nil {
					return fmt.Errorf("series %s: %w", ser.Label, err)
				}
				reports = append(reports, newFitReport(ser.Label, ser.X, fit))
			}
		}
		return regOut.emit(cmd, reports, fitTable(reports, regOut.resolvedPrecision()))
	},
}

func fitTable(reports []fitReport, precision int) func(io.Writer) error {
	return func(w io.Writer) error {
		rows := make([][]string, 0, len(reports))
		for _, r := range reports {
			rows = append(rows, []string{
				r.Label,
				strconv.FormatFloat(r.Slope, 'f', precision, 64),
				strconv.FormatFloat(r.Intercept, 'f', precision, 64),
				r.Equation,
			})
		}
		return export.WriteTable(w, []string{"Series", "Slope", "Intercept", "Equation"}, rows, map[int]bool{1: true, 2: true})
	}
}

func init() {
	rootCmd.AddCommand(regressCmd)
	regIn.register(regressCmd, true)
	regOut.register(regressCmd)
	regressCmd.Flags().Float64SliceVar(&regX, "x", nil, "x values, comma-separated")
	regressCmd.Flags().Float64SliceVar(&regY, "y", nil, "y values, comma-separated")
}
