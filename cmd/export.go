package cmd

import (
	"bytes"

	"github.com/KaramelBytes/datavis-cli/internal/dataset"
	"github.com/KaramelBytes/datavis-cli/internal/export"
	"github.com/KaramelBytes/datavis-cli/internal/series"
	"github.com/spf13/cobra"
)

var (
	expIn     inputFlags
	expOut    outputFlags
	expSeries string
)

var exportCmd = &cobra.Command{
	Use:   "export <file|->",
	Short: "Export one series as a two-column CSV",
	Long: `Parse an upload and write one series as CSV: the x column and the series values with
six decimals (see --precision). For the temperature schema the header is
"Hours,1/Temperature (K⁻¹)". Use --series to pick a category; the first series is used otherwise.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := expIn.load(cmd, args[0])
		if err != nil {
			return err
		}
		ser, err := s.Series(expSeries)
		if err != nil {
			return err
		}
		yHeader := ser.Label
		if s.Options.Schema.Name == dataset.Temperature.Name {
			yHeader = series.InverseTemperatureLabel
		}
		var buf bytes.Buffer
		if err := export.WriteCSV(&buf, ser, s.Dataset.XColumn, yHeader, expOut.resolvedPrecision()); err != nil {
			return err
		}
		debugf("exported %d row(s) of series %q", ser.Len(), ser.Label)
		return expOut.write(cmd, buf.Bytes(), "CSV")
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	expIn.register(exportCmd, true)
	exportCmd.Flags().StringVarP(&expOut.output, "output", "o", "", "write to file instead of stdout")
	exportCmd.Flags().IntVar(&expOut.precision, "precision", -1, "decimals for values (default from config)")
	exportCmd.Flags().StringVar(&expSeries, "series", "", "series label to export (default first)")
}
