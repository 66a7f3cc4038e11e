package cmd

import (
	"github.com/spf13/cobra"
)

var (
	plotIn  inputFlags
	plotOut outputFlags
)

var plotCmd = &cobra.Command{
	Use:   "plot <file|->",
	Short: "Parse a CSV/XLSX upload and print the chart payload",
	Long: `Validate and parse a CSV, TSV or XLSX file (or stdin with "-"), group rows into
series and print the chart payload. With --schema temperature the Celsius column is
converted to 1/K. Scatter charts get a dashed OLS trend line per series unless
--trend=false.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := plotIn.load(cmd, args[0])
		if err != nil {
			return err
		}
		p, err := s.Payload()
		if err != nil {
			return err
		}
		return plotOut.emit(cmd, p, payloadTable(p, plotOut.resolvedPrecision()))
	},
}

func init() {
	rootCmd.AddCommand(plotCmd)
	plotIn.register(plotCmd, true)
	plotOut.register(plotCmd)
}
