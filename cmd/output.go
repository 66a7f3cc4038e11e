package cmd

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/KaramelBytes/datavis-cli/internal/chart"
	"github.com/KaramelBytes/datavis-cli/internal/export"
	"github.com/spf13/cobra"
)

// outputFlags select the encoding and destination of a command's result.
type outputFlags struct {
	format    string
	output    string
	precision int
}

func (f *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "output format: json | yaml | table (default from config)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().IntVar(&f.precision, "precision", -1, "decimals for table and CSV values (default from config)")
}

func (f *outputFlags) resolvedFormat() (string, error) {
	format := strings.ToLower(strings.TrimSpace(f.format))
	if format == "" {
		format = effectiveConfig().OutputFormat
	}
	switch format {
	case "json", "yaml", "table":
		return format, nil
	case "yml":
		return "yaml", nil
	default:
		return "", fmt.Errorf("unsupported --format: %s (use json|yaml|table)", format)
	}
}

func (f *outputFlags) resolvedPrecision() int {
	if f.precision >= 0 {
		return f.precision
	}
	if p := effectiveConfig().ExportPrecision; p >= 0 {
		return p
	}
	return export.DefaultPrecision
}

// emit encodes v (or its table rendering) to --output or stdout.
func (f *outputFlags) emit(cmd *cobra.Command, v any, table func(io.Writer) error) error {
	format, err := f.resolvedFormat()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	switch format {
	case "json":
		err = export.WriteJSON(&buf, v)
	case "yaml":
		err = export.WriteYAML(&buf, v)
	case "table":
		err = table(&buf)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	return f.write(cmd, buf.Bytes(), format)
}

func (f *outputFlags) write(cmd *cobra.Command, data []byte, what string) error {
	if f.output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := export.SafeWriteFile(f.output, data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s to %s\n", what, f.output)
	return nil
}

// payloadTable renders a payload in long form: one line per (series, x).
func payloadTable(p *chart.Payload, precision int) func(io.Writer) error {
	return func(w io.Writer) error {
		xh, yh := p.XAxis, p.YAxis
		if xh == "" {
			xh = "X"
		}
		if yh == "" {
			yh = "Value"
		}
		var rows [][]string
		for _, ds := range p.Datasets {
			for i := range ds.Data {
				rows = append(rows, []string{
					ds.Label,
					strconv.FormatFloat(ds.X[i], 'f', -1, 64),
					strconv.FormatFloat(ds.Data[i], 'f', precision, 64),
				})
			}
		}
		return export.WriteTable(w, []string{"Series", xh, yh}, rows, map[int]bool{1: true, 2: true})
	}
}
