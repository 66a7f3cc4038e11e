package cmd

import (
	"fmt"
	"strconv"

	"github.com/KaramelBytes/datavis-cli/internal/chart"
	cfgpkg "github.com/KaramelBytes/datavis-cli/internal/config"
	"github.com/KaramelBytes/datavis-cli/internal/dataset"
	"github.com/KaramelBytes/datavis-cli/internal/series"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set datavis configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := effectiveConfig()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "max_upload_bytes: %d\n", c.MaxUploadBytes)
		fmt.Fprintf(out, "schema: %s\n", c.Schema)
		fmt.Fprintf(out, "delimiter: %q\n", c.Delimiter)
		if c.DecimalSeparator != "" {
			fmt.Fprintf(out, "decimal_separator: %q\n", c.DecimalSeparator)
		}
		fmt.Fprintf(out, "duplicates: %s\n", c.Duplicates)
		fmt.Fprintf(out, "chart_type: %s\n", c.ChartType)
		fmt.Fprintf(out, "trend_lines: %t\n", c.TrendLines)
		fmt.Fprintf(out, "export_precision: %d\n", c.ExportPrecision)
		fmt.Fprintf(out, "output_format: %s\n", c.OutputFormat)
		if c.SheetName != "" {
			fmt.Fprintf(out, "sheet_name: %s\n", c.SheetName)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "max_upload_bytes":
			n, err := strconv.ParseInt(val, 10, 64)
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid int for max_upload_bytes: %v", val)
			}
			cfg.MaxUploadBytes = n
		case "schema":
			sch, err := dataset.LookupSchema(val)
			if err != nil {
				return err
			}
			cfg.Schema = sch.Name
		case "delimiter":
			switch val {
			case ",", ";", "tab", "\t":
				cfg.Delimiter = val
			default:
				return fmt.Errorf("invalid delimiter: %q (use ',' ';' or 'tab')", val)
			}
		case "decimal_separator":
			switch val {
			case "", ".", ",", "dot", "comma":
				cfg.DecimalSeparator = val
			default:
				return fmt.Errorf("invalid decimal_separator: %q (use '.'|'comma')", val)
			}
		case "duplicates":
			p, err := series.ParseDuplicatePolicy(val)
			if err != nil {
				return err
			}
			cfg.Duplicates = p.String()
		case "chart_type":
			t, err := chart.ParseType(val)
			if err != nil {
				return err
			}
			cfg.ChartType = string(t)
		case "trend_lines":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for trend_lines: %w", err)
			}
			cfg.TrendLines = b
		case "export_precision":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 || i > 17 {
				return fmt.Errorf("invalid int for export_precision: %v (0-17)", val)
			}
			cfg.ExportPrecision = i
		case "output_format":
			switch val {
			case "json", "yaml", "table":
				cfg.OutputFormat = val
			default:
				return fmt.Errorf("invalid output_format: %s (use json|yaml|table)", val)
			}
		case "sheet_name":
			cfg.SheetName = val
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
