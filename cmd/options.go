package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/datavis-cli/internal/chart"
	cfgpkg "github.com/KaramelBytes/datavis-cli/internal/config"
	"github.com/KaramelBytes/datavis-cli/internal/dataset"
	"github.com/KaramelBytes/datavis-cli/internal/series"
	"github.com/KaramelBytes/datavis-cli/internal/session"
	"github.com/spf13/cobra"
)

// inputFlags are shared by every command that loads data.
type inputFlags struct {
	schema      string
	chartType   string
	trend       bool
	duplicates  string
	delimiter   string
	decimal     string
	sheet       string
	contentType string
}

func (f *inputFlags) register(cmd *cobra.Command, fileInput bool) {
	cmd.Flags().StringVar(&f.schema, "schema", "", "row schema: xy | temperature (default from config)")
	cmd.Flags().StringVarP(&f.chartType, "type", "t", "", "chart type: line | bar | scatter (default from config)")
	cmd.Flags().BoolVar(&f.trend, "trend", true, "overlay OLS trend lines on scatter charts")
	cmd.Flags().StringVar(&f.duplicates, "duplicates", "", "duplicate x within a series: mean | first | last")
	if !fileInput {
		return
	}
	cmd.Flags().StringVar(&f.delimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	cmd.Flags().StringVar(&f.decimal, "decimal", "", "decimal separator for numbers: '.'|'comma' (auto-detect if omitted)")
	cmd.Flags().StringVar(&f.sheet, "sheet", "", "XLSX: sheet name (default first sheet)")
	cmd.Flags().StringVar(&f.contentType, "content-type", "", "declared content type (inferred from extension if omitted)")
}

// options merges flags over the loaded config.
func (f *inputFlags) options(cmd *cobra.Command) (session.Options, error) {
	c := effectiveConfig()
	var opt session.Options

	name := c.Schema
	if f.schema != "" {
		name = f.schema
	}
	sch, err := dataset.LookupSchema(name)
	if err != nil {
		return opt, err
	}
	opt.Schema = sch

	ct := c.ChartType
	if f.chartType != "" {
		ct = f.chartType
	}
	if opt.ChartType, err = chart.ParseType(ct); err != nil {
		return opt, err
	}

	opt.Trend = c.TrendLines
	if cmd.Flags().Changed("trend") {
		opt.Trend = f.trend
	}

	dup := c.Duplicates
	if f.duplicates != "" {
		dup = f.duplicates
	}
	if opt.Duplicates, err = series.ParseDuplicatePolicy(dup); err != nil {
		return opt, err
	}

	opt.Parse = dataset.DefaultOptions()
	if c.MaxUploadBytes > 0 {
		opt.Parse.MaxBytes = c.MaxUploadBytes
	}
	delim := c.Delimiter
	if f.delimiter != "" {
		delim = f.delimiter
	}
	switch delim {
	case "", ",":
	case "\t", "tab":
		opt.Parse.Delimiter = '\t'
	case ";":
		opt.Parse.Delimiter = ';'
	default:
		return opt, fmt.Errorf("unsupported --delimiter: %s", delim)
	}
	dec := c.DecimalSeparator
	if f.decimal != "" {
		dec = f.decimal
	}
	switch strings.ToLower(strings.TrimSpace(dec)) {
	case ",", "comma":
		opt.Parse.DecimalSeparator = ','
	case ".", "dot":
		opt.Parse.DecimalSeparator = '.'
	case "":
	default:
		return opt, fmt.Errorf("unsupported --decimal: %s (use '.'|'comma')", dec)
	}
	opt.Parse.Sheet = c.SheetName
	if f.sheet != "" {
		opt.Parse.Sheet = f.sheet
	}
	return opt, nil
}

// load reads path ("-" for stdin) into a fresh session.
func (f *inputFlags) load(cmd *cobra.Command, path string) (session.Session, error) {
	opt, err := f.options(cmd)
	if err != nil {
		return session.Session{}, err
	}
	s := session.New(opt)
	if path == "-" {
		ct := f.contentType
		if ct == "" {
			ct = "text/csv"
		}
		s, err = s.LoadReader(dataset.Upload{Name: "stdin", ContentType: ct}, cmd.InOrStdin())
	} else {
		s, err = s.Load(path, f.contentType)
	}
	if err != nil {
		return s, err
	}
	logLoaded(s)
	return s, nil
}

func logLoaded(s session.Session) {
	rows := len(s.Dataset.Rows())
	debugf("session %s: %s parsed with schema %s", s.ID, s.Source, s.Options.Schema.Name)
	debugf("kept %d row(s), dropped %d", rows, len(s.Dataset.Rejected()))
	debugf("domain has %d point(s), %d series", len(s.Chart.Domain), len(s.Chart.Series))
}

// effectiveConfig returns the loaded config or the built-in defaults.
func effectiveConfig() *cfgpkg.Global {
	if cfg == nil {
		return cfgpkg.Defaults()
	}
	return cfg
}
