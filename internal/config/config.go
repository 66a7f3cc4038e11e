package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	MaxUploadBytes   int64  `mapstructure:"max_upload_bytes" yaml:"max_upload_bytes"`
	Schema           string `mapstructure:"schema" yaml:"schema"`
	Delimiter        string `mapstructure:"delimiter" yaml:"delimiter"`
	DecimalSeparator string `mapstructure:"decimal_separator" yaml:"decimal_separator"`
	Duplicates       string `mapstructure:"duplicates" yaml:"duplicates"`
	ChartType        string `mapstructure:"chart_type" yaml:"chart_type"`
	TrendLines       bool   `mapstructure:"trend_lines" yaml:"trend_lines"`
	ExportPrecision  int    `mapstructure:"export_precision" yaml:"export_precision"`
	OutputFormat     string `mapstructure:"output_format" yaml:"output_format"`
	SheetName        string `mapstructure:"sheet_name" yaml:"sheet_name"`
}

// Defaults returns the built-in configuration used when no file or env overrides it.
func Defaults() *Global {
	return &Global{
		MaxUploadBytes:  5 << 20,
		Schema:          "xy",
		Delimiter:       ",",
		Duplicates:      "mean",
		ChartType:       "line",
		TrendLines:      true,
		ExportPrecision: 6,
		OutputFormat:    "json",
	}
}

// Dir returns ~/.datavis.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".datavis"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.datavis/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults; flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("DATAVIS")
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("max_upload_bytes", d.MaxUploadBytes)
	v.SetDefault("schema", d.Schema)
	v.SetDefault("delimiter", d.Delimiter)
	v.SetDefault("decimal_separator", d.DecimalSeparator)
	v.SetDefault("duplicates", d.Duplicates)
	v.SetDefault("chart_type", d.ChartType)
	v.SetDefault("trend_lines", d.TrendLines)
	v.SetDefault("export_precision", d.ExportPrecision)
	v.SetDefault("output_format", d.OutputFormat)
	v.SetDefault("sheet_name", d.SheetName)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
