package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/datavis-cli/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	debug   bool
	// Upload size limit in bytes (overrides config if set)
	flagMaxBytes int64

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "datavis",
	Short: "datavis: turn CSV data into chart-ready series",
	Long: `datavis parses CSV or XLSX uploads (or manually entered points), groups them into
series, derives inverse-temperature values, fits trend lines and emits a chart payload
as JSON, YAML or a terminal table.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.datavis/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().Int64Var(&flagMaxBytes, "max-bytes", 0, "upload size limit in bytes (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c

	// Apply CLI overrides if provided
	if rootCmd.PersistentFlags().Changed("max-bytes") && flagMaxBytes > 0 {
		cfg.MaxUploadBytes = flagMaxBytes
	}
}

// debugf prints a diagnostic line to stderr when --debug is set.
func debugf(format string, args ...any) {
	if !debug {
		return
	}
	fmt.Fprintf(os.Stderr, "[debug] "+format+"\n", args...)
}
