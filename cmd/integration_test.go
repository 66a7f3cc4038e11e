package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/datavis-cli/internal/analysis"
	"github.com/KaramelBytes/datavis-cli/internal/chart"
	"github.com/KaramelBytes/datavis-cli/internal/dataset"
	"github.com/KaramelBytes/datavis-cli/internal/regression"
	"github.com/KaramelBytes/datavis-cli/internal/temperature"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetFlags restores every flag of c and its children to its default, so
// bound variables and Changed state do not leak between invocations.
func resetFlags(c *cobra.Command) {
	reset := func(fl *pflag.Flag) {
		if sv, ok := fl.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = fl.Value.Set(fl.DefValue)
		}
		fl.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// runCmd executes the root command with args and returns what it printed.
func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCmd(t, "", args...)
	if err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return out
}

// isolate points HOME at a temp dir and writes the named files into it.
func isolate(t *testing.T, files map[string]string) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(home, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return home
}

func decodePayload(t *testing.T, out string) chart.Payload {
	t.Helper()
	var p chart.Payload
	if err := json.Unmarshal([]byte(out), &p); err != nil {
		t.Fatalf("decode payload: %v\n%s", err, out)
	}
	return p
}

func TestCLI_PlotDropsInvalidRows(t *testing.T) {
	home := isolate(t, map[string]string{"data.csv": "x,y\n1,10\n2,abc\n3,30\n"})

	p := decodePayload(t, mustRun(t, "plot", filepath.Join(home, "data.csv"), "--format", "json"))
	if p.Type != chart.Line {
		t.Fatalf("type = %s, want line", p.Type)
	}
	if len(p.Domain) != 2 || p.Domain[0] != 1 || p.Domain[1] != 3 {
		t.Fatalf("domain = %v, want [1 3]", p.Domain)
	}
	if len(p.Datasets) != 1 {
		t.Fatalf("datasets = %d, want 1", len(p.Datasets))
	}
	ds := p.Datasets[0]
	if ds.Label != "y" || len(ds.Data) != 2 || ds.Data[0] != 10 || ds.Data[1] != 30 {
		t.Fatalf("unexpected dataset: %+v", ds)
	}
}

func TestCLI_PlotTemperatureScatterWithTrend(t *testing.T) {
	home := isolate(t, map[string]string{
		"temps.csv": "Hours,Celsius (°C),Category\n0,25,A\n1,30,A\n2,35,A\n0,20,B\n2,40,B\n",
	})

	p := decodePayload(t, mustRun(t, "plot", filepath.Join(home, "temps.csv"),
		"--schema", "temperature", "--type", "scatter"))
	if p.YAxis != "1/Temperature (K⁻¹)" {
		t.Fatalf("y axis = %q", p.YAxis)
	}
	if len(p.Datasets) != 4 {
		t.Fatalf("datasets = %d, want 2 series + 2 trends", len(p.Datasets))
	}
	a, trend := p.Datasets[0], p.Datasets[1]
	want, err := temperature.InverseFromCelsius(25)
	if err != nil {
		t.Fatalf("InverseFromCelsius: %v", err)
	}
	if a.Label != "A" || a.Data[0] != want {
		t.Fatalf("series A = %+v, want first value %v", a, want)
	}
	if !trend.Dashed || trend.Type != chart.Line || !strings.HasPrefix(trend.Label, "A (Trend: y = ") {
		t.Fatalf("unexpected trend dataset: %+v", trend)
	}
	if p.Datasets[2].Label != "B" || len(p.Datasets[2].Data) != 2 {
		t.Fatalf("series B should skip the missing hour: %+v", p.Datasets[2])
	}

	// --trend=false drops the overlays
	p = decodePayload(t, mustRun(t, "plot", filepath.Join(home, "temps.csv"),
		"--schema", "temperature", "--type", "scatter", "--trend=false"))
	if len(p.Datasets) != 2 {
		t.Fatalf("datasets = %d, want 2 without trend", len(p.Datasets))
	}
}

func TestCLI_PlotStdinTable(t *testing.T) {
	isolate(t, nil)
	out, err := runCmd(t, "x,y,category\n1,5,a\n2,6,b\n", "plot", "-", "--format", "table")
	if err != nil {
		t.Fatalf("plot stdin: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("want header + 2 rows, got %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "Series") || !strings.HasPrefix(lines[1], "a ") || !strings.HasPrefix(lines[2], "b ") {
		t.Fatalf("unexpected table:\n%s", out)
	}
}

func TestCLI_PlotRejectsOversizedUpload(t *testing.T) {
	home := isolate(t, map[string]string{"data.csv": "x,y\n1,10\n2,20\n3,30\n"})

	_, err := runCmd(t, "", "plot", filepath.Join(home, "data.csv"), "--max-bytes", "10")
	var ve *dataset.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestCLI_ExportTemperatureCSV(t *testing.T) {
	home := isolate(t, map[string]string{"temps.csv": "Hours,Celsius\n0,25\n1,30\n"})
	dest := filepath.Join(home, "out.csv")

	out := mustRun(t, "export", filepath.Join(home, "temps.csv"), "--schema", "temperature", "-o", dest)
	if !strings.Contains(out, "✓ Wrote CSV to "+dest) {
		t.Fatalf("missing status line: %q", out)
	}
	b, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	want := "Hours,1/Temperature (K⁻¹)\n0,0.003354\n1,0.003299\n"
	if string(b) != want {
		t.Fatalf("export =\n%q\nwant\n%q", b, want)
	}
}

func TestCLI_ExportUnknownSeries(t *testing.T) {
	home := isolate(t, map[string]string{"data.csv": "x,y,category\n1,5,a\n"})
	if _, err := runCmd(t, "", "export", filepath.Join(home, "data.csv"), "--series", "zzz"); err == nil {
		t.Fatalf("expected error for unknown series")
	}
}

func TestCLI_Points(t *testing.T) {
	isolate(t, nil)
	p := decodePayload(t, mustRun(t, "points", "--point", "2,20", "--point", "1,10", "--point", "2,40"))
	if len(p.Domain) != 2 {
		t.Fatalf("domain = %v, want 2 distinct x", p.Domain)
	}
	// duplicate x=2 collapses to the mean by default
	if d := p.Datasets[0].Data; len(d) != 2 || d[0] != 10 || d[1] != 30 {
		t.Fatalf("data = %v, want [10 30]", d)
	}

	p = decodePayload(t, mustRun(t, "points", "--point", "2,20", "--point", "1,10", "--point", "2,40", "--duplicates", "last"))
	if d := p.Datasets[0].Data; d[1] != 40 {
		t.Fatalf("data = %v, want last value 40 at x=2", d)
	}

	if _, err := runCmd(t, "", "points", "--point", "1,abc"); err == nil {
		t.Fatalf("expected error for invalid manual point")
	}
	if _, err := runCmd(t, "", "points"); err == nil {
		t.Fatalf("expected error without points")
	}
}

func TestCLI_Regress(t *testing.T) {
	isolate(t, nil)
	out := mustRun(t, "regress", "--x", "1,2,3", "--y", "2,4,6")
	var reports []fitReport
	if err := json.Unmarshal([]byte(out), &reports); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(reports) != 1 {
		t.Fatalf("reports = %d", len(reports))
	}
	r := reports[0]
	if r.Slope != 2 || r.Intercept != 0 || r.Equation != "y = 2.00x + 0.00" {
		t.Fatalf("unexpected fit: %+v", r)
	}
	if len(r.Predictions) != 3 || r.Predictions[0] != 2 || r.Predictions[1] != 4 || r.Predictions[2] != 6 {
		t.Fatalf("predictions = %v", r.Predictions)
	}

	_, err := runCmd(t, "", "regress", "--x", "5,5,5", "--y", "1,2,3")
	var de *regression.DegenerateInputError
	if !errors.As(err, &de) {
		t.Fatalf("expected DegenerateInputError, got %v", err)
	}
}

func TestCLI_RegressFileFitsEverySeries(t *testing.T) {
	home := isolate(t, map[string]string{"data.csv": "x,y,category\n1,2,a\n2,4,a\n1,1,b\n3,7,b\n"})
	out := mustRun(t, "regress", filepath.Join(home, "data.csv"), "--format", "table")
	if !strings.Contains(out, "y = 2.00x + 0.00") || !strings.Contains(out, "y = 3.00x + -2.00") {
		t.Fatalf("unexpected table:\n%s", out)
	}
}

func TestCLI_Describe(t *testing.T) {
	home := isolate(t, map[string]string{"data.csv": "x,y\n1,2\n2,4\n3,4\n4,6\n"})
	out := mustRun(t, "describe", filepath.Join(home, "data.csv"), "--format", "json")
	var sums []analysis.Summary
	if err := json.Unmarshal([]byte(out), &sums); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(sums) != 1 || sums[0].Count != 4 || sums[0].Median != 4 {
		t.Fatalf("unexpected summary: %+v", sums)
	}
}

func TestCLI_ConfigSetAndShow(t *testing.T) {
	home := isolate(t, nil)

	mustRun(t, "config", "set", "chart_type", "bar")
	if _, err := os.Stat(filepath.Join(home, ".datavis", "config.yaml")); err != nil {
		t.Fatalf("config not saved: %v", err)
	}
	out := mustRun(t, "config", "show")
	if !strings.Contains(out, "chart_type: bar") || !strings.Contains(out, "export_precision: 6") {
		t.Fatalf("unexpected config show:\n%s", out)
	}

	// saved chart type applies to later commands
	p := decodePayload(t, mustRun(t, "points", "--point", "1,1", "--point", "2,2"))
	if p.Type != chart.Bar {
		t.Fatalf("type = %s, want bar from config", p.Type)
	}

	if _, err := runCmd(t, "", "config", "set", "chart_type", "pie"); err == nil {
		t.Fatalf("expected error for invalid chart type")
	}
	if _, err := runCmd(t, "", "config", "set", "nope", "1"); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestCLI_ExportHonorsZeroPrecisionFromConfig(t *testing.T) {
	home := isolate(t, map[string]string{"d.csv": "x,y\n1,3\n2,4\n"})

	mustRun(t, "config", "set", "export_precision", "0")
	out := mustRun(t, "export", filepath.Join(home, "d.csv"))
	if want := "x,y\n1,3\n2,4\n"; out != want {
		t.Fatalf("export = %q, want %q", out, want)
	}
}

func TestCLI_ExportTemperatureHeaderWithCategories(t *testing.T) {
	home := isolate(t, map[string]string{
		"temps.csv": "Hours,Celsius,Category\n0,25,A\n1,30,B\n",
	})

	out := mustRun(t, "export", filepath.Join(home, "temps.csv"), "--schema", "temperature", "--series", "B")
	if want := "Hours,1/Temperature (K⁻¹)\n1,0.003299\n"; out != want {
		t.Fatalf("export = %q, want %q", out, want)
	}
}

func TestCLI_PlotPayloadKeys(t *testing.T) {
	home := isolate(t, map[string]string{"data.csv": "x,y\n1,10\n2,20\n"})

	out := mustRun(t, "plot", filepath.Join(home, "data.csv"))
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(out), &raw); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	for _, key := range []string{"type", "domain", "series"} {
		if _, ok := raw[key]; !ok {
			t.Fatalf("payload missing %q key:\n%s", key, out)
		}
	}
	if _, ok := raw["datasets"]; ok {
		t.Fatalf("payload still uses a datasets key:\n%s", out)
	}
}
