// Package chart turns built series into the payload a presentation layer
// draws: chart type, colors and optional trend-line overlays.
package chart

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/datavis-cli/internal/regression"
	"github.com/KaramelBytes/datavis-cli/internal/series"
)

// Type is the kind of chart to draw.
type Type string

const (
	Line    Type = "line"
	Bar     Type = "bar"
	Scatter Type = "scatter"
)

// ParseType accepts line, bar or scatter.
func ParseType(s string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(s))); t {
	case Line, Bar, Scatter:
		return t, nil
	case "":
		return Line, nil
	}
	return "", fmt.Errorf("invalid chart type: %s (use line, bar or scatter)", s)
}

var palette = []string{
	"#2563eb", // blue
	"#dc2626", // red
	"#16a34a", // green
	"#9333ea", // purple
	"#ea580c", // orange
	"#0891b2", // cyan
	"#4f46e5", // indigo
	"#c026d3", // fuchsia
}

// Colors returns n palette colors, cycling when n exceeds the palette.
func Colors(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = palette[i%len(palette)]
	}
	return out
}

// Dataset is one drawable sequence.
type Dataset struct {
	Label      string             `json:"label" yaml:"label"`
	Type       Type               `json:"type" yaml:"type"`
	X          []float64          `json:"x" yaml:"x"`
	Data       []float64          `json:"data" yaml:"data"`
	Color      string             `json:"color" yaml:"color"`
	Background string             `json:"background" yaml:"background"`
	Dashed     bool               `json:"dashed,omitempty" yaml:"dashed,omitempty"`
	Trend      *regression.Result `json:"trend,omitempty" yaml:"trend,omitempty"`
}

// Payload is everything a renderer needs for one chart.
type Payload struct {
	Type     Type      `json:"type" yaml:"type"`
	Title    string    `json:"title,omitempty" yaml:"title,omitempty"`
	XAxis    string    `json:"x_axis,omitempty" yaml:"x_axis,omitempty"`
	YAxis    string    `json:"y_axis,omitempty" yaml:"y_axis,omitempty"`
	Domain   []float64 `json:"domain" yaml:"domain"`
	Datasets []Dataset `json:"series" yaml:"series"`
}

// Options controls payload building.
type Options struct {
	Type  Type
	Trend bool // overlay a dashed OLS line per series; scatter charts only
	Title string
	XAxis string
	YAxis string
}

// Build assigns colors and, for scatter charts with Trend set, appends a
// trend dataset after each series. A series whose regression is undefined
// fails the whole build.
func Build(c *series.Chart, opt Options) (*Payload, error) {
	if c == nil {
		return nil, fmt.Errorf("chart is nil")
	}
	typ := opt.Type
	if typ == "" {
		typ = Line
	}
	p := &Payload{
		Type:   typ,
		Title:  opt.Title,
		XAxis:  opt.XAxis,
		YAxis:  opt.YAxis,
		Domain: c.Domain,
	}
	colors := Colors(len(c.Series))
	for i, s := range c.Series {
		bg := colors[i]
		if typ == Line {
			bg = "transparent"
		}
		p.Datasets = append(p.Datasets, Dataset{
			Label:      s.Label,
			Type:       typ,
			X:          s.X,
			Data:       s.Data,
			Color:      colors[i],
			Background: bg,
		})
		if !opt.Trend || typ != Scatter {
			continue
		}
		fit, err := regression.FitSeries(s)
		if err != nil {
			return nil, fmt.Errorf("trend for %s: %w", s.Label, err)
		}
		p.Datasets = append(p.Datasets, Dataset{
			Label:      fmt.Sprintf("%s (Trend: %s)", s.Label, fit.Equation()),
			Type:       Line,
			X:          s.X,
			Data:       fit.Predictions,
			Color:      colors[i],
			Background: colors[i],
			Dashed:     true,
			Trend:      fit,
		})
	}
	return p, nil
}
