// Package series groups validated rows into chart-ready series over a shared
// sorted domain.
package series

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/KaramelBytes/datavis-cli/internal/dataset"
	"github.com/KaramelBytes/datavis-cli/internal/temperature"
)

// InverseTemperatureLabel labels the derived 1/K series.
const InverseTemperatureLabel = "1/Temperature (K⁻¹)"

// DefaultLabel is used for the implicit series when no label is configured.
const DefaultLabel = "Series"

// ErrNoRows indicates Build was called without rows.
var ErrNoRows = errors.New("no rows to build series from")

// DuplicatePolicy decides how rows sharing an X value within one series
// collapse to a single point.
type DuplicatePolicy int

const (
	Mean DuplicatePolicy = iota
	First
	Last
)

func (p DuplicatePolicy) String() string {
	switch p {
	case First:
		return "first"
	case Last:
		return "last"
	}
	return "mean"
}

// ParseDuplicatePolicy maps "mean", "first" or "last" to a policy.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mean", "average", "avg":
		return Mean, nil
	case "first", "keep-first":
		return First, nil
	case "last", "keep-last":
		return Last, nil
	}
	return Mean, fmt.Errorf("invalid duplicate policy: %s (use mean, first or last)", s)
}

// Series is one named sequence of dependent values. X[i] pairs with Data[i];
// X is strictly ascending. Domain points with no row in this series are
// omitted, so len(X) may be shorter than the chart domain.
type Series struct {
	Label string    `json:"label" yaml:"label"`
	X     []float64 `json:"x" yaml:"x"`
	Data  []float64 `json:"data" yaml:"data"`
}

// Len returns the number of points.
func (s Series) Len() int { return len(s.Data) }

// Chart is the shared domain plus one series per category.
type Chart struct {
	Domain []float64 `json:"domain" yaml:"domain"`
	Series []Series  `json:"series" yaml:"series"`
}

// Options controls series building.
type Options struct {
	Duplicates DuplicatePolicy
	// Label names the implicit series used when rows carry no category.
	Label string
}

// Domain returns the distinct X values of rows in ascending order.
func Domain(rows []dataset.Row) []float64 {
	xs := make([]float64, len(rows))
	for i, r := range rows {
		xs[i] = r.X
	}
	sort.Float64s(xs)
	out := xs[:0]
	for i, x := range xs {
		if i == 0 || x != out[len(out)-1] {
			out = append(out, x)
		}
	}
	return out
}

// Build groups rows by category (first-seen order) and emits each group's Y
// values sorted by X.
func Build(rows []dataset.Row, opt Options) (*Chart, error) {
	return build(rows, opt, nil)
}

// BuildInverseTemperature treats Y as degrees Celsius and emits 1/K per
// point. Absolute zero aborts the build with a *temperature.DomainError.
func BuildInverseTemperature(rows []dataset.Row, opt Options) (*Chart, error) {
	if opt.Label == "" {
		opt.Label = InverseTemperatureLabel
	}
	return build(rows, opt, temperature.InverseFromCelsius)
}

type point struct{ x, y float64 }

func build(rows []dataset.Row, opt Options, transform func(float64) (float64, error)) (*Chart, error) {
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	var order []string
	groups := map[string][]point{}
	for _, r := range rows {
		y := r.Y
		if transform != nil {
			v, err := transform(y)
			if err != nil {
				return nil, fmt.Errorf("row x=%g: %w", r.X, err)
			}
			y = v
		}
		if _, ok := groups[r.Category]; !ok {
			order = append(order, r.Category)
		}
		groups[r.Category] = append(groups[r.Category], point{x: r.X, y: y})
	}

	c := &Chart{Domain: Domain(rows), Series: make([]Series, 0, len(order))}
	for _, cat := range order {
		label := cat
		if label == "" {
			label = opt.Label
			if label == "" {
				label = DefaultLabel
			}
		}
		c.Series = append(c.Series, collapse(label, groups[cat], opt.Duplicates))
	}
	return c, nil
}

func collapse(label string, pts []point, policy DuplicatePolicy) Series {
	sort.SliceStable(pts, func(i, j int) bool { return pts[i].x < pts[j].x })
	s := Series{Label: label, X: make([]float64, 0, len(pts)), Data: make([]float64, 0, len(pts))}
	for i := 0; i < len(pts); {
		j := i
		sum := 0.0
		for j < len(pts) && pts[j].x == pts[i].x {
			sum += pts[j].y
			j++
		}
		var y float64
		switch policy {
		case First:
			y = pts[i].y
		case Last:
			y = pts[j-1].y
		default:
			y = sum / float64(j-i)
		}
		s.X = append(s.X, pts[i].x)
		s.Data = append(s.Data, y)
		i = j
	}
	return s
}
