// Package analysis summarizes built series: per-series descriptive
// statistics and robust outlier counts.
package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/KaramelBytes/datavis-cli/internal/series"
)

// DefaultOutlierThreshold is the |z| above which a value counts as an outlier.
const DefaultOutlierThreshold = 3.5

// minOutlierSample is the smallest series the MAD-based check runs on.
const minOutlierSample = 8

// Options controls summary behavior.
type Options struct {
	// Outlier detection via robust Z-score (MAD). Counts |z|>OutlierThreshold.
	Outliers         bool
	OutlierThreshold float64
}

// Report summarizes every series of a chart.
type Report struct {
	Name   string
	Points int // domain size
	Series []Summary
}

// Summary holds descriptive statistics for one series.
type Summary struct {
	Label  string  `json:"label" yaml:"label"`
	Count  int     `json:"count" yaml:"count"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
	Mean   float64 `json:"mean" yaml:"mean"`
	Std    float64 `json:"std" yaml:"std"`
	Median float64 `json:"median" yaml:"median"`
	MAD    float64 `json:"mad" yaml:"mad"`
	// Outliers (robust Z via MAD)
	OutliersCount    int     `json:"outliers,omitempty" yaml:"outliers,omitempty"`
	OutliersMaxAbsZ  float64 `json:"outliers_max_abs_z,omitempty" yaml:"outliers_max_abs_z,omitempty"`
	OutlierThreshold float64 `json:"outlier_threshold,omitempty" yaml:"outlier_threshold,omitempty"`
}

// Summarize computes a Summary per series of c, in series order.
func Summarize(name string, c *series.Chart, opt Options) (*Report, error) {
	if c == nil {
		return nil, fmt.Errorf("chart is nil")
	}
	rep := &Report{Name: name, Points: len(c.Domain)}
	for _, s := range c.Series {
		rep.Series = append(rep.Series, summarize(s, opt))
	}
	return rep, nil
}

func summarize(s series.Series, opt Options) Summary {
	out := Summary{Label: s.Label, Count: len(s.Data)}
	if len(s.Data) == 0 {
		return out
	}
	// Welford running mean/variance
	var mean, m2 float64
	out.Min, out.Max = s.Data[0], s.Data[0]
	for i, v := range s.Data {
		if v < out.Min {
			out.Min = v
		}
		if v > out.Max {
			out.Max = v
		}
		d := v - mean
		mean += d / float64(i+1)
		m2 += d * (v - mean)
	}
	out.Mean = mean
	if n := len(s.Data); n > 1 {
		out.Std = math.Sqrt(m2 / float64(n-1))
	}
	out.Median, out.MAD = medianMAD(s.Data)

	if !opt.Outliers || len(s.Data) < minOutlierSample {
		return out
	}
	thr := opt.OutlierThreshold
	if thr <= 0 {
		thr = DefaultOutlierThreshold
	}
	out.OutlierThreshold = thr
	if out.MAD == 0 {
		return out
	}
	for _, v := range s.Data {
		az := math.Abs(0.6745 * (v - out.Median) / out.MAD)
		if az > thr {
			out.OutliersCount++
		}
		if az > out.OutliersMaxAbsZ {
			out.OutliersMaxAbsZ = az
		}
	}
	return out
}

// Markdown renders a compact report for terminals or standalone docs.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("Domain points: %d\n", r.Points))
	b.WriteString(fmt.Sprintf("Series: %d\n\n", len(r.Series)))

	b.WriteString("[SERIES]\n")
	for _, s := range r.Series {
		b.WriteString(fmt.Sprintf("- %s: n=%d; min %.4g, max %.4g, mean %.4g, std %.4g, median %.4g",
			s.Label, s.Count, s.Min, s.Max, s.Mean, s.Std, s.Median))
		if s.OutlierThreshold > 0 {
			b.WriteString(fmt.Sprintf("; outliers: %d above |z|>%.1f", s.OutliersCount, s.OutlierThreshold))
			if s.OutliersMaxAbsZ > 0 {
				b.WriteString(fmt.Sprintf(" (max |z|≈%.2f)", s.OutliersMaxAbsZ))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// medianMAD computes median and MAD (median absolute deviation) of values.
func medianMAD(vals []float64) (median, mad float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	median = quantile(cp, 0.5)
	dev := make([]float64, len(cp))
	for i, v := range cp {
		dev[i] = math.Abs(v - median)
	}
	sort.Float64s(dev)
	mad = quantile(dev, 0.5)
	return
}

func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
