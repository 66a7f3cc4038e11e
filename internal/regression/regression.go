// Package regression fits ordinary-least-squares trend lines.
package regression

import (
	"fmt"
	"math"

	"github.com/KaramelBytes/datavis-cli/internal/series"
)

// DegenerateInputError indicates a best-fit line is undefined for the input.
type DegenerateInputError struct {
	N      int
	Reason string
}

func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("regression undefined for %d point(s): %s", e.N, e.Reason)
}

// Result is a fitted line and its value at every input x.
type Result struct {
	Slope       float64   `json:"slope" yaml:"slope"`
	Intercept   float64   `json:"intercept" yaml:"intercept"`
	Predictions []float64 `json:"predictions" yaml:"predictions"`
}

// Fit computes the closed-form OLS line through (x[i], y[i]). It needs at
// least two points and two distinct x values.
func Fit(x, y []float64) (*Result, error) {
	n := len(x)
	if n != len(y) {
		return nil, &DegenerateInputError{N: n, Reason: fmt.Sprintf("x has %d values, y has %d", n, len(y))}
	}
	if n < 2 {
		return nil, &DegenerateInputError{N: n, Reason: "need at least 2 points"}
	}

	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += x[i]
		sumY += y[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var num, den float64
	for i := 0; i < n; i++ {
		dx := x[i] - meanX
		num += dx * (y[i] - meanY)
		den += dx * dx
	}
	if den == 0 {
		return nil, &DegenerateInputError{N: n, Reason: "all x values are identical"}
	}

	slope := num / den
	intercept := meanY - slope*meanX
	if math.IsNaN(slope) || math.IsInf(slope, 0) || math.IsNaN(intercept) || math.IsInf(intercept, 0) {
		return nil, &DegenerateInputError{N: n, Reason: "coefficients are not finite"}
	}

	pred := make([]float64, n)
	for i, xi := range x {
		// explicit conversion rules out FMA fusion
		pred[i] = float64(slope*xi) + intercept
	}
	return &Result{Slope: slope, Intercept: intercept, Predictions: pred}, nil
}

// FitSeries fits s.Data against the series' own x values.
func FitSeries(s series.Series) (*Result, error) {
	return Fit(s.X, s.Data)
}

// Equation renders the line the way the trend legend shows it.
func (r *Result) Equation() string {
	return fmt.Sprintf("y = %.2fx + %.2f", r.Slope, r.Intercept)
}
