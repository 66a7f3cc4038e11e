package chart

import (
	"errors"
	"reflect"
	"testing"

	"github.com/KaramelBytes/datavis-cli/internal/regression"
	"github.com/KaramelBytes/datavis-cli/internal/series"
)

func sample() *series.Chart {
	return &series.Chart{
		Domain: []float64{1, 2, 3},
		Series: []series.Series{
			{Label: "A", X: []float64{1, 2, 3}, Data: []float64{2, 4, 6}},
			{Label: "B", X: []float64{1, 3}, Data: []float64{1, 1}},
		},
	}
}

func TestParseType(t *testing.T) {
	for in, want := range map[string]Type{"line": Line, "BAR": Bar, " scatter ": Scatter, "": Line} {
		got, err := ParseType(in)
		if err != nil || got != want {
			t.Errorf("ParseType(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseType("pie"); err == nil {
		t.Fatalf("expected error for pie")
	}
}

func TestColorsCycle(t *testing.T) {
	c := Colors(10)
	if c[0] != c[8] || c[1] != c[9] || c[0] == c[1] {
		t.Fatalf("unexpected colors %v", c)
	}
}

func TestBuildLineHasNoTrend(t *testing.T) {
	p, err := Build(sample(), Options{Type: Line, Trend: true})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(p.Datasets) != 2 {
		t.Fatalf("expected 2 datasets, got %d", len(p.Datasets))
	}
	if p.Datasets[0].Background != "transparent" {
		t.Fatalf("line background = %q", p.Datasets[0].Background)
	}
}

func TestBuildScatterAddsTrend(t *testing.T) {
	c := sample()
	p, err := Build(c, Options{Type: Scatter, Trend: true})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(p.Datasets) != 4 {
		t.Fatalf("expected 4 datasets, got %d", len(p.Datasets))
	}
	tr := p.Datasets[1]
	if tr.Label != "A (Trend: y = 2.00x + 0.00)" || !tr.Dashed || tr.Type != Line {
		t.Fatalf("unexpected trend dataset %+v", tr)
	}
	if !reflect.DeepEqual(tr.Data, []float64{2, 4, 6}) || !reflect.DeepEqual(tr.X, c.Series[0].X) {
		t.Fatalf("unexpected trend points x=%v data=%v", tr.X, tr.Data)
	}
	if p.Datasets[3].Label != "B (Trend: y = 0.00x + 1.00)" {
		t.Fatalf("unexpected label %q", p.Datasets[3].Label)
	}
}

func TestBuildScatterDegenerateSeriesFails(t *testing.T) {
	c := &series.Chart{
		Domain: []float64{1},
		Series: []series.Series{{Label: "A", X: []float64{1}, Data: []float64{3}}},
	}
	_, err := Build(c, Options{Type: Scatter, Trend: true})
	var de *regression.DegenerateInputError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DegenerateInputError, got %v", err)
	}
	if _, err := Build(c, Options{Type: Scatter}); err != nil {
		t.Fatalf("without trend: %v", err)
	}
}
