// Package session chains validation, parsing and series building for one
// upload. A Session is a value: every operation returns a new Session and
// leaves the receiver untouched, so a failed load keeps the previous result.
package session

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/KaramelBytes/datavis-cli/internal/chart"
	"github.com/KaramelBytes/datavis-cli/internal/dataset"
	"github.com/KaramelBytes/datavis-cli/internal/series"
	"github.com/google/uuid"
)

// ErrNotLoaded is returned when a session has no data yet.
var ErrNotLoaded = errors.New("no data loaded")

// Options are the settings a session applies to every upload.
type Options struct {
	Schema     dataset.Schema
	Parse      dataset.Options
	Duplicates series.DuplicatePolicy
	ChartType  chart.Type
	Trend      bool
}

// Session is the state of one visualization.
type Session struct {
	ID        string
	Source    string
	CreatedAt time.Time
	Options   Options
	Dataset   *dataset.Dataset
	Chart     *series.Chart
}

// New starts an empty session.
func New(opts Options) Session {
	if opts.Schema.Name == "" {
		opts.Schema = dataset.XY
	}
	if opts.ChartType == "" {
		opts.ChartType = chart.Line
	}
	return Session{ID: uuid.NewString(), CreatedAt: time.Now(), Options: opts}
}

// Load validates and parses the file at path.
func (s Session) Load(path, contentType string) (Session, error) {
	ds, err := dataset.Load(path, contentType, s.Options.Schema, s.Options.Parse)
	if err != nil {
		return s, err
	}
	return s.withDataset(ds)
}

// LoadReader parses an upload of unknown size such as stdin.
func (s Session) LoadReader(u dataset.Upload, r io.Reader) (Session, error) {
	ds, err := dataset.LoadReader(u, r, s.Options.Schema, s.Options.Parse)
	if err != nil {
		return s, err
	}
	return s.withDataset(ds)
}

// FromPoints uses manually entered "x,y[,category]" points.
func (s Session) FromPoints(points []string) (Session, error) {
	ds, err := dataset.FromPoints(points, s.Options.Schema, s.Options.Parse)
	if err != nil {
		return s, err
	}
	return s.withDataset(ds)
}

func (s Session) withDataset(ds *dataset.Dataset) (Session, error) {
	opt := series.Options{Duplicates: s.Options.Duplicates, Label: ds.YColumn}
	var (
		c   *series.Chart
		err error
	)
	if s.inverseTemperature() {
		opt.Label = series.InverseTemperatureLabel
		c, err = series.BuildInverseTemperature(ds.Rows(), opt)
	} else {
		c, err = series.Build(ds.Rows(), opt)
	}
	if err != nil {
		return s, fmt.Errorf("build series for %s: %w", ds.Name, err)
	}
	next := s
	next.ID = uuid.NewString()
	next.CreatedAt = time.Now()
	next.Source = ds.Name
	next.Dataset = ds
	next.Chart = c
	return next, nil
}

func (s Session) inverseTemperature() bool {
	return s.Options.Schema.Name == dataset.Temperature.Name
}

// WithChartType returns a copy drawing the given chart type.
func (s Session) WithChartType(t chart.Type) Session {
	s.Options.ChartType = t
	return s
}

// WithTrend returns a copy with trend lines switched on or off.
func (s Session) WithTrend(on bool) Session {
	s.Options.Trend = on
	return s
}

// Axes returns the x and y axis titles.
func (s Session) Axes() (string, string) {
	if s.Dataset == nil {
		return "", ""
	}
	x := s.Dataset.XColumn
	if s.Dataset.XUnit != "" {
		x = fmt.Sprintf("%s (%s)", x, s.Dataset.XUnit)
	}
	if s.inverseTemperature() {
		return x, series.InverseTemperatureLabel
	}
	y := s.Dataset.YColumn
	if s.Dataset.YUnit != "" {
		y = fmt.Sprintf("%s (%s)", y, s.Dataset.YUnit)
	}
	return x, y
}

// Series returns the series with the given label, or the first series when
// label is empty.
func (s Session) Series(label string) (series.Series, error) {
	if s.Chart == nil || len(s.Chart.Series) == 0 {
		return series.Series{}, ErrNotLoaded
	}
	if label == "" {
		return s.Chart.Series[0], nil
	}
	for _, ser := range s.Chart.Series {
		if ser.Label == label {
			return ser, nil
		}
	}
	return series.Series{}, fmt.Errorf("series %q not found", label)
}

// Payload builds the chart payload for the current data.
func (s Session) Payload() (*chart.Payload, error) {
	if s.Chart == nil {
		return nil, ErrNotLoaded
	}
	x, y := s.Axes()
	return chart.Build(s.Chart, chart.Options{
		Type:  s.Options.ChartType,
		Trend: s.Options.Trend,
		Title: s.Source,
		XAxis: x,
		YAxis: y,
	})
}
