package dataset

import (
	"fmt"
	"regexp"
	"strings"
)

// Schema names the columns a parsed row is built from. Each field lists the
// accepted header names (case-insensitive, units ignored); the first entry is
// canonical.
type Schema struct {
	Name     string
	X        []string
	Y        []string
	Category []string // optional column
}

var (
	// XY is the generic schema: X, Y and an optional Category column.
	XY = Schema{
		Name:     "xy",
		X:        []string{"X"},
		Y:        []string{"Y"},
		Category: []string{"Category"},
	}
	// Temperature reads elapsed hours against a Celsius reading.
	Temperature = Schema{
		Name:     "temperature",
		X:        []string{"Hours", "Hour", "Time"},
		Y:        []string{"Celsius", "Temperature", "Temp"},
		Category: []string{"Category"},
	}
)

// LookupSchema resolves a schema by name.
func LookupSchema(name string) (Schema, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "xy":
		return XY, nil
	case "temperature", "temp":
		return Temperature, nil
	}
	return Schema{}, fmt.Errorf("unknown schema: %s (use xy or temperature)", name)
}

// columns holds the header positions resolved for a schema.
type columns struct {
	x, y, cat    int
	xName, yName string
	xUnit, yUnit string
	hasCategory  bool
}

func (s Schema) resolve(header []string) (columns, error) {
	c := columns{x: -1, y: -1, cat: -1}
	for i, h := range header {
		clean, unit := splitUnits(strings.TrimPrefix(h, "\ufeff"))
		switch {
		case c.x < 0 && matches(s.X, clean):
			c.x, c.xName, c.xUnit = i, clean, unit
		case c.y < 0 && matches(s.Y, clean):
			c.y, c.yName, c.yUnit = i, clean, unit
		case c.cat < 0 && matches(s.Category, clean):
			c.cat = i
			c.hasCategory = true
		}
	}
	var missing []string
	if c.x < 0 {
		missing = append(missing, s.X[0])
	}
	if c.y < 0 {
		missing = append(missing, s.Y[0])
	}
	if len(missing) > 0 {
		return c, fmt.Errorf("missing required column(s) %s for schema %s", strings.Join(missing, ", "), s.Name)
	}
	return c, nil
}

func matches(names []string, header string) bool {
	for _, n := range names {
		if strings.EqualFold(n, header) {
			return true
		}
	}
	return false
}

var unitPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(.*?)\s*\(([^)]+)\)\s*$`),  // Celsius (°C)
	regexp.MustCompile(`^(.*?)\s*\[([^\]]+)\]\s*$`), // Time [h]
}

func splitUnits(name string) (clean string, unit string) {
	s := strings.TrimSpace(name)
	for _, re := range unitPatterns {
		if m := re.FindStringSubmatch(s); len(m) == 3 {
			base, u := strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
			if base != "" && u != "" {
				return base, u
			}
		}
	}
	return s, ""
}
