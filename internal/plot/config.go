// Package plot turns a record store into plotted, bounded, labelled series.
//
// BuildSeries produces one point sequence per selected Y column, Scale
// derives axis bounds and tick spacing from the emitted points, and
// Render draws the result as a PNG.
package plot

import (
	"strings"

	"github.com/KI7MT/ki7mt-pv-lab/internal/solar"
)

// Selection is the current axis choice. Y keeps insertion order so that
// series order and colour assignment are stable across runs.
type Selection struct {
	X      solar.Column
	Y      []solar.Column
	YStart string // optional Y lower bound override
}

// Toggle adds col to Y, or removes it when already selected.
func (s *Selection) Toggle(col solar.Column) {
	for i, c := range s.Y {
		if c == col {
			s.Y = append(s.Y[:i], s.Y[i+1:]...)
			return
		}
	}
	s.Y = append(s.Y, col)
}

// Selected reports whether col is in Y.
func (s *Selection) Selected(col solar.Column) bool {
	for _, c := range s.Y {
		if c == col {
			return true
		}
	}
	return false
}

// TimeAxis reports whether X is the time column.
func (s *Selection) TimeAxis() bool {
	return s.X == solar.Time
}

// GraphConfig holds free-form, user-editable chart text.
type GraphConfig struct {
	ExperimentLocation string
	Latitude           string
	Longitude          string
	XAxisLabel         string
	YAxisLabel         string
}

// Title builds the chart title with an optional coordinates line.
func Title(cfg GraphConfig) string {
	var b strings.Builder
	b.WriteString("Solar Data Analysis")
	if cfg.ExperimentLocation != "" {
		b.WriteString(" - ")
		b.WriteString(cfg.ExperimentLocation)
	}

	hasLat := cfg.Latitude != ""
	hasLon := cfg.Longitude != ""
	switch {
	case hasLat && hasLon:
		b.WriteString("\nCoordinates: " + cfg.Latitude + ", " + cfg.Longitude)
	case hasLat:
		b.WriteString("\nLatitude: " + cfg.Latitude)
	case hasLon:
		b.WriteString("\nLongitude: " + cfg.Longitude)
	}
	return b.String()
}

// XLabel returns the user label unless it is blank or a placeholder.
func XLabel(cfg GraphConfig, x solar.Column) string {
	label := strings.TrimSpace(cfg.XAxisLabel)
	if label == "" || label == "Time" || label == "X-Axis" {
		return solar.SeriesName(x)
	}
	return cfg.XAxisLabel
}

// YLabel returns the user label unless it is blank or a placeholder.
// Without a label a single series names the axis; several read "Parameters".
func YLabel(cfg GraphConfig, ys []solar.Column) string {
	label := strings.TrimSpace(cfg.YAxisLabel)
	if label != "" && label != "Values" && label != "Y-Axis" {
		return cfg.YAxisLabel
	}
	if len(ys) == 1 {
		return solar.SeriesName(ys[0])
	}
	return "Parameters"
}
