package plot

import (
	"github.com/KI7MT/ki7mt-pv-lab/internal/solar"
)

// Point is one plotted sample.
type Point struct {
	X, Y float64
}

// Series is the point sequence of one Y column.
type Series struct {
	Name   string
	Unit   string
	Column solar.Column
	Points []Point
}

// Range tracks min/max and stays empty until the first sample.
type Range struct {
	Min, Max float64
	ok       bool
}

// Add widens the range to include v.
func (r *Range) Add(v float64) {
	if !r.ok {
		r.Min, r.Max, r.ok = v, v, true
		return
	}
	if v < r.Min {
		r.Min = v
	}
	if v > r.Max {
		r.Max = v
	}
}

// Valid reports whether at least one sample was added.
func (r Range) Valid() bool {
	return r.ok
}

// Bounds is the combined extent of every emitted point.
type Bounds struct {
	X, Y Range
}

// Valid reports whether any point was emitted.
func (b Bounds) Valid() bool {
	return b.X.Valid() && b.Y.Valid()
}

// Result is the output of BuildSeries.
type Result struct {
	Series []Series
	Bounds Bounds
}

// Points returns the total number of emitted points.
func (r Result) Points() int {
	n := 0
	for _, s := range r.Series {
		n += len(s.Points)
	}
	return n
}

// BuildSeries converts records into one series per selected Y column.
// Series follow the order of sel.Y. A point is emitted only when both its
// X and Y values resolve; zero values are kept.
func BuildSeries(records []solar.Record, sel Selection) Result {
	res := Result{Series: make([]Series, 0, len(sel.Y))}

	for _, y := range sel.Y {
		unit, _ := solar.Unit(y)
		s := Series{
			Name:   solar.SeriesName(y),
			Unit:   unit,
			Column: y,
			Points: make([]Point, 0, len(records)),
		}

		for i := range records {
			r := &records[i]
			xv, ok := ResolveX(r, sel.X, y, i)
			if !ok {
				continue
			}
			yv, ok := solar.NumericValue(r, y)
			if !ok {
				continue
			}
			res.Bounds.X.Add(xv)
			res.Bounds.Y.Add(yv)
			s.Points = append(s.Points, Point{X: xv, Y: yv})
		}

		res.Series = append(res.Series, s)
	}

	return res
}

// ResolveX returns the X value of record r (at position index) when
// plotted against column y.
//
//   - Time: minutes since midnight, or index for an invalid time.
//   - Grouped: the mono/poly sibling chosen by the Y column name.
//   - Anything else: the column value itself.
func ResolveX(r *solar.Record, x, y solar.Column, index int) (float64, bool) {
	if x == solar.Time {
		if m, ok := solar.ParseMinutes(r.Time); ok {
			return float64(m), true
		}
		return float64(index), true
	}
	return solar.NumericValue(r, solar.Resolve(x, y))
}
