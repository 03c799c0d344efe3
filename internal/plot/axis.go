package plot

import (
	"math"
	"strconv"
	"strings"

	"github.com/KI7MT/ki7mt-pv-lab/internal/solar"
)

const (
	padFraction   = 0.05 // padding above the max, as a share of the span
	degeneratePad = 1.0  // padding when the span is zero
	xLowerPull    = 0.1  // share of X padding pulled below the lower bound
	tickDivisions = 10.0
	minXTickUnit  = 1.0
	minYTickUnit  = 0.1
	maxTicks      = 50
)

// Axis is the presentation range of one axis.
type Axis struct {
	Lower    float64
	Upper    float64
	Padding  float64
	TickUnit float64
}

// Axes holds the scaled X and Y axes.
type Axes struct {
	X, Y Axis
}

// padding returns 5% of max-lower, or 1.0 for a single-value range.
func padding(r Range, lower float64) float64 {
	pad := (r.Max - lower) * padFraction
	if pad == 0 || r.Max == r.Min {
		pad = degeneratePad
	}
	return pad
}

// ScaleX computes the X axis. The time axis is anchored at 0; other axes
// start at 0 when xMin >= 0. The lower bound is pulled down by a tenth of
// the padding but never below 0.
func ScaleX(r Range, timeAxis bool) Axis {
	lower := r.Min
	if timeAxis || r.Min >= 0 {
		lower = 0
	}
	pad := padding(r, lower)
	return Axis{
		Lower:    math.Max(0, lower-pad*xLowerPull),
		Upper:    r.Max + pad,
		Padding:  pad,
		TickUnit: math.Max(minXTickUnit, (r.Max+pad)/tickDivisions),
	}
}

// ScaleY computes the Y axis. The lower bound is 0 when yMin >= 0;
// override, when it parses as a finite number, replaces the lower bound.
func ScaleY(r Range, override string) Axis {
	lower := r.Min
	if r.Min >= 0 {
		lower = 0
	}
	pad := padding(r, lower)

	axisLower := lower
	if v, err := strconv.ParseFloat(strings.TrimSpace(override), 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		axisLower = v
	}

	return Axis{
		Lower:    axisLower,
		Upper:    r.Max + pad,
		Padding:  pad,
		TickUnit: math.Max(minYTickUnit, (r.Max+pad)/tickDivisions),
	}
}

// Scale derives both axes from b. It returns false when no point was
// emitted; callers should then leave the axes auto-ranging.
func Scale(b Bounds, sel Selection) (Axes, bool) {
	if !b.Valid() {
		return Axes{}, false
	}
	return Axes{
		X: ScaleX(b.X, sel.TimeAxis()),
		Y: ScaleY(b.Y, sel.YStart),
	}, true
}

// TickValues lists tick positions from Lower to Upper by TickUnit.
func TickValues(a Axis) []float64 {
	if a.TickUnit <= 0 || a.Upper < a.Lower {
		return nil
	}
	var ticks []float64
	start := math.Ceil(a.Lower/a.TickUnit) * a.TickUnit
	for i := 0; i < maxTicks; i++ {
		v := start + float64(i)*a.TickUnit
		if v > a.Upper+a.TickUnit*1e-9 {
			break
		}
		ticks = append(ticks, v)
	}
	return ticks
}

// FormatTick labels a tick: HH:mm on the time axis, one decimal otherwise.
func FormatTick(v float64, timeAxis bool) string {
	if timeAxis {
		m := int(v)
		if m < 0 {
			m = 0
		}
		return solar.FormatMinutes(m)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}
