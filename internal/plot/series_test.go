package plot

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KI7MT/ki7mt-pv-lab/internal/solar"
)

func sampleRecords() []solar.Record {
	return []solar.Record{
		{Time: "08:00", SolarRadiation: 210, VMono: 18.1, VPoly: 17.6, PMono: 40, PPoly: 36, RH: 60},
		{Time: "09:30", SolarRadiation: 480, VMono: 18.9, VPoly: 18.2, PMono: 82, PPoly: 75, RH: 55},
		{Time: "11:00", SolarRadiation: 0, VMono: 0, VPoly: 0, PMono: 0, PPoly: 0, RH: 0},
	}
}

func TestResolveXTimeRoundTrip(t *testing.T) {
	for h := 0; h <= 23; h++ {
		for m := 0; m <= 59; m += 7 {
			r := solar.Record{Time: fmt.Sprintf("%02d:%02d", h, m)}
			x, ok := ResolveX(&r, solar.Time, solar.PMono, 42)
			require.True(t, ok)
			require.Equal(t, float64(h*60+m), x)
		}
	}
}

func TestResolveXTimeFallsBackToIndex(t *testing.T) {
	r := solar.Record{Time: "late"}
	x, ok := ResolveX(&r, solar.Time, solar.PMono, 7)
	require.True(t, ok)
	assert.Equal(t, 7.0, x)
}

func TestResolveXGroupedTieBreak(t *testing.T) {
	r := solar.Record{VMono: 3.0, VPoly: 4.0}

	x, ok := ResolveX(&r, solar.Voltage, solar.PMono, 0)
	require.True(t, ok)
	assert.Equal(t, 3.0, x)

	x, _ = ResolveX(&r, solar.Voltage, solar.PPoly, 0)
	assert.Equal(t, 4.0, x)

	x, _ = ResolveX(&r, solar.Voltage, solar.RH, 0)
	assert.Equal(t, 3.0, x)
}

func TestResolveXDirectColumnIgnoresY(t *testing.T) {
	r := solar.Record{WindSpeed: 3.2}
	for _, y := range []solar.Column{solar.PMono, solar.PPoly, solar.RH} {
		x, ok := ResolveX(&r, solar.WindSpeed, y, 0)
		require.True(t, ok)
		assert.Equal(t, 3.2, x)
	}
}

func TestBuildSeriesKeepsZerosAndOrder(t *testing.T) {
	sel := Selection{X: solar.Time, Y: []solar.Column{solar.PPoly, solar.PMono}}
	res := BuildSeries(sampleRecords(), sel)

	require.Len(t, res.Series, 2)
	assert.Equal(t, "P_poly (W)", res.Series[0].Name)
	assert.Equal(t, "P_mono (W)", res.Series[1].Name)
	assert.Equal(t, "W", res.Series[0].Unit)

	pm := res.Series[1].Points
	require.Len(t, pm, 3)
	assert.Equal(t, Point{X: 480, Y: 40}, pm[0])
	assert.Equal(t, Point{X: 570, Y: 82}, pm[1])
	assert.Equal(t, Point{X: 660, Y: 0}, pm[2])

	require.True(t, res.Bounds.Valid())
	assert.Equal(t, 480.0, res.Bounds.X.Min)
	assert.Equal(t, 660.0, res.Bounds.X.Max)
	assert.Equal(t, 0.0, res.Bounds.Y.Min)
	assert.Equal(t, 82.0, res.Bounds.Y.Max)
	assert.Equal(t, 6, res.Points())
}

func TestBuildSeriesGroupedX(t *testing.T) {
	sel := Selection{X: solar.Voltage, Y: []solar.Column{solar.PMono, solar.PPoly}}
	res := BuildSeries(sampleRecords(), sel)

	assert.Equal(t, 18.1, res.Series[0].Points[0].X)
	assert.Equal(t, 17.6, res.Series[1].Points[0].X)
}

func TestBuildSeriesTimeAsYEmitsNothing(t *testing.T) {
	sel := Selection{X: solar.SolarRadiation, Y: []solar.Column{solar.Time}}
	res := BuildSeries(sampleRecords(), sel)

	require.Len(t, res.Series, 1)
	assert.Empty(t, res.Series[0].Points)
	assert.False(t, res.Bounds.Valid())

	_, ok := Scale(res.Bounds, sel)
	assert.False(t, ok)
}

func TestBuildSeriesIdempotent(t *testing.T) {
	records := sampleRecords()
	sel := Selection{X: solar.Power, Y: []solar.Column{solar.RH, solar.EffPoly, solar.VMono}}

	a := BuildSeries(records, sel)
	b := BuildSeries(records, sel)
	require.Equal(t, len(a.Series), len(b.Series))
	for i := range a.Series {
		assert.Equal(t, a.Series[i].Points, b.Series[i].Points)
	}
	assert.Equal(t, a.Bounds, b.Bounds)
}

func TestRangeAccumulator(t *testing.T) {
	var r Range
	assert.False(t, r.Valid())
	r.Add(0)
	assert.True(t, r.Valid())
	assert.Equal(t, 0.0, r.Min)
	assert.Equal(t, 0.0, r.Max)
	r.Add(-3)
	r.Add(9)
	assert.Equal(t, -3.0, r.Min)
	assert.Equal(t, 9.0, r.Max)
}

func TestSelectionToggle(t *testing.T) {
	var sel Selection
	sel.Toggle(solar.RH)
	sel.Toggle(solar.PMono)
	sel.Toggle(solar.VPoly)
	sel.Toggle(solar.PMono)
	assert.Equal(t, []solar.Column{solar.RH, solar.VPoly}, sel.Y)
	assert.True(t, sel.Selected(solar.VPoly))
	assert.False(t, sel.Selected(solar.PMono))
}

func TestValidate(t *testing.T) {
	sel := Selection{X: solar.Time, Y: []solar.Column{solar.PMono}}

	assert.ErrorIs(t, Validate(solar.NewStore(), sel), ErrNoData)

	bad := solar.NewStore(solar.Record{Time: "10:00"}, solar.Record{Time: "10:75"})
	err := Validate(bad, sel)
	assert.ErrorIs(t, err, ErrInvalidTime)
	assert.Contains(t, err.Error(), "row 2")
	assert.Equal(t, 2, bad.Len())

	good := solar.NewStore(sampleRecords()...)
	assert.ErrorIs(t, Validate(good, Selection{Y: sel.Y}), ErrNoXColumn)
	assert.ErrorIs(t, Validate(good, Selection{X: solar.Time}), ErrNoYColumn)
	assert.NoError(t, Validate(good, sel))
}

func TestTitleAndLabels(t *testing.T) {
	assert.Equal(t, "Solar Data Analysis", Title(GraphConfig{}))
	assert.Equal(t, "Solar Data Analysis - Nsukka\nCoordinates: 6.86, 7.39",
		Title(GraphConfig{ExperimentLocation: "Nsukka", Latitude: "6.86", Longitude: "7.39"}))
	assert.Equal(t, "Solar Data Analysis\nLongitude: 7.39", Title(GraphConfig{Longitude: "7.39"}))

	assert.Equal(t, "Voltage (V)", XLabel(GraphConfig{XAxisLabel: "X-Axis"}, solar.Voltage))
	assert.Equal(t, "Hour", XLabel(GraphConfig{XAxisLabel: "Hour"}, solar.Time))

	assert.Equal(t, "RH (%)", YLabel(GraphConfig{}, []solar.Column{solar.RH}))
	assert.Equal(t, "Parameters", YLabel(GraphConfig{YAxisLabel: "Values"}, []solar.Column{solar.RH, solar.PMono}))
	assert.Equal(t, "Output", YLabel(GraphConfig{YAxisLabel: "Output"}, []solar.Column{solar.RH}))
}
