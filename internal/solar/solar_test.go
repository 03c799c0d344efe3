package solar

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMinutesRoundTrip(t *testing.T) {
	for h := 0; h <= 23; h++ {
		for m := 0; m <= 59; m++ {
			s := fmt.Sprintf("%02d:%02d", h, m)
			got, ok := ParseMinutes(s)
			require.True(t, ok, s)
			require.Equal(t, h*60+m, got, s)
			require.Equal(t, s, FormatMinutes(got))
		}
	}
}

func TestValidTime(t *testing.T) {
	valid := []string{"00:00", "8:05", "09:30", "23:59", "19:00"}
	invalid := []string{"", "24:00", "12:60", "12-30", "noon", "12:5", " 12:30", "123:00"}
	for _, s := range valid {
		assert.True(t, ValidTime(s), s)
	}
	for _, s := range invalid {
		assert.False(t, ValidTime(s), s)
	}
}

func TestStoreLifecycle(t *testing.T) {
	s := NewStore()
	assert.Equal(t, 0, s.Len())

	i := s.AddDefault()
	assert.Equal(t, 0, i)
	r, err := s.Get(0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTime, r.Time)

	s.Add(Record{Time: "10:00", VMono: 1})
	s.Add(Record{Time: "11:00", VMono: 2})
	require.NoError(t, s.Remove(1))
	assert.Equal(t, 2, s.Len())
	r, _ = s.Get(1)
	assert.Equal(t, "11:00", r.Time)

	err = s.Remove(5)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	s.Clear()
	assert.Equal(t, 0, s.Len())
}

func TestStoreRecordsIsCopy(t *testing.T) {
	s := NewStore(Record{Time: "10:00"})
	rs := s.Records()
	rs[0].Time = "changed"
	r, _ := s.Get(0)
	assert.Equal(t, "10:00", r.Time)
}

func TestStoreSetCell(t *testing.T) {
	s := NewStore(NewRecord())

	require.NoError(t, s.SetCell(0, VPoly, " 12.5 "))
	require.NoError(t, s.SetCell(0, IMono, "abc"))
	require.NoError(t, s.SetCell(0, Time, "7:45"))

	r, _ := s.Get(0)
	assert.Equal(t, 12.5, r.VPoly)
	assert.Equal(t, 0.0, r.IMono)
	assert.Equal(t, "7:45", r.Time)

	assert.ErrorIs(t, s.SetValue(0, Voltage, 1), ErrNotEditable)
	assert.ErrorIs(t, s.SetCell(3, VMono, "1"), ErrIndexOutOfRange)
}

func TestStoreInvalidTimes(t *testing.T) {
	s := NewStore(
		Record{Time: "10:00"},
		Record{Time: "25:00"},
		Record{Time: "10:30"},
		Record{Time: ""},
	)
	assert.Equal(t, []int{1, 3}, s.InvalidTimes())
}

func TestResolveGroupedColumn(t *testing.T) {
	r := Record{VMono: 3.0, VPoly: 4.0}

	cases := []struct {
		y    Column
		want float64
	}{
		{PMono, 3.0},
		{PPoly, 4.0},
		{RH, 3.0},
		{PanelTempPoly, 4.0},
		{PanelTempMono, 3.0},
	}
	for _, tc := range cases {
		col := Resolve(Voltage, tc.y)
		v, ok := NumericValue(&r, col)
		require.True(t, ok)
		assert.Equal(t, tc.want, v, "y=%s", tc.y)
	}

	assert.Equal(t, SolarRadiation, Resolve(SolarRadiation, PPoly))
}

func TestNumericValueAbsent(t *testing.T) {
	r := Record{Time: "10:00", WindSpeed: 2}
	_, ok := NumericValue(&r, Time)
	assert.False(t, ok)
	_, ok = NumericValue(&r, Power)
	assert.False(t, ok)
	v, ok := NumericValue(&r, WindSpeed)
	assert.True(t, ok)
	assert.Equal(t, 2.0, v)
}

func TestCatalogNamesAndUnits(t *testing.T) {
	assert.Equal(t, "Solar Radiation (W/m²)", SeriesName(SolarRadiation))
	assert.Equal(t, "Panel Temperature (°C)", SeriesName(PanelTemperature))
	assert.Equal(t, "Time (HH:mm)", SeriesName(Time))

	_, ok := Unit(ColumnUnknown)
	assert.False(t, ok)

	assert.Len(t, XColumns(), 10)
	assert.Len(t, YColumns(), FieldCount)
	for _, c := range XColumns() {
		_, ok := Unit(c)
		assert.True(t, ok, c.String())
	}
	assert.True(t, Power.IsGrouped())
	assert.False(t, PMono.IsGrouped())
}

func TestParseColumn(t *testing.T) {
	c, err := ParseColumn("panel temp mono")
	require.NoError(t, err)
	assert.Equal(t, PanelTempMono, c)

	c, err = ParseColumn("eff_poly")
	require.NoError(t, err)
	assert.Equal(t, EffPoly, c)

	c, err = ParseColumn("Voltage")
	require.NoError(t, err)
	assert.Equal(t, Voltage, c)

	_, err = ParseColumn("frequency")
	assert.Error(t, err)
}
