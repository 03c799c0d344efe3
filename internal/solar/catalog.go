package solar

import (
	"fmt"
	"strings"
)

// =============================================================================
// Column Catalog
// =============================================================================

// Column identifies a plottable field or a grouped mono/poly pseudo-column.
type Column int

const (
	ColumnUnknown Column = iota

	// Concrete columns, in import order
	Time
	SolarRadiation
	VMono
	VPoly
	IMono
	IPoly
	PMono
	PPoly
	EffMono
	EffPoly
	RH
	PanelTempMono
	PanelTempPoly
	AmbientTemp
	WindSpeed

	// Grouped columns (resolve to a mono or poly sibling)
	Voltage
	Current
	Power
	Efficiency
	PanelTemperature
)

// descriptor is the static definition of one column.
type descriptor struct {
	key  string
	name string
	unit string
	get  func(*Record) float64
	set  func(*Record, float64)
	mono Column // grouped only
	poly Column // grouped only
}

var catalog = map[Column]descriptor{
	Time: {key: "time", name: "Time", unit: "HH:mm"},
	SolarRadiation: {key: "solar_radiation", name: "Solar Radiation", unit: "W/m²",
		get: func(r *Record) float64 { return r.SolarRadiation },
		set: func(r *Record, v float64) { r.SolarRadiation = v }},
	VMono: {key: "v_mono", name: "V_mono", unit: "V",
		get: func(r *Record) float64 { return r.VMono },
		set: func(r *Record, v float64) { r.VMono = v }},
	VPoly: {key: "v_poly", name: "V_poly", unit: "V",
		get: func(r *Record) float64 { return r.VPoly },
		set: func(r *Record, v float64) { r.VPoly = v }},
	IMono: {key: "i_mono", name: "I_mono", unit: "A",
		get: func(r *Record) float64 { return r.IMono },
		set: func(r *Record, v float64) { r.IMono = v }},
	IPoly: {key: "i_poly", name: "I_poly", unit: "A",
		get: func(r *Record) float64 { return r.IPoly },
		set: func(r *Record, v float64) { r.IPoly = v }},
	PMono: {key: "p_mono", name: "P_mono", unit: "W",
		get: func(r *Record) float64 { return r.PMono },
		set: func(r *Record, v float64) { r.PMono = v }},
	PPoly: {key: "p_poly", name: "P_poly", unit: "W",
		get: func(r *Record) float64 { return r.PPoly },
		set: func(r *Record, v float64) { r.PPoly = v }},
	EffMono: {key: "eff_mono", name: "Eff_mono", unit: "%",
		get: func(r *Record) float64 { return r.EffMono },
		set: func(r *Record, v float64) { r.EffMono = v }},
	EffPoly: {key: "eff_poly", name: "Eff_poly", unit: "%",
		get: func(r *Record) float64 { return r.EffPoly },
		set: func(r *Record, v float64) { r.EffPoly = v }},
	RH: {key: "rh", name: "RH", unit: "%",
		get: func(r *Record) float64 { return r.RH },
		set: func(r *Record, v float64) { r.RH = v }},
	PanelTempMono: {key: "panel_temp_mono", name: "Panel Temp Mono", unit: "°C",
		get: func(r *Record) float64 { return r.PanelTempMono },
		set: func(r *Record, v float64) { r.PanelTempMono = v }},
	PanelTempPoly: {key: "panel_temp_poly", name: "Panel Temp Poly", unit: "°C",
		get: func(r *Record) float64 { return r.PanelTempPoly },
		set: func(r *Record, v float64) { r.PanelTempPoly = v }},
	AmbientTemp: {key: "ambient_temp", name: "Ambient Temp", unit: "°C",
		get: func(r *Record) float64 { return r.AmbientTemp },
		set: func(r *Record, v float64) { r.AmbientTemp = v }},
	WindSpeed: {key: "wind_speed", name: "Wind Speed", unit: "m/s",
		get: func(r *Record) float64 { return r.WindSpeed },
		set: func(r *Record, v float64) { r.WindSpeed = v }},

	Voltage:          {key: "voltage", name: "Voltage", unit: "V", mono: VMono, poly: VPoly},
	Current:          {key: "current", name: "Current", unit: "A", mono: IMono, poly: IPoly},
	Power:            {key: "power", name: "Power", unit: "W", mono: PMono, poly: PPoly},
	Efficiency:       {key: "efficiency", name: "Efficiency", unit: "%", mono: EffMono, poly: EffPoly},
	PanelTemperature: {key: "panel_temperature", name: "Panel Temperature", unit: "°C", mono: PanelTempMono, poly: PanelTempPoly},
}

// xColumns is the X-axis choice list (grouped where a mono/poly pair exists).
var xColumns = []Column{
	Time, SolarRadiation, Voltage, Current, Power, Efficiency,
	RH, PanelTemperature, AmbientTemp, WindSpeed,
}

// yColumns is the Y-axis choice list; it also gives the import column order.
var yColumns = []Column{
	Time, SolarRadiation, VMono, VPoly, IMono, IPoly, PMono, PPoly,
	EffMono, EffPoly, RH, PanelTempMono, PanelTempPoly, AmbientTemp, WindSpeed,
}

func lookup(c Column) (descriptor, bool) {
	d, ok := catalog[c]
	return d, ok
}

// String returns the display name.
func (c Column) String() string {
	if d, ok := lookup(c); ok {
		return d.name
	}
	return fmt.Sprintf("Column(%d)", int(c))
}

// Key returns the snake_case key used for storage and CLI input.
func (c Column) Key() string {
	if d, ok := lookup(c); ok {
		return d.key
	}
	return ""
}

// IsGrouped reports whether c is a mono/poly pseudo-column.
func (c Column) IsGrouped() bool {
	d, ok := lookup(c)
	return ok && d.mono != ColumnUnknown
}

// XColumns returns the X-axis options in display order.
func XColumns() []Column {
	return append([]Column(nil), xColumns...)
}

// YColumns returns the Y-axis options in import column order.
func YColumns() []Column {
	return append([]Column(nil), yColumns...)
}

// Unit returns the unit string for c.
func Unit(c Column) (string, bool) {
	d, ok := lookup(c)
	if !ok || d.unit == "" {
		return "", false
	}
	return d.unit, true
}

// SeriesName returns "<name> (<unit>)", or the bare name without a unit.
func SeriesName(c Column) string {
	if unit, ok := Unit(c); ok {
		return c.String() + " (" + unit + ")"
	}
	return c.String()
}

// NumericValue returns the value of a concrete numeric column.
// Time and grouped columns are absent.
func NumericValue(r *Record, c Column) (float64, bool) {
	d, ok := lookup(c)
	if !ok || d.get == nil {
		return 0, false
	}
	return d.get(r), true
}

// Resolve picks the concrete sibling of a grouped column for a Y column:
// a Y name containing "mono" selects mono, "poly" selects poly, anything
// else falls back to mono. Non-grouped columns are returned unchanged.
func Resolve(group, y Column) Column {
	d, ok := lookup(group)
	if !ok || d.mono == ColumnUnknown {
		return group
	}
	name := strings.ToLower(y.String())
	switch {
	case strings.Contains(name, "mono"):
		return d.mono
	case strings.Contains(name, "poly"):
		return d.poly
	default:
		return d.mono
	}
}

// ParseColumn accepts a display name ("Panel Temp Mono") or key
// ("panel_temp_mono"), case-insensitive.
func ParseColumn(s string) (Column, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for c, d := range catalog {
		if needle == strings.ToLower(d.name) || needle == d.key {
			return c, nil
		}
	}
	return ColumnUnknown, fmt.Errorf("unknown column %q", s)
}
