// Package solar provides the solar-panel measurement model.
// This package holds the Record type, the in-memory Record Store and
// the column catalog that maps plottable fields to values and units.
package solar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// SchemaVersion is the current measurement schema version. Parquet
// archives record it under SchemaVersionKey.
const (
	SchemaVersion    = 1
	SchemaVersionKey = "pv_schema_version"
)

// FieldCount is the number of ordered columns in an import row.
const FieldCount = 15

// DefaultTime is used for new rows and for empty imported time cells.
const DefaultTime = "00:00"

// Record represents one measurement sample for a mono and a poly panel.
// Field order matches the 15-column import layout.
type Record struct {
	Time           string  `ch:"time" parquet:"time"`                         // HH:mm as entered
	SolarRadiation float64 `ch:"solar_radiation" parquet:"solar_radiation"`   // W/m²
	VMono          float64 `ch:"v_mono" parquet:"v_mono"`                     // Voltage V
	VPoly          float64 `ch:"v_poly" parquet:"v_poly"`                     // Voltage V
	IMono          float64 `ch:"i_mono" parquet:"i_mono"`                     // Current A
	IPoly          float64 `ch:"i_poly" parquet:"i_poly"`                     // Current A
	PMono          float64 `ch:"p_mono" parquet:"p_mono"`                     // Power W
	PPoly          float64 `ch:"p_poly" parquet:"p_poly"`                     // Power W
	EffMono        float64 `ch:"eff_mono" parquet:"eff_mono"`                 // Efficiency %
	EffPoly        float64 `ch:"eff_poly" parquet:"eff_poly"`                 // Efficiency %
	RH             float64 `ch:"rh" parquet:"rh"`                             // Relative humidity %
	PanelTempMono  float64 `ch:"panel_temp_mono" parquet:"panel_temp_mono"`   // °C
	PanelTempPoly  float64 `ch:"panel_temp_poly" parquet:"panel_temp_poly"`   // °C
	AmbientTemp    float64 `ch:"ambient_temp" parquet:"ambient_temp"`         // °C
	WindSpeed      float64 `ch:"wind_speed" parquet:"wind_speed"`             // m/s
}

// CSVHeader is the header row of the 15-column exchange layout.
var CSVHeader = []string{
	"Time", "Solar Radiation", "V_mono", "V_poly", "I_mono", "I_poly",
	"P_mono", "P_poly", "Eff_mono", "Eff_poly", "RH",
	"Panel Temp Mono", "Panel Temp Poly", "Ambient Temp", "Wind Speed",
}

// NewRecord returns the record created by "add row".
func NewRecord() Record {
	return Record{Time: DefaultTime}
}

var timePattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// ValidTime reports whether s is a valid HH:mm (or H:mm) time of day.
func ValidTime(s string) bool {
	return timePattern.MatchString(s)
}

// ParseMinutes converts a valid time to minutes since midnight.
func ParseMinutes(s string) (int, bool) {
	if !ValidTime(s) {
		return 0, false
	}
	hh, mm, _ := strings.Cut(s, ":")
	hours, _ := strconv.Atoi(hh)
	minutes, _ := strconv.Atoi(mm)
	return hours*60 + minutes, true
}

// FormatMinutes renders minutes since midnight as HH:mm.
func FormatMinutes(total int) string {
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// Numbers returns the 14 numeric fields in import column order.
func (r *Record) Numbers() [FieldCount - 1]float64 {
	return [FieldCount - 1]float64{
		r.SolarRadiation, r.VMono, r.VPoly, r.IMono, r.IPoly,
		r.PMono, r.PPoly, r.EffMono, r.EffPoly, r.RH,
		r.PanelTempMono, r.PanelTempPoly, r.AmbientTemp, r.WindSpeed,
	}
}
