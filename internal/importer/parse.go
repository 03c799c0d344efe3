package importer

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/KI7MT/ki7mt-pv-lab/internal/common"
	"github.com/KI7MT/ki7mt-pv-lab/internal/solar"
)

const (
	// Error throttling: don't spam logs with row errors
	MaxErrorsToLog = 10

	// Column indices (fixed import layout)
	ColTime           = 0
	ColSolarRadiation = 1
	ColVMono          = 2
	ColVPoly          = 3
	ColIMono          = 4
	ColIPoly          = 5
	ColPMono          = 6
	ColPPoly          = 7
	ColEffMono        = 8
	ColEffPoly        = 9
	ColRH             = 10
	ColPanelTempMono  = 11
	ColPanelTempPoly  = 12
	ColAmbientTemp    = 13
	ColWindSpeed      = 14

	// Minimum columns for a delimited row
	MinColumns = solar.FieldCount
)

// parseFloatSafe parses a numeric cell. Thousands separators are removed;
// empty, malformed and non-finite values become 0 with ok=false.
func parseFloatSafe(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// buildRecord maps positional cells onto a record. Missing cells are
// defaulted individually and counted in stats.
func buildRecord(cells []string, stats *common.Stats, normalizeTime func(string) string) solar.Record {
	cell := func(i int) string {
		if i < len(cells) {
			return cells[i]
		}
		return ""
	}
	num := func(i int) float64 {
		v, ok := parseFloatSafe(cell(i))
		if !ok {
			stats.DefaultedCells++
		}
		return v
	}

	var r solar.Record
	r.Time = strings.TrimSpace(cell(ColTime))
	if normalizeTime != nil {
		r.Time = normalizeTime(r.Time)
	}
	if r.Time == "" {
		r.Time = solar.DefaultTime
		stats.DefaultedCells++
	}

	r.SolarRadiation = num(ColSolarRadiation)
	r.VMono = num(ColVMono)
	r.VPoly = num(ColVPoly)
	r.IMono = num(ColIMono)
	r.IPoly = num(ColIPoly)
	r.PMono = num(ColPMono)
	r.PPoly = num(ColPPoly)
	r.EffMono = num(ColEffMono)
	r.EffPoly = num(ColEffPoly)
	r.RH = num(ColRH)
	r.PanelTempMono = num(ColPanelTempMono)
	r.PanelTempPoly = num(ColPanelTempPoly)
	r.AmbientTemp = num(ColAmbientTemp)
	r.WindSpeed = num(ColWindSpeed)
	return r
}

// normalizeSheetTime converts spreadsheet time cells to HH:mm.
//
//   - "H:mm" / "HH:mm" are kept as-is
//   - "HH:mm:ss" drops the seconds
//   - RFC 3339 timestamps keep their clock part
//   - day fractions (0.5 = 12:00) and date serials use the fractional day
//   - whole numbers are kept as text; they fail time validation later
func normalizeSheetTime(s string) string {
	if s == "" || solar.ValidTime(s) {
		return s
	}
	if t, err := time.Parse("15:04:05", s); err == nil {
		return t.Format("15:04")
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format("15:04")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return s
	}
	if v >= 1 && v == math.Floor(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	frac := v - math.Floor(v)
	minutes := int(math.Round(frac*24*60)) % (24 * 60)
	return solar.FormatMinutes(minutes)
}
