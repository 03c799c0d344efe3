package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KI7MT/ki7mt-pv-lab/internal/chstore"
	"github.com/KI7MT/ki7mt-pv-lab/internal/solar"
)

func TestParseEdit(t *testing.T) {
	e, err := parseEdit("3:Panel Temp Mono=41.5")
	require.NoError(t, err)
	assert.Equal(t, cellEdit{Row: 3, Column: solar.PanelTempMono, Value: "41.5"}, e)

	e, err = parseEdit("1:time=09:15")
	require.NoError(t, err)
	assert.Equal(t, solar.Time, e.Column)
	assert.Equal(t, "09:15", e.Value)

	for _, bad := range []string{"3=1", "x:RH=1", "0:RH=1", "2:Nope=1", "2:RH"} {
		_, err := parseEdit(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseSelectionKeepsOrder(t *testing.T) {
	sel, err := parseSelection("Voltage", "P_poly, I_mono,P_poly,RH", "")
	require.NoError(t, err)
	assert.Equal(t, solar.Voltage, sel.X)
	assert.Equal(t, []solar.Column{solar.IMono, solar.RH}, sel.Y)

	_, err = parseSelection("Time", "Bogus", "")
	assert.Error(t, err)
}

func TestApplyEdits(t *testing.T) {
	store := solar.NewStore(solar.NewRecord(), solar.NewRecord(), solar.NewRecord())
	edits := []cellEdit{
		{Row: 1, Column: solar.Time, Value: "08:00"},
		{Row: 2, Column: solar.RH, Value: "55"},
	}
	removes, err := parseRows("3,1")
	require.NoError(t, err)

	require.NoError(t, applyEdits(store, 1, removes, edits))
	require.Equal(t, 2, store.Len())

	r, err := store.Get(0)
	require.NoError(t, err)
	assert.Equal(t, 55.0, r.RH)

	assert.Error(t, applyEdits(store, 0, []int{9}, nil))
}

func TestParseRowsDropsDuplicates(t *testing.T) {
	rows, err := parseRows("2, 2,1,,2")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, rows)

	_, err = parseRows("1,0")
	assert.Error(t, err)
}

func TestApplyEditsDuplicateRemove(t *testing.T) {
	store := solar.NewStore(
		solar.Record{Time: "01:00"},
		solar.Record{Time: "02:00"},
		solar.Record{Time: "03:00"},
	)
	removes, err := parseRows("2,2")
	require.NoError(t, err)
	require.NoError(t, applyEdits(store, 0, removes, nil))

	var times []string
	for _, r := range store.Records() {
		times = append(times, r.Time)
	}
	assert.Equal(t, []string{"01:00", "03:00"}, times)
}

func TestPrintSessions(t *testing.T) {
	var buf bytes.Buffer
	printSessions(&buf, []chstore.SessionInfo{
		{Session: "day1", Rows: 96, LastInsert: time.Date(2024, 6, 1, 14, 30, 0, 0, time.UTC)},
		{Session: "bench-long", Rows: 3, LastInsert: time.Date(2024, 5, 30, 8, 0, 5, 0, time.UTC)},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"SESSION", "ROWS", "LAST", "INSERT"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"day1", "96", "2024-06-01", "14:30:00"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"bench-long", "3", "2024-05-30", "08:00:05"}, strings.Fields(lines[2]))

	buf.Reset()
	printSessions(&buf, nil)
	assert.Equal(t, "No stored sessions\n", buf.String())
}
