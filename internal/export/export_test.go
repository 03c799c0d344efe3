package export_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KI7MT/ki7mt-pv-lab/internal/export"
	"github.com/KI7MT/ki7mt-pv-lab/internal/importer"
	"github.com/KI7MT/ki7mt-pv-lab/internal/solar"
)

func sampleRecords() []solar.Record {
	return []solar.Record{
		{
			Time: "08:00", SolarRadiation: 612.5, VMono: 18.2, VPoly: 17.9,
			IMono: 4.1, IPoly: 3.95, PMono: 74.62, PPoly: 70.705,
			EffMono: 15.3, EffPoly: 14.1, RH: 55, PanelTempMono: 38.4,
			PanelTempPoly: 39.1, AmbientTemp: 27.5, WindSpeed: 1.8,
		},
		{
			Time: "12:30", SolarRadiation: 1001, VMono: 17.5, VPoly: 17.2,
			IMono: 5.9, IPoly: 5.6, PMono: 103.25, PPoly: 96.32,
			EffMono: 16.8, EffPoly: 15.2, RH: 41.5, PanelTempMono: 52,
			PanelTempPoly: 53.6, AmbientTemp: 33.1, WindSpeed: 0.4,
		},
		solar.NewRecord(),
	}
}

func TestWriteCSVHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, sampleRecords()[:1]))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(solar.CSVHeader, ","), lines[0])
	assert.Equal(t, "08:00,612.5,18.2,17.9,4.1,3.95,74.62,70.705,15.3,14.1,55,38.4,39.1,27.5,1.8", lines[1])
}

func TestCSVRoundTrip(t *testing.T) {
	records := sampleRecords()

	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, records))

	got, err := importer.ParseCSV(&buf, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestCSVGzipFileRoundTrip(t *testing.T) {
	records := sampleRecords()
	path := filepath.Join(t.TempDir(), "archive", "run.csv.gz")

	require.NoError(t, export.WriteCSVFile(path, records))
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	got, stats, err := importer.ImportFile(path, nil)
	require.NoError(t, err)
	assert.Equal(t, records, got)
	assert.Equal(t, int64(len(records)), stats.RowsImported)
}

func TestParquetFileRoundTrip(t *testing.T) {
	records := sampleRecords()
	path := filepath.Join(t.TempDir(), "run.parquet")

	require.NoError(t, export.WriteParquetFile(path, records))

	got, stats, err := importer.ImportFile(path, nil)
	require.NoError(t, err)
	assert.Equal(t, records, got)
	assert.Equal(t, int64(len(records)), stats.RowsRead)
}

func TestParquetSchemaVersionMetadata(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteParquet(&buf, sampleRecords()))

	pf, err := parquet.OpenFile(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	v, ok := pf.Lookup(solar.SchemaVersionKey)
	require.True(t, ok)
	assert.Equal(t, "1", v)
	assert.Equal(t, int64(len(sampleRecords())), pf.NumRows())
}

func TestParquetEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.parquet")
	require.NoError(t, export.WriteParquetFile(path, nil))

	got, _, err := importer.ImportFile(path, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
