package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pv.env")
	content := "CLICKHOUSE_HOST=ch.lab\nCLICKHOUSE_PORT=9440\nPV_CHART_WIDTH=1600\nKI7MT_DATA_DIR=/srv/pv\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	for _, key := range []string{"CLICKHOUSE_HOST", "CLICKHOUSE_PORT", "CLICKHOUSE_DATABASE", "CLICKHOUSE_TABLE", "PV_CHART_WIDTH", "PV_CHART_HEIGHT", "KI7MT_DATA_DIR"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "ch.lab:9440", cfg.ClickHouseAddr())
	assert.Equal(t, 1600, cfg.ChartWidth)
	assert.Equal(t, 800, cfg.ChartHeight)
	assert.Equal(t, "pv.measurements", cfg.TableFQN())
	assert.Equal(t, filepath.Join("/srv/pv", "import"), cfg.ImportDir())
	assert.Equal(t, filepath.Join("/srv/pv", "archive"), cfg.ArchiveDir())
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.NotNil(t, cfg)
}

func TestGetEnvIntFallback(t *testing.T) {
	t.Setenv("PV_TEST_INT", "abc")
	assert.Equal(t, 7, getEnvInt("PV_TEST_INT", 7))
	t.Setenv("PV_TEST_INT", "42")
	assert.Equal(t, 42, getEnvInt("PV_TEST_INT", 7))
}

func TestStatsMerge(t *testing.T) {
	a := NewStats()
	a.RowsRead = 4
	a.RowsImported = 3
	a.RowsDropped = 1

	b := &Stats{RowsRead: 2, RowsImported: 2, DefaultedCells: 5}
	a.Merge(b)
	a.Merge(nil)

	assert.Equal(t, int64(6), a.RowsRead)
	assert.Equal(t, int64(5), a.RowsImported)
	assert.Equal(t, int64(1), a.RowsDropped)
	assert.Equal(t, int64(5), a.DefaultedCells)

	a.Reset()
	assert.Equal(t, int64(0), a.RowsRead)
}

func TestNamedNilLogger(t *testing.T) {
	l := Named(nil, "importer")
	require.NotNil(t, l)
	l.Info("discarded")
}
