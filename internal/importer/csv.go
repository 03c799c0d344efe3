package importer

import (
	"bufio"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/KI7MT/ki7mt-pv-lab/internal/common"
	"github.com/KI7MT/ki7mt-pv-lab/internal/solar"
)

// maxLineBytes bounds a single CSV line.
const maxLineBytes = 1024 * 1024

// ParseCSV parses comma-separated rows after a header line.
// A row with fewer than MinColumns fields is dropped as a whole; extra
// fields are ignored. Trailing empty fields count as fields.
func ParseCSV(r io.Reader, stats *common.Stats, logger *zap.Logger) ([]solar.Record, error) {
	if stats == nil {
		stats = common.NewStats()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	records := []solar.Record{}
	lineNumber := 0
	errorCount := 0

	for scanner.Scan() {
		lineNumber++
		if lineNumber == 1 {
			logger.Debug("csv header", zap.String("header", scanner.Text()))
			continue
		}

		line := scanner.Text()
		stats.RowsRead++
		if strings.TrimSpace(line) == "" {
			stats.BlankRows++
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) < MinColumns {
			stats.RowsDropped++
			errorCount++
			if errorCount <= MaxErrorsToLog {
				logger.Warn("dropping csv row",
					zap.Int("line", lineNumber),
					zap.Int("columns", len(fields)),
					zap.Int("expected", MinColumns))
			}
			continue
		}

		records = append(records, buildRecord(fields, stats, nil))
		stats.RowsImported++
	}

	if errorCount > MaxErrorsToLog {
		logger.Warn("additional csv rows dropped (suppressed)", zap.Int("count", errorCount-MaxErrorsToLog))
	}

	return records, scanner.Err()
}
