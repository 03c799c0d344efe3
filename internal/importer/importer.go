// Package importer reads external measurement tables into solar records.
//
// Supported inputs share the fixed 15-column layout (time, solar radiation,
// V/I/P/Eff mono and poly, RH, panel temperatures, ambient temperature,
// wind speed) with a header in the first row:
//   - CSV (.csv) and gzip-compressed CSV (.csv.gz)
//   - Excel workbooks (.xlsx, .xls), first sheet
//   - Parquet archives (.parquet) written by pv-archive
//
// Malformed cells never fail an import: numbers default to 0.0 and empty
// times to "00:00". Only unreadable files and unknown extensions are errors.
package importer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/pgzip"
	"go.uber.org/zap"

	"github.com/KI7MT/ki7mt-pv-lab/internal/common"
	"github.com/KI7MT/ki7mt-pv-lab/internal/solar"
)

// ErrUnsupportedFormat is returned for file extensions with no reader.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Format identifies an input file type.
type Format string

const (
	FormatUnknown Format = "unknown"
	FormatCSV     Format = "csv"
	FormatCSVGzip Format = "csv.gz"
	FormatXLSX    Format = "xlsx"
	FormatXLS     Format = "xls"
	FormatParquet Format = "parquet"
)

// DetectFormat determines the file format from its extension.
func DetectFormat(path string) Format {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(name, ".csv.gz"):
		return FormatCSVGzip
	case strings.HasSuffix(name, ".csv"):
		return FormatCSV
	case strings.HasSuffix(name, ".xlsx"):
		return FormatXLSX
	case strings.HasSuffix(name, ".xls"):
		return FormatXLS
	case strings.HasSuffix(name, ".parquet"):
		return FormatParquet
	}
	return FormatUnknown
}

// ImportFile parses path into records in file order. An input without
// data rows yields an empty slice and no error.
func ImportFile(path string, logger *zap.Logger) ([]solar.Record, *common.Stats, error) {
	logger = common.Named(logger, "importer")
	stats := common.NewStats()
	name := filepath.Base(path)

	format := DetectFormat(path)
	logger.Debug("importing file", zap.String("file", name), zap.String("format", string(format)))

	var (
		records []solar.Record
		err     error
	)
	switch format {
	case FormatCSV:
		records, err = importCSVFile(path, false, stats, logger)
	case FormatCSVGzip:
		records, err = importCSVFile(path, true, stats, logger)
	case FormatXLSX:
		records, err = importXLSX(path, stats, logger)
	case FormatXLS:
		records, err = importXLS(path, stats, logger)
	case FormatParquet:
		records, err = importParquet(path, stats)
	default:
		return nil, stats, fmt.Errorf("%s: %w", name, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, stats, fmt.Errorf("failed to import %s: %w", name, err)
	}

	stats.Log(logger, name)
	return records, stats, nil
}

func importCSVFile(path string, gzipped bool, stats *common.Stats, logger *zap.Logger) ([]solar.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if !gzipped {
		return ParseCSV(f, stats, logger)
	}

	gz, err := pgzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("gzip: %w", err)
	}
	defer gz.Close()
	return ParseCSV(gz, stats, logger)
}

// DiscoverFiles returns the supported files under dir, sorted by path.
func DiscoverFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && DetectFormat(path) != FormatUnknown {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
