// pv-archive - Solar panel measurement archiver
//
// Normalizes measurement files (CSV, CSV.gz, XLSX, XLS) into the 15-column
// CSV layout or into zstd-compressed Parquet. Output files are written via
// temp file + rename and keep the input base name.
//
// Build: CGO_ENABLED=0 go build -ldflags="-s -w" -o build/pv-archive ./cmd/pv-archive

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/KI7MT/ki7mt-pv-lab/internal/common"
	"github.com/KI7MT/ki7mt-pv-lab/internal/export"
	"github.com/KI7MT/ki7mt-pv-lab/internal/importer"
	"github.com/KI7MT/ki7mt-pv-lab/internal/solar"
)

// Version can be overridden at build time via -ldflags
var Version = "1.0.0"

var writers = map[string]func(string, []solar.Record) error{
	"csv":     export.WriteCSVFile,
	"csv.gz":  export.WriteCSVFile,
	"parquet": export.WriteParquetFile,
}

// outputPath maps "in/day1.xlsx" to "dest/day1.<format>".
func outputPath(destDir, input, format string) string {
	base := filepath.Base(input)
	lower := strings.ToLower(base)
	for _, ext := range []string{".csv.gz", ".csv", ".xlsx", ".xls", ".parquet"} {
		if strings.HasSuffix(lower, ext) {
			base = base[:len(base)-len(ext)]
			break
		}
	}
	return filepath.Join(destDir, base+"."+format)
}

func main() {
	envFile := flag.String("env", "", "Env file (default ./.env)")
	destDir := flag.String("dest", "", "Destination directory (default $KI7MT_DATA_DIR/archive)")
	format := flag.String("format", "parquet", "Output format: csv, csv.gz, parquet")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "pv-archive v%s - Solar Panel Measurement Archiver\n\n", Version)
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] files...\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Writes imported measurements as CSV, CSV.gz or Parquet archives.\n\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	cfg, err := common.LoadConfig(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	logger := common.MustLogger(common.NewLogger(cfg.LogLevel))
	defer logger.Sync()
	log := logger.Sugar()

	write, ok := writers[*format]
	if !ok {
		log.Fatalf("Unknown format %q (csv, csv.gz, parquet)", *format)
	}
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	dest := *destDir
	if dest == "" {
		dest = cfg.ArchiveDir()
	}

	log.Info("=========================================================")
	log.Infof("PV Archive v%s", Version)
	log.Info("=========================================================")
	log.Infof("Destination: %s (%s)", dest, *format)

	startTime := time.Now()
	total := common.NewStats()
	written := 0
	failed := 0

	for _, input := range flag.Args() {
		name := filepath.Base(input)
		records, stats, err := importer.ImportFile(input, logger)
		total.Merge(stats)
		if err != nil {
			log.Errorf("[%s] Import error: %v", name, err)
			failed++
			continue
		}

		out := outputPath(dest, input, *format)
		if filepath.Clean(out) == filepath.Clean(input) {
			log.Errorf("[%s] Output would overwrite input, skipping", name)
			failed++
			continue
		}
		if err := write(out, records); err != nil {
			log.Errorf("[%s] Write error: %v", name, err)
			failed++
			continue
		}
		written++
		log.Infof("[%s] %d rows -> %s", name, len(records), filepath.Base(out))
	}

	log.Info("=========================================================")
	log.Info("Final Statistics")
	log.Info("=========================================================")
	log.Infof("Files Written: %d (%d failed)", written, failed)
	log.Infof("Rows:          %d imported, %d dropped", total.RowsImported, total.RowsDropped)
	log.Infof("Elapsed:       %v", time.Since(startTime).Round(time.Millisecond))
	log.Info("=========================================================")

	if failed > 0 {
		os.Exit(1)
	}
}
