// pv-ingest - Solar panel measurement ingestion into ClickHouse
//
// Imports measurement files (CSV, CSV.gz, XLSX, XLS, Parquet) and inserts
// each file as one session, keyed by the file name without extension.
// Rows keep their file order via row_num.
//
// Build: CGO_ENABLED=0 go build -ldflags="-s -w" -o build/pv-ingest ./cmd/pv-ingest

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/KI7MT/ki7mt-pv-lab/internal/chstore"
	"github.com/KI7MT/ki7mt-pv-lab/internal/common"
	"github.com/KI7MT/ki7mt-pv-lab/internal/importer"
)

// Version can be overridden at build time via -ldflags
var Version = "1.0.0"

// sessionName derives a session from a file name: "day1.csv.gz" -> "day1".
func sessionName(path string) string {
	base := filepath.Base(path)
	for {
		ext := filepath.Ext(base)
		if ext == "" || ext == base {
			return base
		}
		switch strings.ToLower(ext) {
		case ".gz", ".csv", ".xlsx", ".xls", ".parquet":
			base = strings.TrimSuffix(base, ext)
		default:
			return base
		}
	}
}

func main() {
	envFile := flag.String("env", "", "Env file with ClickHouse settings (default ./.env)")
	sourceDir := flag.String("source-dir", "", "Measurement source directory (default $KI7MT_DATA_DIR/import)")
	session := flag.String("session", "", "Session name (default: file name; only with a single file)")
	truncate := flag.Bool("truncate", false, "Truncate table before insert")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "pv-ingest v%s - Solar Panel Measurement Ingester\n\n", Version)
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] [files...]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Ingests measurement files into ClickHouse, one session per file.\n\n")
		fmt.Fprintf(os.Stderr, "Supported formats:\n")
		fmt.Fprintf(os.Stderr, "  - CSV (.csv, .csv.gz): header + 15 comma-separated columns\n")
		fmt.Fprintf(os.Stderr, "  - Excel (.xlsx, .xls): first sheet, header row + 15 columns\n")
		fmt.Fprintf(os.Stderr, "  - Parquet (.parquet): archives written by pv-archive\n\n")
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

	log.Info("=========================================================")
	log.Infof("PV Ingest v%s", Version)
	log.Info("=========================================================")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("Shutdown requested...")
		cancel()
	}()

	// Discover files
	var files []string
	if len(flag.Args()) > 0 {
		files = flag.Args()
	} else {
		dir := *sourceDir
		if dir == "" {
			dir = cfg.ImportDir()
		}
		files, err = importer.DiscoverFiles(dir)
		if err != nil {
			log.Fatalf("Cannot read source directory: %v", err)
		}
	}

	if len(files) == 0 {
		log.Fatal("No files to process")
	}
	if *session != "" && len(files) > 1 {
		log.Fatal("-session requires exactly one file")
	}
	log.Infof("Found %d file(s)", len(files))

	opts := chstore.OptionsFromConfig(cfg)
	writer, err := chstore.Dial(ctx, opts, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer writer.Close()

	if err := writer.EnsureTable(ctx); err != nil {
		log.Fatalf("Schema setup failed: %v", err)
	}
	log.Infof("Table: %s", opts.TableFQN())

	if *truncate {
		if err := writer.Truncate(ctx); err != nil {
			log.Warnf("Truncate warning: %v", err)
		}
	}

	startTime := time.Now()
	total := common.NewStats()
	inserted := 0
	failed := 0

	for _, filePath := range files {
		if ctx.Err() != nil {
			break
		}
		name := filepath.Base(filePath)

		records, stats, err := importer.ImportFile(filePath, logger)
		total.Merge(stats)
		if err != nil {
			log.Errorf("[%s] Import error: %v", name, err)
			failed++
			continue
		}
		if len(records) == 0 {
			log.Infof("[%s] No data rows, skipping", name)
			continue
		}

		sess := *session
		if sess == "" {
			sess = sessionName(filePath)
		}

		n, err := writer.Insert(ctx, sess, records)
		inserted += n
		if err != nil {
			log.Errorf("[%s] Insert error: %v", name, err)
			failed++
			continue
		}
		log.Infof("[%s] Inserted %d rows (session %s)", name, n, sess)
	}

	elapsed := time.Since(startTime)

	log.Info("=========================================================")
	log.Info("Final Statistics")
	log.Info("=========================================================")
	log.Infof("Files:          %d (%d failed)", len(files), failed)
	log.Infof("Rows Read:      %d", total.RowsRead)
	log.Infof("Rows Dropped:   %d", total.RowsDropped)
	log.Infof("Cells Default:  %d", total.DefaultedCells)
	log.Infof("Rows Inserted:  %d", inserted)
	log.Infof("Elapsed:        %v", elapsed.Round(time.Millisecond))
	log.Infof("Rate:           %.0f rows/sec", float64(inserted)/elapsed.Seconds())
	log.Info("=========================================================")

	if failed > 0 {
		os.Exit(1)
	}
}
