// Package export writes solar records to CSV and Parquet archives.
// CSV output uses the 15-column import layout, so an exported file
// re-imports to the same records.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/parquet-go/parquet-go"

	"github.com/KI7MT/ki7mt-pv-lab/internal/solar"
)

// WriteCSV writes the header row followed by one line per record.
func WriteCSV(w io.Writer, records []solar.Record) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(solar.CSVHeader, ",") + "\n"); err != nil {
		return err
	}

	fields := make([]string, solar.FieldCount)
	for i := range records {
		r := &records[i]
		fields[0] = strings.ReplaceAll(r.Time, ",", " ")
		for j, v := range r.Numbers() {
			fields[j+1] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		if _, err := bw.WriteString(strings.Join(fields, ",") + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteParquet writes records as a zstd-compressed Parquet archive
// tagged with the schema version.
func WriteParquet(w io.Writer, records []solar.Record) error {
	pw := parquet.NewGenericWriter[solar.Record](w,
		parquet.Compression(&parquet.Zstd),
		parquet.KeyValueMetadata(solar.SchemaVersionKey, strconv.Itoa(solar.SchemaVersion)),
	)
	if _, err := pw.Write(records); err != nil {
		pw.Close()
		return fmt.Errorf("parquet write: %w", err)
	}
	return pw.Close()
}

// WriteCSVFile writes a CSV archive to path; ".gz" paths are gzip-compressed.
func WriteCSVFile(path string, records []solar.Record) error {
	return writeFile(path, func(w io.Writer) error {
		if !strings.HasSuffix(strings.ToLower(path), ".gz") {
			return WriteCSV(w, records)
		}
		gz := gzip.NewWriter(w)
		if err := WriteCSV(gz, records); err != nil {
			gz.Close()
			return err
		}
		return gz.Close()
	})
}

// WriteParquetFile writes a Parquet archive to path.
func WriteParquetFile(path string, records []solar.Record) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteParquet(w, records)
	})
}

// writeFile writes through a temp file and renames it into place.
func writeFile(path string, write func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create dir failed: %w", err)
		}
	}

	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create file failed: %w", err)
	}

	err = write(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write %s failed: %w", filepath.Base(path), err)
	}

	// Atomic rename
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename failed: %w", err)
	}
	return nil
}
