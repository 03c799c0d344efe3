package importer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/parquet-go/parquet-go"

	"github.com/KI7MT/ki7mt-pv-lab/internal/common"
	"github.com/KI7MT/ki7mt-pv-lab/internal/solar"
)

// importParquet reads a record archive. Archives carry typed columns, so
// no cell defaulting applies.
func importParquet(path string, stats *common.Stats) ([]solar.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	pf, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		return nil, err
	}
	if err := checkSchemaVersion(pf); err != nil {
		return nil, err
	}

	reader := parquet.NewGenericReader[solar.Record](pf)
	defer reader.Close()

	records := []solar.Record{}
	buf := make([]solar.Record, 1000)
	for {
		n, err := reader.Read(buf)
		records = append(records, buf[:n]...)
		stats.RowsRead += int64(n)
		stats.RowsImported += int64(n)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if n == 0 {
			break
		}
	}
	return records, nil
}

// checkSchemaVersion rejects archives written by a newer schema. Untagged
// archives are accepted.
func checkSchemaVersion(pf *parquet.File) error {
	v, ok := pf.Lookup(solar.SchemaVersionKey)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q", solar.SchemaVersionKey, v)
	}
	if n > solar.SchemaVersion {
		return fmt.Errorf("archive schema version %d is newer than supported version %d", n, solar.SchemaVersion)
	}
	return nil
}
