package importer

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/KI7MT/ki7mt-pv-lab/internal/common"
	"github.com/KI7MT/ki7mt-pv-lab/internal/solar"
)

// ParseSheetRows maps spreadsheet rows (row 0 is the header) to records.
// Missing cells are defaulted one by one; rows with no content are skipped.
func ParseSheetRows(rows [][]string, stats *common.Stats) []solar.Record {
	if stats == nil {
		stats = common.NewStats()
	}
	records := []solar.Record{}
	for i := 1; i < len(rows); i++ {
		stats.RowsRead++
		if blankRow(rows[i]) {
			stats.BlankRows++
			continue
		}
		records = append(records, buildRecord(rows[i], stats, normalizeSheetTime))
		stats.RowsImported++
	}
	return records
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func logHeader(logger *zap.Logger, sheet string, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	logger.Debug("sheet header",
		zap.String("sheet", sheet),
		zap.Int("rows", len(rows)),
		zap.Strings("columns", rows[0]))
}

// importXLSX reads the first sheet of an Office Open XML workbook.
// Raw cell values are used so that times arrive as day fractions.
func importXLSX(path string, stats *common.Stats, logger *zap.Logger) ([]solar.Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return []solar.Record{}, nil
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	logHeader(logger, sheets[0], rows)

	return ParseSheetRows(rows, stats), nil
}

// importXLS reads the first sheet of a legacy BIFF workbook.
func importXLS(path string, stats *common.Stats, logger *zap.Logger) ([]solar.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	wb, err := xls.OpenReader(f, "utf-8")
	if err != nil {
		return nil, err
	}
	if wb == nil {
		return nil, errors.New("no Workbook stream in container")
	}
	if wb.NumSheets() == 0 {
		return []solar.Record{}, nil
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return []solar.Record{}, nil
	}

	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		rows = append(rows, xlsRowCells(sheet, i))
	}
	logHeader(logger, sheet.Name, rows)

	return ParseSheetRows(rows, stats), nil
}

// xlsRowCells returns the first FieldCount cells of row i, or nil when the
// sheet has no such row. WorkSheet.Row panics on rows that were never
// written, and LastCol is 0 for rows without a ROW record, so every
// column up to FieldCount is read.
func xlsRowCells(sheet *xls.WorkSheet, i int) (cells []string) {
	defer func() {
		if recover() != nil {
			cells = nil
		}
	}()

	row := sheet.Row(i)
	if row == nil {
		return nil
	}
	cells = make([]string, solar.FieldCount)
	for c := range cells {
		cells[c] = strings.TrimSpace(row.Col(c))
	}
	return cells
}
